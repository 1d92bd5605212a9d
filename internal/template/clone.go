package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guillaumearm/create-node-project/internal/shell"
)

// Clone backends.
const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

// ErrClone wraps every clone failure, whatever the backend.
var ErrClone = errors.New("cannot git clone")

// CloneRequest identifies what to clone and where.
type CloneRequest struct {
	URL    string
	Branch string
	Dest   string
}

// Display returns the git command line equivalent to r.
func (r CloneRequest) Display() string {
	return fmt.Sprintf("git clone -b %s %s %s", shell.Quote(r.Branch), shell.Quote(r.URL), shell.Quote(r.Dest))
}

// Cloner clones a single branch of a repository.
type Cloner interface {
	Clone(ctx context.Context, req CloneRequest) error
}

// Runner executes an external command.
type Runner interface {
	Run(ctx context.Context, c shell.Command) error
}

// GitCloner clones with the git CLI.
type GitCloner struct {
	Runner Runner
}

// Clone runs `git clone -b <branch> <url> <dest>`.
func (g *GitCloner) Clone(ctx context.Context, req CloneRequest) error {
	cmd := shell.Command{
		Name:    "git",
		Args:    []string{"clone", "-b", req.Branch, req.URL, req.Dest},
		Display: req.Display(),
	}
	if err := g.Runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("%w: %w", ErrClone, err)
	}
	return nil
}

// NewCloner returns the Cloner for backend. Commands and their output go
// to runner for the exec backend and to out for go-git.
func NewCloner(backend string, runner Runner, out io.Writer) (Cloner, error) {
	switch backend {
	case "", BackendExec:
		return &GitCloner{Runner: runner}, nil
	case BackendGoGit:
		if out == nil {
			out = os.Stdout
		}
		return &GoGitCloner{Out: out}, nil
	default:
		return nil, fmt.Errorf("unknown git backend %q: supported backends are %q and %q", backend, BackendExec, BackendGoGit)
	}
}
