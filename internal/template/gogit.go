package template

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GoGitCloner clones in-process with go-git. It echoes the equivalent git
// command line so the output matches the exec backend.
type GoGitCloner struct {
	Out io.Writer
	// Progress receives remote progress messages when set.
	Progress io.Writer
}

// Clone fetches req.Branch only and checks it out into req.Dest.
func (g *GoGitCloner) Clone(ctx context.Context, req CloneRequest) error {
	if g.Out != nil {
		fmt.Fprintln(g.Out, req.Display())
	}

	_, err := git.PlainCloneContext(ctx, req.Dest, false, &git.CloneOptions{
		URL:           req.URL,
		ReferenceName: plumbing.NewBranchReferenceName(req.Branch),
		SingleBranch:  true,
		Progress:      g.Progress,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrClone, err)
	}
	return nil
}
