package pkgmgr

import (
	"context"
	"fmt"

	"github.com/guillaumearm/create-node-project/internal/shell"
)

// Supported package managers.
const (
	NPM  = "npm"
	Yarn = "yarn"
	PNPM = "pnpm"
)

// Default is the package manager used when none is configured.
const Default = NPM

// Names lists the supported package managers.
var Names = []string{NPM, Yarn, PNPM}

// Runner executes an external command.
type Runner interface {
	Run(ctx context.Context, c shell.Command) error
}

// Manager runs package manager commands in a project directory.
type Manager struct {
	Name   string
	Runner Runner
}

// New returns a Manager for name, falling back to Default when name is empty.
func New(name string, runner Runner) (*Manager, error) {
	if name == "" {
		name = Default
	}
	if !Supported(name) {
		return nil, fmt.Errorf("unknown package manager %q: supported managers are %q, %q and %q", name, NPM, Yarn, PNPM)
	}
	return &Manager{Name: name, Runner: runner}, nil
}

// Supported reports whether name is a known package manager.
func Supported(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Install runs `<pm> install` in dir.
func (m *Manager) Install(ctx context.Context, dir string) error {
	if err := m.Runner.Run(ctx, m.command(dir, "install")); err != nil {
		return fmt.Errorf("%s install in %s: %w", m.Name, dir, err)
	}
	return nil
}

// RunScript runs `<pm> run <script>` in dir.
func (m *Manager) RunScript(ctx context.Context, dir, script string) error {
	if script == "" {
		return fmt.Errorf("%s run: empty script name", m.Name)
	}
	if err := m.Runner.Run(ctx, m.command(dir, "run", script)); err != nil {
		return fmt.Errorf("%s run %s in %s: %w", m.Name, script, dir, err)
	}
	return nil
}

func (m *Manager) command(dir string, args ...string) shell.Command {
	return shell.Command{Dir: dir, Name: m.Name, Args: args}
}
