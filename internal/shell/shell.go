// Package shell runs external commands for the scaffolding pipeline. Every
// command is echoed before it runs and always executes in an explicit
// working directory; the process working directory is never changed.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNotFound is returned when the command binary is not on PATH.
var ErrNotFound = errors.New("command not found")

// Command describes one external process invocation.
type Command struct {
	Dir  string   // working directory; empty means the current one
	Name string   // binary name, resolved through PATH
	Args []string // arguments, passed verbatim

	// Display overrides the echoed form of the command when set.
	Display string
}

// String returns the command line as echoed to the user.
func (c Command) String() string {
	if c.Display != "" {
		return c.Display
	}
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		parts = append(parts, quoteIfNeeded(a))
	}
	return strings.Join(parts, " ")
}

// Quote wraps s in double quotes.
func Quote(s string) string {
	return strconv.Quote(s)
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'$`\\|&;<>()*?[]{}~") {
		return Quote(s)
	}
	return s
}

// ExitError reports a command that ran and exited with a non-zero status.
type ExitError struct {
	Command Command
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command.Name, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Runner executes commands, streaming their output.
type Runner struct {
	// Stdout and Stderr receive the child's output; default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Echo receives the command line before each run; defaults to Stdout.
	Echo io.Writer
	// LookPath resolves binaries; defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// Run echoes c and executes it, blocking until the child exits.
func (r *Runner) Run(ctx context.Context, c Command) error {
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	echo := r.Echo
	if echo == nil {
		echo = stdout
	}
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	fmt.Fprintln(echo, c.String())

	bin, err := lookPath(c.Name)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, c.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("running %s: %w", c.Name, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: c, Code: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("running %s: %w", c.Name, err)
	}

	return nil
}
