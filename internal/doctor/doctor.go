package doctor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/guillaumearm/create-node-project/internal/manifest"
	"github.com/guillaumearm/create-node-project/internal/project"
)

// DefaultNodeConstraint applies when the manifest declares no engines.node.
const DefaultNodeConstraint = ">=16.0.0"

// Options select the optional checks.
type Options struct {
	// Manifest is a package.json to validate and read engines.node from.
	Manifest string
}

// Report counts the problems found by a run.
type Report struct {
	Problems int
	Warnings int
}

// OK reports whether no check failed.
func (r *Report) OK() bool { return r.Problems == 0 }

// Checker runs the diagnostics and prints one line per check.
type Checker struct {
	Out            io.Writer
	PackageManager string

	// LookPath resolves binaries; defaults to exec.LookPath.
	LookPath func(string) (string, error)
	// NodeVersion returns the output of `node --version`.
	NodeVersion func(ctx context.Context) (string, error)
}

// Run executes every check and returns the tally.
func (c *Checker) Run(ctx context.Context, opts Options) *Report {
	r := &Report{}

	fmt.Fprintln(c.out(), "Tools check:")
	for _, name := range c.tools() {
		c.checkBinary(r, name)
	}

	constraint := DefaultNodeConstraint
	var m *manifest.Manifest
	if opts.Manifest != "" {
		loaded, err := manifest.Load(opts.Manifest)
		if err != nil {
			fmt.Fprintf(c.out(), "  [FAIL] %v\n", err)
			r.Problems++
		} else {
			m = loaded
			constraint = NodeConstraint(m)
		}
	}

	fmt.Fprintln(c.out(), "Node.js check:")
	c.checkNode(ctx, r, constraint)

	if m != nil {
		c.checkManifest(r, opts.Manifest, m)
	}

	return r
}

func (c *Checker) tools() []string {
	pm := c.PackageManager
	if pm == "" {
		pm = "npm"
	}
	return []string{"git", pm, "node"}
}

func (c *Checker) checkBinary(r *Report, name string) {
	path, err := c.lookPath(name)
	if err != nil {
		fmt.Fprintf(c.out(), "  [MISS] %s not found\n", name)
		r.Problems++
		return
	}
	fmt.Fprintf(c.out(), "  [ OK ] %s found at %s\n", name, path)
}

func (c *Checker) checkNode(ctx context.Context, r *Report, constraint string) {
	raw, err := c.nodeVersion(ctx)
	if err != nil {
		fmt.Fprintf(c.out(), "  [WARN] cannot read node version: %v\n", err)
		r.Warnings++
		return
	}

	ok, err := SatisfiesConstraint(raw, constraint)
	if err != nil {
		fmt.Fprintf(c.out(), "  [WARN] %v\n", err)
		r.Warnings++
		return
	}
	version := strings.TrimSpace(raw)
	if !ok {
		fmt.Fprintf(c.out(), "  [FAIL] node %s does not satisfy %s\n", version, constraint)
		r.Problems++
		return
	}
	fmt.Fprintf(c.out(), "  [ OK ] node %s satisfies %s\n", version, constraint)
}

func (c *Checker) checkManifest(r *Report, path string, m *manifest.Manifest) {
	fmt.Fprintf(c.out(), "Manifest validation: %s\n", path)

	typ := InferType(m)
	result, err := manifest.Validate(m, typ)
	if err != nil {
		fmt.Fprintf(c.out(), "  [FAIL] %v\n", err)
		r.Problems++
		return
	}

	if result.Valid {
		name, _ := m.GetString("name")
		fmt.Fprintf(c.out(), "  [ OK ] Valid %s manifest: %s\n", typ, name)
		return
	}

	fmt.Fprintf(c.out(), "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(c.out(), "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(c.out(), "    - %s\n", issue.Message)
		}
	}
	r.Problems++
}

// NodeConstraint returns engines.node from m, or DefaultNodeConstraint.
func NodeConstraint(m *manifest.Manifest) string {
	id, err := m.Identity()
	if err != nil || id.Engines["node"] == "" {
		return DefaultNodeConstraint
	}
	return id.Engines["node"]
}

// InferType guesses the project type of a personalized manifest: cli when
// it carries a cliName, base otherwise.
func InferType(m *manifest.Manifest) project.Type {
	if m.Has("cliName") {
		return project.TypeCLI
	}
	return project.TypeBase
}

// SatisfiesConstraint reports whether version (as printed by
// `node --version`) satisfies the semver constraint.
func SatisfiesConstraint(version, constraint string) (bool, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return false, fmt.Errorf("parsing node version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}

func (c *Checker) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Checker) lookPath(name string) (string, error) {
	if c.LookPath != nil {
		return c.LookPath(name)
	}
	return exec.LookPath(name)
}

func (c *Checker) nodeVersion(ctx context.Context) (string, error) {
	if c.NodeVersion != nil {
		return c.NodeVersion(ctx)
	}
	bin, err := c.lookPath("node")
	if err != nil {
		return "", err
	}
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--version")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running node --version: %w", err)
	}
	return stdout.String(), nil
}
