package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guillaumearm/create-node-project/internal/manifest"
	"github.com/guillaumearm/create-node-project/internal/project"
)

func fakeLookPath(found ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func fixedNode(version string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return version, nil }
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSatisfiesConstraint(t *testing.T) {
	tests := []struct {
		version, constraint string
		want                bool
	}{
		{"v20.11.1\n", ">=16.0.0", true},
		{"v14.21.3", ">=16.0.0", false},
		{"18.0.0", "^18", true},
		{"v22.1.0", ">=18 <21", false},
	}
	for _, tt := range tests {
		got, err := SatisfiesConstraint(tt.version, tt.constraint)
		require.NoError(t, err, "%s %s", tt.version, tt.constraint)
		assert.Equal(t, tt.want, got, "%s %s", tt.version, tt.constraint)
	}

	_, err := SatisfiesConstraint("not-a-version", ">=16.0.0")
	assert.Error(t, err)
	_, err = SatisfiesConstraint("v20.0.0", "bogus constraint")
	assert.Error(t, err)
}

func TestNodeConstraint(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"name":"a","engines":{"node":">=18"}}`))
	require.NoError(t, err)
	assert.Equal(t, ">=18", NodeConstraint(m))

	m, err = manifest.Parse([]byte(`{"name":"a"}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultNodeConstraint, NodeConstraint(m))
}

func TestInferType(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"name":"tool","cliName":"tool"}`))
	require.NoError(t, err)
	assert.Equal(t, project.TypeCLI, InferType(m))

	m, err = manifest.Parse([]byte(`{"name":"app"}`))
	require.NoError(t, err)
	assert.Equal(t, project.TypeBase, InferType(m))
}

func TestRun_AllGood(t *testing.T) {
	var out bytes.Buffer
	c := &Checker{
		Out:         &out,
		LookPath:    fakeLookPath("git", "npm", "node"),
		NodeVersion: fixedNode("v20.11.1\n"),
	}

	r := c.Run(context.Background(), Options{})
	assert.True(t, r.OK())
	assert.Zero(t, r.Warnings)
	assert.Contains(t, out.String(), "[ OK ] git found at /usr/bin/git")
	assert.Contains(t, out.String(), "[ OK ] npm found at /usr/bin/npm")
	assert.Contains(t, out.String(), "[ OK ] node v20.11.1 satisfies >=16.0.0")
}

func TestRun_MissingTools(t *testing.T) {
	var out bytes.Buffer
	c := &Checker{
		Out:            &out,
		PackageManager: "pnpm",
		LookPath:       fakeLookPath("git"),
		NodeVersion: func(context.Context) (string, error) {
			return "", errors.New("node not found")
		},
	}

	r := c.Run(context.Background(), Options{})
	assert.False(t, r.OK())
	assert.Equal(t, 2, r.Problems)
	assert.Equal(t, 1, r.Warnings)
	assert.Contains(t, out.String(), "[MISS] pnpm not found")
	assert.Contains(t, out.String(), "[MISS] node not found")
	assert.Contains(t, out.String(), "[WARN] cannot read node version")
}

func TestRun_ManifestEngineConstraint(t *testing.T) {
	path := writeManifest(t, `{
  "name": "my-app",
  "version": "0.0.0",
  "description": "",
  "engines": {
    "node": ">=22"
  }
}`)
	var out bytes.Buffer
	c := &Checker{
		Out:         &out,
		LookPath:    fakeLookPath("git", "npm", "node"),
		NodeVersion: fixedNode("v20.11.1"),
	}

	r := c.Run(context.Background(), Options{Manifest: path})
	assert.Equal(t, 1, r.Problems)
	assert.Contains(t, out.String(), "[FAIL] node v20.11.1 does not satisfy >=22")
	assert.Contains(t, out.String(), "[ OK ] Valid base manifest: my-app")
}

func TestRun_InvalidManifest(t *testing.T) {
	path := writeManifest(t, `{
  "name": "tool",
  "cliName": "other",
  "version": "1.0.0",
  "description": "",
  "private": true
}`)
	var out bytes.Buffer
	c := &Checker{
		Out:         &out,
		LookPath:    fakeLookPath("git", "npm", "node"),
		NodeVersion: fixedNode("v20.11.1"),
	}

	r := c.Run(context.Background(), Options{Manifest: path})
	assert.False(t, r.OK())
	assert.Contains(t, out.String(), "Manifest validation: "+path)
	assert.Contains(t, out.String(), "validation issue(s):")
	assert.Contains(t, out.String(), "/version")
}

func TestRun_UnreadableManifest(t *testing.T) {
	var out bytes.Buffer
	c := &Checker{
		Out:         &out,
		LookPath:    fakeLookPath("git", "npm", "node"),
		NodeVersion: fixedNode("v20.11.1"),
	}

	r := c.Run(context.Background(), Options{Manifest: filepath.Join(t.TempDir(), "missing.json")})
	assert.Equal(t, 1, r.Problems)
	assert.Contains(t, out.String(), "[FAIL]")
	assert.Contains(t, out.String(), "satisfies >=16.0.0")
	assert.NotContains(t, out.String(), "Manifest validation")
}
