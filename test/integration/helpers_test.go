//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/guillaumearm/create-node-project/internal/testutil"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // CREATE_NODE_PROJECT_HOME, holds config.yaml
	BinDir  string // stub package manager, first on PATH
	WorkDir string // parent of generated projects
	Repo    string // local template repository
	NpmLog  string // one line per stub npm invocation: "<pwd> <args>"
}

const skeletonBase = `{
  "name": "node-skeleton",
  "version": "1.3.0",
  "private": true,
  "description": "Node.js project skeleton",
  "main": "dist/index.js",
  "scripts": {
    "build": "tsc",
    "prettier": "prettier --write \"src/**/*.ts\""
  },
  "repository": {
    "type": "git",
    "url": "https://github.com/guillaumearm/node-skeleton.git"
  },
  "bugs": {
    "url": "https://github.com/guillaumearm/node-skeleton/issues"
  },
  "homepage": "https://github.com/guillaumearm/node-skeleton#readme",
  "license": "MIT",
  "devDependencies": {
    "prettier": "^3.0.0",
    "typescript": "^5.4.0"
  }
}`

const skeletonCLI = `{
  "name": "node-skeleton",
  "cliName": "skeleton",
  "version": "1.3.0",
  "description": "Node.js cli skeleton",
  "bin": {
    "skeleton": "dist/index.js"
  },
  "scripts": {
    "prettier": "prettier --write \"src/**/*.ts\""
  },
  "dependencies": {
    "commander": "^12.0.0"
  }
}`

// setupTestEnv creates isolated temp directories, a template repository with
// master and cli branches, and a stub npm on PATH. Every operation is
// sandboxed through environment variables restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub package manager requires a POSIX shell")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	env := &testEnv{
		HomeDir: t.TempDir(),
		BinDir:  t.TempDir(),
		WorkDir: t.TempDir(),
	}
	env.NpmLog = filepath.Join(env.BinDir, "npm.log")

	stub := "#!/bin/sh\necho \"$PWD $*\" >> \"" + env.NpmLog + "\"\n"
	if err := os.WriteFile(filepath.Join(env.BinDir, "npm"), []byte(stub), 0o755); err != nil {
		t.Fatalf("writing npm stub: %v", err)
	}

	env.Repo = testutil.TemplateRepo(t,
		testutil.Branch{Name: "master", Files: map[string]string{
			"package.json": skeletonBase,
			"src/index.ts": "export const main = () => 42;\n",
			".gitignore":   "node_modules\ndist\n",
		}},
		testutil.Branch{Name: "cli", Files: map[string]string{
			"package.json": skeletonCLI,
			"src/index.ts": "#!/usr/bin/env node\nconsole.log('hi');\n",
		}},
	)

	t.Setenv("CREATE_NODE_PROJECT_HOME", env.HomeDir)
	t.Setenv("CREATE_NODE_PROJECT_TEMPLATE_REPO", env.Repo)
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	return env
}

// npmCalls returns the recorded stub npm invocations.
func npmCalls(t *testing.T, env *testEnv) []string {
	t.Helper()
	data, err := os.ReadFile(env.NpmLog)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading npm log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// assertFileExists fails the test if the path does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

// assertNotExists fails the test if the path exists.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected path to not exist: %s", path)
	}
}

// readFile reads a file and fails the test on error.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
