// Package testutil builds fixtures shared by package and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Branch is one branch of a fixture repository and the files committed on it.
type Branch struct {
	Name  string
	Files map[string]string
}

// TemplateRepo creates a non-bare git repository in a temp dir with one
// commit per branch and returns its path. Later branches fork from the
// first one, which stays checked out.
func TemplateRepo(t testing.TB, branches ...Branch) string {
	t.Helper()
	if len(branches) == 0 {
		t.Fatal("TemplateRepo needs at least one branch")
	}

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("git init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}

	first := plumbing.NewBranchReferenceName(branches[0].Name)
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, first)); err != nil {
		t.Fatalf("set HEAD: %v", err)
	}

	for i, b := range branches {
		if i > 0 {
			if err := wt.Checkout(&git.CheckoutOptions{Branch: first, Force: true}); err != nil {
				t.Fatalf("checkout %s: %v", branches[0].Name, err)
			}
			ref := plumbing.NewBranchReferenceName(b.Name)
			if err := wt.Checkout(&git.CheckoutOptions{Branch: ref, Create: true}); err != nil {
				t.Fatalf("create branch %s: %v", b.Name, err)
			}
		}
		commitFiles(t, dir, wt, b)
	}

	if len(branches) > 1 {
		if err := wt.Checkout(&git.CheckoutOptions{Branch: first, Force: true}); err != nil {
			t.Fatalf("checkout %s: %v", branches[0].Name, err)
		}
	}
	return dir
}

func commitFiles(t testing.TB, dir string, wt *git.Worktree, b Branch) {
	t.Helper()

	names := make([]string, 0, len(b.Files))
	for name := range b.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(b.Files[name]), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("git add %s: %v", name, err)
		}
	}

	_, err := wt.Commit("template "+b.Name, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Template Author",
			Email: "template@example.com",
			When:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		t.Fatalf("commit on %s: %v", b.Name, err)
	}
}
