package template

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// MetadataDir is the version-control directory removed from every clone.
const MetadataDir = ".git"

// RemoveVCSMetadata deletes dir/.git recursively. A missing directory is
// not an error.
func RemoveVCSMetadata(dir string) error {
	if err := os.RemoveAll(filepath.Join(dir, MetadataDir)); err != nil {
		return fmt.Errorf("removing %s from %s: %w", MetadataDir, dir, err)
	}
	return nil
}

// Strip removes every file or directory below dir whose slash-separated
// path relative to dir matches one of patterns. It returns the removed
// relative paths. "**" matches across directories, "*" does not.
func Strip(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid strip pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}

	var removed []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if d.IsDir() && d.Name() == MetadataDir {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		for _, g := range globs {
			if !g.Match(rel) {
				continue
			}
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("removing %s: %w", rel, err)
			}
			removed = append(removed, rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("stripping %s: %w", dir, err)
	}
	return removed, nil
}
