package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestRemoveVCSMetadata(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, ".git/HEAD", ".git/objects/ab/cdef", "package.json", ".gitignore")

	require.NoError(t, RemoveVCSMetadata(dir))

	assert.NoDirExists(t, filepath.Join(dir, ".git"))
	assert.FileExists(t, filepath.Join(dir, "package.json"))
	assert.FileExists(t, filepath.Join(dir, ".gitignore"))
}

func TestRemoveVCSMetadata_Missing(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, RemoveVCSMetadata(dir))
}

func TestStrip(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"package.json",
		"CHANGELOG.md",
		"docs/guide.md",
		"docs/img/logo.png",
		"src/index.ts",
		"src/index.test.ts",
		"src/lib/util.test.ts",
		".git/HEAD",
	)

	removed, err := Strip(dir, []string{"CHANGELOG.md", "docs", "**/*.test.ts"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"CHANGELOG.md", "docs", "src/index.test.ts", "src/lib/util.test.ts"}, removed)
	assert.FileExists(t, filepath.Join(dir, "package.json"))
	assert.FileExists(t, filepath.Join(dir, "src", "index.ts"))
	assert.NoFileExists(t, filepath.Join(dir, "CHANGELOG.md"))
	assert.NoDirExists(t, filepath.Join(dir, "docs"))
	assert.FileExists(t, filepath.Join(dir, ".git", "HEAD"))
}

func TestStrip_SingleStarStaysInDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.md", "sub/b.md")

	removed, err := Strip(dir, []string{"*.md"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, removed)
	assert.FileExists(t, filepath.Join(dir, "sub", "b.md"))
}

func TestStrip_NoPatterns(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.md")

	removed, err := Strip(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.FileExists(t, filepath.Join(dir, "a.md"))
}

func TestStrip_InvalidPattern(t *testing.T) {
	_, err := Strip(t.TempDir(), []string{"[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid strip pattern "[unclosed"`)
}
