package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIgnoreTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestNamedIgnoreMatcher_RootFile(t *testing.T) {
	root := writeIgnoreTree(t, map[string]string{
		".gitignore": "*.log\nbuild/\n# a comment\n\n",
	})
	m, err := NewGitignoreMatcher(root)
	require.NoError(t, err)

	assert.True(t, m.IsIgnored("debug.log", false))
	assert.True(t, m.IsIgnored("nested/debug.log", false))
	assert.True(t, m.IsIgnored("build", true))
	assert.False(t, m.IsIgnored("main.go", false))
	assert.Equal(t, 1, m.FileCount())
}

func TestNamedIgnoreMatcher_NestedFilesGovernSubtrees(t *testing.T) {
	root := writeIgnoreTree(t, map[string]string{
		".gitignore":     "*.tmp\n",
		"sub/.gitignore": "local/\n",
	})
	m, err := NewGitignoreMatcher(root)
	require.NoError(t, err)

	assert.True(t, m.IsIgnored("sub/local", true), "nested file applies inside its directory")
	assert.False(t, m.IsIgnored("local", true), "nested file does not leak to the root")
	assert.True(t, m.IsIgnored("sub/x.tmp", false), "root file still applies below")
}

func TestNamedIgnoreMatcher_CustomName(t *testing.T) {
	root := writeIgnoreTree(t, map[string]string{
		".myignore":  "secret/**\n",
		".gitignore": "other/**\n",
	})
	m, err := NewNamedIgnoreMatcher(root, ".myignore")
	require.NoError(t, err)

	assert.True(t, m.IsIgnored("secret/key.txt", false))
	assert.False(t, m.IsIgnored("other/file.txt", false), "only the named file is consulted")
}

func TestNamedIgnoreMatcher_NegationWithinFile(t *testing.T) {
	root := writeIgnoreTree(t, map[string]string{
		".gitignore": "*.log\n!keep.log\n",
	})
	m, err := NewGitignoreMatcher(root)
	require.NoError(t, err)
	assert.True(t, m.IsIgnored("drop.log", false))
	assert.False(t, m.IsIgnored("keep.log", false))
}

func TestNamedIgnoreMatcher_NoFilesMeansNoMatches(t *testing.T) {
	m, err := NewGitignoreMatcher(t.TempDir())
	require.NoError(t, err)
	assert.False(t, m.IsIgnored("anything.go", false))
	assert.Equal(t, 0, m.FileCount())
}

func TestNamedIgnoreMatcher_BadRoot(t *testing.T) {
	_, err := NewGitignoreMatcher(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	_, err = NewNamedIgnoreMatcher(t.TempDir(), "")
	require.Error(t, err)
}

func TestIgnoreChain_AnyMatchWins(t *testing.T) {
	root := writeIgnoreTree(t, map[string]string{".gitignore": "*.log\n"})
	git, err := NewGitignoreMatcher(root)
	require.NoError(t, err)

	chain := NewIgnoreChain(nil, NewDefaultIgnoreMatcher(), git)
	assert.Len(t, chain, 2, "nil ignorers are dropped")
	assert.True(t, chain.IsIgnored("x.log", false))
	assert.True(t, chain.IsIgnored("node_modules", true))
	assert.False(t, chain.IsIgnored("main.go", false))
}
