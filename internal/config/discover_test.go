package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverRepoConfig_FindsNearest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	want := filepath.Join(root, "repograph.toml")
	require.NoError(t, os.WriteFile(want, []byte("[profile.default]\n"), 0o644))

	got, err := DiscoverRepoConfig(nested)
	require.NoError(t, err)
	// EvalSymlinks may canonicalize temp paths (e.g. /private on macOS), so
	// compare resolved forms.
	wantResolved, _ := filepath.EvalSymlinks(want)
	gotResolved, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, wantResolved, gotResolved)
}

func TestDiscoverRepoConfig_StopsAtGitBoundary(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	// Config above the git boundary must not be found.
	require.NoError(t, os.WriteFile(filepath.Join(root, "repograph.toml"), []byte(""), 0o644))

	got, err := DiscoverRepoConfig(repo)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoverRepoConfig_MissEverywhere(t *testing.T) {
	got, err := DiscoverRepoConfig(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}
