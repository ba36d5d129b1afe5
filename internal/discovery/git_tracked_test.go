package discovery

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initGitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not on PATH")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=t", "GIT_AUTHOR_EMAIL=t@t",
			"GIT_COMMITTER_NAME=t", "GIT_COMMITTER_EMAIL=t@t",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	run("init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracked.go"), []byte("package x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.go"), []byte("package x\n"), 0o644))
	run("add", "tracked.go")
	run("commit", "-q", "-m", "add tracked file")
	return dir
}

func TestGitTrackedFiles(t *testing.T) {
	dir := initGitRepo(t)
	tracked, err := GitTrackedFiles(dir)
	require.NoError(t, err)
	assert.True(t, tracked["tracked.go"])
	assert.False(t, tracked["untracked.go"])
}

func TestGitTrackedFiles_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not on PATH")
	}
	_, err := GitTrackedFiles(t.TempDir())
	require.Error(t, err)
}

func TestRecentlyChangedFiles(t *testing.T) {
	dir := initGitRepo(t)
	counts, err := RecentlyChangedFiles(dir, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["tracked.go"])

	none, err := RecentlyChangedFiles(dir, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
