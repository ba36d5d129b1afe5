package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repograph/repograph/internal/pipeline"
)

func TestRootCommandShape(t *testing.T) {
	cmd := RootCmd()
	assert.Equal(t, "repograph", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCommandFlagSurface(t *testing.T) {
	flags := RootCmd().PersistentFlags()
	for _, name := range []string{
		"dir", "output", "filter", "include", "exclude", "format", "target",
		"git-tracked-only", "skip-large-files", "follow-symlinks", "hidden",
		"parallel", "ignore-file", "prompt", "profile", "profile-file",
		"max-tokens", "tokenizer", "truncation-strategy", "semantic-depth",
		"priority", "include-tree", "include-stats", "include-toc",
		"enhanced-context", "git-context", "git-context-depth",
		"stop-on-first-budget-miss", "mcp", "token-count", "top-files",
	} {
		require.NotNil(t, flags.Lookup(name), "missing flag --%s", name)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range RootCmd().Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"generate", "preview", "browse", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestExtractExitCode(t *testing.T) {
	assert.Equal(t, 0, extractExitCode(nil))
	assert.Equal(t, 1, extractExitCode(errors.New("plain")))
	assert.Equal(t, 1, extractExitCode(pipeline.NewError("fatal", errors.New("cause"))))
	assert.Equal(t, 2, extractExitCode(pipeline.NewPartialError("partial", nil)))
	assert.Equal(t, 2, extractExitCode(fmt.Errorf("wrapped: %w", pipeline.NewPartialError("p", nil))))
}

func TestGlobalFlagsReturnsBoundValues(t *testing.T) {
	assert.Same(t, flagValues, GlobalFlags())
}
