package config

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriorityRule(t *testing.T) {
	pattern, weight, err := ParsePriorityRule("src/**=1.5")
	require.NoError(t, err)
	assert.Equal(t, "src/**", pattern)
	assert.Equal(t, 1.5, weight)

	pattern, weight, err = ParsePriorityRule("vendor/**=-0.5")
	require.NoError(t, err)
	assert.Equal(t, "vendor/**", pattern)
	assert.Equal(t, -0.5, weight)

	for _, bad := range []string{"", "nopattern", "=1.0", "src/**=", "src/**=abc"} {
		if _, _, err := ParsePriorityRule(bad); err == nil {
			t.Errorf("ParsePriorityRule(%q): expected error", bad)
		}
	}
}

func TestParseSize(t *testing.T) {
	cases := map[string]int64{
		"1024":  1024,
		"1KB":   1024,
		"2MB":   2 * 1024 * 1024,
		"1GB":   1024 * 1024 * 1024,
		"1.5MB": int64(1.5 * 1024 * 1024),
		"500kb": 500 * 1024,
	}
	for in, want := range cases {
		got, err := ParseSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "abc", "-5", "-1MB", "MB"} {
		if _, err := ParseSize(bad); err == nil {
			t.Errorf("ParseSize(%q): expected error", bad)
		}
	}
}

func TestDefaultFlagValues(t *testing.T) {
	fv := DefaultFlagValues()
	assert.Equal(t, ".", fv.Dir)
	assert.Equal(t, "cl100k_base", fv.Tokenizer)
	assert.Equal(t, ".repographignore", fv.IgnoreFile)
	assert.True(t, fv.Parallel)
	assert.True(t, fv.IncludeTree)
}

func TestBindFlags_RegistersAndDefaults(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	fv := BindFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--dir", "/tmp/x", "--max-tokens", "5000", "--priority", "core/**=2",
		"--hidden", "--follow-symlinks",
	}))
	assert.Equal(t, "/tmp/x", fv.Dir)
	assert.Equal(t, 5000, fv.MaxTokens)
	assert.Equal(t, []string{"core/**=2"}, fv.CustomPriority)
	assert.True(t, fv.IncludeHidden)
	assert.True(t, fv.FollowSymlinks)
}

func TestApplyResolvedProfile_FlagsWin(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	fv := BindFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--format", "markdown"}))
	// Simulate PersistentPreRunE defaults for unparsed values.
	fv.Tokenizer = "cl100k_base"

	off := false
	p := &Profile{
		Format:      "xml",        // masked by the explicit flag
		Tokenizer:   "o200k_base", // applies: flag untouched
		MaxTokens:   9000,
		IncludeTree: &off,
		Ignore:      []string{"secret/**"},
		CustomPriority: []PriorityRuleConfig{
			{Pattern: "core/**", Weight: 1.5},
		},
		DocumentHeaderTemplate: "# Ctx: {directory}",
	}
	ApplyResolvedProfile(fv, p, cmd)

	assert.Equal(t, "markdown", fv.Format)
	assert.Equal(t, "o200k_base", fv.Tokenizer)
	assert.Equal(t, 9000, fv.MaxTokens)
	assert.False(t, fv.IncludeTree)
	assert.Contains(t, fv.Excludes, "secret/**")
	assert.Contains(t, fv.CustomPriority, "core/**=1.5")
	assert.Equal(t, "# Ctx: {directory}", fv.DocumentHeaderTemplate)
}

func TestApplyTargetPreset(t *testing.T) {
	p := &Profile{}
	require.NoError(t, ApplyTargetPreset(p, "claude"))
	assert.Equal(t, "xml", p.Format)
	assert.Equal(t, 200000, p.MaxTokens)

	require.NoError(t, ApplyTargetPreset(p, ""))
	assert.Error(t, ApplyTargetPreset(p, "bard"))
}
