package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestResolveProfile_ImplicitDefaultBase(t *testing.T) {
	profiles := map[string]*Profile{
		"work": {Format: "xml"},
	}
	res, err := ResolveProfile("work", profiles)
	require.NoError(t, err)

	assert.Equal(t, []string{"work", "default"}, res.Chain)
	assert.Equal(t, "xml", res.Profile.Format)
	// Unset fields fall through to the built-in defaults.
	assert.Equal(t, "cl100k_base", res.Profile.Tokenizer)
	assert.Equal(t, 128000, res.Profile.MaxTokens)
	assert.Nil(t, res.Profile.Extends)
}

func TestResolveProfile_ExplicitChain(t *testing.T) {
	profiles := map[string]*Profile{
		"base":  {MaxTokens: 1000, Format: "markdown"},
		"child": {Extends: strptr("base"), Format: "xml"},
	}
	res, err := ResolveProfile("child", profiles)
	require.NoError(t, err)

	assert.Equal(t, []string{"child", "base", "default"}, res.Chain)
	assert.Equal(t, "xml", res.Profile.Format)       // child wins
	assert.Equal(t, 1000, res.Profile.MaxTokens)     // inherited from base
}

func TestResolveProfile_SlicesReplaceWholesale(t *testing.T) {
	profiles := map[string]*Profile{
		"base":  {Ignore: []string{"a/**", "b/**"}},
		"child": {Extends: strptr("base"), Ignore: []string{"c/**"}},
	}
	res, err := ResolveProfile("child", profiles)
	require.NoError(t, err)
	assert.Equal(t, []string{"c/**"}, res.Profile.Ignore)
}

func TestResolveProfile_CycleDetected(t *testing.T) {
	profiles := map[string]*Profile{
		"a": {Extends: strptr("b")},
		"b": {Extends: strptr("a")},
	}
	_, err := ResolveProfile("a", profiles)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular")

	selfref := map[string]*Profile{"x": {Extends: strptr("x")}}
	_, err = ResolveProfile("x", selfref)
	require.Error(t, err)
}

func TestResolveProfile_UnknownProfile(t *testing.T) {
	_, err := ResolveProfile("ghost", map[string]*Profile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestResolveProfile_DefaultAlwaysAvailable(t *testing.T) {
	res, err := ResolveProfile("default", map[string]*Profile{})
	require.NoError(t, err)
	assert.Equal(t, "markdown", res.Profile.Format)
}
