package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[profile.default]
format = "markdown"
max_tokens = 50000

[profile.finvault]
extends = "default"
format = "xml"
ignore = ["internal/secrets/**"]

[[profile.finvault.custom_priority]]
pattern = "core/**"
weight = 0.5
`

func TestLoadFromString(t *testing.T) {
	cfg, err := LoadFromString(sampleConfig, "test")
	require.NoError(t, err)
	require.Contains(t, cfg.Profile, "finvault")

	fv := cfg.Profile["finvault"]
	assert.Equal(t, "xml", fv.Format)
	require.NotNil(t, fv.Extends)
	assert.Equal(t, "default", *fv.Extends)
	require.Len(t, fv.CustomPriority, 1)
	assert.Equal(t, "core/**", fv.CustomPriority[0].Pattern)
	assert.Equal(t, 0.5, fv.CustomPriority[0].Weight)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repograph.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Profile, 2)
}

func TestLoadFromString_InvalidTOML(t *testing.T) {
	_, err := LoadFromString("[profile.default\nformat=", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestLoadFromString_UnknownKeysTolerated(t *testing.T) {
	cfg, err := LoadFromString("[profile.default]\nfuture_knob = true\nformat = \"xml\"\n", "fwd")
	require.NoError(t, err)
	assert.Equal(t, "xml", cfg.Profile["default"].Format)
}
