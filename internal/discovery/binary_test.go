package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repograph/repograph/internal/pipeline"
)

func TestIsBinary(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "text.go")
	require.NoError(t, os.WriteFile(text, []byte("package main\n"), 0o644))
	bin := filepath.Join(dir, "blob")
	require.NoError(t, os.WriteFile(bin, []byte{'a', 0x00, 'b'}, 0o644))
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	got, err := IsBinary(text)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = IsBinary(bin)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = IsBinary(empty)
	require.NoError(t, err)
	assert.False(t, got, "empty file is not binary")

	_, err = IsBinary(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestHasBinaryExtension(t *testing.T) {
	assert.True(t, HasBinaryExtension("img/logo.PNG"))
	assert.True(t, HasBinaryExtension("lib.so"))
	assert.False(t, HasBinaryExtension("main.go"))
	assert.False(t, HasBinaryExtension("Makefile"))
}

func TestShouldFilterBinary(t *testing.T) {
	assert.True(t, ShouldFilterBinary("x.png", pipeline.FileTypeOther))
	assert.True(t, ShouldFilterBinary("mystery.qqq", pipeline.FileTypeOther), "type Other drops under filtering")
	assert.False(t, ShouldFilterBinary("main.go", pipeline.FileTypeGo))
}
