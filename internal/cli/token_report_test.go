package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repograph/repograph/internal/pipeline"
)

func TestPrintTokenReport(t *testing.T) {
	files := []*pipeline.FileDescriptor{
		{Path: "src/a.go", Tier: 1, TokenCount: 120},
		{Path: "go.mod", Tier: 0, TokenCount: 30},
	}
	var buf bytes.Buffer
	PrintTokenReport(&buf, files, "none", 1000)
	out := buf.String()
	assert.Contains(t, out, "Token Report (none)")
	assert.Contains(t, out, "Total files:  2")
	assert.Contains(t, out, "150")
}

func TestPrintTopFiles(t *testing.T) {
	files := []*pipeline.FileDescriptor{
		{Path: "small.go", TokenCount: 5},
		{Path: "big.go", TokenCount: 500},
	}
	var buf bytes.Buffer
	PrintTopFiles(&buf, files, 1)
	out := buf.String()
	assert.Contains(t, out, "Top 1 Files")
	assert.Contains(t, out, "big.go")
	assert.NotContains(t, out, "small.go")
}
