package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repograph/repograph/internal/pipeline"
	"github.com/repograph/repograph/internal/tokenizer"
)

func sampleBudget() *tokenizer.BudgetResult {
	return &tokenizer.BudgetResult{
		IncludedFiles: []*pipeline.FileDescriptor{
			{Path: "src/main.rs", Content: "fn main() {}\n", TokenCount: 4,
				Imports: []pipeline.Import{{Module: "lib"}}},
			{Path: "src/lib.rs", Content: "pub fn go() {}\n", TokenCount: 4},
		},
		ExcludedFiles: []*pipeline.FileDescriptor{{Path: "dropped.txt"}},
		TotalTokens:   8,
		BudgetUsed:    208,
	}
}

func TestDocumentHeaderTemplates(t *testing.T) {
	assert.Equal(t, "# Repository context: .", DocumentHeader("", "."))
	assert.Equal(t, "ctx for /repo", DocumentHeader("ctx for {directory}", "/repo"))
	assert.Equal(t, "## src/a.go", FileHeader("", "src/a.go"))
	assert.Equal(t, ">> src/a.go <<", FileHeader(">> {path} <<", "src/a.go"))
}

func TestRenderMarkdown_Sections(t *testing.T) {
	doc := Render(Options{
		Root: "/repo", Format: "markdown",
		IncludeStats: true, IncludeTree: true, IncludeTOC: true,
		EnhancedContext: true,
	}, sampleBudget())

	assert.Contains(t, doc, "# Repository context: /repo")
	assert.Contains(t, doc, "## Statistics")
	assert.Contains(t, doc, "## File tree")
	assert.Contains(t, doc, "## Table of contents")
	assert.Contains(t, doc, "## src/main.rs")
	assert.Contains(t, doc, "fn main() {}")
	assert.Contains(t, doc, "Imports:")
	assert.NotContains(t, doc, "dropped.txt", "excluded files never render")
}

func TestRenderMarkdown_TogglesOff(t *testing.T) {
	doc := Render(Options{Root: "/repo", Format: "markdown"}, sampleBudget())
	assert.NotContains(t, doc, "## Statistics")
	assert.NotContains(t, doc, "## File tree")
	assert.NotContains(t, doc, "## Table of contents")
	assert.Contains(t, doc, "## src/lib.rs")
}

func TestRenderMarkdown_CustomTemplates(t *testing.T) {
	doc := Render(Options{
		Root: "/repo", Format: "markdown",
		HeaderTemplate:     "=== {directory} ===",
		FileHeaderTemplate: "--- {path} ---",
	}, sampleBudget())
	assert.Contains(t, doc, "=== /repo ===")
	assert.Contains(t, doc, "--- src/main.rs ---")
}

func TestRenderMarkdown_LineNumbers(t *testing.T) {
	doc := Render(Options{Root: "/repo", Format: "markdown", LineNumbers: true}, sampleBudget())
	assert.Contains(t, doc, "   1  fn main() {}")
}

func TestRenderXML(t *testing.T) {
	doc := Render(Options{Root: "/repo", Format: "xml", IncludeStats: true}, sampleBudget())
	assert.True(t, strings.HasPrefix(doc, "<repository_context>"))
	assert.Contains(t, doc, `<file path="src/main.rs">`)
	assert.Contains(t, doc, "<![CDATA[")
	assert.Contains(t, doc, "<statistics")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</repository_context>"))
}
