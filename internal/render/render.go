// Package render assembles the final context document body from a selected
// file set. Rendering fidelity is intentionally minimal: the pipeline's core
// concern is which files get selected and in what order, not how the
// resulting text is styled.
package render

import (
	"fmt"
	"strings"

	"github.com/repograph/repograph/internal/relevance"
	"github.com/repograph/repograph/internal/tokenizer"
)

// Options controls which optional sections Render includes and how file
// content is fenced.
type Options struct {
	Root            string
	Format          string // "markdown" or "xml"
	IncludeTree     bool
	IncludeStats    bool
	IncludeTOC      bool
	LineNumbers     bool
	EnhancedContext bool
	Target          string

	// HeaderTemplate and FileHeaderTemplate override the default document
	// and per-file headers; "{directory}" and "{path}" are the supported
	// placeholders.
	HeaderTemplate     string
	FileHeaderTemplate string
}

// defaultHeaderTemplate and defaultFileHeaderTemplate back empty template
// options.
const (
	defaultHeaderTemplate     = "# Repository context: {directory}"
	defaultFileHeaderTemplate = "## {path}"
)

// DocumentHeader expands the document header template for directory, used
// both as the rendered document's opening line and as the basis for
// estimating structural token overhead before the budget pass runs.
func DocumentHeader(template, directory string) string {
	if template == "" {
		template = defaultHeaderTemplate
	}
	return strings.ReplaceAll(template, "{directory}", directory)
}

// FileHeader expands the per-file header template for path.
func FileHeader(template, path string) string {
	if template == "" {
		template = defaultFileHeaderTemplate
	}
	return strings.ReplaceAll(template, "{path}", path)
}

// Render assembles the full document body in opts.Format from budget, the
// result of token budget admission.
func Render(opts Options, budget *tokenizer.BudgetResult) string {
	if opts.Format == "xml" {
		return renderXML(opts, budget)
	}
	return renderMarkdown(opts, budget)
}

func renderMarkdown(opts Options, budget *tokenizer.BudgetResult) string {
	var b strings.Builder

	fmt.Fprintln(&b, DocumentHeader(opts.HeaderTemplate, opts.Root))
	fmt.Fprintln(&b)

	if opts.IncludeStats {
		fmt.Fprintf(&b, "## Statistics\n\n- Files included: %d\n- Files excluded: %d\n- Tokens used: %d\n- Tokens remaining: %d\n\n",
			len(budget.IncludedFiles), len(budget.ExcludedFiles), budget.TotalTokens, budget.BudgetRemaining)
	}

	if opts.IncludeTree {
		fmt.Fprintln(&b, "## File tree")
		fmt.Fprintln(&b)
		for _, group := range relevance.GroupByDirectory(budget.IncludedFiles) {
			fmt.Fprintf(&b, "- %s/\n", group.Dir)
			for _, fd := range group.Files {
				fmt.Fprintf(&b, "  - %s\n", fd.Path)
			}
		}
		fmt.Fprintln(&b)
	}

	if opts.IncludeTOC {
		fmt.Fprintln(&b, "## Table of contents")
		fmt.Fprintln(&b)
		for _, fd := range budget.IncludedFiles {
			fmt.Fprintf(&b, "- [%s](#%s)\n", fd.Path, anchor(fd.Path))
		}
		fmt.Fprintln(&b)
	}

	for _, fd := range budget.IncludedFiles {
		fmt.Fprintf(&b, "%s\n\n", FileHeader(opts.FileHeaderTemplate, fd.Path))
		if opts.EnhancedContext && len(fd.Imports) > 0 {
			fmt.Fprintln(&b, "Imports:")
			for _, imp := range fd.Imports {
				fmt.Fprintf(&b, "- %s\n", imp.Module)
			}
			fmt.Fprintln(&b)
		}
		fmt.Fprintln(&b, "```")
		fmt.Fprint(&b, contentWithLineNumbers(fd.Content, opts.LineNumbers))
		fmt.Fprintln(&b, "```")
		fmt.Fprintln(&b)
	}

	return b.String()
}

func renderXML(opts Options, budget *tokenizer.BudgetResult) string {
	var b strings.Builder

	fmt.Fprintln(&b, "<repository_context>")
	if opts.IncludeStats {
		fmt.Fprintf(&b, "  <statistics files_included=\"%d\" files_excluded=\"%d\" tokens_used=\"%d\" tokens_remaining=\"%d\"/>\n",
			len(budget.IncludedFiles), len(budget.ExcludedFiles), budget.TotalTokens, budget.BudgetRemaining)
	}
	for _, fd := range budget.IncludedFiles {
		fmt.Fprintf(&b, "  <file path=%q>\n", fd.Path)
		fmt.Fprintln(&b, "    <content><![CDATA[")
		fmt.Fprint(&b, contentWithLineNumbers(fd.Content, opts.LineNumbers))
		fmt.Fprintln(&b, "]]></content>")
		fmt.Fprintln(&b, "  </file>")
	}
	fmt.Fprintln(&b, "</repository_context>")

	return b.String()
}

func contentWithLineNumbers(content string, withNumbers bool) string {
	if !withNumbers || content == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%4d  %s\n", i+1, line)
	}
	return b.String()
}

func anchor(path string) string {
	replaced := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, path)
	return replaced
}
