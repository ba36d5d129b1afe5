// Package semantic extracts imports, calls, type references, and exported
// function definitions from source files on a per-language basis.
package semantic

import (
	"github.com/repograph/repograph/internal/pipeline"
)

// SemanticContext carries the depth budget and visited-set state threaded
// through recursive analysis of a file's dependency neighborhood. The
// visited set is copy-on-write per frame: deriving a child context never
// mutates the parent's set, so sibling branches of the dependency DAG never
// observe each other's visits and a file may legally be revisited on two
// different branches while a single path can never cycle back to itself.
type SemanticContext struct {
	Depth        int
	MaxDepth     int
	visited      map[string]struct{}
}

// NewSemanticContext creates a root context with the given depth budget and
// an empty visited set.
func NewSemanticContext(maxDepth int) SemanticContext {
	return SemanticContext{Depth: 0, MaxDepth: maxDepth, visited: map[string]struct{}{}}
}

// Child derives the context for descending into target. It returns false
// when there is no depth room left or target has already been visited on
// this path; otherwise it returns a new SemanticContext with target added to
// a freshly copied visited set.
func (c SemanticContext) Child(target string) (SemanticContext, bool) {
	if c.Depth >= c.MaxDepth {
		return SemanticContext{}, false
	}
	if _, seen := c.visited[target]; seen {
		return SemanticContext{}, false
	}

	next := make(map[string]struct{}, len(c.visited)+1)
	for k := range c.visited {
		next[k] = struct{}{}
	}
	next[target] = struct{}{}

	return SemanticContext{Depth: c.Depth + 1, MaxDepth: c.MaxDepth, visited: next}, true
}

// AnalysisResult is the output of analyzing a single file's content: every
// import, call, type reference, and exported function definition the
// analyzer could extract. A zero-value AnalysisResult is the valid, non-fatal
// "nothing found" outcome -- callers never treat an empty result as an error.
type AnalysisResult struct {
	Imports           []pipeline.Import
	FunctionCalls     []pipeline.FunctionCall
	TypeReferences    []pipeline.TypeReference
	ExportedFunctions []pipeline.FunctionDefinition

	// Warnings collects non-fatal extraction issues (partial parses,
	// skipped constructs). They surface in the run's diagnostics, never as
	// errors.
	Warnings []string
}

// LanguageAnalyzer is the capability-set interface every per-language
// extractor implements. CanHandle lets the registry dispatch by extension
// without reflection.
type LanguageAnalyzer interface {
	Name() string
	SupportedExtensions() []string
	CanHandle(ext string) bool
	AnalyzeFile(path, content string, ctx SemanticContext) (AnalysisResult, error)

	// ResolveTypeDefinition attempts to locate the file defining typeName,
	// searching from the perspective of fromFile. Analyzers without a
	// cheap way to answer return ("", false).
	ResolveTypeDefinition(typeName, fromFile, projectRoot string) (string, bool)
}
