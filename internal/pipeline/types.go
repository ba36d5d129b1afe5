// Package pipeline defines the central data types shared across all pipeline
// stages in Repograph. These types serve as the data backbone: discovery,
// semantic analysis, dependency graph construction, relevance prioritization,
// tokenization, and rendering all operate on the same DTOs defined here.
//
// This package has zero external dependencies -- only stdlib types.
// It contains only data types and lightweight validation helpers; no business logic.
package pipeline

import "math"

// ExitCode represents the process exit code returned by the repograph CLI.
type ExitCode int

const (
	// ExitSuccess indicates the pipeline completed successfully.
	ExitSuccess ExitCode = 0

	// ExitError indicates a fatal error occurred.
	ExitError ExitCode = 1

	// ExitPartial indicates partial success: some files failed processing but
	// output was still generated for the rest.
	ExitPartial ExitCode = 2
)

// OutputFormat specifies the format of the rendered context document.
type OutputFormat string

const (
	// FormatMarkdown renders the context document as Markdown with fenced code blocks.
	FormatMarkdown OutputFormat = "markdown"

	// FormatXML renders the context document as XML, optimized for Claude's
	// XML-native parsing capabilities.
	FormatXML OutputFormat = "xml"
)

// LLMTarget identifies the target LLM platform, allowing format and token
// defaults to be tuned per model family.
type LLMTarget string

const (
	// TargetClaude targets Anthropic Claude models. Defaults to XML output
	// format and cl100k_base tokenizer.
	TargetClaude LLMTarget = "claude"

	// TargetChatGPT targets OpenAI ChatGPT/GPT-4 models. Defaults to Markdown
	// output format.
	TargetChatGPT LLMTarget = "chatgpt"

	// TargetGeneric is a generic target with no model-specific optimizations.
	// Uses Markdown output format and cl100k_base tokenizer.
	TargetGeneric LLMTarget = "generic"
)

// FileType is the closed enumeration of languages/formats the base priority
// table and the semantic analyzer registry both key off of.
type FileType string

const (
	FileTypeRust       FileType = "rust"
	FileTypeTypeScript FileType = "typescript"
	FileTypePython     FileType = "python"
	FileTypeJavaScript FileType = "javascript"
	FileTypeGo         FileType = "go"
	FileTypeJava       FileType = "java"
	FileTypeCPP        FileType = "cpp"
	FileTypeCSharp     FileType = "csharp"
	FileTypeSwift      FileType = "swift"
	FileTypeKotlin     FileType = "kotlin"
	FileTypeDart       FileType = "dart"
	FileTypeC          FileType = "c"
	FileTypeRuby       FileType = "ruby"
	FileTypeScala      FileType = "scala"
	FileTypeJulia      FileType = "julia"
	FileTypeElixir     FileType = "elixir"
	FileTypePHP        FileType = "php"
	FileTypeHaskell    FileType = "haskell"
	FileTypeR          FileType = "r"
	FileTypeElm        FileType = "elm"
	FileTypeLua        FileType = "lua"
	FileTypeMarkdown   FileType = "markdown"
	FileTypeJSON       FileType = "json"
	FileTypeYAML       FileType = "yaml"
	FileTypeTOML       FileType = "toml"
	FileTypeXML        FileType = "xml"
	FileTypeHTML       FileType = "html"
	FileTypeCSS        FileType = "css"
	FileTypeText       FileType = "text"
	FileTypeOther      FileType = "other"
)

// DefaultTier is the relevance tier assigned to files that do not match any
// explicit tier pattern. Tiers no longer drive inclusion order or budget
// admission (Priority and the dependency graph do, per the priority model);
// they remain available purely as a table-of-contents grouping label.
const DefaultTier = 2

// Import is an immutable record of a single import/require/use statement
// found by the semantic analyzer.
type Import struct {
	// Module is the raw module string as written in source (e.g. "./util",
	// "github.com/foo/bar", "os").
	Module string

	// Line is the 1-based source line the import appears on.
	Line int

	// ResolvedPath is the absolute path the import resolved to, if any. Empty
	// for unresolved or external imports.
	ResolvedPath string

	// IsExternal reports whether the import resolved outside the project
	// root (or to a known standard-library/builtin module).
	IsExternal bool
}

// FunctionCall is an immutable record of a call expression the analyzer
// identified. OwningModule, when non-empty, names the module/package the
// call target belongs to (as far as the analyzer can tell without type
// checking).
type FunctionCall struct {
	Name         string
	Line         int
	OwningModule string
}

// TypeReference is an immutable record of a type name used in a file. When
// the type is resolved to an external dependency, ExternalPackage carries its
// "name vX.Y.Z" identity; when it resolves to an internal file,
// ResolvedDefPath carries the defining file's absolute path.
type TypeReference struct {
	Name             string
	Line             int
	OwningModule     string
	ExternalPackage  string
	ResolvedDefPath  string
}

// FunctionDefinition is an immutable record of an exported (public) function
// or method definition.
type FunctionDefinition struct {
	Name         string
	Line         int
	OwningModule string
}

// FileDescriptor is the central DTO passed between all pipeline stages. Each
// stage enriches or mutates the descriptor as the file flows through the
// pipeline:
//
//   - Discovery: sets Path, AbsPath, Size, FileType, Priority (base), IsSymlink, IsBinary
//   - Content loading: sets Content, ContentHash
//   - Semantic analysis: sets Imports, FunctionCalls, TypeReferences, ExportedFunctions
//   - Import resolution: sets ResolvedPath and IsExternal on Imports entries
//   - Dependency graph: sets ImportedBy
//   - Relevance: adjusts Priority, sets Tier (display grouping only)
//   - Tokenization: sets TokenCount
//
// Identity is AbsPath; Path is an observable label only, used for display and
// deterministic tie-breaking.
type FileDescriptor struct {
	// Path is the file path relative to the traversal root. Used for display
	// and deterministic output ordering (ascending tie-break key).
	Path string `json:"path"`

	// AbsPath is the absolute filesystem path. This is the descriptor's
	// identity: cache keys, graph nodes, and import resolution all key off it.
	AbsPath string `json:"abs_path"`

	// Size is the file size in bytes as reported by the filesystem.
	Size int64 `json:"size"`

	// FileType is the detected language/format tag, drawn from the closed
	// FileType enumeration. Drives the base priority lookup and semantic
	// analyzer dispatch.
	FileType FileType `json:"file_type"`

	// Tier is a relevance grouping label (0-5) used only for table-of-contents
	// display; it plays no role in selection order or budget admission.
	Tier int `json:"tier"`

	// Priority is the scalar ranking key. Larger is more important. Must
	// remain finite at every point in the pipeline; non-finite values are
	// never permitted to enter the ordering key (ties fall back to Path).
	Priority float64 `json:"priority"`

	// TokenCount is the number of tokens in Content, as counted by the token
	// counter.
	TokenCount int `json:"token_count"`

	// ContentHash is a fast, non-cryptographic 64-bit hash of Content, used
	// as the second half of the semantic-analysis memoization key.
	ContentHash uint64 `json:"content_hash"`

	// Content holds the file's UTF-8 text content, loaded through the shared
	// file cache.
	Content string `json:"content"`

	// IsSymlink indicates whether the file is a symbolic link.
	IsSymlink bool `json:"is_symlink"`

	// IsBinary indicates whether binary content was detected.
	IsBinary bool `json:"is_binary"`

	// Imports is the list of imports found by the semantic analyzer, in
	// source order.
	Imports []Import `json:"imports"`

	// ImportedBy is the list of absolute paths of files that import this
	// file, as computed by the dependency graph. Set only after the graph
	// build phase completes.
	ImportedBy []string `json:"imported_by"`

	// FunctionCalls is the list of call expressions found by the analyzer.
	FunctionCalls []FunctionCall `json:"function_calls"`

	// TypeReferences is the list of type references found by the analyzer.
	TypeReferences []TypeReference `json:"type_references"`

	// ExportedFunctions is the list of exported/public function definitions
	// found by the analyzer.
	ExportedFunctions []FunctionDefinition `json:"exported_functions"`

	// Error tracks per-file processing failures. When set, the engine drops
	// the file from the candidate set and reports it as a diagnostic. This
	// field does not serialize to JSON since the error interface cannot be
	// marshaled cleanly.
	Error error `json:"-"`
}

// IsValid reports whether the FileDescriptor has the minimum required fields
// for a valid pipeline entry. A descriptor is valid if it has a non-empty
// relative path.
func (fd *FileDescriptor) IsValid() bool {
	return fd.Path != ""
}

// ClampPriority caps fd.Priority at max and, when the current value is
// non-finite (NaN or +/-Inf), resets it to zero so it can never leak into a
// comparison as anything but a well-defined number.
func (fd *FileDescriptor) ClampPriority(max float64) {
	if math.IsNaN(fd.Priority) || math.IsInf(fd.Priority, 0) {
		fd.Priority = 0
		return
	}
	if fd.Priority > max {
		fd.Priority = max
	}
}

// DiscoveryResult holds the aggregate output of the file discovery phase,
// including the discovered files and summary statistics about what was found
// and what was skipped.
type DiscoveryResult struct {
	// Files is the slice of discovered file descriptors that passed all
	// filtering criteria (ignore patterns, binary detection, size limits).
	Files []FileDescriptor `json:"files"`

	// TotalFound is the total number of files encountered during directory
	// traversal, before any filtering was applied.
	TotalFound int `json:"total_found"`

	// TotalSkipped is the total number of files that were skipped due to
	// ignore patterns, binary detection, size limits, or other filters.
	TotalSkipped int `json:"total_skipped"`

	// SkipReasons maps each skip reason (e.g., "binary", "ignored",
	// "large_file") to the count of files skipped for that reason.
	SkipReasons map[string]int `json:"skip_reasons"`
}
