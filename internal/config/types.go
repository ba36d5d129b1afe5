package config

// Config is the top-level configuration type parsed from a repograph.toml
// file. It holds a map of named profiles keyed by profile name. Profile
// names are case-sensitive. The special name "default" is the built-in
// fallback profile.
type Config struct {
	// Profile maps profile names to their configuration. Access via
	// cfg.Profile["default"] or cfg.Profile["finvault"].
	Profile map[string]*Profile `toml:"profile"`
}

// Profile defines all settings for a single named profile. Fields with zero
// values are considered unset and will be filled in by the merge/inheritance
// pipeline. The Extends field enables profile inheritance.
type Profile struct {
	// Extends is the name of a parent profile to inherit from. When set,
	// all unset fields in this profile are filled from the named parent.
	// A nil pointer means no inheritance.
	Extends *string `toml:"extends"`

	// Output is the file path for the generated context document.
	// Example: "repograph-output.md" or ".repograph/finvault-context.md"
	Output string `toml:"output"`

	// Format controls the output format. Valid values: "markdown", "xml".
	Format string `toml:"format"`

	// MaxTokens is the token budget cap for the generated output. Files are
	// pruned from the selection (skip-and-continue, see tokenizer.BudgetEnforcer) if
	// the total would exceed this limit. Zero means unlimited.
	MaxTokens int `toml:"max_tokens"`

	// Tokenizer selects the token counting model. Valid values:
	// "cl100k_base", "o200k_base", "none".
	Tokenizer string `toml:"tokenizer"`

	// Target selects LLM-specific output optimizations.
	// Valid values: "claude", "chatgpt", "generic", or empty string.
	Target string `toml:"target"`

	// Ignore is the list of glob patterns for files and directories to
	// skip during discovery. Patterns are evaluated with doublestar.
	Ignore []string `toml:"ignore"`

	// CustomIgnoreFile is the filename of a project-local ignore file
	// (gitignore syntax) consulted in addition to .gitignore. Empty disables
	// the custom ignore file.
	CustomIgnoreFile string `toml:"custom_ignore_file"`

	// Include is the list of glob patterns for files to explicitly include.
	// It narrows the discovered set; it does not re-admit a path that the
	// default, .gitignore, or custom ignore rules ignore.
	Include []string `toml:"include"`

	// SemanticDepth bounds how many import hops the semantic analyzer's
	// dependency traversal follows from any seed file. Zero selects the
	// engine's default depth of 2.
	SemanticDepth int `toml:"semantic_depth"`

	// CustomPriority is an ordered list of additive priority rules. The
	// first pattern that matches a file's relative path applies; its Weight
	// is added to that file's base priority.
	CustomPriority []PriorityRuleConfig `toml:"custom_priority"`

	// IncludeTree toggles the file-tree section of the rendered document,
	// which also contributes to structural token overhead accounting. The
	// toggle fields are pointers so an absent key in one layer never masks a
	// lower layer's explicit choice.
	IncludeTree *bool `toml:"include_tree"`

	// IncludeStats toggles the statistics section of the rendered document.
	IncludeStats *bool `toml:"include_stats"`

	// IncludeTOC toggles the table-of-contents section of the rendered
	// document.
	IncludeTOC *bool `toml:"include_toc"`

	// EnhancedContext toggles inclusion of semantic analysis summaries
	// (imports/exports/calls) alongside raw file content in the rendered
	// document.
	EnhancedContext *bool `toml:"enhanced_context"`

	// GitContext toggles the optional git-history priority enrichment pass.
	GitContext *bool `toml:"git_context"`

	// GitContextDepth bounds how many recent commits are inspected when
	// GitContext is enabled.
	GitContextDepth int `toml:"git_context_depth"`

	// StopOnFirstBudgetMiss selects the budget-admission policy: false (the
	// default) keeps scanning candidates after a file is skipped for
	// exceeding the remaining budget, so a later, smaller file may still
	// fit; true stops the scan at the first miss.
	StopOnFirstBudgetMiss *bool `toml:"stop_on_first_budget_miss"`

	// DocumentHeaderTemplate is the template string used for the document
	// header. Supports a "{directory}" placeholder.
	DocumentHeaderTemplate string `toml:"document_header_template"`

	// FileHeaderTemplate is the template string used for each per-file
	// section header. Supports a "{path}" placeholder.
	FileHeaderTemplate string `toml:"file_header_template"`

	// LLMTool is an opaque selector naming the external LLM tool or MCP
	// client this run's output is destined for. Never interpreted by the
	// selection pipeline itself.
	LLMTool string `toml:"llm_tool"`

	// Relevance holds glob patterns used purely to label a file with a
	// table-of-contents display tier; it has no effect on selection order
	// or budget admission.
	Relevance RelevanceConfig `toml:"relevance"`
}

// PriorityRuleConfig is the TOML-facing form of a single custom priority
// rule: a glob pattern and the additive weight applied to files it matches.
type PriorityRuleConfig struct {
	Pattern string  `toml:"pattern"`
	Weight  float64 `toml:"weight"`
}

// RelevanceConfig defines glob patterns for each table-of-contents display
// tier. Files are assigned to the lowest-numbered matching tier (Tier 0 is
// displayed first). All fields are slices of doublestar glob patterns.
type RelevanceConfig struct {
	Tier0 []string `toml:"tier_0"`
	Tier1 []string `toml:"tier_1"`
	Tier2 []string `toml:"tier_2"`
	Tier3 []string `toml:"tier_3"`
	Tier4 []string `toml:"tier_4"`
	Tier5 []string `toml:"tier_5"`
}
