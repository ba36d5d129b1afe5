package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// DefaultOutput is the default output file path when --output is not specified.
const DefaultOutput = "repograph-output.md"

// DefaultSkipLargeFiles is the default file size threshold (1MB) above which
// files are skipped during discovery.
const DefaultSkipLargeFiles int64 = 1 * 1024 * 1024

// FlagValues collects all parsed global flag values from the CLI. This struct
// is populated by BindFlags and passed to downstream pipeline stages.
type FlagValues struct {
	Dir             string
	Output          string
	Filters         []string // file extensions (without leading dots)
	Includes        []string // include glob patterns
	Excludes        []string // exclude glob patterns
	Format          string
	Target          string
	GitTrackedOnly  bool
	SkipLargeFiles  int64 // bytes
	FollowSymlinks  bool
	IncludeHidden   bool
	Parallel        bool
	IgnoreFile      string // custom ignore file name, gitignore syntax
	Prompt          string // free-text prompt; presence enables binary filtering
	Profile         string // named profile to resolve
	ProfileFile     string // standalone profile TOML path

	Stdout          bool
	LineNumbers     bool
	Verbose         bool
	Quiet           bool

	// DocumentHeaderTemplate, FileHeaderTemplate, and LLMTool have no flag
	// of their own; they arrive from the resolved profile.
	DocumentHeaderTemplate string
	FileHeaderTemplate     string
	LLMTool                string

	MaxTokens             int
	Tokenizer             string
	TruncationStrategy    string
	SemanticDepth         int
	CustomPriority        []string // "pattern=weight" pairs
	IncludeTree           bool
	IncludeStats          bool
	IncludeTOC            bool
	EnhancedContext       bool
	GitContext            bool
	GitContextDepth       int
	StopOnFirstBudgetMiss bool
	MCP                   bool

	// TokenCountOnly, when set, makes generate print the token report and
	// exit without writing the rendered context document.
	TokenCountOnly bool
	// TopFiles, when > 0, prints the N highest-token-count files instead of
	// the summary token report. 0 disables the report.
	TopFiles int

	// Heatmap is set by the preview command's local --heatmap flag and
	// synced back here so downstream reporting has a single source of truth.
	Heatmap bool
}

// DefaultFlagValues returns a FlagValues populated with the same defaults
// BindFlags would apply to an unmodified command, for callers that drive the
// pipeline without going through Cobra (e.g. the MCP server).
func DefaultFlagValues() *FlagValues {
	return &FlagValues{
		Dir:                ".",
		Output:             DefaultOutput,
		Format:             "markdown",
		Target:             "generic",
		SkipLargeFiles:     DefaultSkipLargeFiles,
		Parallel:           true,
		IgnoreFile:         ".repographignore",
		Tokenizer:          "cl100k_base",
		TruncationStrategy: "skip",
		SemanticDepth:      0,
		IncludeTree:        true,
		IncludeStats:       true,
		IncludeTOC:         true,
		EnhancedContext:    true,
		GitContextDepth:    50,
	}
}

// BindFlags registers all global persistent flags on the given Cobra command
// and returns a FlagValues pointer that will be populated when the command is
// executed. Callers should access the returned struct after flag parsing.
func BindFlags(cmd *cobra.Command) *FlagValues {
	fv := &FlagValues{}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fv.Dir, "dir", "d", ".", "target directory to scan")
	pf.StringVarP(&fv.Output, "output", "o", DefaultOutput, "output file path")
	pf.StringArrayVarP(&fv.Filters, "filter", "f", nil, "filter by file extension (repeatable, e.g. -f ts -f go)")
	pf.StringArrayVar(&fv.Includes, "include", nil, "include glob pattern (repeatable)")
	pf.StringArrayVar(&fv.Excludes, "exclude", nil, "exclude glob pattern (repeatable)")
	pf.StringVar(&fv.Format, "format", "markdown", "output format: markdown, xml")
	pf.StringVar(&fv.Target, "target", "generic", "LLM target: claude, chatgpt, generic")
	pf.BoolVar(&fv.GitTrackedOnly, "git-tracked-only", false, "only include files in git index")
	pf.BoolVarP(&fv.FollowSymlinks, "follow-symlinks", "L", false, "follow symbolic links (loop-safe)")
	pf.BoolVar(&fv.IncludeHidden, "hidden", false, "include hidden files and directories")
	pf.BoolVar(&fv.Parallel, "parallel", true, "process files with a parallel worker pool")
	pf.StringVar(&fv.IgnoreFile, "ignore-file", ".repographignore", "name of the custom ignore file (gitignore syntax)")
	pf.StringVar(&fv.Prompt, "prompt", "", "prompt to embed in the document; also enables binary filtering")
	pf.StringVarP(&fv.Profile, "profile", "p", "", "named profile from repograph.toml to apply")
	pf.StringVar(&fv.ProfileFile, "profile-file", "", "standalone profile TOML file (skips repograph.toml discovery)")
	pf.StringVar(&skipLargeFilesRaw, "skip-large-files", "1MB", "skip files larger than threshold (e.g. 500KB, 2MB)")
	pf.BoolVar(&fv.Stdout, "stdout", false, "output to stdout instead of file")
	pf.BoolVar(&fv.LineNumbers, "line-numbers", false, "add line numbers to code blocks")
	pf.BoolVarP(&fv.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&fv.Quiet, "quiet", "q", false, "suppress all output except errors")

	pf.IntVar(&fv.MaxTokens, "max-tokens", 0, "token budget cap (0 uses the profile default)")
	pf.StringVar(&fv.Tokenizer, "tokenizer", "cl100k_base", "token counting model: cl100k_base, o200k_base, none")
	pf.StringVar(&fv.TruncationStrategy, "truncation-strategy", "skip", "how to handle files that would exceed the remaining budget: skip, truncate")
	pf.IntVar(&fv.SemanticDepth, "semantic-depth", 0, "import-hop depth limit for dependency-graph traversal")
	pf.StringArrayVar(&fv.CustomPriority, "priority", nil, "additive priority rule as pattern=weight (repeatable)")
	pf.BoolVar(&fv.IncludeTree, "include-tree", true, "include the file-tree section in the rendered document")
	pf.BoolVar(&fv.IncludeStats, "include-stats", true, "include the statistics section in the rendered document")
	pf.BoolVar(&fv.IncludeTOC, "include-toc", true, "include a table of contents in the rendered document")
	pf.BoolVar(&fv.EnhancedContext, "enhanced-context", true, "include semantic analysis summaries alongside file content")
	pf.BoolVar(&fv.GitContext, "git-context", false, "enrich priority using recent git commit history")
	pf.IntVar(&fv.GitContextDepth, "git-context-depth", 50, "number of recent commits inspected when --git-context is set")
	pf.BoolVar(&fv.StopOnFirstBudgetMiss, "stop-on-first-budget-miss", false, "stop admitting files at the first one that exceeds the remaining budget")
	pf.BoolVar(&fv.MCP, "mcp", false, "serve the pipeline as an MCP tool over stdio instead of running once")
	pf.BoolVar(&fv.TokenCountOnly, "token-count", false, "print the token report and exit without writing output")
	pf.IntVar(&fv.TopFiles, "top-files", 0, "print the N highest-token-count files (0 disables)")

	return fv
}

// skipLargeFilesRaw holds the raw string value for --skip-large-files before
// parsing. This is a package-level variable because Cobra needs a string target
// for binding, and we parse it into FlagValues.SkipLargeFiles during validation.
var skipLargeFilesRaw string

// ValidateFlags checks the parsed flag values for correctness and mutual
// exclusion. It also applies environment variable fallbacks and normalizes
// values. Call this from PersistentPreRunE after Cobra has parsed the flags.
func ValidateFlags(fv *FlagValues, cmd *cobra.Command) error {
	// Apply environment variable fallbacks for flags not explicitly set.
	applyEnvOverrides(fv, cmd)

	// Mutual exclusion: --verbose and --quiet
	if fv.Verbose && fv.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	// Validate --dir exists and is a directory
	info, err := os.Stat(fv.Dir)
	if err != nil {
		return fmt.Errorf("--dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("--dir: %s is not a directory", fv.Dir)
	}

	// Validate --format
	switch fv.Format {
	case "markdown", "xml":
		// valid
	default:
		return fmt.Errorf("--format: invalid value %q (allowed: markdown, xml)", fv.Format)
	}

	// Validate --target
	switch fv.Target {
	case "claude", "chatgpt", "generic":
		// valid
	default:
		return fmt.Errorf("--target: invalid value %q (allowed: claude, chatgpt, generic)", fv.Target)
	}

	// Parse --skip-large-files
	size, err := ParseSize(skipLargeFilesRaw)
	if err != nil {
		return fmt.Errorf("--skip-large-files: %w", err)
	}
	fv.SkipLargeFiles = size

	// Default and validate --tokenizer.
	if fv.Tokenizer == "" {
		fv.Tokenizer = "cl100k_base"
	}
	switch fv.Tokenizer {
	case "cl100k_base", "o200k_base", "none":
		// valid
	default:
		return fmt.Errorf("--tokenizer: invalid value %q (allowed: cl100k_base, o200k_base, none)", fv.Tokenizer)
	}

	// Default and validate --truncation-strategy.
	if fv.TruncationStrategy == "" {
		fv.TruncationStrategy = "skip"
	}
	switch fv.TruncationStrategy {
	case "skip", "truncate":
		// valid
	default:
		return fmt.Errorf("--truncation-strategy: invalid value %q (allowed: skip, truncate)", fv.TruncationStrategy)
	}

	// Normalize --filter: strip leading dots
	for i, f := range fv.Filters {
		fv.Filters[i] = strings.TrimLeft(f, ".")
	}

	if fv.IgnoreFile == "" {
		fv.IgnoreFile = ".repographignore"
	}
	if strings.ContainsAny(fv.IgnoreFile, "/\\") {
		return fmt.Errorf("--ignore-file: %q must be a bare file name", fv.IgnoreFile)
	}

	// Validate --priority entries parse as pattern=weight.
	for _, p := range fv.CustomPriority {
		if _, _, err := ParsePriorityRule(p); err != nil {
			return fmt.Errorf("--priority: %w", err)
		}
	}

	return nil
}

// ParsePriorityRule splits a "pattern=weight" flag value into its glob
// pattern and additive weight. The weight must parse as a float64.
func ParsePriorityRule(s string) (pattern string, weight float64, err error) {
	idx := strings.LastIndex(s, "=")
	if idx <= 0 || idx == len(s)-1 {
		return "", 0, fmt.Errorf("invalid priority rule %q: expected pattern=weight", s)
	}
	pattern = s[:idx]
	weight, err = strconv.ParseFloat(s[idx+1:], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid priority rule %q: %w", s, err)
	}
	return pattern, weight, nil
}

// applyEnvOverrides applies environment variable fallbacks for flags that were
// not explicitly set on the command line. The prefix is REPOGRAPH_.
func applyEnvOverrides(fv *FlagValues, cmd *cobra.Command) {
	envMap := map[string]func(string){
		"REPOGRAPH_DIR": func(v string) { fv.Dir = v },
		"REPOGRAPH_OUTPUT": func(v string) { fv.Output = v },
		"REPOGRAPH_FORMAT": func(v string) { fv.Format = v },
		"REPOGRAPH_TARGET": func(v string) { fv.Target = v },
	}

	for env, setter := range envMap {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		// Only apply if the corresponding flag was not explicitly set.
		flagName := strings.ToLower(strings.TrimPrefix(env, "REPOGRAPH_"))
		if !cmd.Flags().Changed(flagName) {
			setter(v)
		}
	}

	// Boolean env vars
	if os.Getenv("REPOGRAPH_VERBOSE") == "1" && !cmd.Flags().Changed("verbose") {
		fv.Verbose = true
	}
	if os.Getenv("REPOGRAPH_QUIET") == "1" && !cmd.Flags().Changed("quiet") {
		fv.Quiet = true
	}
}

// ParseSize parses a human-readable size string into bytes. It supports KB, MB,
// and GB suffixes (case-insensitive). Plain numbers without a suffix are treated
// as bytes. KB = 1024, MB = 1048576, GB = 1073741824.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	upper := strings.ToUpper(s)

	var suffix string
	var multiplier int64

	switch {
	case strings.HasSuffix(upper, "GB"):
		suffix = "GB"
		multiplier = 1024 * 1024 * 1024
	case strings.HasSuffix(upper, "MB"):
		suffix = "MB"
		multiplier = 1024 * 1024
	case strings.HasSuffix(upper, "KB"):
		suffix = "KB"
		multiplier = 1024
	default:
		// Plain number, treat as bytes
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size: %q", s)
		}
		if n < 0 {
			return 0, fmt.Errorf("size must be non-negative: %q", s)
		}
		return n, nil
	}

	numStr := strings.TrimSpace(s[:len(s)-len(suffix)])
	n, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		// Try float for things like "1.5MB"
		f, ferr := strconv.ParseFloat(numStr, 64)
		if ferr != nil {
			return 0, fmt.Errorf("invalid size: %q", s)
		}
		if f < 0 {
			return 0, fmt.Errorf("size must be non-negative: %q", s)
		}
		return int64(f * float64(multiplier)), nil
	}
	if n < 0 {
		return 0, fmt.Errorf("size must be non-negative: %q", s)
	}
	return n * multiplier, nil
}

// ApplyResolvedProfile folds a resolved profile into fv for every setting
// whose flag the user did not set explicitly, keeping the precedence order:
// defaults < config files < environment < flags.
func ApplyResolvedProfile(fv *FlagValues, p *Profile, cmd *cobra.Command) {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }

	if !changed("output") && p.Output != "" {
		fv.Output = p.Output
	}
	if !changed("format") && p.Format != "" {
		fv.Format = p.Format
	}
	if !changed("target") && p.Target != "" {
		fv.Target = p.Target
	}
	if !changed("tokenizer") && p.Tokenizer != "" {
		fv.Tokenizer = p.Tokenizer
	}
	if !changed("max-tokens") && p.MaxTokens != 0 {
		fv.MaxTokens = p.MaxTokens
	}
	if !changed("semantic-depth") && p.SemanticDepth != 0 {
		fv.SemanticDepth = p.SemanticDepth
	}
	if !changed("ignore-file") && p.CustomIgnoreFile != "" {
		fv.IgnoreFile = p.CustomIgnoreFile
	}
	if !changed("git-context-depth") && p.GitContextDepth != 0 {
		fv.GitContextDepth = p.GitContextDepth
	}

	applyToggle := func(flag string, dst *bool, v *bool) {
		if !changed(flag) && v != nil {
			*dst = *v
		}
	}
	applyToggle("git-context", &fv.GitContext, p.GitContext)
	applyToggle("include-tree", &fv.IncludeTree, p.IncludeTree)
	applyToggle("include-stats", &fv.IncludeStats, p.IncludeStats)
	applyToggle("include-toc", &fv.IncludeTOC, p.IncludeTOC)
	applyToggle("enhanced-context", &fv.EnhancedContext, p.EnhancedContext)
	applyToggle("stop-on-first-budget-miss", &fv.StopOnFirstBudgetMiss, p.StopOnFirstBudgetMiss)

	// Profile ignore/include globs extend the flag-supplied ones rather than
	// replacing them: both layers name real exclusions the user asked for.
	fv.Excludes = append(fv.Excludes, p.Ignore...)
	fv.Includes = append(fv.Includes, p.Include...)
	for _, rule := range p.CustomPriority {
		fv.CustomPriority = append(fv.CustomPriority, fmt.Sprintf("%s=%g", rule.Pattern, rule.Weight))
	}

	fv.DocumentHeaderTemplate = p.DocumentHeaderTemplate
	fv.FileHeaderTemplate = p.FileHeaderTemplate
	fv.LLMTool = p.LLMTool
}
