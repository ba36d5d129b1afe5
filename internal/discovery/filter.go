package discovery

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternFilter applies the user's include/exclude globs and extension
// shorthand to candidate paths. Includes are positive overrides and excludes
// are negative ones; excludes are checked after includes so exclusion always
// wins on conflict.
type PatternFilter struct {
	includes   []string
	excludes   []string
	extensions []string
	logger     *slog.Logger
}

// PatternFilterOptions configures a PatternFilter. All patterns are expected
// to have passed SanitizePattern already.
type PatternFilterOptions struct {
	// Includes: doublestar globs. When any are present (or Extensions is
	// non-empty), a file must match one of them to be kept.
	Includes []string

	// Excludes: doublestar globs removing files regardless of includes.
	Excludes []string

	// Extensions: bare extension filters ("go", ".ts"), case-insensitive,
	// OR-ed with Includes.
	Extensions []string
}

// NewPatternFilter copies opts into a filter, normalizing extensions to
// lowercase without leading dots.
func NewPatternFilter(opts PatternFilterOptions) *PatternFilter {
	exts := make([]string, len(opts.Extensions))
	for i, e := range opts.Extensions {
		exts[i] = strings.ToLower(strings.TrimLeft(e, "."))
	}
	return &PatternFilter{
		includes:   append([]string(nil), opts.Includes...),
		excludes:   append([]string(nil), opts.Excludes...),
		extensions: exts,
		logger:     slog.Default().With("component", "pattern-filter"),
	}
}

// HasFilters reports whether the filter constrains anything at all.
func (f *PatternFilter) HasFilters() bool {
	return len(f.includes) > 0 || len(f.excludes) > 0 || len(f.extensions) > 0
}

// Matches reports whether the root-relative path survives the filter. A path
// matching an exclude is always dropped; otherwise, with no includes or
// extension filters configured everything passes, and with either configured
// the path must match one of them.
func (f *PatternFilter) Matches(path string) bool {
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if normalized == "" {
		return false
	}

	if f.matchesAny(f.excludes, normalized) {
		f.logger.Debug("path excluded", "path", normalized)
		return false
	}
	if len(f.includes) == 0 && len(f.extensions) == 0 {
		return true
	}
	if f.matchesAny(f.includes, normalized) {
		return true
	}
	if len(f.extensions) > 0 {
		ext := strings.ToLower(strings.TrimLeft(filepath.Ext(normalized), "."))
		for _, want := range f.extensions {
			if ext == want {
				return true
			}
		}
	}
	return false
}

func (f *PatternFilter) matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		matched, err := doublestar.Match(p, path)
		if err != nil {
			f.logger.Debug("invalid pattern skipped", "pattern", p, "error", err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
