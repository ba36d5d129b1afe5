package relevance

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/repograph/repograph/internal/pipeline"
)

// Tier is a coarse display grouping (0 first, 5 last) used by the token
// report and the table of contents. It never influences selection order or
// budget admission; Priority does that.
type Tier int

const (
	// Tier0Critical: root manifests and build definitions.
	Tier0Critical Tier = 0
	// Tier1Primary: primary source directories.
	Tier1Primary Tier = 1
	// Tier2Secondary: everything unmatched.
	Tier2Secondary Tier = 2
	// Tier3Tests: test files and directories.
	Tier3Tests Tier = 3
	// Tier4Docs: documentation.
	Tier4Docs Tier = 4
	// Tier5Low: CI plumbing and generated files.
	Tier5Low Tier = 5
)

// String returns the tier's short label.
func (t Tier) String() string {
	switch t {
	case Tier0Critical:
		return "critical"
	case Tier1Primary:
		return "primary"
	case Tier2Secondary:
		return "secondary"
	case Tier3Tests:
		return "tests"
	case Tier4Docs:
		return "docs"
	case Tier5Low:
		return "low"
	default:
		return fmt.Sprintf("tier%d", int(t))
	}
}

// TierDefinition assigns a tier to every path matching one of its doublestar
// patterns.
type TierDefinition struct {
	Tier     Tier     `toml:"tier"`
	Patterns []string `toml:"patterns"`
}

// DefaultTierDefinitions is the built-in display grouping, consulted when no
// profile overrides it. Definitions are evaluated in ascending tier order and
// the first match wins, so src/app_test.go lands in tier 1 even though the
// tier 3 pattern "**/*_test.go" would also match it.
func DefaultTierDefinitions() []TierDefinition {
	return []TierDefinition{
		{Tier: Tier0Critical, Patterns: []string{
			"go.mod", "package.json", "Cargo.toml", "pyproject.toml",
			"Makefile", "Dockerfile", "docker-compose.yml", "docker-compose.yaml",
			"*.toml", "*.yaml", "*.yml",
		}},
		{Tier: Tier3Tests, Patterns: []string{
			"**/*_test.go", "**/*.test.*", "**/*.spec.*",
			"test/**", "tests/**", "spec/**", "__tests__/**",
		}},
		{Tier: Tier4Docs, Patterns: []string{
			"**/*.md", "**/*.mdx", "**/*.rst", "docs/**", "doc/**",
		}},
		{Tier: Tier5Low, Patterns: []string{
			".github/**", ".gitlab-ci.yml", "**/*.lock", "**/*.sum",
			"**/*.min.js", "**/*.min.css", "**/*_generated.go", "**/*.pb.go",
		}},
		{Tier: Tier1Primary, Patterns: []string{
			"cmd/**", "src/**", "lib/**", "internal/**", "pkg/**", "app/**",
		}},
	}
}

// TierMatcher evaluates tier definitions against paths, first match wins.
// Definitions are sorted by ascending tier at construction so evaluation
// order is independent of caller order.
type TierMatcher struct {
	defs   []TierDefinition
	logger *slog.Logger
}

// NewTierMatcher builds a matcher over defs; nil or empty falls back to
// DefaultTierDefinitions.
func NewTierMatcher(defs []TierDefinition) *TierMatcher {
	if len(defs) == 0 {
		defs = DefaultTierDefinitions()
	}
	sorted := make([]TierDefinition, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tier < sorted[j].Tier })
	return &TierMatcher{
		defs:   sorted,
		logger: slog.Default().With("component", "tier-matcher"),
	}
}

// Match returns the tier for path, or Tier2Secondary when nothing matches.
// Invalid patterns never match.
func (m *TierMatcher) Match(path string) Tier {
	normalized := normalizePath(path)
	for _, def := range m.defs {
		for _, pattern := range def.Patterns {
			matched, err := doublestar.Match(pattern, normalized)
			if err != nil {
				m.logger.Debug("invalid tier pattern skipped", "pattern", pattern, "error", err)
				continue
			}
			if matched {
				return def.Tier
			}
		}
	}
	return Tier2Secondary
}

// ClassifyTiers stamps every descriptor's Tier from defs. Purely cosmetic:
// call order relative to sorting does not matter.
func ClassifyTiers(files []*pipeline.FileDescriptor, defs []TierDefinition) {
	matcher := NewTierMatcher(defs)
	for _, fd := range files {
		fd.Tier = int(matcher.Match(fd.Path))
	}
}

// GroupByTier partitions files by their Tier field, preserving input order
// within each group.
func GroupByTier(files []*pipeline.FileDescriptor) map[int][]*pipeline.FileDescriptor {
	groups := make(map[int][]*pipeline.FileDescriptor)
	for _, fd := range files {
		groups[fd.Tier] = append(groups[fd.Tier], fd)
	}
	return groups
}

// DirectoryGroup is one directory's slice of a selection: the directory key
// ("." for root-level files) and its files ordered by descending priority.
type DirectoryGroup struct {
	Dir   string
	Files []*pipeline.FileDescriptor
}

// GroupByDirectory partitions files by their immediate parent directory for
// display, groups ascending by key and files priority-ordered within each.
func GroupByDirectory(files []*pipeline.FileDescriptor) []DirectoryGroup {
	byDir := make(map[string][]*pipeline.FileDescriptor)
	for _, fd := range files {
		dir := "."
		if idx := strings.LastIndex(normalizePath(fd.Path), "/"); idx >= 0 {
			dir = normalizePath(fd.Path)[:idx]
		}
		byDir[dir] = append(byDir[dir], fd)
	}

	groups := make([]DirectoryGroup, 0, len(byDir))
	for dir, members := range byDir {
		SortByPriority(members)
		groups = append(groups, DirectoryGroup{Dir: dir, Files: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Dir < groups[j].Dir })
	return groups
}

// TierStat aggregates one tier for the token report.
type TierStat struct {
	Tier        int
	FileCount   int
	TotalTokens int
	FilePaths   []string
}

// TierSummary computes per-tier statistics, ascending by tier, with sorted
// paths inside each entry.
func TierSummary(files []*pipeline.FileDescriptor) []TierStat {
	byTier := make(map[int]*TierStat)
	for _, fd := range files {
		stat, ok := byTier[fd.Tier]
		if !ok {
			stat = &TierStat{Tier: fd.Tier}
			byTier[fd.Tier] = stat
		}
		stat.FileCount++
		stat.TotalTokens += fd.TokenCount
		stat.FilePaths = append(stat.FilePaths, fd.Path)
	}

	stats := make([]TierStat, 0, len(byTier))
	for _, stat := range byTier {
		sort.Strings(stat.FilePaths)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Tier < stats[j].Tier })
	return stats
}
