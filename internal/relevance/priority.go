// Package relevance implements the priority model that decides selection
// order and budget admission: a closed per-language base table, path
// heuristics, user-supplied additive rules, and the dependency-graph boost.
// The integer Tier scheme survives alongside it purely as a display grouping
// for reports and the table of contents.
package relevance

import (
	"math"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/repograph/repograph/internal/pipeline"
)

// basePriority is the closed per-language base priority table. Languages not
// present here (including FileTypeOther) fall back to basePriorityDefault.
var basePriority = map[pipeline.FileType]float64{
	pipeline.FileTypeRust:       1.0,
	pipeline.FileTypeTypeScript: 0.95,
	pipeline.FileTypePython:     0.9,
	pipeline.FileTypeJavaScript: 0.9,
	pipeline.FileTypeGo:         0.9,
	pipeline.FileTypeJava:       0.85,
	pipeline.FileTypeCPP:        0.85,
	pipeline.FileTypeCSharp:     0.85,
	pipeline.FileTypeSwift:      0.85,
	pipeline.FileTypeKotlin:     0.85,
	pipeline.FileTypeDart:       0.85,
	pipeline.FileTypeC:          0.8,
	pipeline.FileTypeRuby:       0.8,
	pipeline.FileTypeScala:      0.8,
	pipeline.FileTypeJulia:      0.8,
	pipeline.FileTypeElixir:     0.8,
	pipeline.FileTypePHP:        0.75,
	pipeline.FileTypeHaskell:    0.75,
	pipeline.FileTypeR:          0.75,
	pipeline.FileTypeElm:        0.75,
	pipeline.FileTypeLua:        0.7,
	pipeline.FileTypeMarkdown:   0.6,
	pipeline.FileTypeJSON:       0.5,
	pipeline.FileTypeYAML:       0.5,
	pipeline.FileTypeTOML:       0.5,
	pipeline.FileTypeXML:        0.4,
	pipeline.FileTypeHTML:       0.4,
	pipeline.FileTypeCSS:        0.4,
	pipeline.FileTypeText:       0.3,
	pipeline.FileTypeOther:      0.2,
}

const basePriorityDefault = 0.2

// BasePriority returns the closed-table base priority for ft.
func BasePriority(ft pipeline.FileType) float64 {
	if p, ok := basePriority[ft]; ok {
		return p
	}
	return basePriorityDefault
}

// pathHeuristic is one multiplicative factor, applied when the lowercased
// relative path contains any of its substrings. Every matching heuristic
// applies, so "src/main.rs" collects both the entrypoint and the
// source-directory factors.
type pathHeuristic struct {
	Label      string
	Factor     float64
	substrings []string
}

var pathHeuristics = []pathHeuristic{
	{"entrypoint", 1.5, []string{"main", "index"}},
	{"source_dir", 1.2, []string{"lib", "src"}},
	{"test", 0.8, []string{"test", "spec"}},
	{"example", 0.7, []string{"example", "sample"}},
}

// rootManifestFactor applies to TOML/YAML/JSON files sitting directly at the
// traversal root.
const rootManifestFactor = 1.3

func (h pathHeuristic) matches(lowerPath string) bool {
	for _, s := range h.substrings {
		if strings.Contains(lowerPath, s) {
			return true
		}
	}
	return false
}

func isRootManifest(path string, ft pipeline.FileType) bool {
	if strings.Contains(path, "/") {
		return false
	}
	switch ft {
	case pipeline.FileTypeTOML, pipeline.FileTypeYAML, pipeline.FileTypeJSON:
		return true
	}
	return false
}

// ApplyPathHeuristics multiplies base by every matching heuristic factor.
// path is the file's forward-slash relative path; matching happens on its
// lowercased form.
func ApplyPathHeuristics(path string, ft pipeline.FileType, base float64) float64 {
	lower := strings.ToLower(normalizePath(path))
	p := base
	for _, h := range pathHeuristics {
		if h.matches(lower) {
			p *= h.Factor
		}
	}
	if isRootManifest(lower, ft) {
		p *= rootManifestFactor
	}
	return p
}

// PriorityRule is a compiled additive custom-priority rule. Rules are
// evaluated in caller order and only the first match contributes its Weight
// (which may be negative).
type PriorityRule struct {
	Pattern string
	Weight  float64
}

// ApplyCustomRules adds the weight of the first matching rule to base.
// Invalid glob patterns never match.
func ApplyCustomRules(path string, base float64, rules []PriorityRule) float64 {
	normalized := normalizePath(path)
	for _, r := range rules {
		if !doublestar.ValidatePattern(r.Pattern) {
			continue
		}
		if matched, err := doublestar.Match(r.Pattern, normalized); err == nil && matched {
			return base + r.Weight
		}
	}
	return base
}

// ComputeBasePriority runs the full pre-boost formula for one file:
// base-by-language, path heuristics, custom rules, capped at PreBoostCap.
// A non-finite intermediate result collapses to zero so NaN can never reach
// an ordering key.
func ComputeBasePriority(path string, ft pipeline.FileType, rules []PriorityRule) float64 {
	p := BasePriority(ft)
	p = ApplyPathHeuristics(path, ft, p)
	p = ApplyCustomRules(path, p, rules)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	if p > PreBoostCap {
		return PreBoostCap
	}
	return p
}

// BoostGraph applies the dependency-graph boost: every file F with resolved
// imports contributes GraphBoostFactor * priority(F) to each imported file
// present in the working set. Contributions are computed from pre-boost
// priorities in a single sweep, so chains attenuate instead of cascading
// within one pass. Results are capped at PostBoostCap.
func BoostGraph(files []*pipeline.FileDescriptor) {
	byPath := make(map[string]*pipeline.FileDescriptor, len(files))
	for _, fd := range files {
		byPath[fd.AbsPath] = fd
	}

	boosts := make(map[string]float64, len(files))
	for _, fd := range files {
		contribution := GraphBoostFactor * fd.Priority
		for _, imp := range fd.Imports {
			if imp.ResolvedPath == "" || imp.IsExternal {
				continue
			}
			if _, ok := byPath[imp.ResolvedPath]; !ok {
				continue
			}
			boosts[imp.ResolvedPath] += contribution
		}
	}

	for path, add := range boosts {
		byPath[path].Priority += add
	}
	for _, fd := range files {
		fd.ClampPriority(PostBoostCap)
	}
}

// SortByPriority orders files in place: descending Priority, ties broken by
// ascending Path. Non-finite priorities are expected to have been clamped
// already; any two that slip through compare equal and fall to the path key.
func SortByPriority(files []*pipeline.FileDescriptor) {
	sort.SliceStable(files, func(i, j int) bool {
		pi, pj := files[i].Priority, files[j].Priority
		if pi == pj || (isNonFinite(pi) && isNonFinite(pj)) {
			return files[i].Path < files[j].Path
		}
		return pi > pj
	})
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// normalizePath converts path to forward slashes and strips a leading "./".
func normalizePath(path string) string {
	p := strings.ReplaceAll(path, "\\", "/")
	return strings.TrimPrefix(p, "./")
}
