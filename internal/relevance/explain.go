package relevance

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/repograph/repograph/internal/pipeline"
)

// PriorityTerm is one contributing term of a file's priority: the base
// language weight, a path-heuristic factor, a custom rule's delta, or a
// post-walk boost.
type PriorityTerm struct {
	// Label identifies the term ("base", a path-heuristic label such as
	// "entrypoint" or "source_dir", "root_manifest", "custom_rule", "cap",
	// or "boost" for the combined post-discovery remainder).
	Label string

	// Detail carries the term's specifics: the language name, the matched
	// substring set, or the rule pattern.
	Detail string

	// Factor is the multiplicative contribution (0 when the term is
	// additive).
	Factor float64

	// Delta is the additive contribution (0 when the term is a factor).
	Delta float64

	// Running is the priority value after this term applied.
	Running float64
}

// PriorityExplanation is the reconstructed formula for one file's pre-boost
// priority plus the observed post-boost remainder.
type PriorityExplanation struct {
	Path  string
	Terms []PriorityTerm

	// PreBoost is the value ComputeBasePriority produced.
	PreBoost float64

	// Final is the descriptor's current Priority; Final - PreBoost is
	// whatever the graph and git boosts added after discovery.
	Final float64
}

// ExplainPriority reconstructs, term by term, how fd's priority came to be,
// re-running the base formula and attributing the remainder to post-walk
// boosts. Diagnostics only: it never mutates fd and has no effect on
// selection.
func ExplainPriority(fd *pipeline.FileDescriptor, rules []PriorityRule) *PriorityExplanation {
	ex := &PriorityExplanation{Path: fd.Path, Final: fd.Priority}

	p := BasePriority(fd.FileType)
	ex.push(PriorityTerm{Label: "base", Detail: string(fd.FileType), Factor: p, Running: p})

	lower := strings.ToLower(normalizePath(fd.Path))
	for _, h := range pathHeuristics {
		if h.matches(lower) {
			p *= h.Factor
			ex.push(PriorityTerm{Label: h.Label, Detail: strings.Join(h.substrings, "|"), Factor: h.Factor, Running: p})
		}
	}
	if isRootManifest(lower, fd.FileType) {
		p *= rootManifestFactor
		ex.push(PriorityTerm{Label: "root_manifest", Factor: rootManifestFactor, Running: p})
	}

	normalized := normalizePath(fd.Path)
	for _, r := range rules {
		if !doublestar.ValidatePattern(r.Pattern) {
			continue
		}
		if matched, err := doublestar.Match(r.Pattern, normalized); err == nil && matched {
			p += r.Weight
			ex.push(PriorityTerm{Label: "custom_rule", Detail: r.Pattern, Delta: r.Weight, Running: p})
			break
		}
	}

	if p > PreBoostCap {
		p = PreBoostCap
		ex.push(PriorityTerm{Label: "cap", Detail: fmt.Sprintf("pre-boost cap %.1f", PreBoostCap), Running: p})
	}
	ex.PreBoost = p

	if boost := ex.Final - p; boost > 1e-9 {
		ex.push(PriorityTerm{Label: "boost", Detail: "graph/git boosts after discovery", Delta: boost, Running: ex.Final})
	}
	return ex
}

func (ex *PriorityExplanation) push(t PriorityTerm) {
	ex.Terms = append(ex.Terms, t)
}

// Format renders the explanation as an aligned multi-line string for the
// --explain-priority output.
func (ex *PriorityExplanation) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (priority %.3f)\n", ex.Path, ex.Final)
	for _, t := range ex.Terms {
		switch {
		case t.Factor != 0 && t.Label == "base":
			fmt.Fprintf(&b, "  base %-24s %8.3f\n", t.Detail, t.Factor)
		case t.Factor != 0:
			fmt.Fprintf(&b, "  x%.2f %-22s -> %8.3f\n", t.Factor, t.Label, t.Running)
		case t.Delta != 0:
			fmt.Fprintf(&b, "  %+.3f %-21s -> %8.3f\n", t.Delta, t.Label+" "+t.Detail, t.Running)
		default:
			fmt.Fprintf(&b, "  %-28s -> %8.3f\n", t.Detail, t.Running)
		}
	}
	return b.String()
}
