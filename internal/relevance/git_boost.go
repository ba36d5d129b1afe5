package relevance

import "github.com/repograph/repograph/internal/pipeline"

// GitRecencyBoostFactor scales how much recent commit activity can add to a
// file's priority: a file touched by every one of the inspected commits gets
// the full factor; one touched by none gets nothing.
const GitRecencyBoostFactor = 0.3

// ApplyGitRecencyBoost adds an additive term to each file's Priority
// proportional to how many of the last depth commits touched it, using
// counts keyed by the same relative path discovery assigns to FileDescriptor.Path.
// Files absent from counts are left unchanged. Results are clamped at
// PostBoostCap, matching the dependency-graph boost's clamp behavior.
func ApplyGitRecencyBoost(files []*pipeline.FileDescriptor, counts map[string]int, depth int) {
	if depth <= 0 || len(counts) == 0 {
		return
	}
	for _, fd := range files {
		n, ok := counts[fd.Path]
		if !ok || n <= 0 {
			continue
		}
		fraction := float64(n) / float64(depth)
		if fraction > 1 {
			fraction = 1
		}
		fd.Priority += GitRecencyBoostFactor * fraction
		fd.ClampPriority(PostBoostCap)
	}
}
