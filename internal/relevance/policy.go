package relevance

// PreBoostCap and PostBoostCap bound Priority at each stage of the model: a
// file's base-plus-heuristics-plus-custom-rules score never exceeds
// PreBoostCap before the dependency graph boost (Phase A) is applied, and the
// boosted score never exceeds PostBoostCap afterward.
const (
	PreBoostCap  = 2.0
	PostBoostCap = 5.0
)

// GraphBoostFactor is the fraction of an importer's priority added to each of
// its resolved imports during the Phase A boost pass.
const GraphBoostFactor = 0.2
