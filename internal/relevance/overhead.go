package relevance

// perFileTreeOverhead is the flat per-file token estimate for one file-tree
// entry (indentation, connector glyphs, name).
const perFileTreeOverhead = 20

// perFileTOCOverhead is the per-line estimate for a table-of-contents entry.
const perFileTOCOverhead = 8

// statsSectionBuffer is the fixed reservation for the statistics section,
// independent of file count.
const statsSectionBuffer = 200

// StructuralOverhead estimates the token cost of everything in the rendered
// document besides per-file content: the document header, the optional
// statistics section, the optional file tree, and the optional table of
// contents. Budget admission starts its running total here, so scaffolding
// can never push an admitted selection past the cap.
func StructuralOverhead(fileCount, headerTokens int, includeStats, includeTree, includeTOC bool) int {
	overhead := headerTokens
	if includeStats {
		overhead += statsSectionBuffer
	}
	if includeTree {
		overhead += fileCount * perFileTreeOverhead
	}
	if includeTOC {
		overhead += fileCount * perFileTOCOverhead
	}
	return overhead
}
