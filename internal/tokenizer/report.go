package tokenizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/repograph/repograph/internal/pipeline"
)

// TierLabel names the display tiers in reports.
var TierLabel = map[int]string{
	0: "Config",
	1: "Source",
	2: "Secondary",
	3: "Tests",
	4: "Docs",
	5: "CI/Lock",
}

func tierLabelFor(tier int) string {
	if label, ok := TierLabel[tier]; ok {
		return label
	}
	return fmt.Sprintf("Tier%d", tier)
}

func reportHeader(sb *strings.Builder, title string) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("─", len([]rune(title))+2) + "\n")
}

// TierReportStat is one tier's slice of a TokenReport.
type TierReportStat struct {
	FileCount  int
	TokenCount int
}

// TokenReport summarizes a file set's token weight, overall and per tier.
type TokenReport struct {
	TokenizerName string
	TotalFiles    int
	TotalTokens   int

	// Budget is the configured cap; 0 means unlimited.
	Budget int

	TierStats map[int]*TierReportStat
}

// NewTokenReport aggregates files into a report. Nil descriptors are skipped.
func NewTokenReport(files []*pipeline.FileDescriptor, tokenizerName string, budget int) *TokenReport {
	r := &TokenReport{
		TokenizerName: tokenizerName,
		Budget:        budget,
		TierStats:     make(map[int]*TierReportStat),
	}
	for _, fd := range files {
		if fd == nil {
			continue
		}
		r.TotalFiles++
		r.TotalTokens += fd.TokenCount
		stat := r.TierStats[fd.Tier]
		if stat == nil {
			stat = &TierReportStat{}
			r.TierStats[fd.Tier] = stat
		}
		stat.FileCount++
		stat.TokenCount += fd.TokenCount
	}
	return r
}

// Format renders the report for stderr.
func (r *TokenReport) Format() string {
	var sb strings.Builder
	reportHeader(&sb, fmt.Sprintf("Token Report (%s)", r.TokenizerName))
	fmt.Fprintf(&sb, "Total files:  %s\n", FormatInt(r.TotalFiles))
	fmt.Fprintf(&sb, "Total tokens: %s\n", FormatInt(r.TotalTokens))

	if r.Budget > 0 {
		pct := int(float64(r.TotalTokens) / float64(r.Budget) * 100)
		fmt.Fprintf(&sb, "Budget:       %s (%d%% used)\n", FormatInt(r.Budget), pct)
	} else {
		sb.WriteString("Budget:       unlimited\n")
	}

	if len(r.TierStats) > 0 {
		sb.WriteString("\nBy Tier:\n")
		tiers := make([]int, 0, len(r.TierStats))
		for t := range r.TierStats {
			tiers = append(tiers, t)
		}
		sort.Ints(tiers)
		for _, tier := range tiers {
			stat := r.TierStats[tier]
			fmt.Fprintf(&sb, "  Tier %d (%s): %s files  %s tokens\n",
				tier, tierLabelFor(tier), FormatInt(stat.FileCount), FormatInt(stat.TokenCount))
		}
	}
	return sb.String()
}

// TopFilesEntry is one row of a TopFilesReport.
type TopFilesEntry struct {
	Path       string
	TokenCount int
	Tier       int
}

// TopFilesReport lists the heaviest files, descending by token count.
type TopFilesReport struct {
	// N is the requested limit; 0 means every file.
	N     int
	Files []TopFilesEntry
}

// NewTopFilesReport sorts files by TokenCount descending (ties by path, so
// output is stable) and keeps the first n; n=0 keeps all.
func NewTopFilesReport(files []*pipeline.FileDescriptor, n int) *TopFilesReport {
	entries := make([]TopFilesEntry, 0, len(files))
	for _, fd := range files {
		if fd == nil {
			continue
		}
		entries = append(entries, TopFilesEntry{Path: fd.Path, TokenCount: fd.TokenCount, Tier: fd.Tier})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TokenCount != entries[j].TokenCount {
			return entries[i].TokenCount > entries[j].TokenCount
		}
		return entries[i].Path < entries[j].Path
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return &TopFilesReport{N: n, Files: entries}
}

// Format renders the listing.
func (r *TopFilesReport) Format() string {
	var sb strings.Builder
	label := "All Files"
	if r.N > 0 {
		label = fmt.Sprintf("Top %d Files", r.N)
	}
	reportHeader(&sb, label+" by Token Count:")

	if len(r.Files) == 0 {
		sb.WriteString("  (no files)\n")
		return sb.String()
	}
	for i, entry := range r.Files {
		fmt.Fprintf(&sb, " %2d. %-50s  %s tokens  (Tier %d: %s)\n",
			i+1, entry.Path, FormatInt(entry.TokenCount), entry.Tier, tierLabelFor(entry.Tier))
	}
	return sb.String()
}

// HeatmapEntry is one row of a HeatmapReport.
type HeatmapEntry struct {
	Path    string
	Lines   int
	Tokens  int
	Density float64
	Tier    int
}

// HeatmapReport ranks files by token density (tokens per line) descending,
// surfacing minified or generated blobs that eat budget without adding
// context.
type HeatmapReport struct {
	Files []HeatmapEntry
}

// NewHeatmapReport builds the ranking. lineCounts maps fd.Path to its line
// count; missing or zero entries yield density 0.
func NewHeatmapReport(files []*pipeline.FileDescriptor, lineCounts map[string]int) *HeatmapReport {
	entries := make([]HeatmapEntry, 0, len(files))
	for _, fd := range files {
		if fd == nil {
			continue
		}
		lines := lineCounts[fd.Path]
		density := 0.0
		if lines > 0 {
			density = float64(fd.TokenCount) / float64(lines)
		}
		entries = append(entries, HeatmapEntry{
			Path: fd.Path, Lines: lines, Tokens: fd.TokenCount, Density: density, Tier: fd.Tier,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Density != entries[j].Density {
			return entries[i].Density > entries[j].Density
		}
		return entries[i].Path < entries[j].Path
	})
	return &HeatmapReport{Files: entries}
}

// Format renders the ranking.
func (r *HeatmapReport) Format() string {
	var sb strings.Builder
	reportHeader(&sb, "Token Heatmap (tokens per line):")
	if len(r.Files) == 0 {
		sb.WriteString("  (no files)\n")
		return sb.String()
	}
	for i, entry := range r.Files {
		fmt.Fprintf(&sb, " %2d. %-50s  %.1f tok/line  (%s lines, %s tokens)\n",
			i+1, entry.Path, entry.Density, FormatInt(entry.Lines), FormatInt(entry.Tokens))
	}
	return sb.String()
}

// FormatInt renders n with thousands separators (89420 -> "89,420").
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
