package tokenizer

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/repograph/repograph/internal/pipeline"
)

// WouldExceedLimit reports whether running + addition > max under saturating
// addition, so a pathological addition can never wrap past math.MaxInt into a
// false negative.
func WouldExceedLimit(running, addition, max int) bool {
	if addition > math.MaxInt-running {
		return true
	}
	return running+addition > max
}

// TruncationStrategy selects what happens to a candidate whose token count
// exceeds the remaining budget.
type TruncationStrategy string

const (
	// SkipStrategy drops the oversized file and keeps scanning; a smaller
	// later candidate may still fit. The default.
	SkipStrategy TruncationStrategy = "skip"

	// TruncateStrategy cuts the first oversized file at a line boundary so it
	// fits within the remaining budget (a small reservation is kept for the
	// truncation marker); everything after it is excluded.
	TruncateStrategy TruncationStrategy = "truncate"
)

// BudgetResult partitions one enforcement run's candidates and carries the
// token accounting that proves the admitted set fits.
type BudgetResult struct {
	// IncludedFiles, in admission order (which is the caller's candidate
	// order: priority descending, path ascending).
	IncludedFiles []*pipeline.FileDescriptor

	// ExcludedFiles were dropped for lack of remaining budget.
	ExcludedFiles []*pipeline.FileDescriptor

	// TruncatedFiles also appear in IncludedFiles, with shortened Content.
	TruncatedFiles []*pipeline.FileDescriptor

	// TotalTokens sums TokenCount over IncludedFiles (post-truncation).
	TotalTokens int

	// BudgetUsed is overhead + TotalTokens; BudgetRemaining is
	// maxTokens - BudgetUsed (negative when overhead alone overruns).
	BudgetUsed      int
	BudgetRemaining int
}

// BudgetEnforcer admits an ordered candidate list under a hard token budget.
// Not safe for concurrent Enforce calls.
type BudgetEnforcer struct {
	maxTokens int
	strategy  TruncationStrategy
	tok       Tokenizer
	logger    *slog.Logger

	// StopOnFirstMiss switches SkipStrategy from skip-and-continue (the
	// default: keep scanning for smaller files that still fit) to
	// stop-at-first-miss.
	StopOnFirstMiss bool
}

// NewBudgetEnforcer builds an enforcer. maxTokens <= 0 disables enforcement
// entirely. tok is needed only by TruncateStrategy's line search; nil falls
// back to the character estimator.
func NewBudgetEnforcer(maxTokens int, strategy TruncationStrategy, tok Tokenizer) *BudgetEnforcer {
	if tok == nil {
		tok = estimator{}
	}
	if strategy == "" {
		strategy = SkipStrategy
	}
	return &BudgetEnforcer{
		maxTokens: maxTokens,
		strategy:  strategy,
		tok:       tok,
		logger:    slog.Default().With("component", "budget"),
	}
}

// Enforce walks files in the given order -- they must already be sorted by
// the caller's selection key -- admitting each file whose token count fits
// the budget remaining after overhead. The running total starts at overhead,
// so document scaffolding is paid for before the first file.
func (e *BudgetEnforcer) Enforce(files []*pipeline.FileDescriptor, overhead int) *BudgetResult {
	result := &BudgetResult{
		IncludedFiles:  make([]*pipeline.FileDescriptor, 0, len(files)),
		ExcludedFiles:  make([]*pipeline.FileDescriptor, 0),
		TruncatedFiles: make([]*pipeline.FileDescriptor, 0),
	}

	if e.maxTokens <= 0 {
		result.IncludedFiles = append(result.IncludedFiles, files...)
		for _, fd := range files {
			result.TotalTokens += fd.TokenCount
		}
		return result
	}

	e.logger.Debug("budget enforcement started",
		"max_tokens", e.maxTokens, "overhead", overhead,
		"strategy", string(e.strategy), "candidates", len(files))

	if e.strategy == TruncateStrategy {
		e.admitTruncating(files, overhead, result)
	} else {
		e.admitSkipping(files, overhead, result)
	}

	result.BudgetUsed = overhead + result.TotalTokens
	result.BudgetRemaining = e.maxTokens - result.BudgetUsed

	e.logger.Debug("budget enforcement complete",
		"included", len(result.IncludedFiles), "excluded", len(result.ExcludedFiles),
		"truncated", len(result.TruncatedFiles), "budget_used", result.BudgetUsed)
	return result
}

func (e *BudgetEnforcer) admitSkipping(files []*pipeline.FileDescriptor, overhead int, result *BudgetResult) {
	running := overhead
	stopped := false
	for _, fd := range files {
		if stopped || WouldExceedLimit(running, fd.TokenCount, e.maxTokens) {
			result.ExcludedFiles = append(result.ExcludedFiles, fd)
			if e.StopOnFirstMiss {
				stopped = true
			}
			continue
		}
		running += fd.TokenCount
		result.IncludedFiles = append(result.IncludedFiles, fd)
		result.TotalTokens += fd.TokenCount
	}
}

func (e *BudgetEnforcer) admitTruncating(files []*pipeline.FileDescriptor, overhead int, result *BudgetResult) {
	running := overhead
	exhausted := false
	for _, fd := range files {
		if exhausted {
			result.ExcludedFiles = append(result.ExcludedFiles, fd)
			continue
		}
		if !WouldExceedLimit(running, fd.TokenCount, e.maxTokens) {
			running += fd.TokenCount
			result.IncludedFiles = append(result.IncludedFiles, fd)
			result.TotalTokens += fd.TokenCount
			continue
		}

		remaining := e.maxTokens - running
		if remaining > 0 {
			truncated := e.truncateToFit(fd, remaining)
			result.IncludedFiles = append(result.IncludedFiles, truncated)
			result.TruncatedFiles = append(result.TruncatedFiles, truncated)
			result.TotalTokens += truncated.TokenCount
		} else {
			result.ExcludedFiles = append(result.ExcludedFiles, fd)
		}
		exhausted = true
	}
}

// truncationMarkerReservation keeps room for the marker comment appended to
// truncated content.
const truncationMarkerReservation = 20

// truncateToFit returns a copy of fd whose Content is the longest
// line-boundary prefix fitting in remaining tokens, marker included. fd
// itself is never mutated.
func (e *BudgetEnforcer) truncateToFit(fd *pipeline.FileDescriptor, remaining int) *pipeline.FileDescriptor {
	lines := strings.Split(fd.Content, "\n")
	budget := remaining - truncationMarkerReservation
	if budget < 0 {
		budget = 0
	}

	// Binary search the longest prefix of lines that fits; lines[:lo] always
	// fits, lines[:hi+1] may not.
	lo, hi := 0, len(lines)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if e.tok.Count(strings.Join(lines[:mid], "\n")) <= budget {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	kept := strings.Join(lines[:lo], "\n")
	marker := fmt.Sprintf("<!-- Content truncated: %d of %d tokens shown -->", e.tok.Count(kept), fd.TokenCount)
	content := marker
	if kept != "" {
		content = kept + "\n" + marker
	}

	truncated := *fd
	truncated.Content = content
	truncated.TokenCount = e.tok.Count(content)

	e.logger.Debug("file truncated",
		"path", fd.Path, "lines_kept", lo, "lines_total", len(lines),
		"tokens", truncated.TokenCount, "original_tokens", fd.TokenCount)
	return &truncated
}
