// Package tokenizer counts tokens: per string, per file, and in bulk across
// a selection, and enforces the token budget that decides which files make
// the final document. Counts are deterministic -- identical input always
// yields the identical count, within a process and across builds -- which is
// what makes budget admission reproducible.
package tokenizer

import "fmt"

// Tokenizer counts tokens in text. Implementations must be goroutine-safe
// and deterministic.
type Tokenizer interface {
	// Count returns the token count of text; 0 for empty, never negative.
	Count(text string) int

	// Name identifies the encoding ("cl100k_base", "o200k_base", "none").
	Name() string
}

const (
	// NameCL100K is the BPE encoding shared by GPT-4-era and Claude-era
	// models; the default.
	NameCL100K = "cl100k_base"

	// NameO200K is the GPT-4o/o1 BPE encoding.
	NameO200K = "o200k_base"

	// NameNone selects the bytes/4 estimator: no BPE tables, fastest, rough.
	NameNone = "none"
)

// ErrUnknownTokenizer is wrapped by NewTokenizer for unrecognized names.
var ErrUnknownTokenizer = fmt.Errorf("unknown tokenizer")

// NewTokenizer builds the Tokenizer for name; empty means NameCL100K. BPE
// encodings load their tables once here -- that load is the only fallible
// step, so callers must propagate this error before any file is counted.
func NewTokenizer(name string) (Tokenizer, error) {
	if name == "" {
		name = NameCL100K
	}
	switch name {
	case NameCL100K, NameO200K:
		return newBPETokenizer(name)
	case NameNone:
		return estimator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s, %s, %s)", ErrUnknownTokenizer, name, NameCL100K, NameO200K, NameNone)
	}
}

// FileTokenCount is the structured result of counting one labeled fragment.
type FileTokenCount struct {
	// Label names the fragment, typically a relative file path.
	Label string

	// TotalTokens is the fragment's token count.
	TotalTokens int
}

// CountFileTokens counts content under label. The label participates only in
// the result, never in the count.
func CountFileTokens(tok Tokenizer, content, label string) FileTokenCount {
	return FileTokenCount{Label: label, TotalTokens: tok.Count(content)}
}
