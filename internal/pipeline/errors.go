// Package pipeline defines the central data types shared across all pipeline
// stages in Repograph. This file defines the RepographError type for structured error
// handling with exit codes, enabling commands to communicate specific exit
// codes back to main.go.
package pipeline

import (
	"errors"
	"fmt"
	"sync"
)

// RepographError is a custom error type that carries an exit code for structured
// error handling. Commands in the CLI use this to communicate specific exit
// codes back to main.go. It implements the error interface and supports
// unwrapping via errors.Is and errors.As.
type RepographError struct {
	// Code is the process exit code associated with this error.
	Code int

	// Message is a human-readable description of what went wrong.
	Message string

	// Err is the underlying error that caused this RepographError, if any.
	Err error
}

// Error returns the formatted error message. If an underlying error is present,
// it is included in the output separated by a colon.
func (e *RepographError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As to
// traverse the error chain.
func (e *RepographError) Unwrap() error {
	return e.Err
}

// NewError creates a RepographError with ExitError (1) code for fatal errors.
func NewError(msg string, err error) *RepographError {
	return &RepographError{Code: int(ExitError), Message: msg, Err: err}
}

// NewPartialError creates a RepographError with ExitPartial (2) code for scenarios
// where some files failed processing but output was still generated.
func NewPartialError(msg string, err error) *RepographError {
	return &RepographError{Code: int(ExitPartial), Message: msg, Err: err}
}

// The following sentinel errors form the closed set of error kinds a pipeline
// stage may report. Stages never return these bare; they wrap one of them in
// a RepographError (or plain fmt.Errorf with %w) so callers can still test
// the kind via errors.Is while the top-level error carries an exit code and a
// human-readable message.
var (
	// ErrInvalidPath indicates a configured root, output, or ignore-file path
	// does not exist or cannot be resolved.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidConfiguration indicates a configuration value failed
	// validation (e.g. an unparsable priority rule or a negative token budget).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrFileProcessing indicates a single file could not be read or
	// otherwise processed. Non-fatal by default: the offending file is
	// recorded in Diagnostics and excluded rather than aborting the run.
	ErrFileProcessing = errors.New("file processing error")

	// ErrTokenCounting indicates the configured tokenizer failed to count
	// tokens for a file's content.
	ErrTokenCounting = errors.New("token counting error")

	// ErrSemantic indicates a language analyzer failed to analyze a file.
	// Always non-fatal: the file proceeds with an empty AnalysisResult.
	ErrSemantic = errors.New("semantic analysis error")
)

// FileProcessingError wraps ErrFileProcessing with the offending path and a
// human-readable detail string.
func FileProcessingError(path, detail string) error {
	return fmt.Errorf("processing %s: %s: %w", path, detail, ErrFileProcessing)
}

// TokenCountingError wraps ErrTokenCounting with the offending path and a
// human-readable detail string.
func TokenCountingError(path, detail string) error {
	return fmt.Errorf("counting tokens for %s: %s: %w", path, detail, ErrTokenCounting)
}

// SemanticError wraps ErrSemantic with the offending path and a
// human-readable detail string.
func SemanticError(path, detail string) error {
	return fmt.Errorf("analyzing %s: %s: %w", path, detail, ErrSemantic)
}

// Diagnostic records a single non-fatal failure encountered while processing
// one file, tagged with the pipeline stage that produced it.
type Diagnostic struct {
	// Path is the file the failure occurred on.
	Path string `json:"path"`

	// Stage names the pipeline stage that produced the failure ("discovery",
	// "semantic", "resolve", "expand").
	Stage string `json:"stage"`

	// Err is the underlying error.
	Err error `json:"-"`
}

// Diagnostics is the side-channel collection of non-fatal per-file failures
// accumulated across a pipeline run. Stages append to it instead of
// short-circuiting a parallel map; the final result reports it alongside the
// rendered document so a partial run is still visible to the caller.
type Diagnostics struct {
	mu      sync.Mutex
	entries []Diagnostic
}

// NewDiagnostics creates an empty, concurrency-safe Diagnostics collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Add records a diagnostic. Safe for concurrent use.
func (d *Diagnostics) Add(path, stage string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, Diagnostic{Path: path, Stage: stage, Err: err})
}

// Entries returns a copy of the recorded diagnostics.
func (d *Diagnostics) Entries() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Diagnostic, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len reports how many diagnostics have been recorded.
func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
