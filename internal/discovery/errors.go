package discovery

import (
	"fmt"
	"strings"
)

// IsCriticalWalkError reports whether a per-file error should abort the whole
// traversal rather than being recorded against that one file. Messages
// containing "Permission denied" or "Invalid" are critical; everything else
// (missing files, symlink loops, binary-detection failures) is not.
func IsCriticalWalkError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Permission denied") || strings.Contains(msg, "Invalid")
}

// CriticalWalkError aggregates the critical per-file failures that aborted a
// traversal, so the caller sees every offending path in one message.
type CriticalWalkError struct {
	Paths  []string
	Errors []error
}

// Error enumerates the offending paths and their failures.
func (e *CriticalWalkError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "traversal aborted by %d critical error(s):", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  %s: %v", e.Paths[i], err)
	}
	return b.String()
}

// Add records one critical failure.
func (e *CriticalWalkError) Add(path string, err error) {
	e.Paths = append(e.Paths, path)
	e.Errors = append(e.Errors, err)
}

// Len returns how many critical failures were recorded.
func (e *CriticalWalkError) Len() int { return len(e.Errors) }
