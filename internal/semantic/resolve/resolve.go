// Package resolve maps a raw import/require/use string to an absolute
// on-disk path, per-language, falling back to a shared resolution order when
// a language resolver's own logic misses.
package resolve

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolution is the outcome of resolving one import string.
type Resolution struct {
	// AbsPath is the resolved absolute path. Empty when unresolved.
	AbsPath string

	// IsExternal reports whether the import targets a dependency outside the
	// project root (a standard-library/builtin module or a third-party
	// package), rather than a project-local file.
	IsExternal bool

	// Resolved reports whether AbsPath was determined with confidence. An
	// import can be IsExternal and Resolved=false at the same time -- e.g. a
	// third-party package whose on-disk location this resolver does not
	// track is still correctly classified external, just unresolved to a path.
	Resolved bool
}

// Resolver resolves a single module/import string to a Resolution, given the
// absolute path of the file containing the import and the project root.
type Resolver interface {
	Resolve(module, fromFile, projectRoot string) (Resolution, error)
}

// Fallback implements the shared 4-step resolution order every per-language
// resolver delegates to once its own language-specific logic misses:
//  1. (caller's own resolver logic, already attempted before Fallback runs)
//  2. manual "./"-strip-and-probe: join the stripped module path against the
//     importing file's directory and probe candidateExts in order
//  3. absolute-path-on-disk acceptance: treat module as already a path and
//     accept it if it exists on disk
//  4. unresolved-but-recorded: return a Resolution with Resolved=false
//     rather than an error, so the caller always has a valid record of the
//     attempt.
func Fallback(module, fromFile, projectRoot string, candidateExts []string) Resolution {
	if looksRelative(module) {
		dir := filepath.Dir(fromFile)
		joined := filepath.Clean(filepath.Join(dir, module))
		if p, ok := probeExtensions(joined, candidateExts); ok {
			return Resolution{AbsPath: p, Resolved: true}
		}
	}

	candidate := module
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(projectRoot, module)
	}
	if p, ok := probeExtensions(filepath.Clean(candidate), candidateExts); ok {
		return Resolution{AbsPath: p, Resolved: true}
	}

	return Resolution{Resolved: false}
}

func looksRelative(module string) bool {
	return strings.HasPrefix(module, "./") || strings.HasPrefix(module, "../") || strings.HasPrefix(module, ".")
}

// probeExtensions returns the first existing path among base itself and
// base+ext for each ext in exts.
func probeExtensions(base string, exts []string) (string, bool) {
	if info, err := os.Stat(base); err == nil && !info.IsDir() {
		return base, true
	}
	for _, ext := range exts {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
