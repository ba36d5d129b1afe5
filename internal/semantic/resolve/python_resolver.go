package resolve

import (
	"os"
	"path/filepath"
	"strings"
)

var pythonExtensions = []string{".py", "/__init__.py"}

// pythonStdlibModules is a small set of common standard-library top-level
// module names, enough to classify the common case without shipping a full
// stdlib manifest.
var pythonStdlibModules = map[string]bool{
	"os": true, "sys": true, "re": true, "json": true, "math": true,
	"time": true, "collections": true, "itertools": true, "functools": true,
	"typing": true, "pathlib": true, "asyncio": true, "logging": true,
	"subprocess": true, "unittest": true, "dataclasses": true, "enum": true,
}

// PythonResolver translates a dotted Python module path into a file path
// relative to the project root, since Python imports are always
// package-path-relative rather than file-relative (there is no "./" form).
type PythonResolver struct{}

func NewPythonResolver() *PythonResolver { return &PythonResolver{} }

func (r *PythonResolver) Resolve(module, fromFile, projectRoot string) (Resolution, error) {
	trimmed := strings.TrimLeft(module, ".")
	leadingDots := len(module) - len(trimmed)

	base := projectRoot
	if leadingDots > 0 {
		// Relative import: each leading dot beyond the first steps up one
		// directory from the importing file's package.
		base = filepath.Dir(fromFile)
		for i := 1; i < leadingDots; i++ {
			base = filepath.Dir(base)
		}
	}

	if trimmed == "" {
		return Resolution{Resolved: false}, nil
	}

	parts := strings.Split(trimmed, ".")
	if pythonStdlibModules[parts[0]] && leadingDots == 0 {
		return Resolution{IsExternal: true, Resolved: false}, nil
	}

	joined := filepath.Join(append([]string{base}, parts...)...)
	if p, ok := probeExtensions(joined, pythonExtensions); ok {
		return Resolution{AbsPath: p, Resolved: true}, nil
	}

	if leadingDots > 0 {
		return Resolution{Resolved: false}, nil
	}

	if _, err := os.Stat(filepath.Join(projectRoot, "requirements.txt")); err == nil {
		// No on-disk match and the project looks like a pip-managed
		// workspace: treat the unresolved top-level module as an external
		// third-party dependency rather than a broken internal import.
		return Resolution{IsExternal: true, Resolved: false}, nil
	}

	return Fallback(module, fromFile, projectRoot, pythonExtensions), nil
}
