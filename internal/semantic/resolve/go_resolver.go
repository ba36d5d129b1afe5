package resolve

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/mod/modfile"
)

// GoResolver resolves Go import paths against the project's own module
// declaration (read from go.mod via golang.org/x/mod/modfile), classifying
// any import outside that module path as external.
type GoResolver struct {
	mu         sync.Mutex
	modulePath string
	loaded     bool
}

// NewGoResolver creates a GoResolver. The module path is lazily read from
// go.mod under the projectRoot of the first Resolve call and reused for every
// later call, whatever projectRoot it passes.
func NewGoResolver() *GoResolver {
	return &GoResolver{}
}

func (r *GoResolver) ensureModulePath(projectRoot string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return
	}
	r.loaded = true

	data, err := os.ReadFile(filepath.Join(projectRoot, "go.mod"))
	if err != nil {
		return
	}
	modPath := modfile.ModulePath(data)
	r.modulePath = modPath
}

// Resolve implements Resolver for Go import paths.
func (r *GoResolver) Resolve(module, fromFile, projectRoot string) (Resolution, error) {
	r.ensureModulePath(projectRoot)

	if r.modulePath != "" && (module == r.modulePath || strings.HasPrefix(module, r.modulePath+"/")) {
		rel := strings.TrimPrefix(module, r.modulePath)
		rel = strings.TrimPrefix(rel, "/")
		dir := filepath.Join(projectRoot, rel)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			// Package import: resolve to the package's first source file so
			// the import links into the file-keyed dependency graph. Go has
			// no file-granular imports, so one representative file stands in
			// for the package.
			if file, ok := firstGoFile(dir); ok {
				return Resolution{AbsPath: file, Resolved: true}, nil
			}
		}
		return Resolution{Resolved: false}, nil
	}

	// Anything not under our own module path is an external dependency
	// (stdlib or a third-party module import path).
	return Resolution{IsExternal: true, Resolved: false}, nil
}

// firstGoFile returns the lexicographically first non-test .go file in dir.
func firstGoFile(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		return filepath.Join(dir, name), true
	}
	return "", false
}
