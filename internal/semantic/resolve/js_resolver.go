package resolve

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// jsExtensions is the probe order for extensionless relative JS/TS imports,
// grounded on lci's JSResolver extension-probing order.
var jsExtensions = []string{".js", ".jsx", ".ts", ".tsx", "/index.js", "/index.ts"}

var nodeBuiltins = map[string]bool{
	"fs": true, "path": true, "os": true, "http": true, "https": true,
	"crypto": true, "events": true, "stream": true, "util": true,
	"child_process": true, "url": true, "querystring": true, "buffer": true,
}

// packageJSON is the subset of package.json fields needed to tell whether a
// bare import resolves to a local workspace package.
type packageJSON struct {
	Name string `json:"name"`
}

// JSResolver resolves JavaScript/TypeScript import specifiers: relative
// imports are joined against the importing file's directory and probed with
// jsExtensions; absolute-looking imports are treated as project-root
// relative; anything else is classified against Node's builtin module list
// and otherwise treated as an external package (unresolved, since this
// resolver does not crawl node_modules).
type JSResolver struct{}

func NewJSResolver() *JSResolver { return &JSResolver{} }

func (r *JSResolver) Resolve(module, fromFile, projectRoot string) (Resolution, error) {
	switch {
	case strings.HasPrefix(module, "./") || strings.HasPrefix(module, "../"):
		dir := filepath.Dir(fromFile)
		joined := filepath.Clean(filepath.Join(dir, module))
		if p, ok := probeExtensions(joined, jsExtensions); ok {
			return Resolution{AbsPath: p, Resolved: true}, nil
		}
		return Fallback(module, fromFile, projectRoot, jsExtensions), nil

	case strings.HasPrefix(module, "/"):
		joined := filepath.Join(projectRoot, module)
		if p, ok := probeExtensions(joined, jsExtensions); ok {
			return Resolution{AbsPath: p, Resolved: true}, nil
		}
		return Resolution{Resolved: false}, nil

	case nodeBuiltins[module]:
		return Resolution{IsExternal: true, Resolved: false}, nil

	default:
		// Bare specifier: a workspace-local package.json with this name would
		// make it internal, but absent that signal it is treated as an
		// external npm dependency.
		if r.matchesWorkspacePackage(module, projectRoot) {
			return Resolution{IsExternal: false, Resolved: false}, nil
		}
		return Resolution{IsExternal: true, Resolved: false}, nil
	}
}

func (r *JSResolver) matchesWorkspacePackage(module, projectRoot string) bool {
	data, err := os.ReadFile(filepath.Join(projectRoot, "package.json"))
	if err != nil {
		return false
	}
	var pkg packageJSON
	if json.Unmarshal(data, &pkg) != nil {
		return false
	}
	return pkg.Name != "" && pkg.Name == module
}
