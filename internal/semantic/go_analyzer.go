package semantic

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/repograph/repograph/internal/pipeline"
)

// GoAnalyzer extracts imports, calls, type references, and exported function
// definitions from Go source using the standard library's own parser --
// genuinely the idiomatic choice for this one language, since go/ast and
// go/parser are the ecosystem's own analyzer for Go.
type GoAnalyzer struct {
	extSet
}

func NewGoAnalyzer() *GoAnalyzer {
	return &GoAnalyzer{extSet: newExtSet("go")}
}

func (a *GoAnalyzer) Name() string { return "go" }

func (a *GoAnalyzer) AnalyzeFile(path, content string, ctx SemanticContext) (AnalysisResult, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, content, parser.ParseComments)
	if err != nil {
		// A parse error is not fatal to the pipeline: report it as a warning
		// with an otherwise empty analysis.
		return AnalysisResult{Warnings: []string{fmt.Sprintf("go parse: %v", err)}}, nil
	}

	var result AnalysisResult

	for _, imp := range file.Imports {
		modPath, unquoteErr := strconv.Unquote(imp.Path.Value)
		if unquoteErr != nil {
			modPath = imp.Path.Value
		}
		pos := fset.Position(imp.Pos())
		result.Imports = append(result.Imports, pipeline.Import{
			Module:     modPath,
			Line:       pos.Line,
			IsExternal: isExternalGoModule(modPath),
		})
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.CallExpr:
			name, owner := goCallTarget(node)
			if name != "" {
				pos := fset.Position(node.Pos())
				result.FunctionCalls = append(result.FunctionCalls, pipeline.FunctionCall{
					Name:         name,
					Line:         pos.Line,
					OwningModule: owner,
				})
			}
		case *ast.Ident:
			if node.Obj == nil && ast.IsExported(node.Name) && looksLikeType(node.Name) {
				pos := fset.Position(node.Pos())
				result.TypeReferences = append(result.TypeReferences, pipeline.TypeReference{
					Name: node.Name,
					Line: pos.Line,
				})
			}
		case *ast.FuncDecl:
			if node.Name.IsExported() {
				pos := fset.Position(node.Pos())
				result.ExportedFunctions = append(result.ExportedFunctions, pipeline.FunctionDefinition{
					Name: node.Name.Name,
					Line: pos.Line,
				})
			}
		}
		return true
	})

	return result, nil
}

// goCallTarget extracts a called function's name and, for package-qualified
// calls (pkg.Func), the package identifier as OwningModule.
func goCallTarget(call *ast.CallExpr) (name, owner string) {
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		return fn.Name, ""
	case *ast.SelectorExpr:
		if ident, ok := fn.X.(*ast.Ident); ok {
			return fn.Sel.Name, ident.Name
		}
		return fn.Sel.Name, ""
	}
	return "", ""
}

// looksLikeType is a coarse heuristic: exported identifiers used where a
// type would appear are expensive to distinguish from exported values
// without full type-checking, so this analyzer only records identifiers
// whose name starts with an uppercase letter and is not a known builtin.
func looksLikeType(name string) bool {
	switch name {
	case "Error", "String", "Len", "Cap":
		return false
	}
	return true
}

// ResolveTypeDefinition probes the importing file's own package directory
// for a `type <Name>` declaration. One directory is the cheap, high-yield
// case for Go, where a package's types overwhelmingly live beside their
// users; anything farther away is left unresolved.
func (a *GoAnalyzer) ResolveTypeDefinition(typeName, fromFile, projectRoot string) (string, bool) {
	dir := filepath.Dir(fromFile)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	decl := regexp.MustCompile(`(?m)^type\s+` + regexp.QuoteMeta(typeName) + `[\s\[]`)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		candidate := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if decl.Match(data) {
			return candidate, true
		}
	}
	return "", false
}

var goStdlibPrefixes = map[string]bool{
	"fmt": true, "os": true, "io": true, "strings": true, "strconv": true,
	"errors": true, "context": true, "time": true, "sync": true, "bytes": true,
	"encoding": true, "net": true, "path": true, "sort": true, "math": true,
	"log": true, "regexp": true, "bufio": true, "flag": true, "testing": true,
	"reflect": true, "runtime": true, "unicode": true, "unsafe": true,
}

func isExternalGoModule(modPath string) bool {
	first := modPath
	for i, c := range modPath {
		if c == '/' {
			first = modPath[:i]
			break
		}
	}
	if goStdlibPrefixes[first] {
		return true
	}
	// Any module path containing a dot in its first segment (a domain, e.g.
	// github.com/...) is an external dependency rather than project-internal.
	for _, c := range first {
		if c == '.' {
			return true
		}
	}
	return false
}
