package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoAnalyzerExtractsImportsAndFunctions(t *testing.T) {
	src := `package foo

import (
	"fmt"
	"github.com/repograph/repograph/internal/bar"
)

func DoThing() {
	fmt.Println(bar.Helper())
}
`
	a := NewGoAnalyzer()
	result, err := a.AnalyzeFile("foo.go", src, NewSemanticContext(2))
	require.NoError(t, err)

	require.Len(t, result.Imports, 2)
	assert.Equal(t, "fmt", result.Imports[0].Module)
	assert.True(t, result.Imports[0].IsExternal)
	assert.Equal(t, "github.com/repograph/repograph/internal/bar", result.Imports[1].Module)

	require.Len(t, result.ExportedFunctions, 1)
	assert.Equal(t, "DoThing", result.ExportedFunctions[0].Name)
}

func TestPythonAnalyzerExtractsImportsAndDefs(t *testing.T) {
	src := "import os\nfrom . import util\n\ndef run():\n    os.getcwd()\n"
	a := NewPythonAnalyzer()
	result, err := a.AnalyzeFile("mod.py", src, NewSemanticContext(2))
	require.NoError(t, err)

	require.Len(t, result.Imports, 2)
	require.Len(t, result.ExportedFunctions, 1)
	assert.Equal(t, "run", result.ExportedFunctions[0].Name)
}

func TestRegistryDispatchesByExtensionAndFallsBackToNoop(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "go", r.For("go").Name())
	assert.Equal(t, "python", r.For(".py").Name())
	assert.Equal(t, "noop", r.For("unknownext").Name())
}

func TestSemanticContextChildEnforcesDepthAndVisited(t *testing.T) {
	root := NewSemanticContext(1)

	child, ok := root.Child("a.go")
	require.True(t, ok)

	_, ok = child.Child("b.go")
	assert.False(t, ok, "depth budget exhausted")

	_, ok = root.Child("a.go")
	assert.True(t, ok, "sibling branch may revisit independently")
}

func TestMemoCacheAvoidsReanalysis(t *testing.T) {
	cache := NewMemoCache()
	a := NewPythonAnalyzer()
	content := "import os\n"

	r1, err := cache.AnalyzeMemoized(a, "x.py", content, NewSemanticContext(1))
	require.NoError(t, err)
	r2, err := cache.AnalyzeMemoized(a, "x.py", content, NewSemanticContext(1))
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
