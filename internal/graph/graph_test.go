package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repograph/repograph/internal/pipeline"
)

func TestBuildBackfillsBothSidesOfEveryEdge(t *testing.T) {
	a := &pipeline.FileDescriptor{Path: "a.go", AbsPath: "/repo/a.go"}
	b := &pipeline.FileDescriptor{Path: "b.go", AbsPath: "/repo/b.go"}
	a.Imports = []pipeline.Import{{Module: "./b", ResolvedPath: b.AbsPath}}

	g := New()
	g.Build([]*pipeline.FileDescriptor{a, b})

	assert.Empty(t, a.ImportedBy)
	assert.Equal(t, []string{a.AbsPath}, b.ImportedBy)

	nodeA, ok := g.Get(a.AbsPath)
	assert.True(t, ok)
	_, hasEdge := nodeA.Imports[b.AbsPath]
	assert.True(t, hasEdge)
}

func TestBuildSortsImportedByForDeterminism(t *testing.T) {
	target := &pipeline.FileDescriptor{Path: "z.go", AbsPath: "/repo/z.go"}
	files := []*pipeline.FileDescriptor{target}
	for _, name := range []string{"c.go", "a.go", "b.go"} {
		fd := &pipeline.FileDescriptor{Path: name, AbsPath: "/repo/" + name}
		fd.Imports = []pipeline.Import{{Module: "./z", ResolvedPath: target.AbsPath}}
		files = append(files, fd)
	}

	g := New()
	g.Build(files)
	assert.Equal(t, []string{"/repo/a.go", "/repo/b.go", "/repo/c.go"}, target.ImportedBy)
}

func TestBuildIgnoresExternalAndUnresolvedImports(t *testing.T) {
	a := &pipeline.FileDescriptor{Path: "a.go", AbsPath: "/repo/a.go"}
	a.Imports = []pipeline.Import{
		{Module: "fmt", IsExternal: true},
		{Module: "./missing", ResolvedPath: ""},
	}

	g := New()
	g.Build([]*pipeline.FileDescriptor{a})

	assert.Empty(t, a.ImportedBy)
	node, _ := g.Get(a.AbsPath)
	assert.Empty(t, node.Imports)
}
