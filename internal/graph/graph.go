// Package graph builds the dependency graph connecting discovered files
// through their resolved imports, and back-fills each file's ImportedBy list
// from the resulting adjacency.
package graph

import (
	"log/slog"
	"sort"

	"github.com/repograph/repograph/internal/pipeline"
)

// EdgeImport is a typed edge representing an import relationship: the
// importing file references the imported file, optionally through specific
// named symbols.
type EdgeImport struct {
	Symbols []string
}

// Node is a single vertex in the dependency graph, keyed by its absolute
// path in Graph.Nodes. A Node never holds a pointer to another Node directly;
// edges store the target's absolute path, looked up through the owning
// Graph's Nodes map.
type Node struct {
	AbsPath string
	File    *pipeline.FileDescriptor

	// Imports maps this node's absolute path targets to the edge describing
	// the relationship.
	Imports map[string]EdgeImport

	// ImportedBy is the set of absolute paths of nodes that import this node.
	ImportedBy map[string]struct{}
}

// Graph is the project-wide dependency graph: a map of absolute path to Node.
// It never owns cross-node pointers -- edges are path strings resolved
// through Nodes -- so the graph can be built and torn down without cycles
// complicating garbage collection.
type Graph struct {
	Nodes map[string]*Node
	log   *slog.Logger
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		log:   slog.Default().With("component", "graph"),
	}
}

// Build constructs the graph from files, adds an import edge for every
// resolved-internal import, writing both Node.Imports and Node.ImportedBy for
// each edge in a single pass -- which is what guarantees "F imports G" and
// "G is imported by F" never diverge -- then back-fills ImportedBy on every
// FileDescriptor. FileDescriptor.Imports is read, never rewritten.
func (g *Graph) Build(files []*pipeline.FileDescriptor) {
	for _, fd := range files {
		g.Nodes[fd.AbsPath] = &Node{
			AbsPath:    fd.AbsPath,
			File:       fd,
			Imports:    make(map[string]EdgeImport),
			ImportedBy: make(map[string]struct{}),
		}
	}

	for _, fd := range files {
		node := g.Nodes[fd.AbsPath]
		for _, imp := range fd.Imports {
			if imp.ResolvedPath == "" || imp.IsExternal {
				continue
			}
			target, ok := g.Nodes[imp.ResolvedPath]
			if !ok {
				continue
			}
			node.Imports[target.AbsPath] = EdgeImport{}
			target.ImportedBy[node.AbsPath] = struct{}{}
		}
	}

	for _, fd := range files {
		node := g.Nodes[fd.AbsPath]

		importedBy := make([]string, 0, len(node.ImportedBy))
		for path := range node.ImportedBy {
			importedBy = append(importedBy, path)
		}
		sort.Strings(importedBy)
		fd.ImportedBy = importedBy
	}

	g.log.Debug("dependency graph built", "nodes", len(g.Nodes))
}

// Get returns the Node for absPath, if present.
func (g *Graph) Get(absPath string) (*Node, bool) {
	n, ok := g.Nodes[absPath]
	return n, ok
}
