package relevance

import (
	"math"
	"testing"

	"github.com/repograph/repograph/internal/pipeline"
)

func TestBasePriority_ClosedTable(t *testing.T) {
	cases := []struct {
		ft   pipeline.FileType
		want float64
	}{
		{pipeline.FileTypeRust, 1.0},
		{pipeline.FileTypeTypeScript, 0.95},
		{pipeline.FileTypePython, 0.9},
		{pipeline.FileTypeJavaScript, 0.9},
		{pipeline.FileTypeGo, 0.9},
		{pipeline.FileTypeJava, 0.85},
		{pipeline.FileTypeCPP, 0.85},
		{pipeline.FileTypeCSharp, 0.85},
		{pipeline.FileTypeSwift, 0.85},
		{pipeline.FileTypeKotlin, 0.85},
		{pipeline.FileTypeDart, 0.85},
		{pipeline.FileTypeC, 0.8},
		{pipeline.FileTypeRuby, 0.8},
		{pipeline.FileTypeScala, 0.8},
		{pipeline.FileTypeJulia, 0.8},
		{pipeline.FileTypeElixir, 0.8},
		{pipeline.FileTypePHP, 0.75},
		{pipeline.FileTypeHaskell, 0.75},
		{pipeline.FileTypeR, 0.75},
		{pipeline.FileTypeElm, 0.75},
		{pipeline.FileTypeLua, 0.7},
		{pipeline.FileTypeMarkdown, 0.6},
		{pipeline.FileTypeJSON, 0.5},
		{pipeline.FileTypeYAML, 0.5},
		{pipeline.FileTypeTOML, 0.5},
		{pipeline.FileTypeXML, 0.4},
		{pipeline.FileTypeHTML, 0.4},
		{pipeline.FileTypeCSS, 0.4},
		{pipeline.FileTypeText, 0.3},
		{pipeline.FileTypeOther, 0.2},
	}
	for _, c := range cases {
		if got := BasePriority(c.ft); got != c.want {
			t.Errorf("BasePriority(%v) = %v, want %v", c.ft, got, c.want)
		}
	}
}

func TestApplyPathHeuristics(t *testing.T) {
	cases := []struct {
		path string
		ft   pipeline.FileType
		base float64
		want float64
	}{
		{"cmd/main.go", pipeline.FileTypeGo, 1.0, 1.5},
		{"lib/util.rb", pipeline.FileTypeRuby, 1.0, 1.2},
		{"tests/foo.rs", pipeline.FileTypeRust, 1.0, 0.8},
		{"examples/demo.go", pipeline.FileTypeGo, 1.0, 0.7},
		{"config.toml", pipeline.FileTypeTOML, 0.5, 0.65},
		{"nested/config.toml", pipeline.FileTypeTOML, 0.5, 0.5}, // root bonus is root-only
		{"README.md", pipeline.FileTypeMarkdown, 0.6, 0.6},
	}
	for _, c := range cases {
		if got := ApplyPathHeuristics(c.path, c.ft, c.base); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ApplyPathHeuristics(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

// Matching heuristics stack: an entrypoint inside a source directory collects
// both factors, and a test entrypoint collects the discount too.
func TestApplyPathHeuristics_FactorsStack(t *testing.T) {
	if got := ApplyPathHeuristics("src/index.ts", pipeline.FileTypeTypeScript, 1.0); math.Abs(got-1.8) > 1e-9 {
		t.Errorf("src/index.ts: got %v, want 1.8 (1.5 x 1.2)", got)
	}
	if got := ApplyPathHeuristics("src/main_test.go", pipeline.FileTypeGo, 1.0); math.Abs(got-1.44) > 1e-9 {
		t.Errorf("src/main_test.go: got %v, want 1.44 (1.5 x 1.2 x 0.8)", got)
	}
}

func TestComputeBasePriority_CapsAtPreBoostCap(t *testing.T) {
	rules := []PriorityRule{{Pattern: "**/*.go", Weight: 5.0}}
	if got := ComputeBasePriority("cmd/main.go", pipeline.FileTypeGo, rules); got != PreBoostCap {
		t.Errorf("got %v, want cap %v", got, PreBoostCap)
	}
}

func TestApplyCustomRules_FirstMatchWins(t *testing.T) {
	rules := []PriorityRule{
		{Pattern: "internal/**", Weight: 0.5},
		{Pattern: "**/*.go", Weight: 100},
	}
	if got := ApplyCustomRules("internal/foo.go", 1.0, rules); got != 1.5 {
		t.Errorf("got %v, want 1.5 (first rule only)", got)
	}
}

func TestApplyCustomRules_NegativeWeightAndNoMatch(t *testing.T) {
	rules := []PriorityRule{{Pattern: "vendor/**", Weight: -10}}
	if got := ApplyCustomRules("vendor/dep.go", 1.0, rules); got != -9.0 {
		t.Errorf("negative weight: got %v, want -9", got)
	}
	if got := ApplyCustomRules("src/app.go", 1.0, rules); got != 1.0 {
		t.Errorf("no match: got %v, want unchanged 1.0", got)
	}
}

func mkfd(abs, rel string, priority float64) *pipeline.FileDescriptor {
	return &pipeline.FileDescriptor{AbsPath: abs, Path: rel, Priority: priority}
}

// A 2.0-priority importer adds 0.4 to each import; a 1.0 importer adds 0.2;
// files imported by nobody keep their base priority.
func TestBoostGraph_ImporterFractionPropagates(t *testing.T) {
	main := mkfd("/r/main.rs", "main.rs", 2.0)
	lib := mkfd("/r/lib.rs", "lib.rs", 1.0)
	utils := mkfd("/r/utils.rs", "utils.rs", 0.8)
	unused := mkfd("/r/unused.rs", "unused.rs", 0.5)
	main.Imports = []pipeline.Import{
		{Module: "lib", ResolvedPath: "/r/lib.rs"},
		{Module: "utils", ResolvedPath: "/r/utils.rs"},
	}

	BoostGraph([]*pipeline.FileDescriptor{main, lib, utils, unused})

	if main.Priority != 2.0 {
		t.Errorf("main: got %v, want 2.0", main.Priority)
	}
	if math.Abs(lib.Priority-1.4) > 1e-9 {
		t.Errorf("lib: got %v, want 1.4", lib.Priority)
	}
	if math.Abs(utils.Priority-1.2) > 1e-9 {
		t.Errorf("utils: got %v, want 1.2", utils.Priority)
	}
	if unused.Priority != 0.5 {
		t.Errorf("unused: got %v, want 0.5", unused.Priority)
	}
}

func TestBoostGraph_IgnoresExternalAndUnresolvedImports(t *testing.T) {
	a := mkfd("/r/a.go", "a.go", 1.0)
	b := mkfd("/r/b.go", "b.go", 0.5)
	a.Imports = []pipeline.Import{
		{Module: "fmt", IsExternal: true, ResolvedPath: "/r/b.go"},
		{Module: "mystery"},
	}
	BoostGraph([]*pipeline.FileDescriptor{a, b})
	if b.Priority != 0.5 {
		t.Errorf("b: got %v, want untouched 0.5", b.Priority)
	}
}

func TestBoostGraph_CapsAtPostBoostCap(t *testing.T) {
	target := mkfd("/r/core.go", "core.go", 2.0)
	files := []*pipeline.FileDescriptor{target}
	for i := 0; i < 20; i++ {
		imp := mkfd("/r/x.go", "x.go", 2.0)
		imp.AbsPath = imp.AbsPath + string(rune('a'+i))
		imp.Imports = []pipeline.Import{{Module: "core", ResolvedPath: "/r/core.go"}}
		files = append(files, imp)
	}
	BoostGraph(files)
	if target.Priority != PostBoostCap {
		t.Errorf("got %v, want capped at %v", target.Priority, PostBoostCap)
	}
}

func TestSortByPriority_DescendingThenPath(t *testing.T) {
	high := mkfd("/r/high.rs", "high.rs", 1.0)
	low := mkfd("/r/low.txt", "low.txt", 0.3)
	files := []*pipeline.FileDescriptor{low, high}
	SortByPriority(files)
	if files[0] != high || files[1] != low {
		t.Fatalf("got order %s, %s", files[0].Path, files[1].Path)
	}

	b := mkfd("/r/b.go", "b.go", 1.0)
	a := mkfd("/r/a.go", "a.go", 1.0)
	tied := []*pipeline.FileDescriptor{b, a}
	SortByPriority(tied)
	if tied[0] != a {
		t.Errorf("tie not broken by ascending path: got %s first", tied[0].Path)
	}
}

func TestSortByPriority_NonFiniteComparesEqual(t *testing.T) {
	nan := mkfd("/r/nan.go", "a-nan.go", math.NaN())
	inf := mkfd("/r/inf.go", "b-inf.go", math.Inf(1))
	files := []*pipeline.FileDescriptor{inf, nan}
	SortByPriority(files)
	if files[0] != nan {
		t.Errorf("non-finite pair should fall through to path tie-break")
	}
}
