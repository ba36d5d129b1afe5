package tokenizer

import (
	"math"
	"strings"
	"testing"

	"github.com/repograph/repograph/internal/pipeline"
)

func fd(path string, tokens int) *pipeline.FileDescriptor {
	return &pipeline.FileDescriptor{Path: path, TokenCount: tokens}
}

func paths(files []*pipeline.FileDescriptor) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestWouldExceedLimit(t *testing.T) {
	cases := []struct {
		running, addition, max int
		want                   bool
	}{
		{0, 100, 100, false},
		{0, 101, 100, true},
		{900, 100, 1000, false},
		{900, 101, 1000, true},
		{0, 0, 0, false},
		{math.MaxInt, 1, math.MaxInt, true},  // saturates, no wraparound
		{1, math.MaxInt, math.MaxInt, true},
	}
	for _, c := range cases {
		if got := WouldExceedLimit(c.running, c.addition, c.max); got != c.want {
			t.Errorf("WouldExceedLimit(%d, %d, %d) = %v, want %v", c.running, c.addition, c.max, got, c.want)
		}
	}
}

// Budget 1000 with overhead 200: candidates costing 300, 400, 500, 100 admit
// as first (500), second (900), skip third (would hit 1400), fourth (1000).
func TestEnforce_SkipAndContinue(t *testing.T) {
	files := []*pipeline.FileDescriptor{
		fd("a.rs", 300), fd("b.rs", 400), fd("c.rs", 500), fd("d.rs", 100),
	}
	e := NewBudgetEnforcer(1000, SkipStrategy, estimator{})
	result := e.Enforce(files, 200)

	got := paths(result.IncludedFiles)
	want := []string{"a.rs", "b.rs", "d.rs"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("included %v, want %v", got, want)
	}
	if len(result.ExcludedFiles) != 1 || result.ExcludedFiles[0].Path != "c.rs" {
		t.Errorf("excluded %v, want [c.rs]", paths(result.ExcludedFiles))
	}
	if result.TotalTokens != 800 {
		t.Errorf("TotalTokens = %d, want 800", result.TotalTokens)
	}
	if result.BudgetUsed != 1000 || result.BudgetRemaining != 0 {
		t.Errorf("used/remaining = %d/%d, want 1000/0", result.BudgetUsed, result.BudgetRemaining)
	}
}

func TestEnforce_StopOnFirstMiss(t *testing.T) {
	files := []*pipeline.FileDescriptor{
		fd("a.rs", 300), fd("b.rs", 400), fd("c.rs", 500), fd("d.rs", 100),
	}
	e := NewBudgetEnforcer(1000, SkipStrategy, estimator{})
	e.StopOnFirstMiss = true
	result := e.Enforce(files, 200)

	got := paths(result.IncludedFiles)
	if strings.Join(got, ",") != "a.rs,b.rs" {
		t.Fatalf("included %v, want [a.rs b.rs]", got)
	}
	if len(result.ExcludedFiles) != 2 {
		t.Errorf("excluded %v, want c.rs and d.rs", paths(result.ExcludedFiles))
	}
}

func TestEnforce_NoBudgetIncludesEverything(t *testing.T) {
	files := []*pipeline.FileDescriptor{fd("a.go", 10), fd("b.go", 20)}
	result := NewBudgetEnforcer(0, SkipStrategy, nil).Enforce(files, 9999)
	if len(result.IncludedFiles) != 2 || len(result.ExcludedFiles) != 0 {
		t.Fatalf("no-budget run must include everything")
	}
	if result.TotalTokens != 30 {
		t.Errorf("TotalTokens = %d, want 30", result.TotalTokens)
	}
}

func TestEnforce_OverheadAloneOverruns(t *testing.T) {
	files := []*pipeline.FileDescriptor{fd("a.go", 1)}
	result := NewBudgetEnforcer(100, SkipStrategy, estimator{}).Enforce(files, 150)
	if len(result.IncludedFiles) != 0 {
		t.Fatalf("nothing fits when overhead exceeds the budget")
	}
	if result.BudgetRemaining >= 0 {
		t.Errorf("BudgetRemaining = %d, want negative", result.BudgetRemaining)
	}
}

func TestEnforce_TruncateStrategy(t *testing.T) {
	big := fd("big.go", 0)
	big.Content = strings.TrimRight(strings.Repeat(strings.Repeat("x", 39)+"\n", 100), "\n")
	big.TokenCount = estimator{}.Count(big.Content)

	small := fd("small.go", 50)
	e := NewBudgetEnforcer(500, TruncateStrategy, estimator{})
	result := e.Enforce([]*pipeline.FileDescriptor{big, small}, 0)

	if len(result.TruncatedFiles) != 1 {
		t.Fatalf("want exactly one truncated file, got %d", len(result.TruncatedFiles))
	}
	trunc := result.TruncatedFiles[0]
	if trunc.TokenCount > 500 {
		t.Errorf("truncated file still overruns: %d tokens", trunc.TokenCount)
	}
	if !strings.Contains(trunc.Content, "Content truncated") {
		t.Error("missing truncation marker")
	}
	if big.Content == trunc.Content {
		t.Error("original descriptor must not be mutated")
	}
	// Everything after the truncation point is excluded.
	if len(result.ExcludedFiles) != 1 || result.ExcludedFiles[0].Path != "small.go" {
		t.Errorf("excluded %v, want [small.go]", paths(result.ExcludedFiles))
	}
}

// The admitted sequence always satisfies overhead + sum(tokens) <= budget.
func TestEnforce_AdmittedSumNeverOverruns(t *testing.T) {
	files := []*pipeline.FileDescriptor{
		fd("a", 250), fd("b", 251), fd("c", 252), fd("d", 1), fd("e", 9999), fd("f", 3),
	}
	const budget, overhead = 700, 100
	result := NewBudgetEnforcer(budget, SkipStrategy, estimator{}).Enforce(files, overhead)
	sum := overhead
	for _, f := range result.IncludedFiles {
		sum += f.TokenCount
	}
	if sum > budget {
		t.Fatalf("admitted sum %d exceeds budget %d", sum, budget)
	}
}
