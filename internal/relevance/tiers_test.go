package relevance

import (
	"testing"

	"github.com/repograph/repograph/internal/pipeline"
)

func TestTierMatcher_DefaultDefinitions(t *testing.T) {
	m := NewTierMatcher(nil)
	cases := []struct {
		path string
		want Tier
	}{
		{"go.mod", Tier0Critical},
		{"Dockerfile", Tier0Critical},
		{"cmd/app/run.go", Tier1Primary},
		{"src/widget.ts", Tier1Primary},
		{"random/thing.xyz", Tier2Secondary},
		{"internal/walker/walker.go", Tier1Primary},
		{"tests/unit/walker_test.go", Tier3Tests},
		{"docs/guide.md", Tier4Docs},
		{"README.md", Tier4Docs},
		{".github/workflows/ci.yml", Tier5Low},
	}
	for _, c := range cases {
		if got := m.Match(c.path); got != c.want {
			t.Errorf("Match(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

// Ties between definitions resolve to the lowest tier regardless of the
// order the caller supplies them in.
func TestTierMatcher_LowestTierWins(t *testing.T) {
	m := NewTierMatcher([]TierDefinition{
		{Tier: Tier4Docs, Patterns: []string{"**/*.md"}},
		{Tier: Tier0Critical, Patterns: []string{"README.md"}},
	})
	if got := m.Match("README.md"); got != Tier0Critical {
		t.Errorf("got %v, want critical", got)
	}
}

func TestTierMatcher_InvalidPatternNeverMatches(t *testing.T) {
	m := NewTierMatcher([]TierDefinition{
		{Tier: Tier0Critical, Patterns: []string{"[bad"}},
	})
	if got := m.Match("anything.go"); got != Tier2Secondary {
		t.Errorf("got %v, want default secondary", got)
	}
}

func TestClassifyTiersAndSummary(t *testing.T) {
	files := []*pipeline.FileDescriptor{
		{Path: "src/main.rs", TokenCount: 100},
		{Path: "src/lib.rs", TokenCount: 50},
		{Path: "tests/test.rs", TokenCount: 30},
	}
	ClassifyTiers(files, nil)

	stats := TierSummary(files)
	if len(stats) != 2 {
		t.Fatalf("got %d tiers, want 2", len(stats))
	}
	if stats[0].Tier != int(Tier1Primary) || stats[0].FileCount != 2 || stats[0].TotalTokens != 150 {
		t.Errorf("primary group wrong: %+v", stats[0])
	}
	if stats[0].FilePaths[0] != "src/lib.rs" {
		t.Errorf("paths not sorted: %v", stats[0].FilePaths)
	}
	if stats[1].Tier != int(Tier3Tests) || stats[1].FileCount != 1 {
		t.Errorf("tests group wrong: %+v", stats[1])
	}
}

func TestGroupByTier_PreservesOrder(t *testing.T) {
	files := []*pipeline.FileDescriptor{
		{Path: "b.go", Tier: 1},
		{Path: "a.go", Tier: 1},
		{Path: "c.md", Tier: 4},
	}
	groups := GroupByTier(files)
	if len(groups[1]) != 2 || groups[1][0].Path != "b.go" {
		t.Errorf("tier 1 group should preserve insertion order: %v", groups[1])
	}
	if len(groups[4]) != 1 {
		t.Errorf("tier 4 group wrong")
	}
}

// src/main.rs and src/lib.rs group under "src" (priority order inside),
// tests/test.rs under "tests", groups ascending by key.
func TestGroupByDirectory(t *testing.T) {
	files := []*pipeline.FileDescriptor{
		{Path: "src/lib.rs", Priority: 1.2},
		{Path: "tests/test.rs", Priority: 0.8},
		{Path: "src/main.rs", Priority: 1.8},
		{Path: "README.md", Priority: 0.6},
	}
	groups := GroupByDirectory(files)

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[0].Dir != "." || groups[1].Dir != "src" || groups[2].Dir != "tests" {
		t.Fatalf("group keys not ascending: %v, %v, %v", groups[0].Dir, groups[1].Dir, groups[2].Dir)
	}
	if len(groups[1].Files) != 2 || groups[1].Files[0].Path != "src/main.rs" {
		t.Errorf("src group must order by priority: %+v", groups[1].Files)
	}
	if len(groups[2].Files) != 1 {
		t.Errorf("tests group wrong size")
	}
}

func TestTierString(t *testing.T) {
	if Tier0Critical.String() != "critical" || Tier5Low.String() != "low" {
		t.Error("tier labels wrong")
	}
	if Tier(9).String() != "tier9" {
		t.Errorf("unknown tier label: %s", Tier(9).String())
	}
}
