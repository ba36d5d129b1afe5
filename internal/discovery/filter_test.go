package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternFilter_PassThroughWhenEmpty(t *testing.T) {
	f := NewPatternFilter(PatternFilterOptions{})
	assert.False(t, f.HasFilters())
	assert.True(t, f.Matches("anything/at/all.xyz"))
	assert.False(t, f.Matches(""))
}

func TestPatternFilter_IncludesAndExtensionsAreOred(t *testing.T) {
	f := NewPatternFilter(PatternFilterOptions{
		Includes:   []string{"src/**"},
		Extensions: []string{".TS", "go"},
	})
	assert.True(t, f.Matches("src/deep/x.py"), "include pattern match")
	assert.True(t, f.Matches("other/y.ts"), "extension match, case-insensitive, dot stripped")
	assert.True(t, f.Matches("other/z.go"))
	assert.False(t, f.Matches("other/w.py"))
}

func TestPatternFilter_ExcludeBeatsInclude(t *testing.T) {
	f := NewPatternFilter(PatternFilterOptions{
		Includes: []string{"**/*.rs"},
		Excludes: []string{"tests/**"},
	})
	assert.True(t, f.Matches("src/lib.rs"))
	assert.False(t, f.Matches("tests/foo.rs"))
}

func TestPatternFilter_InvalidPatternNeverMatches(t *testing.T) {
	f := NewPatternFilter(PatternFilterOptions{Includes: []string{"[broken"}})
	assert.False(t, f.Matches("anything.go"))
}

func TestPatternFilter_NormalizesLeadingDotSlash(t *testing.T) {
	f := NewPatternFilter(PatternFilterOptions{Includes: []string{"src/**"}})
	assert.True(t, f.Matches("./src/a.go"))
}
