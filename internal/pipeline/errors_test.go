package pipeline

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepographError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := NewError("generation failed", cause)

	assert.Equal(t, int(ExitError), err.Code)
	assert.Equal(t, "generation failed: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewError("just a message", nil)
	assert.Equal(t, "just a message", bare.Error())
}

func TestNewPartialError(t *testing.T) {
	err := NewPartialError("3 files skipped", nil)
	assert.Equal(t, int(ExitPartial), err.Code)

	var re *RepographError
	require.True(t, errors.As(fmt.Errorf("wrap: %w", err), &re))
	assert.Equal(t, int(ExitPartial), re.Code)
}

func TestSentinelWrappers(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{FileProcessingError("a.go", "unreadable"), ErrFileProcessing},
		{TokenCountingError("b.go", "encoder died"), ErrTokenCounting},
		{SemanticError("c.go", "parse failed"), ErrSemantic},
	}
	for _, c := range cases {
		assert.ErrorIs(t, c.err, c.sentinel)
		assert.Contains(t, c.err.Error(), ".go")
	}
	assert.NotErrorIs(t, FileProcessingError("a", "b"), ErrSemantic)
}

func TestDiagnostics_ConcurrentAdds(t *testing.T) {
	d := NewDiagnostics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			d.Add(fmt.Sprintf("file%d.go", n), "semantic", ErrSemantic)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, d.Len())
	entries := d.Entries()
	assert.Len(t, entries, 50)

	// Entries returns a copy; mutating it never touches the collector.
	entries[0].Path = "mutated"
	assert.NotEqual(t, "mutated", d.Entries()[0].Path)
}
