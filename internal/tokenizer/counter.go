package tokenizer

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/repograph/repograph/internal/pipeline"
)

// TokenCounter counts tokens for whole file sets in parallel through one
// shared Tokenizer.
type TokenCounter struct {
	tok Tokenizer
}

// NewTokenCounter wraps tok, which must be goroutine-safe (every built-in
// implementation is).
func NewTokenCounter(tok Tokenizer) *TokenCounter {
	return &TokenCounter{tok: tok}
}

// CountFile stamps fd.TokenCount from fd.Content.
func (c *TokenCounter) CountFile(fd *pipeline.FileDescriptor) {
	fd.TokenCount = c.tok.Count(fd.Content)
}

// CountFiles counts every descriptor in parallel, bounded to
// runtime.NumCPU() workers, and returns the grand total. Cancellation drains
// in-flight workers and returns the context error; per-file counting itself
// cannot fail.
func (c *TokenCounter) CountFiles(ctx context.Context, files []*pipeline.FileDescriptor) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var total atomic.Int64
	for _, fd := range files {
		fd := fd
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("token counting cancelled: %w", err)
			}
			c.CountFile(fd)
			total.Add(int64(fd.TokenCount))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(total.Load()), nil
}
