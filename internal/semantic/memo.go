package semantic

import (
	"fmt"
	"sync"

	"github.com/zeebo/xxh3"
)

// MemoCache memoizes AnalyzeFile results keyed by (path, content hash), so a
// file analyzed once on one traversal branch is never re-parsed when a
// sibling branch reaches it again. The engine creates one cache per analysis
// stage (per-file analysis and dependency expansion each hold their own).
type MemoCache struct {
	mu    sync.RWMutex
	store map[string]AnalysisResult
}

// NewMemoCache creates an empty MemoCache.
func NewMemoCache() *MemoCache {
	return &MemoCache{store: make(map[string]AnalysisResult)}
}

// Key derives the memoization key for path and content.
func Key(path, content string) string {
	return fmt.Sprintf("%s#%x", path, xxh3.HashString(content))
}

// Get returns the cached result for key, if present.
func (c *MemoCache) Get(key string) (AnalysisResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.store[key]
	return r, ok
}

// Put stores result under key.
func (c *MemoCache) Put(key string, result AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = result
}

// AnalyzeMemoized runs analyzer.AnalyzeFile for (path, content) unless an
// equivalent (path, content-hash) analysis is already cached.
func (c *MemoCache) AnalyzeMemoized(analyzer LanguageAnalyzer, path, content string, ctx SemanticContext) (AnalysisResult, error) {
	key := Key(path, content)
	if r, ok := c.Get(key); ok {
		return r, nil
	}
	r, err := analyzer.AnalyzeFile(path, content, ctx)
	if err != nil {
		return AnalysisResult{}, err
	}
	c.Put(key, r)
	return r, nil
}
