// Package cache provides a content-addressed, at-most-one-disk-read file
// cache shared by discovery, semantic analysis, and relevance enrichment so
// none of those stages ever reads the same path from disk twice.
package cache

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"
)

// Entry is a cached file's content plus its fast, non-cryptographic hash.
type Entry struct {
	Content string
	Hash    uint64
}

// FileCache memoizes file reads keyed by absolute path. Concurrent callers
// requesting the same path while the first read is in flight are collapsed
// into that single disk read via singleflight, rather than each blocking on
// its own os.ReadFile call.
type FileCache struct {
	group singleflight.Group
	store sync.Map // absPath -> Entry
	log   *slog.Logger

	mu    sync.Mutex
	hits  int
	misses int
}

// New creates an empty FileCache.
func New() *FileCache {
	return &FileCache{log: slog.Default().With("component", "cache")}
}

// Get returns the cached Entry for absPath, reading the file from disk on
// first request. Every subsequent Get for the same path -- whether
// concurrent with the in-flight read or after it completes -- is served from
// memory without touching the filesystem again.
func (c *FileCache) Get(absPath string) (Entry, error) {
	if v, ok := c.store.Load(absPath); ok {
		c.recordHit()
		return v.(Entry), nil
	}

	v, err, _ := c.group.Do(absPath, func() (interface{}, error) {
		// Re-check after winning the singleflight race: another caller may
		// have populated the store between the Load above and this point.
		if v, ok := c.store.Load(absPath); ok {
			return v.(Entry), nil
		}

		data, err := os.ReadFile(absPath)
		if err != nil {
			return Entry{}, err
		}
		if !utf8.Valid(data) {
			return Entry{}, fmt.Errorf("reading %s: content is not valid UTF-8", absPath)
		}

		entry := Entry{
			Content: string(data),
			Hash:    xxh3.HashString(string(data)),
		}
		c.store.Store(absPath, entry)
		c.recordMiss()
		return entry, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return v.(Entry), nil
}

// Invalidate drops the cached entry for absPath, if any, forcing the next
// Get to re-read the file from disk.
func (c *FileCache) Invalidate(absPath string) {
	c.store.Delete(absPath)
}

// Clear drops every cached entry.
func (c *FileCache) Clear() {
	c.store.Range(func(k, _ interface{}) bool {
		c.store.Delete(k)
		return true
	})
}

func (c *FileCache) recordHit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *FileCache) recordMiss() {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}

// Stats reports cumulative hit/miss counts, useful for diagnostics.
func (c *FileCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
