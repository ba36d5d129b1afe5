package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/repograph/repograph/internal/cache"
	"github.com/repograph/repograph/internal/pipeline"
	"github.com/repograph/repograph/internal/relevance"
)

// WalkOptions bundles everything that shapes a traversal: the root, the
// filter layers, the size/binary policies, and the priority rules applied to
// each surviving file.
type WalkOptions struct {
	// Root is the path to enumerate. A directory is traversed; a regular
	// file yields exactly one descriptor whose relative path is its base
	// name.
	Root string

	// MaxFileSize is the per-file size ceiling in bytes. Zero means
	// DefaultMaxFileSize.
	MaxFileSize int64

	// FollowSymlinks enables following links through the loop-guarded
	// resolver. When false, symlinked files are skipped.
	FollowSymlinks bool

	// IncludeHidden keeps dotfiles and descends into dot-directories.
	IncludeHidden bool

	// Parallel toggles the content-loading worker pool; when false, files
	// are read sequentially on the calling goroutine.
	Parallel bool

	// Concurrency bounds the parallel content loaders. Defaults to
	// runtime.NumCPU() when <= 0.
	Concurrency int

	// CustomIgnoreName is the filename of the tool-specific ignore file
	// consulted alongside .gitignore. Empty means ".repographignore".
	CustomIgnoreName string

	// IncludePatterns, ExcludePatterns, Extensions feed the PatternFilter.
	// All must already be sanitized.
	IncludePatterns []string
	ExcludePatterns []string
	Extensions      []string

	// PriorityRules is the ordered additive custom-priority rule list.
	PriorityRules []relevance.PriorityRule

	// FilterBinary drops files with known binary extensions and files whose
	// detected type is Other, in addition to the always-on null-byte sniff.
	FilterBinary bool

	// GitTrackedOnly restricts discovery to paths in the git index.
	GitTrackedOnly bool

	// Cache is the shared read-through content cache. A fresh one is
	// created when nil.
	Cache *cache.FileCache
}

// Walker enumerates files under a root, applies the layered ignore rules and
// filters, assigns each survivor its base priority, and loads content through
// the shared cache.
type Walker struct {
	logger *slog.Logger
}

// NewWalker creates a Walker.
func NewWalker() *Walker {
	return &Walker{logger: slog.Default().With("component", "walker")}
}

// Walk runs the traversal. Non-critical per-file failures are recorded on the
// affected descriptor (or counted as skips) and never abort the run; critical
// failures (permission-denied and invalid-argument classes) abort with a
// CriticalWalkError enumerating every offending path.
func (w *Walker) Walk(ctx context.Context, opts WalkOptions) (*pipeline.DiscoveryResult, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.CustomIgnoreName == "" {
		opts.CustomIgnoreName = ".repographignore"
	}
	if opts.Cache == nil {
		opts.Cache = cache.New()
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path %s: %w", opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", root, err)
	}

	if !info.IsDir() {
		return w.walkSingleFile(root, info, opts)
	}

	chain, err := w.buildIgnoreChain(root, opts)
	if err != nil {
		return nil, err
	}

	filter := NewPatternFilter(PatternFilterOptions{
		Includes:   opts.IncludePatterns,
		Excludes:   opts.ExcludePatterns,
		Extensions: opts.Extensions,
	})

	var gitTracked map[string]bool
	if opts.GitTrackedOnly {
		gitTracked, err = GitTrackedFiles(root)
		if err != nil {
			return nil, fmt.Errorf("loading git tracked files: %w", err)
		}
	}

	collect := &walkCollector{
		walker:      w,
		root:        root,
		opts:        opts,
		chain:       chain,
		filter:      filter,
		gitTracked:  gitTracked,
		symResolver: NewSymlinkResolver(),
		skipReasons: make(map[string]int),
		critical:    &CriticalWalkError{},
	}

	walkErr := filepath.WalkDir(root, collect.visit(ctx))
	if walkErr != nil {
		return nil, fmt.Errorf("walking directory %s: %w", root, walkErr)
	}
	if collect.critical.Len() > 0 {
		return nil, collect.critical
	}

	sort.Slice(collect.files, func(i, j int) bool {
		return collect.files[i].Path < collect.files[j].Path
	})

	if err := w.loadContents(ctx, collect.files, opts); err != nil {
		return nil, err
	}

	return collect.result(), nil
}

// walkSingleFile handles a regular-file root: one descriptor, relative path
// equal to the base name.
func (w *Walker) walkSingleFile(absPath string, info os.FileInfo, opts WalkOptions) (*pipeline.DiscoveryResult, error) {
	name := filepath.Base(absPath)
	fileType := DetectFileType(name)
	fd := &pipeline.FileDescriptor{
		Path:     name,
		AbsPath:  absPath,
		Size:     info.Size(),
		Tier:     pipeline.DefaultTier,
		FileType: fileType,
		Priority: relevance.ComputeBasePriority(name, fileType, opts.PriorityRules),
	}

	entry, err := opts.Cache.Get(absPath)
	if err != nil {
		if IsCriticalWalkError(err) {
			crit := &CriticalWalkError{}
			crit.Add(name, err)
			return nil, crit
		}
		fd.Error = fmt.Errorf("reading %s: %w", name, err)
	} else {
		fd.Content = entry.Content
		fd.ContentHash = entry.Hash
	}

	return &pipeline.DiscoveryResult{
		Files:       []pipeline.FileDescriptor{*fd},
		TotalFound:  1,
		SkipReasons: map[string]int{},
	}, nil
}

func (w *Walker) buildIgnoreChain(root string, opts WalkOptions) (IgnoreChain, error) {
	gitIgnore, err := NewGitignoreMatcher(root)
	if err != nil {
		return nil, fmt.Errorf("loading .gitignore chain: %w", err)
	}
	customIgnore, err := NewNamedIgnoreMatcher(root, opts.CustomIgnoreName)
	if err != nil {
		return nil, fmt.Errorf("loading %s chain: %w", opts.CustomIgnoreName, err)
	}
	return NewIgnoreChain(NewDefaultIgnoreMatcher(), gitIgnore, customIgnore), nil
}

// walkCollector accumulates traversal state for one Walk call.
type walkCollector struct {
	walker      *Walker
	root        string
	opts        WalkOptions
	chain       IgnoreChain
	filter      *PatternFilter
	gitTracked  map[string]bool
	symResolver *SymlinkResolver

	mu          sync.Mutex
	files       []*pipeline.FileDescriptor
	skipReasons map[string]int
	totalFound  int
	critical    *CriticalWalkError
}

func (c *walkCollector) skip(reason string) {
	c.mu.Lock()
	c.skipReasons[reason]++
	c.mu.Unlock()
}

func (c *walkCollector) visit(ctx context.Context) fs.WalkDirFunc {
	log := c.walker.logger
	return func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if IsCriticalWalkError(walkErr) {
				c.critical.Add(path, walkErr)
			} else {
				log.Debug("walk error", "path", path, "error", walkErr)
			}
			return nil
		}

		relPath, err := filepath.Rel(c.root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		isDir := d.IsDir()

		if !c.opts.IncludeHidden && isHiddenName(d.Name()) {
			if isDir {
				return fs.SkipDir
			}
			c.skip("hidden")
			return nil
		}

		if isDir && d.Name() == ".git" {
			return fs.SkipDir
		}

		if c.chain.IsIgnored(relPath, isDir) {
			if isDir {
				c.skip("ignored_dir")
				return fs.SkipDir
			}
			c.mu.Lock()
			c.totalFound++
			c.mu.Unlock()
			c.skip("ignored")
			return nil
		}
		if isDir {
			return nil
		}

		c.mu.Lock()
		c.totalFound++
		c.mu.Unlock()

		absPath := path
		isSymlink := d.Type()&os.ModeSymlink != 0
		if isSymlink {
			if !c.opts.FollowSymlinks {
				c.skip("symlink")
				return nil
			}
			realPath, isLoop, err := c.symResolver.Resolve(path)
			if err != nil {
				c.skip("symlink_error")
				return nil
			}
			if isLoop {
				c.skip("symlink_loop")
				return nil
			}
			c.symResolver.MarkVisited(realPath)
			absPath = realPath
		}

		if c.opts.GitTrackedOnly && c.gitTracked != nil && !c.gitTracked[relPath] {
			c.skip("not_tracked")
			return nil
		}

		fileInfo, err := os.Stat(absPath)
		if err != nil {
			if IsCriticalWalkError(err) {
				c.critical.Add(relPath, err)
			} else {
				c.skip("stat_error")
			}
			return nil
		}

		if fileInfo.Size() > c.opts.MaxFileSize {
			log.Debug("large file skipped", "path", relPath, "size", fileInfo.Size())
			c.skip("large_file")
			return nil
		}

		fileType := DetectFileType(relPath)

		if c.opts.FilterBinary && ShouldFilterBinary(relPath, fileType) {
			c.skip("binary_extension")
			return nil
		}
		isBin, binErr := IsBinary(absPath)
		if binErr != nil {
			// Leave the file in; the content-loading phase records the error.
			log.Debug("binary detection error", "path", relPath, "error", binErr)
		}
		if isBin {
			c.skip("binary")
			return nil
		}

		if c.filter.HasFilters() && !c.filter.Matches(relPath) {
			c.skip("pattern_filter")
			return nil
		}

		fd := &pipeline.FileDescriptor{
			Path:      relPath,
			AbsPath:   absPath,
			Size:      fileInfo.Size(),
			IsSymlink: isSymlink,
			Tier:      pipeline.DefaultTier,
			FileType:  fileType,
			Priority:  relevance.ComputeBasePriority(relPath, fileType, c.opts.PriorityRules),
		}
		c.mu.Lock()
		c.files = append(c.files, fd)
		c.mu.Unlock()
		return nil
	}
}

// loadContents reads every collected file through the shared cache, in
// parallel when opts.Parallel is set. Read failures land on the descriptor,
// except critical ones, which abort with an aggregate.
func (w *Walker) loadContents(ctx context.Context, files []*pipeline.FileDescriptor, opts WalkOptions) error {
	critical := &CriticalWalkError{}
	var mu sync.Mutex

	loadOne := func(fd *pipeline.FileDescriptor) {
		entry, err := opts.Cache.Get(fd.AbsPath)
		if err != nil {
			if IsCriticalWalkError(err) {
				mu.Lock()
				critical.Add(fd.Path, err)
				mu.Unlock()
				return
			}
			fd.Error = fmt.Errorf("reading %s: %w", fd.Path, err)
			w.logger.Debug("file read error", "path", fd.Path, "error", err)
			return
		}
		fd.Content = entry.Content
		fd.ContentHash = entry.Hash
	}

	if !opts.Parallel {
		for _, fd := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			loadOne(fd)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for _, fd := range files {
			fd := fd
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				loadOne(fd)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("reading file contents: %w", err)
		}
	}

	if critical.Len() > 0 {
		return critical
	}
	return nil
}

func (c *walkCollector) result() *pipeline.DiscoveryResult {
	resultFiles := make([]pipeline.FileDescriptor, len(c.files))
	for i, fd := range c.files {
		resultFiles[i] = *fd
	}
	totalSkipped := 0
	for _, n := range c.skipReasons {
		totalSkipped += n
	}

	c.walker.logger.Info("discovery complete",
		"files", len(resultFiles),
		"total_found", c.totalFound,
		"total_skipped", totalSkipped,
	)
	return &pipeline.DiscoveryResult{
		Files:        resultFiles,
		TotalFound:   c.totalFound,
		TotalSkipped: totalSkipped,
		SkipReasons:  c.skipReasons,
	}
}

// isHiddenName reports whether a directory entry name is hidden by the
// dotfile convention. The ignore-file names themselves are never treated as
// traversal candidates, so they need no carve-out here.
func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
