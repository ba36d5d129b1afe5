// Package engine wires the discovery, semantic analysis, import resolution,
// dependency graph, relevance, and token budget stages into the single
// orchestrated run the CLI invokes. It depends on every stage package, so it
// cannot live inside internal/pipeline (every stage package depends on
// internal/pipeline for the shared FileDescriptor DTO; importing back would
// cycle).
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/repograph/repograph/internal/cache"
	"github.com/repograph/repograph/internal/config"
	"github.com/repograph/repograph/internal/discovery"
	"github.com/repograph/repograph/internal/graph"
	"github.com/repograph/repograph/internal/pipeline"
	"github.com/repograph/repograph/internal/relevance"
	"github.com/repograph/repograph/internal/render"
	"github.com/repograph/repograph/internal/semantic"
	"github.com/repograph/repograph/internal/semantic/resolve"
	"github.com/repograph/repograph/internal/tokenizer"
)

// Result is the outcome of a full pipeline run: the final file selection in
// render order, the token budget accounting that produced it, the rendered
// document body, and any non-fatal per-file diagnostics collected along the
// way.
type Result struct {
	Files       []*pipeline.FileDescriptor
	Budget      *tokenizer.BudgetResult
	Diagnostics *pipeline.Diagnostics
	Document    string
}

// defaultSemanticDepth is used when the configured SemanticDepth is <= 0.
const defaultSemanticDepth = 2

// Run executes the full context-assembly pipeline for cfg and returns the
// assembled Result. It never returns an error for per-file failures: those
// are recorded on Result.Diagnostics and the corresponding FileDescriptor's
// Error field. Run only returns an error for conditions that make the whole
// run meaningless (an invalid root directory, a misconfigured tokenizer, a
// malformed custom priority rule).
func Run(ctx context.Context, cfg *config.FlagValues) (*Result, error) {
	log := slog.Default().With("component", "engine")

	root, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %s: %v", pipeline.ErrInvalidPath, cfg.Dir, err)
	}

	if err := discovery.SanitizePatterns(cfg.Includes); err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrInvalidConfiguration, err)
	}
	if err := discovery.SanitizePatterns(cfg.Excludes); err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrInvalidConfiguration, err)
	}

	priorityRules, err := parsePriorityRules(cfg.CustomPriority)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrInvalidConfiguration, err)
	}

	diagnostics := pipeline.NewDiagnostics()
	fileCache := cache.New()

	discoveryResult, err := runDiscovery(ctx, root, cfg, priorityRules, fileCache)
	if err != nil {
		return nil, err
	}

	files := make([]*pipeline.FileDescriptor, len(discoveryResult.Files))
	for i := range discoveryResult.Files {
		files[i] = &discoveryResult.Files[i]
	}

	semanticDepth := cfg.SemanticDepth
	if semanticDepth <= 0 {
		semanticDepth = defaultSemanticDepth
	}
	runSemanticAnalysis(ctx, files, semanticDepth, diagnostics)
	// Cancellation never yields a partial emission: a cancelled parallel map
	// finishes its in-flight items, then the whole run aborts here.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runImportResolution(root, files, diagnostics)
	files = expandDependencies(root, files, semanticDepth, fileCache, priorityRules, diagnostics)
	relevance.ClassifyTiers(files, nil)
	if cfg.EnhancedContext {
		resolveTypeDefinitions(root, files)
	}

	g := graph.New()
	g.Build(files)

	relevance.BoostGraph(files)

	if cfg.GitContext {
		counts, gitErr := discovery.RecentlyChangedFiles(root, cfg.GitContextDepth)
		if gitErr != nil {
			log.Debug("git context enrichment unavailable", "error", gitErr)
		} else {
			relevance.ApplyGitRecencyBoost(files, counts, cfg.GitContextDepth)
		}
	}

	relevance.SortByPriority(files)

	tok, err := tokenizer.NewTokenizer(cfg.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrInvalidConfiguration, err)
	}

	counter := tokenizer.NewTokenCounter(tok)
	if _, err := counter.CountFiles(ctx, files); err != nil {
		return nil, fmt.Errorf("counting tokens: %w", err)
	}

	// Files whose read failed carry no content to emit: they leave the
	// candidate set here, surviving only as diagnostics.
	candidates := files[:0]
	for _, fd := range files {
		if fd.Error != nil {
			diagnostics.Add(fd.Path, "discovery", pipeline.FileProcessingError(fd.Path, fd.Error.Error()))
			continue
		}
		candidates = append(candidates, fd)
	}
	files = candidates

	headerTokens := tok.Count(render.DocumentHeader(cfg.DocumentHeaderTemplate, "."))
	overhead := relevance.StructuralOverhead(len(files), headerTokens, cfg.IncludeStats, cfg.IncludeTree, cfg.IncludeTOC)

	strategy := tokenizer.TruncationStrategy(cfg.TruncationStrategy)
	if strategy == "" {
		strategy = tokenizer.SkipStrategy
	}
	enforcer := tokenizer.NewBudgetEnforcer(cfg.MaxTokens, strategy, tok)
	enforcer.StopOnFirstMiss = cfg.StopOnFirstBudgetMiss
	budget := enforcer.Enforce(files, overhead)

	doc := render.Render(render.Options{
		Root:               root,
		Format:             cfg.Format,
		IncludeTree:        cfg.IncludeTree,
		IncludeStats:       cfg.IncludeStats,
		IncludeTOC:         cfg.IncludeTOC,
		LineNumbers:        cfg.LineNumbers,
		EnhancedContext:    cfg.EnhancedContext,
		Target:             cfg.Target,
		HeaderTemplate:     cfg.DocumentHeaderTemplate,
		FileHeaderTemplate: cfg.FileHeaderTemplate,
	}, budget)

	log.Info("pipeline run complete",
		"files_included", len(budget.IncludedFiles),
		"files_excluded", len(budget.ExcludedFiles),
		"diagnostics", diagnostics.Len(),
	)

	return &Result{
		Files:       budget.IncludedFiles,
		Budget:      budget,
		Diagnostics: diagnostics,
		Document:    doc,
	}, nil
}

func parsePriorityRules(raw []string) ([]relevance.PriorityRule, error) {
	rules := make([]relevance.PriorityRule, 0, len(raw))
	for _, r := range raw {
		pattern, weight, err := config.ParsePriorityRule(r)
		if err != nil {
			return nil, err
		}
		if err := discovery.SanitizePattern(pattern); err != nil {
			return nil, fmt.Errorf("priority rule %q: %w", r, err)
		}
		rules = append(rules, relevance.PriorityRule{Pattern: pattern, Weight: weight})
	}
	return rules, nil
}

func runDiscovery(ctx context.Context, root string, cfg *config.FlagValues, priorityRules []relevance.PriorityRule, fileCache *cache.FileCache) (*pipeline.DiscoveryResult, error) {
	walker := discovery.NewWalker()
	result, err := walker.Walk(ctx, discovery.WalkOptions{
		Root:             root,
		MaxFileSize:      cfg.SkipLargeFiles,
		FollowSymlinks:   cfg.FollowSymlinks,
		IncludeHidden:    cfg.IncludeHidden,
		Parallel:         cfg.Parallel,
		CustomIgnoreName: cfg.IgnoreFile,
		IncludePatterns:  cfg.Includes,
		ExcludePatterns:  cfg.Excludes,
		Extensions:       cfg.Filters,
		PriorityRules:    priorityRules,
		FilterBinary:     cfg.Prompt != "",
		GitTrackedOnly:   cfg.GitTrackedOnly,
		Cache:            fileCache,
	})
	if err != nil {
		var crit *discovery.CriticalWalkError
		if errors.As(err, &crit) {
			return nil, fmt.Errorf("%w: %v", pipeline.ErrFileProcessing, err)
		}
		return nil, fmt.Errorf("%w: %v", pipeline.ErrInvalidPath, err)
	}
	return result, nil
}

// runSemanticAnalysis analyzes every non-binary, successfully-read file in
// parallel, bounded to runtime.NumCPU() concurrent workers, memoizing
// results by (path, content hash) so files revisited on more than one
// dependency-graph branch are only parsed once.
func runSemanticAnalysis(ctx context.Context, files []*pipeline.FileDescriptor, maxDepth int, diagnostics *pipeline.Diagnostics) {
	registry := semantic.NewRegistry()
	memo := semantic.NewMemoCache()
	root := semantic.NewSemanticContext(maxDepth)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, fd := range files {
		fd := fd
		if fd.IsBinary || fd.Error != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			ext := strings.TrimPrefix(filepath.Ext(fd.Path), ".")
			analyzer := registry.For(ext)
			analysis, err := memo.AnalyzeMemoized(analyzer, fd.Path, fd.Content, root)
			if err != nil {
				diagnostics.Add(fd.Path, "semantic", pipeline.SemanticError(fd.Path, err.Error()))
				return nil
			}
			fd.Imports = analysis.Imports
			fd.FunctionCalls = analysis.FunctionCalls
			fd.TypeReferences = analysis.TypeReferences
			fd.ExportedFunctions = analysis.ExportedFunctions
			for _, warning := range analysis.Warnings {
				diagnostics.Add(fd.Path, "semantic", pipeline.SemanticError(fd.Path, warning))
			}
			return nil
		})
	}
	_ = g.Wait() // worker funcs never return a non-nil error; failures go to diagnostics
}

// expandDependencies follows resolved internal imports out of the walked set,
// depth-limited by SemanticContext: an import of a file the walk never
// produced (filtered out, or outside the include patterns) is loaded through
// the shared cache, analyzed, resolved, and appended to the working set, then
// its own imports are followed through a derived child context. The
// child-derivation rule makes cycles impossible and bounds the expansion at
// maxDepth hops from any walked seed.
func expandDependencies(root string, files []*pipeline.FileDescriptor, maxDepth int, fileCache *cache.FileCache, priorityRules []relevance.PriorityRule, diagnostics *pipeline.Diagnostics) []*pipeline.FileDescriptor {
	registry := semantic.NewRegistry()
	resolvers := resolve.NewRegistry()
	memo := semantic.NewMemoCache()

	byPath := make(map[string]*pipeline.FileDescriptor, len(files))
	for _, fd := range files {
		byPath[fd.AbsPath] = fd
	}

	var visit func(fd *pipeline.FileDescriptor, ctx semantic.SemanticContext)
	visit = func(fd *pipeline.FileDescriptor, ctx semantic.SemanticContext) {
		for _, imp := range fd.Imports {
			if imp.IsExternal || imp.ResolvedPath == "" {
				continue
			}
			if _, known := byPath[imp.ResolvedPath]; known {
				continue
			}
			childCtx, ok := ctx.Child(imp.ResolvedPath)
			if !ok {
				continue
			}
			relPath, err := filepath.Rel(root, imp.ResolvedPath)
			if err != nil || strings.HasPrefix(relPath, "..") {
				continue // never expand outside the project root
			}
			relPath = filepath.ToSlash(relPath)

			entry, err := fileCache.Get(imp.ResolvedPath)
			if err != nil {
				diagnostics.Add(relPath, "expand", pipeline.FileProcessingError(relPath, err.Error()))
				continue
			}

			fileType := discovery.DetectFileType(relPath)
			child := &pipeline.FileDescriptor{
				Path:        relPath,
				AbsPath:     imp.ResolvedPath,
				Size:        int64(len(entry.Content)),
				FileType:    fileType,
				Tier:        pipeline.DefaultTier,
				Priority:    relevance.ComputeBasePriority(relPath, fileType, priorityRules),
				Content:     entry.Content,
				ContentHash: entry.Hash,
			}

			ext := strings.TrimPrefix(filepath.Ext(relPath), ".")
			analysis, err := memo.AnalyzeMemoized(registry.For(ext), child.Path, child.Content, childCtx)
			if err != nil {
				diagnostics.Add(relPath, "semantic", pipeline.SemanticError(relPath, err.Error()))
			} else {
				child.Imports = analysis.Imports
				child.FunctionCalls = analysis.FunctionCalls
				child.TypeReferences = analysis.TypeReferences
				child.ExportedFunctions = analysis.ExportedFunctions
			}

			resolver := resolvers.For(child.FileType)
			for i, childImp := range child.Imports {
				res, rerr := resolver.Resolve(childImp.Module, child.AbsPath, root)
				if rerr != nil {
					continue
				}
				child.Imports[i].IsExternal = res.IsExternal
				if res.Resolved {
					child.Imports[i].ResolvedPath = res.AbsPath
				}
			}

			byPath[child.AbsPath] = child
			files = append(files, child)
			visit(child, childCtx)
		}
	}

	seedCtx := semantic.NewSemanticContext(maxDepth)
	for _, fd := range files {
		visit(fd, seedCtx)
	}
	return files
}

// resolveTypeDefinitions back-fills TypeReference.ResolvedDefPath for
// languages whose analyzer can cheaply locate a definition.
func resolveTypeDefinitions(root string, files []*pipeline.FileDescriptor) {
	registry := semantic.NewRegistry()
	for _, fd := range files {
		if len(fd.TypeReferences) == 0 {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(fd.Path), ".")
		analyzer := registry.For(ext)
		for i, ref := range fd.TypeReferences {
			if ref.ResolvedDefPath != "" {
				continue
			}
			if defPath, ok := analyzer.ResolveTypeDefinition(ref.Name, fd.AbsPath, root); ok {
				fd.TypeReferences[i].ResolvedDefPath = defPath
			}
		}
	}
}

// runImportResolution resolves every analyzed import to an absolute path (or
// an external classification), overwriting the analyzer's own coarse
// IsExternal guess with the resolver's authoritative answer.
func runImportResolution(root string, files []*pipeline.FileDescriptor, diagnostics *pipeline.Diagnostics) {
	registry := resolve.NewRegistry()

	for _, fd := range files {
		if len(fd.Imports) == 0 {
			continue
		}
		resolver := registry.For(fd.FileType)
		for i, imp := range fd.Imports {
			res, err := resolver.Resolve(imp.Module, fd.AbsPath, root)
			if err != nil {
				diagnostics.Add(fd.Path, "resolve", fmt.Errorf("resolving %q: %w", imp.Module, err))
				continue
			}
			imp.IsExternal = res.IsExternal
			if res.Resolved {
				imp.ResolvedPath = res.AbsPath
			} else {
				imp.ResolvedPath = ""
			}
			fd.Imports[i] = imp
		}
	}
}
