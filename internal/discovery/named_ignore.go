package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// NamedIgnoreMatcher evaluates gitignore-syntax ignore files of a single
// configurable filename, layered hierarchically: every directory between the
// root and a candidate path may carry its own ignore file, and a path is
// ignored when any of those files matches it. A negation pattern takes effect
// only within its own file: a nearer file cannot re-include a path that a
// farther file ignores. The same type backs both
// the standard .gitignore chain and the tool-specific ignore file (default
// name ".repographignore", overridable per run), which differ only in the
// filename they look for.
type NamedIgnoreMatcher struct {
	root     string
	fileName string

	// matchers holds one compiled ignore file per directory that carries
	// one, keyed by the directory's root-relative path ("." for the root).
	matchers map[string]*gitignore.GitIgnore

	// dirs is the sorted key list of matchers, so evaluation always runs
	// root-outward in a deterministic order.
	dirs []string

	logger *slog.Logger
}

// NewNamedIgnoreMatcher scans rootDir for ignore files named fileName and
// compiles each one. A tree with no such files yields a matcher that ignores
// nothing. Individual unreadable ignore files are skipped with a debug log;
// only a bad root is an error.
func NewNamedIgnoreMatcher(rootDir, fileName string) (*NamedIgnoreMatcher, error) {
	if fileName == "" {
		return nil, fmt.Errorf("ignore file name must not be empty")
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root path %s: %w", rootDir, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root path %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", absRoot)
	}

	m := &NamedIgnoreMatcher{
		root:     absRoot,
		fileName: fileName,
		matchers: make(map[string]*gitignore.GitIgnore),
		logger:   slog.Default().With("component", "ignore", "file", fileName),
	}
	if err := m.scan(); err != nil {
		return nil, fmt.Errorf("scanning for %s files in %s: %w", fileName, absRoot, err)
	}

	m.logger.Debug("ignore matcher initialized", "root", absRoot, "files", len(m.matchers))
	return m, nil
}

// NewGitignoreMatcher is the .gitignore-flavored constructor.
func NewGitignoreMatcher(rootDir string) (*NamedIgnoreMatcher, error) {
	return NewNamedIgnoreMatcher(rootDir, ".gitignore")
}

func (m *NamedIgnoreMatcher) scan() error {
	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			m.logger.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != m.fileName {
			return nil
		}

		relDir, err := filepath.Rel(m.root, filepath.Dir(path))
		if err != nil {
			return nil
		}
		compiled, err := gitignore.CompileIgnoreFile(path)
		if err != nil {
			m.logger.Debug("skipping unreadable ignore file", "path", path, "error", err)
			return nil
		}
		m.matchers[filepath.ToSlash(relDir)] = compiled
		return nil
	})
	if err != nil {
		return err
	}

	m.dirs = make([]string, 0, len(m.matchers))
	for dir := range m.matchers {
		m.dirs = append(m.dirs, dir)
	}
	sort.Strings(m.dirs)
	return nil
}

// IsIgnored reports whether path (root-relative, forward slashes) is matched
// by any ignore file at or above it. Each directory's file only governs the
// subtree it sits in; its patterns are evaluated against the path relative to
// that directory, matching git's layering rules.
func (m *NamedIgnoreMatcher) IsIgnored(path string, isDir bool) bool {
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if normalized == "" || normalized == "." {
		return false
	}

	matchPath := normalized
	if isDir && !strings.HasSuffix(matchPath, "/") {
		matchPath += "/"
	}

	for _, dir := range m.dirs {
		var rel string
		switch {
		case dir == ".":
			rel = matchPath
		case strings.HasPrefix(normalized, dir+"/"):
			rel = strings.TrimPrefix(matchPath, dir+"/")
		default:
			continue
		}
		if m.matchers[dir].MatchesPath(rel) {
			m.logger.Debug("path ignored", "path", normalized, "dir", dir)
			return true
		}
	}
	return false
}

// FileCount returns how many ignore files were found and compiled.
func (m *NamedIgnoreMatcher) FileCount() int {
	return len(m.matchers)
}

var _ Ignorer = (*NamedIgnoreMatcher)(nil)
