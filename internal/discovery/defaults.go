package discovery

import (
	"log/slog"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// defaultIgnoreGroups enumerates the built-in ignore rules by concern. The
// walker always applies these; include patterns are checked only after the
// ignore chain and cannot re-admit a path these rules ignore.
var defaultIgnoreGroups = [][]string{
	// Build outputs and dependency trees.
	{
		".git/",
		"node_modules/",
		"dist/",
		"build/",
		"coverage/",
		"__pycache__/",
		".next/",
		"target/",
		"vendor/",
		".repograph/",
	},
	// Secrets and credential material. These double as the sensitive set
	// below.
	{
		".env",
		".env.*",
		"*.pem",
		"*.key",
		"*.p12",
		"*.pfx",
		"*secret*",
		"*credential*",
		"*password*",
	},
	// Lock files: huge, machine-generated, near-zero context value.
	{
		"package-lock.json",
		"yarn.lock",
		"pnpm-lock.yaml",
		"Gemfile.lock",
		"Cargo.lock",
		"go.sum",
		"poetry.lock",
	},
	// Compiled artifacts.
	{
		"*.pyc", "*.pyo", "*.class",
		"*.o", "*.obj", "*.exe", "*.dll", "*.so", "*.dylib",
	},
	// OS and editor droppings.
	{
		".DS_Store", "Thumbs.db",
		".idea/", ".vscode/",
		"*.swp", "*.swo",
	},
}

// SensitivePatterns is the subset of the defaults covering secrets and keys.
// IsSensitivePath tests a path against it; the walker itself emits no
// separate warning for these patterns.
var SensitivePatterns = defaultIgnoreGroups[1]

// DefaultIgnorePatterns flattens defaultIgnoreGroups in declaration order.
var DefaultIgnorePatterns = func() []string {
	var all []string
	for _, g := range defaultIgnoreGroups {
		all = append(all, g...)
	}
	return all
}()

// DefaultIgnoreMatcher applies DefaultIgnorePatterns through the same
// gitignore engine as the per-directory ignore files, so pattern semantics
// never differ between layers.
type DefaultIgnoreMatcher struct {
	matcher *gitignore.GitIgnore
	logger  *slog.Logger
}

// NewDefaultIgnoreMatcher compiles the built-in pattern set. The patterns are
// constants, so compilation cannot fail.
func NewDefaultIgnoreMatcher() *DefaultIgnoreMatcher {
	return &DefaultIgnoreMatcher{
		matcher: gitignore.CompileIgnoreLines(DefaultIgnorePatterns...),
		logger:  slog.Default().With("component", "default-ignore"),
	}
}

// IsIgnored reports whether path matches a built-in ignore pattern.
func (d *DefaultIgnoreMatcher) IsIgnored(path string, isDir bool) bool {
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if normalized == "" || normalized == "." {
		return false
	}
	if isDir && !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return d.matcher.MatchesPath(normalized)
}

var sensitiveMatcher = gitignore.CompileIgnoreLines(SensitivePatterns...)

// IsSensitivePath reports whether path matches the secrets/credentials subset
// of the defaults.
func IsSensitivePath(path string) bool {
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if normalized == "" {
		return false
	}
	return sensitiveMatcher.MatchesPath(normalized)
}

var _ Ignorer = (*DefaultIgnoreMatcher)(nil)
