package semantic

import (
	"regexp"
	"strings"

	"github.com/repograph/repograph/internal/pipeline"
)

// regexRules is the line-oriented pattern set for one language family,
// grounded on lci's python_analyzer.go/javascript_analyzer.go approach of
// scanning source line by line with precompiled regexes rather than a full
// parse. Each pattern's captured group(s) are interpreted by the analyzer
// that owns it.
type regexRules struct {
	imports   []*regexp.Regexp // capture group 1 is the module string
	calls     *regexp.Regexp   // capture group 1 is the called name, group 2 (optional) the receiver
	functions *regexp.Regexp   // capture group 1 is the exported/public function name
	types     *regexp.Regexp   // capture group 1 is the type/class name
}

// regexAnalyzer implements LanguageAnalyzer by applying a regexRules set
// line by line across a file's content.
type regexAnalyzer struct {
	extSet
	name  string
	rules regexRules
}

func (a *regexAnalyzer) Name() string { return a.name }

// ResolveTypeDefinition is not answerable from line regexes alone; the
// regex-backed languages report every type as unresolved.
func (a *regexAnalyzer) ResolveTypeDefinition(typeName, fromFile, projectRoot string) (string, bool) {
	return "", false
}

func (a *regexAnalyzer) AnalyzeFile(path, content string, ctx SemanticContext) (AnalysisResult, error) {
	var result AnalysisResult
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		lineNum := i + 1

		for _, re := range a.rules.imports {
			if m := re.FindStringSubmatch(line); m != nil {
				result.Imports = append(result.Imports, pipeline.Import{
					Module: strings.Trim(m[1], `"' `),
					Line:   lineNum,
				})
			}
		}

		if a.rules.calls != nil {
			for _, m := range a.rules.calls.FindAllStringSubmatch(line, -1) {
				call := pipeline.FunctionCall{Name: m[1], Line: lineNum}
				if len(m) > 2 {
					call.OwningModule = m[2]
				}
				result.FunctionCalls = append(result.FunctionCalls, call)
			}
		}

		if a.rules.functions != nil {
			if m := a.rules.functions.FindStringSubmatch(line); m != nil {
				result.ExportedFunctions = append(result.ExportedFunctions, pipeline.FunctionDefinition{
					Name: m[1],
					Line: lineNum,
				})
			}
		}

		if a.rules.types != nil {
			if m := a.rules.types.FindStringSubmatch(line); m != nil {
				result.TypeReferences = append(result.TypeReferences, pipeline.TypeReference{
					Name: m[1],
					Line: lineNum,
				})
			}
		}
	}

	return result, nil
}

// NewPythonAnalyzer extracts import/from-import statements, def/class
// definitions, and call expressions from Python source.
func NewPythonAnalyzer() LanguageAnalyzer {
	return &regexAnalyzer{
		extSet: newExtSet("py", "pyi"),
		name:   "python",
		rules: regexRules{
			imports: []*regexp.Regexp{
				regexp.MustCompile(`^\s*import\s+([\w\.]+)`),
				regexp.MustCompile(`^\s*from\s+([\w\.]+)\s+import\b`),
			},
			calls:     regexp.MustCompile(`\b(\w+)\(`),
			functions: regexp.MustCompile(`^\s*def\s+(\w+)\s*\(`),
			types:     regexp.MustCompile(`^\s*class\s+(\w+)`),
		},
	}
}

// NewJSAnalyzer handles JavaScript, JSX, TypeScript, and TSX via a shared
// regex set (ESM import/require, function/class declarations).
func NewJSAnalyzer() LanguageAnalyzer {
	return &regexAnalyzer{
		extSet: newExtSet("js", "jsx", "ts", "tsx", "mjs", "cjs"),
		name:   "javascript",
		rules: regexRules{
			imports: []*regexp.Regexp{
				regexp.MustCompile(`^\s*import[^'"]*from\s+['"]([^'"]+)['"]`),
				regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`),
				regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`),
			},
			calls:     regexp.MustCompile(`\b(\w+)\(`),
			functions: regexp.MustCompile(`^\s*export\s+(?:default\s+)?function\s+(\w+)`),
			types:     regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:class|interface|type)\s+(\w+)`),
		},
	}
}

// NewJavaAnalyzer extracts import statements, public method/class
// definitions, and call expressions from Java source.
func NewJavaAnalyzer() LanguageAnalyzer {
	return &regexAnalyzer{
		extSet: newExtSet("java"),
		name:   "java",
		rules: regexRules{
			imports: []*regexp.Regexp{
				regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w\.]+)\s*;`),
			},
			calls:     regexp.MustCompile(`\b(\w+)\(`),
			functions: regexp.MustCompile(`^\s*public\s+(?:static\s+)?[\w<>\[\]]+\s+(\w+)\s*\(`),
			types:     regexp.MustCompile(`^\s*public\s+(?:abstract\s+)?(?:class|interface|enum)\s+(\w+)`),
		},
	}
}

// NewCFamilyAnalyzer handles C, C++, and C# via #include/using directives.
func NewCFamilyAnalyzer() LanguageAnalyzer {
	return &regexAnalyzer{
		extSet: newExtSet("c", "h", "cpp", "cc", "cxx", "hpp", "hh", "cs"),
		name:   "c-family",
		rules: regexRules{
			imports: []*regexp.Regexp{
				regexp.MustCompile(`^\s*#include\s*[<"]([^>"]+)[>"]`),
				regexp.MustCompile(`^\s*using\s+([\w\.]+)\s*;`),
			},
			calls:     regexp.MustCompile(`\b(\w+)\(`),
			functions: regexp.MustCompile(`^\s*(?:public|extern)\s+[\w:<>\*&\s]+\s+(\w+)\s*\(`),
			types:     regexp.MustCompile(`^\s*(?:class|struct)\s+(\w+)`),
		},
	}
}

// NewRubyAnalyzer extracts require statements, def/class definitions, and
// call expressions from Ruby source.
func NewRubyAnalyzer() LanguageAnalyzer {
	return &regexAnalyzer{
		extSet: newExtSet("rb"),
		name:   "ruby",
		rules: regexRules{
			imports: []*regexp.Regexp{
				regexp.MustCompile(`^\s*require(?:_relative)?\s+['"]([^'"]+)['"]`),
			},
			calls:     regexp.MustCompile(`\b(\w+)\(`),
			functions: regexp.MustCompile(`^\s*def\s+(?:self\.)?(\w+)`),
			types:     regexp.MustCompile(`^\s*class\s+(\w+)`),
		},
	}
}

// NewRustAnalyzer extracts use declarations, pub fn/struct/enum/trait
// definitions, and call expressions from Rust source.
func NewRustAnalyzer() LanguageAnalyzer {
	return &regexAnalyzer{
		extSet: newExtSet("rs"),
		name:   "rust",
		rules: regexRules{
			imports: []*regexp.Regexp{
				regexp.MustCompile(`^\s*use\s+([\w:]+)`),
			},
			calls:     regexp.MustCompile(`\b(\w+)\(`),
			functions: regexp.MustCompile(`^\s*pub\s+fn\s+(\w+)`),
			types:     regexp.MustCompile(`^\s*pub\s+(?:struct|enum|trait)\s+(\w+)`),
		},
	}
}

// NewPHPAnalyzer extracts use/require/include statements, function/class
// definitions, and call expressions from PHP source.
func NewPHPAnalyzer() LanguageAnalyzer {
	return &regexAnalyzer{
		extSet: newExtSet("php"),
		name:   "php",
		rules: regexRules{
			imports: []*regexp.Regexp{
				regexp.MustCompile(`^\s*use\s+([\w\\]+)\s*;`),
				regexp.MustCompile(`(?:require|include)(?:_once)?\s*\(?\s*['"]([^'"]+)['"]`),
			},
			calls:     regexp.MustCompile(`\b(\w+)\(`),
			functions: regexp.MustCompile(`^\s*(?:public\s+)?function\s+(\w+)\s*\(`),
			types:     regexp.MustCompile(`^\s*class\s+(\w+)`),
		},
	}
}
