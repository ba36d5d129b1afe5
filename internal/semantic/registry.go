package semantic

import "strings"

// extSet is an embeddable helper giving analyzers a shared CanHandle
// implementation over a fixed extension list.
type extSet struct {
	exts map[string]struct{}
}

func newExtSet(exts ...string) extSet {
	m := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		m[strings.ToLower(e)] = struct{}{}
	}
	return extSet{exts: m}
}

func (s extSet) CanHandle(ext string) bool {
	_, ok := s.exts[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

func (s extSet) SupportedExtensions() []string {
	out := make([]string, 0, len(s.exts))
	for e := range s.exts {
		out = append(out, e)
	}
	return out
}

// Registry dispatches a file extension to the LanguageAnalyzer that handles
// it, falling back to a no-op analyzer for anything unhandled.
type Registry struct {
	analyzers []LanguageAnalyzer
	fallback  LanguageAnalyzer
}

// NewRegistry builds a Registry pre-populated with every built-in analyzer.
func NewRegistry() *Registry {
	return &Registry{
		analyzers: []LanguageAnalyzer{
			NewGoAnalyzer(),
			NewPythonAnalyzer(),
			NewJSAnalyzer(),
			NewJavaAnalyzer(),
			NewCFamilyAnalyzer(),
			NewRubyAnalyzer(),
			NewRustAnalyzer(),
			NewPHPAnalyzer(),
		},
		fallback: NewNoopAnalyzer(),
	}
}

// For returns the analyzer that handles ext, or the no-op fallback.
func (r *Registry) For(ext string) LanguageAnalyzer {
	for _, a := range r.analyzers {
		if a.CanHandle(ext) {
			return a
		}
	}
	return r.fallback
}
