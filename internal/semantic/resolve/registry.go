package resolve

import "github.com/repograph/repograph/internal/pipeline"

// Registry dispatches a FileType to the Resolver that handles its imports.
type Registry struct {
	byType map[pipeline.FileType]Resolver
	generic Resolver
}

// genericExtensions is the probe list used for languages without a dedicated
// resolver; Fallback already tries a bare stat as its third step.
var genericExtensions = []string{}

type genericResolver struct{}

func (genericResolver) Resolve(module, fromFile, projectRoot string) (Resolution, error) {
	return Fallback(module, fromFile, projectRoot, genericExtensions), nil
}

// NewRegistry builds a Registry pre-populated with every built-in resolver.
func NewRegistry() *Registry {
	return &Registry{
		byType: map[pipeline.FileType]Resolver{
			pipeline.FileTypeGo:         NewGoResolver(),
			pipeline.FileTypeJavaScript: NewJSResolver(),
			pipeline.FileTypeTypeScript: NewJSResolver(),
			pipeline.FileTypePython:     NewPythonResolver(),
		},
		generic: genericResolver{},
	}
}

// For returns the resolver registered for ft, or the generic Fallback-only
// resolver when none is registered.
func (r *Registry) For(ft pipeline.FileType) Resolver {
	if resolver, ok := r.byType[ft]; ok {
		return resolver
	}
	return r.generic
}
