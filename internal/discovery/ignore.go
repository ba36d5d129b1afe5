package discovery

// Ignorer is implemented by every ignore source consulted during traversal:
// the built-in defaults, the .gitignore chain, and the custom named ignore
// file. CLI exclude patterns are applied separately by PatternFilter. Paths
// are root-relative with forward slashes;
// isDir distinguishes directories so directory-only patterns ("build/") can
// match.
type Ignorer interface {
	IsIgnored(path string, isDir bool) bool
}

// IgnoreChain evaluates a fixed sequence of Ignorers (defaults first, then
// .gitignore, then the custom ignore file). A path is ignored when any source
// ignores it; no source can re-include a path another source ignores.
type IgnoreChain []Ignorer

// NewIgnoreChain builds a chain from the non-nil entries of sources, in
// order.
func NewIgnoreChain(sources ...Ignorer) IgnoreChain {
	chain := make(IgnoreChain, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			chain = append(chain, s)
		}
	}
	return chain
}

// IsIgnored reports whether any source in the chain ignores path.
func (c IgnoreChain) IsIgnored(path string, isDir bool) bool {
	for _, s := range c {
		if s.IsIgnored(path, isDir) {
			return true
		}
	}
	return false
}
