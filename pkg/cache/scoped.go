package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by project
// root so two checkouts sharing the cache directory never collide.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ModelKey generates a prefixed key for model caching.
func (k *ScopedKeyer) ModelKey(path, contentHash string, opts ModelKeyOpts) string {
	return k.prefix + k.inner.ModelKey(path, contentHash, opts)
}
