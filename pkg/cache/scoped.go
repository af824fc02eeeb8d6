package cache

// ScopedKeyer wraps a Keyer with a prefix so several datasets or server
// instances can share one backend without colliding.
//
//	overview := NewScopedKeyer(NewDefaultKeyer(), "overview:")
//	articles := NewScopedKeyer(NewDefaultKeyer(), "articles:")
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(inputHash, opts)
}

// ClustersKey generates a prefixed key for community caching.
func (k *ScopedKeyer) ClustersKey(inputHash string, opts ClustersKeyOpts) string {
	return k.prefix + k.inner.ClustersKey(inputHash, opts)
}
