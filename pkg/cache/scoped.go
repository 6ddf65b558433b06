package cache

// ScopedKeyer wraps a Keyer with a prefix so separate documents or server
// tenants get isolated cache namespaces.
//
// Example usage:
//
//	// Per-document keys for the preview server
//	docKeyer := NewScopedKeyer(NewDefaultKeyer(), "doc:walk-cycle:")
//
//	// Global keys for one-off CLI renders
//	globalKeyer := NewDefaultKeyer()
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

// FrameKey generates a prefixed key for rendered frame artifacts.
func (k *ScopedKeyer) FrameKey(docHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(docHash, opts)
}

// GraphKey generates a prefixed key for rendered hierarchy graphs.
func (k *ScopedKeyer) GraphKey(docHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(docHash, opts)
}
