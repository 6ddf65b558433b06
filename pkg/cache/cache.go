// Package cache provides artifact caching for the rig rendering pipeline.
//
// Rendering a frame (pose evaluation, deformation, SVG/PNG encoding) is
// deterministic for a given rig document, stroke list, and frame index, so
// the pipeline caches rendered artifacts keyed by content hashes. Several
// backends are available:
//   - NullCache: caching disabled (the default)
//   - FileCache: directory-backed cache for CLI usage
//   - RedisCache: shared cache for multi-instance preview deployments
//   - MongoCache: document-store cache where Redis is not available
//
// Keys are generated by a [Keyer] so CLI and HTTP preview produce identical
// keys for identical work.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default artifact lifetime.
const DefaultTTL = 24 * time.Hour

// Cache is the interface all cache backends implement.
// Get returns (data, hit, error): a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// FrameKeyOpts captures everything besides document content that changes a
// rendered frame artifact.
type FrameKeyOpts struct {
	Frame  int
	Format string // "svg", "png", ...
	Width  float64
	Height float64
}

// GraphKeyOpts captures the options that change a rendered hierarchy graph.
type GraphKeyOpts struct {
	Format   string
	Detailed bool
}

// Keyer generates cache keys for pipeline artifacts.
type Keyer interface {
	// FrameKey generates a key for a rendered frame artifact. docHash
	// covers the rig document and strokes that produced the frame.
	FrameKey(docHash string, opts FrameKeyOpts) string

	// GraphKey generates a key for a rendered bone-hierarchy graph.
	GraphKey(docHash string, opts GraphKeyOpts) string
}

// DefaultKeyer is the standard key generator: prefix plus SHA-256 over the
// key components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FrameKey generates a key for a rendered frame artifact.
func (k *DefaultKeyer) FrameKey(docHash string, opts FrameKeyOpts) string {
	return hashKey("frame", docHash, opts.Frame, opts.Format, opts.Width, opts.Height)
}

// GraphKey generates a key for a rendered hierarchy graph.
func (k *DefaultKeyer) GraphKey(docHash string, opts GraphKeyOpts) string {
	return hashKey("graph", docHash, opts.Format, opts.Detailed)
}
