package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/cache"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/observability"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/render"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rigdoc"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → pose → deform → render pipeline with
// caching of rendered artifacts.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.RigPath)
	store, scene, docHash, err := r.Load(opts)
	loadDur := time.Since(loadStart)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.RigPath, 0, 0, loadDur, err)
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Store = store
	result.Scene = scene
	result.DocHash = docHash
	result.Stats.LoadTime = loadDur
	result.Stats.SkeletonCount = len(store.Skeletons())
	for _, s := range store.Skeletons() {
		result.Stats.BoneCount += len(s.Bones)
	}
	result.Stats.StrokeCount = len(scene.Strokes)
	observability.Pipeline().OnLoadComplete(ctx, opts.RigPath, result.Stats.SkeletonCount, result.Stats.BoneCount, loadDur, nil)

	r.Logger.Info("loaded documents",
		"skeletons", result.Stats.SkeletonCount,
		"bones", result.Stats.BoneCount,
		"strokes", result.Stats.StrokeCount,
		"duration", result.Stats.LoadTime)

	// Try the cache before posing: identical documents and options produce
	// identical artifacts.
	if !opts.Refresh {
		if hit := r.lookupArtifacts(ctx, docHash, opts, result); hit {
			result.CacheInfo.RenderHit = true
			r.Logger.Info("rendered outputs from cache", "formats", opts.Formats)
			// Pose is still evaluated so result.Store reflects the frame.
		}
	}

	// Stage 2: Pose
	poseStart := time.Now()
	observability.Pipeline().OnPoseStart(ctx, opts.Frame)
	store.ApplyPoseAtFrame(opts.Frame)
	result.Stats.PoseTime = time.Since(poseStart)
	observability.Pipeline().OnPoseComplete(ctx, opts.Frame, result.Stats.PoseTime)

	r.Logger.Info("evaluated pose",
		"frame", opts.Frame,
		"duration", result.Stats.PoseTime)

	if result.CacheInfo.RenderHit {
		result.Deformed = r.Deform(store, scene)
		return result, nil
	}

	// Stage 3: Deform
	deformStart := time.Now()
	observability.Pipeline().OnDeformStart(ctx, opts.Frame, result.Stats.StrokeCount)
	result.Deformed = r.Deform(store, scene)
	result.Stats.DeformTime = time.Since(deformStart)
	observability.Pipeline().OnDeformComplete(ctx, opts.Frame, result.Stats.StrokeCount, result.Stats.DeformTime, nil)

	r.Logger.Info("deformed strokes",
		"strokes", result.Stats.StrokeCount,
		"duration", result.Stats.DeformTime)

	// Stage 4: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	err = r.renderArtifacts(ctx, docHash, opts, result)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the rig and scene documents and computes the content hash that
// keys cached artifacts.
func (r *Runner) Load(opts Options) (*rig.Store, *rigdoc.Scene, string, error) {
	rigData, err := os.ReadFile(opts.RigPath)
	if err != nil {
		return nil, nil, "", err
	}
	sceneData, err := os.ReadFile(opts.ScenePath)
	if err != nil {
		return nil, nil, "", err
	}

	store, err := rigdoc.ImportRig(opts.RigPath)
	if err != nil {
		return nil, nil, "", err
	}
	scene, err := rigdoc.ImportScene(opts.ScenePath)
	if err != nil {
		return nil, nil, "", err
	}

	docHash := cache.Hash(append(rigData, sceneData...))
	return store, scene, docHash, nil
}

// Deform applies layer bindings then point bindings to the scene's strokes.
// The two binding kinds are mutually exclusive per layer, so the order only
// determines which copy is made first.
func (r *Runner) Deform(store *rig.Store, scene *rigdoc.Scene) []stroke.Stroke {
	out := store.DeformBoundLayerStrokes(scene.Strokes, scene.Layers)
	return store.DeformStrokes(out)
}

func (r *Runner) frameKey(docHash, format string, opts Options) string {
	return r.Keyer.FrameKey(docHash, cache.FrameKeyOpts{
		Frame:  opts.Frame,
		Format: format,
		Width:  opts.Width,
		Height: opts.Height,
	})
}

// lookupArtifacts fills result.Artifacts from cache. Reports true only when
// every requested format was present.
func (r *Runner) lookupArtifacts(ctx context.Context, docHash string, opts Options, result *Result) bool {
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.frameKey(docHash, format, opts))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "frame")
			return false
		}
		observability.Cache().OnCacheHit(ctx, "frame")
		result.Artifacts[format] = data
	}
	return true
}

func (r *Runner) renderArtifacts(ctx context.Context, docHash string, opts Options, result *Result) error {
	var renderOpts []render.Option
	if opts.FixedCanvas {
		renderOpts = append(renderOpts, render.WithSize(opts.Width, opts.Height))
	}
	if opts.Background != "" {
		renderOpts = append(renderOpts, render.WithBackground(opts.Background))
	}
	if opts.StrokeColor != "" || opts.StrokeWidth != 0 {
		color, width := opts.StrokeColor, opts.StrokeWidth
		if color == "" {
			color = "#000000"
		}
		if width == 0 {
			width = 2
		}
		renderOpts = append(renderOpts, render.WithStrokeStyle(color, width))
	}
	if opts.ShowBones {
		renderOpts = append(renderOpts, render.WithSkeletons(result.Store.Skeletons()))
	}
	if opts.ShowAnchors {
		renderOpts = append(renderOpts, render.WithAnchors())
	}

	svg := render.RenderSVG(result.Deformed, renderOpts...)

	for _, format := range opts.Formats {
		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data = svg
		case FormatPNG:
			data, err = render.ToPNG(svg, opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(svg)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		result.Artifacts[format] = data

		key := r.frameKey(docHash, format, opts)
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "frame", len(data))
	}
	return nil
}

// RenderGraph renders a skeleton's bone hierarchy diagram with caching.
func (r *Runner) RenderGraph(ctx context.Context, docHash string, s *rig.Skeleton, detailed, refresh bool) ([]byte, error) {
	key := r.Keyer.GraphKey(docHash, cache.GraphKeyOpts{Format: FormatSVG, Detailed: detailed})
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "graph")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	dot := render.ToDOT(s, render.GraphOptions{Detailed: detailed})
	data, err := render.RenderGraphSVG(dot)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}
	return data, nil
}
