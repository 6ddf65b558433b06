// Package pkg provides the core libraries for tweenrig skeletal animation.
//
// # Overview
//
// Tweenrig poses and deforms 2D vector artwork with bone skeletons: bones are
// rigged over drawn strokes, keyframed per channel, and the interpolated pose
// at any frame displaces the bound stroke points. The pkg directory is
// organized into a handful of focused areas:
//
//  1. [rig] - Domain logic (skeletons, pose propagation, keyframes, binding, deformation)
//  2. [rigdoc] - Document formats (TOML rig files, JSON scene files)
//  3. [render] - Output (SVG frames, hierarchy diagrams, PDF/PNG conversion)
//  4. [pipeline] - Orchestration (load → pose → deform → render)
//  5. [cache] - Artifact caching (file, Redis, MongoDB backends)
//
// # Architecture
//
// The typical data flow through tweenrig:
//
//	Rig Document (TOML) + Scene Document (JSON)
//	         ↓
//	    [rigdoc] package (parse + validate)
//	         ↓
//	    [rig] package (pose evaluation + deformation)
//	         ↓
//	    [render] package (stroke paths + overlays)
//	         ↓
//	    SVG/PNG/PDF output
//
// # Quick Start
//
// Load a rig, pose it at a frame, and deform the scene's strokes:
//
//	import (
//	    "github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rigdoc"
//	    "github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/render"
//	)
//
//	// 1. Load documents
//	store, _ := rigdoc.ImportRig("walk.rig.toml")
//	scene, _ := rigdoc.ImportScene("walk.scene.json")
//
//	// 2. Evaluate the pose at frame 12
//	store.ApplyPoseAtFrame(12)
//
//	// 3. Deform bound strokes
//	strokes := store.DeformBoundLayerStrokes(scene.Strokes, scene.Layers)
//	strokes = store.DeformStrokes(strokes)
//
//	// 4. Render to SVG
//	svg := render.RenderSVG(strokes, render.WithSkeletons(store.Skeletons()))
//
// # Main Packages
//
// ## Domain Logic
//
// [rig] - The skeleton store. Bone hierarchies with Edit and Animate
// propagation modes, per-channel keyframes with linear interpolation,
// point and layer bindings, flexi-bind auto-weighting, and the pure
// deformation math that maps rest-to-live bone deltas onto stroke points.
//
// [geom] - Small 2D vector type shared across the module.
//
// [stroke] - Bezier stroke and layer-tree types mirroring the host
// editor's document model.
//
// ## Documents
//
// [rigdoc] - Reading, validating, and writing rig documents (TOML) and
// scene documents (JSON). Exports are deterministic so formatted files
// diff cleanly.
//
// ## Rendering
//
// [render] - SVG frame rendering with skeleton and anchor overlays,
// Graphviz bone-hierarchy diagrams, and PDF/PNG conversion via
// rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - The complete frame pipeline (load → pose → deform → render)
// used by the CLI and the preview server. Ensures consistent behavior
// across entry points.
//
// [cache] - Content-addressed artifact caching keyed on document hashes.
// FileCache for the CLI, RedisCache and MongoCache for shared deployments,
// NullCache for --no-cache runs.
//
// [errors] - Coded errors shared across packages so callers can branch on
// failure class without string matching.
//
// [observability] - Pluggable hooks for pipeline stage timing and cache
// hit rates.
//
// [buildinfo] - Build-time version information set via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/rig/...      # Specific package
//	go test -run Example       # Examples only
//
// [rig]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig
// [rigdoc]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rigdoc
// [render]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/cache
// [geom]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom
// [stroke]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke
// [errors]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/errors
// [observability]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/buildinfo
package pkg
