// Package pipeline provides the core frame rendering pipeline.
//
// This package implements the complete load → pose → deform → render
// pipeline that both the CLI and the HTTP preview server use. Centralizing
// it keeps frame output identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read the rig document (TOML) and scene document (JSON)
//  2. Pose: Evaluate keyframes and propagate hierarchies at the target frame
//  3. Deform: Apply point and layer bindings to the stroke list
//  4. Render: Generate output in various formats (SVG, PNG, PDF)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    RigPath:   "figure.rig.toml",
//	    ScenePath: "figure.scene.json",
//	    Frame:     12,
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rigdoc"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels. Zero width in
	// options means "fit to content"; this is only applied when a fixed
	// canvas is requested without dimensions.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultScale is the default raster scale factor for PNG output.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the frame pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options
	RigPath   string `json:"rig_path"`
	ScenePath string `json:"scene_path"`

	// Pose options
	Frame int `json:"frame,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	FixedCanvas bool     `json:"fixed_canvas,omitempty"` // fixed viewBox instead of content fit
	Background  string   `json:"background,omitempty"`
	StrokeColor string   `json:"stroke_color,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"`
	ShowBones   bool     `json:"show_bones,omitempty"`
	ShowAnchors bool     `json:"show_anchors,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"` // bypass the cache on read

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Store is the loaded rig, posed at the requested frame.
	Store *rig.Store

	// Scene is the loaded scene content (layers and undeformed strokes).
	Scene *rigdoc.Scene

	// Deformed is the stroke list after bindings were applied.
	Deformed []stroke.Stroke

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// DocHash is the content hash covering both input documents.
	DocHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SkeletonCount int
	BoneCount     int
	StrokeCount   int
	LoadTime      time.Duration
	PoseTime      time.Duration
	DeformTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for rendered artifacts.
type CacheInfo struct {
	RenderHit bool // Whether all requested formats came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.RigPath == "" {
		return fmt.Errorf("rig_path is required")
	}
	if o.ScenePath == "" {
		return fmt.Errorf("scene_path is required")
	}
	if o.Frame < 0 {
		return fmt.Errorf("frame must be non-negative, got %d", o.Frame)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.FixedCanvas {
		if o.Width == 0 {
			o.Width = DefaultWidth
		}
		if o.Height == 0 {
			o.Height = DefaultHeight
		}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
