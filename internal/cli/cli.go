// Package cli implements the tweenrig command-line interface.
//
// This package provides commands for rendering posed frames from rig
// documents, inspecting skeletons interactively, serving a live frame
// preview over HTTP, and managing the artifact cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - pose: Render a posed, deformed frame to SVG, PNG, or PDF
//   - graph: Render a skeleton's bone hierarchy diagram
//   - inspect: Interactive frame scrubber for a rig document
//   - serve: HTTP preview server for posed frames
//   - fmt: Normalize a rig document in place
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/buildinfo"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/cache"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "tweenrig"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tweenrig poses and deforms vector artwork with 2D skeletons",
		Long:         `Tweenrig is a CLI tool for skeletal animation of vector artwork: it loads rig and scene documents, evaluates keyframed poses, deforms bound strokes, and renders the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.poseCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

// newCache selects a cache backend. Shared deployments point TWEENRIG_REDIS_ADDR
// or TWEENRIG_MONGO_URI at a server; otherwise artifacts land in the local
// file cache.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if addr := os.Getenv("TWEENRIG_REDIS_ADDR"); addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     addr,
			Password: os.Getenv("TWEENRIG_REDIS_PASSWORD"),
		})
	}
	if uri := os.Getenv("TWEENRIG_MONGO_URI"); uri != "" {
		return cache.NewMongoCache(ctx, cache.MongoConfig{URI: uri})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tweenrig/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// outputPath derives the output file path for a rendered artifact. An empty
// output falls back to the input name with the frame and format appended.
func outputPath(output, input, format string, frame int) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, ".rig")
	if frame > 0 {
		return fmt.Sprintf("%s_f%04d.%s", base, frame, format)
	}
	return base + "." + format
}
