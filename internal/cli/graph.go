package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/render"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rigdoc"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file path
	skeleton string // skeleton id or name to render (default: first)
	format   string // output format: dot, svg, png, pdf
	detailed bool   // include pose values in node labels
}

// graphCommand creates the graph command for rendering bone hierarchies.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "graph <rig.toml>",
		Short: "Render a skeleton's bone hierarchy diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.skeleton, "skeleton", "s", "", "skeleton id or name (default: first)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, png, pdf")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include pose values in node labels")

	return cmd
}

func (c *CLI) runGraph(rigPath string, opts *graphOpts) error {
	store, err := rigdoc.ImportRig(rigPath)
	if err != nil {
		return err
	}

	s, err := selectSkeleton(store, opts.skeleton)
	if err != nil {
		return err
	}
	c.Logger.Info("rendering hierarchy", "skeleton", s.Name, "bones", len(s.Bones))

	dot := render.ToDOT(s, render.GraphOptions{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = render.RenderGraphSVG(dot)
	case "png":
		var svg []byte
		if svg, err = render.RenderGraphSVG(dot); err == nil {
			data, err = render.ToPNG(svg, 2.0)
		}
	case "pdf":
		var svg []byte
		if svg, err = render.RenderGraphSVG(dot); err == nil {
			data, err = render.ToPDF(svg)
		}
	default:
		return fmt.Errorf("invalid format: %s (must be 'svg', 'dot', 'png', or 'pdf')", opts.format)
	}
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		base := strings.TrimSuffix(rigPath, filepath.Ext(rigPath))
		base = strings.TrimSuffix(base, ".rig")
		path = base + "_graph." + opts.format
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Generated %s", path)
	return nil
}

// selectSkeleton resolves a skeleton by id or name. An empty selector picks
// the first skeleton in document order.
func selectSkeleton(store *rig.Store, selector string) (*rig.Skeleton, error) {
	skeletons := store.Skeletons()
	if len(skeletons) == 0 {
		return nil, fmt.Errorf("rig document has no skeletons")
	}
	if selector == "" {
		return skeletons[0], nil
	}
	for _, s := range skeletons {
		if s.ID == selector || s.Name == selector {
			return s, nil
		}
	}
	return nil, fmt.Errorf("skeleton %q not found", selector)
}
