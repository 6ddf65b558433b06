package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig"
)

// GraphOptions configures bone hierarchy rendering.
type GraphOptions struct {
	// Detailed includes pose values (head, angle, length) in node labels.
	// When false, only the bone name is shown.
	Detailed bool
}

// ToDOT converts a skeleton's bone tree to Graphviz DOT format. Each bone is
// a box filled with its display color; edges run parent to child. The
// resulting DOT string can be rendered with [RenderGraphSVG].
func ToDOT(s *rig.Skeleton, opts GraphOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, b := range s.Bones {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", b.ID, boneLabel(b, opts.Detailed), b.Color)
	}

	buf.WriteString("\n")
	for _, b := range s.Bones {
		if b.ParentID == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", b.ParentID, b.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func boneLabel(b *rig.Bone, detailed bool) string {
	if !detailed {
		return b.Name
	}
	parts := []string{
		fmt.Sprintf("head: (%.1f, %.1f)", b.Head.X, b.Head.Y),
		fmt.Sprintf("angle: %.3f", b.Angle),
		fmt.Sprintf("length: %.1f", b.Length),
	}
	return b.Name + "\n" + strings.Join(parts, "\n")
}

// RenderGraphSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or conversion with [ToPDF] or [ToPNG].
func RenderGraphSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
