// Package render turns rig output into visual artifacts.
//
// # Overview
//
// Two renderers live here:
//
//   - Stroke rendering: [RenderSVG] draws a deformed stroke list as an SVG
//     document, with optional skeleton overlay for debugging poses.
//   - Hierarchy rendering: [ToDOT] and [RenderGraphSVG] draw a skeleton's
//     bone tree as a Graphviz diagram.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). Both renderers share them.
//
//	svg := render.RenderSVG(strokes, render.WithSkeletons(store.Skeletons()))
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// # Hierarchy Diagrams
//
// Bone trees render as top-down directed graphs, one box per bone, filled
// with the bone's display color:
//
//	dot := render.ToDOT(skeleton, render.GraphOptions{Detailed: true})
//	svg, err := render.RenderGraphSVG(dot)
package render
