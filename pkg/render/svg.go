package render

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

// Option configures stroke rendering via [RenderSVG].
type Option func(*renderer)

type renderer struct {
	width       float64
	height      float64
	background  string
	strokeColor string
	strokeWidth float64
	skeletons   []*rig.Skeleton
	showAnchors bool
}

// WithSize fixes the output viewBox. Without it the viewBox is fitted to the
// content bounds with a small margin.
func WithSize(w, h float64) Option {
	return func(r *renderer) { r.width, r.height = w, h }
}

// WithBackground fills the canvas with a solid color. Default is transparent.
func WithBackground(color string) Option {
	return func(r *renderer) { r.background = color }
}

// WithStrokeStyle sets the stroke paint. Default is black at width 2.
func WithStrokeStyle(color string, width float64) Option {
	return func(r *renderer) { r.strokeColor, r.strokeWidth = color, width }
}

// WithSkeletons overlays the live bone segments on top of the strokes, each
// drawn in its bone's display color. Useful for debugging poses.
func WithSkeletons(sks []*rig.Skeleton) Option {
	return func(r *renderer) { r.skeletons = sks }
}

// WithAnchors marks stroke anchor points with small circles.
func WithAnchors() Option {
	return func(r *renderer) { r.showAnchors = true }
}

const boundsMargin = 10

// RenderSVG draws a stroke list as an SVG document. Strokes render in list
// order; bone overlays render after them, sorted by z-order.
func RenderSVG(strokes []stroke.Stroke, opts ...Option) []byte {
	r := renderer{strokeColor: "#000000", strokeWidth: 2}
	for _, opt := range opts {
		opt(&r)
	}

	var minX, minY, maxX, maxY float64
	if r.width > 0 && r.height > 0 {
		maxX, maxY = r.width, r.height
	} else {
		minX, minY, maxX, maxY = contentBounds(strokes, r.skeletons)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f">`+"\n",
		minX, minY, maxX-minX, maxY-minY)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			minX, minY, maxX-minX, maxY-minY, r.background)
	}

	fmt.Fprintf(&buf, `  <g fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round">`+"\n",
		r.strokeColor, r.strokeWidth)
	for _, s := range strokes {
		if len(s.Points) == 0 {
			continue
		}
		fmt.Fprintf(&buf, `    <path id="stroke-%s" d="%s"/>`+"\n", s.ID, pathData(s))
	}
	buf.WriteString("  </g>\n")

	if r.showAnchors {
		renderAnchors(&buf, strokes)
	}
	for _, s := range r.skeletons {
		renderSkeleton(&buf, s)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// pathData builds the SVG path for one stroke: cubic segments where control
// handles exist, straight lines elsewhere. Missing handles collapse onto
// their anchor.
func pathData(s stroke.Stroke) string {
	var b bytes.Buffer
	first := s.Points[0].Anchor
	fmt.Fprintf(&b, "M %.2f %.2f", first.X, first.Y)
	for i := 1; i < len(s.Points); i++ {
		prev, cur := s.Points[i-1], s.Points[i]
		if prev.Out == nil && cur.In == nil {
			fmt.Fprintf(&b, " L %.2f %.2f", cur.Anchor.X, cur.Anchor.Y)
			continue
		}
		c1 := prev.Anchor
		if prev.Out != nil {
			c1 = *prev.Out
		}
		c2 := cur.Anchor
		if cur.In != nil {
			c2 = *cur.In
		}
		fmt.Fprintf(&b, " C %.2f %.2f, %.2f %.2f, %.2f %.2f",
			c1.X, c1.Y, c2.X, c2.Y, cur.Anchor.X, cur.Anchor.Y)
	}
	return b.String()
}

func renderAnchors(buf *bytes.Buffer, strokes []stroke.Stroke) {
	buf.WriteString(`  <g fill="#d04040">` + "\n")
	for _, s := range strokes {
		for _, p := range s.Points {
			fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="1.5"/>`+"\n", p.Anchor.X, p.Anchor.Y)
		}
	}
	buf.WriteString("  </g>\n")
}

func renderSkeleton(buf *bytes.Buffer, s *rig.Skeleton) {
	bones := slices.Clone(s.Bones)
	slices.SortFunc(bones, func(a, b *rig.Bone) int {
		return cmp.Compare(a.ZOrder, b.ZOrder)
	})

	fmt.Fprintf(buf, `  <g id="skeleton-%s" stroke-width="1.5">`+"\n", s.ID)
	for _, b := range bones {
		tail := b.Tail()
		fmt.Fprintf(buf, `    <line id="bone-%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"/>`+"\n",
			b.ID, b.Head.X, b.Head.Y, tail.X, tail.Y, b.Color)
		fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="2.5" fill="%s" stroke="none"/>`+"\n",
			b.Head.X, b.Head.Y, b.Color)
	}
	buf.WriteString("  </g>\n")
}

func contentBounds(strokes []stroke.Stroke, skeletons []*rig.Skeleton) (minX, minY, maxX, maxY float64) {
	first := true
	grow := func(x, y float64) {
		if first {
			minX, minY, maxX, maxY = x, y, x, y
			first = false
			return
		}
		minX, minY = min(minX, x), min(minY, y)
		maxX, maxY = max(maxX, x), max(maxY, y)
	}
	for _, s := range strokes {
		for _, p := range s.Points {
			grow(p.Anchor.X, p.Anchor.Y)
			if p.In != nil {
				grow(p.In.X, p.In.Y)
			}
			if p.Out != nil {
				grow(p.Out.X, p.Out.Y)
			}
		}
	}
	for _, sk := range skeletons {
		for _, b := range sk.Bones {
			tail := b.Tail()
			grow(b.Head.X, b.Head.Y)
			grow(tail.X, tail.Y)
		}
	}
	if first {
		return 0, 0, 100, 100
	}
	return minX - boundsMargin, minY - boundsMargin, maxX + boundsMargin, maxY + boundsMargin
}
