// Package stroke defines the vector content model the rigging core consumes:
// flat per-frame stroke lists and the nested layer hierarchy they live on.
//
// Strokes are owned by the host's tweening subsystem. The rigging core never
// mutates them in place - deformation returns fresh copies.
package stroke

import "github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"

// Point is one anchor of a stroke with optional bezier control handles.
// Handles are nil for polyline points. Handles move rigidly with their
// anchor under deformation.
type Point struct {
	Anchor geom.Point
	In     *geom.Point // incoming control handle, nil if absent
	Out    *geom.Point // outgoing control handle, nil if absent
}

// Clone returns a deep copy of the point.
func (p Point) Clone() Point {
	out := Point{Anchor: p.Anchor}
	if p.In != nil {
		in := *p.In
		out.In = &in
	}
	if p.Out != nil {
		o := *p.Out
		out.Out = &o
	}
	return out
}

// Translate returns the point displaced by d, handles included.
func (p Point) Translate(d geom.Point) Point {
	out := p.Clone()
	out.Anchor = out.Anchor.Add(d)
	if out.In != nil {
		*out.In = out.In.Add(d)
	}
	if out.Out != nil {
		*out.Out = out.Out.Add(d)
	}
	return out
}

// Stroke is one vector stroke as supplied by the host for the current frame.
type Stroke struct {
	ID      string
	LayerID string
	// ParentID links a derived stroke (e.g. a tween-generated copy) back to
	// its source stroke. Derived strokes inherit the source's per-point
	// displacement during deformation.
	ParentID string
	Points   []Point
}

// Clone returns a deep copy of the stroke.
func (s Stroke) Clone() Stroke {
	out := s
	out.Points = make([]Point, len(s.Points))
	for i, p := range s.Points {
		out.Points[i] = p.Clone()
	}
	return out
}

// CloneAll deep-copies a stroke list.
func CloneAll(strokes []Stroke) []Stroke {
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	return out
}
