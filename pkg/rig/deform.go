package rig

import (
	"math"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

// No-op thresholds: a bone whose live pose differs from rest by less than
// these is skipped during deformation.
const (
	minRotationDelta    = 1e-5 // radians
	minTranslationDelta = 1e-3 // world units
	minScaleDelta       = 1e-3 // relative deviation from 1
)

// boneDelta is a bone's precomputed pose delta versus its rest pose.
// Axial scale stretches along the bone's rest direction; the perpendicular
// scale 1/√axial preserves area under squash and stretch.
type boneDelta struct {
	rotation  float64
	axial     float64
	perp      float64
	restHead  geom.Point
	liveHead  geom.Point
	restAngle float64
}

// deltaOf computes the bone's pose delta. ok is false when the delta is
// negligible and the bone can be skipped as a no-op.
func deltaOf(b *Bone) (d boneDelta, ok bool) {
	d = boneDelta{
		rotation:  b.Angle - b.RestAngle,
		axial:     1,
		restHead:  b.RestHead,
		liveHead:  b.Head,
		restAngle: b.RestAngle,
	}
	if b.RestLength > degenerateLength {
		d.axial = b.Length / b.RestLength
	}
	if d.axial <= 0 {
		d.axial = 1
	}
	d.perp = 1 / math.Sqrt(d.axial)

	translation := b.Head.Sub(b.RestHead).Length()
	if math.Abs(d.rotation) < minRotationDelta &&
		translation < minTranslationDelta &&
		math.Abs(d.axial-1) < minScaleDelta {
		return d, false
	}
	return d, true
}

// apply deforms one world-space point: the offset from the rest head is
// decomposed into axial/perpendicular components in the bone's rest frame,
// scaled, rotated by the rotation delta, then re-anchored at the live head.
func (d boneDelta) apply(p geom.Point) geom.Point {
	off := p.Sub(d.restHead)
	sin, cos := math.Sincos(d.restAngle)
	u := geom.Pt(cos, sin)   // along the bone's rest direction
	v := geom.Pt(-sin, cos)  // perpendicular
	a := off.Dot(u) * d.axial
	bb := off.Dot(v) * d.perp
	local := u.Mul(a).Add(v.Mul(bb))
	return d.liveHead.Add(local.Rotate(d.rotation))
}

// applyAxisAligned deforms one point in a world-axis-aligned local frame
// pivoting at the rest head, as used by layer deformation.
func (d boneDelta) applyAxisAligned(p geom.Point) geom.Point {
	off := p.Sub(d.restHead)
	scaled := geom.Pt(off.X*d.axial, off.Y*d.perp)
	return d.liveHead.Add(scaled.Rotate(d.rotation))
}

// =============================================================================
// Point deformation
// =============================================================================

// DeformStrokes returns a deformed copy of the stroke list driven by the
// current live poses and the point-binding table. Each bound point's
// displacement is the weighted sum of its bones' individual displacements,
// supporting smooth multi-bone blending. Derived strokes (non-empty
// ParentID) receive their source stroke's per-point displacement by matching
// point index. Bezier control handles move rigidly with their anchor.
//
// The function is pure: stored state is never mutated and the input strokes
// are left untouched.
func (st *Store) DeformStrokes(strokes []stroke.Stroke) []stroke.Stroke {
	deltas := st.boneDeltas()
	out := stroke.CloneAll(strokes)
	if len(deltas) == 0 {
		return out
	}

	byID := make(map[string]*stroke.Stroke, len(strokes))
	for i := range strokes {
		byID[strokes[i].ID] = &strokes[i]
	}

	disp := make(map[PointKey]geom.Point)
	for key, bones := range st.pointBindings {
		src := byID[key.StrokeID]
		if src == nil || key.Index < 0 || key.Index >= len(src.Points) {
			continue
		}
		p := src.Points[key.Index].Anchor
		var total geom.Point
		moved := false
		for _, boneID := range sortedBoneIDs(bones) {
			d, ok := deltas[boneID]
			if !ok {
				continue
			}
			total = total.Add(d.apply(p).Sub(p).Mul(bones[boneID]))
			moved = true
		}
		if moved {
			disp[key] = total
		}
	}

	for i := range out {
		st.displaceStroke(&out[i], disp)
	}
	return out
}

// displaceStroke applies the displacement map to one cloned stroke, falling
// back to the parent stroke's displacements for derived strokes.
func (st *Store) displaceStroke(s *stroke.Stroke, disp map[PointKey]geom.Point) {
	sourceID := s.ID
	if _, bound := st.strokeHasBindings(s.ID); !bound && s.ParentID != "" {
		sourceID = s.ParentID
	}
	for i := range s.Points {
		if d, ok := disp[PointKey{StrokeID: sourceID, Index: i}]; ok {
			s.Points[i] = s.Points[i].Translate(d)
		}
	}
}

// strokeHasBindings reports whether any point of the stroke is bound.
func (st *Store) strokeHasBindings(strokeID string) (int, bool) {
	n := 0
	for key := range st.pointBindings {
		if key.StrokeID == strokeID {
			n++
		}
	}
	return n, n > 0
}

// boneDeltas precomputes non-negligible pose deltas for every bone of every
// skeleton, keyed by bone id.
func (st *Store) boneDeltas() map[string]boneDelta {
	out := make(map[string]boneDelta)
	for _, s := range st.skeletons {
		for _, b := range s.Bones {
			if d, ok := deltaOf(b); ok {
				out[b.ID] = d
			}
		}
	}
	return out
}

// =============================================================================
// Layer deformation
// =============================================================================

// DeformBoundLayerStrokes returns a copy of the stroke list with every
// stroke on a bound layer (or any of its nested descendant layers) deformed
// by the layer's bone, using a world-axis-aligned local frame pivoting at
// the bone's rest head. Layer bindings are resolved in depth-first document
// order over the layer forest; when nested layers carry conflicting
// bindings the last processed one wins - there is no blending across layer
// bindings.
//
// Like [Store.DeformStrokes], the function is pure.
func (st *Store) DeformBoundLayerStrokes(strokes []stroke.Stroke, layers []*stroke.Layer) []stroke.Stroke {
	out := stroke.CloneAll(strokes)
	if len(st.layerBindings) == 0 {
		return out
	}
	deltas := st.boneDeltas()
	if len(deltas) == 0 {
		return out
	}

	// Displacements are computed from the original input positions and
	// overwritten per point, so a later binding replaces an earlier one
	// instead of compounding with it.
	disp := make(map[PointKey]geom.Point)
	for _, layerID := range boundLayerOrder(layers, st.layerBindings) {
		lb := st.layerBindings[layerID]
		d, ok := deltas[lb.BoneID]
		if !ok {
			continue
		}
		covered := coveredLayers(layers, layerID)
		for i := range strokes {
			s := &strokes[i]
			if !covered[s.LayerID] {
				continue
			}
			for j, p := range s.Points {
				key := PointKey{StrokeID: s.ID, Index: j}
				disp[key] = d.applyAxisAligned(p.Anchor).Sub(p.Anchor)
			}
		}
	}

	for i := range out {
		s := &out[i]
		for j := range s.Points {
			if d, ok := disp[PointKey{StrokeID: s.ID, Index: j}]; ok {
				s.Points[j] = s.Points[j].Translate(d)
			}
		}
	}
	return out
}

// boundLayerOrder walks the layer forest depth-first and returns the ids of
// layers carrying bindings, in traversal order. Bound layers absent from the
// forest (host pruned them) are skipped.
func boundLayerOrder(layers []*stroke.Layer, bindings map[string]LayerBinding) []string {
	var out []string
	var walk func(l *stroke.Layer)
	walk = func(l *stroke.Layer) {
		if l == nil {
			return
		}
		if _, ok := bindings[l.ID]; ok {
			out = append(out, l.ID)
		}
		for _, c := range l.Children {
			walk(c)
		}
	}
	for _, l := range layers {
		walk(l)
	}
	return out
}

// coveredLayers returns the set of layer ids deformed by a binding on
// layerID: the layer itself plus all nested descendants.
func coveredLayers(layers []*stroke.Layer, layerID string) map[string]bool {
	out := make(map[string]bool)
	l := stroke.FindLayer(layers, layerID)
	if l == nil {
		// The host passed strokes tagged with this layer but no tree entry;
		// deform just the layer itself.
		out[layerID] = true
		return out
	}
	for _, id := range l.Descendants() {
		out[id] = true
	}
	return out
}
