package rig

import (
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

// minFlexiWeight is the floor below which a normalized flexi-bind weight is
// discarded rather than stored.
const minFlexiWeight = 0.01

// FlexiBindActive reports whether flexi-bind is currently toggled on.
func (st *Store) FlexiBindActive() bool { return st.flexiActive }

// ToggleFlexiBind flips automatic proximity weighting. Toggling on snapshots
// the current binding tables and replaces the affected strokes' bindings with
// computed weights; toggling off restores the exact pre-activation snapshot.
// This is one level of undo, not a stack.
func (st *Store) ToggleFlexiBind(strokes []stroke.Stroke, skeletonID string) {
	if st.flexiActive {
		if st.flexiSnapshot != nil {
			st.pointBindings = st.flexiSnapshot.points
			st.layerBindings = st.flexiSnapshot.layers
		}
		st.flexiSnapshot = nil
		st.flexiActive = false
		return
	}
	if st.byID[skeletonID] == nil {
		return
	}
	st.flexiSnapshot = &bindingSnapshot{
		points: copyPointBindings(st.pointBindings),
		layers: copyLayerBindings(st.layerBindings),
	}
	st.FlexiBind(strokes, skeletonID)
	st.flexiActive = true
}

// FlexiBind computes proximity-based weights for every point of the given
// strokes against the skeleton's bones, replacing any prior point bindings
// for those strokes.
//
// A bone influences a point when the point's perpendicular distance to the
// bone's head→tail segment is under FlexiRadius×Strength. Raw influence
// falls off as (1 - distance/FlexiRadius)²; raw weights are normalized to
// sum to 1 per point, and normalized weights at or below 1% are dropped.
// Unknown skeleton ids are a no-op.
func (st *Store) FlexiBind(strokes []stroke.Stroke, skeletonID string) {
	s := st.byID[skeletonID]
	if s == nil {
		return
	}
	for _, sk := range strokes {
		st.UnbindStroke(sk.ID)
	}
	for _, sk := range strokes {
		for i, p := range sk.Points {
			raw := make(map[string]float64)
			total := 0.0
			for _, b := range s.Bones {
				if b.FlexiRadius <= 0 {
					continue
				}
				d := geom.DistToSegment(p.Anchor, b.Head, b.Tail())
				if d >= b.FlexiRadius*b.Strength {
					continue
				}
				falloff := 1 - d/b.FlexiRadius
				w := falloff * falloff
				raw[b.ID] = w
				total += w
			}
			if total == 0 {
				continue
			}
			for id, w := range raw {
				norm := w / total
				if norm <= minFlexiWeight {
					continue
				}
				st.BindPoint(sk.ID, sk.LayerID, i, id, norm)
			}
		}
	}
}
