package rig

import (
	"sort"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

// PointKey identifies one anchor point of one stroke.
type PointKey struct {
	StrokeID string
	Index    int
}

// LayerBinding attaches an entire host layer (including nested descendant
// layers) to a single bone. One binding per layer; last write replaces.
type LayerBinding struct {
	BoneID     string
	SkeletonID string
}

// bindingSnapshot captures both binding tables for the flexi-bind toggle.
type bindingSnapshot struct {
	points map[PointKey]map[string]float64
	layers map[string]LayerBinding
}

// =============================================================================
// Point binding
// =============================================================================

// BindPoint upserts one point→bone binding with the given weight. A point
// may bind to several bones for blended deformation; rebinding the same
// (stroke, point, bone) replaces the prior weight. Binding a point on a
// layer clears that layer's layer-binding entry - the two modes are
// mutually exclusive per layer. Unknown bone ids are a no-op.
func (st *Store) BindPoint(strokeID, layerID string, index int, boneID string, weight float64) {
	if !st.boneExists(boneID) {
		return
	}
	delete(st.layerBindings, layerID)
	key := PointKey{StrokeID: strokeID, Index: index}
	m := st.pointBindings[key]
	if m == nil {
		m = make(map[string]float64)
		st.pointBindings[key] = m
	}
	m[boneID] = weight
}

// UnbindPoint removes every bone binding for one stroke point.
func (st *Store) UnbindPoint(strokeID string, index int) {
	delete(st.pointBindings, PointKey{StrokeID: strokeID, Index: index})
}

// UnbindStroke removes every point binding on the stroke.
func (st *Store) UnbindStroke(strokeID string) {
	for key := range st.pointBindings {
		if key.StrokeID == strokeID {
			delete(st.pointBindings, key)
		}
	}
}

// PointBindings returns the stroke's bindings as index → bone id → weight.
// The result is a copy; mutating it does not touch the store.
func (st *Store) PointBindings(strokeID string) map[int]map[string]float64 {
	out := make(map[int]map[string]float64)
	for key, bones := range st.pointBindings {
		if key.StrokeID != strokeID {
			continue
		}
		m := make(map[string]float64, len(bones))
		for id, w := range bones {
			m[id] = w
		}
		out[key.Index] = m
	}
	return out
}

// =============================================================================
// Layer binding
// =============================================================================

// BindLayer attaches a host layer to a bone, replacing any prior binding for
// that layer, and clears the point bindings of every stroke currently on the
// layer (the strokes argument is the host's current frame content). Unknown
// skeleton or bone ids are a no-op.
func (st *Store) BindLayer(layerID, boneID, skeletonID string, strokes []stroke.Stroke) {
	s := st.byID[skeletonID]
	if s == nil || s.Bone(boneID) == nil {
		return
	}
	st.layerBindings[layerID] = LayerBinding{BoneID: boneID, SkeletonID: skeletonID}
	for _, sk := range strokes {
		if sk.LayerID == layerID {
			st.UnbindStroke(sk.ID)
		}
	}
}

// UnbindLayer removes the layer's binding entry.
func (st *Store) UnbindLayer(layerID string) {
	delete(st.layerBindings, layerID)
}

// LayerBindingFor returns the layer's binding, if any.
func (st *Store) LayerBindingFor(layerID string) (LayerBinding, bool) {
	lb, ok := st.layerBindings[layerID]
	return lb, ok
}

// =============================================================================
// Shared helpers
// =============================================================================

// boneExists reports whether any skeleton owns a bone with the given id.
func (st *Store) boneExists(boneID string) bool {
	return st.findBone(boneID) != nil
}

// findBone locates a bone by id across all skeletons.
func (st *Store) findBone(boneID string) *Bone {
	for _, s := range st.skeletons {
		if b := s.Bone(boneID); b != nil {
			return b
		}
	}
	return nil
}

// dropBindingsFor removes every point and layer binding referencing the bone.
func (st *Store) dropBindingsFor(boneID string) {
	for key, bones := range st.pointBindings {
		delete(bones, boneID)
		if len(bones) == 0 {
			delete(st.pointBindings, key)
		}
	}
	for layerID, lb := range st.layerBindings {
		if lb.BoneID == boneID {
			delete(st.layerBindings, layerID)
		}
	}
}

// sortedBoneIDs returns the map's bone ids in lexical order. Weight
// accumulation during deformation iterates in this order so repeated
// evaluation is bit-identical.
func sortedBoneIDs(m map[string]float64) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func copyPointBindings(src map[PointKey]map[string]float64) map[PointKey]map[string]float64 {
	out := make(map[PointKey]map[string]float64, len(src))
	for key, bones := range src {
		m := make(map[string]float64, len(bones))
		for id, w := range bones {
			m[id] = w
		}
		out[key] = m
	}
	return out
}

func copyLayerBindings(src map[string]LayerBinding) map[string]LayerBinding {
	out := make(map[string]LayerBinding, len(src))
	for id, lb := range src {
		out[id] = lb
	}
	return out
}
