package rig

import (
	"github.com/google/uuid"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
)

// Mode selects the propagation strategy for pose mutations.
type Mode int

const (
	// ModeAnimate mutates the live pose only. Descendants follow via offset
	// decomposition; the rest pose is untouched.
	ModeAnimate Mode = iota
	// ModeEdit redefines the rest-pose baseline. Descendants receive the
	// parent's similarity transform in both live and rest fields.
	ModeEdit
)

// Store owns all rig state: skeletons and their bones, the keyframe table,
// and the binding tables. It is the single mutation point for the rigging
// core; there are no package-level singletons.
//
// The zero value is not usable - use [NewStore].
type Store struct {
	skeletons []*Skeleton
	byID      map[string]*Skeleton

	// Keyframe table: skeleton id → frame index → per-bone partial records.
	keys map[string]map[int]frameRecord

	// Binding tables. pointBindings maps a stroke point to its influencing
	// bones and weights; layerBindings maps a host layer id to its single
	// bone binding. The two are mutually exclusive per layer.
	pointBindings map[PointKey]map[string]float64
	layerBindings map[string]LayerBinding

	// Flexi-bind toggle state: one level of undo, not a stack.
	flexiActive   bool
	flexiSnapshot *bindingSnapshot
}

// NewStore creates an empty rig store.
func NewStore() *Store {
	return &Store{
		byID:          make(map[string]*Skeleton),
		keys:          make(map[string]map[int]frameRecord),
		pointBindings: make(map[PointKey]map[string]float64),
		layerBindings: make(map[string]LayerBinding),
	}
}

// =============================================================================
// Skeleton CRUD
// =============================================================================

// CreateSkeleton adds a new skeleton bound to the given host layer and
// returns it. An empty name defaults to "Skeleton".
func (st *Store) CreateSkeleton(layerID, name string) *Skeleton {
	if name == "" {
		name = "Skeleton"
	}
	s := &Skeleton{ID: uuid.NewString(), LayerID: layerID, Name: name}
	st.skeletons = append(st.skeletons, s)
	st.byID[s.ID] = s
	return s
}

// Skeleton returns the skeleton with the given id, or nil.
func (st *Store) Skeleton(id string) *Skeleton {
	return st.byID[id]
}

// Skeletons returns all skeletons in creation order. The returned slice is
// the store's own; callers must not reorder it.
func (st *Store) Skeletons() []*Skeleton {
	return st.skeletons
}

// DeleteSkeleton removes a skeleton, its keyframes, and every binding that
// references one of its bones. Unknown ids are a no-op.
func (st *Store) DeleteSkeleton(id string) {
	s := st.byID[id]
	if s == nil {
		return
	}
	for _, b := range s.Bones {
		st.dropBindingsFor(b.ID)
	}
	delete(st.keys, id)
	delete(st.byID, id)
	for i, sk := range st.skeletons {
		if sk.ID == id {
			st.skeletons = append(st.skeletons[:i], st.skeletons[i+1:]...)
			break
		}
	}
}

// =============================================================================
// Bone CRUD
// =============================================================================

// AddBone appends a bone to a skeleton, spanning head→tail. The rest pose is
// initialized to the live pose. Returns the new bone, or nil if the skeleton
// is unknown.
func (st *Store) AddBone(skeletonID, name string, head, tail geom.Point) *Bone {
	s := st.byID[skeletonID]
	if s == nil {
		return nil
	}
	if name == "" {
		name = "Bone"
	}
	angle := geom.Angle(head, tail)
	length := head.Distance(tail)
	b := &Bone{
		ID:          uuid.NewString(),
		Name:        name,
		Head:        head,
		Angle:       angle,
		Length:      length,
		RestHead:    head,
		RestAngle:   angle,
		RestLength:  length,
		Color:       DefaultColor,
		Strength:    DefaultStrength,
		FlexiRadius: DefaultFlexiRadius,
		ZOrder:      len(s.Bones),
	}
	s.Bones = append(s.Bones, b)
	return b
}

// SetParent rewires a bone's parent link. An empty parentID detaches the
// bone. The caller is responsible for not introducing cycles. Unknown ids
// are a no-op (a nonexistent parent is not attached).
func (st *Store) SetParent(skeletonID, boneID, parentID string) {
	s := st.byID[skeletonID]
	if s == nil {
		return
	}
	b := s.Bone(boneID)
	if b == nil {
		return
	}
	if parentID != "" && s.Bone(parentID) == nil {
		return
	}
	b.ParentID = parentID
}

// DeleteBone removes a bone from its skeleton. Its children are reparented
// to the deleted bone's parent (or detached when a root is deleted), and all
// point/layer bindings and keyframe records referencing the bone are dropped.
func (st *Store) DeleteBone(skeletonID, boneID string) {
	s := st.byID[skeletonID]
	if s == nil {
		return
	}
	b := s.Bone(boneID)
	if b == nil {
		return
	}
	for _, c := range s.Bones {
		if c.ParentID == boneID {
			c.ParentID = b.ParentID
		}
	}
	for i, bb := range s.Bones {
		if bb.ID == boneID {
			s.Bones = append(s.Bones[:i], s.Bones[i+1:]...)
			break
		}
	}
	st.dropBindingsFor(boneID)
	for _, rec := range st.keys[skeletonID] {
		delete(rec, boneID)
	}
}

// RenameBone sets a bone's display name. Unknown ids are a no-op.
func (st *Store) RenameBone(skeletonID, boneID, name string) {
	if b := st.bone(skeletonID, boneID); b != nil && name != "" {
		b.Name = name
	}
}

// SetColor sets a bone's display color.
func (st *Store) SetColor(skeletonID, boneID, color string) {
	if b := st.bone(skeletonID, boneID); b != nil {
		b.Color = color
	}
}

// SetStrength sets a bone's influence multiplier. Values are expected in
// [0,1]; out-of-range input is stored as-is (clamping is the caller's job).
func (st *Store) SetStrength(skeletonID, boneID string, strength float64) {
	if b := st.bone(skeletonID, boneID); b != nil {
		b.Strength = strength
	}
}

// SetFlexiRadius sets a bone's flexi-bind capture radius.
func (st *Store) SetFlexiRadius(skeletonID, boneID string, radius float64) {
	if b := st.bone(skeletonID, boneID); b != nil {
		b.FlexiRadius = radius
	}
}

// SetZOrder sets a bone's draw order within its skeleton.
func (st *Store) SetZOrder(skeletonID, boneID string, z int) {
	if b := st.bone(skeletonID, boneID); b != nil {
		b.ZOrder = z
	}
}

func (st *Store) bone(skeletonID, boneID string) *Bone {
	s := st.byID[skeletonID]
	if s == nil {
		return nil
	}
	return s.Bone(boneID)
}

// =============================================================================
// Pose mutation
// =============================================================================

// MoveBone translates a bone's head to the given world position. The angle
// and length are unchanged, so the tail follows rigidly. Descendants are
// propagated under the given mode.
func (st *Store) MoveBone(skeletonID, boneID string, mode Mode, head geom.Point) {
	st.mutatePose(skeletonID, boneID, mode, func(b *Bone) {
		b.Head = head
	})
}

// RotateBone sets a bone's absolute angle in radians. Descendants are
// propagated under the given mode; in Animate mode rotation translates
// their attachment point but never spins their own angles.
func (st *Store) RotateBone(skeletonID, boneID string, mode Mode, angle float64) {
	st.mutatePose(skeletonID, boneID, mode, func(b *Bone) {
		b.Angle = angle
	})
}

// ScaleBone sets a bone's length. Descendants are propagated under the
// given mode.
func (st *Store) ScaleBone(skeletonID, boneID string, mode Mode, length float64) {
	st.mutatePose(skeletonID, boneID, mode, func(b *Bone) {
		b.Length = length
	})
}

// mutatePose applies fn to the bone's live pose, captures the pre-mutation
// transform, mirrors the change into the rest pose under Edit mode, and
// cascades to descendants.
func (st *Store) mutatePose(skeletonID, boneID string, mode Mode, fn func(*Bone)) {
	s := st.byID[skeletonID]
	if s == nil {
		return
	}
	b := s.Bone(boneID)
	if b == nil {
		return
	}
	prev := livePose(b)
	fn(b)
	if mode == ModeEdit {
		b.RestHead = b.Head
		b.RestAngle = b.Angle
		b.RestLength = b.Length
	}
	s.propagate(b, prev, mode)
}
