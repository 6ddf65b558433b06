package rig

import "github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"

// Default visual/behavioral properties for new bones.
const (
	DefaultStrength    = 1.0
	DefaultFlexiRadius = 40.0
	DefaultColor       = "#4ac6e8"
)

// Bone is an oriented head→tail segment acting as a rigid transform unit
// within a skeleton. The parent link is a weak back-reference by id, never
// ownership; a bone is owned by exactly one skeleton.
//
// Head, Angle, and Length form the live pose; RestHead, RestAngle, and
// RestLength form the rest-pose baseline. Both tails are derived via [Bone.Tail]
// and [Bone.RestTail] and are never stored.
type Bone struct {
	ID       string
	Name     string
	ParentID string // empty for root bones

	// Live pose (world space).
	Head   geom.Point
	Angle  float64
	Length float64

	// Rest pose baseline (world space). Mutated only by Edit-mode operations.
	RestHead   geom.Point
	RestAngle  float64
	RestLength float64

	Color       string
	Strength    float64 // influence multiplier in [0,1]
	FlexiRadius float64 // flexi-bind capture radius
	ZOrder      int
}

// Tail returns the live tail: head + length·(cos angle, sin angle).
func (b *Bone) Tail() geom.Point {
	return tailOf(pose{head: b.Head, angle: b.Angle, length: b.Length})
}

// RestTail returns the rest-pose tail derived from the rest head/angle/length.
func (b *Bone) RestTail() geom.Point {
	return tailOf(pose{head: b.RestHead, angle: b.RestAngle, length: b.RestLength})
}

// pose is a value snapshot of one bone transform (head/angle/length).
// The propagation engine passes these around so it can compare a bone's
// pre-mutation transform against its updated one.
type pose struct {
	head   geom.Point
	angle  float64
	length float64
}

func livePose(b *Bone) pose {
	return pose{head: b.Head, angle: b.Angle, length: b.Length}
}

func restPose(b *Bone) pose {
	return pose{head: b.RestHead, angle: b.RestAngle, length: b.RestLength}
}

func tailOf(p pose) geom.Point {
	return p.head.Add(geom.Pt(p.length, 0).Rotate(p.angle))
}
