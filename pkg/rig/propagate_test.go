package rig

import (
	"math"
	"testing"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
)

// Animate-rotating the root by 90° must carry the child's head to the
// root's new tail while leaving the child's own angle untouched.
func TestAnimateRotationCarriesChildHead(t *testing.T) {
	st, s, a, b := newTestRig(t)

	st.RotateBone(s.ID, a.ID, ModeAnimate, math.Pi/2)

	if !almostPt(a.Tail(), geom.Pt(0, 10)) {
		t.Fatalf("root tail = %v, want (0,10)", a.Tail())
	}
	if !almostPt(b.Head, geom.Pt(0, 10)) {
		t.Errorf("child head = %v, want (0,10)", b.Head)
	}
	if b.Angle != 0 {
		t.Errorf("child angle = %v, want unchanged 0", b.Angle)
	}
	if b.RestHead != geom.Pt(10, 0) {
		t.Errorf("child rest head = %v, animate must not touch rest pose", b.RestHead)
	}
}

// Incremental rotations across separate updates must land exactly where a
// single combined rotation would, with no double-counted follow offsets.
func TestAnimateIncrementalRotationComposes(t *testing.T) {
	st, s, a, b := newTestRig(t)

	st.RotateBone(s.ID, a.ID, ModeAnimate, math.Pi/4)
	st.RotateBone(s.ID, a.ID, ModeAnimate, math.Pi/2)

	if !almostPt(b.Head, geom.Pt(0, 10)) {
		t.Errorf("child head after incremental rotation = %v, want (0,10)", b.Head)
	}
}

// A child independently posed mid-sequence keeps its offset instead of
// snapping back when the parent later moves.
func TestAnimatePreservesIndependentDelta(t *testing.T) {
	st, s, a, b := newTestRig(t)

	st.MoveBone(s.ID, b.ID, ModeAnimate, geom.Pt(10, 5)) // author nudges the child
	st.MoveBone(s.ID, a.ID, ModeAnimate, geom.Pt(20, 0)) // then moves the parent

	if !almostPt(b.Head, geom.Pt(30, 5)) {
		t.Errorf("child head = %v, want (30,5): parent delta plus preserved nudge", b.Head)
	}
}

func TestAnimateCascadesThroughGrandchildren(t *testing.T) {
	st, s, a, b := newTestRig(t)
	c := st.AddBone(s.ID, "C", geom.Pt(20, 0), geom.Pt(25, 0))
	st.SetParent(s.ID, c.ID, b.ID)

	st.MoveBone(s.ID, a.ID, ModeAnimate, geom.Pt(0, 100))

	if !almostPt(b.Head, geom.Pt(10, 100)) {
		t.Errorf("child head = %v, want (10,100)", b.Head)
	}
	if !almostPt(c.Head, geom.Pt(20, 100)) {
		t.Errorf("grandchild head = %v, want (20,100)", c.Head)
	}
}

// Edit-mode changes redefine the baseline: descendants get the parent's
// similarity transform written into both live and rest fields.
func TestEditPropagationRewritesRestPose(t *testing.T) {
	st, s, a, b := newTestRig(t)

	// Double the root's length: tail goes (10,0)→(20,0), so the child's
	// segment is carried and scaled by 2 around the root's head.
	st.ScaleBone(s.ID, a.ID, ModeEdit, 20)

	if !almostPt(b.Head, geom.Pt(20, 0)) {
		t.Errorf("child head = %v, want (20,0)", b.Head)
	}
	if math.Abs(b.Length-20) > testEps {
		t.Errorf("child length = %v, want 20", b.Length)
	}
	if !almostPt(b.RestHead, geom.Pt(20, 0)) || math.Abs(b.RestLength-20) > testEps {
		t.Errorf("child rest pose not redefined: head %v length %v", b.RestHead, b.RestLength)
	}
	if a.RestLength != 20 {
		t.Errorf("edited bone rest length = %v, want 20", a.RestLength)
	}
}

func TestEditRotationSpinsDescendants(t *testing.T) {
	st, s, a, b := newTestRig(t)

	st.RotateBone(s.ID, a.ID, ModeEdit, math.Pi/2)

	if !almostPt(b.Head, geom.Pt(0, 10)) {
		t.Errorf("child head = %v, want (0,10)", b.Head)
	}
	// Unlike Animate, Edit applies the full similarity transform, so the
	// child's angle rotates with the parent.
	if math.Abs(geom.WrapAngle(b.Angle-math.Pi/2)) > testEps {
		t.Errorf("child angle = %v, want π/2", b.Angle)
	}
	if !almostPt(b.Tail(), geom.Pt(0, 20)) {
		t.Errorf("child tail = %v, want (0,20)", b.Tail())
	}
}

// A zero-length parent segment falls back to pure translation instead of
// dividing by zero.
func TestDegenerateParentFallsBackToTranslation(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("l", "")
	a := st.AddBone(s.ID, "A", geom.Pt(5, 5), geom.Pt(5, 5)) // zero length
	b := st.AddBone(s.ID, "B", geom.Pt(8, 5), geom.Pt(12, 5))
	st.SetParent(s.ID, b.ID, a.ID)

	st.MoveBone(s.ID, a.ID, ModeAnimate, geom.Pt(6, 7))

	if !almostPt(b.Head, geom.Pt(9, 7)) {
		t.Errorf("child head = %v, want (9,7): translated by the parent head delta", b.Head)
	}
	if b.Angle != 0 || b.Length != 4 {
		t.Errorf("child angle/length changed under degenerate fallback: %v %v", b.Angle, b.Length)
	}

	st.MoveBone(s.ID, a.ID, ModeEdit, geom.Pt(0, 0))
	if !almostPt(b.Head, geom.Pt(3, 0)) {
		t.Errorf("edit fallback head = %v, want (3,0)", b.Head)
	}
}
