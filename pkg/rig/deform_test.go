package rig

import (
	"math"
	"testing"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

// With every bone at its rest pose, deformation is a null-op: the output
// equals the input by value.
func TestDeformStrokesNullOp(t *testing.T) {
	st, _, a, _ := newTestRig(t)
	st.BindPoint("s1", "l1", 0, a.ID, 1)

	h := geom.Pt(1, 2)
	in := []stroke.Stroke{{ID: "s1", LayerID: "l1", Points: []stroke.Point{
		{Anchor: geom.Pt(3, 4), Out: &h},
		{Anchor: geom.Pt(5, 6)},
	}}}

	out := st.DeformStrokes(in)

	if len(out) != 1 || len(out[0].Points) != 2 {
		t.Fatalf("shape changed: %+v", out)
	}
	if out[0].Points[0].Anchor != geom.Pt(3, 4) || out[0].Points[1].Anchor != geom.Pt(5, 6) {
		t.Errorf("anchors moved with no pose delta: %+v", out[0].Points)
	}
	if *out[0].Points[0].Out != h {
		t.Errorf("handle moved with no pose delta: %v", *out[0].Points[0].Out)
	}
	// Pure function: the output must not alias the input's storage.
	out[0].Points[0].Anchor = geom.Pt(-1, -1)
	if in[0].Points[0].Anchor != geom.Pt(3, 4) {
		t.Error("output aliases input storage")
	}
}

// P bound half to each of two bones; translating one by (10,0) and the
// other by (0,10) displaces P by exactly (5,5).
func TestDeformBlendsWeightedTranslations(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("l", "")
	b1 := st.AddBone(s.ID, "b1", geom.Pt(0, 0), geom.Pt(10, 0))
	b2 := st.AddBone(s.ID, "b2", geom.Pt(0, 20), geom.Pt(10, 20))

	st.BindPoint("s1", "l", 0, b1.ID, 0.5)
	st.BindPoint("s1", "l", 0, b2.ID, 0.5)

	st.MoveBone(s.ID, b1.ID, ModeAnimate, geom.Pt(10, 0))
	st.MoveBone(s.ID, b2.ID, ModeAnimate, geom.Pt(0, 30))

	in := []stroke.Stroke{strokeOn("l", "s1", geom.Pt(4, 7))}
	out := st.DeformStrokes(in)

	if !almostPt(out[0].Points[0].Anchor, geom.Pt(9, 12)) {
		t.Errorf("deformed point = %v, want (9,12)", out[0].Points[0].Anchor)
	}
	if in[0].Points[0].Anchor != geom.Pt(4, 7) {
		t.Error("input mutated")
	}
}

func TestDeformRotatesAroundLiveHead(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("l", "")
	b := st.AddBone(s.ID, "b", geom.Pt(0, 0), geom.Pt(10, 0))
	st.BindPoint("s1", "l", 0, b.ID, 1)
	st.RotateBone(s.ID, b.ID, ModeAnimate, math.Pi/2)

	in := []stroke.Stroke{strokeOn("l", "s1", geom.Pt(10, 0))}
	out := st.DeformStrokes(in)

	if !almostPt(out[0].Points[0].Anchor, geom.Pt(0, 10)) {
		t.Errorf("rotated point = %v, want (0,10)", out[0].Points[0].Anchor)
	}
}

// Stretching a bone scales bound points axially and squashes them
// perpendicular by 1/√axial, preserving area.
func TestDeformVolumePreservingStretch(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("l", "")
	b := st.AddBone(s.ID, "b", geom.Pt(0, 0), geom.Pt(10, 0))
	st.BindPoint("s1", "l", 0, b.ID, 1)
	st.ScaleBone(s.ID, b.ID, ModeAnimate, 40) // axial ×4, perp ×0.5

	in := []stroke.Stroke{strokeOn("l", "s1", geom.Pt(10, 2))}
	out := st.DeformStrokes(in)

	if !almostPt(out[0].Points[0].Anchor, geom.Pt(40, 1)) {
		t.Errorf("stretched point = %v, want (40,1)", out[0].Points[0].Anchor)
	}
}

func TestDeformSkipsNegligibleDeltas(t *testing.T) {
	st, s, a, _ := newTestRig(t)
	st.BindPoint("s1", "l1", 0, a.ID, 1)
	st.RotateBone(s.ID, a.ID, ModeAnimate, 5e-6)
	st.MoveBone(s.ID, a.ID, ModeAnimate, geom.Pt(5e-4, 0))

	in := []stroke.Stroke{strokeOn("l1", "s1", geom.Pt(3, 3))}
	out := st.DeformStrokes(in)

	if out[0].Points[0].Anchor != geom.Pt(3, 3) {
		t.Errorf("point moved under sub-threshold delta: %v", out[0].Points[0].Anchor)
	}
}

// Control handles move rigidly with their anchor: same displacement, not
// independently deformed.
func TestDeformMovesHandlesRigidly(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("l", "")
	b := st.AddBone(s.ID, "b", geom.Pt(0, 0), geom.Pt(10, 0))
	st.BindPoint("s1", "l", 0, b.ID, 1)
	st.RotateBone(s.ID, b.ID, ModeAnimate, math.Pi/2)

	hIn, hOut := geom.Pt(9, -1), geom.Pt(11, 1)
	in := []stroke.Stroke{{ID: "s1", LayerID: "l", Points: []stroke.Point{
		{Anchor: geom.Pt(10, 0), In: &hIn, Out: &hOut},
	}}}
	out := st.DeformStrokes(in)

	p := out[0].Points[0]
	disp := p.Anchor.Sub(geom.Pt(10, 0))
	if !almostPt(*p.In, hIn.Add(disp)) || !almostPt(*p.Out, hOut.Add(disp)) {
		t.Errorf("handles = %v %v, want rigid displacement %v", *p.In, *p.Out, disp)
	}
}

// Derived strokes inherit their source stroke's per-point displacement by
// matching point index.
func TestDeformDerivedStrokeFollowsSource(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("l", "")
	b := st.AddBone(s.ID, "b", geom.Pt(0, 0), geom.Pt(10, 0))
	st.BindPoint("src", "l", 0, b.ID, 1)
	st.MoveBone(s.ID, b.ID, ModeAnimate, geom.Pt(3, 0))

	derived := strokeOn("l", "copy", geom.Pt(50, 50))
	derived.ParentID = "src"
	in := []stroke.Stroke{strokeOn("l", "src", geom.Pt(5, 5)), derived}

	out := st.DeformStrokes(in)

	if !almostPt(out[0].Points[0].Anchor, geom.Pt(8, 5)) {
		t.Errorf("source point = %v, want (8,5)", out[0].Points[0].Anchor)
	}
	if !almostPt(out[1].Points[0].Anchor, geom.Pt(53, 50)) {
		t.Errorf("derived point = %v, want source displacement applied: (53,50)", out[1].Points[0].Anchor)
	}
}

// =============================================================================
// Layer deformation
// =============================================================================

func TestDeformBoundLayerMovesAllStrokes(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("L", "")
	b := st.AddBone(s.ID, "b", geom.Pt(0, 0), geom.Pt(10, 0))

	layers := []*stroke.Layer{{ID: "L", Children: []*stroke.Layer{{ID: "L/child"}}}}
	in := []stroke.Stroke{
		strokeOn("L", "s1", geom.Pt(1, 1)),
		strokeOn("L/child", "s2", geom.Pt(2, 2)), // nested layers deform too
		strokeOn("elsewhere", "s3", geom.Pt(3, 3)),
	}
	st.BindLayer("L", b.ID, s.ID, in)
	st.MoveBone(s.ID, b.ID, ModeAnimate, geom.Pt(0, 5))

	out := st.DeformBoundLayerStrokes(in, layers)

	if !almostPt(out[0].Points[0].Anchor, geom.Pt(1, 6)) {
		t.Errorf("layer stroke = %v, want (1,6)", out[0].Points[0].Anchor)
	}
	if !almostPt(out[1].Points[0].Anchor, geom.Pt(2, 7)) {
		t.Errorf("nested layer stroke = %v, want (2,7)", out[1].Points[0].Anchor)
	}
	if out[2].Points[0].Anchor != geom.Pt(3, 3) {
		t.Errorf("unbound layer stroke moved: %v", out[2].Points[0].Anchor)
	}
}

// Layer deformation uses a world-axis-aligned frame at the rest head, so a
// rotated bone rotates layer content around its head without the bone-angle
// basis used for point deformation.
func TestDeformBoundLayerAxisAlignedFrame(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("L", "")
	// A bone pointing straight up: rest angle π/2.
	b := st.AddBone(s.ID, "b", geom.Pt(0, 0), geom.Pt(0, 10))
	in := []stroke.Stroke{strokeOn("L", "s1", geom.Pt(4, 0))}
	st.BindLayer("L", b.ID, s.ID, in)
	st.ScaleBone(s.ID, b.ID, ModeAnimate, 40) // axial ×4

	out := st.DeformBoundLayerStrokes(in, []*stroke.Layer{{ID: "L"}})

	// Axis-aligned: the X offset is scaled by the axial factor directly,
	// regardless of the bone pointing along Y.
	if !almostPt(out[0].Points[0].Anchor, geom.Pt(16, 0)) {
		t.Errorf("deformed point = %v, want (16,0)", out[0].Points[0].Anchor)
	}
}

// Conflicting bindings on nested layers resolve by traversal order: the
// last processed binding wins outright, with no blending.
func TestDeformBoundLayerLastBindingWins(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("L", "")
	b1 := st.AddBone(s.ID, "b1", geom.Pt(0, 0), geom.Pt(10, 0))
	b2 := st.AddBone(s.ID, "b2", geom.Pt(0, 20), geom.Pt(10, 20))

	layers := []*stroke.Layer{{ID: "outer", Children: []*stroke.Layer{{ID: "inner"}}}}
	in := []stroke.Stroke{strokeOn("inner", "s1", geom.Pt(5, 5))}
	st.BindLayer("outer", b1.ID, s.ID, nil)
	st.BindLayer("inner", b2.ID, s.ID, nil)

	st.MoveBone(s.ID, b1.ID, ModeAnimate, geom.Pt(100, 0))
	st.MoveBone(s.ID, b2.ID, ModeAnimate, geom.Pt(0, 27))

	out := st.DeformBoundLayerStrokes(in, layers)

	// inner is traversed after outer, so only b2's (0,7) translation lands.
	if !almostPt(out[0].Points[0].Anchor, geom.Pt(5, 12)) {
		t.Errorf("point = %v, want (5,12): inner binding must win outright", out[0].Points[0].Anchor)
	}
}

func TestDeformBoundLayerPure(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("L", "")
	b := st.AddBone(s.ID, "b", geom.Pt(0, 0), geom.Pt(10, 0))
	in := []stroke.Stroke{strokeOn("L", "s1", geom.Pt(1, 1))}
	st.BindLayer("L", b.ID, s.ID, in)
	st.MoveBone(s.ID, b.ID, ModeAnimate, geom.Pt(5, 5))

	_ = st.DeformBoundLayerStrokes(in, []*stroke.Layer{{ID: "L"}})

	if in[0].Points[0].Anchor != geom.Pt(1, 1) {
		t.Error("input mutated by layer deformation")
	}
}
