package rig

import (
	"math"
	"testing"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
)

const testEps = 1e-9

func almostPt(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < testEps && math.Abs(a.Y-b.Y) < testEps
}

// newTestRig builds a two-bone chain: root A spanning (0,0)→(10,0) and
// child B spanning (10,0)→(20,0).
func newTestRig(t *testing.T) (*Store, *Skeleton, *Bone, *Bone) {
	t.Helper()
	st := NewStore()
	s := st.CreateSkeleton("layer-1", "test")
	a := st.AddBone(s.ID, "A", geom.Pt(0, 0), geom.Pt(10, 0))
	b := st.AddBone(s.ID, "B", geom.Pt(10, 0), geom.Pt(20, 0))
	st.SetParent(s.ID, b.ID, a.ID)
	return st, s, a, b
}

func TestAddBoneDerivesPose(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("l", "")
	b := st.AddBone(s.ID, "arm", geom.Pt(1, 1), geom.Pt(1, 6))

	if b.Length != 5 {
		t.Errorf("Length = %v, want 5", b.Length)
	}
	if math.Abs(b.Angle-math.Pi/2) > testEps {
		t.Errorf("Angle = %v, want π/2", b.Angle)
	}
	if !almostPt(b.Tail(), geom.Pt(1, 6)) {
		t.Errorf("Tail = %v, want (1,6)", b.Tail())
	}
	if b.RestHead != b.Head || b.RestAngle != b.Angle || b.RestLength != b.Length {
		t.Error("rest pose should initialize to the live pose")
	}
}

// Tail must always equal head + length·(cos angle, sin angle), after any
// mutation.
func TestTailInvariantAfterMutations(t *testing.T) {
	st, s, a, b := newTestRig(t)

	st.MoveBone(s.ID, a.ID, ModeAnimate, geom.Pt(3, -2))
	st.RotateBone(s.ID, a.ID, ModeAnimate, 1.25)
	st.ScaleBone(s.ID, b.ID, ModeEdit, 7)
	st.RecordKeyframe(s.ID, 0, AllChannels)
	st.ApplyPoseAtFrame(0)

	for _, bone := range s.Bones {
		want := bone.Head.Add(geom.Pt(bone.Length, 0).Rotate(bone.Angle))
		if !almostPt(bone.Tail(), want) {
			t.Errorf("bone %s: Tail() = %v, want %v", bone.Name, bone.Tail(), want)
		}
	}
}

func TestMutationsOnUnknownIDsAreNoOps(t *testing.T) {
	st, s, a, _ := newTestRig(t)
	before := *a

	st.MoveBone("nope", a.ID, ModeAnimate, geom.Pt(99, 99))
	st.MoveBone(s.ID, "nope", ModeAnimate, geom.Pt(99, 99))
	st.RenameBone(s.ID, "nope", "x")
	st.DeleteBone(s.ID, "nope")
	st.DeleteBone("nope", a.ID)
	st.SetParent(s.ID, a.ID, "nope")

	if *a != before {
		t.Error("operations on unknown ids must not mutate state")
	}
	if a.ParentID != "" {
		t.Error("SetParent to an unknown parent must be a no-op")
	}
}

func TestDeleteBoneReparentsChildren(t *testing.T) {
	st, s, a, b := newTestRig(t)
	c := st.AddBone(s.ID, "C", geom.Pt(20, 0), geom.Pt(30, 0))
	st.SetParent(s.ID, c.ID, b.ID)

	st.DeleteBone(s.ID, b.ID)

	if s.Bone(b.ID) != nil {
		t.Fatal("deleted bone still present")
	}
	if c.ParentID != a.ID {
		t.Errorf("child reparented to %q, want grandparent %q", c.ParentID, a.ID)
	}

	st.DeleteBone(s.ID, a.ID)
	if c.ParentID != "" {
		t.Errorf("deleting a root should detach its children, got parent %q", c.ParentID)
	}
}

func TestDeleteBoneDropsBindings(t *testing.T) {
	st, s, a, b := newTestRig(t)

	st.BindPoint("s1", "layer-1", 0, a.ID, 0.5)
	st.BindPoint("s1", "layer-1", 0, b.ID, 0.5)
	st.BindLayer("layer-2", a.ID, s.ID, nil)

	st.DeleteBone(s.ID, a.ID)

	pb := st.PointBindings("s1")
	if _, ok := pb[0][a.ID]; ok {
		t.Error("point binding to deleted bone survived")
	}
	if _, ok := pb[0][b.ID]; !ok {
		t.Error("point binding to surviving bone was dropped")
	}
	if _, ok := st.LayerBindingFor("layer-2"); ok {
		t.Error("layer binding to deleted bone survived")
	}
}

func TestDeleteSkeleton(t *testing.T) {
	st, s, a, _ := newTestRig(t)
	st.BindPoint("s1", "l", 0, a.ID, 1)
	st.RecordKeyframe(s.ID, 3, AllChannels)

	st.DeleteSkeleton(s.ID)

	if st.Skeleton(s.ID) != nil || len(st.Skeletons()) != 0 {
		t.Error("skeleton still present after delete")
	}
	if len(st.PointBindings("s1")) != 0 {
		t.Error("point bindings survived skeleton delete")
	}
	if st.HasKeyframes() {
		t.Error("keyframes survived skeleton delete")
	}
}

func TestPropertySetters(t *testing.T) {
	st, s, a, _ := newTestRig(t)

	st.RenameBone(s.ID, a.ID, "thigh")
	st.SetColor(s.ID, a.ID, "#ff0000")
	st.SetStrength(s.ID, a.ID, 0.4)
	st.SetFlexiRadius(s.ID, a.ID, 25)
	st.SetZOrder(s.ID, a.ID, 7)

	if a.Name != "thigh" || a.Color != "#ff0000" || a.Strength != 0.4 || a.FlexiRadius != 25 || a.ZOrder != 7 {
		t.Errorf("setters did not stick: %+v", a)
	}
}
