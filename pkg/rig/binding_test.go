package rig

import (
	"testing"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

func strokeOn(layerID, id string, pts ...geom.Point) stroke.Stroke {
	s := stroke.Stroke{ID: id, LayerID: layerID}
	for _, p := range pts {
		s.Points = append(s.Points, stroke.Point{Anchor: p})
	}
	return s
}

func TestBindPointUpserts(t *testing.T) {
	st, _, a, b := newTestRig(t)

	st.BindPoint("s1", "l1", 0, a.ID, 0.3)
	st.BindPoint("s1", "l1", 0, b.ID, 0.7)
	st.BindPoint("s1", "l1", 0, a.ID, 0.5) // rebind replaces, not duplicates

	pb := st.PointBindings("s1")
	if len(pb[0]) != 2 {
		t.Fatalf("bindings at point 0 = %v, want 2 bones", pb[0])
	}
	if pb[0][a.ID] != 0.5 || pb[0][b.ID] != 0.7 {
		t.Errorf("weights = %v, want a:0.5 b:0.7", pb[0])
	}
}

func TestBindPointUnknownBoneIsNoOp(t *testing.T) {
	st, _, _, _ := newTestRig(t)
	st.BindPoint("s1", "l1", 0, "ghost", 1)
	if len(st.PointBindings("s1")) != 0 {
		t.Error("binding to an unknown bone must be ignored")
	}
}

func TestUnbind(t *testing.T) {
	st, _, a, _ := newTestRig(t)
	st.BindPoint("s1", "l1", 0, a.ID, 1)
	st.BindPoint("s1", "l1", 1, a.ID, 1)
	st.BindPoint("s2", "l1", 0, a.ID, 1)

	st.UnbindPoint("s1", 0)
	if _, ok := st.PointBindings("s1")[0]; ok {
		t.Error("UnbindPoint left the binding in place")
	}
	st.UnbindStroke("s1")
	if len(st.PointBindings("s1")) != 0 {
		t.Error("UnbindStroke left bindings in place")
	}
	if len(st.PointBindings("s2")) != 1 {
		t.Error("UnbindStroke removed another stroke's bindings")
	}
}

// The two binding modes are mutually exclusive per layer: binding the layer
// clears point bindings on its strokes, and binding a point clears the
// layer's entry.
func TestLayerAndPointBindingExclusivity(t *testing.T) {
	st, s, a, b := newTestRig(t)
	content := []stroke.Stroke{
		strokeOn("L", "s1", geom.Pt(0, 0), geom.Pt(1, 0)),
		strokeOn("other", "s2", geom.Pt(5, 5)),
	}
	st.BindPoint("s1", "L", 0, a.ID, 1)
	st.BindPoint("s2", "other", 0, a.ID, 1)

	st.BindLayer("L", b.ID, s.ID, content)

	if len(st.PointBindings("s1")) != 0 {
		t.Error("layer binding must clear point bindings for strokes on the layer")
	}
	if len(st.PointBindings("s2")) != 1 {
		t.Error("layer binding cleared bindings on an unrelated layer")
	}
	if lb, ok := st.LayerBindingFor("L"); !ok || lb.BoneID != b.ID || lb.SkeletonID != s.ID {
		t.Errorf("layer binding = %+v ok=%v", lb, ok)
	}

	// Binding any point on the layer removes the layer entry again.
	st.BindPoint("s1", "L", 1, a.ID, 0.5)
	if _, ok := st.LayerBindingFor("L"); ok {
		t.Error("point binding must clear the layer's binding entry")
	}
}

func TestBindLayerReplacesPrior(t *testing.T) {
	st, s, a, b := newTestRig(t)
	st.BindLayer("L", a.ID, s.ID, nil)
	st.BindLayer("L", b.ID, s.ID, nil)

	lb, ok := st.LayerBindingFor("L")
	if !ok || lb.BoneID != b.ID {
		t.Errorf("binding = %+v, want last write (bone b)", lb)
	}

	st.UnbindLayer("L")
	if _, ok := st.LayerBindingFor("L"); ok {
		t.Error("UnbindLayer left the entry in place")
	}
}

func TestBindLayerUnknownIDsAreNoOps(t *testing.T) {
	st, s, a, _ := newTestRig(t)
	st.BindLayer("L", a.ID, "ghost", nil)
	st.BindLayer("L", "ghost", s.ID, nil)
	if _, ok := st.LayerBindingFor("L"); ok {
		t.Error("binding with unknown skeleton or bone must be ignored")
	}
}
