package rig

import (
	"math"
	"testing"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

func TestFlexiBindWeightsPoints(t *testing.T) {
	st, s, a, b := newTestRig(t)
	st.SetFlexiRadius(s.ID, a.ID, 5)
	st.SetFlexiRadius(s.ID, b.ID, 5)

	content := []stroke.Stroke{
		strokeOn("l1", "s1",
			geom.Pt(5, 2),    // near bone A only
			geom.Pt(10, 3),   // near the joint: both bones in range
			geom.Pt(500, 500) /* out of range of everything */),
	}
	st.FlexiBind(content, s.ID)

	pb := st.PointBindings("s1")

	if len(pb[0]) != 1 || pb[0][a.ID] == 0 {
		t.Errorf("point 0 bindings = %v, want bone A only", pb[0])
	}
	if math.Abs(pb[0][a.ID]-1) > testEps {
		t.Errorf("sole influencing bone weight = %v, want 1 after normalization", pb[0][a.ID])
	}

	if len(pb[1]) != 2 {
		t.Fatalf("point 1 bindings = %v, want both bones", pb[1])
	}
	sum := pb[1][a.ID] + pb[1][b.ID]
	if math.Abs(sum-1) > testEps {
		t.Errorf("weights sum = %v, want 1", sum)
	}

	if _, ok := pb[2]; ok {
		t.Errorf("point 2 bindings = %v, want none (out of range)", pb[2])
	}
}

// For any point with nonzero raw influence, retained weights sum to ≤ 1 and
// the discarded mass stays under influencingBones × 1%.
func TestFlexiBindNormalizationBudget(t *testing.T) {
	st := NewStore()
	s := st.CreateSkeleton("l", "")
	// Bone near is 1 unit from the point; bone far sits at the edge of its
	// capture radius so its normalized weight lands under the 1% floor.
	near := st.AddBone(s.ID, "near", geom.Pt(0, 0), geom.Pt(10, 0))
	far := st.AddBone(s.ID, "far", geom.Pt(0, 58), geom.Pt(10, 58))
	st.SetFlexiRadius(s.ID, near.ID, 60)
	st.SetFlexiRadius(s.ID, far.ID, 60)
	content := []stroke.Stroke{strokeOn("l", "s1", geom.Pt(5, 1))}

	st.FlexiBind(content, s.ID)

	pb := st.PointBindings("s1")[0]
	if _, ok := pb[far.ID]; ok {
		t.Errorf("far bone weight %v stored, want dropped under the 1%% floor", pb[far.ID])
	}
	sum := 0.0
	for _, w := range pb {
		if w <= minFlexiWeight {
			t.Errorf("stored weight %v at or under the 1%% floor", w)
		}
		sum += w
	}
	if sum > 1+testEps {
		t.Errorf("retained weights sum = %v, must be ≤ 1", sum)
	}
	if discarded := 1 - sum; discarded >= 2*minFlexiWeight {
		t.Errorf("discarded weight = %v, must stay under bones×0.01", discarded)
	}
}

func TestFlexiBindRespectsStrengthThreshold(t *testing.T) {
	st, s, a, b := newTestRig(t)
	st.SetFlexiRadius(s.ID, a.ID, 10)
	st.SetFlexiRadius(s.ID, b.ID, 10)
	st.SetStrength(s.ID, b.ID, 0.2) // capture range shrinks to 2 units

	content := []stroke.Stroke{strokeOn("l", "s1", geom.Pt(22, 8))}
	st.FlexiBind(content, s.ID)

	pb := st.PointBindings("s1")
	if len(pb) != 0 {
		t.Errorf("bindings = %v, want none: point is outside radius×strength", pb)
	}
}

// Flexi-bind is a toggle with exactly one level of undo: toggling off
// restores the pre-activation snapshot.
func TestToggleFlexiBindRestoresSnapshot(t *testing.T) {
	st, s, a, b := newTestRig(t)
	st.SetFlexiRadius(s.ID, a.ID, 50)
	st.SetFlexiRadius(s.ID, b.ID, 0) // out of the running
	content := []stroke.Stroke{strokeOn("l1", "s1", geom.Pt(5, 1))}

	st.BindPoint("s1", "l1", 0, a.ID, 0.123)
	st.BindLayer("L2", a.ID, s.ID, nil)

	st.ToggleFlexiBind(content, s.ID)
	if !st.FlexiBindActive() {
		t.Fatal("toggle on did not activate")
	}
	if w := st.PointBindings("s1")[0][a.ID]; math.Abs(w-1) > testEps {
		t.Errorf("computed weight = %v, want 1", w)
	}

	st.ToggleFlexiBind(content, s.ID)
	if st.FlexiBindActive() {
		t.Fatal("toggle off did not deactivate")
	}
	if w := st.PointBindings("s1")[0][a.ID]; w != 0.123 {
		t.Errorf("restored weight = %v, want snapshot 0.123", w)
	}
	if _, ok := st.LayerBindingFor("L2"); !ok {
		t.Error("layer binding not restored from snapshot")
	}
}
