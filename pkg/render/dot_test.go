package render

import (
	"strings"
	"testing"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig"
)

func graphTestSkeleton(t *testing.T) (*rig.Store, *rig.Skeleton, *rig.Bone, *rig.Bone) {
	t.Helper()
	st := rig.NewStore()
	s := st.CreateSkeleton("figure", "Figure")
	hip := st.AddBone(s.ID, "hip", geom.Pt(0, 0), geom.Pt(10, 0))
	knee := st.AddBone(s.ID, "knee", geom.Pt(10, 0), geom.Pt(20, 0))
	st.SetParent(s.ID, knee.ID, hip.ID)
	return st, s, hip, knee
}

func TestToDOT(t *testing.T) {
	_, s, hip, knee := graphTestSkeleton(t)

	dot := ToDOT(s, GraphOptions{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("missing digraph header: %s", dot)
	}
	if !strings.Contains(dot, `"`+hip.ID+`" [label="hip"`) {
		t.Errorf("hip node missing: %s", dot)
	}
	if !strings.Contains(dot, `"`+hip.ID+`" -> "`+knee.ID+`";`) {
		t.Errorf("parent edge missing: %s", dot)
	}
	if strings.Contains(dot, `-> "`+hip.ID+`"`) {
		t.Errorf("root bone should have no incoming edge: %s", dot)
	}
	if !strings.Contains(dot, `fillcolor="`+rig.DefaultColor+`"`) {
		t.Errorf("bone color missing: %s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	_, s, _, _ := graphTestSkeleton(t)

	plain := ToDOT(s, GraphOptions{})
	detailed := ToDOT(s, GraphOptions{Detailed: true})

	if strings.Contains(plain, "angle:") {
		t.Error("plain labels should omit pose values")
	}
	if !strings.Contains(detailed, "angle: 0.000") || !strings.Contains(detailed, "length: 10.0") {
		t.Errorf("detailed labels should include pose values: %s", detailed)
	}
	if !strings.Contains(detailed, "head: (0.0, 0.0)") {
		t.Errorf("detailed labels should include head position: %s", detailed)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 8.00 6.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 8.00 6.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if strings.Contains(out, "8pt") {
		t.Errorf("pt dimensions should be replaced: %s", out)
	}
	if !strings.Contains(out, "<g/></svg>") {
		t.Errorf("document body should be untouched: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte(`<svg><g/></svg>`)
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("svg without viewBox should pass through: %s", got)
	}
}
