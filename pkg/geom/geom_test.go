package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func almost(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name  string
		p     Point
		angle float64
		want  Point
	}{
		{"quarter turn", Pt(1, 0), math.Pi / 2, Pt(0, 1)},
		{"half turn", Pt(1, 0), math.Pi, Pt(-1, 0)},
		{"negative quarter", Pt(0, 1), -math.Pi / 2, Pt(1, 0)},
		{"identity", Pt(3, 4), 0, Pt(3, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Rotate(tt.angle)
			if !almost(got.X, tt.want.X) || !almost(got.Y, tt.want.Y) {
				t.Errorf("Rotate(%v, %v) = %v, want %v", tt.p, tt.angle, got, tt.want)
			}
		})
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{math.Pi / 4, math.Pi / 4},
		{2 * math.Pi, 0},
		{-math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); !almost(got, tt.want) {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLerpAngleShortestArc(t *testing.T) {
	// 350° to 10° should pass through 0°, not 180°.
	a := 350 * math.Pi / 180
	b := 10 * math.Pi / 180
	mid := LerpAngle(a, b, 0.5)
	if !almost(WrapAngle(mid), 0) {
		t.Errorf("LerpAngle(350°, 10°, 0.5) = %v rad, want 0", WrapAngle(mid))
	}
}

func TestDistToSegment(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Pt(5, 3), 3},
		{"beyond end", Pt(13, 4), 5},
		{"before start", Pt(-3, -4), 5},
		{"on segment", Pt(7, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistToSegment(tt.p, a, b); !almost(got, tt.want) {
				t.Errorf("DistToSegment(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestDistToSegmentDegenerate(t *testing.T) {
	p := Pt(3, 4)
	if got := DistToSegment(p, Pt(0, 0), Pt(0, 0)); !almost(got, 5) {
		t.Errorf("zero-length segment: got %v, want 5", got)
	}
}

func TestAngle(t *testing.T) {
	if got := Angle(Pt(0, 0), Pt(0, 5)); !almost(got, math.Pi/2) {
		t.Errorf("Angle straight up = %v, want π/2", got)
	}
	if got := Angle(Pt(1, 1), Pt(2, 2)); !almost(got, math.Pi/4) {
		t.Errorf("Angle diagonal = %v, want π/4", got)
	}
}
