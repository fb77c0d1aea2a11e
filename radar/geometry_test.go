package radar

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDirection(t *testing.T) {
	cases := []struct {
		v    Vector
		want float64
	}{
		{Vector{1, 0}, 0},
		{Vector{0, 1}, 90},
		{Vector{-1, 0}, 180},
		{Vector{0, -1}, 270},
	}
	for _, c := range cases {
		got, ok := Direction(c.v)
		if !ok {
			t.Fatalf("Direction(%v): want ok", c.v)
		}
		if !almostEqual(got, c.want) {
			t.Errorf("Direction(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestDirectionZeroVector(t *testing.T) {
	if _, ok := Direction(Vector{}); ok {
		t.Error("Direction of zero vector should report not-ok")
	}
}

func TestCheckAngleWraps(t *testing.T) {
	// From pointing right (0) to pointing up (90) is a +90 turn.
	got := CheckAngle(Vector{1, 0}, Vector{0, 1})
	if !almostEqual(got, 90) {
		t.Errorf("CheckAngle = %v, want 90", got)
	}

	// From pointing up (90) to pointing right (0) is a -90 turn.
	got = CheckAngle(Vector{0, 1}, Vector{1, 0})
	if !almostEqual(got, -90) {
		t.Errorf("CheckAngle = %v, want -90", got)
	}
}

func TestIsAheadBehind(t *testing.T) {
	location := Vector{0, 0}
	direction := Vector{1, 0} // facing +x

	if !IsAhead(location, direction, Vector{10, 0}) {
		t.Error("target directly ahead should be ahead")
	}
	if !IsBehind(location, direction, Vector{-10, 0}) {
		t.Error("target directly behind should be behind")
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(Vector{3, 4})
	if !almostEqual(Magnitude(got), 1) {
		t.Errorf("Normalize magnitude = %v, want 1", Magnitude(got))
	}
	if z := Normalize(Vector{}); z != (Vector{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", z)
	}
}
