// Package radar implements the vector geometry and right-of-way
// clearance rules vehicles use to detect and react to one another.
// Every vehicle owns one Radar, refreshed each tick with its current
// pose and the set of other vehicles within range.
package radar

import "math"

// Vector is a 2D displacement or direction.
type Vector struct{ X, Y float64 }

// Distance returns the straight-line distance between two points.
func Distance(p1, p2 Vector) float64 {
	dx, dy := p1.X-p2.X, p1.Y-p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Magnitude returns the length of v.
func Magnitude(v Vector) float64 {
	return Distance(v, Vector{})
}

// Normalize scales v to unit length, or returns the zero vector if v has
// zero magnitude.
func Normalize(v Vector) Vector {
	m := Magnitude(v)
	if m == 0 {
		return Vector{}
	}
	return Vector{X: v.X / m, Y: v.Y / m}
}

// SetVector builds the displacement vector from p1 to p2.
func SetVector(p1, p2 Vector) Vector {
	return Vector{X: p2.X - p1.X, Y: p2.Y - p1.Y}
}

// Direction returns the angle of v in degrees, in [0, 360), or false if v
// has zero magnitude.
func Direction(v Vector) (float64, bool) {
	m := Magnitude(v)
	if m == 0 {
		return 0, false
	}
	a := math.Acos(v.X / m)
	deg := a * 180 / math.Pi
	if v.Y >= 0 {
		return deg, true
	}
	return 360 - deg, true
}

// CheckAngle returns the signed angle from vOriginal to vNew, in
// [-180, 180]: positive is a counter-clockwise turn.
func CheckAngle(vOriginal, vNew Vector) float64 {
	dir1, _ := Direction(vOriginal)
	dir2, _ := Direction(vNew)
	delta := dir2 - dir1

	if math.Abs(delta) <= 180 {
		return delta
	}
	if delta > 0 {
		return delta - 360
	}
	return delta + 360
}

// IsAhead reports whether targetLocation lies in the forward half-plane
// of a radar facing `direction` and positioned at `location`.
func IsAhead(location, direction, targetLocation Vector) bool {
	vTarget := SetVector(location, targetLocation)
	vTarget.Y = -vTarget.Y
	angle := CheckAngle(direction, vTarget)
	return math.Abs(angle) <= 90
}

// IsBehind is the complement of IsAhead.
func IsBehind(location, direction, targetLocation Vector) bool {
	return !IsAhead(location, direction, targetLocation)
}
