package radar

import (
	"math"

	"github.com/lixenwraith/citygrid/parameter"
)

// Target is anything a Radar can track: every other vehicle in the city.
type Target interface {
	Position() Vector
}

// Radar tracks every vehicle in the city as a potential target and
// narrows them down, each tick, to the ones within range of its owner.
// It is refreshed via SetRadar every tick to stay at the owner's
// current position and heading.
type Radar struct {
	Range     float64
	Location  Vector
	Rotation  float64
	Direction Vector

	targets []Target
	visible []Target
}

// New returns a Radar with the standard detection range.
func New() *Radar {
	return &Radar{Range: parameter.RadarRange}
}

// SetRadar updates the radar's position and heading and recomputes the
// set of targets currently within range.
func (r *Radar) SetRadar(location Vector, rotation float64) {
	r.Location = location
	r.Rotation = rotation
	r.Direction = Vector{X: 10 * cosDeg(rotation), Y: 10 * sinDeg(rotation)}

	r.visible = r.visible[:0]
	for _, t := range r.targets {
		if Distance(r.Location, t.Position()) <= r.Range {
			r.visible = append(r.visible, t)
		}
	}
}

// AddTarget registers a vehicle as trackable, called whenever a new
// vehicle spawns.
func (r *Radar) AddTarget(t Target) {
	r.targets = append(r.targets, t)
}

// RemoveTarget drops a vehicle once it has reached its goal.
func (r *Radar) RemoveTarget(t Target) {
	for i, existing := range r.targets {
		if existing == t {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return
		}
	}
}

// Visible returns the targets currently within radar range.
func (r *Radar) Visible() []Target {
	return r.visible
}

func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }

// CrossResult is the outcome of Intersects: whether the nearby vehicle
// must yield, the location the two paths cross at, and the signed angle
// between them at that point.
type CrossResult struct {
	// Found reports whether the two paths come within IntersectMinDistance
	// of each other anywhere in the scanned window.
	Found bool

	// Identical reports a found crossing where the two paths are locally
	// the same lane, rather than a true angled intersection — Angle is
	// meaningless when this is set.
	Identical bool

	// MustYield reports whether the nearby vehicle has the right of way
	// at Location.
	MustYield bool

	Location Vector
	Angle    float64
}

// Intersects scans ownCoordinates and targetCoordinates (both dense
// polyline samples, most recently-traveled first) for a point where the
// two paths come within IntersectMinDistance of each other. crossLocation,
// if non-nil, is a previously found crossing point used to skip ahead in
// both sequences rather than rescanning from the start.
//
// When the paths cross, the signed angle between them at the crossing
// determines right of way: a nearby vehicle approaching from the right
// (or at a near-reversal angle) must be yielded to.
func Intersects(ownCoordinates, targetCoordinates []Vector, crossLocation *Vector) CrossResult {
	minDistance := parameter.IntersectMinDistance
	identicalDistance := parameter.IntersectIdenticalDistance
	limitI := len(ownCoordinates) - 4
	limitJ := len(targetCoordinates) - 4

	startI, startJ := 0, 0
	if crossLocation != nil {
		startI, startJ = firstIndexes(ownCoordinates, targetCoordinates, *crossLocation, limitI, limitJ, minDistance)
	}

	for i := startI; i < limitI-4; i++ {
		for j := startJ; j < limitJ; j++ {
			if Distance(ownCoordinates[i], targetCoordinates[j]) < minDistance {
				crossPoint := ownCoordinates[i]
				if identicalPaths(ownCoordinates, targetCoordinates, i, j, identicalDistance) {
					return CrossResult{Found: true, Identical: true, Location: crossPoint}
				}
				vCurrent := SetVector(ownCoordinates[i], ownCoordinates[i+1])
				vNearby := SetVector(targetCoordinates[j], targetCoordinates[j+1])
				angleBetween := CheckAngle(vCurrent, vNearby)
				if angleBetween < 0 || abs(angleBetween) > 150 {
					return CrossResult{Found: true, MustYield: true, Location: crossPoint, Angle: angleBetween}
				}
				return CrossResult{Found: true, Location: crossPoint, Angle: angleBetween}
			}
		}
	}
	return CrossResult{}
}

func firstIndexes(own, target []Vector, crossLocation Vector, limitI, limitJ int, minDistance float64) (int, int) {
	startI := 0
	for own[startI] != crossLocation {
		startI++
		if startI == limitI {
			startI = 0
			break
		}
	}

	startJ := 0
	if startI != 0 {
		ownStart := own[startI]
		for Distance(ownStart, target[startJ]) > minDistance {
			startJ++
			if startJ == limitJ {
				startJ = 0
				break
			}
		}
	}
	return startI, startJ
}

func identicalPaths(own, target []Vector, i, j int, idd float64) bool {
	checks := [][2]int{
		{2, 1}, {3, 1}, {1, 2}, {2, 2}, {3, 2}, {1, 3}, {2, 3}, {3, 3},
	}
	for _, c := range checks {
		if Distance(own[i+c[0]], target[j+c[1]]) <= idd {
			return true
		}
	}
	return false
}
