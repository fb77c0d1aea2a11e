// Package vehicle implements the self-contained vehicle: kinematics,
// lane-following control law, and the radar-based right-of-way protocol
// that lets independently driven vehicles share intersections.
package vehicle

import (
	"math"

	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/path"
	"github.com/lixenwraith/citygrid/radar"
)

// crossRecord is a remembered location where this vehicle's path
// intersects another vehicle's, the angle between the two routes there,
// and where the other vehicle was last spotted when it was recorded.
type crossRecord struct {
	Location  radar.Vector
	Angle     float64
	SpottedAt radar.Vector
}

// Vehicle is one simulated car: its own position, velocity, path
// progress, and right-of-way bookkeeping, all owned directly rather than
// split across component stores.
type Vehicle struct {
	Kind  parameter.Kind
	Color string

	Pos      radar.Vector
	Velocity radar.Vector
	Rotation float64

	Mass, Width, Length, MaxSpeed, MinRadius float64
	FPositive, FNegative, FNormal            float64

	Rushing       bool
	defaultSpeeds parameter.SpeedTriple
	defaultForces parameter.ForceTriple

	Path  *path.Path
	Radar *radar.Radar

	Slows, Yields, Blocked, Commited bool
	Limit                            *float64

	ToFollow        *Vehicle
	toFollowSpotted radar.Vector

	Blocking []*Vehicle
	ToIgnore []*Vehicle

	Intersections map[*Vehicle]crossRecord
	YieldCoords   map[*Vehicle]crossRecord

	Relevant   []radar.Vector
	First, Last radar.Vector

	Counter      int
	TriedAlready bool
	Done         bool
}

// New constructs a vehicle of the given kind, with every physical
// parameter and the calm-mode speed/force defaults set.
func New(kind parameter.Kind, color string) *Vehicle {
	v := &Vehicle{
		Kind:  kind,
		Color: color,
		Radar: radar.New(),
	}

	v.Mass = parameter.Mass[kind]
	base := parameter.VehicleSize
	v.Width = parameter.WidthFactor[kind] * base
	v.Length = v.Width * parameter.LengthWidthRatio[kind]
	v.MaxSpeed = parameter.MaxSpeed[kind]
	v.MinRadius = parameter.MinTurnRadius[kind]
	v.FPositive = parameter.BaseAccelerateForce
	v.FNormal = parameter.BaseNormalForce
	v.FNegative = parameter.BaseBrakeForce

	v.setDefaultSpeeds()
	v.setDefaultForces()
	return v
}

// Position returns v's current position, satisfying radar.Target.
func (v *Vehicle) Position() radar.Vector { return v.Pos }

// Spawn assigns p as v's route, places it at the path's spawn pose, and
// runs one Update pass so every derived attribute is populated before
// the city controller starts calling Drive.
func (v *Vehicle) Spawn(p *path.Path) {
	v.Path = p
	v.Pos = radar.Vector(p.SpawnPosition)
	angle := p.SpawnRotation * math.Pi / 180
	v.Velocity = radar.Vector{X: 0.02 * math.Cos(angle), Y: 0.02 * math.Sin(angle)}
	v.Rotation = p.SpawnRotation

	v.TriedAlready = false
	v.Intersections = make(map[*Vehicle]crossRecord)
	v.YieldCoords = make(map[*Vehicle]crossRecord)

	v.Update()
}

// Speed returns the velocity magnitude.
func (v *Vehicle) Speed() float64 {
	return math.Sqrt(v.Velocity.X*v.Velocity.X + v.Velocity.Y*v.Velocity.Y)
}

// IsBlocking reports whether other is in v's blocking list.
func (v *Vehicle) IsBlocking(other *Vehicle) bool {
	for _, b := range v.Blocking {
		if b == other {
			return true
		}
	}
	return false
}

// ChangeMode toggles v between calm and rush-hour speed/force tables.
func (v *Vehicle) ChangeMode() {
	v.Rushing = !v.Rushing
	v.setDefaultSpeeds()
	v.setDefaultForces()
}

func (v *Vehicle) setDefaultSpeeds() {
	if v.Rushing {
		v.defaultSpeeds = parameter.RushSpeeds[v.Kind]
	} else {
		v.defaultSpeeds = parameter.CalmSpeeds[v.Kind]
	}
}

func (v *Vehicle) setDefaultForces() {
	if v.Rushing {
		v.defaultForces = parameter.RushForces
	} else {
		v.defaultForces = parameter.CalmForces
	}
}

// Finish marks the vehicle as having reached its goal.
func (v *Vehicle) Finish() { v.Done = true }

// Drive runs one full tick: refresh derived state via Update, integrate
// position via run, then apply the speed ceiling implied by the current
// yield/slow/block/limit state and steer toward or along the path.
func (v *Vehicle) Drive() {
	v.Update()
	v.run()

	offroad, turn, cruise := v.defaultSpeeds.Offroad, v.defaultSpeeds.Turn, v.defaultSpeeds.Cruise

	switch {
	case v.Yields || v.Blocked:
		cruise, turn, offroad = 0, 0, 0
	case v.Slows:
		cruise /= 2
		turn = 2 * turn / 3
		offroad = 2 * offroad / 3
	}

	if v.Limit != nil {
		cruise = math.Min(cruise, *v.Limit)
		turn = math.Min(turn, *v.Limit)
		offroad = math.Min(offroad, *v.Limit)
	}

	switch {
	case !v.onPath():
		v.seek(offroad)
	case !v.onCourse():
		v.regainCourse(turn, cruise)
	default:
		v.achieveSpeed(cruise)
	}
}

// Update refreshes every attribute derived from the vehicle's current
// position before Drive decides how to move it: rotation, radar,
// path progress, the relevant coordinate window, intersection
// classification, and the yield/block/commit flags.
func (v *Vehicle) Update() {
	v.updateRotation()
	v.Radar.SetRadar(v.Pos, v.Rotation)
	v.updatePathProgress()
	v.setRelevantCoordinates()
	v.setIntersections()

	v.Limit = nil
	v.Slows = false
	v.Yields = false
	v.Commited = false
	v.Blocked = false
	v.Blocking = nil

	if v.ToFollow != nil {
		v.setLimit()
	}
	if len(v.Intersections) > 0 {
		v.updateBlocking()
	}
	if !v.Rushing && len(v.YieldCoords) > 0 {
		v.updateYielding()
	}
	if !v.Blocked {
		v.solveStandstill()
	}
	if v.Blocked {
		v.TriedAlready = false
	}

	v.Counter++
}

// run integrates position forward by the current velocity, scaled to
// the simulation time step. Must be called every tick Drive is — if it
// stops running, the vehicle appears to hit an invisible wall.
func (v *Vehicle) run() {
	v.Pos.X += parameter.TileSize * v.scale(v.Velocity.X) / 100
	v.Pos.Y -= parameter.TileSize * v.scale(v.Velocity.Y) / 100
}

func (v *Vehicle) updateRotation() {
	speed := v.Speed()
	if speed <= parameter.SpeedMatchQuantum {
		return
	}
	a := math.Acos(v.Velocity.X / speed) * 180 / math.Pi
	if v.Velocity.Y >= 0 {
		v.Rotation = a
	} else {
		v.Rotation = 360 - a
	}
}

func (v *Vehicle) scale(base float64) float64 {
	return 0.01 * base * parameter.TimeStepMillis
}

// isAhead reports whether target lies in v's forward half-plane, as seen
// by its radar's current position and heading.
func (v *Vehicle) isAhead(target radar.Vector) bool {
	return radar.IsAhead(v.Radar.Location, v.Radar.Direction, target)
}

// vec converts a path sample (graph-space point) to the radar package's
// vector type; both are plain (X, Y) pairs, just named differently by
// their owning packages.
func vec(p path.Point) radar.Vector {
	return radar.Vector{X: p.X, Y: p.Y}
}
