package vehicle

import (
	"testing"

	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/path"
	"github.com/lixenwraith/citygrid/radar"
)

func straightPath(n int, step float64) *path.Path {
	samples := make([]path.Point, n)
	for i := 0; i < n; i++ {
		samples[i] = path.Point{X: step * float64(i), Y: 0}
	}
	return &path.Path{
		Pieces: []path.Piece{
			{Samples: samples},
			{Samples: samples},
			{Samples: samples},
		},
		SpawnPosition: samples[0],
		SpawnRotation: 0,
		Goal:          samples[n-1],
		Radius:        path.RadiusForKind(parameter.Sedan),
	}
}

func TestNewSetsPhysicalParameters(t *testing.T) {
	v := New(parameter.Sedan, "red")
	if v.Mass != parameter.Mass[parameter.Sedan] {
		t.Errorf("Mass = %v, want %v", v.Mass, parameter.Mass[parameter.Sedan])
	}
	if v.MaxSpeed != parameter.MaxSpeed[parameter.Sedan] {
		t.Errorf("MaxSpeed = %v, want %v", v.MaxSpeed, parameter.MaxSpeed[parameter.Sedan])
	}
	if v.Radar == nil {
		t.Fatal("New should construct a Radar")
	}
}

func TestSpawnPlacesVehicleAtPathStart(t *testing.T) {
	v := New(parameter.Sedan, "blue")
	p := straightPath(20, 10)
	v.Spawn(p)

	if v.Pos != vec(p.SpawnPosition) {
		t.Errorf("Pos = %v, want %v", v.Pos, p.SpawnPosition)
	}
	if v.Done {
		t.Error("a freshly spawned vehicle should not be Done")
	}
}

func TestAccelerateGrowsSpeedTowardMaxSpeed(t *testing.T) {
	v := New(parameter.Sedan, "red")
	v.Rotation = 0
	before := v.Speed()
	v.accelerate(v.defaultForces.Accelerate)
	if v.Speed() <= before {
		t.Errorf("Speed after accelerate = %v, want > %v", v.Speed(), before)
	}
	if v.Speed() > v.MaxSpeed {
		t.Errorf("Speed after accelerate = %v, exceeds MaxSpeed %v", v.Speed(), v.MaxSpeed)
	}
}

func TestAccelerateAtMaxSpeedIsNoop(t *testing.T) {
	v := New(parameter.Sedan, "red")
	v.Velocity = radar.Vector{X: v.MaxSpeed}
	v.accelerate(v.defaultForces.Accelerate)
	if v.Velocity.X != v.MaxSpeed {
		t.Errorf("Velocity.X = %v, want unchanged %v", v.Velocity.X, v.MaxSpeed)
	}
}

func TestDecelerateShrinksSpeedTowardZero(t *testing.T) {
	v := New(parameter.Sedan, "red")
	v.Velocity = radar.Vector{X: 5}
	v.decelerate(v.defaultForces.Brake)
	if v.Speed() >= 5 {
		t.Errorf("Speed after decelerate = %v, want < 5", v.Speed())
	}
}

func TestDecelerateStoppedIsNoop(t *testing.T) {
	v := New(parameter.Sedan, "red")
	v.decelerate(v.defaultForces.Brake)
	if v.Speed() != 0 {
		t.Errorf("Speed = %v, want 0", v.Speed())
	}
}

func TestSteerLeftStoppedIsNoop(t *testing.T) {
	v := New(parameter.Sedan, "red")
	before := v.Velocity
	v.steerLeft(v.defaultForces.Normal)
	if v.Velocity != before {
		t.Error("steerLeft should not change velocity of a stopped vehicle")
	}
}

func TestSteerLeftRotatesVelocityCounterClockwise(t *testing.T) {
	v := New(parameter.Sedan, "red")
	v.Velocity = radar.Vector{X: 5, Y: 0}
	v.Rotation = 0
	before, _ := radar.Direction(v.Velocity)
	v.steerLeft(v.defaultForces.Normal)
	after, ok := radar.Direction(v.Velocity)
	if !ok {
		t.Fatal("expected nonzero velocity after steering")
	}
	if after <= before {
		t.Errorf("direction after steerLeft = %v, want > %v", after, before)
	}
}

func TestSteerRightRotatesVelocityClockwise(t *testing.T) {
	v := New(parameter.Sedan, "red")
	v.Velocity = radar.Vector{X: 5, Y: 0}
	v.Rotation = 0
	v.steerRight(v.defaultForces.Normal)
	after, ok := radar.Direction(v.Velocity)
	if !ok {
		t.Fatal("expected nonzero velocity after steering")
	}
	if after < 270 && after > 90 {
		t.Errorf("direction after steerRight = %v, want near 0/360", after)
	}
}

func TestIsBlockingReflectsBlockingList(t *testing.T) {
	a := New(parameter.Sedan, "red")
	b := New(parameter.Sedan, "blue")
	if a.IsBlocking(b) {
		t.Error("fresh vehicles should not block one another")
	}
	a.Blocking = append(a.Blocking, b)
	if !a.IsBlocking(b) {
		t.Error("b should now be in a's blocking list")
	}
}

func TestChangeModeSwapsSpeedAndForceTables(t *testing.T) {
	v := New(parameter.Sedan, "red")
	calmSpeeds, calmForces := v.defaultSpeeds, v.defaultForces
	v.ChangeMode()
	if !v.Rushing {
		t.Fatal("ChangeMode should flip Rushing to true")
	}
	if v.defaultSpeeds == calmSpeeds {
		t.Error("ChangeMode should swap to the rush-hour speed table")
	}
	if v.defaultForces == calmForces {
		t.Error("ChangeMode should swap to the rush-hour force table")
	}
	if v.FPositive != parameter.BaseAccelerateForce {
		t.Error("FPositive is a fixed cap and should not change with mode")
	}
}

func TestRunIntegratesPositionByVelocity(t *testing.T) {
	v := New(parameter.Sedan, "red")
	v.Velocity = radar.Vector{X: 10, Y: 0}
	before := v.Pos
	v.run()
	if v.Pos.X <= before.X {
		t.Errorf("Pos.X after run = %v, want > %v", v.Pos.X, before.X)
	}
}

func TestUpdatePathProgressAdvancesSampleIndex(t *testing.T) {
	v := New(parameter.Sedan, "red")
	p := straightPath(20, 10)
	v.Spawn(p)

	v.Pos = radar.Vector{X: 55, Y: 0}
	v.setRelevantCoordinates()
	v.updatePathProgress()

	if v.Path.SampleIndex == 0 {
		t.Error("updatePathProgress should have advanced past the first sample")
	}
}

func TestFinishSetsDone(t *testing.T) {
	v := New(parameter.Sedan, "red")
	if v.Done {
		t.Fatal("vehicle should not start Done")
	}
	v.Finish()
	if !v.Done {
		t.Error("Finish should set Done")
	}
}
