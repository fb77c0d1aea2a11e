package city

import (
	"testing"

	"github.com/lixenwraith/citygrid/parameter"
)

func TestPauseSuspendsTick(t *testing.T) {
	c := newTestCity(t, 5)
	admitted := false
	for i := 0; i < 50 && !admitted; i++ {
		admitted = c.Spawn(parameter.Sedan, "red")
	}
	if !admitted {
		t.Fatal("setup: expected Spawn to succeed")
	}
	before := c.vehicles[0].Pos

	c.Pause()
	if !c.Paused() {
		t.Fatal("Paused should report true after Pause")
	}
	c.Tick()
	if c.vehicles[0].Pos != before {
		t.Error("Tick should not move any vehicle while paused")
	}

	c.Start()
	if c.Paused() {
		t.Error("Paused should report false after Start")
	}
}

func TestSetTargetCountClampsAndGatesSpawn(t *testing.T) {
	c := newTestCity(t, 5)
	c.SetTargetCount(0)

	if c.Spawn(parameter.Sedan, "red") {
		t.Error("Spawn should refuse to admit once the target count is 0")
	}

	c.SetTargetCount(1)
	admitted := false
	for i := 0; i < 50 && !admitted; i++ {
		admitted = c.Spawn(parameter.Sedan, "red")
	}
	if !admitted {
		t.Fatal("Spawn should succeed once the target count allows one vehicle")
	}
	if c.Spawn(parameter.Sedan, "blue") {
		t.Error("Spawn should refuse a second vehicle once target count of 1 is reached")
	}

	c.SetTargetCount(-1)
	if c.target != -1 {
		t.Errorf("target = %d, want -1 (cleared)", c.target)
	}
}

func TestSetTargetCountClampsAboveMaximum(t *testing.T) {
	c := newTestCity(t, 5)
	c.SetTargetCount(1_000_000)
	if c.target != c.Maximum(c.rushHour) {
		t.Errorf("target = %d, want clamped to Maximum() = %d", c.target, c.Maximum(c.rushHour))
	}
}

func TestToggleRushFlipsMode(t *testing.T) {
	c := newTestCity(t, 5)
	if c.RushHour() {
		t.Fatal("a fresh city should start in calm mode")
	}
	c.ToggleRush()
	if !c.RushHour() {
		t.Error("ToggleRush should flip to rush hour")
	}
}

func TestRequestNewLayoutReplacesGridAndClearsVehicles(t *testing.T) {
	c := newTestCity(t, 5)
	for i := 0; i < 50 && c.VehicleCount() == 0; i++ {
		c.Spawn(parameter.Sedan, "red")
	}
	if c.VehicleCount() == 0 {
		t.Fatal("setup: expected at least one vehicle")
	}

	oldLayout := c.Layout
	if err := c.RequestNewLayout(7); err != nil {
		t.Fatalf("RequestNewLayout returned error: %v", err)
	}
	if c.Layout == oldLayout {
		t.Error("RequestNewLayout should replace the layout")
	}
	if c.Layout.Dimension != 7 {
		t.Errorf("Layout.Dimension = %d, want 7", c.Layout.Dimension)
	}
	if c.VehicleCount() != 0 {
		t.Errorf("VehicleCount after RequestNewLayout = %d, want 0", c.VehicleCount())
	}
}

func TestEraseRemovesMatchingVehicle(t *testing.T) {
	c := newTestCity(t, 5)
	admitted := false
	for i := 0; i < 50 && !admitted; i++ {
		admitted = c.Spawn(parameter.Sedan, "red")
	}
	if !admitted {
		t.Fatal("setup: expected Spawn to succeed")
	}

	views := c.Snapshot()
	if len(views) != 1 {
		t.Fatalf("expected exactly one vehicle, got %d", len(views))
	}
	id := views[0].ID

	if !c.Erase(id) {
		t.Fatal("Erase should report true for an existing vehicle id")
	}
	if c.VehicleCount() != 0 {
		t.Errorf("VehicleCount after Erase = %d, want 0", c.VehicleCount())
	}
	if c.Erase(id) {
		t.Error("Erase should report false for an id that no longer exists")
	}
}
