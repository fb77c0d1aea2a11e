package city

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/citygrid/parameter"
)

func newTestCity(t *testing.T, dim int) *City {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	c, err := New(dim, rng)
	if err != nil {
		t.Fatalf("New(%d) returned error: %v", dim, err)
	}
	return c
}

func TestNewBuildsLayoutGraphAndBorders(t *testing.T) {
	c := newTestCity(t, 5)
	if c.Layout == nil || c.Graph == nil || c.borders == nil {
		t.Fatal("New should populate Layout, Graph and borders")
	}
	if len(c.available) != len(c.borders.Entry) {
		t.Errorf("available = %d entries, want %d (one per border entry)", len(c.available), len(c.borders.Entry))
	}
	if c.VehicleCount() != 0 {
		t.Errorf("VehicleCount = %d, want 0 on a fresh city", c.VehicleCount())
	}
}

func TestCalculateMaximumOddVsEvenDimension(t *testing.T) {
	if got := calculateMaximum(5); got != 2*5-2 {
		t.Errorf("calculateMaximum(5) = %d, want %d", got, 2*5-2)
	}
	if got := calculateMaximum(6); got != 2*5+1-2 {
		t.Errorf("calculateMaximum(6) = %d, want %d", got, 2*5+1-2)
	}
	if got := calculateMaximum(9); got != 2*9 {
		t.Errorf("calculateMaximum(9) = %d, want %d", got, 2*9)
	}
}

func TestMaximumCasualIsBelowRushHour(t *testing.T) {
	c := newTestCity(t, 7)
	rush := c.Maximum(true)
	casual := c.Maximum(false)
	if casual >= rush {
		t.Errorf("casual maximum %d should be lower than rush-hour maximum %d", casual, rush)
	}
}

func TestIsOverheatedWhenNoEntriesAvailable(t *testing.T) {
	c := newTestCity(t, 5)
	if c.IsOverheated() {
		t.Fatal("a fresh city should not be overheated")
	}
	c.available = nil
	if !c.IsOverheated() {
		t.Error("IsOverheated should be true once every entry is on cooldown")
	}
}

func TestIsAtFullCapacity(t *testing.T) {
	c := newTestCity(t, 5)
	if c.IsAtFullCapacity(true) {
		t.Fatal("a fresh city should not be at capacity")
	}
	c.maximum = 0
	if !c.IsAtFullCapacity(true) {
		t.Error("IsAtFullCapacity should be true once vehicles >= maximum")
	}
}

func TestSpawnAdmitsVehicleAndConsumesEntry(t *testing.T) {
	c := newTestCity(t, 5)
	before := len(c.available)

	admitted := false
	for i := 0; i < 50 && !admitted; i++ {
		admitted = c.Spawn(parameter.Sedan, "red")
	}
	if !admitted {
		t.Fatal("Spawn should eventually admit a vehicle on a generated city")
	}
	if c.VehicleCount() != 1 {
		t.Errorf("VehicleCount = %d, want 1 after one successful Spawn", c.VehicleCount())
	}
	if len(c.available) != before-1 {
		t.Errorf("available = %d, want %d after consuming one entry", len(c.available), before-1)
	}
}

func TestSpawnFailsAtFullCapacity(t *testing.T) {
	c := newTestCity(t, 5)
	c.maximum = 0
	if c.Spawn(parameter.Sedan, "red") {
		t.Error("Spawn should refuse to admit once at capacity")
	}
}

func TestSpawnFailsWhenOverheated(t *testing.T) {
	c := newTestCity(t, 5)
	c.available = nil
	if c.Spawn(parameter.Sedan, "red") {
		t.Error("Spawn should refuse to admit when every entry is cooling down")
	}
}

func TestSnapshotReflectsLiveVehicles(t *testing.T) {
	c := newTestCity(t, 5)
	for i := 0; i < 50 && c.VehicleCount() == 0; i++ {
		c.Spawn(parameter.Sedan, "red")
	}
	if c.VehicleCount() == 0 {
		t.Fatal("setup: expected at least one vehicle")
	}

	views := c.Snapshot()
	if len(views) != c.VehicleCount() {
		t.Fatalf("Snapshot returned %d views, want %d", len(views), c.VehicleCount())
	}
	if views[0].Kind != parameter.Sedan || views[0].Color != "red" {
		t.Errorf("Snapshot()[0] = %+v, want Kind=Sedan Color=red", views[0])
	}
}

func TestChangeModeTogglesRushHour(t *testing.T) {
	c := newTestCity(t, 5)
	if c.RushHour() {
		t.Fatal("a fresh city should start in calm mode")
	}
	c.ChangeMode()
	if !c.RushHour() {
		t.Error("ChangeMode should flip to rush hour")
	}
}

func TestResetClearsVehiclesAndCooldowns(t *testing.T) {
	c := newTestCity(t, 5)
	for i := 0; i < 50 && c.VehicleCount() == 0; i++ {
		c.Spawn(parameter.Sedan, "red")
	}
	if c.VehicleCount() == 0 {
		t.Fatal("setup: expected at least one vehicle before Reset")
	}

	c.Reset()
	if c.VehicleCount() != 0 {
		t.Errorf("VehicleCount after Reset = %d, want 0", c.VehicleCount())
	}
	if len(c.cooldown) != 0 {
		t.Errorf("cooldown map after Reset has %d entries, want 0", len(c.cooldown))
	}
	if len(c.available) != len(c.borders.Entry) {
		t.Errorf("available after Reset = %d, want %d", len(c.available), len(c.borders.Entry))
	}
}

func TestTickRetiresDoneVehicles(t *testing.T) {
	c := newTestCity(t, 5)
	for i := 0; i < 50 && c.VehicleCount() == 0; i++ {
		c.Spawn(parameter.Sedan, "red")
	}
	if c.VehicleCount() == 0 {
		t.Fatal("setup: expected at least one vehicle")
	}

	c.vehicles[0].Finish()
	done := c.Tick()

	if len(done) != 1 {
		t.Fatalf("Tick returned %d done vehicles, want 1", len(done))
	}
	if c.VehicleCount() != 0 {
		t.Errorf("VehicleCount after retiring the only vehicle = %d, want 0", c.VehicleCount())
	}
}

func TestDecreaseCooldownFreesEntryOverTime(t *testing.T) {
	c := newTestCity(t, 5)
	admitted := false
	for i := 0; i < 50 && !admitted; i++ {
		admitted = c.Spawn(parameter.Sedan, "red")
	}
	if !admitted {
		t.Fatal("setup: expected Spawn to succeed")
	}
	if len(c.cooldown) != 1 {
		t.Fatalf("cooldown entries = %d, want 1 right after Spawn", len(c.cooldown))
	}

	steps := int(parameter.SpawnCooldown/parameter.TimeStep) + 1
	for i := 0; i < steps; i++ {
		c.decreaseCooldownLocked()
	}
	if len(c.cooldown) != 0 {
		t.Errorf("cooldown entries = %d, want 0 after waiting out SpawnCooldown", len(c.cooldown))
	}
	if len(c.available) != len(c.borders.Entry) {
		t.Errorf("available = %d, want %d once the only used entry cools down", len(c.available), len(c.borders.Entry))
	}
}
