// Package city owns the procedurally generated grid, the road graph
// derived from it, and the set of vehicles currently driving on it: the
// admission-control loop that spawns and retires vehicles, and the tick
// that drives every vehicle once per simulation step.
package city

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/lixenwraith/citygrid/layout"
	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/roadgraph"
	"github.com/lixenwraith/citygrid/vehicle"
)

// City is the simulated area: a generated grid, the road graph over it,
// and every vehicle currently on the map. Reads (Snapshot) and writes
// (Tick, Spawn, ChangeMode) are safe for concurrent use, since a
// websocket observer typically reads state from a different goroutine
// than the one ticking the simulation.
type City struct {
	mu sync.RWMutex

	Layout  *layout.CityLayout
	Graph   *roadgraph.RoadGraph
	borders *roadgraph.BorderPoints

	vehicles  []*vehicle.Vehicle
	available []int
	cooldown  map[int]time.Duration
	ids       map[*vehicle.Vehicle]int
	nextID    int

	rushHour bool
	maximum  int
	target   int
	paused   bool

	rng *rand.Rand
}

// New generates a dim x dim city layout and builds its road graph and
// border entry/exit points. rng may be nil, in which case a randomly
// seeded source is used.
func New(dim int, rng *rand.Rand) (*City, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	lay, err := layout.Generate(dim, rng)
	if err != nil {
		return nil, fmt.Errorf("city: %w", err)
	}

	g := roadgraph.Build(lay)
	bp := roadgraph.BuildBorderPoints(g, dim)

	c := &City{
		Layout:   lay,
		Graph:    g,
		borders:  bp,
		cooldown: make(map[int]time.Duration),
		target:   -1,
		rng:      rng,
	}
	c.maximum = calculateMaximum(dim)
	c.resetLocked()

	return c, nil
}

// calculateMaximum derives the rush-hour vehicle cap from the grid
// dimension: twice the edge length, with an even dimension first
// reduced by one and then given one extra vehicle, and two vehicles
// fewer whenever that (reduced) dimension is 5 or less.
func calculateMaximum(dim int) int {
	add := false
	if dim%2 == 0 {
		dim--
		add = true
	}
	max := 2 * dim
	if add {
		max++
	}
	if dim <= 5 {
		max -= 2
	}
	return max
}

// Maximum returns the vehicle cap for the current mode: the full
// rush-hour capacity, or a reduced casual-mode cap proportional to the
// number of entry points.
func (c *City) Maximum(rushHour bool) int {
	if rushHour {
		return c.maximum
	}
	sub := len(c.borders.Entry) / 4
	return c.maximum - sub
}

// IsOverheated reports whether every entry point is presently cooling
// down, so no new vehicle can be admitted this tick.
func (c *City) IsOverheated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.available) == 0
}

// IsAtFullCapacity reports whether the city already holds Maximum(rushHour)
// vehicles.
func (c *City) IsAtFullCapacity(rushHour bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vehicles) >= c.Maximum(rushHour)
}

// VehicleCount returns the number of vehicles currently on the map.
func (c *City) VehicleCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vehicles)
}

// VehicleView is a read-only snapshot of one vehicle's visible state, the
// subset an external observer (a renderer, a websocket feed) needs — never
// the live *vehicle.Vehicle itself, which is only safe to touch under c.mu.
type VehicleView struct {
	ID       int
	Kind     parameter.Kind
	Color    string
	X, Y     float64
	Rotation float64
	Done     bool
}

// Snapshot returns a point-in-time view of every vehicle on the map, safe
// to read from a goroutine other than the one driving Tick.
func (c *City) Snapshot() []VehicleView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	views := make([]VehicleView, len(c.vehicles))
	for i, v := range c.vehicles {
		views[i] = VehicleView{
			ID:       c.ids[v],
			Kind:     v.Kind,
			Color:    v.Color,
			X:        v.Pos.X,
			Y:        v.Pos.Y,
			Rotation: v.Rotation,
			Done:     v.Done,
		}
	}
	return views
}

// ChangeMode flips the city between calm and rush-hour mode and
// propagates the change to every vehicle currently on the map.
func (c *City) ChangeMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rushHour = !c.rushHour
	for _, v := range c.vehicles {
		v.ChangeMode()
	}
}

// RushHour reports the city's current mode.
func (c *City) RushHour() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rushHour
}

// Reset clears every vehicle and cooldown, restoring every entry point
// to available, while keeping the generated layout and graph.
func (c *City) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *City) resetLocked() {
	c.vehicles = nil
	c.cooldown = make(map[int]time.Duration)
	c.ids = make(map[*vehicle.Vehicle]int)
	c.available = make([]int, len(c.borders.Entry))
	for i := range c.available {
		c.available[i] = i
	}
}

// Tick drives every vehicle one simulation step, retires any that have
// reached their goal, and counts down entry-point cooldowns. It returns
// the vehicles retired this tick, in case a caller wants to react to
// them (e.g. an observer clearing their graphics).
func (c *City) Tick() []*vehicle.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		return nil
	}

	var done []*vehicle.Vehicle
	for _, v := range c.vehicles {
		if v.Done {
			done = append(done, v)
			continue
		}
		v.Drive()
	}
	if len(done) > 0 {
		c.removeVehiclesLocked(done)
	}

	c.decreaseCooldownLocked()

	return done
}

func (c *City) removeVehiclesLocked(done []*vehicle.Vehicle) {
	isDone := make(map[*vehicle.Vehicle]bool, len(done))
	for _, v := range done {
		isDone[v] = true
	}

	remaining := c.vehicles[:0]
	for _, v := range c.vehicles {
		if !isDone[v] {
			remaining = append(remaining, v)
		}
	}
	c.vehicles = remaining

	for _, v := range c.vehicles {
		for _, removed := range done {
			v.Radar.RemoveTarget(removed)
		}
	}
	for _, removed := range done {
		delete(c.ids, removed)
	}
}

func (c *City) decreaseCooldownLocked() {
	for index, remaining := range c.cooldown {
		remaining -= parameter.TimeStep
		if remaining <= 0 {
			delete(c.cooldown, index)
			c.available = append(c.available, index)
			continue
		}
		c.cooldown[index] = remaining
	}
}
