package city

import (
	"fmt"

	"github.com/lixenwraith/citygrid/layout"
	"github.com/lixenwraith/citygrid/roadgraph"
	"github.com/lixenwraith/citygrid/vehicle"
)

// Start resumes a paused simulation; Tick becomes a no-op while paused.
func (c *City) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// Pause suspends the simulation: Tick returns immediately without driving
// any vehicle or advancing cooldowns, until Start is called again.
func (c *City) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Paused reports whether the simulation is currently paused.
func (c *City) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// ToggleRush flips calm/rush-hour mode. It is an alias for ChangeMode
// under the name the outer shell's control surface uses.
func (c *City) ToggleRush() {
	c.ChangeMode()
}

// SetTargetCount sets the number of vehicles Spawn should admit toward,
// clamped to [0, Maximum(current mode)]. A negative n clears the target,
// reverting admission to the plain mode-based Maximum.
func (c *City) SetTargetCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 {
		c.target = -1
		return
	}
	if max := c.Maximum(c.rushHour); n > max {
		n = max
	}
	c.target = n
}

// effectiveCapLocked returns the vehicle count Spawn should admit up to:
// the explicit target if one is set, otherwise the mode's Maximum. Must
// be called with c.mu held.
func (c *City) effectiveCapLocked() int {
	if c.target < 0 {
		return c.Maximum(c.rushHour)
	}
	return c.target
}

// RequestReset is an alias for Reset, named to match the outer shell's
// control surface.
func (c *City) RequestReset() {
	c.Reset()
}

// RequestNewLayout regenerates the city at dimension dim, discarding the
// current layout, road graph, borders, and every vehicle.
func (c *City) RequestNewLayout(dim int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	lay, err := layout.Generate(dim, c.rng)
	if err != nil {
		return fmt.Errorf("city: %w", err)
	}

	c.Layout = lay
	c.Graph = roadgraph.Build(lay)
	c.borders = roadgraph.BuildBorderPoints(c.Graph, dim)
	c.maximum = calculateMaximum(dim)
	c.resetLocked()

	return nil
}

// Erase immediately retires the vehicle with the given ID (as reported by
// Snapshot), if one exists, without waiting for it to reach its goal. It
// reports whether a matching vehicle was found.
func (c *City) Erase(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var target *vehicle.Vehicle
	for v, vid := range c.ids {
		if vid == id {
			target = v
			break
		}
	}
	if target == nil {
		return false
	}

	c.removeVehiclesLocked([]*vehicle.Vehicle{target})
	return true
}
