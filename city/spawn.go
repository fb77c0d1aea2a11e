package city

import (
	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/path"
	"github.com/lixenwraith/citygrid/vehicle"
)

// Spawn admits one new vehicle of the given kind and color, choosing a
// random available entry point and a goal angularly biased toward the
// opposite side of the map first, falling back to any other exit if no
// route exists, within parameter.MaxGoalRetries attempts. It reports
// whether a vehicle was actually admitted — false means every entry is
// cooling down, the city is already at its mode's capacity, or no
// reachable goal was found this attempt.
func (c *City) Spawn(kind parameter.Kind, color string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.available) == 0 || len(c.vehicles) >= c.effectiveCapLocked() {
		return false
	}

	limit := len(c.borders.Entry) - 1
	entryIndex := c.available[c.rng.Intn(len(c.available))]

	v := vehicle.New(kind, color)

	p, ok := c.findRoute(v, entryIndex, limit)
	if !ok {
		return false
	}

	c.cooldown[entryIndex] = parameter.SpawnCooldown
	c.removeAvailableLocked(entryIndex)

	for _, other := range c.vehicles {
		other.Radar.AddTarget(v)
		v.Radar.AddTarget(other)
	}
	c.vehicles = append(c.vehicles, v)
	c.nextID++
	c.ids[v] = c.nextID

	v.Spawn(p)
	return true
}

// findRoute tries the angular-preference window first (aiming for a
// side of the map different from the entry), then falls back to any
// other exit index, up to parameter.MaxGoalRetries total attempts.
func (c *City) findRoute(v *vehicle.Vehicle, entryIndex, limit int) (*path.Path, bool) {
	entry := c.borders.Entry[entryIndex]

	for attempt := 0; attempt < parameter.MaxGoalRetries; attempt++ {
		var exitIndex int
		if attempt == 0 {
			exitIndex = c.angularGoalIndex(entryIndex, limit)
		} else {
			exitIndex = c.fallbackGoalIndex(entryIndex, limit)
		}

		goal := c.borders.Exit[exitIndex]
		p, err := path.Plan(c.Graph, c.Layout, v.Kind, entry, goal)
		if err == nil {
			return p, true
		}
	}
	return nil, false
}

func (c *City) angularGoalIndex(entryIndex, limit int) int {
	lo := entryIndex + int(0.25*float64(limit))
	hi := entryIndex + int(0.75*float64(limit))
	for {
		index := lo
		if hi > lo {
			index = lo + c.rng.Intn(hi-lo+1)
		}
		if index > limit {
			index -= limit
		}
		if index != entryIndex {
			return index
		}
	}
}

func (c *City) fallbackGoalIndex(entryIndex, limit int) int {
	for {
		index := c.rng.Intn(limit + 1)
		if index > limit {
			index -= limit
		}
		if index != entryIndex {
			return index
		}
	}
}

func (c *City) removeAvailableLocked(index int) {
	for i, v := range c.available {
		if v == index {
			c.available = append(c.available[:i], c.available[i+1:]...)
			return
		}
	}
}
