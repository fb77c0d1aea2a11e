package vehicle

import (
	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/radar"
)

// setIntersections reclassifies every vehicle visible on radar against
// this vehicle's own path, at most once every InteractionScanInterval
// ticks. A classified vehicle goes into ToIgnore (no relevant
// relationship), into both YieldCoords and Intersections (this vehicle
// must yield there), into Intersections only (routes cross but no yield
// is owed), or into ToFollow (same lane, ahead).
func (v *Vehicle) setIntersections() {
	if v.Counter%parameter.InteractionScanInterval != 0 {
		return
	}
	if v.Counter >= parameter.IgnoreResetInterval {
		v.Counter = 0
		v.ToIgnore = nil
	}

	own := v.Relevant
	var checked []*Vehicle

	for _, target := range v.Radar.Visible() {
		other, ok := target.(*Vehicle)
		if !ok || other == v {
			continue
		}

		skip := false
		var crossLocation *radar.Vector
		spottedNow := other.Position()

		switch {
		case v.ignores(other):
			skip = true
		case other == v.ToFollow:
			if distance(v.toFollowSpotted, spottedNow) == 0 {
				skip = true
			}
		default:
			if rec, ok := v.Intersections[other]; ok {
				loc := rec.Location
				crossLocation = &loc
			}
		}

		if !skip {
			result := radar.Intersects(own, other.Relevant, crossLocation)
			v.classify(other, result, spottedNow)
		}

		checked = append(checked, other)
	}

	if v.ToFollow != nil && !inList(checked, v.ToFollow) {
		v.ToFollow = nil
	}
}

func (v *Vehicle) classify(other *Vehicle, result radar.CrossResult, spottedNow radar.Vector) {
	const relevantDist = parameter.YieldBehindTolerance

	switch {
	case result.MustYield:
		if other == v.ToFollow {
			dist := distance(v.toFollowSpotted, result.Location)
			if dist >= relevantDist {
				v.ToFollow = nil
			}
			return
		}
		if other.ToFollow == v {
			return
		}
		rec := crossRecord{Location: result.Location, Angle: result.Angle, SpottedAt: spottedNow}
		if v.isAhead(result.Location) {
			v.YieldCoords[other] = rec
			v.Intersections[other] = rec
		} else if distance(v.Pos, other.Pos) <= relevantDist {
			v.Intersections[other] = rec
			v.YieldCoords[other] = rec
		}

	case !result.Identical && result.Found && result.Angle != 0:
		v.Intersections[other] = crossRecord{Location: result.Location, Angle: result.Angle, SpottedAt: spottedNow}

	case result.Found:
		if !v.isAhead(result.Location) {
			v.ToIgnore = append(v.ToIgnore, other)
			return
		}
		switch {
		case v.ToFollow == nil, other == v.ToFollow:
			v.ToFollow = other
			v.toFollowSpotted = spottedNow
		default:
			newDist := distance(v.Pos, other.Pos)
			orgDist := distance(v.Pos, v.ToFollow.Pos)
			if newDist < orgDist {
				v.ToFollow = other
				v.toFollowSpotted = other.Pos
			}
		}

	default:
		v.ToIgnore = append(v.ToIgnore, other)
	}
}

func (v *Vehicle) ignores(other *Vehicle) bool {
	for _, ig := range v.ToIgnore {
		if ig == other {
			return true
		}
	}
	return false
}

func inList(list []*Vehicle, target *Vehicle) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}

// setLimit caps this vehicle's speed to keep a safe gap behind the
// vehicle it is following, tightening as the gap closes and stopping it
// outright once the gap is too small to close safely.
func (v *Vehicle) setLimit() {
	leader := v.ToFollow
	ahead := distance(v.Pos, v.toFollowSpotted)
	ahead -= v.Length/2 + leader.Length/2 + parameter.LeaderGapMargin
	reference := leader.Speed()

	tiers := parameter.LeaderSpeedTiers
	x := parameter.TileSize

	if ahead <= tiers[len(tiers)-1].GapFraction*x {
		for i := 0; i < len(tiers)-1; i++ {
			if ahead <= tiers[i].GapFraction*x {
				if i == 0 {
					v.Blocked = true
					return
				}
				limit := max(tiers[i].SpeedFactor*reference, tiers[i].MinSpeed)
				v.Limit = &limit
				return
			}
		}
		limit := max(tiers[len(tiers)-1].SpeedFactor*reference, tiers[len(tiers)-1].MinSpeed)
		v.Limit = &limit
	}
}

// updateBlocking determines whether this vehicle is physically blocking
// any vehicle it intersects with, and whether it is itself blocked by
// one it already yields or defers to.
func (v *Vehicle) updateBlocking() {
	for other, rec := range v.Intersections {
		ahead := v.isAhead(rec.Location)
		blockingDist := radar.BlockingDistance(rec.Angle, v.Length, other.Width, ahead)
		if distance(v.Pos, rec.Location) <= blockingDist {
			if !other.IsBlocking(v) {
				v.Blocking = append(v.Blocking, other)
			}
		}

		if other.IsBlocking(v) {
			if v.isAhead(rec.Location) {
				stopDist := radar.YieldingDistance(rec.Angle, v.Length)
				if distance(v.Pos, rec.Location) <= stopDist {
					v.Yields = true
					obsvAhead := other.isAhead(rec.Location)
					distToCross := radar.DistanceToCross(v.Pos, rec.Location, rec.Angle, obsvAhead)
					distToTarget := distance(v.Pos, other.Pos)
					if !v.IsBlocking(other) {
						colDist := radar.CollisionDistance(v.Rotation, other.Rotation, v.Length, v.Width, other.Length, other.Width)
						if min(distToCross, distToTarget) <= colDist {
							v.Blocked = true
						}
					}
				}
			}
		}

		if other.Commited {
			if v.isAhead(rec.Location) {
				if distance(v.Pos, rec.Location) > v.Length/2 {
					stopDist := radar.YieldingDistance(rec.Angle, v.Length)
					if distance(v.Pos, rec.Location) <= stopDist {
						v.Yields = true
					}
				}
			}
		}
	}
}

// updateYielding decides, for each crossing ahead at which this vehicle
// owes a yield, whether to slow in preparation or stop outright. A
// crossing already closer than the yielding distance minus CommitMargin
// leaves the vehicle "on the way"; if any crossing does so and Yields is
// not set, the vehicle commits to crossing instead of stopping.
func (v *Vehicle) updateYielding() {
	onTheWay := false

	for _, rec := range v.YieldCoords {
		if !v.isAhead(rec.Location) {
			continue
		}
		dist := distance(v.Pos, rec.Location)
		stopDist := radar.YieldingDistance(rec.Angle, v.Length)
		if dist <= parameter.SlowingDistanceFactor*stopDist {
			v.Slows = true
			if dist <= stopDist {
				if dist <= stopDist-parameter.CommitMargin {
					onTheWay = true
				} else {
					v.Yields = true
				}
			}
		}
	}

	if onTheWay && !v.Yields {
		v.Commited = true
		v.Slows = false
		v.Yields = false
	}
}

// solveStandstill releases the vehicle from slowing and yielding when
// traffic around it has stopped. The first time it sees a visible vehicle
// that blocks it, it only sets TriedAlready and returns. Otherwise, if it
// blocks no visible vehicle, it returns while any visible vehicle ahead
// of it is still moving. In every remaining case it clears Slows and
// Yields, and a vehicle that was yielding becomes Commited.
func (v *Vehicle) solveStandstill() {
	blockerCount := 0

	for _, target := range v.Radar.Visible() {
		other, ok := target.(*Vehicle)
		if !ok {
			continue
		}
		if v.IsBlocking(other) {
			blockerCount++
		}
		if other.IsBlocking(v) {
			if !v.TriedAlready {
				v.TriedAlready = true
				return
			}
		}
	}

	if blockerCount == 0 {
		var visible []*Vehicle
		for _, target := range v.Radar.Visible() {
			other, ok := target.(*Vehicle)
			if !ok {
				continue
			}
			if v.isAhead(other.Pos) {
				visible = append(visible, other)
			}
		}
		moving := len(visible)
		for _, other := range visible {
			if other.Speed() == 0 {
				moving--
			}
		}
		if moving > 0 {
			return
		}
	}

	if v.Yields {
		v.Commited = true
	}
	v.Slows = false
	v.Yields = false
}
