package radar

import (
	"math"

	"github.com/lixenwraith/citygrid/parameter"
)

// YieldingDistance returns how far back a vehicle should stop to yield at
// an intersection it cannot safely cross, given the angle between the
// two routes and its own length. Waiting at this distance rather than
// crawling all the way to the intersection keeps the approach clear for
// traffic that does have the right of way.
func YieldingDistance(angle, ownLength float64) float64 {
	base := ownLength / 2
	x := parameter.TileSize

	if angle > 0 {
		switch {
		case angle < 32:
			return base + 7.0/10*x
		case angle < 41.625:
			return base + 5.0/16*x
		case angle < 65:
			return base + x/3
		case angle < 100:
			return base + x/2
		case angle < 140:
			return base + 8.0/21*x
		default:
			return base + 5.0/12*x
		}
	}

	angle = -angle
	switch {
	case angle < 32:
		return base + 11.0/15*x
	case angle < 41.625:
		return base + 4.0/5*x
	case angle < 65:
		return base + 4.0/5*x
	case angle < 95:
		return base + 2.0/3*x
	case angle < 111:
		return base + 7.0/16*x
	default:
		return base + 3.0/5*x
	}
}

// BlockingDistance returns the minimum distance a vehicle must stay back
// from an intersection so as not to block it, given the angle between
// routes, the two vehicles' sizes, and whether the other vehicle is
// ahead of or behind the observer.
func BlockingDistance(angle, ownLength, targetWidth float64, ahead bool) float64 {
	x := parameter.TileSize
	base := ownLength/2 + targetWidth/2

	if ahead {
		if angle > 0 {
			switch {
			case angle < 32:
				return base + x/1.7
			case angle < 41.625:
				return base + x/20
			case angle < 65:
				return base + x/15
			case angle < 95:
				return base + x/15
			case angle < 111:
				return base + x/5
			case angle < 140:
				return base + x/10
			default:
				return base + x/5.5
			}
		}
		angle = -angle
		switch {
		case angle < 32:
			return base + x/3
		case angle < 41.625:
			return base + x/10
		case angle < 65:
			return base + x/10
		case angle < 95:
			return base + x/15
		case angle < 111:
			return base + x/7
		case angle < 140:
			return base + x/3
		default:
			return base + x/5.5
		}
	}

	// behind
	if angle > 0 {
		switch {
		case angle < 32:
			return base + 0
		case angle < 41.625:
			return base + x/20
		case angle < 65:
			return base + 0
		case angle < 95:
			return base + x/5
		case angle < 111:
			return base + x/7
		case angle < 140:
			return base + x/3.5
		default:
			return base + x/5.5
		}
	}
	angle = -angle
	switch {
	case angle < 32:
		return base + x/3
	case angle < 41.625:
		return base + x/10
	case angle < 65:
		return base + x/10
	case angle < 95:
		return base + x/12
	case angle < 111:
		return base + x/7
	case angle < 140:
		return base + x/4
	default:
		return base + x/6
	}
}

// CollisionDistance returns the minimum distance between the centers of
// an observer and observed vehicle for them not to overlap, given their
// facing angles and dimensions.
func CollisionDistance(observerRotation, observedRotation float64, observerLength, observerWidth, observedLength, observedWidth float64) float64 {
	x := parameter.TileSize

	orgDir := abs(observedRotation)
	if orgDir > 180 {
		orgDir -= 180
	}
	targDir := abs(observerRotation)
	if targDir > 180 {
		targDir -= 180
	}

	angleBetween := abs(orgDir - targDir)
	if angleBetween > 90 {
		angleBetween -= 90
	}

	viewAngle := atanDeg(observerWidth / observerLength)

	var dist float64
	switch {
	case angleBetween <= viewAngle:
		dist = observerLength/2 + observedLength/2
	case angleBetween <= 40:
		dist = observerLength/2 + 0.85*observedLength/2
	case angleBetween <= 60:
		dist = observerLength/2 + 0.70*observedLength/2
	case angleBetween <= 80:
		dist = observerLength/2 + 0.65*observedLength/2
	default:
		dist = observerLength/2 + observedWidth/2 + x/20
	}

	return dist + x/20
}

// DistanceToCross returns the safe distance from orgPosi to location
// where two paths intersect, adjusted by the angle between routes and
// whether the crossing vehicle is ahead.
func DistanceToCross(orgPosi, location Vector, angle float64, ahead bool) float64 {
	base := Distance(orgPosi, location)
	x := parameter.TileSize
	angle = abs(angle)

	var addition float64
	switch {
	case angle < 32:
		if ahead {
			addition = -x / 3.5
		}
	case angle < 41.625:
		if ahead {
			addition = -x / 10
		}
	case angle < 140:
		// no adjustment
	default:
		addition = -x / 2.5
	}

	return base + addition
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func atanDeg(v float64) float64 {
	return math.Atan(v) * 180 / math.Pi
}
