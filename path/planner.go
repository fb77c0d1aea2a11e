package path

import (
	"math"

	"github.com/lixenwraith/citygrid/layout"
	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/roadgraph"
)

// Plan builds a vehicle's full route between entry and goal border
// coordinates: a pre-spawn tail, one piece per tile the route crosses
// (straight, wide-left, or tight-right), and a post-exit tail. Entry and
// goal are translated to graph vertices and the route between them is
// found with g.ShortestPath; if none exists, ErrUnreachable is returned
// so the caller (city.City.Spawn) can retry with a different goal.
func Plan(g *roadgraph.RoadGraph, c *layout.CityLayout, kind parameter.Kind, entry, goal Point) (*Path, error) {
	source := roadgraph.VertexForCoordinate(entry, c.Dimension)
	target := roadgraph.VertexForCoordinate(goal, c.Dimension)

	route, ok := g.ShortestPath(source, target)
	if !ok {
		return nil, ErrUnreachable
	}

	p := &Path{Radius: RadiusForKind(kind)}

	previous := setSpawn(p, entry)

	for k := 0; k < len(route.Vertices)-1; k++ {
		v := route.Vertices[k]
		next := route.Vertices[k+1]
		i, j := v.I, v.J

		direction := route.Directions[k]
		previous = setPiece(p, direction, previous, i, j)
		i, j = stepDirection(i, j, direction)

		for i != next.I || j != next.J {
			b := c.Block(i, j)
			direction = onlyOutgoingDirection(b, previous)
			previous = setPiece(p, direction, previous, i, j)
			i, j = stepDirection(i, j, direction)
		}
	}

	setFinal(p, goal)

	p.SampleIndex = 0
	p.PieceIndex = 0
	return p, nil
}

// onlyOutgoingDirection returns the single road side of b that is not
// the direction the vehicle just arrived from. Through-blocks (not graph
// vertices) always have exactly one such side by construction — the
// layout generator's no-dead-end rule guarantees it.
func onlyOutgoingDirection(b layout.Block, arrivedFrom layout.Side) layout.Side {
	for side := layout.Side(0); side < 4; side++ {
		if b[side] && side != arrivedFrom {
			return side
		}
	}
	return arrivedFrom
}

func stepDirection(i, j int, direction layout.Side) (int, int) {
	switch direction {
	case layout.Right:
		return i + 1, j
	case layout.Up:
		return i, j - 1
	case layout.Left:
		return i - 1, j
	default: // layout.Down
		return i, j + 1
	}
}

// setPiece appends the path piece for traveling in `direction` out of
// tile (i, j), arriving having come from `previous`, and returns the new
// previous-direction (always the direction opposite of travel). The
// piece is a straight line if the travel direction is unchanged from the
// last tile, a tight right curve if this is a clockwise turn, or a wide
// left curve if counter-clockwise — determined the same way the
// reference implementation derives it, via the signed difference between
// direction and previous, with a difference of ±3 sign-flipped so that a
// positive value always means a clockwise turn and ±2 means straight.
func setPiece(p *Path, direction, previous layout.Side, i, j int) layout.Side {
	sub := int(direction) - int(previous)
	if sub == 3 || sub == -3 {
		sub = -sub
	}

	attach := Point{X: float64(i) * parameter.TileSize, Y: float64(j) * parameter.TileSize}

	switch {
	case sub == 2 || sub == -2:
		p.Pieces = append(p.Pieces, buildLine(attach, straightSign[direction]))
	case sub > 0:
		p.Pieces = append(p.Pieces, buildTightCurve(attach, straightSign[direction]))
	default:
		p.Pieces = append(p.Pieces, buildWideCurve(attach, leftTurnSign[direction]))
	}

	return layout.Opposite(direction)
}

var straightSign = map[layout.Side]cornerSign{
	layout.Right: signPN,
	layout.Up:    signPP,
	layout.Left:  signNP,
	layout.Down:  signNN,
}

var leftTurnSign = map[layout.Side]cornerSign{
	layout.Right: signPP,
	layout.Up:    signNP,
	layout.Left:  signNN,
	layout.Down:  signPN,
}

func floorToTile(v float64) float64 {
	return math.Floor(v/parameter.TileSize) * parameter.TileSize
}

// setSpawn appends the pre-spawn tail piece (a straight line extending
// one tile outside the map in the entry direction) and records the
// spawn pose. It returns the previous-direction the main route-walking
// loop should start from.
func setSpawn(p *Path, entry Point) layout.Side {
	size := parameter.TileSize
	outside := size / 2
	x, y := entry.X, entry.Y

	var rotation float64
	var previous layout.Side

	switch {
	case x == 0:
		p.Pieces = append(p.Pieces, buildLine(Point{X: x - size, Y: floorToTile(y)}, signPN))
		x -= outside
		rotation = 0
		previous = layout.Left
	case y == 0:
		p.Pieces = append(p.Pieces, buildLine(Point{X: floorToTile(x), Y: y - size}, signNN))
		y -= outside
		rotation = 270
		previous = layout.Up
	case x > y:
		p.Pieces = append(p.Pieces, buildLine(Point{X: x, Y: floorToTile(y)}, signNP))
		x += outside
		rotation = 180
		previous = layout.Right
	default:
		p.Pieces = append(p.Pieces, buildLine(Point{X: floorToTile(x), Y: y}, signPP))
		y += outside
		rotation = 90
		previous = layout.Down
	}

	p.SpawnPosition = Point{X: x, Y: y}
	p.SpawnRotation = rotation
	return previous
}

// setFinal appends the final two post-exit tail pieces and records the
// goal coordinate the path delivers the vehicle to.
func setFinal(p *Path, goal Point) {
	size := parameter.TileSize
	outside := size
	x, y := goal.X, goal.Y

	switch {
	case x == 0:
		p.Pieces = append(p.Pieces, buildLine(Point{X: x, Y: floorToTile(y)}, signNP))
		p.Pieces = append(p.Pieces, buildLine(Point{X: x - size, Y: floorToTile(y)}, signNP))
		x -= outside
	case y == 0:
		p.Pieces = append(p.Pieces, buildLine(Point{X: floorToTile(x), Y: y}, signPP))
		p.Pieces = append(p.Pieces, buildLine(Point{X: floorToTile(x), Y: y - size}, signPP))
		y -= outside
	case x > y:
		p.Pieces = append(p.Pieces, buildLine(Point{X: x - size, Y: floorToTile(y)}, signPN))
		p.Pieces = append(p.Pieces, buildLine(Point{X: x, Y: floorToTile(y)}, signPN))
		x += outside
	default:
		p.Pieces = append(p.Pieces, buildLine(Point{X: floorToTile(x), Y: y - size}, signNN))
		p.Pieces = append(p.Pieces, buildLine(Point{X: floorToTile(x), Y: y}, signNN))
		y += outside
	}

	p.Goal = Point{X: x, Y: y}
}
