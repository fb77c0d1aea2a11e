package roadgraph

import (
	"github.com/lixenwraith/citygrid/parameter"
)

// Point is a 2D coordinate in world space.
type Point struct {
	X, Y float64
}

// BorderPoints holds the parallel entry/exit coordinate lists, one pair
// per border vertex, plus the originating VertexID for each index so a
// caller can translate a coordinate back to a graph vertex.
type BorderPoints struct {
	Entry  []Point
	Exit   []Point
	Vertex []VertexID
}

// BuildBorderPoints derives the entry/exit coordinate pairs for every
// border vertex in g, offsetting entry and exit to opposite sides of the
// tile's midline to keep right-hand traffic. The per-side sign table is
// reproduced verbatim from the reference implementation.
func BuildBorderPoints(g *RoadGraph, dim int) *BorderPoints {
	x := parameter.TileSize
	r := parameter.PathRadius

	bp := &BorderPoints{}
	for _, v := range g.Vertices {
		i, j := float64(v.I), float64(v.J)
		switch {
		case v.I == 0:
			bp.Entry = append(bp.Entry, Point{0, j*x + x/2 + r})
			bp.Exit = append(bp.Exit, Point{0, j*x + x/2 - r})
		case v.J == 0:
			bp.Entry = append(bp.Entry, Point{i*x + x/2 - r, 0})
			bp.Exit = append(bp.Exit, Point{i*x + x/2 + r, 0})
		case v.I == dim-1:
			bp.Entry = append(bp.Entry, Point{float64(dim) * x, j*x + x/2 - r})
			bp.Exit = append(bp.Exit, Point{float64(dim) * x, j*x + x/2 + r})
		case v.J == dim-1:
			bp.Entry = append(bp.Entry, Point{i*x + x/2 + r, float64(dim) * x})
			bp.Exit = append(bp.Exit, Point{i*x + x/2 - r, float64(dim) * x})
		default:
			continue
		}
		bp.Vertex = append(bp.Vertex, v)
	}
	return bp
}

// VertexForCoordinate translates a world coordinate to the grid vertex
// that owns it, using the same integer-division rule as the reference
// implementation (int(coord/tile)), clamped back by one when a border
// coordinate divides out to one past the last valid index (the right and
// bottom border points sit exactly on the outer edge of the grid).
func VertexForCoordinate(p Point, dim int) VertexID {
	i := int(p.X / parameter.TileSize)
	j := int(p.Y / parameter.TileSize)
	upper := dim - 1
	if i > upper {
		i--
	}
	if j > upper {
		j--
	}
	return VertexID{I: i, J: j}
}
