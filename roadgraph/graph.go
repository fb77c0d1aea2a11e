// Package roadgraph derives a weighted directed graph of intersections
// and border exits from a layout.CityLayout, and finds shortest routes
// across it.
package roadgraph

import (
	"github.com/lixenwraith/citygrid/layout"
)

// VertexID identifies a graph vertex by its grid coordinates.
type VertexID struct {
	I, J int
}

// Edge is one directed adjacency entry: the neighbor vertex, the distance
// to it in tile-steps, and the direction a traveler must leave the
// originating vertex in to reach it.
type Edge struct {
	To       VertexID
	Distance int
	Outgoing layout.Side
}

// RoadGraph is the vertex set and adjacency derived from a CityLayout.
type RoadGraph struct {
	layout    *layout.CityLayout
	Vertices  []VertexID
	Adjacency map[VertexID][]Edge
}

// Build extracts the vertex set (every intersection tile, plus every
// border tile with road access) and its adjacency from c.
func Build(c *layout.CityLayout) *RoadGraph {
	g := &RoadGraph{
		layout:    c,
		Adjacency: make(map[VertexID][]Edge),
	}

	dim := c.Dimension
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			b := c.Block(i, j)
			if b.IsIntersection() {
				g.Vertices = append(g.Vertices, VertexID{i, j})
				continue
			}
			if c.OnEdge(i, j) && b.Weight() > 0 {
				g.Vertices = append(g.Vertices, VertexID{i, j})
			}
		}
	}

	for _, v := range g.Vertices {
		g.Adjacency[v] = g.findNeighbors(v)
	}
	return g
}

// sideDelta gives the grid-coordinate delta when moving in Side s.
var sideDelta = map[layout.Side][2]int{
	layout.Right: {1, 0},
	layout.Up:    {0, -1},
	layout.Left:  {-1, 0},
	layout.Down:  {0, 1},
}

// findNeighbors walks out from v in every open direction one tile at a
// time, stopping at the first vertex reached (an intersection, or any
// border tile that is not v itself), and records the accumulated
// distance and the original outgoing direction taken from v.
func (g *RoadGraph) findNeighbors(v VertexID) []Edge {
	dim := g.layout.Dimension

	type found struct {
		to       VertexID
		distance int
		outgoing layout.Side
	}
	var results []found

	var walk func(i, j int, previous layout.Side, hasPrevious bool, counter int, original layout.Side)
	walk = func(i, j int, previous layout.Side, hasPrevious bool, counter int, original layout.Side) {
		forbidden, hasForbidden := borderForbiddenSide(i, j, dim)

		if hasPrevious {
			if hasForbidden {
				results = append(results, found{VertexID{i, j}, counter, original})
				return
			}
			if g.layout.Block(i, j).IsIntersection() {
				results = append(results, found{VertexID{i, j}, counter, original})
				return
			}
		}

		counter++
		b := g.layout.Block(i, j)

		tryDir := func(side layout.Side) {
			if !b[side] {
				return
			}
			if hasForbidden && forbidden == side {
				return
			}
			if hasPrevious && previous == side {
				return
			}
			d := sideDelta[side]
			ni, nj := i+d[0], j+d[1]
			if ni < 0 || nj < 0 || ni >= dim || nj >= dim {
				return
			}
			walk(ni, nj, layout.Opposite(side), true, counter, original)
		}

		tryDir(layout.Right)
		tryDir(layout.Up)
		tryDir(layout.Left)
		tryDir(layout.Down)
	}

	// The first call seeds `original` per-direction below, matching the
	// reference implementation's handling of the starting vertex (no
	// previous, no stop-on-border check since v itself is the start, and
	// `original_direction` is assigned the first time a direction is
	// taken). The border's off-map side is still never walked.
	forbidden, hasForbidden := borderForbiddenSide(v.I, v.J, dim)
	b := g.layout.Block(v.I, v.J)
	startDir := func(side layout.Side) {
		if !b[side] {
			return
		}
		if hasForbidden && forbidden == side {
			return
		}
		d := sideDelta[side]
		ni, nj := v.I+d[0], v.J+d[1]
		if ni < 0 || nj < 0 || ni >= dim || nj >= dim {
			return
		}
		walk(ni, nj, layout.Opposite(side), true, 1, side)
	}
	startDir(layout.Right)
	startDir(layout.Up)
	startDir(layout.Left)
	startDir(layout.Down)

	// Deduplicate by neighbor, keeping the shortest distance; ties keep
	// both entries.
	var edges []Edge
	for _, f := range results {
		replaced := false
		keepBoth := false
		idx := -1
		for k, e := range edges {
			if e.To == f.to {
				idx = k
				if e.Distance == f.distance {
					keepBoth = true
				} else if f.distance < e.Distance {
					replaced = true
				}
				break
			}
		}
		switch {
		case idx == -1:
			edges = append(edges, Edge{f.to, f.distance, f.outgoing})
		case keepBoth:
			edges = append(edges, Edge{f.to, f.distance, f.outgoing})
		case replaced:
			edges[idx] = Edge{f.to, f.distance, f.outgoing}
		default:
			// existing edge is strictly shorter; drop f.
		}
	}
	return edges
}

// borderForbiddenSide returns the one direction a border tile at (i, j)
// must never continue walking in (it would leave the map), or false if
// (i, j) is not on the border.
func borderForbiddenSide(i, j, dim int) (layout.Side, bool) {
	switch {
	case i == 0:
		return layout.Left, true
	case i == dim-1:
		return layout.Right, true
	case j == 0:
		return layout.Up, true
	case j == dim-1:
		return layout.Down, true
	default:
		return 0, false
	}
}
