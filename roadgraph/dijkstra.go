package roadgraph

import (
	"math"

	"github.com/lixenwraith/citygrid/layout"
)

// Route is a shortest-path result: the ordered vertex sequence from
// source to target and the edge taken out of each vertex in the sequence
// (len(Directions) == len(Vertices)-1).
type Route struct {
	Vertices   []VertexID
	Directions []layout.Side
}

// "No route" is reported via the ok return rather than an error, since it
// is an expected, retried-by-the-caller outcome (see
// parameter.MaxGoalRetries / city.City.Spawn), not a program error.

// ShortestPath runs Dijkstra's algorithm from source to target over g.
// Per spec.md's own design notes, a plain O(V^2) scan is used: this
// graph never has more than a few dozen vertices, so a priority queue
// would add complexity without a measurable benefit.
func (g *RoadGraph) ShortestPath(source, target VertexID) (Route, bool) {
	dist := make(map[VertexID]float64, len(g.Vertices))
	prev := make(map[VertexID]VertexID)
	prevDir := make(map[VertexID]layout.Side)
	visited := make(map[VertexID]bool, len(g.Vertices))

	for _, v := range g.Vertices {
		dist[v] = math.Inf(1)
	}
	dist[source] = 0

	remaining := make(map[VertexID]bool, len(g.Vertices))
	for _, v := range g.Vertices {
		remaining[v] = true
	}

	for len(remaining) > 0 {
		current, ok := pickMinDistance(remaining, dist)
		if !ok {
			break
		}
		delete(remaining, current)
		visited[current] = true

		if math.IsInf(dist[current], 1) {
			continue
		}

		for _, e := range g.Adjacency[current] {
			if visited[e.To] {
				continue
			}
			alt := dist[current] + float64(e.Distance)
			if alt < dist[e.To] {
				dist[e.To] = alt
				prev[e.To] = current
				prevDir[e.To] = e.Outgoing
			}
		}
	}

	if math.IsInf(dist[target], 1) {
		return Route{}, false
	}

	var vertices []VertexID
	var directions []layout.Side
	cur := target
	for cur != source {
		vertices = append([]VertexID{cur}, vertices...)
		d, ok := prevDir[cur]
		if !ok {
			return Route{}, false
		}
		directions = append([]layout.Side{d}, directions...)
		cur = prev[cur]
	}
	vertices = append([]VertexID{source}, vertices...)

	return Route{Vertices: vertices, Directions: directions}, true
}

func pickMinDistance(remaining map[VertexID]bool, dist map[VertexID]float64) (VertexID, bool) {
	best := math.Inf(1)
	var bestV VertexID
	found := false
	for v := range remaining {
		if dist[v] < best {
			best = dist[v]
			bestV = v
			found = true
		}
	}
	return bestV, found
}
