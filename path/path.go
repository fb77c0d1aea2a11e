// Package path builds the per-vehicle polyline route: a pre-spawn tail,
// one piece per tile traversed, and a post-exit tail, sampled as line and
// curve pieces in the conventions described in parameter/geometry.go.
package path

import (
	"errors"

	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/roadgraph"
)

// ErrUnreachable is returned by Plan when no route exists between entry
// and goal in the current layout.
var ErrUnreachable = errors.New("path: goal unreachable from entry")

// Point is a 2D coordinate sample.
type Point = roadgraph.Point

// Piece is one tile's worth of polyline samples.
type Piece struct {
	Samples []Point
}

// Path is a vehicle's full route: an ordered sequence of pieces plus
// progress bookkeeping and the spawn/goal metadata needed to reconstruct
// the vehicle's pre-spawn pose and arrival condition.
type Path struct {
	Pieces []Piece

	// SpawnPosition and SpawnRotation describe where and facing which
	// way (degrees) a vehicle should appear when this path is assigned.
	SpawnPosition Point
	SpawnRotation float64

	// Goal is the final coordinate the path delivers the vehicle to.
	Goal Point

	// Radius is the per-vehicle-kind lane-following tolerance.
	Radius float64

	// PieceIndex and SampleIndex track progress along Pieces.
	PieceIndex  int
	SampleIndex int
}

// Limit is the index of the path's last piece.
func (p *Path) Limit() int {
	return len(p.Pieces) - 1
}

// Window returns the concatenated samples of up to four consecutive
// pieces starting at PieceIndex — the "relevant coordinates" a vehicle
// reasons about at any given moment. SampleIndex indexes into this
// concatenated window, not into a single piece's own sample list.
func (p *Path) Window() []Point {
	end := p.PieceIndex + 3
	if end > p.Limit() {
		end = p.Limit()
	}
	var out []Point
	for i := p.PieceIndex; i <= end; i++ {
		out = append(out, p.Pieces[i].Samples...)
	}
	return out
}

// AdvanceSample moves progress one sample forward within the current
// window, without crossing into the next piece.
func (p *Path) AdvanceSample() {
	p.SampleIndex++
}

// AdvancePiece moves progress to the start of the next piece, sliding
// the window forward by one piece and discarding the piece that falls
// out the back.
func (p *Path) AdvancePiece() {
	p.PieceIndex++
	p.SampleIndex = 0
}

// RadiusForKind returns the lane-following tolerance for a vehicle kind.
func RadiusForKind(kind parameter.Kind) float64 {
	return parameter.PathRadiusFactor[kind] * parameter.PathRadius
}
