package layout

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lixenwraith/citygrid/parameter"
)

// ErrInvalidDimension is returned when Generate is asked for a dimension
// outside [parameter.MinDimension, parameter.MaxDimension].
var ErrInvalidDimension = errors.New("layout: dimension out of range")

// CityLayout is an NxN grid of road Blocks with no dead loops.
type CityLayout struct {
	Dimension int
	Blocks    [][]Block
}

// Block returns the block at grid coordinates (i, j).
func (c *CityLayout) Block(i, j int) Block {
	return c.Blocks[i][j]
}

// OnEdge reports whether (i, j) lies on the border of the grid.
func (c *CityLayout) OnEdge(i, j int) bool {
	return i == 0 || i == c.Dimension-1 || j == 0 || j == c.Dimension-1
}

// options is the full legal variant table, used by the constraint solver
// when filling interior tiles.
var options = [12]Block{
	Lawn,
	StraightH, StraightV,
	CurveNE, CurveNW, CurveSW, CurveSE,
	TNoLeft, TNoUp, TNoRight, TNoDown,
	Cross,
}

// Generate produces a validated dim x dim CityLayout, restarting internally
// (up to parameter.MaxGenerationAttempts times) whenever the constraint
// solver paints itself into a corner or the result contains a dead loop.
func Generate(dim int, rng *rand.Rand) (*CityLayout, error) {
	if dim < parameter.MinDimension || dim > parameter.MaxDimension {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	for attempt := 0; attempt < parameter.MaxGenerationAttempts; attempt++ {
		layout, ok := tryGenerate(dim, rng)
		if ok {
			return layout, nil
		}
	}
	return nil, fmt.Errorf("layout: no valid %dx%d layout found after %d attempts", dim, dim, parameter.MaxGenerationAttempts)
}

// tryGenerate attempts one full layout build. It returns ok=false if the
// constraint solver could not fill every interior tile, or if the result
// contains a dead loop — both signal the caller to retry from scratch.
func tryGenerate(dim int, rng *rand.Rand) (*CityLayout, bool) {
	blocks := make([][]Block, dim)
	placed := make([][]bool, dim)
	for i := range blocks {
		blocks[i] = make([]Block, dim)
		placed[i] = make([]bool, dim)
	}

	placeBorders(blocks, placed, dim)
	placeCornerConnectors(blocks, placed, dim)
	placeCenterTemplate(blocks, placed, dim)

	if !fillInterior(blocks, placed, dim, rng) {
		return nil, false
	}

	layout := &CityLayout{Dimension: dim, Blocks: blocks}
	if hasDeadLoop(layout) {
		return nil, false
	}
	return layout, true
}

func set(blocks [][]Block, placed [][]bool, i, j int, b Block) {
	blocks[i][j] = b
	placed[i][j] = true
}

// placeBorders lays the outer ring: lawn corners, and alternating straight
// tiles forming regular border exits, with parity depending on dim.
func placeBorders(blocks [][]Block, placed [][]bool, dim int) {
	for i := 0; i < dim; i++ {
		// top row (j==0), then the bottom row (j==dim-1), whose exit
		// parity depends on whether dim is odd or even.
		if i%2 == 1 {
			set(blocks, placed, i, 0, StraightV)
		} else {
			set(blocks, placed, i, 0, Lawn)
		}
		if i == dim-1 {
			set(blocks, placed, i, 0, Lawn)
		}

		if dim%2 == 1 {
			if i%2 == 1 {
				set(blocks, placed, i, dim-1, StraightV)
			} else {
				set(blocks, placed, i, dim-1, Lawn)
			}
		} else {
			if i%2 == 0 {
				set(blocks, placed, i, dim-1, StraightV)
			} else {
				set(blocks, placed, i, dim-1, Lawn)
			}
		}
		if i == 0 || i == dim-1 {
			set(blocks, placed, i, dim-1, Lawn)
		}
	}

	for j := 1; j < dim-1; j++ {
		if dim%2 == 0 {
			if j%2 == 0 {
				set(blocks, placed, 0, j, StraightH)
			} else {
				set(blocks, placed, 0, j, Lawn)
			}
		} else {
			if j%2 == 1 {
				set(blocks, placed, 0, j, StraightH)
			} else {
				set(blocks, placed, 0, j, Lawn)
			}
		}

		if j%2 == 1 {
			set(blocks, placed, dim-1, j, StraightH)
		} else {
			set(blocks, placed, dim-1, j, Lawn)
		}
	}
}

// placeCornerConnectors places the small fixed connector pieces near the
// four corners, for dim >= 6.
func placeCornerConnectors(blocks [][]Block, placed [][]bool, dim int) {
	if dim < 6 {
		return
	}
	if dim%2 == 1 {
		set(blocks, placed, 1, 1, TNoRight)
		set(blocks, placed, dim-2, 1, TNoDown)
		set(blocks, placed, 1, dim-2, TNoUp)
		set(blocks, placed, dim-2, dim-2, TNoLeft)
	} else {
		set(blocks, placed, 1, 2, TNoRight)
		set(blocks, placed, dim-3, 1, TNoDown)
		set(blocks, placed, 2, dim-2, TNoUp)
		set(blocks, placed, dim-2, dim-3, TNoLeft)
	}
}

// placeCenterTemplate places the deterministic per-dimension center
// pattern; the patterns themselves have no general formula and are
// reproduced verbatim from the reference implementation.
func placeCenterTemplate(blocks [][]Block, placed [][]bool, dim int) {
	switch dim {
	case 4:
		set(blocks, placed, 1, 1, StraightV)
		set(blocks, placed, 1, 2, TNoDown)
		set(blocks, placed, 2, 1, CurveSE)
		set(blocks, placed, 2, 2, TNoRight)
	case 5:
		set(blocks, placed, 2, 2, TNoUp)
		set(blocks, placed, 3, 2, CurveNW)
		set(blocks, placed, 2, 3, CurveNE)
	case 6:
		set(blocks, placed, 2, 2, CurveNE)
		set(blocks, placed, 2, 3, Lawn)
		set(blocks, placed, 3, 2, TNoUp)
		set(blocks, placed, 3, 3, StraightV)
	case 7:
		set(blocks, placed, 2, 2, TNoUp)
		set(blocks, placed, 2, 4, Cross)
		set(blocks, placed, 4, 2, Cross)
		set(blocks, placed, 4, 4, TNoDown)
		set(blocks, placed, 3, 2, StraightH)
		set(blocks, placed, 3, 4, StraightH)
		set(blocks, placed, 2, 3, StraightV)
		set(blocks, placed, 4, 3, StraightV)
		set(blocks, placed, 3, 3, Lawn)
		set(blocks, placed, 1, 4, CurveNE)
		set(blocks, placed, 4, 5, Lawn)
		set(blocks, placed, 3, 5, CurveSW)
	case 8:
		set(blocks, placed, 1, 1, CurveNE)
		set(blocks, placed, 1, 2, TNoUp)
		set(blocks, placed, 2, 1, TNoUp)
		set(blocks, placed, 2, 2, CurveNW)
		set(blocks, placed, 5, 2, Lawn)
		set(blocks, placed, 2, 5, Lawn)
		set(blocks, placed, 3, 3, CurveSE)
		set(blocks, placed, 4, 3, Cross)
		set(blocks, placed, 3, 4, CurveNW)
		set(blocks, placed, 4, 4, StraightV)
		set(blocks, placed, 2, 4, StraightH)
		set(blocks, placed, 2, 3, Lawn)
		set(blocks, placed, 4, 2, StraightV)
		set(blocks, placed, 3, 2, Lawn)
		set(blocks, placed, 6, 4, StraightV)
	case 9:
		set(blocks, placed, 3, 3, Lawn)
		set(blocks, placed, 4, 3, StraightV)
		set(blocks, placed, 5, 3, Lawn)
		set(blocks, placed, 3, 4, StraightH)
		set(blocks, placed, 4, 4, Cross)
		set(blocks, placed, 5, 4, StraightH)
		set(blocks, placed, 3, 5, Lawn)
		set(blocks, placed, 4, 5, StraightV)
		set(blocks, placed, 5, 5, Lawn)
		set(blocks, placed, 2, 1, Lawn)
		set(blocks, placed, 7, 2, Lawn)
		set(blocks, placed, 1, 6, Lawn)
		set(blocks, placed, 6, 7, CurveNW)
		set(blocks, placed, 7, 6, CurveSW)
		set(blocks, placed, 7, 5, TNoDown)
		set(blocks, placed, 7, 4, StraightV)
		set(blocks, placed, 2, 3, StraightV)
	}
}

// sideRequirement reports what Side s of blocks[i][j] must be, given an
// already-placed neighbor: 1 if the neighbor's opposing side is set, 0 if
// it is clear, or -1 (unconstrained) if the neighbor is not yet placed.
func sideRequirement(blocks [][]Block, placed [][]bool, i, j int, opposing Side) int {
	if i < 0 || j < 0 || i >= len(blocks) || j >= len(blocks) {
		return -1
	}
	if !placed[i][j] {
		return -1
	}
	if blocks[i][j][opposing] {
		return 1
	}
	return 0
}

// findSuitable returns a uniformly random legal Block satisfying every
// defined (non -1) requirement in reqs, or false if none satisfies all of
// them.
func findSuitable(reqs [4]int, rng *rand.Rand) (Block, bool) {
	var candidates []Block
	for _, opt := range options {
		ok := true
		for side := 0; side < 4; side++ {
			if reqs[side] == -1 {
				continue
			}
			want := reqs[side] == 1
			if opt[side] != want {
				ok = false
				break
			}
		}
		if ok {
			candidates = append(candidates, opt)
		}
	}
	if len(candidates) == 0 {
		var zero Block
		return zero, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// fillInterior fills every interior tile not already placed by the border
// or template passes, propagating constraints from already-placed
// neighbors. Returns false if any tile has no legal option.
func fillInterior(blocks [][]Block, placed [][]bool, dim int, rng *rand.Rand) bool {
	for i := 1; i < dim-1; i++ {
		for j := 1; j < dim-1; j++ {
			if placed[i][j] {
				continue
			}
			reqs := [4]int{
				sideRequirement(blocks, placed, i+1, j, Left),
				sideRequirement(blocks, placed, i, j-1, Down),
				sideRequirement(blocks, placed, i-1, j, Right),
				sideRequirement(blocks, placed, i, j+1, Up),
			}
			b, ok := findSuitable(reqs, rng)
			if !ok {
				return false
			}
			set(blocks, placed, i, j, b)
		}
	}
	return true
}

// dirOpposite maps each side to the side across the tile, i.e. the side
// the DFS arrives from after stepping out through it, matching the
// roadgraph package's direction convention.
var dirOpposite = [4]Side{Left, Down, Right, Up}

// hasDeadLoop runs a DFS from every not-yet-visited interior tile. Lawn
// and edge tiles are pre-marked visited. Entering an intersection resets
// the loop-origin pointer; a dead loop is found when traversal returns to
// the current origin without passing through another intersection first.
func hasDeadLoop(c *CityLayout) bool {
	dim := c.Dimension
	visited := make([][]bool, dim)
	for i := range visited {
		visited[i] = make([]bool, dim)
		for j := range visited[i] {
			b := c.Blocks[i][j]
			visited[i][j] = b.Weight() == 0 || c.OnEdge(i, j)
		}
	}

	dead := false
	var dfs func(i, j, originI, originJ int, hasOrigin bool, previous Side, hasPrevious bool)
	dfs = func(i, j, originI, originJ int, hasOrigin bool, previous Side, hasPrevious bool) {
		visited[i][j] = true
		b := c.Blocks[i][j]
		if b.IsIntersection() {
			originI, originJ, hasOrigin = i, j, true
		}

		step := func(side Side, ni, nj int) {
			if !b[side] {
				return
			}
			if hasPrevious && previous == side {
				return
			}
			if visited[ni][nj] {
				if hasOrigin && ni == originI && nj == originJ {
					dead = true
				}
				return
			}
			dfs(ni, nj, originI, originJ, hasOrigin, dirOpposite[side], true)
		}

		step(Right, i+1, j)
		step(Up, i, j-1)
		step(Left, i-1, j)
		step(Down, i, j+1)
	}

	for i := 1; i < dim-1; i++ {
		for j := 1; j < dim-1; j++ {
			if !visited[i][j] {
				dfs(i, j, 0, 0, false, 0, false)
			}
		}
	}
	return dead
}
