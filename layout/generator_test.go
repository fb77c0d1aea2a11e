package layout

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/citygrid/parameter"
)

func TestGenerateRejectsOutOfRangeDimension(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Generate(parameter.MinDimension-1, rng); err == nil {
		t.Error("Generate should reject a dimension below MinDimension")
	}
	if _, err := Generate(parameter.MaxDimension+1, rng); err == nil {
		t.Error("Generate should reject a dimension above MaxDimension")
	}
}

func TestGenerateProducesEveryDimensionWithoutDeadLoop(t *testing.T) {
	for dim := parameter.MinDimension; dim <= parameter.MaxDimension; dim++ {
		rng := rand.New(rand.NewSource(int64(dim)))
		c, err := Generate(dim, rng)
		if err != nil {
			t.Fatalf("Generate(%d) returned error: %v", dim, err)
		}
		if c.Dimension != dim {
			t.Errorf("Dimension = %d, want %d", c.Dimension, dim)
		}
		if hasDeadLoop(c) {
			t.Errorf("Generate(%d) produced a layout with a dead loop", dim)
		}
	}
}

func TestGenerateHasNoUnmatchedSide(t *testing.T) {
	for dim := parameter.MinDimension; dim <= parameter.MaxDimension; dim++ {
		rng := rand.New(rand.NewSource(int64(dim) * 42))
		c, err := Generate(dim, rng)
		if err != nil {
			t.Fatalf("Generate(%d) returned error: %v", dim, err)
		}

		for i := 0; i < c.Dimension; i++ {
			for j := 0; j < c.Dimension-1; j++ {
				down := c.Block(i, j)[Down]
				up := c.Block(i, j+1)[Up]
				if down != up {
					t.Errorf("dim=%d: block (%d,%d).Down=%v does not match (%d,%d).Up=%v", dim, i, j, down, i, j+1, up)
				}
			}
		}
		for i := 0; i < c.Dimension-1; i++ {
			for j := 0; j < c.Dimension; j++ {
				right := c.Block(i, j)[Right]
				left := c.Block(i+1, j)[Left]
				if right != left {
					t.Errorf("dim=%d: block (%d,%d).Right=%v does not match (%d,%d).Left=%v", dim, i, j, right, i+1, j, left)
				}
			}
		}
	}
}

func TestBlockWeightAndIsIntersection(t *testing.T) {
	if Lawn.Weight() != 0 {
		t.Errorf("Lawn.Weight() = %d, want 0", Lawn.Weight())
	}
	if StraightH.Weight() != 2 || StraightH.IsIntersection() {
		t.Error("StraightH should have weight 2 and not be an intersection")
	}
	if Cross.Weight() != 4 || !Cross.IsIntersection() {
		t.Error("Cross should have weight 4 and be an intersection")
	}
	if TNoLeft.Weight() != 3 || !TNoLeft.IsIntersection() {
		t.Error("TNoLeft should have weight 3 and be an intersection")
	}
}

func TestOpposite(t *testing.T) {
	cases := map[Side]Side{Right: Left, Up: Down, Left: Right, Down: Up}
	for side, want := range cases {
		if got := Opposite(side); got != want {
			t.Errorf("Opposite(%v) = %v, want %v", side, got, want)
		}
	}
}

func TestOnEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, err := Generate(5, rng)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !c.OnEdge(0, 2) || !c.OnEdge(4, 2) || !c.OnEdge(2, 0) || !c.OnEdge(2, 4) {
		t.Error("OnEdge should be true for every border coordinate")
	}
	if c.OnEdge(2, 2) {
		t.Error("OnEdge should be false for the center coordinate of a 5x5 grid")
	}
}
