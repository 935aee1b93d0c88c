package deadsquare

import (
	"testing"

	"github.com/sokoban/levelbuilder/pkg/model"
)

// Grounded on spec.md §8 scenario 6: a 5x3 corridor with a Target at
// (1,1) and a corridor running along y=1. The cell beyond the corridor's
// far end (x=4) is walled off on both rows, so no push can ever land a
// crate at (3,1) and then continue it to (2,1): the pusher has nowhere
// to stand at (4,1) to perform that push.
func buildCorridor() *model.TerrainGrid {
	g := model.NewTerrainGrid(5, 3)
	for x := 0; x < 5; x++ {
		for y := 0; y < 3; y++ {
			g.Set(x, y, model.Wall)
		}
	}
	for x := 1; x <= 3; x++ {
		g.Set(x, 0, model.Floor)
		g.Set(x, 1, model.Floor)
	}
	g.Set(1, 1, model.Target)
	return g
}

func TestDeadSquareCorridor(t *testing.T) {
	g := buildCorridor()
	m := Build(g)

	if m.IsDeadSquare(3, 1) != true {
		t.Fatalf("expected (3,1) to be a dead square (pusher can't stand at (4,1) from the right)")
	}
	if m.IsDeadSquare(2, 1) != false {
		t.Fatalf("expected (2,1) to be safe")
	}
}

func TestDeadSquareWallsAndOutOfBoundsAreDead(t *testing.T) {
	g := model.NewTerrainGrid(3, 3)
	g.Set(1, 1, model.Target)
	m := Build(g)
	if !m.IsDeadSquare(0, 0) {
		t.Fatalf("expected wall cell to be dead")
	}
	if !m.IsDeadSquare(-1, 0) {
		t.Fatalf("expected out-of-bounds cell to be dead")
	}
}
