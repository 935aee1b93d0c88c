package pather

import (
	"testing"

	"github.com/sokoban/levelbuilder/pkg/model"
)

func straightCorridor(n int) *model.TerrainGrid {
	g := model.NewTerrainGrid(n, 1)
	for x := 0; x < n; x++ {
		g.Set(x, 0, model.Floor)
	}
	return g
}

func TestFindPathStraightLine(t *testing.T) {
	g := straightCorridor(5)
	s, err := model.Create(g, model.Position{X: 0, Y: 0}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	path, ok := FindPath(s, model.Position{X: 0, Y: 0}, model.Position{X: 4, Y: 0})
	if !ok {
		t.Fatalf("expected a path")
	}
	if len(path) != 4 {
		t.Fatalf("expected 4 steps, got %d: %+v", len(path), path)
	}
	if path[len(path)-1] != (model.Position{X: 4, Y: 0}) {
		t.Fatalf("expected path to end at destination, got %+v", path)
	}
}

func TestFindPathBlockedByCrate(t *testing.T) {
	g := straightCorridor(3)
	g.Set(1, 0, model.Target)
	s, err := model.Create(g, model.Position{X: 0, Y: 0}, []model.Position{{X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := FindPath(s, model.Position{X: 0, Y: 0}, model.Position{X: 2, Y: 0}); ok {
		t.Fatalf("expected no path around a blocking crate in a 1-wide corridor")
	}
}

func TestFindPathSameCell(t *testing.T) {
	g := straightCorridor(1)
	s, err := model.Create(g, model.Position{X: 0, Y: 0}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	path, ok := FindPath(s, model.Position{X: 0, Y: 0}, model.Position{X: 0, Y: 0})
	if !ok || len(path) != 0 {
		t.Fatalf("expected trivial empty path, got %+v ok=%v", path, ok)
	}
}

func TestGetWalkableAreaCanonicalPlayer(t *testing.T) {
	g := straightCorridor(4)
	s, err := model.Create(g, model.Position{X: 3, Y: 0}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	reached, canonical := GetWalkableArea(s)
	if len(reached) != 4 {
		t.Fatalf("expected all 4 cells reachable, got %d", len(reached))
	}
	if canonical != (model.Position{X: 0, Y: 0}) {
		t.Fatalf("expected canonical player to be the minimum position, got %+v", canonical)
	}
}

func TestGetWalkableAreaCrateBlocksRegion(t *testing.T) {
	g := straightCorridor(3)
	g.Set(1, 0, model.Target)
	s, err := model.Create(g, model.Position{X: 0, Y: 0}, []model.Position{{X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	reached, canonical := GetWalkableArea(s)
	if len(reached) != 1 {
		t.Fatalf("expected only the player's own cell reachable, got %d: %+v", len(reached), reached)
	}
	if canonical != (model.Position{X: 0, Y: 0}) {
		t.Fatalf("expected canonical player at (0,0), got %+v", canonical)
	}
}
