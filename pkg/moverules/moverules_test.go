package moverules

import (
	"testing"

	"github.com/sokoban/levelbuilder/pkg/model"
)

func TestTryBuildMovePlayerStep(t *testing.T) {
	g := model.NewTerrainGrid(3, 1)
	for x := 0; x < 3; x++ {
		g.Set(x, 0, model.Floor)
	}
	s, err := model.Create(g, model.Position{X: 0, Y: 0}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mv, ok := TryBuildMove(s, model.Right)
	if !ok || mv.Kind != model.PlayerMove {
		t.Fatalf("expected a PlayerMove, got %+v ok=%v", mv, ok)
	}
}

func TestTryBuildMoveCratePush(t *testing.T) {
	g := model.NewTerrainGrid(5, 1)
	g.Set(0, 0, model.Floor)
	g.Set(1, 0, model.Floor)
	g.Set(2, 0, model.Target)
	g.Set(3, 0, model.Floor)
	g.Set(4, 0, model.Floor)
	s, err := model.Create(g, model.Position{X: 0, Y: 0}, []model.Position{{X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mv, ok := TryBuildMove(s, model.Right)
	if !ok || mv.Kind != model.CratePush {
		t.Fatalf("expected a CratePush, got %+v ok=%v", mv, ok)
	}
	if mv.CrateFrom != (model.Position{X: 1, Y: 0}) || mv.CrateTo != (model.Position{X: 2, Y: 0}) {
		t.Fatalf("unexpected crate endpoints: %+v", mv)
	}
	next, err := ApplyMove(s, mv)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if !next.IsCrateAt(2, 0) {
		t.Fatalf("expected crate at (2,0) after push")
	}
}

func TestTryBuildMoveBlockedByWall(t *testing.T) {
	g := model.NewTerrainGrid(2, 1)
	g.Set(0, 0, model.Floor)
	g.Set(1, 0, model.Wall)
	s, err := model.Create(g, model.Position{X: 0, Y: 0}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := TryBuildMove(s, model.Right); ok {
		t.Fatalf("expected no legal move into a wall")
	}
}
