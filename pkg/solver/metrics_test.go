package solver

import (
	"context"
	"testing"

	"github.com/sokoban/levelbuilder/pkg/model"
)

func TestComputeMetricsSimplePushWin(t *testing.T) {
	g := model.NewTerrainGrid(5, 1)
	for x := 0; x < 5; x++ {
		g.Set(x, 0, model.Floor)
	}
	g.Set(2, 0, model.Target)
	s, err := model.Create(g, model.Position{X: 0, Y: 0}, []model.Position{{X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ok, sol, _ := IsSolvable(context.Background(), s, DefaultMaxIterations)
	if !ok {
		t.Fatalf("expected solvable")
	}

	m := Compute(sol)
	if m.Length != 1 {
		t.Fatalf("expected length 1, got %d", m.Length)
	}
	if m.Pushes != 1 {
		t.Fatalf("expected 1 push, got %d", m.Pushes)
	}
	if m.Targets != 1 || m.TrueHoles != 0 {
		t.Fatalf("expected 1 target and 0 holes, got targets=%d holes=%d", m.Targets, m.TrueHoles)
	}
	if m.Difficulty < 0.5 || m.Difficulty > 10 {
		t.Fatalf("difficulty %v out of the pinned [0.5, 10] range", m.Difficulty)
	}
}

func TestComputeMetricsDispersionZeroWhenCrateStartsOnTarget(t *testing.T) {
	g := model.NewTerrainGrid(3, 1)
	for x := 0; x < 3; x++ {
		g.Set(x, 0, model.Floor)
	}
	g.Set(1, 0, model.Target)
	s, err := model.Create(g, model.Position{X: 0, Y: 0}, []model.Position{{X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sol := &model.Solution{Initial: s, Moves: nil, StatesExplored: 1}
	m := Compute(sol)
	if m.Dispersion != 0 {
		t.Fatalf("expected zero dispersion when every crate starts on a target, got %v", m.Dispersion)
	}
}
