package model

import "testing"

func smallCorridor() *TerrainGrid {
	// 5x1: Floor Floor Floor Floor Floor, with a Target at x=2.
	g := NewTerrainGrid(5, 1)
	for x := 0; x < 5; x++ {
		g.Set(x, 0, Floor)
	}
	g.Set(2, 0, Target)
	return g
}

func TestCreateSortsCratesCanonically(t *testing.T) {
	g := smallCorridor()
	crates := []Position{{X: 3, Y: 0}, {X: 1, Y: 0}}
	s, err := Create(g, Position{X: 0, Y: 0}, crates)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got := s.Crates()
	want := []Position{{X: 1, Y: 0}, {X: 3, Y: 0}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("crates not canonically sorted: got %v want %v", got, want)
	}
}

func TestCreateRejectsPlayerOnCrate(t *testing.T) {
	g := smallCorridor()
	_, err := Create(g, Position{X: 1, Y: 0}, []Position{{X: 1, Y: 0}})
	if err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestWithCratePushIntoHoleRemovesCrate(t *testing.T) {
	g := NewTerrainGrid(4, 1)
	g.Set(0, 0, Floor)
	g.Set(1, 0, Floor)
	g.Set(2, 0, Hole)
	g.Set(3, 0, Target)
	s, err := Create(g, Position{X: 0, Y: 0}, []Position{{X: 1, Y: 0}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	next := s.WithCratePush(Position{X: 1, Y: 0}, Position{X: 1, Y: 0}, Position{X: 2, Y: 0})
	if len(next.Crates()) != 0 {
		t.Fatalf("expected crate to vanish into hole, got %v", next.Crates())
	}
	if !next.IsFilledHoleAt(2, 0) {
		t.Fatalf("expected (2,0) to become a filled hole")
	}
	if s.FilledHoles().Len() != 0 {
		t.Fatalf("original state's filledHoles must be unaffected (COW)")
	}
}

func TestWithCratePushReordersCanonically(t *testing.T) {
	g := NewTerrainGrid(5, 1)
	for x := 0; x < 5; x++ {
		g.Set(x, 0, Floor)
	}
	s, err := Create(g, Position{X: 0, Y: 0}, []Position{{X: 1, Y: 0}, {X: 3, Y: 0}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Push the crate at (1,0) to (2,0); result must remain sorted.
	next := s.WithCratePush(Position{X: 1, Y: 0}, Position{X: 1, Y: 0}, Position{X: 2, Y: 0})
	want := []Position{{X: 2, Y: 0}, {X: 3, Y: 0}}
	got := next.Crates()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestHashInvariantUnderFilledHolePermutation(t *testing.T) {
	g := NewTerrainGrid(3, 3)
	g.Set(0, 0, Hole)
	g.Set(1, 1, Hole)

	a, err := Create(g, Position{X: 2, Y: 2}, nil, FilledHoles{}.Add(Position{X: 0, Y: 0}).Add(Position{X: 1, Y: 1}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := Create(g, Position{X: 2, Y: 2}, nil, FilledHoles{}.Add(Position{X: 1, Y: 1}).Add(Position{X: 0, Y: 0}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("expected states with same filled holes in different insertion order to be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("expected equal hashes, got %d and %d", a.Hash(), b.Hash())
	}
}

func TestIsWinRequiresPlayerAtExitWhenPresent(t *testing.T) {
	g := NewTerrainGrid(4, 1)
	g.Set(0, 0, Entrance)
	g.Set(1, 0, Floor)
	g.Set(2, 0, Target)
	g.Set(3, 0, Exit)
	s, err := Create(g, Position{X: 0, Y: 0}, []Position{{X: 2, Y: 0}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.IsWin() {
		t.Fatalf("expected not won: crate already on target but player not at exit")
	}
	atExit := s.WithPlayerMove(Position{X: 3, Y: 0})
	if !atExit.IsWin() {
		t.Fatalf("expected win: target filled and player at exit")
	}
}
