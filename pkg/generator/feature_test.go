package generator

import (
	"math/rand"
	"testing"

	"github.com/sokoban/levelbuilder/pkg/model"
)

// openRoom builds a fully-open w×h shapeGrid: every cell floor. Useful
// for exercising PlaceFeatures without depending on GenerateLayout.
func openRoom(w, h int) *shapeGrid {
	g := newShapeGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.set(x, y, true)
		}
	}
	return g
}

func TestPlaceFeaturesProducesRequestedCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	shape := openRoom(8, 8)
	state, err := PlaceFeatures(shape, 2, 2, false, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(state.Crates()); got != 4 {
		t.Fatalf("expected 4 crates (2 targets + 2 holes), got %d", got)
	}
	targets := state.Terrain().Targets()
	if len(targets) != 2 {
		t.Fatalf("expected 2 target cells, got %d", len(targets))
	}
	holeCount := 0
	state.Terrain().Each(func(x, y int, terr model.Terrain) {
		if terr == model.Hole {
			holeCount++
		}
	})
	if holeCount != 2 {
		t.Fatalf("expected 2 hole cells, got %d", holeCount)
	}
}

func TestPlaceFeaturesInfeasibleWhenRoomTooSmall(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	shape := openRoom(2, 2) // 4 floor cells, nowhere near enough for targets+holes+crates+player
	_, err := PlaceFeatures(shape, 3, 3, false, rng)
	if err != ErrInfeasible {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

func TestPlaceFeaturesPlayerAtEntranceWhenRequested(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	shape := openRoom(9, 9)
	// Wall off the border so there are edge walls to host the Entrance
	// and Exit, as GenerateLayout's padding always provides.
	for i := 0; i < 9; i++ {
		shape.set(i, 0, false)
		shape.set(i, 8, false)
		shape.set(0, i, false)
		shape.set(8, i, false)
	}
	state, err := PlaceFeatures(shape, 1, 1, true, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Terrain().AtPos(state.Player()) != model.Entrance {
		t.Fatalf("expected the player to start on the Entrance cell")
	}
	sawExit := false
	state.Terrain().Each(func(x, y int, terr model.Terrain) {
		if terr == model.Exit {
			sawExit = true
		}
	})
	if !sawExit {
		t.Fatalf("expected an Exit cell to be placed")
	}
}

func TestPlaceFeaturesCratesDoNotCoincideWithPlayer(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	shape := openRoom(8, 8)
	state, err := PlaceFeatures(shape, 2, 1, false, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range state.Crates() {
		if c == state.Player() {
			t.Fatalf("expected no crate to coincide with the player's start position")
		}
	}
}
