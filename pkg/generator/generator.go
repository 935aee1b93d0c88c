// Package generator implements the level-generation pipeline:
// template-tiled room shaping (LayoutGenerator), cut-vertex
// lock-and-key feature placement (FeaturePlacer), and the retry loop
// that wraps both around the solver (LevelGenerator). Grounded on the
// teacher's pkg/generator/generator.go retry-with-reseed structure
// (generateSingleLevel's `rand.NewSource(seed + int64(attempts)*7919)`
// per-attempt reseed and maxRetries loop), generalized from vine
// placement to Sokoban room/feature generation.
package generator

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sokoban/levelbuilder/pkg/model"
	"github.com/sokoban/levelbuilder/pkg/solver"
)

// MaxAttempts and the wall-clock cap bound a single worker's retry
// loop, per spec.md §4.C9.
const (
	MaxAttempts               = 5000
	attemptWallClock          = 60 * time.Second
	generatorSolverIterations = 1500
	attemptReseedPrime        = 7919
)

// ErrGeneratorExhausted is returned when every attempt in a worker's
// retry loop failed to produce a solvable level.
var ErrGeneratorExhausted = errors.New("generator: exhausted all attempts without a solvable level")

// Config is the enumerated generation configuration from spec.md §6.
type Config struct {
	MinSize, MaxSize       int
	TargetCount, HoleCount int
	UseEntranceExit        bool
}

// Result is what one successful LevelGenerator attempt produces.
type Result struct {
	State          *model.State
	Solution       *model.Solution
	Metrics        solver.Metrics
	Attempts       int
	StatesExplored int
}

// GenerateLevel runs the retry loop: each attempt draws a random room
// size, builds a shape, places features, and tries to solve it with a
// tight iteration cap. It stops at MaxAttempts, the wall-clock cap, or
// ctx cancellation, whichever comes first.
func GenerateLevel(ctx context.Context, cfg Config, workerSeed int64) (*Result, error) {
	deadline := time.Now().Add(attemptWallClock)
	totalStates := 0

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if time.Now().After(deadline) {
			break
		}

		rng := rand.New(rand.NewSource(workerSeed + int64(attempt)*attemptReseedPrime))
		w := drawSize(cfg.MinSize, cfg.MaxSize, rng)
		h := drawSize(cfg.MinSize, cfg.MaxSize, rng)

		shape := GenerateLayout(w, h, rng)
		state, err := PlaceFeatures(shape, cfg.TargetCount, cfg.HoleCount, cfg.UseEntranceExit, rng)
		if err != nil {
			continue
		}

		ok, sol, states := solver.IsSolvable(ctx, state, generatorSolverIterations)
		totalStates += states
		if !ok {
			continue
		}

		finalState, finalSolution := applyPerimeterPostProcessing(state, sol)
		return &Result{
			State:          finalState,
			Solution:       finalSolution,
			Metrics:        solver.Compute(finalSolution),
			Attempts:       attempt,
			StatesExplored: totalStates,
		}, nil
	}

	return nil, ErrGeneratorExhausted
}

func drawSize(minSize, maxSize int, rng *rand.Rand) int {
	if maxSize <= minSize {
		return minSize
	}
	return minSize + rng.Intn(maxSize-minSize)
}

// applyPerimeterPostProcessing implements spec.md §4.C8's outer
// post-processing step: every perimeter cell that isn't an
// Entrance/Exit becomes Wall, and every remaining inner Wall becomes a
// FakeHole (cosmetically a hole, but excluded from difficulty metrics).
// It builds a fresh TerrainGrid rather than mutating the accepted one,
// since TerrainGrid is shared by reference and treated as immutable
// once a State exists over it.
func applyPerimeterPostProcessing(state *model.State, sol *model.Solution) (*model.State, *model.Solution) {
	terrain := state.Terrain()
	w, h := terrain.Width, terrain.Height
	out := model.NewTerrainGrid(w, h)

	terrain.Each(func(x, y int, t model.Terrain) {
		onPerimeter := x == 0 || y == 0 || x == w-1 || y == h-1
		switch {
		case onPerimeter && (t == model.Entrance || t == model.Exit):
			out.Set(x, y, t)
		case onPerimeter:
			out.Set(x, y, model.Wall)
		case t == model.Wall:
			out.Set(x, y, model.FakeHole)
		default:
			out.Set(x, y, t)
		}
	})

	// Crates, filled holes and player position are untouched by
	// relabeling wall cells, so the new State mirrors the old one
	// exactly but over the post-processed terrain.
	newState, err := model.Create(out, state.Player(), state.Crates(), state.FilledHoles())
	if err != nil {
		// Post-processing only ever relabels Wall<->FakeHole/Wall, which
		// can't violate any State invariant; this path is unreachable.
		return state, sol
	}

	newSolution := &model.Solution{
		Initial:        newState,
		Moves:          sol.Moves,
		StatesExplored: sol.StatesExplored,
	}
	return newState, newSolution
}
