package generator

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/sokoban/levelbuilder/pkg/floodfill"
	"github.com/sokoban/levelbuilder/pkg/model"
)

// ErrInfeasible is returned (and swallowed by the generator's retry loop)
// when a room shape cannot hold the requested targets, holes and
// crates, or when the lock-and-key / fallback placement runs out of
// floor cells before every resource is placed.
var ErrInfeasible = errors.New("generator: room shape cannot hold the requested features")

// placementGraph is the floodfill.Graph FeaturePlacer's cut-vertex check
// scans over: any cell the player could stand on, before any State
// exists yet (walls and unfilled holes are invalid, matching
// State.CanPlayerWalk's pre-fill behavior).
type placementGraph struct{ terrain *model.TerrainGrid }

func (g placementGraph) Width() int  { return g.terrain.Width }
func (g placementGraph) Height() int { return g.terrain.Height }
func (g placementGraph) IsValid(x, y int) bool {
	switch g.terrain.At(x, y) {
	case model.Floor, model.Entrance, model.Exit, model.Target:
		return true
	default:
		return false
	}
}

// PlaceFeatures turns a room shape into a full State: it places the
// player (at an Entrance if useEntranceExit, else a random floor), an
// Exit when applicable, then lock-and-key holes and targets via
// repeated cut-vertex checks, falling back to random placement for
// whatever the cut-vertex pass didn't use up. Grounded on spec.md
// §4.C8 directly — the teacher's domain has no placement analog that
// reasons about graph cut vertices, so this is new code built to the
// same queue/shuffle style as the rest of the package.
func PlaceFeatures(shape *shapeGrid, targetCount, holeCount int, useEntranceExit bool, rng *rand.Rand) (*model.State, error) {
	terrain := model.NewTerrainGrid(shape.w, shape.h)
	var floors []model.Position
	for y := 0; y < shape.h; y++ {
		for x := 0; x < shape.w; x++ {
			if shape.at(x, y) {
				terrain.Set(x, y, model.Floor)
				floors = append(floors, model.Position{X: int32(x), Y: int32(y)})
			}
		}
	}

	crateTotal := targetCount + holeCount
	if len(floors) < 1+targetCount+holeCount+crateTotal {
		return nil, ErrInfeasible
	}

	edgeWalls := collectEdgeWalls(shape)

	var player model.Position
	extraNodes := 0
	if useEntranceExit && len(edgeWalls) >= 2 {
		sort.Slice(edgeWalls, func(i, j int) bool { return edgeWalls[i].Less(edgeWalls[j]) })
		entrance := edgeWalls[0]
		exit := edgeWalls[len(edgeWalls)-1]
		if entrance == exit {
			exit = edgeWalls[len(edgeWalls)-2]
		}
		terrain.Set(int(entrance.X), int(entrance.Y), model.Entrance)
		terrain.Set(int(exit.X), int(exit.Y), model.Exit)
		player = entrance
		extraNodes = 2
	} else {
		i := rng.Intn(len(floors))
		player = floors[i]
		floors = append(floors[:i], floors[i+1:]...)
	}

	available := make(map[model.Position]bool, len(floors))
	for _, f := range floors {
		available[f] = true
	}
	shuffled := sortedPositions(available)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	var holes, targets, crates []model.Position
	var scanner floodfill.Scanner
	graph := placementGraph{terrain: terrain}

	for i := 0; i < len(shuffled) && len(holes) < holeCount; i++ {
		c := shuffled[i]
		if !available[c] {
			continue
		}
		remaining := len(available)
		obstacles := map[model.Position]struct{}{c: {}}
		reached := scanner.Scan(graph, player, obstacles)
		threshold := remaining - 1 + extraNodes
		if len(reached) >= threshold {
			continue // removing c doesn't disconnect anything: not a cut vertex
		}

		reachedSet := make(map[model.Position]bool, len(reached))
		for _, p := range reached {
			reachedSet[p] = true
		}

		var targetCell model.Position
		haveTarget := false
		if len(targets) < targetCount {
			for _, f := range sortedPositions(available) {
				if f == c || reachedSet[f] {
					continue
				}
				targetCell = f
				haveTarget = true
				break
			}
		}

		var crateCell model.Position
		haveCrate := false
		if len(crates) < crateTotal {
			for _, f := range sortedPositions(available) {
				if f == c || (haveTarget && f == targetCell) {
					continue
				}
				if !reachedSet[f] {
					continue
				}
				crateCell = f
				haveCrate = true
				break
			}
		}

		delete(available, c)
		holes = append(holes, c)
		terrain.Set(int(c.X), int(c.Y), model.Hole)
		if haveTarget {
			delete(available, targetCell)
			targets = append(targets, targetCell)
			terrain.Set(int(targetCell.X), int(targetCell.Y), model.Target)
		}
		if haveCrate {
			delete(available, crateCell)
			crates = append(crates, crateCell)
		}
	}

	remainingFloors := sortedPositions(available)
	rng.Shuffle(len(remainingFloors), func(i, j int) {
		remainingFloors[i], remainingFloors[j] = remainingFloors[j], remainingFloors[i]
	})

	take := func() (model.Position, bool) {
		if len(remainingFloors) == 0 {
			return model.Position{}, false
		}
		p := remainingFloors[len(remainingFloors)-1]
		remainingFloors = remainingFloors[:len(remainingFloors)-1]
		return p, true
	}

	for len(holes) < holeCount {
		p, ok := take()
		if !ok {
			return nil, ErrInfeasible
		}
		holes = append(holes, p)
		terrain.Set(int(p.X), int(p.Y), model.Hole)
	}
	for len(targets) < targetCount {
		p, ok := take()
		if !ok {
			return nil, ErrInfeasible
		}
		targets = append(targets, p)
		terrain.Set(int(p.X), int(p.Y), model.Target)
	}
	for len(crates) < crateTotal {
		p, ok := take()
		if !ok {
			return nil, ErrInfeasible
		}
		crates = append(crates, p)
	}

	return model.Create(terrain, player, crates)
}

// sortedPositions returns the members of a position set in canonical
// (x ascending, then y ascending) order. Go randomizes map iteration
// order, so every scan over `available` goes through this instead of
// `range`ing the map directly, keeping cell selection a deterministic
// function of the seeded rng alone.
func sortedPositions(set map[model.Position]bool) []model.Position {
	out := make([]model.Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// collectEdgeWalls returns every wall cell adjacent to at least one
// floor cell in shape.
func collectEdgeWalls(shape *shapeGrid) []model.Position {
	var out []model.Position
	for y := 0; y < shape.h; y++ {
		for x := 0; x < shape.w; x++ {
			if shape.at(x, y) {
				continue
			}
			adjacent := false
			for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= shape.w || ny >= shape.h {
					continue
				}
				if shape.at(nx, ny) {
					adjacent = true
					break
				}
			}
			if adjacent {
				out = append(out, model.Position{X: int32(x), Y: int32(y)})
			}
		}
	}
	return out
}
