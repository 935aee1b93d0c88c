// Package solver decides solvability of a State within bounded
// iterations and produces a witness move sequence when solvable.
// Grounded on the teacher's pkg/validator/solvability.go
// (isSolvableExactWithStats): a plain slice-backed FIFO queue, a visited
// set keyed by a cheap hash of the state, and a states-explored counter
// checked against a maxStates-style budget every iteration. The
// teacher's state key is an exact vine bitmask with no collisions
// possible; ours is State.Hash(), a 64-bit mix, so in principle two
// distinct states could collide. At the iteration counts this solver is
// bounded to (at most ten million per call), the birthday-bound
// probability of a collision is negligible, and it is the same
// trade-off any hash-keyed visited-set BFS makes.
package solver

import (
	"context"
	"time"

	"github.com/sokoban/levelbuilder/pkg/deadsquare"
	"github.com/sokoban/levelbuilder/pkg/model"
)

// DefaultMaxIterations is the iteration cap for the standalone API.
// Generator-embedded calls pass a much tighter cap (see pkg/generator).
const DefaultMaxIterations = 10_000_000

// wallClockCap is the absolute safety ceiling on search duration,
// independent of the caller's iteration budget.
const wallClockCap = 60 * time.Second

type node struct {
	state      *model.State
	move       model.Move
	parentHash uint64
	hasParent  bool
}

// IsSolvable runs a breadth-first search over the state graph reachable
// from state, stopping at maxIterations expansions, the wall-clock cap,
// or cancellation via ctx, whichever comes first. It returns whether a
// solution was found, the witness Solution when found, and the number
// of states explored.
func IsSolvable(ctx context.Context, state *model.State, maxIterations int) (bool, *model.Solution, int) {
	deadMap := deadsquare.Build(state.Terrain())

	rootHash := state.Hash()
	visited := map[uint64]node{rootHash: {state: state}}
	queue := make([]uint64, 0, 256)
	queue = append(queue, rootHash)

	deadline := time.Now().Add(wallClockCap)
	iter := 0

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return false, nil, iter
		default:
		}
		if iter > maxIterations || time.Now().After(deadline) {
			return false, nil, iter
		}

		h := queue[0]
		queue = queue[1:]
		cur := visited[h]

		if cur.state.IsWin() {
			sol := reconstruct(visited, rootHash, h)
			sol.StatesExplored = iter
			return true, sol, iter
		}

		for _, m := range GenerateValidMoves(cur.state, deadMap) {
			next, err := model.Apply(cur.state, m)
			if err != nil {
				continue
			}
			nh := next.Hash()
			if _, ok := visited[nh]; ok {
				continue
			}
			visited[nh] = node{state: next, move: m, parentHash: h, hasParent: true}
			queue = append(queue, nh)
		}
		iter++
	}

	return false, nil, iter
}

// FindSolutionPath runs IsSolvable with the standalone API's default
// budget and no cancellation, returning the witness move sequence or
// nil if state is unsolvable within that budget.
func FindSolutionPath(state *model.State) []model.Move {
	ok, sol, _ := IsSolvable(context.Background(), state, DefaultMaxIterations)
	if !ok {
		return nil
	}
	return sol.Moves
}

func reconstruct(visited map[uint64]node, rootHash, winHash uint64) *model.Solution {
	var moves []model.Move
	h := winHash
	for h != rootHash && visited[h].hasParent {
		e := visited[h]
		moves = append(moves, e.move)
		h = e.parentHash
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return &model.Solution{Initial: visited[rootHash].state, Moves: moves}
}

// GenerateValidMoves enumerates the legal moves from s's player position
// in the fixed direction order (Up, Down, Left, Right), pruning crate
// pushes into dead squares (unless the destination is itself a Target)
// and into static corner deadlocks.
func GenerateValidMoves(s *model.State, deadMap *deadsquare.Map) []model.Move {
	moves := make([]model.Move, 0, 4)
	player := s.Player()
	terrain := s.Terrain()

	for _, d := range model.CardinalDirections {
		to := player.Add(model.Position(d))
		tx, ty := int(to.X), int(to.Y)
		if !terrain.InBounds(tx, ty) {
			continue
		}

		if s.CanPlayerWalk(tx, ty) {
			moves = append(moves, model.Move{
				Kind:       model.PlayerMove,
				PlayerFrom: player,
				PlayerTo:   to,
			})
			continue
		}

		if !s.IsCrateAt(tx, ty) {
			continue
		}
		crateTo := to.Add(model.Position(d))
		ctx, cty := int(crateTo.X), int(crateTo.Y)
		if !s.CanReceiveCrate(ctx, cty) {
			continue
		}
		isTarget := terrain.AtPos(crateTo) == model.Target
		if deadMap.IsDeadSquare(ctx, cty) && !isTarget {
			continue
		}
		if IsStaticCornerDeadlock(s, crateTo) {
			continue
		}
		moves = append(moves, model.Move{
			Kind:       model.CratePush,
			PlayerFrom: player,
			PlayerTo:   to,
			CrateFrom:  to,
			CrateTo:    crateTo,
			Direction:  d,
		})
	}
	return moves
}

// IsStaticCornerDeadlock reports whether pos is a permanent corner trap:
// blocked on both axes by walls or the grid edge. A Target cell is never
// a deadlock, since a crate resting there is already placed.
func IsStaticCornerDeadlock(s *model.State, pos model.Position) bool {
	terrain := s.Terrain()
	if terrain.AtPos(pos) == model.Target {
		return false
	}
	x, y := int(pos.X), int(pos.Y)
	blockedX := terrain.At(x-1, y) == model.Wall || terrain.At(x+1, y) == model.Wall
	blockedY := terrain.At(x, y-1) == model.Wall || terrain.At(x, y+1) == model.Wall
	return blockedX && blockedY
}
