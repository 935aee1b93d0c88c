// Package pather answers player-only reachability questions against a
// State: point-to-point path reconstruction for interactive controllers,
// and a full walkable-area scan for equivalence-class hashing. Grounded
// on spec.md §4.C5; the BFS shape follows pkg/floodfill but needs parent
// pointers for path reconstruction, so it does not reuse Scanner
// directly.
package pather

import "github.com/sokoban/levelbuilder/pkg/model"

// FindPath returns the sequence of cells from the first step after from
// through to, inclusive, or (nil, false) if to is unreachable from from.
// BFS is over cells satisfying state.CanPlayerWalk.
func FindPath(s *model.State, from, to model.Position) ([]model.Position, bool) {
	if from == to {
		return nil, true
	}
	terrain := s.Terrain()
	w, h := terrain.Width, terrain.Height

	visited := make([]bool, w*h)
	parent := make([]int, w*h)
	idx := func(p model.Position) int { return int(p.Y)*w + int(p.X) }

	queue := make([]model.Position, 0, 64)
	queue = append(queue, from)
	visited[idx(from)] = true
	parent[idx(from)] = -1

	found := false
	for head := 0; head < len(queue) && !found; head++ {
		cur := queue[head]
		for _, d := range model.CardinalDirections {
			next := cur.Add(model.Position(d))
			x, y := int(next.X), int(next.Y)
			if x < 0 || y < 0 || x >= w || y >= h {
				continue
			}
			if visited[idx(next)] {
				continue
			}
			if !s.CanPlayerWalk(x, y) {
				continue
			}
			visited[idx(next)] = true
			parent[idx(next)] = idx(cur)
			queue = append(queue, next)
			if next == to {
				found = true
				break
			}
		}
	}
	if !visited[idx(to)] {
		return nil, false
	}

	// Walk parent pointers back from `to` to `from`, then reverse.
	path := []model.Position{}
	cur := to
	for cur != from {
		path = append(path, cur)
		p := parent[idx(cur)]
		cur = model.Position{X: int32(p % w), Y: int32(p / w)}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// GetWalkableArea flood-fills from the player, treating crates as
// blockers and filled holes as walkable. It returns the reached cells
// and the canonical player position: the minimum by (x,y) among them.
func GetWalkableArea(s *model.State) (reached []model.Position, canonicalPlayer model.Position) {
	terrain := s.Terrain()
	w, h := terrain.Width, terrain.Height
	visited := make([]bool, w*h)
	idx := func(p model.Position) int { return int(p.Y)*w + int(p.X) }

	start := s.Player()
	queue := make([]model.Position, 0, 64)
	queue = append(queue, start)
	visited[idx(start)] = true
	reached = append(reached, start)
	canonicalPlayer = start

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, d := range model.CardinalDirections {
			next := cur.Add(model.Position(d))
			x, y := int(next.X), int(next.Y)
			if x < 0 || y < 0 || x >= w || y >= h {
				continue
			}
			if visited[idx(next)] {
				continue
			}
			if !s.CanPlayerWalk(x, y) {
				continue
			}
			visited[idx(next)] = true
			reached = append(reached, next)
			if next.Less(canonicalPlayer) {
				canonicalPlayer = next
			}
			queue = append(queue, next)
		}
	}
	return reached, canonicalPlayer
}
