// Package floodfill provides a reusable generation-counter BFS worker
// over any grid-graph, grounded on the visited-map/queue BFS shape used
// throughout the teacher's validator and generator packages, generalized
// into a scanner that can be reused across calls without reallocation.
package floodfill

import "github.com/sokoban/levelbuilder/pkg/model"

// Graph is anything a Scanner can flood-fill over.
type Graph interface {
	Width() int
	Height() int
	IsValid(x, y int) bool
}

// Scanner is a reusable BFS worker. Zero value is ready to use. A single
// Scanner must not be shared across goroutines; each worker owns one.
type Scanner struct {
	width, height int
	// visitMap holds, per cell, the generation at which it was last
	// reached. 0 means "never visited". Obstacles are not stored here;
	// Scan checks them against its obstacles argument.
	visitMap   []int
	generation int
	reached    []model.Position
}

// Scan performs a BFS from start over graph, skipping any cell in
// obstacles. It returns the reached cells in BFS (insertion) order.
// Repeated calls on the same Scanner reuse the backing visitMap in O(1)
// via the generation counter, reallocating only if the graph's
// dimensions changed.
func (s *Scanner) Scan(graph Graph, start model.Position, obstacles map[model.Position]struct{}) []model.Position {
	w, h := graph.Width(), graph.Height()
	if w != s.width || h != s.height || s.visitMap == nil {
		s.width, s.height = w, h
		s.visitMap = make([]int, w*h)
		s.generation = 0
	}
	s.generation++
	gen := s.generation
	s.reached = s.reached[:0]

	idx := func(p model.Position) int { return int(p.Y)*w + int(p.X) }

	if !graph.IsValid(int(start.X), int(start.Y)) {
		return nil
	}
	if _, blocked := obstacles[start]; blocked {
		return nil
	}

	queue := make([]model.Position, 0, 64)
	queue = append(queue, start)
	s.visitMap[idx(start)] = gen
	s.reached = append(s.reached, start)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, d := range model.CardinalDirections {
			next := cur.Add(model.Position(d))
			if int(next.X) < 0 || int(next.Y) < 0 || int(next.X) >= w || int(next.Y) >= h {
				continue
			}
			if !graph.IsValid(int(next.X), int(next.Y)) {
				continue
			}
			if _, blocked := obstacles[next]; blocked {
				continue
			}
			i := idx(next)
			if s.visitMap[i] == gen {
				continue
			}
			s.visitMap[i] = gen
			s.reached = append(s.reached, next)
			queue = append(queue, next)
		}
	}

	out := make([]model.Position, len(s.reached))
	copy(out, s.reached)
	return out
}

// IsReached reports whether p was reached by the most recent Scan call.
func (s *Scanner) IsReached(p model.Position) bool {
	if s.visitMap == nil {
		return false
	}
	if int(p.X) < 0 || int(p.Y) < 0 || int(p.X) >= s.width || int(p.Y) >= s.height {
		return false
	}
	return s.visitMap[int(p.Y)*s.width+int(p.X)] == s.generation
}
