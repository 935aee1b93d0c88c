// Package deadsquare precomputes, for a given terrain/target
// configuration, the set of cells from which no crate can ever reach any
// Target, independent of other crates. Built from spec.md §4.C4 directly;
// the teacher's vine-puzzle domain has no push-deadlock analog, so the
// queue/visited bookkeeping here mirrors the style of pkg/floodfill
// rather than being copied from a teacher file.
package deadsquare

import "github.com/sokoban/levelbuilder/pkg/model"

// Map is a static unsolvable-square table, built once per solver
// invocation from a terrain grid and its Target cells.
type Map struct {
	width, height int
	safe          []bool
}

// Build computes the dead-square table for terrain. Cells the pusher
// could never reach are still marked "dead" if a crate there could never
// reach a Target; walls and out-of-bounds cells are always dead.
func Build(terrain *model.TerrainGrid) *Map {
	w, h := terrain.Width, terrain.Height
	m := &Map{width: w, height: h, safe: make([]bool, w*h)}

	idx := func(x, y int) int { return y*w + x }
	inBounds := func(x, y int) bool { return x >= 0 && y >= 0 && x < w && y < h }
	isWall := func(x, y int) bool { return !inBounds(x, y) || terrain.At(x, y) == model.Wall }

	queue := make([][2]int, 0, 64)
	for _, t := range terrain.Targets() {
		x, y := int(t.X), int(t.Y)
		m.safe[idx(x, y)] = true
		queue = append(queue, [2]int{x, y})
	}

	for head := 0; head < len(queue); head++ {
		bx, by := queue[head][0], queue[head][1]
		for _, d := range model.CardinalDirections {
			dx, dy := int(d.X), int(d.Y)
			ax, ay := bx-dx, by-dy // candidate crate cell
			cx, cy := bx-2*dx, by-2*dy // cell the pusher must stand on

			if !inBounds(ax, ay) || isWall(ax, ay) {
				continue
			}
			if !inBounds(cx, cy) || isWall(cx, cy) {
				continue
			}
			if m.safe[idx(ax, ay)] {
				continue
			}
			m.safe[idx(ax, ay)] = true
			queue = append(queue, [2]int{ax, ay})
		}
	}

	return m
}

// IsDeadSquare is true for out-of-bounds cells, walls, and any cell not
// marked safe by Build.
func (m *Map) IsDeadSquare(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return true
	}
	return !m.safe[y*m.width+x]
}
