package generator

import "math/rand"

// shapeGrid is the raw W×H binary grid LayoutGenerator stamps templates
// onto, before FeaturePlacer turns it into a TerrainGrid. Kept separate
// from model.TerrainGrid since this stage only knows floor/wall, not
// any of the richer terrain tags.
type shapeGrid struct {
	w, h  int
	cells []bool
}

func newShapeGrid(w, h int) *shapeGrid {
	return &shapeGrid{w: w, h: h, cells: make([]bool, w*h)}
}

func (g *shapeGrid) at(x, y int) bool     { return g.cells[y*g.w+x] }
func (g *shapeGrid) set(x, y int, v bool) { g.cells[y*g.w+x] = v }

func (g *shapeGrid) count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// GenerateLayout produces a W×H binary room shape per spec.md §4.C7: it
// stamps randomly rotated 5x5 templates until either a third of the
// grid is floor or 100 consecutive placements fail, keeps only the
// largest 4-connected floor component, then trims to its bounding box
// padded by one wall cell on every side. Grounded on the teacher's
// tiling.go seed-and-grow loop (growVines' MaxSeedRetries-bounded retry
// shape), generalized from vine-growth to template-stamping.
func GenerateLayout(w, h int, rng *rand.Rand) *shapeGrid {
	grid := newShapeGrid(w, h)
	target := (w * h) / 3
	placedAny := false

	if w >= 5 && h >= 5 {
		failures := 0
		for grid.count() < target && failures < 100 {
			tpl := rotateTemplate(templates[rng.Intn(len(templates))], rng.Intn(4))
			ox := rng.Intn(w - 4)
			oy := rng.Intn(h - 4)
			if !canPlaceTemplate(grid, tpl, ox, oy) {
				failures++
				continue
			}
			stampTemplate(grid, tpl, ox, oy)
			placedAny = true
			failures = 0
		}
	}

	if !placedAny {
		grid.set(w/2, h/2, true)
	}

	reduceToLargestComponent(grid)
	return trimToBoundingBoxPadded(grid)
}

// canPlaceTemplate reports whether stamping tpl at (ox,oy) would ever
// turn a currently-floor cell back into wall; if it would, the
// placement is rejected so the grid only ever grows.
func canPlaceTemplate(grid *shapeGrid, tpl [5][5]int, ox, oy int) bool {
	for ty := 0; ty < 5; ty++ {
		for tx := 0; tx < 5; tx++ {
			if grid.at(ox+tx, oy+ty) && tpl[ty][tx] == 0 {
				return false
			}
		}
	}
	return true
}

// stampTemplate OR-s tpl into grid at (ox,oy).
func stampTemplate(grid *shapeGrid, tpl [5][5]int, ox, oy int) {
	for ty := 0; ty < 5; ty++ {
		for tx := 0; tx < 5; tx++ {
			if tpl[ty][tx] == 1 {
				grid.set(ox+tx, oy+ty, true)
			}
		}
	}
}

// reduceToLargestComponent zeroes every floor cell not in the largest
// 4-connected component, via a plain BFS over the grid.
func reduceToLargestComponent(grid *shapeGrid) {
	w, h := grid.w, grid.h
	visited := make([]bool, w*h)
	idx := func(x, y int) int { return y*w + x }

	var best []int
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if !grid.at(sx, sy) || visited[idx(sx, sy)] {
				continue
			}
			queue := []int{idx(sx, sy)}
			visited[idx(sx, sy)] = true
			component := []int{idx(sx, sy)}
			for head := 0; head < len(queue); head++ {
				cx, cy := queue[head]%w, queue[head]/w
				for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
					nx, ny := cx+d[0], cy+d[1]
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					ni := idx(nx, ny)
					if visited[ni] || !grid.at(nx, ny) {
						continue
					}
					visited[ni] = true
					component = append(component, ni)
					queue = append(queue, ni)
				}
			}
			if len(component) > len(best) {
				best = component
			}
		}
	}

	keep := make(map[int]bool, len(best))
	for _, i := range best {
		keep[i] = true
	}
	for i := range grid.cells {
		grid.cells[i] = keep[i]
	}
}

// trimToBoundingBoxPadded crops grid to the bounding box of its floor
// cells, padded by one wall cell on every side.
func trimToBoundingBoxPadded(grid *shapeGrid) *shapeGrid {
	minX, minY, maxX, maxY := grid.w, grid.h, -1, -1
	for y := 0; y < grid.h; y++ {
		for x := 0; x < grid.w; x++ {
			if !grid.at(x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		// No floor at all; return a minimal single-cell room.
		out := newShapeGrid(3, 3)
		out.set(1, 1, true)
		return out
	}

	innerW, innerH := maxX-minX+1, maxY-minY+1
	out := newShapeGrid(innerW+2, innerH+2)
	for y := 0; y < innerH; y++ {
		for x := 0; x < innerW; x++ {
			if grid.at(minX+x, minY+y) {
				out.set(x+1, y+1, true)
			}
		}
	}
	return out
}
