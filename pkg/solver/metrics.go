package solver

import (
	"math"

	"github.com/sokoban/levelbuilder/pkg/model"
)

// Metrics are the derived difficulty measures for a Solution, computed
// against its Initial state's terrain. The constants here are pinned by
// spec.md §4.C12: they determine user-visible difficulty labels, so
// they are not tuning knobs.
type Metrics struct {
	Length     int
	Pushes     int
	TrueHoles  int
	Targets    int
	Dispersion float64
	Difficulty float64
}

// Compute derives Metrics from a solved Solution.
func Compute(sol *model.Solution) Metrics {
	length := len(sol.Moves)
	pushes := 0
	for _, m := range sol.Moves {
		if m.Kind == model.CratePush {
			pushes++
		}
	}

	terrain := sol.Initial.Terrain()
	trueHoles, targets := 0, 0
	var targetPositions []model.Position
	terrain.Each(func(x, y int, t model.Terrain) {
		if t.IsTrueHole() {
			trueHoles++
		}
		if t == model.Target {
			targets++
			targetPositions = append(targetPositions, model.Position{X: int32(x), Y: int32(y)})
		}
	})

	dispersion := meanNearestTargetDistance(sol.Initial.Crates(), targetPositions)

	difficulty := math.Log2(float64(sol.StatesExplored)/math.Max(float64(length), 1)+1) +
		0.3*logBase(5, float64(pushes+1)) +
		0.3*math.Log2(float64(trueHoles+targets+1)) +
		dispersion/100
	difficulty = clamp(difficulty, 0.5, 10)

	return Metrics{
		Length:     length,
		Pushes:     pushes,
		TrueHoles:  trueHoles,
		Targets:    targets,
		Dispersion: dispersion,
		Difficulty: difficulty,
	}
}

// meanNearestTargetDistance computes the mean, over crates, of the
// Manhattan distance to the nearest target, then divides that mean by
// the crate count again, per spec.md §4.C12's dispersion definition.
func meanNearestTargetDistance(crates, targets []model.Position) float64 {
	if len(crates) == 0 || len(targets) == 0 {
		return 0
	}
	sum := 0
	for _, c := range crates {
		best := -1
		for _, t := range targets {
			d := manhattan(c, t)
			if best == -1 || d < best {
				best = d
			}
		}
		sum += best
	}
	n := float64(len(crates))
	return (float64(sum) / n) / n
}

func manhattan(a, b model.Position) int {
	dx := int(a.X) - int(b.X)
	if dx < 0 {
		dx = -dx
	}
	dy := int(a.Y) - int(b.Y)
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func logBase(base, x float64) float64 {
	return math.Log(x) / math.Log(base)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
