// Package model defines the immutable Sokoban puzzle state: positions,
// terrain, the game state itself, moves and solutions.
package model

// Position is an ordered pair of grid coordinates.
type Position struct {
	X, Y int32
}

// Add returns the position offset by the given delta.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the delta from other to p (p - other).
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// Less implements the canonical crate order: x ascending, then y ascending.
func (p Position) Less(other Position) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

// ComparePositions returns -1, 0 or 1 using the canonical order, so callers
// can use it directly with slices.SortFunc-style comparators.
func ComparePositions(a, b Position) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// Direction is a cardinal unit vector.
type Direction Position

// Cardinal directions, enumerated in the fixed order the solver and
// generator must use for deterministic move generation.
var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// CardinalDirections lists the four directions in the fixed enumeration
// order (Up, Down, Left, Right) required for deterministic search.
var CardinalDirections = [4]Direction{Up, Down, Left, Right}

// IsCardinalUnit reports whether d is one of the four cardinal unit
// vectors {(±1,0),(0,±1)}.
func IsCardinalUnit(d Direction) bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	default:
		return false
	}
}

func (d Direction) asPosition() Position { return Position(d) }
