package model

import (
	"errors"
	"sort"
)

// ErrInvalidState is returned by Create when a State invariant from
// spec section 3 is violated.
var ErrInvalidState = errors.New("model: invalid state")

// State is the immutable unit of search: an ordered, de-duplicated crate
// list, a copy-on-write filled-holes set, a player position, and a
// non-owning reference to the shared terrain grid. States are created by
// the parser or generator and are never mutated; WithPlayerMove and
// WithCratePush produce new states that share terrain and, typically,
// filledHoles.
type State struct {
	terrain     *TerrainGrid
	player      Position
	crates      []Position // sorted, canonical order, no duplicates
	filledHoles FilledHoles
}

// Terrain returns the shared terrain grid.
func (s *State) Terrain() *TerrainGrid { return s.terrain }

// Player returns the player's position.
func (s *State) Player() Position { return s.player }

// Crates returns the canonically-ordered crate positions. The returned
// slice must not be mutated by callers.
func (s *State) Crates() []Position { return s.crates }

// FilledHoles returns the copy-on-write filled-hole set.
func (s *State) FilledHoles() FilledHoles { return s.filledHoles }

// Create builds a State, sorting crates into canonical order. It fails
// with ErrInvalidState if any invariant from spec section 3 is violated.
func Create(terrain *TerrainGrid, player Position, crates []Position, filledHoles ...FilledHoles) (*State, error) {
	sorted := make([]Position, len(crates))
	copy(sorted, crates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	fh := EmptyFilledHoles
	if len(filledHoles) > 0 {
		fh = filledHoles[0]
	}

	s := &State{terrain: terrain, player: player, crates: sorted, filledHoles: fh}
	if err := s.checkInvariants(); err != nil {
		return nil, err
	}
	return s, nil
}

// checkInvariants is the debug-only validation spec section 4.C1 asks
// for; it runs unconditionally here since the cost is linear in a small
// (<20) crate count, not a search-hot-path operation.
func (s *State) checkInvariants() error {
	for i := 1; i < len(s.crates); i++ {
		if !s.crates[i-1].Less(s.crates[i]) {
			return ErrInvalidState
		}
	}
	for _, c := range s.crates {
		if s.filledHoles.Contains(c) {
			return ErrInvalidState
		}
		if c == s.player {
			return ErrInvalidState
		}
	}
	valid := true
	s.filledHoles.Each(func(p Position) {
		if !s.terrain.AtPos(p).IsHole() {
			valid = false
		}
	})
	if !valid {
		return ErrInvalidState
	}
	return nil
}

// IsCrateAt reports whether a crate occupies (x,y). Linear scan: crate
// counts are small (typically under 20).
func (s *State) IsCrateAt(x, y int) bool {
	p := Position{X: int32(x), Y: int32(y)}
	for _, c := range s.crates {
		if c == p {
			return true
		}
		if p.Less(c) {
			// crates is sorted canonically; once we've passed where p
			// would be, it cannot appear later.
			return false
		}
	}
	return false
}

// IsPlayerAt reports whether the player occupies (x,y).
func (s *State) IsPlayerAt(x, y int) bool {
	return s.player == Position{X: int32(x), Y: int32(y)}
}

// IsFilledHoleAt reports whether (x,y) is a filled hole.
func (s *State) IsFilledHoleAt(x, y int) bool {
	return s.filledHoles.Contains(Position{X: int32(x), Y: int32(y)})
}

// CanPlayerWalk reports whether the player may move onto (x,y).
func (s *State) CanPlayerWalk(x, y int) bool {
	if !s.terrain.InBounds(x, y) {
		return false
	}
	if s.IsCrateAt(x, y) {
		return false
	}
	t := s.terrain.At(x, y)
	if t.PlayerCanWalk() {
		return true
	}
	return s.IsFilledHoleAt(x, y)
}

// CanReceiveCrate reports whether a crate may be pushed onto (x,y).
func (s *State) CanReceiveCrate(x, y int) bool {
	if !s.terrain.InBounds(x, y) {
		return false
	}
	if s.IsCrateAt(x, y) {
		return false
	}
	return s.terrain.At(x, y).CanReceiveCrate()
}

// IsSolved reports whether every Target cell is occupied by a crate.
// hasExit reports whether the terrain has an Exit cell at all; when
// hasExit is true, exit holds its position.
func (s *State) IsSolved() (solved bool, exit Position, hasExit bool) {
	solved = true
	s.terrain.Each(func(x, y int, t Terrain) {
		if t == Target && !s.IsCrateAt(x, y) {
			solved = false
		}
		if t == Exit {
			exit = Position{X: int32(x), Y: int32(y)}
			hasExit = true
		}
	})
	return solved, exit, hasExit
}

// IsWin reports whether the state is solved AND (there is no Exit cell,
// or the player stands on it).
func (s *State) IsWin() bool {
	solved, exit, hasExit := s.IsSolved()
	if !solved {
		return false
	}
	if !hasExit {
		return true
	}
	return s.player == exit
}

// WithPlayerMove returns a State with the player moved to `to`. Crates
// and filledHoles are shared by reference with the receiver.
func (s *State) WithPlayerMove(to Position) *State {
	return &State{
		terrain:     s.terrain,
		player:      to,
		crates:      s.crates,
		filledHoles: s.filledHoles,
	}
}

// WithCratePush returns a State reflecting a crate pushed from oldCrate
// to newCrate, with the player moving to newPlayer. If newCrate is an
// unfilled hole, the crate disappears into it (filledHoles grows by one,
// crates shrinks by one); otherwise a new crate list is built in one
// pass that preserves canonical order. The receiver is never modified.
func (s *State) WithCratePush(newPlayer, oldCrate, newCrate Position) *State {
	t := s.terrain.AtPos(newCrate)
	fellInHole := t.IsHole() && !s.filledHoles.Contains(newCrate)

	if fellInHole {
		next := make([]Position, 0, len(s.crates)-1)
		for _, c := range s.crates {
			if c != oldCrate {
				next = append(next, c)
			}
		}
		return &State{
			terrain:     s.terrain,
			player:      newPlayer,
			crates:      next,
			filledHoles: s.filledHoles.Add(newCrate),
		}
	}

	next := make([]Position, 0, len(s.crates))
	inserted := false
	for _, c := range s.crates {
		if c == oldCrate {
			continue
		}
		if !inserted && newCrate.Less(c) {
			next = append(next, newCrate)
			inserted = true
		}
		next = append(next, c)
	}
	if !inserted {
		next = append(next, newCrate)
	}
	return &State{
		terrain:     s.terrain,
		player:      newPlayer,
		crates:      next,
		filledHoles: s.filledHoles,
	}
}

// Equal reports whether two states are equal: same terrain (by pointer,
// the expected fast path), same player, element-wise equal crates, and
// set-equal filledHoles.
func (s *State) Equal(other *State) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if s.terrain != other.terrain {
		return false
	}
	if s.player != other.player {
		return false
	}
	if len(s.crates) != len(other.crates) {
		return false
	}
	for i := range s.crates {
		if s.crates[i] != other.crates[i] {
			return false
		}
	}
	return s.filledHoles.Equal(other.filledHoles)
}

// Hash combines player, each crate in order, and a commutative fold of
// filledHole hashes, so the hash is invariant under permutation of the
// filled-hole set and equal states always hash equal.
func (s *State) Hash() uint64 {
	h := hashPosition(s.player)
	for _, c := range s.crates {
		h = mix(h, hashPosition(c))
	}
	h = mix(h, s.filledHoles.hashFold())
	return h
}

func hashPosition(p Position) uint64 {
	return mix(uint64(uint32(p.X)), uint64(uint32(p.Y))*0x9E3779B97F4A7C15)
}

// mix is a small, stable (non-map-seeded) 64-bit mixing function so that
// Hash is deterministic across processes, matching spec.md §8's
// requirement that equal states hash equal and §9's call for a stable,
// inlined hash function.
func mix(a, b uint64) uint64 {
	h := a*0x100000001B3 + b
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	return h
}
