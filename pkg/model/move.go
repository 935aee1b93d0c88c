package model

import "errors"

// ErrUnknownMoveKind is a programmer error surfaced when a Move carries
// an unrecognized Kind; fatal to the current solver/scheduler call.
var ErrUnknownMoveKind = errors.New("model: unknown move kind")

// MoveKind tags a Move as either a plain player step or a crate push.
type MoveKind int

const (
	PlayerMove MoveKind = iota
	CratePush
)

func (k MoveKind) String() string {
	if k == CratePush {
		return "CratePush"
	}
	return "PlayerMove"
}

// Move is a single state transition. CrateFrom/CrateTo/Direction are only
// meaningful (and only set) for CratePush; for PlayerMove they are the
// zero Position. Direction is redundant with crateTo-crateFrom and is
// carried only for logging.
type Move struct {
	Kind       MoveKind
	PlayerFrom Position
	PlayerTo   Position
	CrateFrom  Position
	CrateTo    Position
	Direction  Direction
}

// Apply dispatches to the State's with-methods, returning the state
// reached by performing m. Fails with ErrUnknownMoveKind for any other
// tag.
func Apply(s *State, m Move) (*State, error) {
	switch m.Kind {
	case PlayerMove:
		return s.WithPlayerMove(m.PlayerTo), nil
	case CratePush:
		return s.WithCratePush(m.PlayerTo, m.CrateFrom, m.CrateTo), nil
	default:
		return nil, ErrUnknownMoveKind
	}
}

// Solution is a finite ordered sequence of moves, the initial state they
// were generated from, and the number of states the solver explored to
// find them.
type Solution struct {
	Initial        *State
	Moves          []Move
	StatesExplored int
}
