// Package moverules builds and applies legal moves from a model.State,
// adapted from the cardinal-direction table in the teacher's
// pkg/common/direction.go.
package moverules

import (
	"fmt"

	"github.com/sokoban/levelbuilder/pkg/model"
)

// TryBuildMove classifies the cell at player+direction and returns the
// resulting Move, or ok=false if no legal move exists in that direction.
// direction must be a cardinal unit vector.
func TryBuildMove(s *model.State, direction model.Direction) (model.Move, bool) {
	if !model.IsCardinalUnit(direction) {
		panic(fmt.Sprintf("moverules: direction %v is not a cardinal unit vector", direction))
	}

	player := s.Player()
	to := player.Add(model.Position(direction))

	if s.CanPlayerWalk(int(to.X), int(to.Y)) {
		return model.Move{
			Kind:       model.PlayerMove,
			PlayerFrom: player,
			PlayerTo:   to,
		}, true
	}

	if s.IsCrateAt(int(to.X), int(to.Y)) {
		crateTo := to.Add(model.Position(direction))
		if s.CanReceiveCrate(int(crateTo.X), int(crateTo.Y)) {
			return model.Move{
				Kind:       model.CratePush,
				PlayerFrom: player,
				PlayerTo:   to,
				CrateFrom:  to,
				CrateTo:    crateTo,
				Direction:  direction,
			}, true
		}
	}

	return model.Move{}, false
}

// ApplyMove dispatches to State's with-methods via model.Apply.
func ApplyMove(s *model.State, m model.Move) (*model.State, error) {
	return model.Apply(s, m)
}
