package levelfile

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sokoban/levelbuilder/pkg/model"
)

// jsonPosition is the wire form of model.Position, per spec.md §6.
type jsonPosition struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// jsonMove is the wire form of model.Move. crateFrom/crateTo/direction
// are zero-valued for PlayerMove, matching spec.md §6 exactly.
type jsonMove struct {
	Type       string       `json:"type"`
	PlayerFrom jsonPosition `json:"playerFrom"`
	PlayerTo   jsonPosition `json:"playerTo"`
	CrateFrom  jsonPosition `json:"crateFrom"`
	CrateTo    jsonPosition `json:"crateTo"`
	Direction  jsonPosition `json:"direction"`
}

// SolutionDocument is the JSON document emitted for a solved level, per
// spec.md §6: `{LevelName, StepCount, SolveTimeMs, Moves[]}`.
type SolutionDocument struct {
	LevelName   string     `json:"levelName"`
	StepCount   int        `json:"stepCount"`
	SolveTimeMs int64      `json:"solveTimeMs"`
	Moves       []jsonMove `json:"moves"`
}

// BuildSolutionDocument converts a model.Solution into its JSON document
// form.
func BuildSolutionDocument(levelName string, sol *model.Solution, solveTime time.Duration) SolutionDocument {
	moves := make([]jsonMove, len(sol.Moves))
	for i, m := range sol.Moves {
		jm := jsonMove{
			PlayerFrom: jsonPosition{X: m.PlayerFrom.X, Y: m.PlayerFrom.Y},
			PlayerTo:   jsonPosition{X: m.PlayerTo.X, Y: m.PlayerTo.Y},
		}
		if m.Kind == model.CratePush {
			jm.Type = "CratePush"
			jm.CrateFrom = jsonPosition{X: m.CrateFrom.X, Y: m.CrateFrom.Y}
			jm.CrateTo = jsonPosition{X: m.CrateTo.X, Y: m.CrateTo.Y}
			jm.Direction = jsonPosition{X: m.Direction.X, Y: m.Direction.Y}
		} else {
			jm.Type = "PlayerMove"
		}
		moves[i] = jm
	}
	return SolutionDocument{
		LevelName:   levelName,
		StepCount:   len(sol.Moves),
		SolveTimeMs: solveTime.Milliseconds(),
		Moves:       moves,
	}
}

// WriteSolutionDocument marshals doc as indented JSON to w.
func WriteSolutionDocument(w io.Writer, doc SolutionDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
