// Package levelfile parses and renders the plain-text level grid format:
// a "W H" header line followed by H rows of space-separated single-
// character tokens, row 0 at the top. Grounded on the teacher's
// pkg/common/render.go grid-building loop (run in reverse for parsing)
// and pkg/validator/structural.go's collect-all-violations validate
// style.
package levelfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sokoban/levelbuilder/pkg/model"
)

// ErrInvalidLevel is returned by Parse when validate is requested and the
// parsed level fails a structural check from spec.md §4.C11.
type ErrInvalidLevel struct {
	Reason string
}

func (e *ErrInvalidLevel) Error() string { return "levelfile: invalid level: " + e.Reason }

// Warning records an unrecognized grid symbol encountered during Parse,
// which falls back to Floor.
type Warning struct {
	Line, Col int
	Symbol    string
}

func (w Warning) String() string {
	return fmt.Sprintf("unrecognized symbol %q at line %d, col %d: treated as Floor", w.Symbol, w.Line, w.Col)
}

// Parse reads the text grid format from r and builds a State. If
// validate is true, it additionally requires a player, crateCount >=
// targetCount, and both counts positive, returning *ErrInvalidLevel
// otherwise. Unrecognized symbols never fail Parse; they are reported in
// the returned warning list and treated as Floor, per spec.md §4.C11.
func Parse(r io.Reader, validate bool) (*model.State, []Warning, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("levelfile: empty input")
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, nil, fmt.Errorf("levelfile: header must be \"W H\", got %q", scanner.Text())
	}
	w, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, nil, fmt.Errorf("levelfile: invalid width %q: %w", header[0], err)
	}
	h, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, nil, fmt.Errorf("levelfile: invalid height %q: %w", header[1], err)
	}
	if w <= 0 || h <= 0 {
		return nil, nil, fmt.Errorf("levelfile: grid dimensions must be positive, got %dx%d", w, h)
	}

	terrain := model.NewTerrainGrid(w, h)
	var warnings []Warning
	var player model.Position
	havePlayer := false
	var crates []model.Position
	targetCount := 0

	for y := 0; y < h; y++ {
		if !scanner.Scan() {
			return nil, nil, fmt.Errorf("levelfile: expected %d grid rows, got %d", h, y)
		}
		tokens := strings.Fields(scanner.Text())
		if len(tokens) != w {
			return nil, nil, fmt.Errorf("levelfile: row %d has %d tokens, want %d", y, len(tokens), w)
		}
		for x, tok := range tokens {
			pos := model.Position{X: int32(x), Y: int32(y)}
			terr, isPlayer, isCrate, warn := symbolToTerrain(tok)
			if warn {
				warnings = append(warnings, Warning{Line: y + 2, Col: x + 1, Symbol: tok})
			}
			terrain.Set(x, y, terr)
			if terr == model.Target {
				targetCount++
			}
			if isPlayer {
				player = pos
				havePlayer = true
			}
			if isCrate {
				crates = append(crates, pos)
			}
		}
	}

	if validate {
		if !havePlayer {
			return nil, warnings, &ErrInvalidLevel{Reason: "no player placed"}
		}
		if len(crates) <= 0 || targetCount <= 0 {
			return nil, warnings, &ErrInvalidLevel{Reason: "crateCount and targetCount must both be positive"}
		}
		if len(crates) < targetCount {
			return nil, warnings, &ErrInvalidLevel{Reason: "crateCount must be >= targetCount"}
		}
	}

	if !havePlayer {
		return nil, warnings, fmt.Errorf("levelfile: no player placed in grid")
	}

	state, err := model.Create(terrain, player, crates)
	if err != nil {
		return nil, warnings, fmt.Errorf("levelfile: %w", err)
	}
	return state, warnings, nil
}

// symbolToTerrain maps one grid token to its terrain, and whether it also
// places the player or a crate, per spec.md §4.C11's symbol table.
// Unrecognized symbols return (Floor, false, false, true).
func symbolToTerrain(tok string) (terr model.Terrain, isPlayer, isCrate, warn bool) {
	switch tok {
	case ".", "E":
		return model.Floor, false, false, false
	case "#", "X":
		return model.Wall, false, false, false
	case "H":
		return model.Hole, false, false, false
	case "T":
		return model.Target, false, false, false
	case "P":
		return model.Floor, true, false, false
	case "B":
		return model.Floor, false, true, false
	case "p":
		return model.Target, true, false, false
	case "b":
		return model.Target, false, true, false
	case ">":
		return model.Entrance, true, false, false
	case "<":
		return model.Exit, false, false, false
	default:
		return model.Floor, false, false, true
	}
}

// Write renders a State back to the text grid format, inverse to Parse.
// Crates are emitted as "B" (or "b" if the cell is also a Target); the
// player's cell is emitted as "P" ("p" on a Target, ">" on an Entrance).
// FakeHole has no symbol of its own and is written as "#", so it reads
// back as Wall.
func Write(w io.Writer, s *model.State) error {
	terrain := s.Terrain()
	if _, err := fmt.Fprintf(w, "%d %d\n", terrain.Width, terrain.Height); err != nil {
		return err
	}
	for y := 0; y < terrain.Height; y++ {
		row := make([]string, terrain.Width)
		for x := 0; x < terrain.Width; x++ {
			row[x] = terrainGlyph(s, x, y)
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}

func terrainGlyph(s *model.State, x, y int) string {
	terr := s.Terrain().At(x, y)
	isPlayer := s.IsPlayerAt(x, y)
	isCrate := s.IsCrateAt(x, y)

	switch {
	case isPlayer && terr == model.Entrance:
		return ">"
	case isPlayer && terr == model.Target:
		return "p"
	case isPlayer:
		return "P"
	case isCrate && terr == model.Target:
		return "b"
	case isCrate:
		return "B"
	}

	switch terr {
	case model.Floor:
		return "."
	case model.Wall:
		return "#"
	case model.Hole:
		return "H"
	case model.FakeHole:
		return "#"
	case model.Target:
		return "T"
	case model.Entrance:
		return ">"
	case model.Exit:
		return "<"
	default:
		return "."
	}
}
