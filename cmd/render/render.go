package render

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sokoban/levelbuilder/pkg/common"
	"github.com/sokoban/levelbuilder/pkg/model"
)

var (
	fileFlag   string
	idFlag     int
	styleFlag  string
	coordsFlag bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a level to the terminal (ASCII/ANSI)",
	Long: `Render a level file to the terminal for quick visual inspection.

Supply a file path with --file (-f) or a level id with --id (-i), which
resolves Level<id>.txt in the levels directory.

Examples:
  levelbuilder render --id 1
  levelbuilder render --file levels/Level3.txt --style ansi --coords`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePath()
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		w, h, rows, err := readGrid(f)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		printGrid(cmd.OutOrStdout(), path, w, h, rows, styleFlag, coordsFlag)
		return nil
	},
}

func resolvePath() (string, error) {
	if fileFlag != "" {
		return fileFlag, nil
	}
	if idFlag != 0 {
		return common.LevelFilePath(idFlag)
	}
	return "", fmt.Errorf("please provide either --file or --id to render a level")
}

// readGrid re-parses the raw text grid directly (rather than through a
// model.State) so render can still display malformed or unsolved levels
// for debugging, matching the teacher's render command's tolerance for
// levels that wouldn't pass Validate.
func readGrid(f *os.File) (w, h int, rows [][]string, err error) {
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, 0, nil, fmt.Errorf("empty file")
	}
	if _, err := fmt.Sscanf(scanner.Text(), "%d %d", &w, &h); err != nil {
		return 0, 0, nil, fmt.Errorf("invalid header %q: %w", scanner.Text(), err)
	}
	for y := 0; y < h; y++ {
		if !scanner.Scan() {
			return 0, 0, nil, fmt.Errorf("expected %d rows, got %d", h, y)
		}
		rows = append(rows, strings.Fields(scanner.Text()))
	}
	return w, h, rows, nil
}

// printGrid renders the row-major (row 0 at top) grid with a border and
// optional coordinate ruler, colorizing terrain glyphs when style is
// "ansi" and the output is a real terminal.
func printGrid(out interface{ Write([]byte) (int, error) }, path string, w, h int, rows [][]string, style string, showCoords bool) {
	useColor := style == "ansi" && isTerminalWritable()

	fmt.Fprintf(out, "%s (grid %dx%d)\n", path, w, h)
	printBorder(out, w)

	for y := 0; y < h; y++ {
		if showCoords {
			fmt.Fprintf(out, "%2d ", y)
		} else {
			fmt.Fprint(out, "   ")
		}
		fmt.Fprint(out, "| ")
		for x := 0; x < w; x++ {
			tok := "."
			if x < len(rows[y]) {
				tok = rows[y][x]
			}
			fmt.Fprintf(out, "%2s ", glyph(tok, useColor))
		}
		fmt.Fprint(out, "|\n")
	}

	printBorder(out, w)
	if showCoords {
		fmt.Fprint(out, "   ")
		for x := 0; x < w; x++ {
			fmt.Fprintf(out, "%2d ", x%100)
		}
		fmt.Fprint(out, "\n")
	}
}

func printBorder(out interface{ Write([]byte) (int, error) }, w int) {
	fmt.Fprint(out, "   +")
	for x := 0; x < w; x++ {
		fmt.Fprint(out, "---")
	}
	fmt.Fprint(out, "+\n")
}

// glyph colorizes a raw grid token, purely cosmetic and never consulted
// by the solver. Player/crate tokens are colored as entities; everything
// else is colored by the terrain it parses to via terrainFromToken.
func glyph(tok string, useColor bool) string {
	if !useColor {
		return tok
	}
	switch tok {
	case "P", "p":
		return color.New(color.FgCyan, color.Bold).Sprint(tok)
	case "B", "b":
		return color.New(color.FgGreen).Sprint(tok)
	}
	switch terrainFromToken(tok) {
	case model.Wall:
		return color.New(color.FgWhite, color.BgBlack).Sprint(tok)
	case model.Target:
		return color.New(color.FgYellow, color.Bold).Sprint(tok)
	case model.Hole:
		return color.New(color.FgRed, color.Bold).Sprint(tok)
	case model.Entrance:
		return color.New(color.FgCyan, color.Bold).Sprint(tok)
	case model.Exit:
		return color.New(color.FgMagenta).Sprint(tok)
	default:
		return tok
	}
}

func isTerminalWritable() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terrainFromToken maps a raw grid token to the terrain it represents,
// used by glyph to color non-entity cells.
func terrainFromToken(tok string) model.Terrain {
	switch tok {
	case "#", "X":
		return model.Wall
	case "H":
		return model.Hole
	case "T", "p", "b":
		return model.Target
	case ">":
		return model.Entrance
	case "<":
		return model.Exit
	default:
		return model.Floor
	}
}

func init() {
	renderCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "path to a level text file to render")
	renderCmd.Flags().IntVarP(&idFlag, "id", "i", 0, "level ID to render (resolves Level<id>.txt in the levels directory)")
	renderCmd.Flags().StringVarP(&styleFlag, "style", "s", "ascii", "render style: ascii or ansi")
	renderCmd.Flags().BoolVarP(&coordsFlag, "coords", "c", false, "show axis coordinates")
}

// GetCommand returns the render command for registration with root.
func GetCommand() *cobra.Command {
	return renderCmd
}
