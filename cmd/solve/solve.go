package solve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sokoban/levelbuilder/pkg/common"
	"github.com/sokoban/levelbuilder/pkg/levelfile"
	"github.com/sokoban/levelbuilder/pkg/solver"
)

var (
	fileFlag      string
	idFlag        int
	maxIterations int
	outFlag       string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a level offline and emit a JSON solution document",
	Long: `Parse a level file, run the solver, and write the JSON solution document
described by spec.md's external interfaces: {levelName, stepCount,
solveTimeMs, moves[]}.

Examples:
  levelbuilder solve --id 1
  levelbuilder solve --file levels/Level1.txt --out Level1.solution.json`,
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

		state, warnings, err := levelfile.Parse(f, true)
		for _, w := range warnings {
			common.Warning("%s", w.String())
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		start := time.Now()
		ok, sol, states := solver.IsSolvable(context.Background(), state, maxIterations)
		elapsed := time.Since(start)

		if !ok {
			return fmt.Errorf("level at %s is not solvable (explored %d states)", path, states)
		}

		levelName := filepath.Base(path)
		doc := levelfile.BuildSolutionDocument(levelName, sol, elapsed)

		out := outFlag
		if out == "" {
			out = path + ".solution.json"
		}
		outF, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer outF.Close()
		if err := levelfile.WriteSolutionDocument(outF, doc); err != nil {
			return fmt.Errorf("failed to write solution document: %w", err)
		}

		common.Info("✓ Solved %s: %d moves in %s, written to %s", levelName, doc.StepCount, elapsed, out)
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
	return "", fmt.Errorf("please provide either --file or --id")
}

func init() {
	solveCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "path to a level text file")
	solveCmd.Flags().IntVarP(&idFlag, "id", "i", 0, "level ID (resolves Level<id>.txt in the levels directory)")
	solveCmd.Flags().IntVar(&maxIterations, "max-states", solver.DefaultMaxIterations, "state budget for the solver")
	solveCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output path for the solution document (default: <level>.solution.json)")
}

// GetCommand returns the solve command for registration with root.
func GetCommand() *cobra.Command {
	return solveCmd
}
