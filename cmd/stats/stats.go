package stats

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sokoban/levelbuilder/pkg/common"
	"github.com/sokoban/levelbuilder/pkg/levelfile"
	"github.com/sokoban/levelbuilder/pkg/solver"
)

var (
	fileFlag  string
	idFlag    int
	allFlag   bool
	maxStates int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report difficulty metrics for one or more levels",
	Long: `Solve a level and print its difficulty breakdown: move length, crate
pushes, true-hole count, target count, target dispersion, and the
composite difficulty score.

Examples:
  levelbuilder stats --id 1
  levelbuilder stats --file levels/Level3.txt
  levelbuilder stats --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := resolvePaths()
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			common.Info("no level files found")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
		fmt.Fprintln(tw, "LEVEL\tLENGTH\tPUSHES\tHOLES\tTARGETS\tDISPERSION\tDIFFICULTY")

		for _, path := range paths {
			m, err := computeMetrics(path, maxStates)
			if err != nil {
				common.Warning("%s: %v", filepath.Base(path), err)
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.3f\t%.3f\n",
				filepath.Base(path), m.Length, m.Pushes, m.TrueHoles, m.Targets, m.Dispersion, m.Difficulty)
		}

		return tw.Flush()
	},
}

func resolvePaths() ([]string, error) {
	if allFlag {
		levelsDir, err := common.LevelsDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve levels directory: %w", err)
		}
		return filepath.Glob(filepath.Join(levelsDir, "Level*.txt"))
	}
	if fileFlag != "" {
		return []string{fileFlag}, nil
	}
	if idFlag != 0 {
		path, err := common.LevelFilePath(idFlag)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	return nil, fmt.Errorf("please provide --file, --id, or --all")
}

func computeMetrics(path string, maxStates int) (solver.Metrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return solver.Metrics{}, err
	}
	defer f.Close()

	state, _, err := levelfile.Parse(f, true)
	if err != nil {
		return solver.Metrics{}, fmt.Errorf("parse failed: %w", err)
	}

	ok, sol, states := solver.IsSolvable(context.Background(), state, maxStates)
	if !ok {
		return solver.Metrics{}, fmt.Errorf("not solvable (explored %d states)", states)
	}
	return solver.Compute(sol), nil
}

func init() {
	statsCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "path to a level text file")
	statsCmd.Flags().IntVarP(&idFlag, "id", "i", 0, "level ID (resolves Level<id>.txt in the levels directory)")
	statsCmd.Flags().BoolVarP(&allFlag, "all", "a", false, "report on every level in the levels directory")
	statsCmd.Flags().IntVar(&maxStates, "max-states", solver.DefaultMaxIterations, "state budget for the solver")
}

// GetCommand returns the stats command for registration with root.
func GetCommand() *cobra.Command {
	return statsCmd
}
