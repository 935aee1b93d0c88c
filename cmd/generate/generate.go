package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sokoban/levelbuilder/pkg/common"
	"github.com/sokoban/levelbuilder/pkg/driver"
	"github.com/sokoban/levelbuilder/pkg/levelfile"
	"github.com/sokoban/levelbuilder/pkg/solver"
	"github.com/sokoban/levelbuilder/pkg/ui"
)

var (
	levelID         int
	minSize         int
	maxSize         int
	targetCount     int
	holeCount       int
	useEntranceExit bool
	seed            int64
	seedOffset      int64
	threadCount     int
	waitForFull     bool
	overwrite       bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Generate a new solvable Sokoban level",
	Long: `Generate a new solvable Sokoban level by racing N parallel workers
(AsyncDriver) each running the retry-loop LevelGenerator (LayoutGenerator
-> FeaturePlacer -> Solver) until a solvable room is produced.

Examples:
  levelbuilder generate --id 1
  levelbuilder gen --id 2 --min-size 10 --max-size 16 --target-count 3
  levelbuilder g --id 3 --seed 12345 --seed-offset 1 -j full
  levelbuilder g --id 4 --overwrite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		levelsDir, err := common.LevelsDir()
		if err != nil {
			return fmt.Errorf("failed to resolve levels directory: %w", err)
		}
		if err := os.MkdirAll(levelsDir, 0o755); err != nil {
			return fmt.Errorf("failed to create levels directory: %w", err)
		}

		path := filepath.Join(levelsDir, fmt.Sprintf("Level%d.txt", levelID))
		if _, err := os.Stat(path); err == nil && !overwrite {
			return fmt.Errorf("level file %s already exists (use --overwrite)", path)
		} else if err == nil {
			if _, backupErr := common.BackupLevels([]int{levelID}, levelsDir, levelsDir); backupErr != nil {
				common.Warning("failed to back up existing level before overwrite: %v", backupErr)
			}
		}

		common.Info("Generating level %d...", levelID)
		common.Verbose("Config: minSize=%d maxSize=%d targets=%d holes=%d entranceExit=%v seed=%d seedOffset=%d threads=%d",
			minSize, maxSize, targetCount, holeCount, useEntranceExit, seed, seedOffset, threadCount)

		spin := ui.NewSpinner(fmt.Sprintf("generating level %d", levelID))
		spin.Start()

		opts := driver.Options{
			MinSize:               minSize,
			MaxSize:               maxSize,
			TargetCount:           targetCount,
			HoleCount:             holeCount,
			UseEntranceExit:       useEntranceExit,
			BaseSeed:              seed,
			SeedOffset:            seedOffset,
			ThreadCount:           threadCount,
			WaitForFullCompletion: waitForFull,
		}
		state, sol, metrics := driver.GenerateLevelAsync(context.Background(), opts)
		spin.Stop()

		summary := driver.Summarize(metrics)
		if state == nil {
			return fmt.Errorf("generation failed: every worker exhausted its attempts without a solvable level (%d total attempts, %d states explored)",
				summary.TotalAttempts, summary.TotalStatesExplored)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := levelfile.Write(f, state); err != nil {
			return fmt.Errorf("failed to write level file: %w", err)
		}

		m := solver.Compute(sol)
		common.Info("✓ Generated level %d (%s): %d moves, difficulty %.2f, %d attempts, %d states explored",
			levelID, path, len(sol.Moves), m.Difficulty, summary.TotalAttempts, summary.TotalStatesExplored)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&levelID, "id", "i", 1, "level ID, determines the output filename Level<id>.txt")
	generateCmd.Flags().IntVar(&minSize, "min-size", 8, "minimum room width/height")
	generateCmd.Flags().IntVar(&maxSize, "max-size", 14, "maximum room width/height")
	generateCmd.Flags().IntVarP(&targetCount, "target-count", "t", 2, "number of target cells")
	generateCmd.Flags().IntVar(&holeCount, "hole-count", 1, "number of hole cells")
	generateCmd.Flags().BoolVar(&useEntranceExit, "use-entrance-exit", true, "place a distinct entrance and exit")
	generateCmd.Flags().Int64VarP(&seed, "seed", "s", time.Now().UnixNano(), "base seed for generation")
	generateCmd.Flags().Int64Var(&seedOffset, "seed-offset", 1, "per-worker seed offset (0 runs identical copies, for reproducibility testing)")
	generateCmd.Flags().IntVarP(&threadCount, "threads", "T", 4, "number of parallel generator workers")
	generateCmd.Flags().BoolVar(&waitForFull, "wait-for-full-completion", false, "wait for every worker to finish instead of returning as soon as the winner is known")
	generateCmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing level file (backed up first)")
}

// GetCommand returns the generate command for registration with root.
func GetCommand() *cobra.Command {
	return generateCmd
}
