package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/sokoban/levelbuilder/pkg/common"
	"github.com/sokoban/levelbuilder/pkg/levelfile"
	"github.com/sokoban/levelbuilder/pkg/solver"
)

var (
	checkSolvable bool
	maxStates     int
)

// levelStat mirrors the teacher's pkg/validator.LevelStat, generalized
// from vine occupancy checks to Sokoban structural/solvability checks.
type levelStat struct {
	File           string `json:"file"`
	Solvable       bool   `json:"solvable"`
	StatesExplored int    `json:"statesExplored"`
	TimeMs         int64  `json:"timeMs"`
	Error          string `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"val"},
	Short:   "Validate level files for structural integrity and solvability",
	Long: `Validate every Level<N>.txt file in the levels directory: parse and
check structural invariants (player present, crateCount >= targetCount),
and optionally run the solver concurrently across all files, with at
most one file per CPU (runtime.NumCPU) in flight at a time.

Examples:
  levelbuilder validate
  levelbuilder validate --check-solvable --max-states 100000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		levelsDir, err := common.LevelsDir()
		if err != nil {
			return fmt.Errorf("failed to resolve levels directory: %w", err)
		}
		files, err := filepath.Glob(filepath.Join(levelsDir, "Level*.txt"))
		if err != nil {
			return err
		}
		if len(files) == 0 {
			common.Info("no level files found in %s", levelsDir)
			return nil
		}

		common.Info("Validating %d level files (check-solvable=%v)...", len(files), checkSolvable)

		sem := make(chan struct{}, runtime.NumCPU())
		var wg sync.WaitGroup
		statsCh := make(chan levelStat, len(files))

		for _, f := range files {
			f := f
			wg.Add(1)
			go func() {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				statsCh <- validateOne(f, checkSolvable, maxStates)
			}()
		}
		wg.Wait()
		close(statsCh)

		var allStats []levelStat
		failures := 0
		for s := range statsCh {
			allStats = append(allStats, s)
			status := "ok"
			if s.Error != "" {
				status = "FAIL: " + s.Error
				failures++
			} else if checkSolvable && !s.Solvable {
				status = "FAIL: not solvable"
				failures++
			}
			common.Info("  %s: %s (states=%d time=%dms)", filepath.Base(s.File), status, s.StatesExplored, s.TimeMs)
		}

		logsDir, err := common.LogsDir()
		if err == nil {
			if mkErr := os.MkdirAll(logsDir, 0o755); mkErr == nil {
				b, _ := json.MarshalIndent(allStats, "", "  ")
				statsPath := filepath.Join(logsDir, "validation_stats.json")
				_ = os.WriteFile(statsPath, b, 0o644)
				common.Verbose("detailed stats written to %s", statsPath)
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d/%d levels failed validation", failures, len(files))
		}
		common.Info("✓ All %d levels validated successfully.", len(files))
		return nil
	},
}

func validateOne(path string, checkSolvable bool, maxStates int) levelStat {
	stat := levelStat{File: path}

	f, err := os.Open(path)
	if err != nil {
		stat.Error = err.Error()
		return stat
	}
	defer f.Close()

	state, _, err := levelfile.Parse(f, true)
	if err != nil {
		stat.Error = err.Error()
		return stat
	}

	if !checkSolvable {
		stat.Solvable = true
		return stat
	}

	start := time.Now()
	ok, _, states := solver.IsSolvable(context.Background(), state, maxStates)
	stat.TimeMs = time.Since(start).Milliseconds()
	stat.StatesExplored = states
	stat.Solvable = ok
	return stat
}

func init() {
	validateCmd.Flags().BoolVarP(&checkSolvable, "check-solvable", "s", false, "run solvability checks (may be slow)")
	validateCmd.Flags().IntVar(&maxStates, "max-states", 100_000, "state budget for the solver during validation")
}

// GetCommand returns the validate command for registration with root.
func GetCommand() *cobra.Command {
	return validateCmd
}
