package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sokoban/levelbuilder/cmd/clean"
	"github.com/sokoban/levelbuilder/cmd/generate"
	"github.com/sokoban/levelbuilder/cmd/render"
	"github.com/sokoban/levelbuilder/cmd/solve"
	"github.com/sokoban/levelbuilder/cmd/stats"
	"github.com/sokoban/levelbuilder/cmd/validate"
	"github.com/sokoban/levelbuilder/pkg/common"
)

var (
	// Global flags
	verbose    bool
	workers    string
	workingDir string

	// Parsed workers value
	WorkersCount int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "levelbuilder",
	Short: "Sokoban level generation and validation tool",
	Long: `Level Builder is a CLI tool for generating, validating, solving, and
rendering Sokoban puzzle levels.

It provides commands for:
  - Generating new solvable levels with configurable size and feature counts
  - Solving an existing level and emitting a JSON move sequence
  - Validating level files for structural integrity and solvability
  - Rendering levels as ASCII/ANSI visualizations
  - Reporting difficulty metrics for a level
  - Removing generated level files`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		common.VerboseEnabled = verbose

		count, err := parseWorkers(workers)
		if err != nil {
			return fmt.Errorf("invalid --workers value: %w", err)
		}
		WorkersCount = count
		common.Verbose("Workers: %d (from flag: %s)", WorkersCount, workers)

		if workingDir != "" {
			common.Verbose("Using working directory: %s", workingDir)
			common.WorkingDir = workingDir
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output for debugging")
	rootCmd.PersistentFlags().StringVarP(&workers, "workers", "j", "half", "number of concurrent workers (integer, 'half', or 'full')")
	rootCmd.PersistentFlags().StringVarP(&workingDir, "working-dir", "w", "", "working directory for level paths (default: nearest go.mod ancestor)")

	rootCmd.AddCommand(generate.GetCommand())
	rootCmd.AddCommand(solve.GetCommand())
	rootCmd.AddCommand(validate.GetCommand())
	rootCmd.AddCommand(render.GetCommand())
	rootCmd.AddCommand(stats.GetCommand())
	rootCmd.AddCommand(clean.GetCommand())
}

// parseWorkers parses the workers flag value.
// Accepts: "full" -> NumCPU(), "half" -> NumCPU()/2, or integer string -> that value.
func parseWorkers(value string) (int, error) {
	value = strings.TrimSpace(strings.ToLower(value))

	switch value {
	case "full":
		return runtime.NumCPU(), nil
	case "half":
		count := runtime.NumCPU() / 2
		if count < 1 {
			count = 1
		}
		return count, nil
	default:
		count, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("must be 'full', 'half', or a positive integer (got: %s)", value)
		}
		if count < 1 {
			return 0, fmt.Errorf("must be at least 1 (got: %d)", count)
		}
		return count, nil
	}
}
