package clean

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sokoban/levelbuilder/pkg/common"
)

var force bool

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated level files",
	Long: `Remove all generated level files and their solution documents from the
levels directory.

Deletes:
  - All Level*.txt files in the levels directory
  - All *.solution.json files alongside them

Without --force this is a dry run that only prints how many files would
be deleted. With --force the files are actually deleted.

Examples:
  levelbuilder clean
  levelbuilder clean --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		levelsDir, err := common.LevelsDir()
		if err != nil {
			return fmt.Errorf("failed to resolve levels directory: %w", err)
		}

		patterns := []string{"Level*.txt", "*.solution.json"}
		var toDelete []string
		for _, p := range patterns {
			matches, err := filepath.Glob(filepath.Join(levelsDir, p))
			if err != nil {
				return fmt.Errorf("failed to glob %s: %w", p, err)
			}
			toDelete = append(toDelete, matches...)
		}

		if len(toDelete) == 0 {
			common.Info("nothing to clean in %s", levelsDir)
			return nil
		}

		if !force {
			common.Info("This will delete %d file(s) from %s. Re-run with --force to proceed.", len(toDelete), levelsDir)
			return nil
		}

		common.Info("Cleaning %d generated file(s)...", len(toDelete))
		var failures int
		for _, f := range toDelete {
			common.Verbose("deleting %s", f)
			if err := os.Remove(f); err != nil {
				common.Warning("failed to delete %s: %v", f, err)
				failures++
				continue
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d/%d files failed to delete", failures, len(toDelete))
		}
		common.Info("✓ Successfully cleaned %d generated file(s)", len(toDelete))
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&force, "force", false, "actually delete files instead of a dry-run count")
}

// GetCommand returns the clean command for registration with root.
func GetCommand() *cobra.Command {
	return cleanCmd
}
