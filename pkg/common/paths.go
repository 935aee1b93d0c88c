package common

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Singleton for resolved directories. WorkingDir, when set (via the
// --working-dir flag), overrides repo-root detection entirely.
var (
	WorkingDir string

	resolvedLevelsDir string
	resolvedLogsDir   string
	pathsOnce         sync.Once
	pathsError        error
)

// RepoMarkerFiles are files that indicate the root of this repository.
var RepoMarkerFiles = []string{"go.mod"}

// initPaths resolves the levels/logs directories once at startup. It
// looks for the repo root by checking the current working directory and
// its parents (up to 5 levels), unless WorkingDir overrides that search.
func initPaths() {
	pathsOnce.Do(func() {
		root := WorkingDir
		if root == "" {
			found, err := findRepoRoot()
			if err != nil {
				pathsError = err
				return
			}
			root = found
		}

		resolvedLevelsDir = filepath.Join(root, "levels")
		resolvedLogsDir = filepath.Join(root, "logs")

		Verbose("Resolved repo root: %s", root)
		Verbose("Levels directory: %s", resolvedLevelsDir)
	})
}

// findRepoRoot searches for the repository root by looking for marker
// files starting from the current directory and walking up the tree.
func findRepoRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for i := 0; i < 6; i++ {
		if isRepoRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find repo root (looked for %v starting from %s)", RepoMarkerFiles, cwd)
}

// isRepoRoot checks if a directory contains a repo marker file.
func isRepoRoot(dir string) bool {
	for _, marker := range RepoMarkerFiles {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// LevelsDir returns the absolute path to the directory holding
// Level<N>.txt files.
func LevelsDir() (string, error) {
	initPaths()
	if pathsError != nil {
		return "", pathsError
	}
	return resolvedLevelsDir, nil
}

// LogsDir returns the absolute path to the directory holding generated
// artifacts (validation_stats.json).
func LogsDir() (string, error) {
	initPaths()
	if pathsError != nil {
		return "", pathsError
	}
	return resolvedLogsDir, nil
}

// LevelFilePath returns the absolute path to a specific level file.
func LevelFilePath(levelID int) (string, error) {
	levelsDir, err := LevelsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(levelsDir, fmt.Sprintf("Level%d.txt", levelID)), nil
}

// MustLevelsDir returns the levels directory path or panics if not found.
// Use sparingly - prefer LevelsDir() with proper error handling.
func MustLevelsDir() string {
	dir, err := LevelsDir()
	if err != nil {
		panic(fmt.Sprintf("failed to resolve levels directory: %v", err))
	}
	return dir
}

// ResetPaths resets the cached paths (useful for testing).
func ResetPaths() {
	WorkingDir = ""
	resolvedLevelsDir = ""
	resolvedLogsDir = ""
	pathsOnce = sync.Once{}
	pathsError = nil
}
