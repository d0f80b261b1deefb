// Package project materializes a downloaded template archive into a concrete
// project directory: it creates the target directory, extracts the archive
// into it with the archive's top-level folder stripped, and customizes the
// main source file and CMake configuration for the chosen language.
package project

import (
	"errors"
	"fmt"
	"io"
	"os"

	"esp-create-project/internal/config"
	"esp-create-project/internal/logger"
)

// ErrTargetNotEmpty is returned when the target path already exists and is
// not an empty directory, and overwriting was not granted. The target is
// left untouched in that case.
var ErrTargetNotEmpty = errors.New("target directory already exists and is not empty")

// TargetConflict reports whether creating a project at path needs an
// overwrite decision: the path exists and is either a file or a non-empty
// directory. A missing path or an empty directory is not a conflict.
func TargetConflict(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return true, nil
	}

	dir, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer dir.Close()

	// One entry is enough to call the directory non-empty.
	if _, err := dir.Readdirnames(1); err == io.EOF {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return true, nil
}

// Materialize turns the downloaded archive into the project directory
// described by cfg. The archive must already be on disk; network failures
// therefore cannot leave a half-created project behind.
func Materialize(archive string, cfg config.ProjectConfig) error {
	conflict, err := TargetConflict(cfg.TargetDir)
	if err != nil {
		return err
	}
	if conflict {
		if !cfg.Overwrite {
			return fmt.Errorf("%w: %s", ErrTargetNotEmpty, cfg.TargetDir)
		}
		logger.Debug("[DEBUG] Removing existing directory %s\n", cfg.TargetDir)
		if err := os.RemoveAll(cfg.TargetDir); err != nil {
			return fmt.Errorf("cannot delete directory %s: %w", cfg.TargetDir, err)
		}
	}

	if err := os.MkdirAll(cfg.TargetDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", cfg.TargetDir, err)
	}

	logger.Info("📁 Writing files...\n")
	if err := extractArchive(archive, cfg.TargetDir); err != nil {
		return fmt.Errorf("failed to extract template into %s: %w", cfg.TargetDir, err)
	}
	if err := applyLanguage(cfg.TargetDir, cfg); err != nil {
		return err
	}
	logger.Info("✔ Files written\n")
	return nil
}
