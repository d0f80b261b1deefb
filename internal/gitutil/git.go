// Package gitutil wraps the one git operation this tool performs: running
// `git init` on a freshly materialized project directory.
package gitutil

import (
	"errors"
	"fmt"
	"os/exec"

	"esp-create-project/internal/logger"
)

// ErrGitUnavailable is returned when the git binary cannot be located or
// exits non-zero. Callers treat it as a warning: project creation still
// counts as successful without the repository.
var ErrGitUnavailable = errors.New("git is unavailable")

// Init initializes a git repository in dir by invoking the system git
// binary.
func Init(dir string) error {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGitUnavailable, err)
	}

	logger.Info("⚙️ Initializing git repo...\n")
	cmd := exec.Command(gitPath, "init", dir)
	logger.Debug("[DEBUG] Running command: %s init %s\n", gitPath, dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: git init failed: %v\nOutput: %s", ErrGitUnavailable, err, output)
	}
	logger.Info("✔ Git repo initialized\n")
	return nil
}
