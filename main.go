package main

import (
	"os"

	"esp-create-project/cmd" // Import the cmd package which contains the CLI command and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI command.
//
// The esp-create-project tool scaffolds a new ESP-IDF project:
//   - Prompts the user for a handful of options (programming language C or C++,
//     C++ standard, whether to initialize a git repository)
//   - Downloads the ESP-IDF project template archive over HTTP
//   - Extracts the archive into the target directory, stripping the archive's
//     top-level folder, and customizes the main source file and CMake
//     configuration for the chosen language
//   - Optionally runs `git init` on the new project directory
//
// Error handling strategy:
//   - Every fatal failure (bad input, download failure, filesystem failure,
//     target directory conflict) is printed to the user and exits non-zero
//   - A failed git initialization is only a warning; project creation is
//     still reported successful and the process exits zero
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
