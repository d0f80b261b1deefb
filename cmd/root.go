package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"esp-create-project/internal/config"
	"esp-create-project/internal/fetch"
	"esp-create-project/internal/gitutil"
	"esp-create-project/internal/logger"
	"esp-create-project/internal/prompt"
	"esp-create-project/internal/project"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// DefaultTargetDir is used when no positional name argument is given.
const DefaultTargetDir = "esp-new-project"

// Command-line flag values. They are resolved into a ProjectConfig by the
// prompt package, either interactively or directly in non-interactive mode.
var (
	debug          bool
	nonInteractive bool
	languageFlag   string
	stdFlag        int
	gitFlag        bool
	noGitFlag      bool
	forceFlag      bool
	templateFlag   string
	registryFlag   string
	timeoutFlag    time.Duration
)

// rootCmd is the single command of the esp-create-project CLI. The tool has
// no subcommands: invoking it runs the whole scaffolding pipeline.
var rootCmd = &cobra.Command{
	Use:   "esp-create-project [name]",
	Short: "Create a new ESP-IDF project from a template",
	Long: `esp-create-project scaffolds a new ESP-IDF project.

It asks for a handful of options (programming language, C++ standard, git
initialization), downloads the project template archive and expands it into
the target directory. Without a name argument the project is created in
"` + DefaultTargetDir + `".`,
	Args:    cobra.MaximumNArgs(1),
	Version: version,

	// PersistentPreRun initializes the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	RunE: runCreate,

	// Errors are printed by Execute with the logger; cobra's own echo and
	// usage dump would duplicate them.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute parses flags and runs the scaffolding pipeline. It is the entry
// point for the CLI when invoked by the user.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Skip prompts; take answers from flags and defaults")
	rootCmd.Flags().StringVar(&languageFlag, "language", "c", "Project language: c or cpp")
	rootCmd.Flags().IntVar(&stdFlag, "std", 17, "C++ standard: 11, 14 or 17 (only with --language cpp)")
	rootCmd.Flags().BoolVar(&gitFlag, "git", false, "Initialize a git repository in the new project")
	rootCmd.Flags().BoolVar(&noGitFlag, "no-git", false, "Skip git initialization without asking")
	rootCmd.MarkFlagsMutuallyExclusive("git", "no-git")
	rootCmd.Flags().BoolVar(&forceFlag, "force", false, "Delete a non-empty target directory instead of failing")
	rootCmd.Flags().StringVar(&templateFlag, "template", config.DefaultTemplateName, "Name of the template to use")
	rootCmd.Flags().StringVar(&registryFlag, "registry", "", "Path to a YAML template registry file")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", fetch.DefaultTimeout, "Template download timeout")
}

// runCreate executes the scaffolding pipeline: collect options, download the
// template, materialize the project, optionally initialize git. The download
// happens before any directory is created or removed, so a network failure
// leaves the filesystem untouched.
func runCreate(cmd *cobra.Command, args []string) error {
	target := DefaultTargetDir
	if len(args) > 0 {
		target = args[0]
	}

	registry, err := config.LoadRegistry(registryFlag)
	if err != nil {
		return err
	}
	tmpl, err := registry.Lookup(templateFlag)
	if err != nil {
		return err
	}

	conflict, err := project.TargetConflict(target)
	if err != nil {
		return err
	}

	interactive := prompt.Interactive(nonInteractive)
	cfg, err := prompt.Collect(prompt.Options{
		TargetDir:      target,
		Template:       tmpl.Name,
		Language:       languageFlag,
		Std:            stdFlag,
		StdSet:         cmd.Flags().Changed("std"),
		InitGit:        gitFlag && !noGitFlag,
		GitSet:         cmd.Flags().Changed("git") || cmd.Flags().Changed("no-git"),
		Force:          forceFlag,
		TargetConflict: conflict,
	}, interactive)
	if err != nil {
		return err
	}
	if conflict && !cfg.Overwrite {
		return fmt.Errorf("%w: %s", project.ErrTargetNotEmpty, target)
	}
	logger.Debug("[DEBUG] Resolved config: %+v\n", cfg)

	archive, err := fetch.Download(tmpl.URL, timeoutFlag)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := os.Remove(archive); rerr != nil {
			logger.Debug("[DEBUG] Failed to remove temp archive %s: %v\n", archive, rerr)
		}
	}()

	if err := project.Materialize(archive, cfg); err != nil {
		return err
	}

	if cfg.InitGit {
		if err := gitutil.Init(cfg.TargetDir); err != nil {
			// Non-fatal: the project exists, only the repository is missing.
			logger.Warn("[WARN] Skipped git initialization: %v\n", err)
		}
	}

	logger.Info("😁 Have fun!\n")
	return nil
}
