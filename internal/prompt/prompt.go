// Package prompt implements the interactive option collection flow: a short
// fixed sequence of questions (overwrite a non-empty target, programming
// language, git initialization) producing a fully populated ProjectConfig.
// When stdin is not a terminal, or --non-interactive is given, the same
// resolution happens from command-line flags with identical validation.
package prompt

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"esp-create-project/internal/config"
)

// ErrAborted is returned when the user cancels a prompt (Ctrl-C / Esc).
var ErrAborted = errors.New("aborted by user")

// ErrInvalidInput is returned when a flag value cannot be resolved into a
// valid project option.
var ErrInvalidInput = errors.New("invalid input")

// Options carries the raw command-line flag values and the facts about the
// environment that the collection flow needs.
type Options struct {
	TargetDir string
	Template  string

	// Language and Std are the --language / --std flag values.
	Language string
	Std      int
	// StdSet reports whether --std was given explicitly; a default value
	// must not make a C project look like it requested a C++ standard.
	StdSet  bool
	InitGit bool
	// GitSet reports whether --git or --no-git was given explicitly.
	// A preselected answer skips the git question in interactive mode.
	GitSet bool
	Force  bool

	// TargetConflict reports that the target already exists and is not an
	// empty directory, so materialization needs an overwrite decision.
	TargetConflict bool
}

// languageChoice is one entry of the language select. The original tool
// folds the C++ standard into the language question, so we do too.
type languageChoice struct {
	label string
	lang  config.Language
	std   config.CppStd
}

var languageChoices = []languageChoice{
	{label: "C", lang: config.LangC},
	{label: "C++ 11", lang: config.LangCpp, std: config.Cpp11},
	{label: "C++ 14", lang: config.LangCpp, std: config.Cpp14},
	{label: "C++ 17", lang: config.LangCpp, std: config.Cpp17},
}

// Interactive reports whether prompts should run: the user did not opt out
// and stdin is attached to a terminal.
func Interactive(nonInteractive bool) bool {
	if nonInteractive {
		return false
	}
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Collect resolves every project option, either by prompting or from flags,
// and returns the resulting ProjectConfig. The prompt order is fixed:
// overwrite confirmation (only when the target is in conflict), language,
// git initialization.
func Collect(opts Options, interactive bool) (config.ProjectConfig, error) {
	cfg := config.ProjectConfig{
		TargetDir: opts.TargetDir,
		Template:  opts.Template,
		Overwrite: opts.Force,
	}

	if opts.TargetConflict && !cfg.Overwrite && interactive {
		granted, err := confirmOverwrite(opts.TargetDir)
		if err != nil {
			return config.ProjectConfig{}, err
		}
		cfg.Overwrite = granted
		if !granted {
			// No point asking the remaining questions; the caller
			// will refuse to touch the directory.
			return cfg, nil
		}
	}

	if interactive {
		return collectInteractive(cfg, opts)
	}
	return resolveFlags(cfg, opts)
}

// confirmOverwrite asks whether a non-empty target directory may be deleted.
func confirmOverwrite(dir string) (bool, error) {
	var granted bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Directory %q is not empty, delete it?", dir)).
			Value(&granted),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrAborted
		}
		return false, fmt.Errorf("overwrite prompt failed: %w", err)
	}
	return granted, nil
}

// collectInteractive runs the language select and the git confirm as one
// huh form and fills the answers into cfg. Questions already answered on
// the command line (--git / --no-git) are not asked again.
func collectInteractive(cfg config.ProjectConfig, opts Options) (config.ProjectConfig, error) {
	langOptions := make([]huh.Option[int], len(languageChoices))
	for i, c := range languageChoices {
		langOptions[i] = huh.NewOption(c.label, i)
	}

	var selected int
	initGit := opts.InitGit
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("💻 Programming language? (default: C)").
				Options(langOptions...).
				Value(&selected),
		),
	}
	if !opts.GitSet {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("Initialize git repo? (needs git)").
				Value(&initGit),
		))
	}

	form := huh.NewForm(groups...)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return config.ProjectConfig{}, ErrAborted
		}
		return config.ProjectConfig{}, fmt.Errorf("option prompt failed: %w", err)
	}

	choice := languageChoices[selected]
	cfg.Language = choice.lang
	cfg.Std = choice.std
	cfg.InitGit = initGit
	return cfg, nil
}

// resolveFlags fills cfg from the --language/--std/--git flag values,
// enforcing the same constraints the prompts enforce by construction:
// the C++ standard is set if and only if the language is C++.
func resolveFlags(cfg config.ProjectConfig, opts Options) (config.ProjectConfig, error) {
	switch opts.Language {
	case "", string(config.LangC):
		cfg.Language = config.LangC
	case string(config.LangCpp), "c++":
		cfg.Language = config.LangCpp
	default:
		return config.ProjectConfig{}, fmt.Errorf("%w: --language must be c or cpp, got %q", ErrInvalidInput, opts.Language)
	}

	if cfg.Language == config.LangCpp {
		switch opts.Std {
		case int(config.Cpp11), int(config.Cpp14), int(config.Cpp17):
			cfg.Std = config.CppStd(opts.Std)
		default:
			return config.ProjectConfig{}, fmt.Errorf("%w: --std must be 11, 14 or 17, got %d", ErrInvalidInput, opts.Std)
		}
	} else if opts.StdSet {
		return config.ProjectConfig{}, fmt.Errorf("%w: --std is only valid with --language cpp", ErrInvalidInput)
	}

	cfg.InitGit = opts.InitGit
	return cfg, nil
}
