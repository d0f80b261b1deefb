package config

// Language is the programming language the generated project is set up for.
type Language string

const (
	// LangC generates a plain C project (the template default).
	LangC Language = "c"
	// LangCpp generates a C++ project with a chosen language standard.
	LangCpp Language = "cpp"
)

// CppStd is the C++ language standard applied to a C++ project.
// It is zero for C projects.
type CppStd int

const (
	Cpp11 CppStd = 11
	Cpp14 CppStd = 14
	Cpp17 CppStd = 17
)

// ProjectConfig holds every option collected for a single project creation.
// It is created once per invocation, passed by value through the pipeline
// (download, materialization, git init) and discarded at process exit.
// Nothing is persisted across runs.
type ProjectConfig struct {
	// TargetDir is the directory the project is created in.
	TargetDir string
	// Language selects between the C and C++ template variants.
	Language Language
	// Std is the C++ standard. Set if and only if Language is LangCpp.
	Std CppStd
	// InitGit requests a `git init` on the materialized directory.
	InitGit bool
	// Overwrite allows deleting a non-empty target directory first.
	Overwrite bool
	// Template is the registry name of the template to materialize.
	Template string
}

// Template describes one downloadable project template: a short name used
// on the command line and the URL of its archive. The archive format is
// inferred from the URL suffix (.zip, .tar.gz, .tar.xz, .7z, ...).
type Template struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
}

// Registry is the set of known templates, keyed by name on lookup.
type Registry struct {
	Templates []Template `yaml:"templates"`
}
