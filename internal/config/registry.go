package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"esp-create-project/internal/logger"
)

// DefaultTemplateName is the registry entry used when --template is not given.
const DefaultTemplateName = "esp-idf"

// defaultTemplates is the built-in registry. It always contains the official
// ESP-IDF template archive; a user registry file may add to or override it.
var defaultTemplates = []Template{
	{
		Name:        DefaultTemplateName,
		URL:         "https://github.com/espressif/esp-idf-template/archive/refs/heads/master.zip",
		Description: "Official ESP-IDF project template (master branch)",
	},
}

// DefaultRegistry returns the built-in template registry.
func DefaultRegistry() Registry {
	templates := make([]Template, len(defaultTemplates))
	copy(templates, defaultTemplates)
	return Registry{Templates: templates}
}

// LoadRegistry reads a template registry from the given YAML file and merges
// it over the built-in defaults: file entries with the same name replace the
// built-in ones, everything else is appended. An empty path returns the
// built-in registry unchanged.
func LoadRegistry(path string) (Registry, error) {
	reg := DefaultRegistry()
	if path == "" {
		return reg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Registry{}, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}

	var fileReg Registry
	if err := yaml.Unmarshal(raw, &fileReg); err != nil {
		return Registry{}, fmt.Errorf("failed to parse registry file %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded %d template(s) from %s\n", len(fileReg.Templates), path)

	// Merge file entries over the defaults, matching by name.
	for _, t := range fileReg.Templates {
		if t.Name == "" || t.URL == "" {
			return Registry{}, fmt.Errorf("registry file %s: every template needs a name and a url", path)
		}
		replaced := false
		for i := range reg.Templates {
			if reg.Templates[i].Name == t.Name {
				reg.Templates[i] = t
				replaced = true
				break
			}
		}
		if !replaced {
			reg.Templates = append(reg.Templates, t)
		}
	}
	return reg, nil
}

// Lookup returns the template with the given name.
func (r Registry) Lookup(name string) (Template, error) {
	for _, t := range r.Templates {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %q (known: %s)", name, r.names())
}

// names renders the known template names for error messages.
func (r Registry) names() string {
	out := ""
	for i, t := range r.Templates {
		if i > 0 {
			out += ", "
		}
		out += t.Name
	}
	return out
}
