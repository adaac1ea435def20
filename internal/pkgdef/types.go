// Package pkgdef defines the Package data model and the Package Repository
// that turns a directory of YAML files into Package values.
package pkgdef

import "sort"

// Package is a declarative package definition: one install command (and
// optionally a check command) per environment.
type Package struct {
	Name         string                       `yaml:"name"`
	Version      string                       `yaml:"version"`
	Homepage     string                       `yaml:"homepage,omitempty"`
	Description  string                       `yaml:"description,omitempty"`
	Environments map[string]EnvironmentConfig `yaml:"environments"`

	// SourcePath is stamped by the repository after a successful read; it
	// is never serialized back out.
	SourcePath string `yaml:"-"`
}

// EnvironmentConfig is the set of commands a package runs for one named
// environment (e.g. "macos", "linux", "work").
type EnvironmentConfig struct {
	Install      string   `yaml:"install"`
	Check        string   `yaml:"check,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// HasCheck reports whether this environment defines a check command.
func (e EnvironmentConfig) HasCheck() bool { return e.Check != "" }

// Clone returns a deep copy of pkg (the Environments map is copied so
// callers can mutate the result without aliasing the original).
func (pkg Package) Clone() Package {
	envs := make(map[string]EnvironmentConfig, len(pkg.Environments))
	for name, cfg := range pkg.Environments {
		deps := make([]string, len(cfg.Dependencies))
		copy(deps, cfg.Dependencies)
		cfg.Dependencies = deps
		envs[name] = cfg
	}
	pkg.Environments = envs
	return pkg
}

// SortedEnvironmentNames returns the package's environment names, with
// `current` first (if present) followed by the rest in alphabetical
// order — the iteration order spec.md's `info` operation requires.
func (pkg Package) SortedEnvironmentNames(current string) []string {
	names := make([]string, 0, len(pkg.Environments))
	for name := range pkg.Environments {
		if name == current {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if _, ok := pkg.Environments[current]; ok {
		names = append([]string{current}, names...)
	}
	return names
}
