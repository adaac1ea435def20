package pkgdef

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawPackage mirrors Package but keeps environments as raw nodes so each one
// can be decoded strictly (unknown fields inside an environment are a parse
// error per spec.md §6, even though unknown top-level package fields are
// ignored for forward compatibility).
type rawPackage struct {
	Name         string                   `yaml:"name"`
	Version      string                   `yaml:"version"`
	Homepage     string                   `yaml:"homepage"`
	Description  string                   `yaml:"description"`
	Environments map[string]yaml.Node     `yaml:"environments"`
}

// strictEnvironmentConfig rejects unrecognized keys via yaml.v3's
// KnownFields-equivalent: decoding into a struct with no catch-all field
// and checking Decode's own strictness by round-tripping through
// UnmarshalStrict-style node decoding.
type strictEnvironmentConfig struct {
	Install      string   `yaml:"install"`
	Check        string   `yaml:"check"`
	Dependencies []string `yaml:"dependencies"`
}

// ParsePackage decodes raw YAML bytes into a Package. Unknown top-level
// fields are ignored; unknown fields inside an environment block are a
// hard error.
func ParsePackage(data []byte) (Package, error) {
	var raw rawPackage
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Package{}, err
	}

	pkg := Package{
		Name:        raw.Name,
		Version:     raw.Version,
		Homepage:    raw.Homepage,
		Description: raw.Description,
	}
	if len(raw.Environments) > 0 {
		pkg.Environments = make(map[string]EnvironmentConfig, len(raw.Environments))
		for name, node := range raw.Environments {
			node := node
			reEncoded, err := yaml.Marshal(&node)
			if err != nil {
				return Package{}, fmt.Errorf("environment %q: %w", name, err)
			}
			decoder := yaml.NewDecoder(bytes.NewReader(reEncoded))
			decoder.KnownFields(true)
			var cfg strictEnvironmentConfig
			if err := decoder.Decode(&cfg); err != nil {
				return Package{}, fmt.Errorf("environment %q: %w", name, err)
			}
			pkg.Environments[name] = EnvironmentConfig{
				Install:      cfg.Install,
				Check:        cfg.Check,
				Dependencies: cfg.Dependencies,
			}
		}
	}
	return pkg, nil
}

// SerializePackage marshals pkg back to YAML (SourcePath is never emitted).
func SerializePackage(pkg Package) ([]byte, error) {
	return yaml.Marshal(pkg)
}
