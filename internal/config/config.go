// Package config loads AppConfig from the OS config directory, following
// the discovery and default rules of spec.md §3/§6.
package config

import (
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/turboladen/selfie/internal/fsport"
)

// AppConfig is the persisted, per-user configuration (spec.md §3).
type AppConfig struct {
	Environment              string `yaml:"environment"`
	PackageDirectory         string `yaml:"package_directory"`
	CommandTimeoutSeconds    int    `yaml:"command_timeout"`
	MaxParallelInstallations int    `yaml:"max_parallel_installations"`
	StopOnError              bool   `yaml:"stop_on_error"`
	Verbose                  bool   `yaml:"verbose"`
	UseColors                bool   `yaml:"use_colors"`
}

// CommandTimeout returns the configured timeout as a time.Duration.
func (c AppConfig) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// Default returns the baseline configuration before any file/flag
// overrides are applied.
func Default() AppConfig {
	return AppConfig{
		CommandTimeoutSeconds:    60,
		MaxParallelInstallations: runtime.NumCPU(),
		StopOnError:              true,
		UseColors:                true,
	}
}

// Overrides carries the CLI flag values that take highest precedence.
type Overrides struct {
	Environment      *string
	PackageDirectory *string
	Verbose          *bool
	UseColors        *bool
}

// Apply merges overrides into cfg, flags winning where set.
func (o Overrides) Apply(cfg AppConfig) AppConfig {
	if o.Environment != nil {
		cfg.Environment = *o.Environment
	}
	if o.PackageDirectory != nil {
		cfg.PackageDirectory = *o.PackageDirectory
	}
	if o.Verbose != nil {
		cfg.Verbose = *o.Verbose
	}
	if o.UseColors != nil {
		cfg.UseColors = *o.UseColors
	}
	return cfg
}

// Load discovers config.yaml/config.yml under fs.ConfigDir(), parses it
// over the defaults, expands PackageDirectory, and applies overrides.
// Finding both config.yaml and config.yml is a MultipleFoundError;
// finding neither is a NotFoundError.
func Load(fs fsport.FS, overrides Overrides) (AppConfig, error) {
	dir, err := fs.ConfigDir()
	if err != nil {
		return AppConfig{}, err
	}

	path, err := resolveConfigPath(fs, dir)
	if err != nil {
		return AppConfig{}, err
	}

	cfg := Default()
	if path != "" {
		data, err := fs.ReadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, &MalformedError{Path: path, Err: err}
		}
	}

	cfg = overrides.Apply(cfg)

	if cfg.PackageDirectory != "" {
		expanded, err := fs.ExpandPath(cfg.PackageDirectory)
		if err != nil {
			return AppConfig{}, err
		}
		cfg.PackageDirectory = expanded
	}

	return cfg, nil
}

func resolveConfigPath(fs fsport.FS, dir string) (string, error) {
	var candidates []string
	for _, name := range []string{"config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if fs.PathExists(p) {
			candidates = append(candidates, p)
		}
	}
	switch len(candidates) {
	case 0:
		return "", &NotFoundError{SearchedDir: dir}
	case 1:
		return candidates[0], nil
	default:
		return "", &MultipleFoundError{Paths: candidates}
	}
}
