package config_test

import (
	"testing"

	"github.com/turboladen/selfie/internal/config"
	"github.com/turboladen/selfie/internal/enginetest"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	if cfg.CommandTimeoutSeconds != 60 {
		t.Errorf("Default CommandTimeoutSeconds = %d, want 60", cfg.CommandTimeoutSeconds)
	}
	if !cfg.StopOnError {
		t.Error("Default StopOnError = false, want true")
	}
	if !cfg.UseColors {
		t.Error("Default UseColors = false, want true")
	}
	if cfg.MaxParallelInstallations <= 0 {
		t.Errorf("Default MaxParallelInstallations = %d, want > 0", cfg.MaxParallelInstallations)
	}
}

func TestCommandTimeout(t *testing.T) {
	cfg := config.AppConfig{CommandTimeoutSeconds: 30}
	if cfg.CommandTimeout().Seconds() != 30 {
		t.Errorf("CommandTimeout() = %v, want 30s", cfg.CommandTimeout())
	}
}

func TestOverridesApply(t *testing.T) {
	env := "work"
	verbose := true
	cfg := config.Default()
	cfg = config.Overrides{Environment: &env, Verbose: &verbose}.Apply(cfg)

	if cfg.Environment != "work" {
		t.Errorf("Environment = %q, want work", cfg.Environment)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestLoad_NotFound(t *testing.T) {
	fs := enginetest.NewFakeFS("/config")
	_, err := config.Load(fs, config.Overrides{})

	if _, ok := err.(*config.NotFoundError); !ok {
		t.Fatalf("Load() error = %v, want *NotFoundError", err)
	}
}

func TestLoad_MultipleFound(t *testing.T) {
	fs := enginetest.NewFakeFS("/config").
		WithFile("/config/config.yaml", []byte("environment: test\n")).
		WithFile("/config/config.yml", []byte("environment: test\n"))

	_, err := config.Load(fs, config.Overrides{})

	if _, ok := err.(*config.MultipleFoundError); !ok {
		t.Fatalf("Load() error = %v, want *MultipleFoundError", err)
	}
}

func TestLoad_ParsesAndExpands(t *testing.T) {
	fs := enginetest.NewFakeFS("/config").
		WithFile("/config/config.yaml", []byte("environment: test\npackage_directory: ~/packages\nverbose: true\n"))

	cfg, err := config.Load(fs, config.Overrides{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Environment != "test" {
		t.Errorf("Environment = %q, want test", cfg.Environment)
	}
	if cfg.PackageDirectory != "/home/tester/packages" {
		t.Errorf("PackageDirectory = %q, want expanded path", cfg.PackageDirectory)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	// Defaults not present in the file should survive.
	if cfg.CommandTimeoutSeconds != 60 {
		t.Errorf("CommandTimeoutSeconds = %d, want default 60", cfg.CommandTimeoutSeconds)
	}
}

func TestLoad_OverridesWinOverFile(t *testing.T) {
	fs := enginetest.NewFakeFS("/config").
		WithFile("/config/config.yaml", []byte("environment: test\npackage_directory: /packages\n"))

	flagEnv := "prod"
	cfg, err := config.Load(fs, config.Overrides{Environment: &flagEnv})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Environment != "prod" {
		t.Errorf("Environment = %q, want prod (flag override)", cfg.Environment)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	fs := enginetest.NewFakeFS("/config").
		WithFile("/config/config.yaml", []byte("environment: [unterminated\n"))

	_, err := config.Load(fs, config.Overrides{})
	if _, ok := err.(*config.MalformedError); !ok {
		t.Fatalf("Load() error = %v, want *MalformedError", err)
	}
}
