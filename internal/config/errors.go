package config

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when neither config.yaml nor config.yml
// exists in the searched directory (spec.md §6).
type NotFoundError struct {
	SearchedDir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no config.yaml or config.yml found in %s", e.SearchedDir)
}

// MultipleFoundError is returned when both config.yaml and config.yml
// exist in the same directory.
type MultipleFoundError struct {
	Paths []string
}

func (e *MultipleFoundError) Error() string {
	return fmt.Sprintf("multiple config files found: %s", strings.Join(e.Paths, ", "))
}

// MalformedError wraps a YAML decode failure for the config file.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed config at %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }
