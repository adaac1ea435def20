package pkgdef

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when no <name>.yaml/<name>.yml file exists.
// It carries the searched paths and the patterns tried, per spec.md §4.3/§7.
type NotFoundError struct {
	Name           string
	SearchedPaths  []string
	SearchPatterns []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("package %q not found (searched %s)", e.Name, strings.Join(e.SearchedPaths, ", "))
}

// MultiplePackagesFoundError is returned when both <name>.yaml and
// <name>.yml exist for the same name.
type MultiplePackagesFoundError struct {
	Name              string
	ConflictingPaths  []string
}

func (e *MultiplePackagesFoundError) Error() string {
	return fmt.Sprintf("multiple definitions found for package %q: %s", e.Name, strings.Join(e.ConflictingPaths, ", "))
}

// ParseError wraps a YAML decode failure with enough context (the failing
// file and its size) to render an actionable diagnostic.
type ParseError struct {
	Path string
	Size int64
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s (%d bytes): %v", e.Path, e.Size, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExistsError is returned when creating a package whose name already has
// a definition file on disk.
type ExistsError struct {
	Name string
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("package %q already exists at %s", e.Name, e.Path)
}

// EnvironmentNotFoundError is returned when a package lacks the requested
// environment; it carries the environments the package does define.
type EnvironmentNotFoundError struct {
	PackageName          string
	Requested            string
	AvailableEnvironments []string
}

func (e *EnvironmentNotFoundError) Error() string {
	return fmt.Sprintf("package %q does not support environment %q (has: %s)",
		e.PackageName, e.Requested, strings.Join(e.AvailableEnvironments, ", "))
}

// NoCheckCommandError is returned when an environment has no check command.
// It carries the other environments that do, for diagnostics.
type NoCheckCommandError struct {
	PackageName      string
	Environment      string
	EnvironmentsWithCheck []string
}

func (e *NoCheckCommandError) Error() string {
	return fmt.Sprintf("package %q has no check command for environment %q", e.PackageName, e.Environment)
}
