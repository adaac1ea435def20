package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/turboladen/selfie/internal/pkgdef"
)

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	semverPrefix   = regexp.MustCompile(`^\d+\.\d+\.\d+`)
)

// Package runs every structural rule from spec.md §4.4 against pkg,
// against the active currentEnvironment (pass "" to skip that check).
func Package(pkg pkgdef.Package, currentEnvironment string) Result {
	var issues []Issue
	issues = append(issues, validateRequiredFields(pkg)...)
	issues = append(issues, validateURLs(pkg)...)
	issues = append(issues, validateEnvironments(pkg, currentEnvironment)...)
	issues = append(issues, validateCommandSyntax(pkg)...)
	return Result{Path: pkg.SourcePath, Issues: issues}
}

func validateRequiredFields(pkg pkgdef.Package) []Issue {
	var issues []Issue

	switch {
	case pkg.Name == "":
		issues = append(issues, errorIssue(CategoryRequiredField, "name",
			"Package name is required",
			"Add 'name: your-package-name' to the package file."))
	case !namePattern.MatchString(pkg.Name):
		issues = append(issues, errorIssue(CategoryInvalidValue, "name",
			"Package name contains invalid characters",
			"Use only alphanumeric characters, hyphens, and underscores."))
	}

	switch {
	case pkg.Version == "":
		issues = append(issues, errorIssue(CategoryRequiredField, "version",
			"Package version is required",
			`Add 'version: "0.1.0"' to the package file.`))
	case !semverPrefix.MatchString(pkg.Version):
		issues = append(issues, warningIssue(CategoryInvalidValue, "version",
			"Package version should follow semantic versioning",
			"Consider using a semantic version like '1.0.0'."))
	}

	if len(pkg.Environments) == 0 {
		issues = append(issues, errorIssue(CategoryRequiredField, "environments",
			"At least one environment must be defined",
			"Add an 'environments' section with at least one environment."))
	}

	return issues
}

func validateURLs(pkg pkgdef.Package) []Issue {
	if pkg.Homepage == "" {
		return nil
	}
	// Parse-then-scheme-check (spec.md §9): a URL missing a scheme (or
	// otherwise malformed) is a parse error, not a scheme warning.
	parsed, err := url.Parse(pkg.Homepage)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return []Issue{errorIssue(CategoryURLFormat, "homepage",
			fmt.Sprintf("Invalid URL format: %s", pkg.Homepage),
			"Provide a valid URL with http:// or https:// prefix.")}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return []Issue{warningIssue(CategoryURLFormat, "homepage",
			fmt.Sprintf("URL should use http or https scheme, found: %s", parsed.Scheme),
			"Use https:// prefix for the URL.")}
	}
	return nil
}

func validateEnvironments(pkg pkgdef.Package, currentEnvironment string) []Issue {
	var issues []Issue

	if currentEnvironment != "" {
		if _, ok := pkg.Environments[currentEnvironment]; !ok {
			issues = append(issues, warningIssue(CategoryEnvironment, "environments",
				fmt.Sprintf("Current environment '%s' is not configured", currentEnvironment),
				fmt.Sprintf("Add an environment section for '%s' if needed for this environment.", currentEnvironment)))
		}
	}

	names := make([]string, 0, len(pkg.Environments))
	for name := range pkg.Environments {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, envName := range names {
		envConfig := pkg.Environments[envName]
		if envConfig.Install == "" {
			issues = append(issues, errorIssue(CategoryRequiredField,
				fmt.Sprintf("environments.%s.install", envName),
				"Install command is required",
				"Add an install command like 'brew install package-name'."))
		}
		for i, dep := range envConfig.Dependencies {
			if dep == "" {
				issues = append(issues, errorIssue(CategoryInvalidValue,
					fmt.Sprintf("environments.%s.dependencies[%d]", envName, i),
					"Dependency name cannot be empty",
					"Remove the empty dependency or provide a valid name."))
			}
		}
	}

	return issues
}

func validateCommandSyntax(pkg pkgdef.Package) []Issue {
	var issues []Issue
	names := make([]string, 0, len(pkg.Environments))
	for name := range pkg.Environments {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, envName := range names {
		envConfig := pkg.Environments[envName]
		issues = append(issues, validateSingleCommand(envConfig.Install, fmt.Sprintf("environments.%s.install", envName))...)
		if envConfig.Check != "" {
			issues = append(issues, validateSingleCommand(envConfig.Check, fmt.Sprintf("environments.%s.check", envName))...)
		}
	}
	return issues
}

func validateSingleCommand(command, field string) []Issue {
	var issues []Issue

	inSingle, inDouble := false, false
	for _, c := range command {
		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
		case c == '"' && !inSingle:
			inDouble = !inDouble
		}
	}
	if inSingle {
		issues = append(issues, errorIssue(CategoryCommandSyntax, field,
			"Unmatched single quote in command",
			"Add a closing single quote (') to the command."))
	}
	if inDouble {
		issues = append(issues, errorIssue(CategoryCommandSyntax, field,
			"Unmatched double quote in command",
			`Add a closing double quote (") to the command.`))
	}

	if strings.Contains(command, "| |") {
		issues = append(issues, errorIssue(CategoryCommandSyntax, field,
			"Invalid pipe usage in command",
			"Remove duplicate pipe symbols."))
	}

	for _, redirect := range []string{">", ">>", "<"} {
		if strings.Contains(command, redirect+" ") &&
			!strings.Contains(command, redirect+" /") &&
			!strings.Contains(command, redirect+" ~/") {
			issues = append(issues, warningIssue(CategoryCommandSyntax, field,
				fmt.Sprintf("Potential invalid redirection with %s", redirect),
				"Ensure the redirection path is valid and absolute."))
		}
	}

	if strings.Contains(command, "`") {
		issues = append(issues, warningIssue(CategoryCommandSyntax, field,
			"Contains command substitution with backticks",
			"Consider using $() for command substitution instead of backticks."))
	}

	return issues
}
