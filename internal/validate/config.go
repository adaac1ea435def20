package validate

// Config holds the subset of AppConfig validation needs to see, kept
// decoupled from internal/config so the validate package does not import
// it.
type Config struct {
	Environment      string
	PackageDirectory string
}

// ConfigResult runs spec.md §4.4's config rules: environment non-empty;
// package_directory non-empty and absolute.
func ConfigResult(cfg Config, isAbsolute func(string) bool) Result {
	var issues []Issue

	if cfg.Environment == "" {
		issues = append(issues, errorIssue(CategoryRequiredField, "environment",
			"environment is required",
			"Set 'environment' to the name of your active environment."))
	}

	switch {
	case cfg.PackageDirectory == "":
		issues = append(issues, errorIssue(CategoryRequiredField, "package_directory",
			"package_directory is required",
			"Set 'package_directory' to an absolute path."))
	case !isAbsolute(cfg.PackageDirectory):
		issues = append(issues, errorIssue(CategoryInvalidValue, "package_directory",
			"package_directory must resolve to an absolute path",
			"Use an absolute path, or one starting with ~/."))
	}

	return Result{Issues: issues}
}
