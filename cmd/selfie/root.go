// Package main is the selfie CLI: a thin cobra front end over
// internal/engine, the real-world caller the Operation Engine needs to be
// exercised end to end (SPEC_FULL.md "AMBIENT: CLI layer").
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/turboladen/selfie/internal/applog"
	"github.com/turboladen/selfie/internal/config"
	"github.com/turboladen/selfie/internal/engine"
	"github.com/turboladen/selfie/internal/fsport"
	"github.com/turboladen/selfie/internal/render"
	"github.com/turboladen/selfie/internal/runner"
)

var (
	// Global flags
	flagEnvironment      string
	flagPackageDirectory string
	flagVerbose          bool
	flagNoColor          bool
	flagOutputJSON       bool

	appCfg config.AppConfig
	logger *logrus.Entry
)

// rootCmd is the selfie base command.
var rootCmd = &cobra.Command{
	Use:   "selfie",
	Short: "A personal meta-package manager",
	Long: `selfie installs, checks, and manages packages defined as small YAML
files, one environment-specific command at a time. There is no dependency
graph, no remote fetching, and no rollback: just an engine that runs the
command a package defines for your environment and reports what happened.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadAppConfig()
	},
}

// Execute runs the selfie CLI, exiting 1 on any command error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagEnvironment, "environment", "e", "", "Active environment (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagPackageDirectory, "package-directory", "p", "", "Package directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print command stdout/stderr as it runs")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagOutputJSON, "output-json", false, "Emit one JSON object per event instead of formatted text")
}

// loadAppConfig resolves the AppConfig once per invocation: persisted
// config file, then flag overrides, exactly as spec.md §6 orders them.
func loadAppConfig() error {
	fs := fsport.NewOSFilesystem()

	overrides := config.Overrides{}
	if flagEnvironment != "" {
		overrides.Environment = &flagEnvironment
	}
	if flagPackageDirectory != "" {
		overrides.PackageDirectory = &flagPackageDirectory
	}
	if flagVerbose {
		overrides.Verbose = &flagVerbose
	}
	if flagNoColor {
		useColors := false
		overrides.UseColors = &useColors
	}

	cfg, err := config.Load(fs, overrides)
	if err != nil {
		// A missing config file is not fatal: defaults + flags may be
		// enough to operate (e.g. `selfie config validate` then reports an
		// empty environment or package_directory, everything else just
		// runs on defaults).
		var notFound *config.NotFoundError
		if !asNotFoundError(err, &notFound) {
			return err
		}
		cfg = overrides.Apply(config.Default())
	}

	appCfg = cfg
	logger = applog.New(appCfg.Verbose)
	return nil
}

func asNotFoundError(err error, target **config.NotFoundError) bool {
	nf, ok := err.(*config.NotFoundError)
	if ok {
		*target = nf
	}
	return ok
}

// newEngine builds the Engine for the current invocation against the real
// filesystem and shell.
func newEngine() *engine.Engine {
	return engine.New(fsport.NewOSFilesystem(), runner.NewShellRunner(), appCfg, logger)
}

// newRenderer builds the Renderer for the current invocation's output
// flags, writing to stdout.
func newRenderer() *render.Renderer {
	return render.New(os.Stdout, appCfg.UseColors && !flagNoColor, flagOutputJSON)
}
