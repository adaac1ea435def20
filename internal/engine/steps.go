// Package engine is the Operation Engine: it composes reusable steps
// (fetch package, select environment, fetch command, execute command)
// into one event stream per operation kind, mirroring
// original_source/crates/selfie/src/package/service/steps.rs.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/turboladen/selfie/internal/config"
	"github.com/turboladen/selfie/internal/event"
	"github.com/turboladen/selfie/internal/pkgdef"
	"github.com/turboladen/selfie/internal/runner"
)

// stepError distinguishes a soft failure (a domain-level negative
// outcome: an unsupported environment or a missing check command) from a
// hard failure (an error that prevents the operation from reaching a
// domain answer) — spec.md's GLOSSARY. Each operation decides how to
// report it: Check completes with Success for a missing check command,
// while Check and Install complete with Failure for an unsupported
// environment and for every hard failure.
type stepError struct {
	soft    bool
	message string
}

func (e *stepError) Error() string { return e.message }

func softFail(message string) *stepError { return &stepError{soft: true, message: message} }
func hardFail(message string) *stepError { return &stepError{soft: false, message: message} }

// commandKind distinguishes install from check commands for step 3/4.
type commandKind string

const (
	kindInstall commandKind = "install"
	kindCheck   commandKind = "check"
)

// fetchPackage resolves name via the repository, emitting Progress then
// Trace on success or Error on failure.
func fetchPackage(p *event.Producer, repo *pkgdef.Repository, name string, logger *logrus.Entry, step, total int) (pkgdef.Package, *stepError) {
	p.Send(event.NewProgress(p.Info(), step, total, fmt.Sprintf("Fetching package: %s", name)))

	pkg, err := repo.Get(name)
	if err != nil {
		p.Send(event.NewError(p.Info(), err, "Error fetching package from repository"))
		logger.WithError(err).Error("fetch_package failed")
		return pkgdef.Package{}, hardFail("unable to fetch package")
	}
	p.Send(event.NewTrace(p.Info(), "Package found"))
	logger.WithField("package", name).Trace("package found")
	return pkg, nil
}

// selectEnvironment looks up environment in pkg, emitting a Warning and a
// soft failure if it is absent.
func selectEnvironment(p *event.Producer, pkg pkgdef.Package, environment string, logger *logrus.Entry, step, total int) (pkgdef.EnvironmentConfig, *stepError) {
	p.Send(event.NewProgress(p.Info(), step, total,
		fmt.Sprintf("Checking if package supports current environment: %s", environment)))

	envConfig, ok := pkg.Environments[environment]
	if !ok {
		p.Send(event.NewWarning(p.Info(),
			fmt.Sprintf("Package '%s' does not support environment '%s'", pkg.Name, environment)))
		logger.WithFields(logrus.Fields{"package": pkg.Name, "environment": environment}).Warn("environment not supported")
		return pkgdef.EnvironmentConfig{}, softFail("environment not supported")
	}
	p.Send(event.NewTrace(p.Info(), "Current environment supported by package"))
	return envConfig, nil
}

// requireCommand extracts the install or check command from envConfig. A
// missing install command is a hard failure; a missing check command is a
// soft failure (spec.md §4.6: "absence is a domain condition, not an
// error" for check). Unlike the other shared steps, presence is reported
// with a Trace rather than its own Progress: the Progress for this step
// belongs to whichever step actually runs the command (requireCommand and
// runCommand together form one logical "run the package's command" step,
// keeping the check/install pipelines at their declared step totals).
func requireCommand(p *event.Producer, envConfig pkgdef.EnvironmentConfig, kind commandKind, step, total int) (string, *stepError) {
	var cmd string
	switch kind {
	case kindInstall:
		cmd = envConfig.Install
	case kindCheck:
		cmd = envConfig.Check
	}

	if cmd == "" {
		p.Send(event.NewProgress(p.Info(), step, total, fmt.Sprintf("Package does not have `%s` command", kind)))
		if kind == kindCheck {
			return "", softFail(fmt.Sprintf("no %s command defined", kind))
		}
		return "", hardFail(fmt.Sprintf("no %s command defined", kind))
	}
	p.Send(event.NewTrace(p.Info(), fmt.Sprintf("Package has `%s` command", kind)))
	return cmd, nil
}

// runCommand invokes cmd with the app's configured timeout, forwarding
// non-empty stdout/stderr as Info events when verbose is set, and
// returning the command's Output (callers test Output.Success()).
func runCommand(ctx context.Context, p *event.Producer, r runner.Runner, cmd string, kind commandKind, cfg config.AppConfig, logger *logrus.Entry, step, total int) (runner.Output, *stepError) {
	p.Send(event.NewProgress(p.Info(), step, total, fmt.Sprintf("Executing package's `%s` command: `%s`", kind, cmd)))

	out, err := r.ExecuteWithTimeout(ctx, cmd, cfg.CommandTimeout())
	if err != nil {
		p.Send(event.NewError(p.Info(), err, fmt.Sprintf("Failed to execute %s command", kind)))
		logger.WithError(err).WithField("command", cmd).Error("command execution failed")
		return runner.Output{}, hardFail(fmt.Sprintf("command execution failed: %s", kind))
	}

	if cfg.Verbose {
		if strings.TrimSpace(string(out.Stdout)) != "" {
			p.Send(event.NewInfoEvent(p.Info(), event.ConsoleStdout, string(out.Stdout)))
		}
		if strings.TrimSpace(string(out.Stderr)) != "" {
			p.Send(event.NewInfoEvent(p.Info(), event.ConsoleStderr, string(out.Stderr)))
		}
	}

	return out, nil
}
