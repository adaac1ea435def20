package engine

import (
	"context"

	"github.com/turboladen/selfie/internal/event"
	"github.com/turboladen/selfie/internal/pkgdef"
)

// Info loads a package's metadata and, for the active environment, runs
// its check command (if any) to report live install status. Every other
// declared environment is reported with EnvStatusNone — info never runs
// commands for an environment the caller isn't in (spec.md §4.6).
func (e *Engine) Info(ctx context.Context, name string) *event.Channel {
	op := event.NewInfo(event.OpInfo, name, e.cfg.Environment)
	return e.start(ctx, op, func(ctx context.Context, p *event.Producer) {
		p.Send(event.NewStarted(op))

		if !e.checkDirectory(p) {
			return
		}

		pkg, ferr := fetchPackage(p, e.repo, name, e.logger, 1, infoTotalSteps)
		if ferr != nil {
			p.Send(event.NewCompletedFailure(p.Info(), "unable to fetch package"))
			return
		}

		p.Send(event.NewProgress(p.Info(), 2, infoTotalSteps, "Loading package metadata"))
		p.Send(event.NewPackageInfoLoaded(p.Info(), pkg.Name, pkg.Version, pkg.Description))

		p.Send(event.NewProgress(p.Info(), 3, infoTotalSteps, "Checking environment status"))
		for _, envName := range pkg.SortedEnvironmentNames(e.cfg.Environment) {
			isCurrent := envName == e.cfg.Environment
			status := e.environmentStatus(ctx, pkg, envName, isCurrent)
			p.Send(event.NewEnvironmentStatusChecked(p.Info(), envName, isCurrent, status))
		}

		p.Send(event.NewCompletedSuccess(p.Info(), "package info loaded"))
	})
}

func (e *Engine) environmentStatus(ctx context.Context, pkg pkgdef.Package, envName string, isCurrent bool) event.EnvironmentStatus {
	if !isCurrent {
		return event.EnvironmentStatus{Kind: event.EnvStatusNone}
	}

	envConfig := pkg.Environments[envName]
	if !envConfig.HasCheck() {
		return event.EnvironmentStatus{Kind: event.EnvStatusUnknown, Reason: "no check command defined"}
	}

	out, err := e.runner.ExecuteWithTimeout(ctx, envConfig.Check, e.cfg.CommandTimeout())
	if err != nil {
		return event.EnvironmentStatus{Kind: event.EnvStatusUnknown, Reason: err.Error()}
	}
	if out.Success() {
		return event.EnvironmentStatus{Kind: event.EnvStatusInstalled}
	}
	return event.EnvironmentStatus{Kind: event.EnvStatusNotInstalled}
}
