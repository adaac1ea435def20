package engine

import (
	"context"
	"fmt"

	"github.com/turboladen/selfie/internal/event"
)

// Install runs a package's install command for the active environment
// (spec.md §4.6). Unlike Check, a missing install command is a hard
// failure — every environment a package declares must be installable.
func (e *Engine) Install(ctx context.Context, name string) *event.Channel {
	op := event.NewInfo(event.OpInstall, name, e.cfg.Environment)
	return e.start(ctx, op, func(ctx context.Context, p *event.Producer) {
		p.Send(event.NewStarted(op))

		if !e.checkDirectory(p) {
			return
		}

		pkg, ferr := fetchPackage(p, e.repo, name, e.logger, 1, installTotalSteps)
		if ferr != nil {
			p.Send(event.NewCompletedFailure(p.Info(), "unable to fetch package"))
			return
		}

		envConfig, serr := selectEnvironment(p, pkg, e.cfg.Environment, e.logger, 2, installTotalSteps)
		if serr != nil {
			p.Send(event.NewCompletedFailure(p.Info(), serr.message))
			return
		}

		cmd, cerr := requireCommand(p, envConfig, kindInstall, 3, installTotalSteps)
		if cerr != nil {
			p.Send(event.NewCompletedFailure(p.Info(), cerr.message))
			return
		}

		out, rerr := runCommand(ctx, p, e.runner, cmd, kindInstall, e.cfg, e.logger, 4, installTotalSteps)
		if rerr != nil {
			p.Send(event.NewCompletedFailure(p.Info(), rerr.message))
			return
		}

		p.Send(event.NewProgress(p.Info(), installTotalSteps, installTotalSteps, "Finalizing installation result"))
		if out.Success() {
			p.Send(event.NewCompletedSuccess(p.Info(), "installed"))
			return
		}
		p.Send(event.NewCompletedFailure(p.Info(),
			fmt.Sprintf("install failed for package %q (exit code %d)", name, out.ExitCode)))
	})
}
