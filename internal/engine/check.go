package engine

import (
	"context"

	"github.com/turboladen/selfie/internal/event"
)

// Check runs a package's check command and reports whether it succeeded,
// without installing anything (spec.md §4.6). A missing check command is
// not an error: the operation still completes successfully, reporting
// "not installed".
func (e *Engine) Check(ctx context.Context, name string) *event.Channel {
	op := event.NewInfo(event.OpCheck, name, e.cfg.Environment)
	return e.start(ctx, op, func(ctx context.Context, p *event.Producer) {
		p.Send(event.NewStarted(op))

		if !e.checkDirectory(p) {
			return
		}

		pkg, ferr := fetchPackage(p, e.repo, name, e.logger, 1, checkTotalSteps)
		if ferr != nil {
			p.Send(event.NewCompletedFailure(p.Info(), "unable to fetch package"))
			return
		}

		envConfig, serr := selectEnvironment(p, pkg, e.cfg.Environment, e.logger, 2, checkTotalSteps)
		if serr != nil {
			p.Send(event.NewCompletedFailure(p.Info(), serr.message))
			return
		}

		cmd, cerr := requireCommand(p, envConfig, kindCheck, 3, checkTotalSteps)
		if cerr != nil {
			// Missing check command is a domain condition, not a failure.
			p.Send(event.NewCheckResultCompleted(p.Info(), false))
			p.Send(event.NewCompletedSuccess(p.Info(), "no check defined; treated as not installed"))
			return
		}

		out, rerr := runCommand(ctx, p, e.runner, cmd, kindCheck, e.cfg, e.logger, 3, checkTotalSteps)
		if rerr != nil {
			p.Send(event.NewCompletedFailure(p.Info(), rerr.message))
			return
		}
		installed := out.Success()

		p.Send(event.NewCheckResultCompleted(p.Info(), installed))
		if installed {
			p.Send(event.NewCompletedSuccess(p.Info(), "installed"))
		} else {
			p.Send(event.NewCompletedSuccess(p.Info(), "not installed"))
		}
	})
}
