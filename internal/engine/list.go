package engine

import (
	"context"
	"fmt"

	"github.com/turboladen/selfie/internal/event"
)

// List enumerates every package definition in the package directory,
// reporting parse failures alongside successes rather than letting one
// bad file hide the rest (spec.md §4.3/§4.6).
func (e *Engine) List(ctx context.Context) *event.Channel {
	op := event.NewInfo(event.OpList, "", e.cfg.Environment)
	return e.start(ctx, op, func(ctx context.Context, p *event.Producer) {
		p.Send(event.NewStarted(op))

		if !e.checkDirectory(p) {
			return
		}

		p.Send(event.NewProgress(p.Info(), 1, listTotalSteps, "Listing package directory"))
		result, err := e.repo.List()
		if err != nil {
			p.Send(event.NewError(p.Info(), err, "Error listing package directory"))
			p.Send(event.NewCompletedFailure(p.Info(), "unable to list packages"))
			return
		}

		p.Send(event.NewProgress(p.Info(), 2, listTotalSteps, "Parsing package definitions"))
		valid := make([]event.PackageListEntry, 0, len(result.Valid))
		for _, pkg := range result.Valid {
			valid = append(valid, event.PackageListEntry{Name: pkg.Name, SourcePath: pkg.SourcePath})
		}
		invalid := make([]event.PackageListInvalidEntry, 0, len(result.Invalid))
		for _, failure := range result.Invalid {
			invalid = append(invalid, event.PackageListInvalidEntry{Path: failure.Path, Err: failure.Err.Error()})
		}

		p.Send(event.NewProgress(p.Info(), 3, listTotalSteps, "Summarizing results"))
		p.Send(event.NewPackageListLoaded(p.Info(), valid, invalid))

		p.Send(event.NewCompletedSuccess(p.Info(),
			fmt.Sprintf("found %d package(s), %d invalid", len(valid), len(invalid))))
	})
}
