package engine

import (
	"context"
	"path/filepath"

	"github.com/turboladen/selfie/internal/event"
	"github.com/turboladen/selfie/internal/pkgdef"
)

// Create synthesizes a template package definition for name and writes it
// to the package directory as `<name>.yaml`. A pre-existing definition for
// name is a hard failure (spec.md §4.6).
func (e *Engine) Create(ctx context.Context, name string) *event.Channel {
	op := event.NewInfo(event.OpCreate, name, e.cfg.Environment)
	return e.start(ctx, op, func(ctx context.Context, p *event.Producer) {
		p.Send(event.NewStarted(op))

		if !e.checkDirectory(p) {
			return
		}

		p.Send(event.NewProgress(p.Info(), 1, createTotalSteps, "Checking for an existing package definition"))
		if existing := e.repo.FindFiles(name); len(existing) > 0 {
			err := &pkgdef.ExistsError{Name: name, Path: existing[0]}
			p.Send(event.NewError(p.Info(), err, "Package already exists"))
			p.Send(event.NewCompletedFailure(p.Info(), err.Error()))
			return
		}

		environment := e.cfg.Environment
		if environment == "" {
			environment = "default"
		}

		pkg := pkgdef.Package{
			Name:        name,
			Version:     "0.1.0",
			Description: "TODO: describe this package",
			Environments: map[string]pkgdef.EnvironmentConfig{
				environment: {
					Install: "# TODO: add an install command",
				},
			},
		}

		path := filepath.Join(e.cfg.PackageDirectory, name+".yaml")
		p.Send(event.NewProgress(p.Info(), createTotalSteps, createTotalSteps, "Writing package definition"))
		if err := e.repo.Save(pkg, path); err != nil {
			p.Send(event.NewError(p.Info(), err, "Error writing package definition"))
			p.Send(event.NewCompletedFailure(p.Info(), "unable to write package definition"))
			return
		}

		p.Send(event.NewCompletedSuccess(p.Info(), "package created at "+path))
	})
}
