package engine

import (
	"context"

	"github.com/turboladen/selfie/internal/event"
	"github.com/turboladen/selfie/internal/validate"
)

// Validate runs every structural rule against a package definition,
// succeeding (even with warnings) unless at least one error was found
// (spec.md §4.4/§4.6).
func (e *Engine) Validate(ctx context.Context, name string) *event.Channel {
	op := event.NewInfo(event.OpValidate, name, e.cfg.Environment)
	return e.start(ctx, op, func(ctx context.Context, p *event.Producer) {
		p.Send(event.NewStarted(op))

		if !e.checkDirectory(p) {
			return
		}

		pkg, ferr := fetchPackage(p, e.repo, name, e.logger, 1, validateTotalSteps)
		if ferr != nil {
			p.Send(event.NewCompletedFailure(p.Info(), "unable to fetch package"))
			return
		}

		p.Send(event.NewProgress(p.Info(), 2, validateTotalSteps, "Checking required fields and structure"))
		p.Send(event.NewProgress(p.Info(), 3, validateTotalSteps, "Checking URLs and environment membership"))
		p.Send(event.NewProgress(p.Info(), 4, validateTotalSteps, "Checking command syntax"))
		result := validate.Package(pkg, e.cfg.Environment)

		issues := make([]event.IssueSummary, 0, len(result.Issues))
		for _, issue := range result.Issues {
			issues = append(issues, event.IssueSummary{
				Category:   string(issue.Category),
				Level:      string(issue.Level),
				Field:      issue.Field,
				Message:    issue.Message,
				Suggestion: issue.Suggestion,
			})
		}

		p.Send(event.NewProgress(p.Info(), validateTotalSteps, validateTotalSteps, "Summarizing validation results"))
		p.Send(event.NewValidationResultCompleted(p.Info(), issues))

		if result.IsValid() {
			p.Send(event.NewCompletedSuccess(p.Info(), "package is valid"))
		} else {
			p.Send(event.NewCompletedFailure(p.Info(), "package failed validation"))
		}
	})
}
