package engine

import "github.com/turboladen/selfie/internal/pkgdef"

// Remove deletes a package's definition file(s). Unlike every other
// operation, it does not produce an event stream: the original spec's
// distillation dropped this operation and the CLI surface still needs
// it (spec.md §6 lists `package remove`), but nothing about deleting a
// small YAML file warrants progress reporting, so it delegates straight
// to the repository, matching how `original_source`'s dropped
// `remove.rs` calls into the repository directly rather than through
// the event-driven service layer.
func (e *Engine) Remove(name string) error {
	return e.repo.Remove(name)
}

// Dependents returns every package that lists name as a dependency, for
// the CLI's pre-removal warning (remove.rs's find_dependent_packages
// check).
func (e *Engine) Dependents(name string) ([]pkgdef.Package, error) {
	return e.repo.FindDependents(name)
}
