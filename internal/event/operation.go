// Package event implements the Event Channel: an ordered, single-producer
// pipeline carrying typed PackageEvent values from an operation to its
// caller, with per-operation metadata (spec.md §3/§4.5).
package event

import (
	"time"

	"github.com/google/uuid"
)

// Operation identifies the kind of work an OperationInfo describes.
type Operation string

const (
	OpCheck    Operation = "check"
	OpInstall  Operation = "install"
	OpInfo     Operation = "info"
	OpList     Operation = "list"
	OpValidate Operation = "validate"
	OpCreate   Operation = "create"
)

// Info carries the metadata attached to every event in a stream: the
// operation kind, the package name it targets, the active environment, a
// unique operation id, and the operation's start timestamp (set once by
// NewInfo; each event's own instant is Base.ObservedAt).
type Info struct {
	Operation   Operation
	PackageName string
	Environment string
	ID          string
	StartedAt   time.Time
}

// NewInfo builds an Info with a fresh UUID and the current time.
func NewInfo(op Operation, packageName, environment string) Info {
	return Info{
		Operation:   op,
		PackageName: packageName,
		Environment: environment,
		ID:          uuid.NewString(),
		StartedAt:   time.Now(),
	}
}
