package event

import "time"

// ConsoleStream identifies which pipe an Info event's output came from.
type ConsoleStream int

const (
	ConsoleStdout ConsoleStream = iota
	ConsoleStderr
)

// Result is the outcome carried by a terminal Completed event.
type Result struct {
	Success bool
	Message string
}

// PackageEvent is the sealed union of everything an operation can emit.
// Every implementation embeds Base and has an unexported marker method so
// only this package's types satisfy the interface.
type PackageEvent interface {
	info() Info
	isPackageEvent()
}

// Base carries the metadata common to every event: the operation info and
// the instant this particular event was produced.
type Base struct {
	Op         Info
	ObservedAt time.Time
}

func (b Base) info() Info { return b.Op }

func newBase(op Info) Base {
	return Base{Op: op, ObservedAt: time.Now()}
}

type Started struct{ Base }

type Progress struct {
	Base
	Step    int
	Total   int
	Percent float64
	Message string
}

type ConsoleOutput struct {
	Stream ConsoleStream
	Text   string
}

type InfoEvent struct {
	Base
	Output ConsoleOutput
}

type Trace struct {
	Base
	Message string
}

type Debug struct {
	Base
	Message string
}

type Warning struct {
	Base
	Message string
}

type Error struct {
	Base
	Err     error
	Message string
}

type Canceled struct {
	Base
	Reason string
}

type Completed struct {
	Base
	Result Result
}

// Structured payload events. These duplicate data already present in the
// terminal Completed event by design (spec.md §9): a renderer can build a
// table view from these without parsing prose messages.

type EnvironmentStatus struct {
	Kind   EnvironmentStatusKind
	Reason string // populated when Kind == EnvStatusUnknown
}

type EnvironmentStatusKind int

const (
	EnvStatusNone EnvironmentStatusKind = iota
	EnvStatusInstalled
	EnvStatusNotInstalled
	EnvStatusUnknown
)

type PackageInfoLoaded struct {
	Base
	PackageName string
	Version     string
	Description string
}

type EnvironmentStatusChecked struct {
	Base
	Environment string
	IsCurrent   bool
	Status      EnvironmentStatus
}

type PackageListEntry struct {
	Name       string
	SourcePath string
}

type PackageListInvalidEntry struct {
	Path string
	Err  string
}

type PackageListLoaded struct {
	Base
	Valid   []PackageListEntry
	Invalid []PackageListInvalidEntry
}

type CheckResultCompleted struct {
	Base
	Installed bool
}

type ValidationResultCompleted struct {
	Base
	Issues []IssueSummary
}

// IssueSummary mirrors internal/validate.Issue without importing that
// package here, keeping event a dependency-free leaf.
type IssueSummary struct {
	Category   string
	Level      string
	Field      string
	Message    string
	Suggestion string
}

func (Started) isPackageEvent()                   {}
func (Progress) isPackageEvent()                  {}
func (InfoEvent) isPackageEvent()                 {}
func (Trace) isPackageEvent()                     {}
func (Debug) isPackageEvent()                     {}
func (Warning) isPackageEvent()                   {}
func (Error) isPackageEvent()                     {}
func (Canceled) isPackageEvent()                  {}
func (Completed) isPackageEvent()                 {}
func (PackageInfoLoaded) isPackageEvent()         {}
func (EnvironmentStatusChecked) isPackageEvent()  {}
func (PackageListLoaded) isPackageEvent()         {}
func (CheckResultCompleted) isPackageEvent()      {}
func (ValidationResultCompleted) isPackageEvent() {}

// NewStarted builds the mandatory first event of an operation.
func NewStarted(op Info) Started { return Started{Base: newBase(op)} }

// NewProgress builds a step-progress event with a derived percentage.
func NewProgress(op Info, step, total int, message string) Progress {
	var pct float64
	if total > 0 {
		pct = float64(step) / float64(total)
	}
	return Progress{Base: newBase(op), Step: step, Total: total, Percent: pct, Message: message}
}

func NewInfoEvent(op Info, stream ConsoleStream, text string) InfoEvent {
	return InfoEvent{Base: newBase(op), Output: ConsoleOutput{Stream: stream, Text: text}}
}

func NewTrace(op Info, message string) Trace { return Trace{Base: newBase(op), Message: message} }

func NewDebug(op Info, message string) Debug { return Debug{Base: newBase(op), Message: message} }

func NewWarning(op Info, message string) Warning {
	return Warning{Base: newBase(op), Message: message}
}

func NewError(op Info, err error, message string) Error {
	return Error{Base: newBase(op), Err: err, Message: message}
}

func NewCanceled(op Info, reason string) Canceled {
	return Canceled{Base: newBase(op), Reason: reason}
}

func NewCompletedSuccess(op Info, message string) Completed {
	return Completed{Base: newBase(op), Result: Result{Success: true, Message: message}}
}

func NewCompletedFailure(op Info, message string) Completed {
	return Completed{Base: newBase(op), Result: Result{Success: false, Message: message}}
}

func NewPackageInfoLoaded(op Info, packageName, version, description string) PackageInfoLoaded {
	return PackageInfoLoaded{Base: newBase(op), PackageName: packageName, Version: version, Description: description}
}

func NewEnvironmentStatusChecked(op Info, environment string, isCurrent bool, status EnvironmentStatus) EnvironmentStatusChecked {
	return EnvironmentStatusChecked{Base: newBase(op), Environment: environment, IsCurrent: isCurrent, Status: status}
}

func NewPackageListLoaded(op Info, valid []PackageListEntry, invalid []PackageListInvalidEntry) PackageListLoaded {
	return PackageListLoaded{Base: newBase(op), Valid: valid, Invalid: invalid}
}

func NewCheckResultCompleted(op Info, installed bool) CheckResultCompleted {
	return CheckResultCompleted{Base: newBase(op), Installed: installed}
}

func NewValidationResultCompleted(op Info, issues []IssueSummary) ValidationResultCompleted {
	return ValidationResultCompleted{Base: newBase(op), Issues: issues}
}
