package engine_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/turboladen/selfie/internal/config"
	"github.com/turboladen/selfie/internal/engine"
	"github.com/turboladen/selfie/internal/enginetest"
	"github.com/turboladen/selfie/internal/event"
	"github.com/turboladen/selfie/internal/pkgdef"
)

func newTestEngine(t *testing.T, fs *enginetest.FakeFS, r *enginetest.FakeRunner, environment string) *engine.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Environment = environment
	cfg.PackageDirectory = "/packages"
	cfg.MaxParallelInstallations = 2
	logger := logrus.NewEntry(logrus.New())
	return engine.New(fs, r, cfg, logger)
}

func drain(ch *event.Channel) []event.PackageEvent {
	var events []event.PackageEvent
	for ev := range ch.Events() {
		events = append(events, ev)
	}
	return events
}

func writePackageFile(fs *enginetest.FakeFS, name, yamlBody string) {
	fs.WithFile("/packages/"+name, []byte(yamlBody))
}

// Scenario 1: Check, installed.
func TestCheck_Installed(t *testing.T) {
	fs := enginetest.NewFakeFS("/config")
	writePackageFile(fs, "jq.yaml", "name: jq\nversion: 1.0.0\nenvironments:\n  test:\n    install: \"true\"\n    check: \"true\"\n")
	r := enginetest.NewFakeRunner().Succeed(`true`, "")
	e := newTestEngine(t, fs, r, "test")

	events := drain(e.Check(context.Background(), "jq"))

	if _, ok := events[0].(event.Started); !ok {
		t.Fatalf("first event = %T, want Started", events[0])
	}
	progressCount := 0
	for _, ev := range events {
		if _, ok := ev.(event.Progress); ok {
			progressCount++
		}
	}
	if progressCount != 3 {
		t.Errorf("progress count = %d, want 3", progressCount)
	}
	last := events[len(events)-1]
	completed, ok := last.(event.Completed)
	if !ok || !completed.Result.Success || completed.Result.Message != "installed" {
		t.Errorf("terminal event = %#v, want Completed(Success(\"installed\"))", last)
	}
}

// Scenario 2: Check, not installed.
func TestCheck_NotInstalled(t *testing.T) {
	fs := enginetest.NewFakeFS("/config")
	writePackageFile(fs, "jq.yaml", "name: jq\nversion: 1.0.0\nenvironments:\n  test:\n    install: \"true\"\n    check: \"false\"\n")
	r := enginetest.NewFakeRunner().Fail(`false`, 1, "")
	e := newTestEngine(t, fs, r, "test")

	events := drain(e.Check(context.Background(), "jq"))

	last := events[len(events)-1]
	completed, ok := last.(event.Completed)
	if !ok || !completed.Result.Success || completed.Result.Message != "not installed" {
		t.Errorf("terminal event = %#v, want Completed(Success(\"not installed\"))", last)
	}
}

// Scenario 3: Check, missing environment.
func TestCheck_EnvironmentNotSupported(t *testing.T) {
	fs := enginetest.NewFakeFS("/config")
	writePackageFile(fs, "jq.yaml", "name: jq\nversion: 1.0.0\nenvironments:\n  test:\n    install: \"true\"\n    check: \"true\"\n")
	r := enginetest.NewFakeRunner()
	e := newTestEngine(t, fs, r, "prod")

	events := drain(e.Check(context.Background(), "jq"))

	sawWarning := false
	for _, ev := range events {
		if _, ok := ev.(event.Warning); ok {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Error("expected a Warning event for unsupported environment")
	}
	last := events[len(events)-1]
	completed, ok := last.(event.Completed)
	if !ok || completed.Result.Success {
		t.Errorf("terminal event = %#v, want Completed(Failure(...))", last)
	}
}

// Scenario 4: List, mixed valid/invalid.
func TestList_Mixed(t *testing.T) {
	fs := enginetest.NewFakeFS("/config")
	writePackageFile(fs, "a.yaml", "name: a\nversion: 1.0.0\nenvironments:\n  test:\n    install: \"true\"\n")
	writePackageFile(fs, "b.yml", "name: b\nversion: 1.0.0\nenvironments:\n  test:\n    install: \"true\"\n")
	writePackageFile(fs, "broken.yaml", "not: [valid yaml")
	e := newTestEngine(t, fs, enginetest.NewFakeRunner(), "test")

	events := drain(e.List(context.Background()))

	var loaded *event.PackageListLoaded
	for i := range events {
		if l, ok := events[i].(event.PackageListLoaded); ok {
			loaded = &l
		}
	}
	if loaded == nil {
		t.Fatal("expected a PackageListLoaded event")
	}
	if len(loaded.Valid) != 2 || loaded.Valid[0].Name != "a" || loaded.Valid[1].Name != "b" {
		t.Errorf("valid = %+v, want [a, b]", loaded.Valid)
	}
	if len(loaded.Invalid) != 1 || loaded.Invalid[0].Path != "/packages/broken.yaml" {
		t.Errorf("invalid = %+v, want [/packages/broken.yaml]", loaded.Invalid)
	}

	last := events[len(events)-1]
	if completed, ok := last.(event.Completed); !ok || !completed.Result.Success {
		t.Errorf("terminal event = %#v, want Completed(Success)", last)
	}
}

// Scenario 5: Duplicate names.
func TestCheck_DuplicatePackageNames(t *testing.T) {
	fs := enginetest.NewFakeFS("/config")
	writePackageFile(fs, "x.yaml", "name: x\nversion: 1.0.0\nenvironments:\n  test:\n    install: \"true\"\n")
	writePackageFile(fs, "x.yml", "name: x\nversion: 1.0.0\nenvironments:\n  test:\n    install: \"true\"\n")
	e := newTestEngine(t, fs, enginetest.NewFakeRunner(), "test")

	events := drain(e.Check(context.Background(), "x"))

	sawError := false
	for _, ev := range events {
		if errEv, ok := ev.(event.Error); ok {
			var dupErr *pkgdef.MultiplePackagesFoundError
			if asMultiplePackagesFound(errEv.Err, &dupErr) {
				sawError = true
			}
		}
	}
	if !sawError {
		t.Error("expected an Error event wrapping MultiplePackagesFoundError")
	}
	last := events[len(events)-1]
	if completed, ok := last.(event.Completed); !ok || completed.Result.Success {
		t.Errorf("terminal event = %#v, want Completed(Failure)", last)
	}
}

func asMultiplePackagesFound(err error, target **pkgdef.MultiplePackagesFoundError) bool {
	if dupErr, ok := err.(*pkgdef.MultiplePackagesFoundError); ok {
		*target = dupErr
		return true
	}
	return false
}

func TestDirectoryNotFound(t *testing.T) {
	fs := enginetest.NewFakeFS("/config")
	e := newTestEngine(t, fs, enginetest.NewFakeRunner(), "test")

	events := drain(e.List(context.Background()))

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3 (Started, Error, Completed)", len(events))
	}
	if _, ok := events[0].(event.Started); !ok {
		t.Errorf("events[0] = %T, want Started", events[0])
	}
	if _, ok := events[1].(event.Error); !ok {
		t.Errorf("events[1] = %T, want Error", events[1])
	}
	completed, ok := events[2].(event.Completed)
	if !ok || completed.Result.Success {
		t.Errorf("events[2] = %#v, want Completed(Failure)", events[2])
	}
}

func TestValidate_ReportsErrorsAsFailure(t *testing.T) {
	fs := enginetest.NewFakeFS("/config")
	writePackageFile(fs, "broken.yaml", "name: \"\"\nversion: 1.0.0\nenvironments: {}\n")
	e := newTestEngine(t, fs, enginetest.NewFakeRunner(), "test")

	events := drain(e.Validate(context.Background(), "broken"))

	var result *event.ValidationResultCompleted
	for i := range events {
		if v, ok := events[i].(event.ValidationResultCompleted); ok {
			result = &v
		}
	}
	if result == nil || len(result.Issues) == 0 {
		t.Fatal("expected ValidationResultCompleted with issues")
	}
	last := events[len(events)-1]
	if completed, ok := last.(event.Completed); !ok || completed.Result.Success {
		t.Errorf("terminal event = %#v, want Completed(Failure)", last)
	}
}

func TestCreate_CollidesWithExisting(t *testing.T) {
	fs := enginetest.NewFakeFS("/config")
	writePackageFile(fs, "jq.yaml", "name: jq\nversion: 1.0.0\nenvironments:\n  test:\n    install: \"true\"\n")
	e := newTestEngine(t, fs, enginetest.NewFakeRunner(), "test")

	events := drain(e.Create(context.Background(), "jq"))

	last := events[len(events)-1]
	if completed, ok := last.(event.Completed); !ok || completed.Result.Success {
		t.Errorf("terminal event = %#v, want Completed(Failure)", last)
	}
}
