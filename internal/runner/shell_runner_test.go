package runner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/turboladen/selfie/internal/runner"
)

// Timeout correctness (spec.md §8): ExecuteWithTimeout(cmd, t) returns
// within t + epsilon, and a Timeout error implies the child is no longer
// running (the call itself returning proves the kill succeeded).
func TestShellRunner_Timeout(t *testing.T) {
	r := runner.NewShellRunner()
	start := time.Now()

	_, err := r.ExecuteWithTimeout(context.Background(), "sleep 5", 100*time.Millisecond)
	elapsed := time.Since(start)

	var runErr *runner.RunError
	if !errors.As(err, &runErr) || runErr.Kind != runner.KindTimeout {
		t.Fatalf("err = %v, want *RunError{Kind: KindTimeout}", err)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("elapsed = %s, want under 500ms", elapsed)
	}
}

func TestShellRunner_ExitCodePropagatesWithoutError(t *testing.T) {
	r := runner.NewShellRunner()

	out, err := r.ExecuteWithTimeout(context.Background(), "exit 0", time.Second)
	if err != nil {
		t.Fatalf("unexpected error for exit 0: %v", err)
	}
	if !out.Success() {
		t.Errorf("out.Success() = false, want true")
	}

	out, err = r.ExecuteWithTimeout(context.Background(), "exit 7", time.Second)
	if err != nil {
		t.Fatalf("unexpected error for a plain non-zero exit: %v", err)
	}
	if out.Success() || out.ExitCode != 7 {
		t.Errorf("out = %+v, want ExitCode=7, Success()=false", out)
	}
}

func TestShellRunner_IsAvailable(t *testing.T) {
	r := runner.NewShellRunner()
	if !r.IsAvailable(context.Background(), "sh") {
		t.Error("expected sh to be available")
	}
	if r.IsAvailable(context.Background(), "definitely-not-a-real-command-xyz") {
		t.Error("expected a bogus command to be unavailable")
	}
}

// Stream completeness (spec.md §8): for any command whose stdout+stderr
// total N bytes, ExecuteStreaming delivers exactly N bytes across its
// callback invocations, preserving intra-stream order.
func TestShellRunner_StreamingDeliversAllBytes(t *testing.T) {
	r := runner.NewShellRunner()

	var stdout, stderr []byte
	out, err := r.ExecuteStreaming(context.Background(), `echo -n "abc"; echo -n "def" 1>&2; echo -n "ghi"`, time.Second,
		func(c runner.Chunk) error {
			switch c.Stream {
			case runner.Stdout:
				stdout = append(stdout, c.Data...)
			case runner.Stderr:
				stderr = append(stderr, c.Data...)
			}
			return nil
		})
	if err != nil {
		t.Fatalf("ExecuteStreaming: %v", err)
	}

	if string(stdout) != "abcghi" {
		t.Errorf("stdout = %q, want %q", stdout, "abcghi")
	}
	if string(stderr) != "def" {
		t.Errorf("stderr = %q, want %q", stderr, "def")
	}
	if string(out.Stdout) != "abcghi" || string(out.Stderr) != "def" {
		t.Errorf("Output = %+v", out)
	}
}

func TestShellRunner_StreamingCallbackErrorAborts(t *testing.T) {
	r := runner.NewShellRunner()
	boom := errors.New("boom")

	_, err := r.ExecuteStreaming(context.Background(), `echo hi`, time.Second, func(runner.Chunk) error {
		return boom
	})

	var runErr *runner.RunError
	if !errors.As(err, &runErr) || runErr.Kind != runner.KindCallbackError {
		t.Fatalf("err = %v, want *RunError{Kind: KindCallbackError}", err)
	}
}
