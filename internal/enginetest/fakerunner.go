package enginetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/turboladen/selfie/internal/runner"
)

// Script describes the canned Output (or error) a FakeRunner returns for
// one exact command string.
type Script struct {
	Output    runner.Output
	Err       error
	Available bool
}

// FakeRunner is a scripted runner.Runner: every command it's asked to run
// must have been registered with On, so tests never depend on a real
// shell being present.
type FakeRunner struct {
	mu       sync.Mutex
	scripts  map[string]Script
	Commands []string // every command passed to Execute*, in call order
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{scripts: make(map[string]Script)}
}

// On registers the Script to return every time cmd is executed.
func (f *FakeRunner) On(cmd string, script Script) *FakeRunner {
	f.scripts[cmd] = script
	return f
}

// Succeed is shorthand for On(cmd, exit 0 with the given stdout).
func (f *FakeRunner) Succeed(cmd, stdout string) *FakeRunner {
	return f.On(cmd, Script{Output: runner.Output{ExitCode: 0, Stdout: []byte(stdout)}, Available: true})
}

// Fail is shorthand for On(cmd, a non-zero exit).
func (f *FakeRunner) Fail(cmd string, exitCode int, stderr string) *FakeRunner {
	return f.On(cmd, Script{Output: runner.Output{ExitCode: exitCode, Stderr: []byte(stderr)}, Available: true})
}

func (f *FakeRunner) IsAvailable(ctx context.Context, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.scripts[name]
	return ok && s.Available
}

func (f *FakeRunner) Execute(ctx context.Context, cmd string) (runner.Output, error) {
	return f.ExecuteWithTimeout(ctx, cmd, 0)
}

func (f *FakeRunner) ExecuteWithTimeout(ctx context.Context, cmd string, timeout time.Duration) (runner.Output, error) {
	f.mu.Lock()
	f.Commands = append(f.Commands, cmd)
	s, ok := f.scripts[cmd]
	f.mu.Unlock()
	if !ok {
		return runner.Output{}, fmt.Errorf("enginetest: no script registered for command %q", cmd)
	}
	return s.Output, s.Err
}

func (f *FakeRunner) ExecuteStreaming(ctx context.Context, cmd string, timeout time.Duration, onChunk runner.OnChunk) (runner.Output, error) {
	out, err := f.ExecuteWithTimeout(ctx, cmd, timeout)
	if err != nil {
		return out, err
	}
	if len(out.Stdout) > 0 {
		if cbErr := onChunk(runner.Chunk{Stream: runner.Stdout, Data: out.Stdout}); cbErr != nil {
			return out, cbErr
		}
	}
	if len(out.Stderr) > 0 {
		if cbErr := onChunk(runner.Chunk{Stream: runner.Stderr, Data: out.Stderr}); cbErr != nil {
			return out, cbErr
		}
	}
	return out, nil
}

var _ runner.Runner = (*FakeRunner)(nil)
