// Package runner implements the Command Runner Port: async shell execution
// with a probe mode, a one-shot timeout mode, and a streaming mode that
// delivers stdout/stderr chunks as they are read.
package runner

import (
	"context"
	"time"
)

// Stream identifies which pipe a Chunk came from.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// Chunk is a piece of output delivered to a streaming callback as soon as
// it is read from the child process, before the process exits.
type Chunk struct {
	Stream Stream
	Data   []byte
}

// OnChunk is invoked for every Chunk read from the child. Returning an
// error aborts the stream and surfaces a CallbackError.
type OnChunk func(Chunk) error

// Output is the result of a completed command invocation.
type Output struct {
	ExitCode int // -1 if the process was killed by a signal
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Success reports whether the command exited zero.
func (o Output) Success() bool { return o.ExitCode == 0 }

// Runner is the Command Runner Port.
type Runner interface {
	// IsAvailable reports whether `command -v name` succeeds. It never
	// propagates its own failure to the caller.
	IsAvailable(ctx context.Context, name string) bool

	// Execute runs cmd with the runner's default timeout.
	Execute(ctx context.Context, cmd string) (Output, error)

	// ExecuteWithTimeout runs cmd, killing it if it exceeds timeout.
	ExecuteWithTimeout(ctx context.Context, cmd string, timeout time.Duration) (Output, error)

	// ExecuteStreaming runs cmd, delivering stdout/stderr chunks to onChunk
	// as they are read, concurrently, before the process exits.
	ExecuteStreaming(ctx context.Context, cmd string, timeout time.Duration, onChunk OnChunk) (Output, error)
}
