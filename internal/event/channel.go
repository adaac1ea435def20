package event

import "context"

// BufferSize is the Event Channel's buffer depth (spec.md §4.5).
const BufferSize = 32

// Channel is the single-producer, single-consumer pipeline for one
// operation's events. The producer side lives inside the engine; the
// consumer side is returned to the caller.
type Channel struct {
	events chan PackageEvent
	ctx    context.Context
}

// NewChannel creates a Channel bound to ctx: if ctx is canceled while the
// producer is blocked on a send, the producer observes the cancellation
// and stops (spec.md §5, cancellation modes 1 and 2).
func NewChannel(ctx context.Context) *Channel {
	return &Channel{events: make(chan PackageEvent, BufferSize), ctx: ctx}
}

// Events returns the consumer side of the channel. Ranging over it yields
// events in production order and the range ends once the terminal event
// has been sent and the channel closed.
func (c *Channel) Events() <-chan PackageEvent { return c.events }

// Producer is the producer-side handle the engine uses to emit events;
// engine code gets one from NewProducer.
type Producer struct {
	ch  *Channel
	op  Info
	done bool
}

// NewProducer returns a Producer for ch that reports op through Info().
// Events are sent as given (callers build them with op); ch is closed
// only by Close, not by sending a terminal event.
func NewProducer(ch *Channel, op Info) *Producer {
	return &Producer{ch: ch, op: op}
}

// Send delivers ev to the consumer, suspending if the buffer is full. It
// reports false (without sending) if the operation's context was canceled
// first — the caller must treat this as a forced cancellation.
func (p *Producer) Send(ev PackageEvent) bool {
	if p.done {
		return false
	}
	select {
	case <-p.ch.ctx.Done():
		return false
	default:
	}
	select {
	case p.ch.events <- ev:
		return true
	case <-p.ch.ctx.Done():
		return false
	}
}

// Close marks the producer done and closes the underlying channel. It is
// idempotent; callers should invoke it exactly once after sending the
// terminal event (or after detecting a canceled context).
func (p *Producer) Close() {
	if p.done {
		return
	}
	p.done = true
	close(p.ch.events)
}

// Info returns the operation metadata this producer stamps events with.
func (p *Producer) Info() Info { return p.op }
