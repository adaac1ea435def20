package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/turboladen/selfie/internal/event"
)

// Event stream well-formedness (spec.md §8): exactly one Started, zero or
// more non-terminal events, and exactly one terminal event, in that order.
func TestChannel_WellFormedStream(t *testing.T) {
	ch := event.NewChannel(context.Background())
	op := event.NewInfo(event.OpCheck, "jq", "test")
	p := event.NewProducer(ch, op)

	go func() {
		defer p.Close()
		p.Send(event.NewStarted(op))
		p.Send(event.NewProgress(op, 1, 3, "step one"))
		p.Send(event.NewProgress(op, 2, 3, "step two"))
		p.Send(event.NewCompletedSuccess(op, "installed"))
	}()

	var events []event.PackageEvent
	for ev := range ch.Events() {
		events = append(events, ev)
	}

	if len(events) < 2 {
		t.Fatalf("got %d events, want at least Started + terminal", len(events))
	}
	if _, ok := events[0].(event.Started); !ok {
		t.Errorf("events[0] = %T, want Started", events[0])
	}
	last := events[len(events)-1]
	if _, ok := last.(event.Completed); !ok {
		t.Errorf("last event = %T, want Completed", last)
	}
	for _, ev := range events[1 : len(events)-1] {
		switch ev.(type) {
		case event.Started, event.Completed, event.Canceled:
			t.Errorf("unexpected terminal/duplicate-Started event in the middle: %T", ev)
		}
	}
}

// Cancellation mode 1 (spec.md §5): the consumer drops the sequence, and
// the producer must detect the closed context and stop without blocking
// forever or panicking on a send to a closed channel.
func TestChannel_ProducerStopsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := event.NewChannel(ctx)
	op := event.NewInfo(event.OpInstall, "jq", "test")
	p := event.NewProducer(ch, op)

	sendResult := make(chan bool, 1)
	started := make(chan struct{})
	go func() {
		defer p.Close()
		p.Send(event.NewStarted(op))
		close(started)
		// Fill the buffer past capacity so the next Send must suspend.
		for i := 0; i < event.BufferSize+1; i++ {
			if !p.Send(event.NewProgress(op, 1, 1, "filling")) {
				sendResult <- false
				return
			}
		}
		sendResult <- true
	}()

	<-started
	cancel()

	select {
	case ok := <-sendResult:
		if ok {
			t.Error("expected a Send to report false after context cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not observe the canceled context in time")
	}
}
