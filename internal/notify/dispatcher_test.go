package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (s *recordingSink) Publish(_ context.Context, event Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if event.Kind == "panic" {
		panic("sink exploded")
	}
	return s.err
}

func (s *recordingSink) kinds() []Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Kind, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Kind)
	}
	return out
}

func TestDispatcherDeliversInOrderAndDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, 8, zap.NewNop())

	d.Notify(Event{Kind: KindWalletDeposit})
	d.Notify(Event{Kind: KindBookingCreated})
	d.Notify(Event{Kind: KindBookingCancelled})
	d.Close()

	assert.Equal(t, []Kind{KindWalletDeposit, KindBookingCreated, KindBookingCancelled}, sink.kinds())
}

func TestDispatcherSwallowsSinkFailures(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	d := NewDispatcher(sink, 4, zap.NewNop())

	d.Notify(Event{Kind: "panic"})
	d.Notify(Event{Kind: KindWalletDeposit})
	d.Close()

	assert.Equal(t, []Kind{"panic", KindWalletDeposit}, sink.kinds())
}

func TestDispatcherDropsWhenBufferIsFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(sink, 1, zap.NewNop())

	// The worker may hold one event while blocked and the buffer holds one more;
	// the rest must be dropped without blocking the caller.
	for i := 0; i < 10; i++ {
		d.Notify(Event{Kind: KindWalletDeposit})
	}
	close(sink.block)
	d.Close()

	delivered := len(sink.kinds())
	assert.GreaterOrEqual(t, delivered, 1)
	assert.LessOrEqual(t, delivered, 2)
}

func TestDispatcherIgnoresEventsAfterClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, 2, zap.NewNop())
	d.Close()
	d.Close()

	d.Notify(Event{Kind: KindWalletDeposit})
	assert.Empty(t, sink.kinds())
}

func TestEventSubject(t *testing.T) {
	assert.Equal(t, "Booking Confirmation", Event{Kind: KindBookingCreated}.Subject())
	assert.Equal(t, "Deposit Successful", Event{Kind: KindWalletDeposit}.Subject())
}
