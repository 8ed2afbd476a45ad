package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultPublishTimeout = 5 * time.Second

// Dispatcher hands events to a Sink from a single background worker.
// Notify never blocks: when the buffer is full the event is dropped and logged.
type Dispatcher struct {
	sink    Sink
	events  chan Event
	log     *zap.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, buffer int, log *zap.Logger) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	d := &Dispatcher{
		sink:    sink,
		events:  make(chan Event, buffer),
		log:     log.With(zap.String("component", "notify")),
		timeout: defaultPublishTimeout,
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Notify(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Notification dropped after shutdown", zap.String("kind", string(event.Kind)))
		return
	}

	select {
	case d.events <- event:
	default:
		d.log.Warn("Notification buffer full, dropping event",
			zap.String("kind", string(event.Kind)),
			zap.String("user_id", event.UserID),
		)
	}
}

// Close stops accepting events and waits until the queued ones are delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.events {
		if err := d.deliver(event); err != nil {
			d.log.Warn("Notification delivery failed",
				zap.String("kind", string(event.Kind)),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) deliver(event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return d.sink.Publish(ctx, event)
}
