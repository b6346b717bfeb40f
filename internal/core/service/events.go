package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/port"
)

const (
	defaultForwarderQueueSize = 256
	produceTimeout            = 5 * time.Second
)

var _ port.CartEventsForwarder = (*EventForwarder)(nil)

// An EventForwarder hands cart events over to a producer on a background
// goroutine, so cart mutations never wait for the broker.
type EventForwarder struct {
	producer port.CartEventsProducer
	queue    chan domain.CartEvent
	done     chan struct{}

	mu      sync.RWMutex
	started bool
	closed  bool
}

func NewEventForwarder(
	producer port.CartEventsProducer, queueSize int,
) *EventForwarder {
	if queueSize <= 0 {
		queueSize = defaultForwarderQueueSize
	}
	return &EventForwarder{
		producer: producer,
		queue:    make(chan domain.CartEvent, queueSize),
		done:     make(chan struct{}),
	}
}

// Observer returns the forwarder as a cart observer.
func (f *EventForwarder) Observer() CartObserver {
	return f.Forward
}

// Forward enqueues evt. The event is dropped when the queue is full or
// the forwarder is closed.
func (f *EventForwarder) Forward(evt domain.CartEvent) {
	const op = "EventForwarder.Forward"

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}

	select {
	case f.queue <- evt:
	default:
		slog.Warn("queue is full, event dropped",
			"op", op, "cartID", evt.CartID, "kind", evt.Kind)
	}
}

// Run starts forwarding on a separate goroutine.
func (f *EventForwarder) Run(ctx context.Context, wg *sync.WaitGroup) {
	const op = "EventForwarder.Run"
	defer wg.Done()

	f.mu.Lock()
	if f.started || f.closed {
		f.mu.Unlock()
		return
	}
	f.started = true
	f.mu.Unlock()

	go f.loop(context.WithoutCancel(ctx))
	slog.Info("running", "op", op)
}

func (f *EventForwarder) loop(ctx context.Context) {
	const op = "EventForwarder.loop"
	log := slog.With("op", op)

	defer close(f.done)

	for evt := range f.queue {
		produceCtx, cancel := context.WithTimeout(ctx, produceTimeout)
		err := f.producer.ProduceCartEvent(produceCtx, evt)
		cancel()
		if err != nil {
			log.Error("failed to produce cart event",
				"cartID", evt.CartID, "kind", evt.Kind, "err", err)
			continue
		}
		log.Debug("cart event produced", "cartID", evt.CartID, "kind", evt.Kind)
	}
}

// Close stops accepting events and waits until queued events are
// produced or ctx is done.
func (f *EventForwarder) Close(ctx context.Context) {
	const op = "EventForwarder.Close"
	log := slog.With("op", op)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.queue)
	started := f.started
	f.mu.Unlock()

	if !started {
		return
	}

	log.Info("draining cart events...")
	select {
	case <-f.done:
		log.Info("forwarder is closed")
	case <-ctx.Done():
		log.Warn("forwarder closed before queue was drained", "left", len(f.queue))
	}
}
