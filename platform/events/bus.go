package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"designhub_backend/platform/logger"
)

// publishGrace bounds how long asynchronous handlers keep running once
// the publishing context has ended. A normal side-effect chain is a
// handful of quick writes and finishes well inside the window; an
// aborted caller stops a still-running chain at its next context
// check instead of letting it run on.
const publishGrace = 10 * time.Second

// InMemoryBus is a process-local Bus implementation. Handlers for the
// same event run sequentially in registration order; Publish detaches
// from the caller's goroutine, PublishSync does not.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
	wg       sync.WaitGroup
	grace    time.Duration
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
		grace:    publishGrace,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all handlers on a separate goroutine.
// Handler errors are logged, never returned: a failed subscriber must
// not affect the publisher's request.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	handlers := b.handlersFor(event.EventName())
	if len(handlers) == 0 {
		return
	}

	// Detach from the request context so in-flight side effects survive
	// the HTTP response, but keep request-scoped log values. The
	// detached context is still cancelled a grace window after the
	// caller's context ends, so handlers that check their context
	// between writes stop when the caller aborts.
	detached, cancel := context.WithCancel(context.WithoutCancel(ctx))

	done := make(chan struct{})
	go func() {
		defer cancel()
		select {
		case <-done:
		case <-ctx.Done():
			t := time.NewTimer(b.grace)
			defer t.Stop()
			select {
			case <-done:
			case <-t.C:
			}
		}
	}()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(done)
		for _, h := range handlers {
			b.dispatch(detached, event, h)
		}
	}()
}

// PublishSync dispatches the event and waits for all handlers,
// returning the joined handler errors.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	var errs []error
	for _, h := range b.handlersFor(event.EventName()) {
		if err := b.dispatch(ctx, event, h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Wait blocks until all asynchronously published events have been
// handled. Used during graceful shutdown.
func (b *InMemoryBus) Wait() {
	b.wg.Wait()
}

func (b *InMemoryBus) handlersFor(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	handlers := make([]Handler, len(b.handlers[eventName]))
	copy(handlers, b.handlers[eventName])
	return handlers
}

func (b *InMemoryBus) dispatch(ctx context.Context, event Event, h Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panic: %v", r)
			if b.log != nil {
				b.log.Error("event handler panicked", "event", event.EventName(), "panic", r)
			}
		}
	}()

	if err := h.Handle(ctx, event); err != nil {
		if b.log != nil {
			b.log.Error("event handler failed", "event", event.EventName(), "error", err)
		}
		return err
	}
	return nil
}
