package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestInMemoryBus_PublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var order []int
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		order = append(order, 1)
		return nil
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		order = append(order, 2)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "thing.happened"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected handlers in registration order, got %v", order)
	}
}

func TestInMemoryBus_PublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)

	failure := errors.New("boom")
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		return failure
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "thing.happened"})
	if !errors.Is(err, failure) {
		t.Fatalf("expected joined error to include handler failure, got %v", err)
	}
}

func TestInMemoryBus_PublishRecoversPanics(t *testing.T) {
	bus := NewInMemoryBus(nil)

	done := make(chan struct{})
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		defer close(done)
		panic("handler bug")
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "thing.happened"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
	bus.Wait()
}

func TestInMemoryBus_PublishCancelsHandlersAfterCallerAbort(t *testing.T) {
	bus := NewInMemoryBus(nil)
	bus.grace = 10 * time.Millisecond

	got := make(chan error, 1)
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		select {
		case <-ctx.Done():
			got <- ctx.Err()
		case <-time.After(5 * time.Second):
			got <- nil
		}
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{NewBaseEvent(), "thing.happened"})

	select {
	case err := <-got:
		if err == nil {
			t.Fatal("handler context was never cancelled after the caller aborted")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never observed the abort")
	}
	bus.Wait()
}

func TestInMemoryBus_PublishGraceOutlivesCaller(t *testing.T) {
	bus := NewInMemoryBus(nil)
	bus.grace = time.Second

	got := make(chan error, 1)
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		got <- ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{NewBaseEvent(), "thing.happened"})

	if err := <-got; err != nil {
		t.Fatalf("handler context cancelled inside the grace window: %v", err)
	}
	bus.Wait()
}

func TestInMemoryBus_PublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(nil)
	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "nobody.cares"})
	bus.Wait()
}
