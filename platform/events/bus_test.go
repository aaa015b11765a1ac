package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"sanctuary_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.event" }

func TestPublish_DispatchesToAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var handled atomic.Int64
	done := make(chan struct{}, 2)
	for i := 0; i < 2; i++ {
		bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
			handled.Add(1)
			done <- struct{}{}
			return nil
		}))
	}

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for handlers")
		}
	}
	if handled.Load() != 2 {
		t.Fatalf("expected 2 handler runs, got %d", handled.Load())
	}
}

func TestPublish_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	done := make(chan struct{}, 1)
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		panic("handler blew up")
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		done <- struct{}{}
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second handler never ran")
	}
}

func TestPublishSync_JoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	first := errors.New("first failure")
	second := errors.New("second failure")
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		return first
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		return second
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
}

func TestPublishSync_NoHandlersIsFine(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
