package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventBookingCreated, func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	d.Subscribe(EventStoryPublished, func(ctx context.Context, event Event) error {
		t.Fatalf("handler for another type must not fire")
		return nil
	})

	event := Event{ID: "e1", Type: EventBookingCreated, OccurredAt: time.Now()}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(received) != 1 || received[0].ID != "e1" {
		t.Fatalf("expected one delivery of e1, got %v", received)
	}
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	var second bool
	d.Subscribe(EventUserRegistered, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventUserRegistered, func(ctx context.Context, event Event) error {
		second = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventUserRegistered}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !second {
		t.Fatalf("expected the second handler to run despite the first failing")
	}
}
