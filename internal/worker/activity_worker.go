package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/tourism-service/internal/events"
)

// StartActivityWorker subscribes the activity log to all domain events.
func StartActivityWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	log := func(ctx context.Context, event events.Event) error {
		logger.Info("activity",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Time("occurred_at", event.OccurredAt),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, t := range []events.EventType{
		events.EventUserRegistered,
		events.EventRoleChanged,
		events.EventBookingCreated,
		events.EventWishlistAdded,
		events.EventStoryPublished,
	} {
		dispatcher.Subscribe(t, log)
	}
}
