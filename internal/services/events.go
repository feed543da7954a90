package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/you/quezi/domain"
)

// publish hands the event to the broker. A failed publish never fails the
// operation that produced it.
func publish(ctx context.Context, publisher domain.EventPublisher, logger *zap.Logger, event *domain.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("event publish failed",
			zap.String("type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}
}
