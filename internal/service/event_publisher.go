package service

import (
	"context"

	"docrag-be/internal/pkg/logger"
	"docrag-be/pkg/events"
)

type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// publishEvent never fails the caller; the bus is best effort.
func publishEvent(ctx context.Context, pub IEventPublisher, log logger.ILogger, event events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, event); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
