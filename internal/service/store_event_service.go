package service

import (
	"context"

	"docrag-be/internal/pkg/logger"
	"docrag-be/pkg/events"
	pktNats "docrag-be/pkg/nats"
)

type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

// StoreEventService keeps this instance's example-questions cache in step with
// store changes made through any instance.
type StoreEventService struct {
	subscriber EventSubscriber
	questions  QuestionsCache
	durable    string
	logger     logger.ILogger
}

func NewStoreEventService(sub EventSubscriber, questions QuestionsCache, durable string, log logger.ILogger) *StoreEventService {
	return &StoreEventService{
		subscriber: sub,
		questions:  questions,
		durable:    durable,
		logger:     log,
	}
}

func (s *StoreEventService) Start(ctx context.Context) error {
	for _, eventType := range []string{events.TypeStoreDeleted, events.TypeFileIndexed} {
		if err := s.subscriber.Subscribe(ctx, eventType, s.durable+"-"+eventType, s.handleEvent); err != nil {
			s.logger.Error("STORE_EVENTS", "Failed to subscribe", map[string]interface{}{
				"type":  eventType,
				"error": err.Error(),
			})
			return err
		}
	}
	s.logger.Info("STORE_EVENTS", "Store event listener started", nil)
	return nil
}

func (s *StoreEventService) handleEvent(ctx context.Context, event events.Event) error {
	storeName := events.StoreNameOf(event)
	if storeName == "" {
		s.logger.Warn("STORE_EVENTS", "Event without store name", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	if err := s.questions.Invalidate(ctx, storeName); err != nil {
		return err
	}
	s.logger.Debug("STORE_EVENTS", "Example questions invalidated", map[string]interface{}{
		"type":  event.EventType(),
		"store": storeName,
	})
	return nil
}
