package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag-be/internal/pkg/logger"
	"docrag-be/pkg/events"
	pktNats "docrag-be/pkg/nats"
)

type fakeSubscriber struct {
	handlers map[string]pktNats.EventHandler
	durables []string
	err      error
}

func (f *fakeSubscriber) Subscribe(_ context.Context, eventType, durable string, handler pktNats.EventHandler) error {
	if f.err != nil {
		return f.err
	}
	f.handlers[eventType] = handler
	f.durables = append(f.durables, durable)
	return nil
}

func TestStoreEventServiceInvalidatesOnStoreChanges(t *testing.T) {
	sub := &fakeSubscriber{handlers: map[string]pktNats.EventHandler{}}
	cache := newMemoryQuestionsCache()
	cache.items["fileSearchStores/abc"] = []string{"q"}

	svc := NewStoreEventService(sub, cache, "questions-cache-host1", logger.NewNopLogger())
	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, []string{"questions-cache-host1-STORE_DELETED", "questions-cache-host1-FILE_INDEXED"}, sub.durables)

	handler := sub.handlers[events.TypeStoreDeleted]
	require.NotNil(t, handler)
	require.NoError(t, handler(context.Background(), events.StoreDeleted("u1", "fileSearchStores/abc")))
	assert.Empty(t, cache.items)

	indexed := sub.handlers[events.TypeFileIndexed]
	require.NoError(t, indexed(context.Background(), events.FileIndexed("u1", "fileSearchStores/xyz", "a.pdf", time.Second)))
	assert.Equal(t, []string{"fileSearchStores/abc", "fileSearchStores/xyz"}, cache.invalidated)
}

func TestStoreEventServiceIgnoresEventsWithoutStore(t *testing.T) {
	sub := &fakeSubscriber{handlers: map[string]pktNats.EventHandler{}}
	cache := newMemoryQuestionsCache()
	svc := NewStoreEventService(sub, cache, "d", logger.NewNopLogger())
	require.NoError(t, svc.Start(context.Background()))

	err := sub.handlers[events.TypeStoreDeleted](context.Background(), events.BaseEvent{Type: events.TypeStoreDeleted})
	assert.NoError(t, err)
	assert.Empty(t, cache.invalidated)
}

func TestStoreEventServiceStartFails(t *testing.T) {
	sub := &fakeSubscriber{err: errBoom}
	svc := NewStoreEventService(sub, newMemoryQuestionsCache(), "d", logger.NewNopLogger())
	assert.ErrorIs(t, svc.Start(context.Background()), errBoom)
}
