package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docrag-be/pkg/events"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.STORE_DELETED", Subject(events.TypeStoreDeleted))
}

func TestCloseWithoutConnection(t *testing.T) {
	assert.NotPanics(t, func() {
		(&Publisher{}).Close()
		(&Subscriber{}).Close()
	})
}
