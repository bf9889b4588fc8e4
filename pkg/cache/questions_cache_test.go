package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "docrag:example-questions:fileSearchStores/abc", Key("fileSearchStores/abc"))
}

func TestUnreachableRedisReportsError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewQuestionsCache(rdb, 0)
	assert.Equal(t, time.Hour, c.ttl)

	_, found, err := c.Get(context.Background(), "fileSearchStores/abc")
	assert.False(t, found)
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), "fileSearchStores/abc", []string{"q"}))
}
