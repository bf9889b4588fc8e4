package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "docrag:example-questions:"

// QuestionsCache stores generated example questions per store in Redis.
type QuestionsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewQuestionsCache(rdb *redis.Client, ttl time.Duration) *QuestionsCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &QuestionsCache{rdb: rdb, ttl: ttl}
}

func Key(storeName string) string {
	return keyPrefix + storeName
}

// Get reports found=false on a miss; err is only set for Redis or decode failures.
func (c *QuestionsCache) Get(ctx context.Context, storeName string) ([]string, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(storeName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read example questions of %s: %w", storeName, err)
	}

	var questions []string
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, false, fmt.Errorf("decode example questions of %s: %w", storeName, err)
	}
	return questions, true, nil
}

func (c *QuestionsCache) Set(ctx context.Context, storeName string, questions []string) error {
	raw, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(storeName), raw, c.ttl).Err()
}

func (c *QuestionsCache) Invalidate(ctx context.Context, storeName string) error {
	return c.rdb.Del(ctx, Key(storeName)).Err()
}
