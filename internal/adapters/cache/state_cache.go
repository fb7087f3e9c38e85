package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/logger"
)

var _ domain.StateCache = (*RedisStateCache)(nil)

// RedisStateCache keeps computed day states in one hash per user, one field
// per date, so a mutation drops every cached day with a single DEL.
type RedisStateCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStateCache(rdb *redis.Client, ttl time.Duration) *RedisStateCache {
	return &RedisStateCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func stateKey(userID string) string {
	return fmt.Sprintf("state:%s", userID)
}

func (c *RedisStateCache) Get(ctx context.Context, userID string, day time.Time) (*domain.UserState, error) {
	key := stateKey(userID)
	field := calendar.Format(day)

	val, err := c.rdb.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis read: %w", err)
	}

	var state domain.UserState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		logger.Warn("corrupted state cache entry, cleaning up", "user_id", userID, "date", field)
		c.rdb.HDel(ctx, key, field)
		return nil, domain.ErrCacheMiss
	}
	return &state, nil
}

func (c *RedisStateCache) Set(ctx context.Context, userID string, state *domain.UserState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	key := stateKey(userID)
	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, key, state.Date, data)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis write: %w", err)
	}
	return nil
}

func (c *RedisStateCache) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, stateKey(id))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}
