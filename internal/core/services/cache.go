package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/logger"
)

// NoopStateCache always misses. It is used when Redis is disabled.
type NoopStateCache struct{}

func (NoopStateCache) Get(ctx context.Context, userID string, day time.Time) (*domain.UserState, error) {
	return nil, domain.ErrCacheMiss
}

func (NoopStateCache) Set(ctx context.Context, userID string, state *domain.UserState) error {
	return nil
}

func (NoopStateCache) Invalidate(ctx context.Context, userIDs ...string) error {
	return nil
}

// invalidate runs after commit. A failure leaves a stale snapshot until its TTL expires.
func invalidate(ctx context.Context, cache domain.StateCache, userIDs ...string) {
	if err := cache.Invalidate(ctx, userIDs...); err != nil {
		logger.Warn("state cache invalidation failed", "users", userIDs, "err", err)
	}
}

func cacheOrNoop(cache domain.StateCache) domain.StateCache {
	if cache == nil {
		return NoopStateCache{}
	}
	return cache
}
