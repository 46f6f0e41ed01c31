package usecase

import (
	"context"
	"time"
)

// RankCache is the slice of the cache the ranking path needs. Implementations
// may be unavailable; every method then degrades to a no-op.
type RankCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
