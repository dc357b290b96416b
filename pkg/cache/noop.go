package cache

import (
	"context"
	"time"
)

// noopCache là fallback khi Redis không khả dụng.
// Mọi Get là cache miss, mọi Set/Delete thành công im lặng -
// app chạy chậm hơn nhưng không chết theo Redis.
type noopCache struct{}

// NewNoopCache trả về cache không làm gì cả
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (noopCache) Delete(ctx context.Context, keys ...string) error         { return nil }
func (noopCache) DeletePattern(ctx context.Context, pattern string) error  { return nil }
func (noopCache) Ping(ctx context.Context) error                           { return nil }
func (noopCache) Increment(ctx context.Context, key string) (int64, error) { return 0, nil }
func (noopCache) Exists(ctx context.Context, key string) (bool, error)     { return false, nil }
func (noopCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}
func (noopCache) TTL(ctx context.Context, key string) (time.Duration, error) { return 0, nil }
