package content

import (
	"context"
	"encoding/json"
	"time"

	"launchpad-api/internal/cache"
)

// ListCache caches rendered public list payloads per collection.
type ListCache struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewListCache(c cache.Cache, ttl time.Duration) *ListCache {
	if c == nil {
		c = cache.NewNoop()
	}
	return &ListCache{cache: c, ttl: ttl}
}

func (l *ListCache) Load(ctx context.Context, key string) ([]byte, bool) {
	if l == nil || l.ttl <= 0 {
		return nil, false
	}
	payload, ok, err := l.cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	return payload, true
}

// Store marshals v, caches it and returns the encoded bytes.
func (l *ListCache) Store(ctx context.Context, key string, v interface{}) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if l != nil && l.ttl > 0 {
		_ = l.cache.Set(ctx, key, payload, l.ttl)
	}
	return payload, nil
}

func (l *ListCache) Invalidate(ctx context.Context, keys ...string) {
	if l == nil {
		return
	}
	for _, key := range keys {
		_ = l.cache.Delete(ctx, key)
	}
}
