package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter (фиксированное окно): не больше limit запросов на ключ за window
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ===== Redis =====

type redisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter: счётчики общие для всех инстансов сервера
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) RateLimiter {
	return &redisLimiter{client: client, prefix: prefix, limit: limit, window: window, now: time.Now}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().UnixNano() / int64(l.window)
	k := fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	return incr.Val() <= int64(l.limit), nil
}

// ===== in-memory (один инстанс / без Redis) =====

type windowCount struct {
	bucket int64
	count  int
}

type memoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]windowCount
	now     func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) RateLimiter {
	return &memoryLimiter{limit: limit, window: window, buckets: map[string]windowCount{}, now: time.Now}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	bucket := l.now().UnixNano() / int64(l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	wc := l.buckets[key]
	if wc.bucket != bucket {
		// новое окно: заодно чистим устаревшие ключи
		if len(l.buckets) > 10000 {
			for k, v := range l.buckets {
				if v.bucket != bucket {
					delete(l.buckets, k)
				}
			}
		}
		wc = windowCount{bucket: bucket}
	}
	wc.count++
	l.buckets[key] = wc
	return wc.count <= l.limit, nil
}
