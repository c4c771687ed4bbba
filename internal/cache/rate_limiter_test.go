package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryLimiter(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	l := NewMemoryLimiter(3, time.Minute).(*memoryLimiter)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if ok, _ := l.Allow(ctx, "10.0.0.1"); !ok {
			t.Fatalf("request %d rejected", i)
		}
	}
	if ok, _ := l.Allow(ctx, "10.0.0.1"); ok {
		t.Fatal("4th request allowed")
	}
	if ok, _ := l.Allow(ctx, "10.0.0.2"); !ok {
		t.Fatal("other client rejected")
	}

	now = now.Add(time.Minute)
	if ok, _ := l.Allow(ctx, "10.0.0.1"); !ok {
		t.Fatal("request in next window rejected")
	}
}

func TestRedisLimiter_Unavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewRedisLimiter(client, "test", 1, time.Minute)
	if _, err := l.Allow(context.Background(), "10.0.0.1"); err == nil {
		t.Fatal("Allow() error = nil with unreachable redis")
	}
}
