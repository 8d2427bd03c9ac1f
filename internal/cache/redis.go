package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const likeCountTTL = 5 * time.Minute

// LikeCountCache caches per-listing like counts in Redis. It is a read-side
// optimization only: the likes collection stays the source of truth, and a
// cold or unavailable cache just means the count is read from the store.
type LikeCountCache struct {
	client *redis.Client
}

// NewLikeCountCache connects to Redis and returns the cache
func NewLikeCountCache(addr, password string, db int) (*LikeCountCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &LikeCountCache{client: client}, nil
}

func likeCountKey(listingID string) string {
	return fmt.Sprintf("likes:count:%s", listingID)
}

// GetCount returns the cached count for a listing; ok is false on a miss.
// A nil cache always misses.
func (c *LikeCountCache) GetCount(ctx context.Context, listingID string) (int64, bool) {
	if c == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, likeCountKey(listingID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

// SetCount stores the count for a listing with a short TTL
func (c *LikeCountCache) SetCount(ctx context.Context, listingID string, count int64) {
	if c == nil {
		return
	}
	c.client.Set(ctx, likeCountKey(listingID), count, likeCountTTL)
}

// InvalidateCount drops the cached count after a like/unlike
func (c *LikeCountCache) InvalidateCount(ctx context.Context, listingID string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, likeCountKey(listingID))
}

// Close closes the underlying Redis connection
func (c *LikeCountCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
