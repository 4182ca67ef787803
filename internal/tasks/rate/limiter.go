package rate

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limit is a sliding-window cap on jobs per identifier.
type Limit struct {
	Window  time.Duration
	MaxJobs int
}

type QueueConfig struct {
	Name  string
	Limit Limit
}

// QueueRateLimiter throttles per-identifier work on a queue using a
// redis sorted set as the sliding window.
type QueueRateLimiter struct {
	redis  *redis.Client
	config QueueConfig
}

func NewQueueRateLimiter(redis *redis.Client, config QueueConfig) *QueueRateLimiter {
	return &QueueRateLimiter{
		redis:  redis,
		config: config,
	}
}

// Allow records one attempt for the identifier and reports whether it
// fits inside the window.
func (qrl *QueueRateLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := fmt.Sprintf("queue_rate_limit:%s:%s", qrl.config.Name, identifier)

	now := time.Now().UnixNano()
	windowStart := now - qrl.config.Limit.Window.Nanoseconds()

	pipe := qrl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	// Unique member per attempt, so same-instant attempts all count.
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: uuid.NewString()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, qrl.config.Limit.Window*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis pipeline error: %w", err)
	}

	// The card is taken after the add, so it includes this attempt.
	return count.Val() <= int64(qrl.config.Limit.MaxJobs), nil
}
