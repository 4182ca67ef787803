package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(t *testing.T, maxJobs int) *QueueRateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewQueueRateLimiter(client, QueueConfig{
		Name: "critical",
		Limit: Limit{
			Window:  time.Minute,
			MaxJobs: maxJobs,
		},
	})
}

func TestAllowCapsAtMaxJobs(t *testing.T) {
	// Attempts land within the same instant; each one must still count
	// and the cap must be exact, not MaxJobs+1.
	limiter := testLimiter(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "ayu@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}

	ok, err := limiter.Allow(ctx, "ayu@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllowIsPerIdentifier(t *testing.T) {
	limiter := testLimiter(t, 1)
	ctx := context.Background()

	ok, err := limiter.Allow(ctx, "ayu@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "ayu@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}
