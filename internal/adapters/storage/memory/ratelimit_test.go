package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memstore "github.com/quillnotes/reflect-api/internal/adapters/storage/memory"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	clock := newFakeClock()
	limiter := memstore.NewRateLimiter(3, clock.Now)

	for i := 0; i < 3; i++ {
		ok, _ := limiter.Admit("1.2.3.4")
		require.True(t, ok, "request %d within the limit must pass", i+1)
		clock.Advance(time.Second)
	}

	ok, retryAfter := limiter.Admit("1.2.3.4")
	assert.False(t, ok, "request over the limit must be denied")
	assert.Positive(t, retryAfter)
}

func TestRateLimiterRetryAfterCountsDownToOldestRequest(t *testing.T) {
	clock := newFakeClock()
	limiter := memstore.NewRateLimiter(1, clock.Now)

	ok, _ := limiter.Admit("c")
	require.True(t, ok)

	clock.Advance(20 * time.Second)
	ok, retryAfter := limiter.Admit("c")
	require.False(t, ok)
	// Oldest request leaves the 60s window in 40s.
	assert.Equal(t, 40, retryAfter)
}

func TestRateLimiterWindowSlides(t *testing.T) {
	clock := newFakeClock()
	limiter := memstore.NewRateLimiter(2, clock.Now)

	limiter.Admit("c")
	limiter.Admit("c")

	ok, _ := limiter.Admit("c")
	require.False(t, ok)

	clock.Advance(memstore.Window + time.Second)
	ok, _ = limiter.Admit("c")
	assert.True(t, ok, "requests outside the window no longer count")
}

func TestRateLimiterBucketsAreIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := memstore.NewRateLimiter(1, clock.Now)

	ok, _ := limiter.Admit("a")
	require.True(t, ok)

	ok, _ = limiter.Admit("b")
	assert.True(t, ok, "a full bucket must not spill into another client")
}

func TestRateLimiterPruneDeletesIdleClients(t *testing.T) {
	clock := newFakeClock()
	limiter := memstore.NewRateLimiter(5, clock.Now)

	limiter.Admit("idle")
	limiter.Admit("busy")
	require.Equal(t, 2, limiter.Clients())

	// Not yet idle beyond one window: state survives.
	clock.Advance(30 * time.Second)
	limiter.Prune()
	assert.Equal(t, 2, limiter.Clients())

	clock.Advance(memstore.Window)
	limiter.Admit("busy")
	limiter.Prune()
	assert.Equal(t, 1, limiter.Clients(), "idle client pruned, active kept")
}
