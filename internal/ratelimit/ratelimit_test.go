package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestLimiter(limit int, window time.Duration) (*Limiter, *time.Time) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewLimiter(NewMemoryStore(), limit, window)
	limiter.now = func() time.Time { return now }
	return limiter, &now
}

func TestLimiterAllowsExactlyLimitPerWindow(t *testing.T) {
	limiter, _ := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		result := limiter.Check("1.2.3.4")
		require.True(t, result.Allowed, "request %d should be allowed", i+1)
		require.Equal(t, 9-i, result.Remaining)
	}

	result := limiter.Check("1.2.3.4")
	require.False(t, result.Allowed)
	require.Equal(t, 0, result.Remaining)
}

func TestLimiterDenialDoesNotConsumeBudget(t *testing.T) {
	limiter, now := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Check("ip").Allowed)
	}
	deniedAt := limiter.Check("ip").ResetTime
	for i := 0; i < 5; i++ {
		result := limiter.Check("ip")
		require.False(t, result.Allowed)
		require.Equal(t, deniedAt, result.ResetTime, "denials must not move the reset time")
	}

	// One tick past the window: full budget again, not limit minus the
	// denied attempts.
	*now = now.Add(time.Minute + time.Second)
	result := limiter.Check("ip")
	require.True(t, result.Allowed)
	require.Equal(t, 2, result.Remaining)
}

func TestLimiterIdentifiersAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(2, time.Minute)

	require.True(t, limiter.Check("a").Allowed)
	require.True(t, limiter.Check("a").Allowed)
	require.False(t, limiter.Check("a").Allowed)

	result := limiter.Check("b")
	require.True(t, result.Allowed)
	require.Equal(t, 1, result.Remaining)
}

func TestLimiterResetTimeIsWindowStartPlusWindow(t *testing.T) {
	limiter, now := newTestLimiter(5, time.Minute)
	start := *now

	result := limiter.Check("ip")
	require.Equal(t, start.Add(time.Minute), result.ResetTime)

	// Later requests in the same window keep the original reset time.
	*now = now.Add(30 * time.Second)
	result = limiter.Check("ip")
	require.Equal(t, start.Add(time.Minute), result.ResetTime)

	// A fresh window anchors at the time of the first request in it.
	*now = start.Add(2 * time.Minute)
	result = limiter.Check("ip")
	require.Equal(t, start.Add(3*time.Minute), result.ResetTime)
}

func TestSweepExpiredDropsOnlyStaleEntries(t *testing.T) {
	store := NewMemoryStore()
	limiter := NewLimiter(store, 5, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Check("old")
	now = now.Add(2 * time.Minute)
	limiter.Check("fresh")

	require.Equal(t, 2, store.Len())
	require.Equal(t, 1, limiter.SweepExpired())
	require.Equal(t, 1, store.Len())

	_, ok := store.Get("fresh")
	require.True(t, ok)
	_, ok = store.Get("old")
	require.False(t, ok)
}

func TestSweepDoesNotAffectDecisions(t *testing.T) {
	limiter, now := newTestLimiter(1, time.Minute)

	require.True(t, limiter.Check("ip").Allowed)
	require.False(t, limiter.Check("ip").Allowed)

	// With or without a sweep, a stale entry behaves as a fresh window.
	*now = now.Add(90 * time.Second)
	limiter.SweepExpired()
	require.True(t, limiter.Check("ip").Allowed)
}
