package ratelimit

import (
	"sync"
	"time"
)

// Entry is the per-identifier counter state for one fixed window.
type Entry struct {
	Count       int
	WindowStart time.Time
}

// Store holds rate-limit entries keyed by identifier. The in-memory
// implementation covers single-process deployments; a multi-process
// deployment swaps in a shared store without touching Limiter.
type Store interface {
	Get(identifier string) (Entry, bool)
	Set(identifier string, entry Entry)
	// Sweep drops entries whose window started before the cutoff and
	// returns how many were removed. Memory bounding only; Check already
	// treats stale entries as fresh.
	Sweep(cutoff time.Time) int
}

type Result struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// Limiter is a fixed-window counter. A burst straddling a window boundary
// can admit up to twice the limit in a short span; that imprecision is a
// known tradeoff of the fixed-window strategy and is kept as-is.
type Limiter struct {
	mu     sync.Mutex
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Check records one request for the identifier and reports whether it is
// allowed. A missing or stale entry starts a fresh window. Denied requests
// do not increment the counter, so repeated denials within a window leave
// the count unchanged.
//
// The limiter mutex serializes the get-check-set cycle between handler
// goroutines. A distributed Store still needs its own atomic update
// semantics; this lock only covers a single process.
func (l *Limiter) Check(identifier string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()

	entry, ok := l.store.Get(identifier)
	if !ok || entry.WindowStart.Before(now.Add(-l.window)) {
		entry = Entry{Count: 0, WindowStart: now}
	}

	if entry.Count >= l.limit {
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetTime: entry.WindowStart.Add(l.window),
		}
	}

	entry.Count++
	l.store.Set(identifier, entry)

	return Result{
		Allowed:   true,
		Remaining: l.limit - entry.Count,
		ResetTime: entry.WindowStart.Add(l.window),
	}
}

// SweepExpired removes entries whose window has fully elapsed.
func (l *Limiter) SweepExpired() int {
	return l.store.Sweep(l.now().Add(-l.window))
}

func (l *Limiter) Limit() int {
	return l.limit
}

func (l *Limiter) Window() time.Duration {
	return l.window
}
