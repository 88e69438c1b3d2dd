package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a process-wide sliding-window request counter. Keys are composite
// (key, scope) pairs, so the same instance serves both per-IP form throttling
// and the global hourly email budget. Correctness is per-instance only:
// multi-instance deployments must route consistently or back this with a
// shared store.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	calls   int

	// now is swappable in tests.
	now func() time.Time
}

// window holds one key's recorded timestamps together with the duration they
// are counted over. The duration must travel with the key: eviction decisions
// for an hourly-budget key cannot be made with a one-minute caller's window.
type window struct {
	stamps []time.Time
	span   time.Duration
}

// Result reports the outcome of a Check call. RetryAfter is only meaningful
// when Allowed is false: it is the time until one slot frees up, not until the
// whole window clears.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// sweepEvery bounds how often the opportunistic eviction scan runs.
const sweepEvery = 256

func NewLimiter() *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Check prunes timestamps older than the window, then admits and records the
// request iff fewer than maxRequests remain in the window. A denied request is
// not recorded.
func (l *Limiter) Check(key, scope string, maxRequests int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.maybeSweep(now)

	w := l.entry(key+":"+scope, window)
	w.stamps = prune(w.stamps, now.Add(-window))

	if len(w.stamps) >= maxRequests {
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: w.stamps[0].Add(window).Sub(now),
		}
	}

	w.stamps = append(w.stamps, now)

	return Result{
		Allowed:   true,
		Remaining: maxRequests - len(w.stamps),
	}
}

// Remaining is a non-recording peek at the free slots for a composite key.
func (l *Limiter) Remaining(key, scope string, maxRequests int, window time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key+":"+scope]
	if !ok {
		return maxRequests
	}

	kept := prune(w.stamps, l.now().Add(-window))
	if len(kept) >= maxRequests {
		return 0
	}
	return maxRequests - len(kept)
}

// entry returns the key's window, creating it on first use. The span is
// refreshed on every call so a reconfigured limit takes effect immediately.
func (l *Limiter) entry(k string, span time.Duration) *window {
	w, ok := l.windows[k]
	if !ok {
		w = &window{span: span}
		l.windows[k] = w
	}
	w.span = span
	return w
}

func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(stamps) && !stamps[idx].After(cutoff) {
		idx++
	}
	if idx == 0 {
		return stamps
	}
	return append([]time.Time(nil), stamps[idx:]...)
}

// maybeSweep evicts keys whose newest timestamp is older than twice their own
// window, so traffic on short-window keys can never expire a long-window key
// early. It runs inline every sweepEvery calls rather than on a background
// timer, so an idle limiter costs nothing. Caller holds the mutex.
func (l *Limiter) maybeSweep(now time.Time) {
	l.calls++
	if l.calls%sweepEvery != 0 {
		return
	}

	for k, w := range l.windows {
		if len(w.stamps) == 0 || w.stamps[len(w.stamps)-1].Before(now.Add(-2*w.span)) {
			delete(l.windows, k)
		}
	}
}
