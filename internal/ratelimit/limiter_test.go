package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestLimiter() (*Limiter, *fakeClock) {
	clock := &fakeClock{current: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := NewLimiter()
	l.now = clock.Now
	return l, clock
}

func TestCheckAllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < 3; i++ {
		res := l.Check("1.2.3.4", "contact_form", 3, time.Minute)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res := l.Check("1.2.3.4", "contact_form", 3, time.Minute)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestDeniedRequestIsNotRecorded(t *testing.T) {
	l, clock := newTestLimiter()

	for i := 0; i < 3; i++ {
		l.Check("k", "s", 3, time.Minute)
	}

	// Hammering while denied must not extend the window.
	for i := 0; i < 10; i++ {
		res := l.Check("k", "s", 3, time.Minute)
		assert.False(t, res.Allowed)
	}

	clock.Advance(61 * time.Second)
	res := l.Check("k", "s", 3, time.Minute)
	assert.True(t, res.Allowed)
}

func TestRetryAfterIsUntilOldestSlotFrees(t *testing.T) {
	l, clock := newTestLimiter()

	l.Check("k", "s", 2, time.Minute)
	clock.Advance(40 * time.Second)
	l.Check("k", "s", 2, time.Minute)

	res := l.Check("k", "s", 2, time.Minute)
	assert.False(t, res.Allowed)
	// The oldest stamp is 40s old, so one slot frees in 20s, not in a minute.
	assert.Equal(t, 20*time.Second, res.RetryAfter)
}

func TestWindowSlides(t *testing.T) {
	l, clock := newTestLimiter()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Check("k", "s", 3, time.Minute).Allowed)
		clock.Advance(10 * time.Second)
	}
	assert.False(t, l.Check("k", "s", 3, time.Minute).Allowed)

	// 31s later the oldest timestamp (61s old) has aged out; exactly one slot
	// is free again.
	clock.Advance(31 * time.Second)
	assert.True(t, l.Check("k", "s", 3, time.Minute).Allowed)
	assert.False(t, l.Check("k", "s", 3, time.Minute).Allowed)
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < 3; i++ {
		l.Check("1.2.3.4", "contact_form", 3, time.Minute)
	}
	assert.False(t, l.Check("1.2.3.4", "contact_form", 3, time.Minute).Allowed)

	assert.True(t, l.Check("5.6.7.8", "contact_form", 3, time.Minute).Allowed)
	assert.True(t, l.Check("1.2.3.4", "reset_password", 3, time.Minute).Allowed)
}

func TestRemainingDoesNotRecord(t *testing.T) {
	l, _ := newTestLimiter()

	l.Check("k", "s", 5, time.Minute)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 4, l.Remaining("k", "s", 5, time.Minute))
	}
}

func TestSweepKeepsLongWindowKeysAlive(t *testing.T) {
	l, clock := newTestLimiter()

	// Exhaust the hourly budget, then let short-window traffic trigger the
	// sweep a few minutes later. The hourly key's stamps are minutes old but
	// well inside its own window; evicting it would hand the budget back.
	assert.True(t, l.Check("global", "campaign_dispatch", 1, time.Hour).Allowed)
	clock.Advance(5 * time.Minute)

	for i := 0; i < sweepEvery+1; i++ {
		l.Check("1.2.3.4", "contact_form", sweepEvery*2, time.Minute)
	}

	assert.Equal(t, 0, l.Remaining("global", "campaign_dispatch", 1, time.Hour))
	assert.False(t, l.Check("global", "campaign_dispatch", 1, time.Hour).Allowed)

	// After its own window has passed the key is reclaimable again.
	clock.Advance(56 * time.Minute)
	assert.True(t, l.Check("global", "campaign_dispatch", 1, time.Hour).Allowed)
}

func TestSweepEvictsIdleKeys(t *testing.T) {
	l, clock := newTestLimiter()

	l.Check("stale", "s", 5, time.Minute)
	clock.Advance(3 * time.Minute)

	// Drive enough traffic on another key to trigger the inline sweep.
	for i := 0; i < sweepEvery+1; i++ {
		l.Check("busy", "s", sweepEvery*2, time.Minute)
	}

	l.mu.Lock()
	_, exists := l.windows["stale:s"]
	l.mu.Unlock()
	assert.False(t, exists)
}
