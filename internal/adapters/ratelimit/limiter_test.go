package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(d)
}

func newTestLimiter(limit int, window time.Duration) (*Limiter, *fakeClock) {
	clock := newFakeClock()
	l := New(limit, window)
	l.now = clock.now
	l.lastSweep = clock.now()
	return l, clock
}

func TestAllowExactlyLimitWithinWindow(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("1.2.3.4"), "admit %d should pass", i+1)
		clock.advance(time.Second)
	}
	assert.False(t, l.Allow("1.2.3.4"), "6th call inside the window must be rejected")
}

func TestRejectedCallsDoNotCount(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("k"))
	}
	// Hammering the limiter while throttled must not extend the window.
	for i := 0; i < 20; i++ {
		assert.False(t, l.Allow("k"))
	}
}

func TestAdmitsResumeAfterWindowElapses(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("k"))
	}
	require.False(t, l.Allow("k"))

	clock.advance(time.Minute + time.Second)
	assert.True(t, l.Allow("k"), "admits resume once the window fully elapses")
}

func TestRollingWindowBoundary(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	// 3 admits, then 2 more half a window later.
	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("k"))
	}
	clock.advance(30 * time.Second)
	for i := 0; i < 2; i++ {
		require.True(t, l.Allow("k"))
	}
	require.False(t, l.Allow("k"))

	// 31s later the first 3 have aged out but the later 2 have not.
	clock.advance(31 * time.Second)
	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("k"), "aged-out admits free capacity")
	}
	assert.False(t, l.Allow("k"))
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("a"))
	}
	require.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "a throttled key must not affect other keys")
}

func TestStaleKeysAreReclaimed(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	require.True(t, l.Allow("stale"))
	clock.advance(2 * time.Minute)
	require.True(t, l.Allow("fresh"))

	l.mu.Lock()
	_, ok := l.admits["stale"]
	l.mu.Unlock()
	assert.False(t, ok, "idle key should be reclaimed by the sweep")
}

func TestConcurrentAllowLosesNoCounts(t *testing.T) {
	l, _ := newTestLimiter(50, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, admitted, "exactly the limit must be admitted under contention")
}
