package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits at most limit calls per client key within any rolling
// window. Only admitted calls count against the window; rejected calls
// leave no trace. Keys are created on first sight and reclaimed once they
// have been idle for a full window.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	admits    map[string][]time.Time
	lastSweep time.Time
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		admits: make(map[string][]time.Time),
	}
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	recent := l.admits[key][:0]
	for _, t := range l.admits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.admits[key] = recent
		return false
	}

	l.admits[key] = append(recent, now)
	return true
}

func (l *Limiter) sweep(cutoff time.Time) {
	for key, ts := range l.admits {
		live := false
		for _, t := range ts {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.admits, key)
		}
	}
}
