package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryThrottle is an in-process per-source throttle. The check and the
// last-click update share one critical section, so two goroutines racing
// on the same source cannot both pass inside the window.
type MemoryThrottle struct {
	mu       sync.Mutex
	window   time.Duration
	lastSeen map[string]time.Time
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryThrottle creates a throttle with the given window and starts
// a janitor that evicts stale entries.
func NewMemoryThrottle(window time.Duration) *MemoryThrottle {
	t := &MemoryThrottle{
		window:   window,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go t.cleanup()
	return t
}

// Allow reports whether source may click now and records the click time
func (t *MemoryThrottle) Allow(_ context.Context, source string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.lastSeen[source]; ok && now.Sub(last) < t.window {
		return false, nil
	}
	t.lastSeen[source] = now
	return true, nil
}

// Stop terminates the janitor goroutine
func (t *MemoryThrottle) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

func (t *MemoryThrottle) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			now := t.now()
			for source, last := range t.lastSeen {
				if now.Sub(last) >= t.window {
					delete(t.lastSeen, source)
				}
			}
			t.mu.Unlock()
		}
	}
}
