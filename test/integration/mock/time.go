package mock

import (
	"sync"
	"time"
)

// Time is a settable clock for the API under test. After Set it keeps
// ticking at wall speed from the new instant, so request timestamps still
// differ.
type Time struct {
	mu    sync.RWMutex
	base  time.Time
	setAt time.Time
}

func NewTime() *Time {
	now := time.Now()
	return &Time{base: now, setAt: now}
}

func (t *Time) SetCurrentTime(at time.Time) {
	t.mu.Lock()
	t.base, t.setAt = at, time.Now()
	t.mu.Unlock()
}

func (t *Time) Advance(d time.Duration) {
	t.SetCurrentTime(t.Now().Add(d))
}

// Reset puts the clock back on wall time.
func (t *Time) Reset() {
	t.SetCurrentTime(time.Now())
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.base.Add(time.Since(t.setAt))
}
