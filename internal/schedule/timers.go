package schedule

import (
	"sync"
	"time"
)

// Timers is a registry of named one-shot timers. Scheduling a timer under
// a name that already has one pending replaces it; name reuse is the only
// cancellation primitive callers rely on.
type Timers struct {
	mu      sync.Mutex
	pending map[string]*timerEntry
}

type timerEntry struct {
	timer *time.Timer
	due   time.Time
}

// NewTimers creates an empty registry.
func NewTimers() *Timers {
	return &Timers{pending: make(map[string]*timerEntry)}
}

// Schedule arms fn to run once after d, replacing any pending timer with
// the same name. Non-positive durations fire promptly.
func (t *Timers) Schedule(name string, d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.pending[name]; ok {
		prev.timer.Stop()
	}

	entry := &timerEntry{due: time.Now().Add(d)}
	entry.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		// A replacement may have been armed after this fired but before
		// the lock was taken; only the current entry removes itself.
		if cur, ok := t.pending[name]; ok && cur == entry {
			delete(t.pending, name)
		}
		t.mu.Unlock()
		fn()
	})
	t.pending[name] = entry
}

// Cancel stops a pending timer. Returns false if nothing was pending.
func (t *Timers) Cancel(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.pending[name]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(t.pending, name)
	return true
}

// Pending reports whether a timer with the given name is armed.
func (t *Timers) Pending(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[name]
	return ok
}

// DueAt returns the due time of a pending timer.
func (t *Timers) DueAt(name string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.pending[name]
	if !ok {
		return time.Time{}, false
	}
	return entry.due, true
}

// Len returns the number of pending timers.
func (t *Timers) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Stop cancels every pending timer.
func (t *Timers) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for name, entry := range t.pending {
		entry.timer.Stop()
		delete(t.pending, name)
	}
}
