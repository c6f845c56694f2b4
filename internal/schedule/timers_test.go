package schedule

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleFires(t *testing.T) {
	timers := NewTimers()
	defer timers.Stop()

	fired := make(chan struct{})
	timers.Schedule("reminder_1", 5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}

	// Give the self-removal a moment.
	deadline := time.Now().Add(time.Second)
	for timers.Pending("reminder_1") && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if timers.Pending("reminder_1") {
		t.Error("fired timer should leave the registry")
	}
}

func TestScheduleSameNameReplaces(t *testing.T) {
	timers := NewTimers()
	defer timers.Stop()

	var first, second atomic.Int32
	done := make(chan struct{})
	timers.Schedule("reminder_7", 50*time.Millisecond, func() { first.Add(1) })
	timers.Schedule("reminder_7", 5*time.Millisecond, func() {
		second.Add(1)
		close(done)
	})

	if timers.Len() != 1 {
		t.Fatalf("Len = %d, replacement should not add a second entry", timers.Len())
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("replacement timer never fired")
	}
	time.Sleep(100 * time.Millisecond)
	if first.Load() != 0 {
		t.Error("replaced timer must not fire")
	}
	if second.Load() != 1 {
		t.Errorf("replacement fired %d times, want 1", second.Load())
	}
}

func TestDueAt(t *testing.T) {
	timers := NewTimers()
	defer timers.Stop()

	timers.Schedule("reminder_2", 30*time.Minute, func() {})

	due, ok := timers.DueAt("reminder_2")
	if !ok {
		t.Fatal("DueAt should find the pending timer")
	}
	want := time.Now().Add(30 * time.Minute)
	if diff := due.Sub(want); diff < -time.Second || diff > time.Second {
		t.Errorf("due = %v, want ~%v", due, want)
	}

	if _, ok := timers.DueAt("reminder_999"); ok {
		t.Error("DueAt on unknown name should report not found")
	}
}

func TestCancel(t *testing.T) {
	timers := NewTimers()
	defer timers.Stop()

	var fired atomic.Int32
	timers.Schedule("reminder_3", 10*time.Millisecond, func() { fired.Add(1) })

	if !timers.Cancel("reminder_3") {
		t.Error("Cancel should report a pending timer was stopped")
	}
	if timers.Cancel("reminder_3") {
		t.Error("second Cancel should report nothing pending")
	}

	time.Sleep(50 * time.Millisecond)
	if fired.Load() != 0 {
		t.Error("cancelled timer must not fire")
	}
}

func TestRearmFromWithinCallback(t *testing.T) {
	timers := NewTimers()
	defer timers.Stop()

	done := make(chan struct{})
	timers.Schedule("reminder_4", time.Millisecond, func() {
		// The delivery path re-arms the next rung under the same name.
		timers.Schedule("reminder_4", time.Hour, func() {})
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
	if !timers.Pending("reminder_4") {
		t.Error("re-armed timer should be pending")
	}
}

func TestStopCancelsAll(t *testing.T) {
	timers := NewTimers()

	timers.Schedule("a", time.Hour, func() {})
	timers.Schedule("b", time.Hour, func() {})
	timers.Stop()

	if timers.Len() != 0 {
		t.Errorf("Len = %d after Stop, want 0", timers.Len())
	}
}
