package ops

import (
	"testing"
	"time"

	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/record"
)

func TestSnooze(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := SaveIntent(database, cfg, SaveIntentInput{TabID: 4, Intent: record.IntentReadLater}); err != nil {
		t.Fatalf("SaveIntent failed: %v", err)
	}

	rec, err := Snooze(database, SnoozeInput{TabID: 4, Minutes: 45})
	if err != nil {
		t.Fatalf("Snooze failed: %v", err)
	}
	if rec.SnoozedUntil == nil {
		t.Fatal("SnoozedUntil should be set")
	}
	wantUntil := time.Now().Add(45 * time.Minute)
	if diff := rec.SnoozedUntil.Sub(wantUntil); diff < -time.Minute || diff > time.Minute {
		t.Errorf("SnoozedUntil = %v, want ~%v", rec.SnoozedUntil, wantUntil)
	}
	if rec.NextReminderAt == nil || !rec.NextReminderAt.Equal(*rec.SnoozedUntil) {
		t.Errorf("NextReminderAt = %v, want the snooze expiry %v", rec.NextReminderAt, rec.SnoozedUntil)
	}
	if !rec.Snoozed(time.Now()) {
		t.Error("record should report snoozed now")
	}
	if rec.Snoozed(time.Now().Add(46 * time.Minute)) {
		t.Error("snooze should expire after the requested duration")
	}
}

func TestSnoozeAbsentIsNoop(t *testing.T) {
	database, _ := testSetup(t)

	rec, err := Snooze(database, SnoozeInput{TabID: 404, Minutes: 30})
	if err != nil {
		t.Fatalf("Snooze on absent record should not fail: %v", err)
	}
	if rec != nil {
		t.Error("absent record stays absent")
	}
}

func TestSnoozeTerminalIsNoop(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := SaveIntent(database, cfg, SaveIntentInput{TabID: 4, Intent: record.IntentReadLater}); err != nil {
		t.Fatalf("SaveIntent failed: %v", err)
	}
	if _, err := MarkDone(database, 4); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	rec, err := Snooze(database, SnoozeInput{TabID: 4, Minutes: 30})
	if err != nil {
		t.Fatalf("Snooze failed: %v", err)
	}
	if rec.SnoozedUntil != nil {
		t.Error("terminal record must not receive a snooze write")
	}
}

func TestSnoozeInvalidDuration(t *testing.T) {
	database, _ := testSetup(t)

	if _, err := Snooze(database, SnoozeInput{TabID: 4, Minutes: 0}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("zero duration: got %v, want INVALID_REQUEST", err)
	}
	if _, err := Snooze(database, SnoozeInput{TabID: 4, Minutes: -5}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("negative duration: got %v, want INVALID_REQUEST", err)
	}
}
