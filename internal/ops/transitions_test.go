package ops

import (
	"testing"

	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/record"
)

func TestMarkDone(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := SaveIntent(database, cfg, SaveIntentInput{TabID: 8, Intent: record.IntentWorkTask}); err != nil {
		t.Fatalf("SaveIntent failed: %v", err)
	}

	rec, err := MarkDone(database, 8)
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if rec.Status != record.StatusDone {
		t.Errorf("Status = %q, want done", rec.Status)
	}
	if rec.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}
	if rec.NextReminderAt != nil {
		t.Error("done record should have no pending reminder")
	}
}

func TestMarkDoneAbsentIsNoop(t *testing.T) {
	database, _ := testSetup(t)

	rec, err := MarkDone(database, 404)
	if err != nil {
		t.Fatalf("MarkDone on absent record should not fail: %v", err)
	}
	if rec != nil {
		t.Error("absent record stays absent")
	}
}

func TestTerminalStatusSticks(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := SaveIntent(database, cfg, SaveIntentInput{TabID: 8, Intent: record.IntentWorkTask}); err != nil {
		t.Fatalf("SaveIntent failed: %v", err)
	}
	if _, err := MarkDone(database, 8); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	// Activity after resolution must not revert the status.
	if err := TouchActivity(database, 8); err != nil {
		t.Fatalf("TouchActivity failed: %v", err)
	}
	rec, err := Get(database, 8)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Status != record.StatusDone {
		t.Errorf("Status = %q, touch must not revert done", rec.Status)
	}

	// Done is terminal: a late host-close report changes nothing.
	rec, err = MarkClosed(database, 8)
	if err != nil {
		t.Fatalf("MarkClosed failed: %v", err)
	}
	if rec.Status != record.StatusDone {
		t.Errorf("Status = %q, closed must not override done", rec.Status)
	}
}

func TestMarkClosed(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := SaveIntent(database, cfg, SaveIntentInput{TabID: 2, Intent: record.IntentShopping}); err != nil {
		t.Fatalf("SaveIntent failed: %v", err)
	}

	rec, err := MarkClosed(database, 2)
	if err != nil {
		t.Fatalf("MarkClosed failed: %v", err)
	}
	if rec.Status != record.StatusClosed {
		t.Errorf("Status = %q, want closed", rec.Status)
	}
	if rec.ClosedAt == nil {
		t.Error("ClosedAt should be set")
	}

	// Done after closed is a no-op.
	rec, err = MarkDone(database, 2)
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if rec.Status != record.StatusClosed {
		t.Errorf("Status = %q, done must not override closed", rec.Status)
	}
}

func TestTouchActivityUpdatesOpenRecord(t *testing.T) {
	database, cfg := testSetup(t)

	saved, err := SaveIntent(database, cfg, SaveIntentInput{TabID: 6, Intent: record.IntentResearch})
	if err != nil {
		t.Fatalf("SaveIntent failed: %v", err)
	}

	if err := TouchActivity(database, 6); err != nil {
		t.Fatalf("TouchActivity failed: %v", err)
	}
	rec, err := Get(database, 6)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.LastActive.Before(saved.LastActive) {
		t.Error("LastActive should move forward")
	}
}

func TestTransitionsRefreshIndex(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := SaveIntent(database, cfg, SaveIntentInput{TabID: 9, Intent: record.IntentRandom}); err != nil {
		t.Fatalf("SaveIntent failed: %v", err)
	}
	if _, err := MarkDone(database, 9); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	idx, err := db.GetIndex(database)
	if err != nil {
		t.Fatalf("GetIndex failed: %v", err)
	}
	if idx[9].Status != record.StatusDone {
		t.Errorf("index status = %q, want done", idx[9].Status)
	}
}
