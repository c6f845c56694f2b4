package record

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIntentValid(t *testing.T) {
	for _, intent := range AllIntents {
		if !intent.Valid() {
			t.Errorf("intent %q should be valid", intent)
		}
	}
	if Intent("procrastination").Valid() {
		t.Error("unknown intent should not be valid")
	}
}

func TestIntentLabel(t *testing.T) {
	if got := IntentResearch.Label(); got != "Learning" {
		t.Errorf("Label() = %q, want %q", got, "Learning")
	}
	if got := Intent("bogus").Label(); got != "Unknown" {
		t.Errorf("Label() = %q, want %q", got, "Unknown")
	}
}

func TestTerminal(t *testing.T) {
	r := &TabRecord{Status: StatusOpen}
	if r.Terminal() {
		t.Error("open record should not be terminal")
	}
	r.Status = StatusDone
	if !r.Terminal() {
		t.Error("done record should be terminal")
	}
	r.Status = StatusClosed
	if !r.Terminal() {
		t.Error("closed record should be terminal")
	}
}

func TestSnoozed(t *testing.T) {
	now := time.Now()
	r := &TabRecord{Status: StatusOpen}
	if r.Snoozed(now) {
		t.Error("record without snoozedUntil should not be snoozed")
	}

	future := now.Add(10 * time.Minute)
	r.SnoozedUntil = &future
	if !r.Snoozed(now) {
		t.Error("record snoozed into the future should be snoozed")
	}

	past := now.Add(-time.Minute)
	r.SnoozedUntil = &past
	if r.Snoozed(now) {
		t.Error("expired snooze should not suppress")
	}
}

func TestSummaryProjection(t *testing.T) {
	opened := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	r := &TabRecord{
		TabID:    42,
		URL:      "https://example.com",
		Intent:   IntentReadLater,
		OpenedAt: opened,
		Status:   StatusOpen,
	}

	s := r.Summary()
	if !s.OpenedAt.Equal(opened) {
		t.Errorf("OpenedAt = %v, want %v", s.OpenedAt, opened)
	}
	if s.Intent != IntentReadLater {
		t.Errorf("Intent = %q, want %q", s.Intent, IntentReadLater)
	}
	if s.Status != StatusOpen {
		t.Errorf("Status = %q, want %q", s.Status, StatusOpen)
	}
}

func TestIndexJSONRoundTrip(t *testing.T) {
	idx := Index{
		7: {OpenedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), Intent: IntentWorkTask, Status: StatusDone},
	}

	data, err := json.Marshal(idx)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Index
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	entry, ok := decoded[7]
	if !ok {
		t.Fatal("tabId 7 missing after round trip")
	}
	if entry.Status != StatusDone {
		t.Errorf("Status = %q, want %q", entry.Status, StatusDone)
	}
}
