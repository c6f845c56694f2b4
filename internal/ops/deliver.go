package ops

import (
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// RecordDelivery commits the bookkeeping for a delivered reminder:
// increments remindersSent, appends the delivery log entry, and stamps
// the next ladder rung measured from delivery time. A record at the end
// of the ladder gets no further reminder (nextReminderAt is cleared).
func RecordDelivery(database *sql.DB, cfg *config.Config, tabID int) (*record.TabRecord, error) {
	var out *record.TabRecord
	err := db.WithTx(database, func(tx *sql.Tx) error {
		rec, err := db.GetRecord(tx, tabID)
		if err != nil {
			return err
		}
		if rec == nil || rec.Status != record.StatusOpen {
			out = rec
			return nil
		}

		now := time.Now()
		rec.RemindersSent++

		ladder := cfg.Ladder()
		if rec.RemindersSent < len(ladder) {
			// Each escalation restarts the delay clock at delivery time.
			due := now.Add(ladder[rec.RemindersSent])
			rec.NextReminderAt = &due
		} else {
			rec.NextReminderAt = nil
		}

		id, err := generateULID()
		if err != nil {
			return errors.NewInternal(err)
		}
		if err := db.AppendReminderLog(tx, db.ReminderEntry{
			ID:          id,
			TabID:       tabID,
			Step:        rec.RemindersSent,
			DeliveredAt: now,
		}); err != nil {
			return err
		}

		out = rec
		return db.PutRecord(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PendingReminders lists open records with an armed reminder. The daemon
// uses it to restore timers on startup and to pick up records written by
// the CLI or MCP server.
func PendingReminders(database *sql.DB) ([]*record.TabRecord, error) {
	records, err := db.ListRecords(database)
	if err != nil {
		return nil, err
	}

	pending := make([]*record.TabRecord, 0)
	for _, rec := range records {
		if rec.Status == record.StatusOpen && rec.NextReminderAt != nil {
			pending = append(pending, rec)
		}
	}
	return pending, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
