package ops

import (
	"database/sql"
	"time"

	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// SnoozeInput contains parameters for the Snooze operation.
type SnoozeInput struct {
	TabID   int
	Minutes int
}

// Snooze suppresses reminders for a tab until now + duration and stamps a
// firing at that instant. The caller-supplied duration replaces the ladder
// for this one firing. No-op on absent or terminal records.
func Snooze(database *sql.DB, input SnoozeInput) (*record.TabRecord, error) {
	if input.Minutes <= 0 {
		return nil, errors.NewInvalidRequest("snooze duration must be a positive number of minutes")
	}

	var out *record.TabRecord
	err := db.WithTx(database, func(tx *sql.Tx) error {
		rec, err := db.GetRecord(tx, input.TabID)
		if err != nil {
			return err
		}
		if rec == nil || rec.Terminal() {
			out = rec
			return nil
		}
		until := time.Now().Add(time.Duration(input.Minutes) * time.Minute)
		rec.SnoozedUntil = &until
		rec.NextReminderAt = &until
		out = rec
		return db.PutRecord(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
