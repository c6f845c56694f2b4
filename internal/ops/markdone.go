package ops

import (
	"database/sql"
	"time"

	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// MarkDone resolves a tab record as done. No-op when the record is absent
// or already closed (transitions are monotone: open -> {done, closed}).
// Marking an already-done record refreshes completedAt; the resulting
// state is unchanged.
func MarkDone(database *sql.DB, tabID int) (*record.TabRecord, error) {
	var out *record.TabRecord
	err := db.WithTx(database, func(tx *sql.Tx) error {
		rec, err := db.GetRecord(tx, tabID)
		if err != nil {
			return err
		}
		if rec == nil || rec.Status == record.StatusClosed {
			out = rec
			return nil
		}
		now := time.Now()
		rec.Status = record.StatusDone
		rec.CompletedAt = &now
		rec.NextReminderAt = nil
		out = rec
		return db.PutRecord(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
