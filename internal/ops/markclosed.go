package ops

import (
	"database/sql"
	"time"

	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// MarkClosed records that the host-side tab no longer exists. No-op when
// the record is absent or already done.
func MarkClosed(database *sql.DB, tabID int) (*record.TabRecord, error) {
	var out *record.TabRecord
	err := db.WithTx(database, func(tx *sql.Tx) error {
		rec, err := db.GetRecord(tx, tabID)
		if err != nil {
			return err
		}
		if rec == nil || rec.Status == record.StatusDone {
			out = rec
			return nil
		}
		now := time.Now()
		rec.Status = record.StatusClosed
		rec.ClosedAt = &now
		rec.NextReminderAt = nil
		out = rec
		return db.PutRecord(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
