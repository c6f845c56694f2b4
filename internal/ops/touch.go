package ops

import (
	"database/sql"
	"time"

	"github.com/hpungsan/tabkeeper/internal/db"
)

// TouchActivity updates lastActive for a tracked tab. Absent and terminal
// records are left untouched: activity never resurrects a resolved record.
func TouchActivity(database *sql.DB, tabID int) error {
	return db.WithTx(database, func(tx *sql.Tx) error {
		rec, err := db.GetRecord(tx, tabID)
		if err != nil {
			return err
		}
		if rec == nil || rec.Terminal() {
			return nil
		}
		rec.LastActive = time.Now()
		return db.PutRecord(tx, rec)
	})
}
