package ops

import (
	"database/sql"
	"time"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/db"
)

// DeliveriesToday lists reminders delivered since local midnight,
// newest first.
func DeliveriesToday(database *sql.DB, cfg *config.Config) ([]db.ReminderEntry, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return db.ReminderLogSince(database, startOfDay(time.Now(), loc))
}
