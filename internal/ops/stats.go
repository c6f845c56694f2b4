package ops

import (
	"database/sql"
	"time"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// TodayStats is the daily aggregate over the summary index.
type TodayStats struct {
	Total      int `json:"total"`
	StillOpen  int `json:"stillOpen"`
	MarkedDone int `json:"markedDone"`
}

// ComputeTodayStats counts records opened on the current local calendar
// day, by status. Pure function of the summary index; full records are
// never loaded.
func ComputeTodayStats(database *sql.DB, cfg *config.Config) (*TodayStats, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	idx, err := db.GetIndex(database)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &TodayStats{}
	for _, entry := range idx {
		if !sameDay(entry.OpenedAt, now, loc) {
			continue
		}
		stats.Total++
		switch entry.Status {
		case record.StatusOpen:
			stats.StillOpen++
		case record.StatusDone:
			stats.MarkedDone++
		}
	}
	return stats, nil
}
