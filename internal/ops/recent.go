package ops

import (
	"database/sql"

	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// RecentTabsInput contains parameters for the RecentTabs operation.
type RecentTabsInput struct {
	Status record.Status // empty means any status
	Limit  int           // 0 means DefaultRecentLimit
}

// RecentTabs lists tracked tabs, most recently opened first.
func RecentTabs(database *sql.DB, input RecentTabsInput) ([]*record.TabRecord, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	records, err := db.ListRecords(database)
	if err != nil {
		return nil, err
	}

	out := make([]*record.TabRecord, 0, limit)
	for _, rec := range records {
		if input.Status != "" && rec.Status != input.Status {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
