package ops

import (
	"database/sql"

	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// Get retrieves the record for a tab, failing with NOT_FOUND when absent.
func Get(database *sql.DB, tabID int) (*record.TabRecord, error) {
	rec, err := db.GetRecord(database, tabID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.NewNotFound(tabID)
	}
	return rec, nil
}

// HasIntent reports whether an intent record exists for the tab.
// Absence means "not yet asked" or "skipped", never an error.
func HasIntent(database *sql.DB, tabID int) (bool, error) {
	rec, err := db.GetRecord(database, tabID)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}
