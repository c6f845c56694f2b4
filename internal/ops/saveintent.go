package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// SaveIntentInput contains parameters for the SaveIntent operation.
type SaveIntentInput struct {
	TabID  int
	URL    string
	Title  string
	Intent record.Intent
	Note   string
}

// SaveIntent creates the intent record for a tab and stamps the first rung
// of the reminder ladder. Fails with ALREADY_TRACKED if an open record
// exists for the tab; a terminal record from a prior tab with the same
// host-assigned id is replaced (hosts reuse ids after closure).
func SaveIntent(database *sql.DB, cfg *config.Config, input SaveIntentInput) (*record.TabRecord, error) {
	if input.TabID <= 0 {
		return nil, errors.NewInvalidRequest("tab_id must be a positive integer")
	}
	if !input.Intent.Valid() {
		return nil, errors.NewInvalidRequest("intent must be one of: research, shopping, read_later, work_task, random")
	}
	input.Note = strings.TrimSpace(input.Note)
	if err := validateNote(cfg, input.Note); err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &record.TabRecord{
		TabID:      input.TabID,
		URL:        input.URL,
		Title:      input.Title,
		Intent:     input.Intent,
		Note:       input.Note,
		OpenedAt:   now,
		LastActive: now,
		Status:     record.StatusOpen,
	}
	if ladder := cfg.Ladder(); len(ladder) > 0 {
		due := now.Add(ladder[0])
		rec.NextReminderAt = &due
	}

	err := db.WithTx(database, func(tx *sql.Tx) error {
		existing, err := db.GetRecord(tx, input.TabID)
		if err != nil {
			return err
		}
		if existing != nil && !existing.Terminal() {
			return errors.NewAlreadyTracked(input.TabID)
		}
		return db.PutRecord(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
