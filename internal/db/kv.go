package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// Key layout of the kv table. Full records live under tab_<tabId>; the
// summary index lives under allTabs and is refreshed on every record write.
const (
	recordKeyPrefix = "tab_"
	indexKey        = "allTabs"
)

// Queryer is satisfied by both *sql.DB and *sql.Tx.
type Queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
}

// RecordKey returns the kv key for a tab's full record.
func RecordKey(tabID int) string {
	return recordKeyPrefix + strconv.Itoa(tabID)
}

// WithTx runs fn inside a transaction, committing on nil and rolling back
// on error. Mutations use this so read-modify-write cycles on a record are
// serialized by the database rather than racing last-writer-wins.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetRecord loads the full record for a tab.
// An absent record returns (nil, nil): absence is a valid state, not an error.
func GetRecord(q Queryer, tabID int) (*record.TabRecord, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM kv WHERE key = ?`, RecordKey(tabID)).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	rec := &record.TabRecord{}
	if err := json.Unmarshal([]byte(value), rec); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("corrupt record for tab %d: %w", tabID, err))
	}
	return rec, nil
}

// PutRecord serializes the full record and refreshes the summary index
// projection for its key. Callers run it inside WithTx so both writes land
// together.
func PutRecord(q Queryer, rec *record.TabRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.NewInternal(err)
	}

	now := time.Now().Unix()
	_, err = q.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		RecordKey(rec.TabID), string(data), now,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	idx, err := GetIndex(q)
	if err != nil {
		return err
	}
	idx[rec.TabID] = rec.Summary()

	idxData, err := json.Marshal(idx)
	if err != nil {
		return errors.NewInternal(err)
	}
	_, err = q.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		indexKey, string(idxData), now,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetIndex loads the summary index. A missing index is an empty one.
func GetIndex(q Queryer) (record.Index, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM kv WHERE key = ?`, indexKey).Scan(&value)
	if err == sql.ErrNoRows {
		return record.Index{}, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	idx := record.Index{}
	if err := json.Unmarshal([]byte(value), &idx); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("corrupt summary index: %w", err))
	}
	return idx, nil
}

// ListRecords loads every full record, newest-opened first.
func ListRecords(q Queryer) ([]*record.TabRecord, error) {
	rows, err := q.Query(
		`SELECT value FROM kv WHERE key LIKE ? ESCAPE '\'`,
		strings.ReplaceAll(recordKeyPrefix, "_", `\_`)+"%",
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	records := make([]*record.TabRecord, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, errors.NewInternal(err)
		}
		rec := &record.TabRecord{}
		if err := json.Unmarshal([]byte(value), rec); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("corrupt record row: %w", err))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].OpenedAt.After(records[j].OpenedAt)
	})
	return records, nil
}
