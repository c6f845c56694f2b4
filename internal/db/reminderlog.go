package db

import (
	"time"

	"github.com/hpungsan/tabkeeper/internal/errors"
)

// ReminderEntry is one delivered reminder.
type ReminderEntry struct {
	ID          string    `json:"id"`
	TabID       int       `json:"tab_id"`
	Step        int       `json:"step"` // 1-based position in the ladder
	DeliveredAt time.Time `json:"delivered_at"`
}

// AppendReminderLog records a delivered reminder.
func AppendReminderLog(q Queryer, entry ReminderEntry) error {
	_, err := q.Exec(
		`INSERT INTO reminder_log (id, tab_id, step, delivered_at) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.TabID, entry.Step, entry.DeliveredAt.Unix(),
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ReminderLogSince returns deliveries at or after the given instant,
// newest first.
func ReminderLogSince(q Queryer, since time.Time) ([]ReminderEntry, error) {
	rows, err := q.Query(
		`SELECT id, tab_id, step, delivered_at FROM reminder_log
		 WHERE delivered_at >= ? ORDER BY delivered_at DESC`,
		since.Unix(),
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	entries := make([]ReminderEntry, 0)
	for rows.Next() {
		var e ReminderEntry
		var deliveredAt int64
		if err := rows.Scan(&e.ID, &e.TabID, &e.Step, &deliveredAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		e.DeliveredAt = time.Unix(deliveredAt, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return entries, nil
}
