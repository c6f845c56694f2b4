package router

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/db"
	"github.com/hpungsan/tabkeeper/internal/host"
	"github.com/hpungsan/tabkeeper/internal/ops"
	"github.com/hpungsan/tabkeeper/internal/record"
	"github.com/hpungsan/tabkeeper/internal/schedule"
)

const (
	reminderPrefix  = "reminder_"
	summaryNotifyID = "dailySummary"
)

// Router dispatches tab lifecycle events, user commands, and timer
// firings to the record store and reminder scheduler. All state lives in
// the database and the timer registry; a Router carries no state of its
// own and is safe for concurrent handlers.
type Router struct {
	db       *sql.DB
	cfg      *config.Config
	tabs     host.TabRegistry
	notifier host.Notifier
	timers   *schedule.Timers
}

// New creates a Router over the given collaborators.
func New(database *sql.DB, cfg *config.Config, tabs host.TabRegistry, notifier host.Notifier, timers *schedule.Timers) *Router {
	return &Router{
		db:       database,
		cfg:      cfg,
		tabs:     tabs,
		notifier: notifier,
		timers:   timers,
	}
}

// reminderName is the timer and notification name for a tab's reminder.
// Scheduling under the same name replaces the pending firing.
func reminderName(tabID int) string {
	return reminderPrefix + strconv.Itoa(tabID)
}

// parseReminderName extracts the tabID from a reminder name.
func parseReminderName(name string) (int, bool) {
	if !strings.HasPrefix(name, reminderPrefix) {
		return 0, false
	}
	tabID, err := strconv.Atoi(name[len(reminderPrefix):])
	if err != nil {
		return 0, false
	}
	return tabID, true
}

// TabCreated handles a host tab-created event. Intent capture is deferred
// to the client's first-paint check, so there is no store action.
func (r *Router) TabCreated(tabID int) {}

// TabLoaded handles a host tab-updated event with a completed load:
// refresh the live tab table and touch activity if the tab is tracked.
func (r *Router) TabLoaded(tabID int, info host.TabInfo) error {
	r.tabs.Put(tabID, info)
	return ops.TouchActivity(r.db, tabID)
}

// TabRemoved handles a host tab-removed event: the record, if any, is
// marked closed and any armed reminder becomes a safe no-op.
func (r *Router) TabRemoved(tabID int) error {
	r.tabs.Remove(tabID)
	_, err := ops.MarkClosed(r.db, tabID)
	return err
}

// HasIntent answers the has-intent query.
func (r *Router) HasIntent(tabID int) (bool, error) {
	return ops.HasIntent(r.db, tabID)
}

// SaveIntent creates the intent record for a tab and arms the first
// reminder. Live tab metadata comes from the host table; the fallback
// carries what the client sent for tabs the daemon has not yet seen.
func (r *Router) SaveIntent(tabID int, intent record.Intent, note string, fallback host.TabInfo) (*record.TabRecord, error) {
	info, err := r.tabs.Get(tabID)
	if err != nil {
		info = fallback
	}

	rec, err := ops.SaveIntent(r.db, r.cfg, ops.SaveIntentInput{
		TabID:  tabID,
		URL:    info.URL,
		Title:  info.Title,
		Intent: intent,
		Note:   note,
	})
	if err != nil {
		return nil, err
	}

	r.armReminder(rec)
	return rec, nil
}

// MarkDone resolves a tab record. Stale reminder timers are not cancelled;
// delivery is gated on status, so they fire as no-ops.
func (r *Router) MarkDone(tabID int) error {
	_, err := ops.MarkDone(r.db, tabID)
	return err
}

// Snooze suppresses reminders for the given number of minutes and arms a
// firing at the snooze expiry.
func (r *Router) Snooze(tabID, minutes int) error {
	rec, err := ops.Snooze(r.db, ops.SnoozeInput{TabID: tabID, Minutes: minutes})
	if err != nil {
		return err
	}
	if rec != nil && !rec.Terminal() {
		r.armReminder(rec)
	}
	return nil
}

// TodayStats answers the stats query.
func (r *Router) TodayStats() (*ops.TodayStats, error) {
	return ops.ComputeTodayStats(r.db, r.cfg)
}

// HandleReminder is the reminder delivery path, entered when the timer
// for a tab fires.
//
// A firing produces a notification only when the record is still open,
// not snoozed, and the host has not removed the tab. A tab the daemon
// has no knowledge of still delivers: restarts empty the live table,
// and CLI/MCP records never enter it. Failed gates drop the
// firing without rescheduling: a reminder is forgone, not deferred. The
// snooze gate needs no reschedule here because the snooze itself armed a
// firing at its expiry.
func (r *Router) HandleReminder(tabID int) error {
	rec, err := db.GetRecord(r.db, tabID)
	if err != nil {
		return err
	}
	if rec == nil || rec.Status != record.StatusOpen {
		return nil
	}
	if rec.Snoozed(time.Now()) {
		return nil
	}

	switch _, err := r.tabs.Get(tabID); {
	case errors.Is(err, host.ErrTabGone):
		// Tab vanished without a remove event; recover locally.
		_, err := ops.MarkClosed(r.db, tabID)
		return err
	case errors.Is(err, host.ErrTabUnknown):
		// The daemon has never seen this tab: a restart emptied the
		// table, or the record came in through the CLI or MCP server.
		// No knowledge is not evidence of removal, so deliver.
	case err != nil:
		return err
	}

	if err := r.notifier.Notify(reminderName(tabID), reminderNotification(rec)); err != nil {
		log.Printf("reminder notification for tab %d failed: %v", tabID, err)
	}

	updated, err := ops.RecordDelivery(r.db, r.cfg, tabID)
	if err != nil {
		return err
	}
	if updated != nil {
		r.armReminder(updated)
	}
	return nil
}

// HandleDailySummary renders the daily summary notification when
// anything was tracked today.
func (r *Router) HandleDailySummary() error {
	stats, err := r.TodayStats()
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		return nil
	}

	body := fmt.Sprintf("You opened %d tabs today\n%d are still open\n%d were marked done",
		stats.Total, stats.StillOpen, stats.MarkedDone)
	return r.notifier.Notify(summaryNotifyID, host.Notification{
		Title: "Your Tab Day Summary",
		Body:  body,
	})
}

// NotificationClicked handles a button press on a reminder notification.
// Unknown notification ids and button indices are ignored.
func (r *Router) NotificationClicked(notificationID string, button int) error {
	tabID, ok := parseReminderName(notificationID)
	if !ok {
		return nil
	}

	switch button {
	case 0:
		if err := r.MarkDone(tabID); err != nil {
			return err
		}
	case 1:
		if err := r.Snooze(tabID, r.cfg.DefaultSnoozeMinutes); err != nil {
			return err
		}
	default:
		return nil
	}
	r.notifier.Clear(notificationID)
	return nil
}

// RestoreReminders arms a timer for every open record with a stamped
// nextReminderAt. Run at daemon start to survive restarts, and
// periodically to pick up records written by the CLI or MCP server.
// Returns how many timers were armed.
func (r *Router) RestoreReminders() (int, error) {
	pending, err := ops.PendingReminders(r.db)
	if err != nil {
		return 0, err
	}

	armed := 0
	for _, rec := range pending {
		if r.timers.Pending(reminderName(rec.TabID)) {
			continue
		}
		r.armReminder(rec)
		armed++
	}
	return armed, nil
}

// armReminder schedules the timer for a record's stamped due time.
func (r *Router) armReminder(rec *record.TabRecord) {
	if rec.NextReminderAt == nil {
		return
	}
	tabID := rec.TabID
	r.timers.Schedule(reminderName(tabID), time.Until(*rec.NextReminderAt), func() {
		if err := r.HandleReminder(tabID); err != nil {
			log.Printf("reminder for tab %d: %v", tabID, err)
		}
	})
}

// reminderNotification builds the reminder notification for a record.
func reminderNotification(rec *record.TabRecord) host.Notification {
	body := fmt.Sprintf("You opened %q %s ago for %s", rec.Title, timeAgo(time.Since(rec.OpenedAt)), rec.Intent.Label())
	if rec.Note != "" {
		body += ": " + rec.Note
	}
	return host.Notification{
		Title: "Tab Reminder",
		Body:  body,
		Buttons: []host.Button{
			{Title: "Mark Done"},
			{Title: "Snooze 30min"},
		},
	}
}

// timeAgo formats an elapsed duration the way the notifications phrase it.
func timeAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "moments"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days", int(d.Hours()/24))
	}
}
