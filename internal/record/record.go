package record

import "time"

// Intent is the user-declared reason for opening a tab.
type Intent string

const (
	IntentResearch  Intent = "research"
	IntentShopping  Intent = "shopping"
	IntentReadLater Intent = "read_later"
	IntentWorkTask  Intent = "work_task"
	IntentRandom    Intent = "random"
)

// intentLabels maps intents to their display labels.
var intentLabels = map[Intent]string{
	IntentResearch:  "Learning",
	IntentShopping:  "Shopping",
	IntentReadLater: "Ideas",
	IntentWorkTask:  "Work",
	IntentRandom:    "Other",
}

// AllIntents lists every valid intent, in display order.
var AllIntents = []Intent{
	IntentResearch,
	IntentWorkTask,
	IntentShopping,
	IntentReadLater,
	IntentRandom,
}

// Valid reports whether i is one of the known intents.
func (i Intent) Valid() bool {
	_, ok := intentLabels[i]
	return ok
}

// Label returns the display label for the intent, or "Unknown".
func (i Intent) Label() string {
	if label, ok := intentLabels[i]; ok {
		return label
	}
	return "Unknown"
}

// Status is the lifecycle state of a tab record.
// Transitions are monotone: open -> {done, closed}; done and closed are terminal.
type Status string

const (
	StatusOpen   Status = "open"
	StatusDone   Status = "done"
	StatusClosed Status = "closed"
)

// TabRecord is one per actively-or-formerly-tracked tab.
// A record exists for a tab iff the user has recorded an intent for it;
// records are never physically deleted.
type TabRecord struct {
	TabID         int        `json:"tabId"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Intent        Intent     `json:"intent"`
	Note          string     `json:"note,omitempty"`
	OpenedAt      time.Time  `json:"openedAt"`
	LastActive    time.Time  `json:"lastActive"`
	Status        Status     `json:"status"`
	RemindersSent int        `json:"remindersSent"`
	SnoozedUntil  *time.Time `json:"snoozedUntil,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`

	// NextReminderAt is the instant the currently armed reminder is due.
	// Nil when nothing is pending (ladder exhausted or record terminal).
	// Persisting it lets the daemon re-arm timers after a restart.
	NextReminderAt *time.Time `json:"nextReminderAt,omitempty"`
}

// Terminal reports whether the record is in a terminal status.
func (r *TabRecord) Terminal() bool {
	return r.Status == StatusDone || r.Status == StatusClosed
}

// Snoozed reports whether reminders are suppressed at the given instant.
func (r *TabRecord) Snoozed(now time.Time) bool {
	return r.SnoozedUntil != nil && r.SnoozedUntil.After(now)
}

// SummaryEntry is the reduced projection of a record kept in the summary
// index so aggregates never load full records.
type SummaryEntry struct {
	OpenedAt time.Time `json:"openedAt"`
	Intent   Intent    `json:"intent"`
	Status   Status    `json:"status"`
}

// Summary returns the index projection of the record.
func (r *TabRecord) Summary() SummaryEntry {
	return SummaryEntry{
		OpenedAt: r.OpenedAt,
		Intent:   r.Intent,
		Status:   r.Status,
	}
}

// Index maps tabId to the summary projection of its record.
type Index map[int]SummaryEntry
