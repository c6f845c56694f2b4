package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	// ReminderLadderMinutes is the escalating sequence of reminder delays,
	// in minutes. Each delivered reminder re-arms at the next rung,
	// measured from delivery time.
	ReminderLadderMinutes []int `json:"reminder_ladder_minutes"`

	// DefaultSnoozeMinutes is the snooze duration applied by the
	// notification snooze button.
	DefaultSnoozeMinutes int `json:"default_snooze_minutes"`

	// SummaryTime is the local wall-clock time (HH:MM) of the daily
	// summary notification.
	SummaryTime string `json:"summary_time"`

	// Timezone is an IANA timezone name for summary scheduling and
	// "today" boundaries. Empty means the system local timezone.
	Timezone string `json:"timezone,omitempty"`

	// NoteMaxChars is the maximum length of an intent note.
	NoteMaxChars int `json:"note_max_chars"`

	// RecentTabsLimit bounds the recent-tabs list in the popup page.
	RecentTabsLimit int `json:"recent_tabs_limit"`

	// ReconcileMinutes is how often the daemon re-arms reminder timers
	// for records written outside the daemon (CLI, MCP).
	ReconcileMinutes int `json:"reconcile_minutes"`

	// ListenAddr is the daemon's HTTP bind address.
	ListenAddr string `json:"listen_addr"`

	// NotifyCommand, when set, is an external command invoked with the
	// notification title and body (e.g. notify-send). Empty means
	// notifications are written to the log.
	NotifyCommand string `json:"notify_command,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized.
	// 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ReminderLadderMinutes: []int{30, 120, 240},
		DefaultSnoozeMinutes:  30,
		SummaryTime:           "21:00",
		NoteMaxChars:          500,
		RecentTabsLimit:       5,
		ReconcileMinutes:      5,
		ListenAddr:            "127.0.0.1:7767",
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.tabkeeper.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; string slices are merged
// and deduplicated; the reminder ladder is replaced wholesale when set.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.ReminderLadderMinutes = overlay.ReminderLadderMinutes
	if len(result.ReminderLadderMinutes) == 0 {
		result.ReminderLadderMinutes = base.ReminderLadderMinutes
	}

	result.DefaultSnoozeMinutes = overlay.DefaultSnoozeMinutes
	if result.DefaultSnoozeMinutes == 0 {
		result.DefaultSnoozeMinutes = base.DefaultSnoozeMinutes
	}

	result.SummaryTime = overlay.SummaryTime
	if result.SummaryTime == "" {
		result.SummaryTime = base.SummaryTime
	}

	result.Timezone = overlay.Timezone
	if result.Timezone == "" {
		result.Timezone = base.Timezone
	}

	result.NoteMaxChars = overlay.NoteMaxChars
	if result.NoteMaxChars == 0 {
		result.NoteMaxChars = base.NoteMaxChars
	}

	result.RecentTabsLimit = overlay.RecentTabsLimit
	if result.RecentTabsLimit == 0 {
		result.RecentTabsLimit = base.RecentTabsLimit
	}

	result.ReconcileMinutes = overlay.ReconcileMinutes
	if result.ReconcileMinutes == 0 {
		result.ReconcileMinutes = base.ReconcileMinutes
	}

	result.ListenAddr = overlay.ListenAddr
	if result.ListenAddr == "" {
		result.ListenAddr = base.ListenAddr
	}

	result.NotifyCommand = overlay.NotifyCommand
	if result.NotifyCommand == "" {
		result.NotifyCommand = base.NotifyCommand
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// Validate checks values that cannot be caught by JSON decoding alone.
func (c *Config) Validate() error {
	for _, m := range c.ReminderLadderMinutes {
		if m <= 0 {
			return fmt.Errorf("reminder_ladder_minutes entries must be positive, got %d", m)
		}
	}
	if _, _, err := ParseClock(c.SummaryTime); err != nil {
		return fmt.Errorf("summary_time: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Ladder returns the reminder ladder as durations.
func (c *Config) Ladder() []time.Duration {
	out := make([]time.Duration, len(c.ReminderLadderMinutes))
	for i, m := range c.ReminderLadderMinutes {
		out[i] = time.Duration(m) * time.Minute
	}
	return out
}

// Location resolves the configured timezone, defaulting to the system local one.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ParseClock extracts hour and minute from HH:MM format.
func ParseClock(t string) (int, int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, 0, fmt.Errorf("invalid time format %q: must be HH:MM", t)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, 0, fmt.Errorf("invalid time format %q: must be HH:MM", t)
		}
	}

	hour := int(t[0]-'0')*10 + int(t[1]-'0')
	minute := int(t[3]-'0')*10 + int(t[4]-'0')

	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: hour 0-23, minute 0-59", t)
	}
	return hour, minute, nil
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
