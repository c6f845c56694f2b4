package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	want := []int{30, 120, 240}
	if len(cfg.ReminderLadderMinutes) != len(want) {
		t.Fatalf("ladder length = %d, want %d", len(cfg.ReminderLadderMinutes), len(want))
	}
	for i, m := range want {
		if cfg.ReminderLadderMinutes[i] != m {
			t.Errorf("ladder[%d] = %d, want %d", i, cfg.ReminderLadderMinutes[i], m)
		}
	}
	if cfg.SummaryTime != "21:00" {
		t.Errorf("SummaryTime = %q, want %q", cfg.SummaryTime, "21:00")
	}
	if cfg.DefaultSnoozeMinutes != 30 {
		t.Errorf("DefaultSnoozeMinutes = %d, want 30", cfg.DefaultSnoozeMinutes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.NoteMaxChars != 500 {
		t.Errorf("NoteMaxChars = %d, want default 500", cfg.NoteMaxChars)
	}
}

func TestLoadOverride(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"summary_time": "09:15", "reminder_ladder_minutes": [5, 10], "disabled_tools": ["tab_log"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SummaryTime != "09:15" {
		t.Errorf("SummaryTime = %q, want %q", cfg.SummaryTime, "09:15")
	}
	if len(cfg.ReminderLadderMinutes) != 2 || cfg.ReminderLadderMinutes[0] != 5 {
		t.Errorf("ladder = %v, want [5 10]", cfg.ReminderLadderMinutes)
	}
	// Defaults survive for untouched keys
	if cfg.DefaultSnoozeMinutes != 30 {
		t.Errorf("DefaultSnoozeMinutes = %d, want 30", cfg.DefaultSnoozeMinutes)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "tab_log" {
		t.Errorf("DisabledTools = %v, want [tab_log]", cfg.DisabledTools)
	}
}

func TestLoadInvalidSummaryTime(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(`{"summary_time": "9pm"}`), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(tmpDir); err == nil {
		t.Error("expected error for malformed summary_time")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"21:00", 21, 0, false},
		{"00:00", 0, 0, false},
		{"09:45", 9, 45, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"1:30", 0, 0, true},
		{"ab:cd", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) failed: %v", tt.in, err)
			continue
		}
		if h != tt.hour || m != tt.minute {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.hour, tt.minute)
		}
	}
}

func TestLadder(t *testing.T) {
	cfg := &Config{ReminderLadderMinutes: []int{30, 120}}
	ladder := cfg.Ladder()
	if len(ladder) != 2 {
		t.Fatalf("ladder length = %d, want 2", len(ladder))
	}
	if ladder[0] != 30*time.Minute || ladder[1] != 120*time.Minute {
		t.Errorf("ladder = %v, want [30m 2h]", ladder)
	}
}

func TestMergeScalarsAndSlices(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{SummaryTime: "08:00", DisabledTools: []string{"tab_track", " "}}

	merged := Merge(base, overlay)
	if merged.SummaryTime != "08:00" {
		t.Errorf("SummaryTime = %q, want %q", merged.SummaryTime, "08:00")
	}
	if merged.ListenAddr != base.ListenAddr {
		t.Errorf("ListenAddr = %q, want base %q", merged.ListenAddr, base.ListenAddr)
	}
	if len(merged.DisabledTools) != 1 {
		t.Errorf("DisabledTools = %v, want blank entries dropped", merged.DisabledTools)
	}
}
