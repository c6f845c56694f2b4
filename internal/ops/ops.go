package ops

import (
	"time"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/errors"
)

// List limits
const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// validateNote checks a note against the configured length bound.
func validateNote(cfg *config.Config, note string) error {
	if cfg.NoteMaxChars > 0 && len([]rune(note)) > cfg.NoteMaxChars {
		return errors.NewNoteTooLong(cfg.NoteMaxChars, len([]rune(note)))
	}
	return nil
}

// startOfDay returns midnight of t's calendar day in the given location.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// sameDay reports whether a and b fall on the same calendar day in loc.
func sameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
