package schedule

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hpungsan/tabkeeper/internal/config"
)

// Daily runs the recurring jobs: the daily summary at a fixed local
// wall-clock time and the periodic reminder reconcile. The first summary
// fires today at that time, or tomorrow if already past.
type Daily struct {
	cron      *cron.Cron
	mu        sync.Mutex
	summaryID cron.EntryID
	location  *time.Location
}

// NewDaily creates a Daily scheduler in the given location.
func NewDaily(loc *time.Location) *Daily {
	return &Daily{
		cron:     cron.New(cron.WithLocation(loc)),
		location: loc,
	}
}

// ScheduleSummary arms the daily summary at the given HH:MM local time,
// replacing any prior schedule.
func (d *Daily) ScheduleSummary(at string, task func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	hour, minute, err := config.ParseClock(at)
	if err != nil {
		return err
	}

	if d.summaryID != 0 {
		d.cron.Remove(d.summaryID)
	}

	expr := fmt.Sprintf("%d %d * * *", minute, hour)
	id, err := d.cron.AddFunc(expr, task)
	if err != nil {
		return fmt.Errorf("adding summary cron entry: %w", err)
	}
	d.summaryID = id
	log.Printf("daily summary scheduled at %s (%s)", at, d.location)
	return nil
}

// ScheduleReconcile runs task at the given interval.
func (d *Daily) ScheduleReconcile(every time.Duration, task func()) error {
	if every <= 0 {
		return fmt.Errorf("reconcile interval must be positive, got %v", every)
	}
	_, err := d.cron.AddFunc(fmt.Sprintf("@every %s", every), task)
	if err != nil {
		return fmt.Errorf("adding reconcile cron entry: %w", err)
	}
	return nil
}

// Start begins the cron scheduler.
func (d *Daily) Start() {
	d.cron.Start()
}

// Stop halts the cron scheduler.
func (d *Daily) Stop() {
	d.cron.Stop()
}
