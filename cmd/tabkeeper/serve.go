package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/host"
	"github.com/hpungsan/tabkeeper/internal/router"
	"github.com/hpungsan/tabkeeper/internal/schedule"
	"github.com/hpungsan/tabkeeper/internal/web"
)

// runDaemon wires up and runs the long-lived tabkeeper process: the
// HTTP API, in-process reminder timers, and the daily summary job.
func runDaemon(database *sql.DB, cfg *config.Config) error {
	tabs := host.NewTabTable()

	var notifier host.Notifier = host.LogNotifier{}
	if cfg.NotifyCommand != "" {
		notifier = host.CommandNotifier{Command: cfg.NotifyCommand}
	}

	timers := schedule.NewTimers()
	defer timers.Stop()

	rt := router.New(database, cfg, tabs, notifier, timers)

	// Re-arm timers for records written before this process started.
	restored, err := rt.RestoreReminders()
	if err != nil {
		return err
	}
	if restored > 0 {
		log.Printf("restored %d pending reminders", restored)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	daily := schedule.NewDaily(loc)
	err = daily.ScheduleSummary(cfg.SummaryTime, func() {
		if err := rt.HandleDailySummary(); err != nil {
			log.Printf("daily summary: %v", err)
		}
	})
	if err != nil {
		return err
	}

	// Records created through the CLI or MCP server carry a stamped due
	// time but no armed timer; the reconcile pass picks them up.
	if cfg.ReconcileMinutes > 0 {
		err = daily.ScheduleReconcile(time.Duration(cfg.ReconcileMinutes)*time.Minute, func() {
			if _, err := rt.RestoreReminders(); err != nil {
				log.Printf("reconcile: %v", err)
			}
		})
		if err != nil {
			return err
		}
	}

	daily.Start()
	defer daily.Stop()

	srv := web.NewServer(database, cfg, rt, Version)
	return web.Run(srv)
}
