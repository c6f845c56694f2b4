package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/ops"
	"github.com/hpungsan/tabkeeper/internal/record"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	intentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	closedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "tabkeeper",
		Usage:   "Tab intent tracker with reminder follow-ups",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(db, cfg),
			trackCmd(db, cfg),
			doneCmd(db),
			snoozeCmd(db, cfg),
			statsCmd(db, cfg),
			tabsCmd(db, cfg),
			logCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the tabkeeper daemon (HTTP API, reminders, daily summary)",
		Action: func(c *cli.Context) error {
			return runDaemon(db, cfg)
		},
	}
}

// trackCmd creates the track command.
func trackCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Save an intent for a tab",
		ArgsUsage: "<tab-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "intent", Aliases: []string{"i"}, Required: true, Usage: "Intent: research|shopping|read_later|work_task|random"},
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Tab URL"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Tab title"},
			&cli.StringFlag{Name: "note", Aliases: []string{"n"}, Usage: "Free-form note (markdown)"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: func(c *cli.Context) error {
			tabID, err := tabIDArg(c)
			if err != nil {
				return outputError(err)
			}

			rec, err := ops.SaveIntent(db, cfg, ops.SaveIntentInput{
				TabID:  tabID,
				URL:    c.String("url"),
				Title:  c.String("title"),
				Intent: record.Intent(c.String("intent")),
				Note:   c.String("note"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(rec)
			}
			fmt.Printf("Tracking tab %d for %s\n", rec.TabID, intentStyle.Render(rec.Intent.Label()))
			if rec.NextReminderAt != nil {
				fmt.Printf("First reminder %s\n", mutedStyle.Render("at "+rec.NextReminderAt.Format("15:04")))
			}
			return nil
		},
	}
}

// doneCmd creates the done command.
func doneCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a tracked tab as done",
		ArgsUsage: "<tab-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: func(c *cli.Context) error {
			tabID, err := tabIDArg(c)
			if err != nil {
				return outputError(err)
			}

			rec, err := ops.MarkDone(db, tabID)
			if err != nil {
				return outputError(err)
			}
			if rec == nil {
				return outputError(errors.NewNotFound(tabID))
			}

			if c.Bool("json") {
				return outputJSON(rec)
			}
			fmt.Printf("%s tab %d\n", doneStyle.Render("Done:"), rec.TabID)
			return nil
		},
	}
}

// snoozeCmd creates the snooze command.
func snoozeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "snooze",
		Usage:     "Snooze reminders for a tracked tab",
		ArgsUsage: "<tab-id>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "minutes", Aliases: []string{"m"}, Usage: "Snooze duration in minutes (default: configured snooze length)"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: func(c *cli.Context) error {
			tabID, err := tabIDArg(c)
			if err != nil {
				return outputError(err)
			}

			minutes := c.Int("minutes")
			if minutes == 0 {
				minutes = cfg.DefaultSnoozeMinutes
			}

			rec, err := ops.Snooze(db, ops.SnoozeInput{TabID: tabID, Minutes: minutes})
			if err != nil {
				return outputError(err)
			}
			if rec == nil {
				return outputError(errors.NewNotFound(tabID))
			}

			if c.Bool("json") {
				return outputJSON(rec)
			}
			fmt.Printf("Snoozed tab %d for %d minutes\n", rec.TabID, minutes)
			return nil
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show today's tab counts",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: func(c *cli.Context) error {
			stats, err := ops.ComputeTodayStats(db, cfg)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(stats)
			}
			fmt.Println(headerStyle.Render("Today"))
			fmt.Printf("  %s opened\n", countStyle.Render(strconv.Itoa(stats.Total)))
			fmt.Printf("  %s still open\n", countStyle.Render(strconv.Itoa(stats.StillOpen)))
			fmt.Printf("  %s marked done\n", countStyle.Render(strconv.Itoa(stats.MarkedDone)))
			return nil
		},
	}
}

// tabsCmd creates the tabs command.
func tabsCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "tabs",
		Usage: "List tracked tabs, most recently opened first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Filter by status: open|done|closed"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum tabs to show"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: func(c *cli.Context) error {
			limit := c.Int("limit")
			if limit == 0 {
				limit = cfg.RecentTabsLimit
			}

			tabs, err := ops.RecentTabs(db, ops.RecentTabsInput{
				Status: record.Status(c.String("status")),
				Limit:  limit,
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(map[string]any{"tabs": tabs})
			}

			if len(tabs) == 0 {
				fmt.Println(mutedStyle.Render("No tracked tabs."))
				return nil
			}

			fmt.Println(headerStyle.Render("Tracked tabs"))
			for _, rec := range tabs {
				fmt.Printf("  %s %s %s %s\n",
					statusBadge(rec.Status),
					titleStyle.Render(displayTitle(rec)),
					intentStyle.Render(rec.Intent.Label()),
					mutedStyle.Render(rec.OpenedAt.Format("Jan 2 15:04")),
				)
			}
			return nil
		},
	}
}

// logCmd creates the log command.
func logCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Show today's delivered reminders",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
		},
		Action: func(c *cli.Context) error {
			entries, err := ops.DeliveriesToday(db, cfg)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(map[string]any{"reminders": entries})
			}

			if len(entries) == 0 {
				fmt.Println(mutedStyle.Render("No reminders delivered today."))
				return nil
			}

			fmt.Println(headerStyle.Render("Reminders today"))
			for _, e := range entries {
				at := e.DeliveredAt.Format("15:04")
				fmt.Printf("  %s tab %d (reminder %d)\n", mutedStyle.Render(at), e.TabID, e.Step)
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := err.(*errors.TrackerError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// tabIDArg parses the positional tab id argument.
func tabIDArg(c *cli.Context) (int, error) {
	if c.NArg() < 1 {
		return 0, errors.NewInvalidRequest("tab id argument is required")
	}
	tabID, err := strconv.Atoi(c.Args().First())
	if err != nil || tabID <= 0 {
		return 0, errors.NewInvalidRequest("tab id must be a positive integer")
	}
	return tabID, nil
}

// statusBadge renders a colored status marker.
func statusBadge(s record.Status) string {
	switch s {
	case record.StatusDone:
		return doneStyle.Render("✓")
	case record.StatusClosed:
		return closedStyle.Render("✗")
	default:
		return intentStyle.Render("●")
	}
}

// displayTitle returns the tab title, or its URL when untitled.
func displayTitle(rec *record.TabRecord) string {
	if rec.Title != "" {
		return rec.Title
	}
	if rec.URL != "" {
		return rec.URL
	}
	return fmt.Sprintf("tab %d", rec.TabID)
}
