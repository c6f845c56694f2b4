package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var trackToolDef = mcp.NewTool("tab_track",
	mcp.WithDescription("Save an intent for a browser tab so it gets reminder follow-ups. Fails if the tab already has an open record."),
	mcp.WithNumber("tab_id",
		mcp.Required(),
		mcp.Description("Browser tab id (positive integer)"),
	),
	mcp.WithString("intent",
		mcp.Required(),
		mcp.Description("Why the tab is open"),
		mcp.Enum("research", "shopping", "read_later", "work_task", "random"),
	),
	mcp.WithString("url",
		mcp.Description("Tab URL"),
	),
	mcp.WithString("title",
		mcp.Description("Tab title"),
	),
	mcp.WithString("note",
		mcp.Description("Optional free-form note (markdown, max 500 chars)"),
	),
)

var doneToolDef = mcp.NewTool("tab_done",
	mcp.WithDescription("Mark a tracked tab as done. Stops further reminders for it."),
	mcp.WithNumber("tab_id",
		mcp.Required(),
		mcp.Description("Browser tab id"),
	),
)

var snoozeToolDef = mcp.NewTool("tab_snooze",
	mcp.WithDescription("Snooze reminders for a tracked tab for the given number of minutes."),
	mcp.WithNumber("tab_id",
		mcp.Required(),
		mcp.Description("Browser tab id"),
	),
	mcp.WithNumber("minutes",
		mcp.Description("Snooze duration in minutes (defaults to the configured snooze length)"),
	),
)

var statsToolDef = mcp.NewTool("tab_stats",
	mcp.WithDescription("Get today's tab counts: opened, still open, and marked done."),
)

var listToolDef = mcp.NewTool("tab_list",
	mcp.WithDescription("List tracked tabs, most recently opened first."),
	mcp.WithString("status",
		mcp.Description("Filter by status"),
		mcp.Enum("open", "done", "closed"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of tabs to return"),
	),
)

var logToolDef = mcp.NewTool("tab_log",
	mcp.WithDescription("List today's delivered reminders."),
)
