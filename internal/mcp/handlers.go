package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/ops"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// TrackRequest represents the arguments for tab_track.
type TrackRequest struct {
	TabID  int    `json:"tab_id"`
	URL    string `json:"url,omitempty"`
	Title  string `json:"title,omitempty"`
	Intent string `json:"intent"`
	Note   string `json:"note,omitempty"`
}

// DoneRequest represents the arguments for tab_done.
type DoneRequest struct {
	TabID int `json:"tab_id"`
}

// SnoozeRequest represents the arguments for tab_snooze.
type SnoozeRequest struct {
	TabID   int `json:"tab_id"`
	Minutes int `json:"minutes,omitempty"`
}

// ListRequest represents the arguments for tab_list.
type ListRequest struct {
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// Handler implementations

// HandleTrack handles the tab_track tool call.
func (h *Handlers) HandleTrack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TrackRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SaveIntent(h.db, h.cfg, ops.SaveIntentInput{
		TabID:  input.TabID,
		URL:    input.URL,
		Title:  input.Title,
		Intent: record.Intent(input.Intent),
		Note:   input.Note,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDone handles the tab_done tool call.
func (h *Handlers) HandleDone(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DoneRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.MarkDone(h.db, input.TabID)
	if err != nil {
		return errorResult(err), nil
	}
	if result == nil {
		return errorResult(errors.NewNotFound(input.TabID)), nil
	}

	return successResult(result)
}

// HandleSnooze handles the tab_snooze tool call.
func (h *Handlers) HandleSnooze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SnoozeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	minutes := input.Minutes
	if minutes == 0 {
		minutes = h.cfg.DefaultSnoozeMinutes
	}

	result, err := ops.Snooze(h.db, ops.SnoozeInput{
		TabID:   input.TabID,
		Minutes: minutes,
	})
	if err != nil {
		return errorResult(err), nil
	}
	if result == nil {
		return errorResult(errors.NewNotFound(input.TabID)), nil
	}

	return successResult(result)
}

// HandleStats handles the tab_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ComputeTodayStats(h.db, h.cfg)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the tab_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RecentTabs(h.db, ops.RecentTabsInput{
		Status: record.Status(input.Status),
		Limit:  input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"tabs": result})
}

// HandleLog handles the tab_log tool call.
func (h *Handlers) HandleLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.DeliveriesToday(h.db, h.cfg)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"reminders": result})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if tErr, ok := err.(*errors.TrackerError); ok {
		errorObj := map[string]any{
			"code":    tErr.Code,
			"message": tErr.Message,
			"status":  tErr.Status,
		}
		if tErr.Code != errors.ErrInternal && tErr.Details != nil {
			errorObj["details"] = tErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
