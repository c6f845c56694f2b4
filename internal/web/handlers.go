package web

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/host"
	"github.com/hpungsan/tabkeeper/internal/ops"
	"github.com/hpungsan/tabkeeper/internal/record"
	"github.com/hpungsan/tabkeeper/internal/router"
)

// Handlers contains HTTP route handlers for the tab API and popup.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	router   *router.Router
	renderer *Renderer
}

// saveIntentRequest is the body of POST /api/tabs/{id}/intent.
type saveIntentRequest struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Intent string `json:"intent"`
	Note   string `json:"note"`
}

// snoozeRequest is the body of POST /api/tabs/{id}/snooze.
type snoozeRequest struct {
	Minutes int `json:"minutes"`
}

// activityRequest is the body of POST /api/tabs/{id}/activity.
type activityRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// clickRequest is the body of POST /api/notifications/{id}/click.
type clickRequest struct {
	Button int `json:"button"`
}

// HandlePopup handles GET / — the popup page listing recent tabs.
func (h *Handlers) HandlePopup(w http.ResponseWriter, r *http.Request) {
	tabs, err := ops.RecentTabs(h.db, ops.RecentTabsInput{
		Status: record.StatusOpen,
		Limit:  h.cfg.RecentTabsLimit,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	stats, err := ops.ComputeTodayStats(h.db, h.cfg)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	items := make([]PopupItem, 0, len(tabs))
	for _, rec := range tabs {
		items = append(items, newPopupItem(rec))
	}

	h.renderer.renderPage(w, http.StatusOK, "popup", PopupPageData{
		PageData: PageData{
			Title:   "Open Tabs",
			Version: h.renderer.version,
		},
		Items: items,
		Stats: stats,
	})
}

// HandleListTabs handles GET /api/tabs — recent tracked tabs as JSON.
func (h *Handlers) HandleListTabs(w http.ResponseWriter, r *http.Request) {
	input := ops.RecentTabsInput{
		Limit: parseIntParam(r, "limit", h.cfg.RecentTabsLimit),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		input.Status = record.Status(s)
	}

	tabs, err := ops.RecentTabs(h.db, input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"tabs": tabs})
}

// HandleGetIntent handles GET /api/tabs/{id}/intent — tracked check plus record.
func (h *Handlers) HandleGetIntent(w http.ResponseWriter, r *http.Request) {
	tabID, err := pathTabID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	tracked, err := h.router.HasIntent(tabID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !tracked {
		renderJSON(w, http.StatusOK, map[string]any{"tracked": false})
		return
	}

	rec, err := ops.Get(h.db, tabID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"tracked": true, "record": rec})
}

// HandleSaveIntent handles POST /api/tabs/{id}/intent — track a tab.
func (h *Handlers) HandleSaveIntent(w http.ResponseWriter, r *http.Request) {
	tabID, err := pathTabID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req saveIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewInvalidRequest("request body must be valid JSON"))
		return
	}

	rec, err := h.router.SaveIntent(tabID, record.Intent(req.Intent), req.Note, host.TabInfo{
		URL:   req.URL,
		Title: req.Title,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	renderJSON(w, http.StatusCreated, rec)
}

// HandleMarkDone handles POST /api/tabs/{id}/done.
func (h *Handlers) HandleMarkDone(w http.ResponseWriter, r *http.Request) {
	tabID, err := pathTabID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.router.MarkDone(tabID); err != nil {
		h.writeError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"tabId": tabID, "status": record.StatusDone})
}

// HandleSnooze handles POST /api/tabs/{id}/snooze.
func (h *Handlers) HandleSnooze(w http.ResponseWriter, r *http.Request) {
	tabID, err := pathTabID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	req := snoozeRequest{Minutes: h.cfg.DefaultSnoozeMinutes}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, errors.NewInvalidRequest("request body must be valid JSON"))
			return
		}
	}

	if err := h.router.Snooze(tabID, req.Minutes); err != nil {
		h.writeError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"tabId": tabID, "snoozedMinutes": req.Minutes})
}

// HandleActivity handles POST /api/tabs/{id}/activity — a tab finished
// loading or regained focus.
func (h *Handlers) HandleActivity(w http.ResponseWriter, r *http.Request) {
	tabID, err := pathTabID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req activityRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, errors.NewInvalidRequest("request body must be valid JSON"))
			return
		}
	}

	if err := h.router.TabLoaded(tabID, host.TabInfo{URL: req.URL, Title: req.Title}); err != nil {
		h.writeError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"tabId": tabID})
}

// HandleTabRemoved handles DELETE /api/tabs/{id} — the tab was closed.
func (h *Handlers) HandleTabRemoved(w http.ResponseWriter, r *http.Request) {
	tabID, err := pathTabID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.router.TabRemoved(tabID); err != nil {
		h.writeError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"tabId": tabID})
}

// HandleTodayStats handles GET /api/stats/today.
func (h *Handlers) HandleTodayStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.router.TodayStats()
	if err != nil {
		h.writeError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, stats)
}

// HandleNotificationClick handles POST /api/notifications/{id}/click —
// a reminder notification button was pressed.
func (h *Handlers) HandleNotificationClick(w http.ResponseWriter, r *http.Request) {
	notificationID := r.PathValue("id")
	if notificationID == "" {
		h.writeError(w, errors.NewInvalidRequest("notification id is required"))
		return
	}

	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewInvalidRequest("request body must be valid JSON"))
		return
	}

	if err := h.router.NotificationClicked(notificationID, req.Button); err != nil {
		h.writeError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"id": notificationID, "button": req.Button})
}

// writeError writes a structured JSON error response.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	tErr := errors.AsTrackerError(err)
	renderJSON(w, tErr.Status, map[string]any{
		"error": map[string]any{
			"code":    string(tErr.Code),
			"message": tErr.Message,
			"status":  tErr.Status,
		},
	})
}

// pathTabID parses the {id} path segment as a tab id.
func pathTabID(r *http.Request) (int, error) {
	id := r.PathValue("id")
	tabID, err := strconv.Atoi(id)
	if err != nil || tabID <= 0 {
		return 0, errors.NewInvalidRequest("tab id must be a positive integer")
	}
	return tabID, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
