package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"github.com/hpungsan/tabkeeper/internal/errors"
	"github.com/hpungsan/tabkeeper/internal/ops"
	"github.com/hpungsan/tabkeeper/internal/record"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
}

// PopupItem is one tracked tab row on the popup page.
type PopupItem struct {
	TabID       int
	Title       string
	URL         string
	IntentLabel string
	Status      record.Status
	OpenedAgo   string
	NoteHTML    template.HTML
}

// PopupPageData is the template data for the popup page.
type PopupPageData struct {
	PageData
	Items []PopupItem
	Stats *ops.TodayStats
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// newPopupItem converts a record into its popup row.
func newPopupItem(rec *record.TabRecord) PopupItem {
	return PopupItem{
		TabID:       rec.TabID,
		Title:       rec.Title,
		URL:         rec.URL,
		IntentLabel: rec.Intent.Label(),
		Status:      rec.Status,
		OpenedAgo:   formatAge(time.Since(rec.OpenedAt)),
		NoteHTML:    renderMarkdown(rec.Note),
	}
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"popup": "popup.html",
		"error": "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with the given status code.
func (r *Renderer) renderPage(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error as a full page for browser requests.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	tErr := errors.AsTrackerError(err)
	r.renderPage(w, tErr.Status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", tErr.Status),
			Version: r.version,
		},
		StatusCode: tErr.Status,
		Message:    tErr.Message,
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts note markdown to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatAge formats how long ago a tab was opened.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
