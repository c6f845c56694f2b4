package web

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hpungsan/tabkeeper/internal/config"
	"github.com/hpungsan/tabkeeper/internal/router"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server that exposes the
// tab event API and the popup page.
func NewServer(database *sql.DB, cfg *config.Config, rt *router.Router, version string) *http.Server {
	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}

	// Create sub-FS for static files (strip "static/" prefix)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	renderer := NewRenderer(templateSub, version)

	h := &Handlers{
		db:       database,
		cfg:      cfg,
		router:   rt,
		renderer: renderer,
	}

	mux := http.NewServeMux()

	// Popup page
	mux.HandleFunc("GET /{$}", h.HandlePopup)

	// Tab event and query API, routed by the browser-side client
	mux.HandleFunc("GET /api/tabs", h.HandleListTabs)
	mux.HandleFunc("GET /api/tabs/{id}/intent", h.HandleGetIntent)
	mux.HandleFunc("POST /api/tabs/{id}/intent", h.HandleSaveIntent)
	mux.HandleFunc("POST /api/tabs/{id}/done", h.HandleMarkDone)
	mux.HandleFunc("POST /api/tabs/{id}/snooze", h.HandleSnooze)
	mux.HandleFunc("POST /api/tabs/{id}/activity", h.HandleActivity)
	mux.HandleFunc("DELETE /api/tabs/{id}", h.HandleTabRemoved)
	mux.HandleFunc("GET /api/stats/today", h.HandleTodayStats)
	mux.HandleFunc("POST /api/notifications/{id}/click", h.HandleNotificationClick)

	// Static file server
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	// Wrap with security headers
	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("tabkeeper listening at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
