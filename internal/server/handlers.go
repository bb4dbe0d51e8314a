package server

import (
	"log/slog"
	"net/http"

	"github.com/omarshaarawi/livescore/internal/config"
	"github.com/omarshaarawi/livescore/internal/models"
	"github.com/omarshaarawi/livescore/internal/widget"
)

type SnapshotReader interface {
	Snapshot() models.Snapshot
}

type Refresher interface {
	Refresh()
}

type Handler struct {
	snapshots SnapshotReader
	refresher Refresher
	theme     config.Theme
	logger    *slog.Logger
}

func NewHandler(snapshots SnapshotReader, refresher Refresher, theme config.Theme, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{snapshots: snapshots, refresher: refresher, theme: theme, logger: logger}
}

// Page serves the widget. ?theme=light|dark overrides the configured theme.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	theme := h.theme
	if q := r.URL.Query().Get("theme"); q != "" {
		theme = config.ParseTheme(q)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if err := widget.RenderPage(w, widget.PageData{Theme: string(theme)}); err != nil {
		h.logger.Error("Error rendering widget page", "error", err)
	}
}

func (h *Handler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshots.Snapshot())
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		writeError(w, http.StatusServiceUnavailable, "REFRESH_UNAVAILABLE", "Refresh loop is not running")
		return
	}
	h.refresher.Refresh()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh requested"})
}

// Health reports 503 once the watchdog has marked the scoreboard stale.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Snapshot()
	if snap.Stale {
		writeError(w, http.StatusServiceUnavailable, "STALE", "No successful refresh within the staleness window")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"last_success": snap.LastSuccess,
	})
}
