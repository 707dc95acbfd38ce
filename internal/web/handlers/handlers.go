// Package handlers provides HTTP handlers for the web interface
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"video-downloader/internal/downloader"
	"video-downloader/internal/history"
	"video-downloader/internal/network"
	"video-downloader/internal/platform"
	"video-downloader/internal/web/templates"
	"video-downloader/pkg/models"
)

// MessageNetworkLost is the toast raised when the service stops answering
const MessageNetworkLost = "network connection lost"

// Handlers contains all HTTP handlers and their dependencies
type Handlers struct {
	controller *downloader.Controller
	history    *history.Store
	catalog    *platform.Catalog
	monitor    *network.Monitor
	logger     *slog.Logger

	mu    sync.Mutex
	toast string
}

// NewHandlers creates a new handlers instance
func NewHandlers(controller *downloader.Controller, store *history.Store, catalog *platform.Catalog, monitor *network.Monitor) *Handlers {
	h := &Handlers{
		controller: controller,
		history:    store,
		catalog:    catalog,
		monitor:    monitor,
		logger:     slog.Default(),
	}

	monitor.Subscribe(func(reachable bool) {
		if !reachable {
			h.setToast(MessageNetworkLost)
		}
	})

	return h
}

func (h *Handlers) setToast(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.toast = message
}

func (h *Handlers) takeToast() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	message := h.toast
	h.toast = ""
	return message
}

// Home handles the home page (download form and history)
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := templates.HomeData{
		Platforms: h.catalog.Names(),
		Entries:   h.history.Entries(),
		Reachable: h.monitor.Reachable(),
		Toast:     h.takeToast(),
	}

	component := templates.Base("Video Downloader", templates.Home(data))
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Error("Failed to render home template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// SubmitDownload handles download form submission
func (h *Handlers) SubmitDownload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		templates.Toast("Failed to parse form data", false).Render(r.Context(), w)
		return
	}

	rawURL := r.FormValue("url")
	removeWatermark := parseBool(r.FormValue("remove_watermark"))
	qualityIndex, err := strconv.Atoi(r.FormValue("quality"))
	if err != nil {
		qualityIndex = 0
	}

	outcome, err := h.controller.Submit(r.Context(), rawURL, removeWatermark, qualityIndex)

	var validationErr *downloader.ValidationError
	switch {
	case errors.Is(err, downloader.ErrBusy):
		w.WriteHeader(http.StatusConflict)
		templates.Toast(downloader.FailureMessage(err), false).Render(r.Context(), w)
		return
	case errors.As(err, &validationErr):
		w.WriteHeader(http.StatusBadRequest)
		templates.Toast(validationErr.Message(), false).Render(r.Context(), w)
		return
	case err != nil:
		w.WriteHeader(http.StatusBadGateway)
	}

	result := downloader.Present(outcome, err)
	if err := templates.ResultModal(result).Render(r.Context(), w); err != nil {
		h.logger.Error("Failed to render result", "error", err)
		return
	}

	if outcome != nil && outcome.Success {
		entries := h.history.Record(outcome)
		if err := templates.HistoryList(entries, true).Render(r.Context(), w); err != nil {
			h.logger.Error("Failed to render history list", "error", err)
		}
	}
}

// SaveVideo saves the last successful download into the media library
func (h *Handlers) SaveVideo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	path, err := h.controller.SaveToMediaLibrary(r.Context(), h.controller.LastOutcome())
	if err != nil {
		var preconditionErr *downloader.PreconditionError
		if errors.As(err, &preconditionErr) {
			w.WriteHeader(http.StatusConflict)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		templates.Toast(downloader.FailureMessage(err), false).Render(r.Context(), w)
		return
	}

	h.logger.Info("Video saved to media library", "path", path)
	templates.Toast(downloader.MessageSaved, true).Render(r.Context(), w)
}

// HistoryDetail shows one history entry
func (h *Handlers) HistoryDetail(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid history ID", http.StatusBadRequest)
		return
	}

	entry, ok := h.history.Get(id)
	if !ok {
		http.Error(w, "History entry not found", http.StatusNotFound)
		return
	}

	if err := templates.HistoryDetail(entry, h.history.Describe(entry)).Render(r.Context(), w); err != nil {
		h.logger.Error("Failed to render history detail", "error", err, "id", id)
	}
}

// ConfirmClearHistory renders the confirmation prompt
func (h *Handlers) ConfirmClearHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.ConfirmClear().Render(r.Context(), w)
}

// ClearHistory wipes the history once the user has confirmed
func (h *Handlers) ClearHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := r.ParseForm(); err != nil || r.FormValue("confirm") != "yes" {
		w.WriteHeader(http.StatusBadRequest)
		templates.Toast("confirmation required", false).Render(r.Context(), w)
		return
	}

	h.history.Clear()
	h.logger.Info("Download history cleared")

	templates.Toast("history cleared", true).Render(r.Context(), w)
	templates.HistoryList(nil, true).Render(r.Context(), w)
}

// Refresh reloads history from storage and refreshes the platform list
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	entries := h.history.Load()
	h.catalog.Refresh(r.Context())

	templates.HistoryList(entries, true).Render(r.Context(), w)
	templates.Toast("refreshed", true).Render(r.Context(), w)
}

// GetHistory returns the history as JSON
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries := h.history.Entries()
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	h.writeJSON(w, entries)
}

// GetPlatforms returns the supported platform names as JSON
func (h *Handlers) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]any{
		"platforms": h.catalog.Names(),
	})
}

// GetStatus returns the controller state and service reachability as JSON
func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]any{
		"state":         h.controller.State(),
		"reachable":     h.monitor.Reachable(),
		"history_count": len(h.history.Entries()),
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
