package api

import (
	"context"
	"net/http"

	"github.com/iammorganparry/rewind/internal/capture"
	"github.com/iammorganparry/rewind/internal/memory"
	"github.com/iammorganparry/rewind/internal/models"
)

type SettingsHandler struct {
	ctx  context.Context
	svc  *memory.Service
	feed *capture.Feed
}

func NewSettingsHandler(ctx context.Context, svc *memory.Service, feed *capture.Feed) *SettingsHandler {
	return &SettingsHandler{ctx: ctx, svc: svc, feed: feed}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Settings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Put handles PUT /settings. The capture feed follows the saved interval
// and auto-capture switch.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req models.AppSettings
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	settings, err := h.svc.UpdateSettings(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if h.feed != nil {
		if err := h.feed.Apply(h.ctx, settings); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, settings)
}

// GetUIState handles GET /ui-state
func (h *SettingsHandler) GetUIState(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.UIState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// PutUIState handles PUT /ui-state
func (h *SettingsHandler) PutUIState(w http.ResponseWriter, r *http.Request) {
	var req models.UIState
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	state, err := h.svc.UpdateUIState(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}
