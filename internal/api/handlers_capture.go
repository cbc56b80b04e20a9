package api

import (
	"context"
	"net/http"

	"github.com/iammorganparry/rewind/internal/capture"
)

type CaptureHandler struct {
	ctx  context.Context
	feed *capture.Feed
}

// NewCaptureHandler binds the feed to ctx, which outlives single requests.
func NewCaptureHandler(ctx context.Context, feed *capture.Feed) *CaptureHandler {
	return &CaptureHandler{ctx: ctx, feed: feed}
}

// Status handles GET /capture
func (h *CaptureHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.feed.Status())
}

// Toggle handles POST /capture/toggle
func (h *CaptureHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if _, err := h.feed.Toggle(h.ctx); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.feed.Status())
}
