package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/rewind/internal/insights"
	"github.com/iammorganparry/rewind/internal/memory"
)

type InsightHandler struct {
	svc *memory.Service
	loc *time.Location
}

func NewInsightHandler(svc *memory.Service, loc *time.Location) *InsightHandler {
	return &InsightHandler{svc: svc, loc: loc}
}

// Overview handles GET /insights
func (h *InsightHandler) Overview(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, insights.Analyze(entries, h.loc))
}

// Entry handles GET /entries/{id}/insight
func (h *InsightHandler) Entry(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	writeJSON(w, http.StatusOK, insights.ForEntry(*e))
}
