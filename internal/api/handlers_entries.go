package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/rewind/internal/memory"
	"github.com/iammorganparry/rewind/internal/models"
)

type EntryHandler struct {
	svc *memory.Service
}

func NewEntryHandler(svc *memory.Service) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// List handles GET /entries
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	entryType := models.EntryType(q.Get("type"))
	if entryType != "" && !entryType.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid type")
		return
	}

	req := &models.ViewRequest{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Mode:     models.SearchMode(q.Get("mode")),
		GroupBy:  q.Get("group"),
		Filters:  models.SearchFilters{Type: entryType},
	}
	if start, end := q.Get("start"), q.Get("end"); start != "" || end != "" {
		req.Filters.DateRange = &models.DateRange{Start: start, End: end}
	}

	resp, err := h.svc.View(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /entries
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	e, err := h.svc.Add(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

// Get handles GET /entries/{id}
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.svc.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// Update handles PUT /entries/{id}
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	e, err := h.svc.Update(id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// Delete handles DELETE /entries/{id}
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /entries
func (h *EntryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.ClearAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// Suggestions handles GET /entries/suggestions
func (h *EntryHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	suggestions, err := h.svc.Suggestions(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

// Stats handles GET /stats
func (h *EntryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
