package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/iammorganparry/rewind/internal/backup"
	"github.com/iammorganparry/rewind/internal/memory"
)

type BackupHandler struct {
	svc *memory.Service
}

func NewBackupHandler(svc *memory.Service) *BackupHandler {
	return &BackupHandler{svc: svc}
}

// Export handles GET /export
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.FileName(time.Now())))
	if err := h.svc.Export(w); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Import handles POST /import. The body is a backup document.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Import(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
