package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/rewind/internal/capture"
	"github.com/iammorganparry/rewind/internal/memory"
	"github.com/iammorganparry/rewind/internal/observability"
	"github.com/iammorganparry/rewind/internal/store"
)

// NewRouter creates the Chi router with all routes and middleware. ctx
// bounds the capture feed when it is started over HTTP.
func NewRouter(
	ctx context.Context,
	db *store.DB,
	svc *memory.Service,
	feed *capture.Feed,
	metrics *observability.Collector,
	loc *time.Location,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS())
	r.Use(RequestID)
	r.Use(Logger(logger, metrics))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(db)
	entryH := NewEntryHandler(svc)
	insightH := NewInsightHandler(svc, loc)
	backupH := NewBackupHandler(svc)
	settingsH := NewSettingsHandler(ctx, svc, feed)

	r.Get("/health", healthH.Health)
	r.Method("GET", "/metrics", metrics.Handler())

	r.Route("/entries", func(r chi.Router) {
		r.Get("/", entryH.List)
		r.Post("/", entryH.Create)
		r.Delete("/", entryH.Clear)
		r.Get("/suggestions", entryH.Suggestions)
		r.Get("/{id}", entryH.Get)
		r.Put("/{id}", entryH.Update)
		r.Delete("/{id}", entryH.Delete)
		r.Get("/{id}/insight", insightH.Entry)
	})

	r.Get("/stats", entryH.Stats)
	r.Get("/insights", insightH.Overview)
	r.Get("/export", backupH.Export)
	r.Post("/import", backupH.Import)

	r.Get("/settings", settingsH.Get)
	r.Put("/settings", settingsH.Put)
	r.Get("/ui-state", settingsH.GetUIState)
	r.Put("/ui-state", settingsH.PutUIState)

	if feed != nil {
		captureH := NewCaptureHandler(ctx, feed)
		r.Route("/capture", func(r chi.Router) {
			r.Get("/", captureH.Status)
			r.Post("/toggle", captureH.Toggle)
		})
	}

	return r
}
