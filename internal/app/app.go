// Package app wires configuration, storage and services into one runnable
// unit shared by the server and the CLI.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/iammorganparry/rewind/internal/capture"
	"github.com/iammorganparry/rewind/internal/config"
	"github.com/iammorganparry/rewind/internal/memory"
	"github.com/iammorganparry/rewind/internal/observability"
	"github.com/iammorganparry/rewind/internal/store"
)

const metricsNamespace = "rewind"

type App struct {
	Config   *config.Config
	DB       *store.DB
	Service  *memory.Service
	Feed     *capture.Feed
	Watcher  *capture.DirWatcher // nil unless WatchDirs is set
	Metrics  *observability.Collector
	Location *time.Location
	Logger   *slog.Logger
}

// NewLogger returns a JSON logger writing to w at the named level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// New opens the database, builds the services and seeds an empty timeline
// when configured to.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	metrics := observability.NewCollector(metricsNamespace)
	svc := memory.NewService(
		store.NewEntryStore(db),
		store.NewKVStore(db),
		cfg.Settings(),
		loc,
		metrics,
		logger,
	)

	if cfg.SeedSamples {
		if err := seed(cfg, svc); err != nil {
			db.Close()
			return nil, err
		}
	}

	settings, err := svc.Settings()
	if err != nil {
		db.Close()
		return nil, err
	}
	feed := capture.NewFeed(svc, time.Duration(settings.CaptureInterval)*time.Second, metrics, logger)
	feed.Remember(svc)

	var watcher *capture.DirWatcher
	if len(cfg.WatchDirs) > 0 {
		watcher = capture.NewDirWatcher(svc, cfg.WatchDirs, metrics, logger)
	}

	return &App{
		Config:   cfg,
		DB:       db,
		Service:  svc,
		Feed:     feed,
		Watcher:  watcher,
		Metrics:  metrics,
		Location: loc,
		Logger:   logger,
	}, nil
}

func seed(cfg *config.Config, svc *memory.Service) error {
	seeds := memory.BuiltinSamples()
	if cfg.SeedFile != "" {
		loaded, err := memory.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		seeds = loaded
	}
	if _, err := svc.SeedIfEmpty(seeds); err != nil {
		return fmt.Errorf("seed timeline: %w", err)
	}
	return nil
}

// Close stops the capture feed and closes the database.
func (a *App) Close() error {
	a.Feed.Stop()
	return a.DB.Close()
}
