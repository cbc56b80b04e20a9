package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iammorganparry/rewind/internal/api"
	"github.com/iammorganparry/rewind/internal/app"
	"github.com/iammorganparry/rewind/internal/config"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		app.NewLogger("info", os.Stdout).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logger
	logger := app.NewLogger(cfg.LogLevel, os.Stdout)

	// Storage and services
	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Live capture
	settings, err := a.Service.Settings()
	if err != nil {
		logger.Error("failed to read settings", "error", err)
		os.Exit(1)
	}
	if settings.AutoCapture {
		if err := a.Feed.Start(ctx); err != nil {
			logger.Error("failed to start live capture", "error", err)
		}
	}

	if a.Watcher != nil {
		if err := a.Watcher.Start(ctx); err != nil {
			logger.Error("failed to watch directories", "error", err)
		}
	}

	// Router
	router := api.NewRouter(ctx, a.DB, a.Service, a.Feed, a.Metrics, a.Location, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("rewind server starting", "addr", addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
