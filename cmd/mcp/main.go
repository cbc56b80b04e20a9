package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iammorganparry/rewind/internal/app"
	"github.com/iammorganparry/rewind/internal/mcp"
)

func main() {
	serverURL := os.Getenv("REWIND_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8742"
	}
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol; logs go to stderr.
	server := mcp.NewServer(serverURL, app.NewLogger(level, os.Stderr))
	if err := server.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mcp server error: %s\n", err)
		os.Exit(1)
	}
}
