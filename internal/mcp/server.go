// Package mcp exposes the rewind timeline to MCP clients over stdio. Tool
// calls are answered by the rewind HTTP API.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sony/gobreaker"
)

const (
	serverName    = "rewind"
	serverVersion = "1.0.0"
)

type Server struct {
	serverURL string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
	logger    *slog.Logger
	mcp       *mcpsdk.Server
}

// NewServer builds a server that delegates to the API at serverURL.
func NewServer(serverURL string, logger *slog.Logger) *Server {
	s := &Server{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
		breaker:   newBreaker(logger),
		logger:    logger,
		mcp:       mcpsdk.NewServer(&mcpsdk.Implementation{Name: serverName, Version: serverVersion}, nil),
	}
	for _, t := range s.tools() {
		s.mcp.AddTool(t.def, s.handler(t))
	}
	return s
}

// Run serves stdin/stdout until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect serves a single session over t.
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

func (s *Server) handler(t tool) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		args := map[string]any{}
		if raw := req.Params.Arguments; len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
		}

		text, isError := t.call(ctx, args)
		if isError {
			s.logger.Warn("tool call failed", "tool", t.def.Name, "result", text)
		}
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
			IsError: isError,
		}, nil
	}
}

// statusError carries a 4xx/5xx API response. Only 5xx counts against the
// breaker.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string { return e.body }

func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "rewind-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.code < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// do calls the rewind API and returns the response body. Transport errors,
// 4xx/5xx statuses and an open breaker are reported as tool errors.
func (s *Server) do(ctx context.Context, method, path string, body any) (string, bool) {
	out, err := s.breaker.Execute(func() (any, error) {
		return s.roundTrip(ctx, method, path, body)
	})
	if err != nil {
		return err.Error(), true
	}
	return out.(string), false
}

func (s *Server) roundTrip(ctx context.Context, method, path string, body any) (string, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("marshal error: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.serverURL+path, r)
	if err != nil {
		return "", fmt.Errorf("request error: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &statusError{code: resp.StatusCode, body: string(respBody)}
	}
	return string(respBody), nil
}
