package mcp

import (
	"context"
	"net/http"
	"net/url"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/iammorganparry/rewind/internal/models"
)

var entryTypes = []string{"clipboard", "file", "screenshot", "code", "note"}

// tool pairs an MCP definition with the REST call that answers it. call
// returns the text result and whether it is an error.
type tool struct {
	def  *mcpsdk.Tool
	call func(ctx context.Context, args map[string]any) (string, bool)
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func enum(desc string, values []string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}

func (s *Server) tools() []tool {
	return []tool{
		{
			def: &mcpsdk.Tool{
				Name: "rewind_search",
				Description: "Search the rewind timeline. Text mode matches substrings of the title, content, " +
					"file path, language, context and tags; semantic mode ranks entries by relevance to the query.",
				InputSchema: objectSchema(map[string]any{
					"query":    str("Free-text query"),
					"mode":     enum("Search mode (default text)", []string{"text", "semantic"}),
					"category": str("Sidebar category: all or an entry type"),
					"type":     enum("Only entries of this type", entryTypes),
					"start":    str("Earliest date or ISO-8601 timestamp, inclusive"),
					"end":      str("Latest date or ISO-8601 timestamp, inclusive"),
				}),
			},
			call: s.search,
		},
		{
			def: &mcpsdk.Tool{
				Name:        "rewind_get",
				Description: "Fetch one timeline entry by ID with its full content and metadata.",
				InputSchema: objectSchema(map[string]any{"id": str("Entry ID")}, "id"),
			},
			call: func(ctx context.Context, args map[string]any) (string, bool) {
				id := getString(args, "id")
				if id == "" {
					return "id is required", true
				}
				return s.do(ctx, http.MethodGet, "/entries/"+url.PathEscape(id), nil)
			},
		},
		{
			def: &mcpsdk.Tool{
				Name:        "rewind_add",
				Description: "Add an entry to the head of the timeline.",
				InputSchema: objectSchema(map[string]any{
					"type":     enum("Entry type", entryTypes),
					"title":    str("Short title"),
					"content":  str("Entry body"),
					"language": str("Programming language of code entries"),
					"context":  str("Where the entry came from"),
					"tags":     str("Comma-separated tags"),
				}, "type", "title", "content"),
			},
			call: func(ctx context.Context, args map[string]any) (string, bool) {
				return s.do(ctx, http.MethodPost, "/entries", models.AddRequest{
					Type:     models.EntryType(getString(args, "type")),
					Title:    getString(args, "title"),
					Content:  getString(args, "content"),
					Language: getString(args, "language"),
					Context:  getString(args, "context"),
					Tags:     getString(args, "tags"),
				})
			},
		},
		{
			def: &mcpsdk.Tool{
				Name:        "rewind_insights",
				Description: "Summarize the timeline, or one entry with suggested tags when id is given.",
				InputSchema: objectSchema(map[string]any{"id": str("Entry ID (optional)")}),
			},
			call: func(ctx context.Context, args map[string]any) (string, bool) {
				if id := getString(args, "id"); id != "" {
					return s.do(ctx, http.MethodGet, "/entries/"+url.PathEscape(id)+"/insight", nil)
				}
				return s.do(ctx, http.MethodGet, "/insights", nil)
			},
		},
		{
			def: &mcpsdk.Tool{
				Name:        "rewind_suggestions",
				Description: "List suggested search queries drawn from the timeline's titles.",
				InputSchema: objectSchema(map[string]any{}),
			},
			call: func(ctx context.Context, _ map[string]any) (string, bool) {
				return s.do(ctx, http.MethodGet, "/entries/suggestions", nil)
			},
		},
	}
}

// searchParams maps tool arguments to GET /entries query parameters.
var searchParams = map[string]string{
	"query":    "q",
	"mode":     "mode",
	"category": "category",
	"type":     "type",
	"start":    "start",
	"end":      "end",
}

func (s *Server) search(ctx context.Context, args map[string]any) (string, bool) {
	q := url.Values{}
	for arg, param := range searchParams {
		if v := getString(args, arg); v != "" {
			q.Set(param, v)
		}
	}
	return s.do(ctx, http.MethodGet, "/entries?"+q.Encode(), nil)
}

func getString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
