// Package resources implements MCP resource handlers for session history.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (causal://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages causal resource endpoints.
type Handler struct {
	store *session.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// RecentSessionsResource returns the MCP resource definition for
// recent reasoning sessions.
func (h *Handler) RecentSessionsResource() mcp.Resource {
	return mcp.NewResource(
		"causal://sessions/recent",
		"Recent Reasoning Sessions",
		mcp.WithResourceDescription("The most recent causal reasoning sessions with their analysis counts"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleRecentSessions returns the recent sessions as JSON.
func (h *Handler) HandleRecentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.store == nil {
		return errorResource(req.Params.URI, "session history is disabled"), nil
	}

	sessions, err := h.store.RecentSessions(10)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if sessions == nil {
		sessions = []session.SessionSummary{}
	}
	stats, err := h.store.Stats()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	payload := struct {
		Stats    *session.Stats           `json:"stats"`
		Sessions []session.SessionSummary `json:"sessions"`
	}{Stats: stats, Sessions: sessions}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sessions: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
