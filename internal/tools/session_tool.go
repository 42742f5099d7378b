package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// SessionTool handles the causal_session MCP tool.
type SessionTool struct {
	store *session.Store
}

// NewSessionTool creates a SessionTool.
func NewSessionTool(store *session.Store) *SessionTool {
	return &SessionTool{store: store}
}

// Definition returns the MCP tool definition for causal_session.
func (t *SessionTool) Definition() mcp.Tool {
	return mcp.NewTool("causal_session",
		mcp.WithDescription(
			"Manage reasoning sessions: start one before a line of analysis, end it with a "+
				"conclusion, or review the analyses recorded under it.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("One of: start, end, history"),
		),
		mcp.WithString("title",
			mcp.Description("Session title (for start)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session identifier (for end and history)"),
		),
		mcp.WithString("summary",
			mcp.Description("What the analysis concluded (for end)"),
		),
	)
}

// Handle processes the causal_session tool call.
func (t *SessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultError("session history is disabled"), nil
	}

	switch action := req.GetString("action", ""); action {
	case "start":
		title := req.GetString("title", "")
		if title == "" {
			return mcp.NewToolResultError("'title' is required for start"), nil
		}
		id, err := t.store.StartSession(title)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to start session: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"Session started: %s\nPass session_id=%q to the causal_* tools to record analyses under it.",
			id, id)), nil

	case "end":
		id := req.GetString("session_id", "")
		if id == "" {
			return mcp.NewToolResultError("'session_id' is required for end"), nil
		}
		if err := t.store.EndSession(id, req.GetString("summary", "")); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to end session: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Session %s ended", id)), nil

	case "history":
		id := req.GetString("session_id", "")
		if id == "" {
			return mcp.NewToolResultError("'session_id' is required for history"), nil
		}
		analyses, err := t.store.SessionAnalyses(id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load history: %v", err)), nil
		}
		return mcp.NewToolResultText(formatHistory(id, analyses)), nil

	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q", action)), nil
	}
}

func formatHistory(id string, analyses []session.Analysis) string {
	if len(analyses) == 0 {
		return fmt.Sprintf("No analyses recorded for session %s", id)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session %s: %d analyses\n", id, len(analyses))
	for _, a := range analyses {
		fmt.Fprintf(&sb, "  [%s] %s (%s): %s\n", a.CreatedAt, a.Kind, a.Query, a.Summary)
	}
	return sb.String()
}
