package tools

import (
	"context"

	"github.com/danielsimonjr/deepthinking-mcp/internal/export"
	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// ExportTool handles the causal_export MCP tool.
type ExportTool struct {
	store *session.Store
}

// NewExportTool creates an ExportTool.
func NewExportTool(store *session.Store) *ExportTool {
	return &ExportTool{store: store}
}

// Definition returns the MCP tool definition for causal_export.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("causal_export",
		mcp.WithDescription(
			"Render a causal graph as a Mermaid diagram, Graphviz DOT, or a Markdown summary table.",
		),
		mcp.WithString("graph",
			mcp.Required(),
			mcp.Description("Graph as JSON (see causal_centrality for the format)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: mermaid (default), dot, markdown"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID to record this export under"),
		),
	)
}

// Handle processes the causal_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := ParseGraph(req.GetString("graph", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := export.Format(req.GetString("format", string(export.FormatMermaid)))
	out, err := export.Render(g, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	recordRun(t.store, req.GetString("session_id", ""), g, "export", string(format), out)
	return mcp.NewToolResultText(out), nil
}
