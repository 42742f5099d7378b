package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielsimonjr/deepthinking-mcp/internal/causal"
	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// DSeparationTool handles the causal_d_separation MCP tool.
type DSeparationTool struct {
	store *session.Store
}

// NewDSeparationTool creates a DSeparationTool.
func NewDSeparationTool(store *session.Store) *DSeparationTool {
	return &DSeparationTool{store: store}
}

// Definition returns the MCP tool definition for causal_d_separation.
func (t *DSeparationTool) Definition() mcp.Tool {
	return mcp.NewTool("causal_d_separation",
		mcp.WithDescription(
			"Check whether two variable sets are d-separated (conditionally independent) given a "+
				"conditioning set, with path-by-path blocking explanations.",
		),
		mcp.WithString("graph",
			mcp.Required(),
			mcp.Description("Graph as JSON (see causal_centrality for the format)"),
		),
		mcp.WithString("x",
			mcp.Required(),
			mcp.Description("First variable set, comma-separated node ids"),
		),
		mcp.WithString("y",
			mcp.Required(),
			mcp.Description("Second variable set, comma-separated node ids"),
		),
		mcp.WithString("z",
			mcp.Description("Conditioning set, comma-separated node ids (default: empty)"),
		),
		mcp.WithBoolean("show_paths",
			mcp.Description("Include the open and blocked paths in the report (default: true)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID to record this analysis under"),
		),
	)
}

// Handle processes the causal_d_separation tool call.
func (t *DSeparationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := ParseGraph(req.GetString("graph", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	q := causal.DSeparationQuery{
		X: splitList(req.GetString("x", "")),
		Y: splitList(req.GetString("y", "")),
		Z: splitList(req.GetString("z", "")),
	}
	if len(q.X) == 0 || len(q.Y) == 0 {
		return mcp.NewToolResultError("'x' and 'y' are required"), nil
	}
	for _, id := range append(append(append([]string{}, q.X...), q.Y...), q.Z...) {
		if !g.HasNode(id) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown node %q", id)), nil
		}
	}

	showPaths := boolArg(req, "show_paths", true)
	result := causal.CheckDSeparation(g, q, causal.DefaultConfig(), showPaths)
	report := formatDSeparation(q, result, showPaths)

	query := fmt.Sprintf("%s ⊥ %s | %s",
		setString(q.X), setString(q.Y), setString(q.Z))
	recordRun(t.store, req.GetString("session_id", ""), g, "d_separation", query, report)
	return mcp.NewToolResultText(report), nil
}

func formatDSeparation(q causal.DSeparationQuery, r *causal.DSeparationResult, showPaths bool) string {
	var sb strings.Builder
	verdict := "NOT d-separated"
	if r.Separated {
		verdict = "d-separated"
	}
	fmt.Fprintf(&sb, "%s and %s are %s given %s\n",
		setString(q.X), setString(q.Y), verdict, setString(q.Z))
	fmt.Fprintf(&sb, "\n%s\n", r.Explanation)

	if !showPaths {
		return sb.String()
	}
	if len(r.OpenPaths) > 0 {
		sb.WriteString("\nOpen paths:\n")
		for _, p := range r.OpenPaths {
			fmt.Fprintf(&sb, "  %s\n", pathString(p))
		}
	}
	if len(r.BlockedPaths) > 0 {
		sb.WriteString("\nBlocked paths:\n")
		for _, p := range r.BlockedPaths {
			fmt.Fprintf(&sb, "  %s (%s)\n", pathString(p), p.BlockReason)
		}
	}
	return sb.String()
}
