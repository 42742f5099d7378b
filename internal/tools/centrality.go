package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielsimonjr/deepthinking-mcp/internal/causal"
	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// CentralityTool handles the causal_centrality MCP tool.
type CentralityTool struct {
	store *session.Store
}

// NewCentralityTool creates a CentralityTool with the given session store
// (nil disables history recording).
func NewCentralityTool(store *session.Store) *CentralityTool {
	return &CentralityTool{store: store}
}

// Definition returns the MCP tool definition for causal_centrality.
func (t *CentralityTool) Definition() mcp.Tool {
	return mcp.NewTool("causal_centrality",
		mcp.WithDescription(
			"Compute centrality measures over a causal graph to find its most influential variables. "+
				"Supports degree, betweenness, closeness, pagerank, eigenvector and katz centrality.",
		),
		mcp.WithString("graph",
			mcp.Required(),
			mcp.Description(`Graph as JSON: {"nodes":[{"id":"A"}],"edges":[{"from":"A","to":"B"}]}. Node types: observed (default), latent, intervention, outcome. Edge types: directed (default), bidirected, undirected.`),
		),
		mcp.WithString("measures",
			mcp.Description("Comma-separated measures to compute (default: all)"),
		),
		mcp.WithBoolean("normalize",
			mcp.Description("Normalize scores by graph size (default: false)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID to record this analysis under"),
		),
	)
}

// Handle processes the causal_centrality tool call.
func (t *CentralityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := ParseGraph(req.GetString("graph", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := causal.DefaultConfig()
	cfg.Normalize = boolArg(req, "normalize", false)

	// A measures argument replaces the default full set; only the
	// requested measures are computed and reported.
	requested := splitList(req.GetString("measures", ""))
	if len(requested) > 0 {
		cfg.Measures = nil
		for _, m := range requested {
			if !isCentralityMeasure(m) {
				return mcp.NewToolResultError(fmt.Sprintf("unknown centrality measure %q", m)), nil
			}
			cfg.Measures = append(cfg.Measures, causal.CentralityType(m))
		}
	}

	result := causal.ComputeAllCentrality(g, cfg)
	report := formatCentrality(g, result, cfg)

	recordRun(t.store, req.GetString("session_id", ""), g, "centrality",
		strings.Join(requested, ","), report)
	return mcp.NewToolResultText(report), nil
}

func isCentralityMeasure(m string) bool {
	for _, known := range causal.AllCentralityTypes() {
		if causal.CentralityType(m) == known {
			return true
		}
	}
	return false
}

func formatCentrality(g *causal.Graph, r *causal.CentralityResult, cfg causal.Config) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Centrality analysis of %q (%d nodes, %d edges)\n",
		g.ID, len(g.Nodes), len(g.Edges))
	if len(cfg.Measures) > 0 {
		lead := cfg.Measures[0]
		if mc := causal.MostCentralNode(g, lead, cfg); mc != nil {
			fmt.Fprintf(&sb, "Most central variable (%s): %s (%.4f)\n", lead, mc.ID, mc.Score)
		}
	}

	for _, measure := range causal.AllCentralityTypes() {
		top, ok := r.Top[measure]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "\n%s:\n", measure)
		if len(top) == 0 {
			sb.WriteString("  (no nodes)\n")
			continue
		}
		for i, ns := range top {
			fmt.Fprintf(&sb, "  %d. %s = %.4f\n", i+1, ns.ID, ns.Score)
		}
	}

	if len(r.Degrees) > 0 {
		sb.WriteString("\nDegree detail (in/out):\n")
		for _, id := range g.NodeIDs() {
			d := r.Degrees[id]
			fmt.Fprintf(&sb, "  %s: in=%g out=%g\n", id, d.In, d.Out)
		}
	}
	return sb.String()
}
