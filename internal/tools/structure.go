package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielsimonjr/deepthinking-mcp/internal/causal"
	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// StructureTool handles the causal_structure MCP tool.
type StructureTool struct {
	store *session.Store
}

// NewStructureTool creates a StructureTool.
func NewStructureTool(store *session.Store) *StructureTool {
	return &StructureTool{store: store}
}

// Definition returns the MCP tool definition for causal_structure.
func (t *StructureTool) Definition() mcp.Tool {
	return mcp.NewTool("causal_structure",
		mcp.WithDescription(
			"Analyze the structure of a causal graph: v-structures (colliders), Markov blankets, "+
				"minimal separating sets, and the conditional independencies the graph implies.",
		),
		mcp.WithString("graph",
			mcp.Required(),
			mcp.Description("Graph as JSON (see causal_centrality for the format)"),
		),
		mcp.WithString("analysis",
			mcp.Description("One of: v_structures (default), markov_blanket, separator, independencies"),
		),
		mcp.WithString("node",
			mcp.Description("Target node for markov_blanket"),
		),
		mcp.WithString("x",
			mcp.Description("First node set for separator, comma-separated"),
		),
		mcp.WithString("y",
			mcp.Description("Second node set for separator, comma-separated"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID to record this analysis under"),
		),
	)
}

// Handle processes the causal_structure tool call.
func (t *StructureTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := ParseGraph(req.GetString("graph", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := causal.DefaultConfig()
	analysis := req.GetString("analysis", "v_structures")
	var report, query string

	switch analysis {
	case "v_structures":
		report = formatVStructures(g)
		query = "v-structures"

	case "markov_blanket":
		node := req.GetString("node", "")
		if node == "" {
			return mcp.NewToolResultError("'node' is required for markov_blanket"), nil
		}
		blanket, ok := causal.ComputeMarkovBlanket(g, node)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown node %q", node)), nil
		}
		report = fmt.Sprintf("Markov blanket of %s: %s\n\nConditioning on these variables renders %s independent of the rest of the graph.",
			node, setString(blanket), node)
		query = "markov blanket of " + node

	case "separator":
		x := splitList(req.GetString("x", ""))
		y := splitList(req.GetString("y", ""))
		if len(x) == 0 || len(y) == 0 {
			return mcp.NewToolResultError("'x' and 'y' are required for separator"), nil
		}
		sep, found := causal.FindMinimalSeparator(g, x, y, cfg.MaxSetSize, cfg)
		if found {
			report = fmt.Sprintf("Minimal separator of %s and %s: %s",
				setString(x), setString(y), setString(sep))
		} else {
			report = fmt.Sprintf("No separating set of size <= %d renders %s and %s independent.",
				cfg.MaxSetSize, setString(x), setString(y))
		}
		query = fmt.Sprintf("separator %s / %s", setString(x), setString(y))

	case "independencies":
		report = formatIndependencies(g, cfg)
		query = "implied independencies"

	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown analysis %q", analysis)), nil
	}

	recordRun(t.store, req.GetString("session_id", ""), g, "structure", query, report)
	return mcp.NewToolResultText(report), nil
}

func formatVStructures(g *causal.Graph) string {
	vs := causal.FindVStructures(g)
	if len(vs) == 0 {
		return "No v-structures found."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d v-structure(s):\n", len(vs))
	for _, v := range vs {
		fmt.Fprintf(&sb, "  %s -> %s <- %s\n", v.Parent1, v.Collider, v.Parent2)
	}
	sb.WriteString("\nConditioning on a collider (or its descendants) opens the path between its parents.")
	return sb.String()
}

func formatIndependencies(g *causal.Graph, cfg causal.Config) string {
	inds := causal.GetImpliedIndependencies(g, cfg.MaxConditioningSize, cfg)
	if len(inds) == 0 {
		return "The graph implies no conditional independencies within the conditioning bound."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Implied conditional independencies (%d):\n", len(inds))
	for _, ind := range inds {
		fmt.Fprintf(&sb, "  %s ⊥ %s | %s\n", ind.X, ind.Y, setString(ind.Given))
	}
	return sb.String()
}
