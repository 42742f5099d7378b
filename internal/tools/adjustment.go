package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielsimonjr/deepthinking-mcp/internal/causal"
	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// AdjustmentTool handles the causal_adjustment MCP tool.
type AdjustmentTool struct {
	store *session.Store
}

// NewAdjustmentTool creates an AdjustmentTool.
func NewAdjustmentTool(store *session.Store) *AdjustmentTool {
	return &AdjustmentTool{store: store}
}

// Definition returns the MCP tool definition for causal_adjustment.
func (t *AdjustmentTool) Definition() mcp.Tool {
	return mcp.NewTool("causal_adjustment",
		mcp.WithDescription(
			"Find adjustment sets for estimating the causal effect of a treatment on an outcome: "+
				"backdoor sets, frontdoor mediators, and instrumental variables, with the resulting "+
				"adjustment formulas.",
		),
		mcp.WithString("graph",
			mcp.Required(),
			mcp.Description("Graph as JSON (see causal_centrality for the format)"),
		),
		mcp.WithString("treatment",
			mcp.Required(),
			mcp.Description("Treatment (exposure) node id"),
		),
		mcp.WithString("outcome",
			mcp.Required(),
			mcp.Description("Outcome node id"),
		),
		mcp.WithBoolean("all_sets",
			mcp.Description("List every valid backdoor set, not just a minimal one (default: false)"),
		),
		mcp.WithString("check_set",
			mcp.Description("Comma-separated node ids: verify this specific adjustment set instead of searching"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID to record this analysis under"),
		),
	)
}

// Handle processes the causal_adjustment tool call.
func (t *AdjustmentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := ParseGraph(req.GetString("graph", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	x := req.GetString("treatment", "")
	y := req.GetString("outcome", "")
	if x == "" || y == "" {
		return mcp.NewToolResultError("'treatment' and 'outcome' are required"), nil
	}
	if !g.HasNode(x) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown node %q", x)), nil
	}
	if !g.HasNode(y) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown node %q", y)), nil
	}

	cfg := causal.DefaultConfig()

	var report string
	if check := splitList(req.GetString("check_set", "")); len(check) > 0 {
		for _, id := range check {
			if !g.HasNode(id) {
				return mcp.NewToolResultError(fmt.Sprintf("unknown node %q", id)), nil
			}
		}
		report = formatSetCheck(g, x, y, check, cfg)
	} else {
		report = formatAdjustment(g, x, y, boolArg(req, "all_sets", false), cfg)
	}

	recordRun(t.store, req.GetString("session_id", ""), g, "adjustment",
		fmt.Sprintf("%s -> %s", x, y), report)
	return mcp.NewToolResultText(report), nil
}

func formatSetCheck(g *causal.Graph, x, y string, set []string, cfg causal.Config) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Adjustment analysis for the effect of %s on %s\n", x, y)
	if causal.IsValidBackdoorAdjustment(g, x, y, set, cfg) {
		formula := causal.GenerateBackdoorFormula(x, y, set)
		fmt.Fprintf(&sb, "\n%s is a valid backdoor adjustment set.\n", setString(set))
		fmt.Fprintf(&sb, "  Formula: %s\n", formula.Plain)
	} else {
		fmt.Fprintf(&sb, "\n%s is NOT a valid backdoor adjustment set: it leaves a backdoor path open or contains a descendant of %s.\n",
			setString(set), x)
	}
	return sb.String()
}

func formatAdjustment(g *causal.Graph, x, y string, allSets bool, cfg causal.Config) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Adjustment analysis for the effect of %s on %s\n", x, y)

	set, found := causal.FindBackdoorAdjustmentSet(g, x, y, cfg)
	if found {
		formula := causal.GenerateBackdoorFormula(x, y, set)
		fmt.Fprintf(&sb, "\nBackdoor criterion: satisfied by %s\n", setString(set))
		fmt.Fprintf(&sb, "  Formula: %s\n", formula.Plain)
		fmt.Fprintf(&sb, "  LaTeX:   %s\n", formula.Latex)
		if allSets {
			sets := causal.FindAllBackdoorSets(g, x, y, cfg)
			fmt.Fprintf(&sb, "  All valid sets up to size %d:\n", cfg.MaxSetSize)
			for _, s := range sets {
				fmt.Fprintf(&sb, "    %s\n", setString(s))
			}
		}
	} else {
		sb.WriteString("\nBackdoor criterion: no valid adjustment set found\n")
	}

	fd := causal.CheckFrontdoorCriterion(g, x, y, cfg)
	if fd.Satisfied {
		formula := causal.GenerateFrontdoorFormula(x, y, fd.Mediators[0])
		fmt.Fprintf(&sb, "\nFrontdoor criterion: satisfied via mediator(s) %s\n",
			setString(fd.Mediators))
		fmt.Fprintf(&sb, "  Formula: %s\n", formula.Plain)
	} else {
		fmt.Fprintf(&sb, "\nFrontdoor criterion: not satisfied (%s)\n", fd.Reason)
	}

	ivs := causal.FindInstrumentalVariables(g, x, y, cfg)
	if len(ivs) > 0 {
		fmt.Fprintf(&sb, "\nInstrumental variables: %s\n", setString(ivs))
	} else {
		sb.WriteString("\nInstrumental variables: none found\n")
	}
	return sb.String()
}
