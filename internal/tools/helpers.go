package tools

import (
	"log"
	"strings"

	"github.com/danielsimonjr/deepthinking-mcp/internal/causal"
	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// recordRun stores an analysis run in the session history. The store is
// optional: with no store, or a failing one, the tool result is unaffected.
func recordRun(store *session.Store, sessionID string, g *causal.Graph, kind, query, summary string) {
	if store == nil {
		return
	}
	if _, err := store.RecordAnalysis(session.RecordParams{
		SessionID: sessionID,
		GraphID:   g.ID,
		Kind:      kind,
		Query:     query,
		Summary:   firstLine(summary),
	}); err != nil {
		log.Printf("warning: failed to record %s analysis: %v", kind, err)
	}
}

// firstLine truncates a report to its first line for compact history rows.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// setString renders a conditioning set for reports, using the empty-set
// symbol when nothing is conditioned on.
func setString(set []string) string {
	if len(set) == 0 {
		return "∅"
	}
	return "{" + strings.Join(set, ", ") + "}"
}

// pathString renders a path with arrows reflecting each hop's direction.
func pathString(p causal.Path) string {
	var sb strings.Builder
	for i, n := range p.Nodes {
		if i > 0 {
			if p.Directions[i-1] == causal.Forward {
				sb.WriteString(" -> ")
			} else {
				sb.WriteString(" <- ")
			}
		}
		sb.WriteString(n)
	}
	return sb.String()
}
