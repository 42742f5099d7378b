// Package tools provides MCP tool handlers for causal graph analysis.
//
// Each tool handler follows the same pattern:
// - A struct with dependencies (session.Store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Tools are pure analysis tools: they receive a graph as JSON, run the
// causal engine, and return a human-readable report. When a session store
// is present, each run is also recorded to the session history.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/danielsimonjr/deepthinking-mcp/internal/causal"
)

// graphInput is the wire shape of the "graph" tool argument.
type graphInput struct {
	ID    string      `json:"id"`
	Nodes []nodeInput `json:"nodes"`
	Edges []edgeInput `json:"edges"`
}

type nodeInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type edgeInput struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Type       string   `json:"type"`
	Weight     *float64 `json:"weight,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// parseNodeType maps the wire value to a node type; empty means observed.
func parseNodeType(s string) (causal.NodeType, bool) {
	switch causal.NodeType(s) {
	case "":
		return causal.NodeObserved, true
	case causal.NodeObserved, causal.NodeLatent, causal.NodeIntervention, causal.NodeOutcome:
		return causal.NodeType(s), true
	}
	return "", false
}

// parseEdgeType maps the wire value to an edge type; empty means directed.
func parseEdgeType(s string) (causal.EdgeType, bool) {
	switch causal.EdgeType(s) {
	case "":
		return causal.EdgeDirected, true
	case causal.EdgeDirected, causal.EdgeBidirected, causal.EdgeUndirected:
		return causal.EdgeType(s), true
	}
	return "", false
}

// ParseGraph decodes and validates a graph from its JSON representation.
// Validation is strict at this boundary: duplicate node ids, unknown
// node/edge types, and edges referencing missing nodes are all rejected
// so the engine only ever sees well-formed graphs.
func ParseGraph(raw string) (*causal.Graph, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("graph is empty")
	}

	var in graphInput
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("invalid graph JSON: %w", err)
	}
	if len(in.Nodes) == 0 {
		return nil, fmt.Errorf("graph has no nodes")
	}

	g := &causal.Graph{
		ID:    in.ID,
		Nodes: make([]causal.Node, 0, len(in.Nodes)),
		Edges: make([]causal.Edge, 0, len(in.Edges)),
	}
	if g.ID == "" {
		g.ID = "graph"
	}

	seen := make(map[string]bool, len(in.Nodes))
	for i, n := range in.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node %d has no id", i)
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true

		typ, ok := parseNodeType(n.Type)
		if !ok {
			return nil, fmt.Errorf("node %q has unknown type %q", n.ID, n.Type)
		}
		name := n.Name
		if name == "" {
			name = n.ID
		}
		g.Nodes = append(g.Nodes, causal.Node{ID: n.ID, Name: name, Type: typ})
	}

	for i, e := range in.Edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("edge %d is missing an endpoint", i)
		}
		if !seen[e.From] {
			return nil, fmt.Errorf("edge %d references unknown node %q", i, e.From)
		}
		if !seen[e.To] {
			return nil, fmt.Errorf("edge %d references unknown node %q", i, e.To)
		}
		typ, ok := parseEdgeType(e.Type)
		if !ok {
			return nil, fmt.Errorf("edge %q->%q has unknown type %q", e.From, e.To, e.Type)
		}
		g.Edges = append(g.Edges, causal.Edge{
			From:       e.From,
			To:         e.To,
			Type:       typ,
			Weight:     e.Weight,
			Confidence: e.Confidence,
		})
	}

	g.IsDAG = !hasDirectedCycle(g)
	return g, nil
}

// hasDirectedCycle reports whether the directed edges of g contain a cycle,
// using iterative three-color DFS.
func hasDirectedCycle(g *causal.Graph) bool {
	children := make(map[string][]string)
	for _, e := range g.Edges {
		if e.Kind() == causal.EdgeDirected {
			children[e.From] = append(children[e.From], e.To)
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.Nodes))

	for _, n := range g.Nodes {
		if color[n.ID] != white {
			continue
		}
		type frame struct {
			node string
			next int
		}
		stack := []frame{{node: n.ID}}
		color[n.ID] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			kids := children[top.node]
			if top.next < len(kids) {
				child := kids[top.next]
				top.next++
				switch color[child] {
				case gray:
					return true
				case white:
					color[child] = gray
					stack = append(stack, frame{node: child})
				}
				continue
			}
			color[top.node] = black
			stack = stack[:len(stack)-1]
		}
	}
	return false
}

// splitList parses a comma-separated node list argument, trimming spaces
// and dropping empty entries.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
