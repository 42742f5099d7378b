// Package export renders causal graphs into shareable text formats:
// Mermaid flowcharts, Graphviz DOT, and Markdown summaries.
//
// Renderers are pure functions over a graph value; writing the output
// anywhere is the caller's concern.
package export

import (
	"fmt"
	"strings"

	"github.com/danielsimonjr/deepthinking-mcp/internal/causal"
)

// Format names a supported rendering target.
type Format string

const (
	FormatMermaid  Format = "mermaid"
	FormatDOT      Format = "dot"
	FormatMarkdown Format = "markdown"
)

// Render dispatches to the renderer for the requested format.
func Render(g *causal.Graph, format Format) (string, error) {
	switch format {
	case FormatMermaid:
		return Mermaid(g), nil
	case FormatDOT:
		return DOT(g), nil
	case FormatMarkdown:
		return Markdown(g), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

// Mermaid renders the graph as a top-down Mermaid flowchart. Bidirected
// edges use a double arrow, undirected edges a plain link.
func Mermaid(g *causal.Graph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for _, n := range g.Nodes {
		label := n.Name
		if label == "" {
			label = n.ID
		}
		if n.Type == causal.NodeLatent {
			fmt.Fprintf(&sb, "    %s((%q))\n", mermaidID(n.ID), label)
			continue
		}
		fmt.Fprintf(&sb, "    %s[%q]\n", mermaidID(n.ID), label)
	}
	for _, e := range g.Edges {
		switch e.Kind() {
		case causal.EdgeBidirected:
			fmt.Fprintf(&sb, "    %s <--> %s\n", mermaidID(e.From), mermaidID(e.To))
		case causal.EdgeUndirected:
			fmt.Fprintf(&sb, "    %s --- %s\n", mermaidID(e.From), mermaidID(e.To))
		default:
			fmt.Fprintf(&sb, "    %s --> %s\n", mermaidID(e.From), mermaidID(e.To))
		}
	}
	return sb.String()
}

// mermaidID strips characters Mermaid treats as syntax from node ids.
func mermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '[', ']', '(', ')', '{', '}', '"':
			return '_'
		}
		return r
	}, id)
}

// DOT renders the graph in Graphviz digraph syntax. Bidirected edges get
// dir=both, undirected edges dir=none, and latent nodes a dashed style.
func DOT(g *causal.Graph) string {
	var sb strings.Builder
	name := g.ID
	if name == "" {
		name = "causal"
	}
	fmt.Fprintf(&sb, "digraph %q {\n", name)
	for _, n := range g.Nodes {
		label := n.Name
		if label == "" {
			label = n.ID
		}
		attrs := fmt.Sprintf("label=%q", label)
		if n.Type == causal.NodeLatent {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&sb, "  %q [%s];\n", n.ID, attrs)
	}
	for _, e := range g.Edges {
		switch e.Kind() {
		case causal.EdgeBidirected:
			fmt.Fprintf(&sb, "  %q -> %q [dir=both];\n", e.From, e.To)
		case causal.EdgeUndirected:
			fmt.Fprintf(&sb, "  %q -> %q [dir=none];\n", e.From, e.To)
		default:
			fmt.Fprintf(&sb, "  %q -> %q;\n", e.From, e.To)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Markdown renders a node and edge summary table.
func Markdown(g *causal.Graph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Causal Graph: %s\n\n", g.ID)
	fmt.Fprintf(&sb, "**Nodes:** %d — **Edges:** %d\n\n", len(g.Nodes), len(g.Edges))

	if len(g.Nodes) > 0 {
		sb.WriteString("| Node | Name | Type |\n|------|------|------|\n")
		for _, n := range g.Nodes {
			typ := n.Type
			if typ == "" {
				typ = causal.NodeObserved
			}
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", n.ID, n.Name, typ)
		}
		sb.WriteString("\n")
	}

	if len(g.Edges) > 0 {
		sb.WriteString("| From | To | Type |\n|------|----|------|\n")
		for _, e := range g.Edges {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", e.From, e.To, e.Kind())
		}
	}
	return sb.String()
}
