package causal

import (
	"math"
	"testing"
)

// --- Test fixtures ---

// graphOf builds a graph whose nodes are named after their ids.
func graphOf(ids []string, edges ...Edge) *Graph {
	g := &Graph{ID: "test"}
	for _, id := range ids {
		g.Nodes = append(g.Nodes, Node{ID: id, Name: id})
	}
	g.Edges = edges
	return g
}

func directed(from, to string) Edge {
	return Edge{From: from, To: to, Type: EdgeDirected}
}

func bidirected(from, to string) Edge {
	return Edge{From: from, To: to, Type: EdgeBidirected}
}

// colliderGraph is A→C←B with no A–B edge.
func colliderGraph() *Graph {
	return graphOf([]string{"A", "B", "C"}, directed("A", "C"), directed("B", "C"))
}

// confounderGraph is the classic backdoor scenario: Z→X, Z→Y, X→Y.
func confounderGraph() *Graph {
	return graphOf([]string{"X", "Y", "Z"},
		directed("Z", "X"), directed("Z", "Y"), directed("X", "Y"))
}

// frontdoorGraph is X→M→Y with a latent confounder U↔X, U↔Y.
func frontdoorGraph() *Graph {
	g := graphOf([]string{"X", "M", "Y", "U"},
		directed("X", "M"), directed("M", "Y"),
		bidirected("U", "X"), bidirected("U", "Y"))
	g.Nodes[3].Type = NodeLatent
	return g
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
