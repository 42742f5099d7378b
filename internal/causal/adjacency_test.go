package causal

import (
	"reflect"
	"testing"
)

// --- buildAdjacency ---

func TestBuildAdjacency_DirectedEdges(t *testing.T) {
	g := graphOf([]string{"A", "B"}, directed("A", "B"))
	a := buildAdjacency(g, true)

	if !reflect.DeepEqual(a.outgoing["A"], []string{"B"}) {
		t.Errorf("outgoing[A] = %v", a.outgoing["A"])
	}
	if len(a.outgoing["B"]) != 0 {
		t.Errorf("outgoing[B] = %v, want empty", a.outgoing["B"])
	}
	if !reflect.DeepEqual(a.incoming["B"], []string{"A"}) {
		t.Errorf("incoming[B] = %v", a.incoming["B"])
	}
}

func TestBuildAdjacency_UndirectedViewSymmetric(t *testing.T) {
	g := graphOf([]string{"A", "B"}, directed("A", "B"))
	a := buildAdjacency(g, false)

	if !reflect.DeepEqual(a.outgoing["B"], []string{"A"}) {
		t.Errorf("outgoing[B] = %v, want [A]", a.outgoing["B"])
	}
	if !reflect.DeepEqual(a.incoming["A"], []string{"B"}) {
		t.Errorf("incoming[A] = %v, want [B]", a.incoming["A"])
	}
}

func TestBuildAdjacency_BidirectedPopulatesBothDirections(t *testing.T) {
	g := graphOf([]string{"A", "B"}, bidirected("A", "B"))
	a := buildAdjacency(g, true)

	if !reflect.DeepEqual(a.outgoing["B"], []string{"A"}) {
		t.Errorf("outgoing[B] = %v, want [A]", a.outgoing["B"])
	}
	if !reflect.DeepEqual(a.incoming["A"], []string{"B"}) {
		t.Errorf("incoming[A] = %v, want [B]", a.incoming["A"])
	}
}

func TestBuildAdjacency_DanglingEdgesDroppedSilently(t *testing.T) {
	g := graphOf([]string{"A"}, directed("A", "ghost"), directed("ghost", "A"))
	a := buildAdjacency(g, true)

	if len(a.outgoing["A"]) != 0 || len(a.incoming["A"]) != 0 {
		t.Errorf("dangling edges leaked into adjacency: out=%v in=%v",
			a.outgoing["A"], a.incoming["A"])
	}
	if a.has("ghost") {
		t.Error("ghost should not be a node")
	}
}

func TestBuildAdjacency_NodeOrderPreserved(t *testing.T) {
	g := graphOf([]string{"z", "a", "m"})
	a := buildAdjacency(g, true)
	if !reflect.DeepEqual(a.nodes, []string{"z", "a", "m"}) {
		t.Errorf("nodes = %v, want insertion order", a.nodes)
	}
}

// --- descendants / ancestors ---

func TestDescendants_FollowsDirectedOnly(t *testing.T) {
	g := graphOf([]string{"A", "B", "C", "D"},
		directed("A", "B"), directed("B", "C"), bidirected("A", "D"))
	desc := descendants(g, "A")

	if !desc["B"] || !desc["C"] {
		t.Errorf("descendants(A) = %v, want B and C", desc)
	}
	if desc["D"] {
		t.Error("bidirected edges must not contribute descendants")
	}
	if desc["A"] {
		t.Error("a node is not its own descendant")
	}
}

func TestDescendants_TerminatesOnCycle(t *testing.T) {
	g := graphOf([]string{"A", "B"}, directed("A", "B"), directed("B", "A"))
	desc := descendants(g, "A")
	if !desc["B"] {
		t.Errorf("descendants(A) = %v, want B", desc)
	}
}

func TestAncestors_Chain(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("B", "C"))
	anc := ancestors(g, "C")
	if !anc["A"] || !anc["B"] || len(anc) != 2 {
		t.Errorf("ancestors(C) = %v, want A and B", anc)
	}
}
