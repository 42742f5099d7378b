package causal

import (
	"math"
	"testing"
)

// --- Degree ---

func TestDegreeCentrality_DirectedCounts(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("A", "C"))
	deg := DegreeCentrality(g, false)

	approx(t, "A.Out", deg["A"].Out, 2)
	approx(t, "A.In", deg["A"].In, 0)
	approx(t, "B.In", deg["B"].In, 1)
	approx(t, "B.Total", deg["B"].Total, 1)
}

func TestDegreeCentrality_SymmetricEdgesCountBothWays(t *testing.T) {
	// An undirected edge contributes to the in- and out-degree of both
	// endpoints.
	g := graphOf([]string{"A", "B"}, Edge{From: "A", To: "B", Type: EdgeUndirected})
	deg := DegreeCentrality(g, false)

	for _, id := range []string{"A", "B"} {
		approx(t, id+".In", deg[id].In, 1)
		approx(t, id+".Out", deg[id].Out, 1)
		approx(t, id+".Total", deg[id].Total, 2)
	}
}

func TestDegreeCentrality_TotalOutMatchesEdgeInstances(t *testing.T) {
	// Total unnormalized out-degree equals directed edges plus two per
	// symmetric edge.
	g := graphOf([]string{"A", "B", "C"},
		directed("A", "B"), bidirected("B", "C"))
	deg := DegreeCentrality(g, false)

	total := 0.0
	for _, d := range deg {
		total += d.Out
	}
	approx(t, "sum of out-degrees", total, 3) // 1 directed + 2 for the bidirected
}

func TestDegreeCentrality_Normalized(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("A", "C"))
	deg := DegreeCentrality(g, true)
	approx(t, "A.Out normalized", deg["A"].Out, 1) // 2/(n-1)
}

func TestDegreeCentrality_DanglingEdgeIgnored(t *testing.T) {
	g := graphOf([]string{"A"}, directed("A", "ghost"))
	deg := DegreeCentrality(g, false)
	approx(t, "A.Out", deg["A"].Out, 0)
}

// --- Betweenness ---

func TestBetweennessCentrality_EdgelessAllZero(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"})
	for id, v := range BetweennessCentrality(g, false) {
		approx(t, "betweenness of "+id, v, 0)
	}
}

func TestBetweennessCentrality_PathGraphMiddle(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("B", "C"))
	bc := BetweennessCentrality(g, false)

	approx(t, "B", bc["B"], 1)
	approx(t, "A", bc["A"], 0)
	approx(t, "C", bc["C"], 0)
}

func TestBetweennessCentrality_StarNormalized(t *testing.T) {
	g := graphOf([]string{"hub", "a", "b", "c"},
		directed("hub", "a"), directed("hub", "b"), directed("hub", "c"))
	bc := BetweennessCentrality(g, true)

	// The hub sits on all three leaf pairs; normalized to 1.
	approx(t, "hub", bc["hub"], 1)
	approx(t, "a", bc["a"], 0)
}

func TestBetweennessCentrality_EveryNodeHasEntry(t *testing.T) {
	g := graphOf([]string{"A", "B", "isolated"}, directed("A", "B"))
	bc := BetweennessCentrality(g, false)
	if len(bc) != 3 {
		t.Fatalf("got %d entries, want 3", len(bc))
	}
}

// --- Closeness ---

func TestClosenessCentrality_PathGraph(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("B", "C"))
	cc := ClosenessCentrality(g, false)

	approx(t, "A", cc["A"], 2.0/3.0)
	approx(t, "B", cc["B"], 1)
	approx(t, "C", cc["C"], 2.0/3.0)
}

func TestClosenessCentrality_IsolatedNodeZero(t *testing.T) {
	g := graphOf([]string{"A", "B", "lonely"}, directed("A", "B"))
	cc := ClosenessCentrality(g, false)
	approx(t, "lonely", cc["lonely"], 0)
}

func TestClosenessCentrality_Normalized(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("B", "C"))
	cc := ClosenessCentrality(g, true)
	approx(t, "B normalized", cc["B"], 1.0*2.0/3.0)
}

// --- PageRank ---

func TestPageRank_SumsToOne(t *testing.T) {
	// Includes a dangling node (C has no outgoing edges).
	g := graphOf([]string{"A", "B", "C"},
		directed("A", "B"), directed("B", "C"))
	pr := PageRank(g, 0.85, 100, 1e-6)

	sum := 0.0
	for _, v := range pr {
		sum += v
	}
	if math.Abs(sum-1) > 1e-4 {
		t.Errorf("ranks sum to %v, want 1", sum)
	}
}

func TestPageRank_SymmetricPairEqual(t *testing.T) {
	g := graphOf([]string{"A", "B"}, directed("A", "B"), directed("B", "A"))
	pr := PageRank(g, 0.85, 100, 1e-6)
	approx(t, "A", pr["A"], 0.5)
	approx(t, "B", pr["B"], 0.5)
}

func TestPageRank_EmptyGraph(t *testing.T) {
	pr := PageRank(graphOf(nil), 0.85, 100, 1e-6)
	if len(pr) != 0 {
		t.Errorf("got %d entries, want 0", len(pr))
	}
}

func TestPageRank_SinkOutranksSource(t *testing.T) {
	g := graphOf([]string{"A", "B"}, directed("A", "B"))
	pr := PageRank(g, 0.85, 100, 1e-6)
	if pr["B"] <= pr["A"] {
		t.Errorf("rank(B)=%v should exceed rank(A)=%v", pr["B"], pr["A"])
	}
}

// --- Eigenvector ---

func TestEigenvectorCentrality_CycleUniform(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"},
		directed("A", "B"), directed("B", "C"), directed("C", "A"))
	ec := EigenvectorCentrality(g, 100, 1e-9)

	want := 1 / math.Sqrt(3)
	for _, id := range []string{"A", "B", "C"} {
		if math.Abs(ec[id]-want) > 1e-6 {
			t.Errorf("ec[%s] = %v, want %v", id, ec[id], want)
		}
	}
}

func TestEigenvectorCentrality_EveryNodeHasEntry(t *testing.T) {
	g := graphOf([]string{"A", "B", "alone"}, directed("A", "B"))
	ec := EigenvectorCentrality(g, 50, 1e-6)
	if len(ec) != 3 {
		t.Fatalf("got %d entries, want 3", len(ec))
	}
}

// --- Katz ---

func TestKatzCentrality_EdgelessAllOne(t *testing.T) {
	g := graphOf([]string{"A", "B"})
	kc := KatzCentrality(g, 0.1, 1.0, 100, 1e-6)
	approx(t, "A", kc["A"], 1)
	approx(t, "B", kc["B"], 1)
}

func TestKatzCentrality_ChainOrdering(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("B", "C"))
	kc := KatzCentrality(g, 0.1, 1.0, 100, 1e-6)

	if !(kc["C"] > kc["B"] && kc["B"] > kc["A"]) {
		t.Errorf("want katz(C) > katz(B) > katz(A), got %v %v %v", kc["C"], kc["B"], kc["A"])
	}
	approx(t, "max value", kc["C"], 1) // divided by the maximum
}

// --- ComputeAllCentrality ---

func TestComputeAllCentrality_SubsetOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Measures = []CentralityType{CentralityDegree, CentralityPageRank}

	res := ComputeAllCentrality(confounderGraph(), cfg)
	if len(res.Measures) != 2 {
		t.Fatalf("got %d measures, want 2", len(res.Measures))
	}
	if _, ok := res.Measures[CentralityBetweenness]; ok {
		t.Error("betweenness should not have been computed")
	}
	if res.Degrees == nil {
		t.Error("degree breakdown should be populated when degree is requested")
	}
}

func TestComputeAllCentrality_TopFiveCapped(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	g := graphOf(ids)
	cfg := DefaultConfig()
	cfg.Measures = []CentralityType{CentralityDegree}

	res := ComputeAllCentrality(g, cfg)
	if n := len(res.Top[CentralityDegree]); n != 5 {
		t.Errorf("top list has %d entries, want 5", n)
	}
}

func TestComputeAllCentrality_EmptyGraph(t *testing.T) {
	res := ComputeAllCentrality(graphOf(nil), DefaultConfig())
	for m, scores := range res.Measures {
		if len(scores) != 0 {
			t.Errorf("measure %s has %d entries on an empty graph", m, len(scores))
		}
	}
	if res.Elapsed < 0 {
		t.Error("elapsed time should be non-negative")
	}
}

// --- MostCentralNode ---

func TestMostCentralNode_EmptyGraphNil(t *testing.T) {
	for _, m := range AllCentralityTypes() {
		if got := MostCentralNode(graphOf(nil), m, DefaultConfig()); got != nil {
			t.Errorf("MostCentralNode(%s) on empty graph = %v, want nil", m, got)
		}
	}
}

func TestMostCentralNode_StarHub(t *testing.T) {
	g := graphOf([]string{"hub", "a", "b", "c"},
		directed("hub", "a"), directed("hub", "b"), directed("hub", "c"))
	got := MostCentralNode(g, CentralityDegree, DefaultConfig())
	if got == nil || got.ID != "hub" {
		t.Fatalf("MostCentralNode = %+v, want hub", got)
	}
}

func TestMostCentralNode_TieBreaksByInsertionOrder(t *testing.T) {
	g := graphOf([]string{"first", "second"}, directed("first", "second"))
	got := MostCentralNode(g, CentralityDegree, DefaultConfig())
	if got == nil || got.ID != "first" {
		t.Fatalf("MostCentralNode = %+v, want first", got)
	}
}
