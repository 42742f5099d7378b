package causal

import (
	"reflect"
	"testing"
)

// --- FindAllPaths ---

func TestFindAllPaths_ChainForward(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("B", "C"))
	paths := FindAllPaths(g, []string{"A"}, []string{"C"}, 10)

	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	if !reflect.DeepEqual(paths[0].Nodes, []string{"A", "B", "C"}) {
		t.Errorf("nodes = %v", paths[0].Nodes)
	}
	if !reflect.DeepEqual(paths[0].Directions, []Direction{Forward, Forward}) {
		t.Errorf("directions = %v", paths[0].Directions)
	}
}

func TestFindAllPaths_ChainBackwardTags(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("B", "C"))
	paths := FindAllPaths(g, []string{"C"}, []string{"A"}, 10)

	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	if !reflect.DeepEqual(paths[0].Directions, []Direction{Backward, Backward}) {
		t.Errorf("directions = %v", paths[0].Directions)
	}
}

func TestFindAllPaths_DiamondTwoRoutes(t *testing.T) {
	g := graphOf([]string{"A", "B", "C", "D"},
		directed("A", "B"), directed("A", "C"),
		directed("B", "D"), directed("C", "D"))
	paths := FindAllPaths(g, []string{"A"}, []string{"D"}, 10)
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}
}

func TestFindAllPaths_StopsAtFirstTarget(t *testing.T) {
	g := graphOf([]string{"A", "B", "C"}, directed("A", "B"), directed("B", "C"))
	paths := FindAllPaths(g, []string{"A"}, []string{"B", "C"}, 10)

	// The path ends at B; it is not extended onward to C.
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	if !reflect.DeepEqual(paths[0].Nodes, []string{"A", "B"}) {
		t.Errorf("nodes = %v, want [A B]", paths[0].Nodes)
	}
}

func TestFindAllPaths_MaxLengthBounds(t *testing.T) {
	g := graphOf([]string{"A", "B", "C", "D"},
		directed("A", "B"), directed("B", "C"), directed("C", "D"))

	if paths := FindAllPaths(g, []string{"A"}, []string{"D"}, 2); len(paths) != 0 {
		t.Errorf("maxLength=2 should prune the 3-edge path, got %d", len(paths))
	}
	if paths := FindAllPaths(g, []string{"A"}, []string{"D"}, 3); len(paths) != 1 {
		t.Errorf("maxLength=3 should admit the path, got %d", len(paths))
	}
}

func TestFindAllPaths_SimplePathsOnly(t *testing.T) {
	// A two-node cycle must not loop forever or revisit nodes.
	g := graphOf([]string{"A", "B", "C"},
		directed("A", "B"), directed("B", "A"), directed("B", "C"))
	paths := FindAllPaths(g, []string{"A"}, []string{"C"}, 10)

	for _, p := range paths {
		seen := map[string]bool{}
		for _, id := range p.Nodes {
			if seen[id] {
				t.Fatalf("path %v repeats node %s", p.Nodes, id)
			}
			seen[id] = true
		}
	}
}

func TestFindAllPaths_SourceEqualsTargetSkipped(t *testing.T) {
	g := graphOf([]string{"A", "B"}, directed("A", "B"))
	if paths := FindAllPaths(g, []string{"A"}, []string{"A"}, 10); len(paths) != 0 {
		t.Errorf("got %d paths from A to itself, want 0", len(paths))
	}
}

func TestFindAllPaths_UnknownSourceIgnored(t *testing.T) {
	g := graphOf([]string{"A", "B"}, directed("A", "B"))
	if paths := FindAllPaths(g, []string{"ghost"}, []string{"B"}, 10); len(paths) != 0 {
		t.Errorf("got %d paths, want 0", len(paths))
	}
}

func TestFindAllPaths_BidirectedTraversableBothWays(t *testing.T) {
	g := graphOf([]string{"A", "B"}, bidirected("A", "B"))

	forward := FindAllPaths(g, []string{"A"}, []string{"B"}, 10)
	backward := FindAllPaths(g, []string{"B"}, []string{"A"}, 10)
	if len(forward) != 1 || len(backward) != 1 {
		t.Fatalf("got %d and %d paths, want 1 and 1", len(forward), len(backward))
	}
	if forward[0].Directions[0] != Forward || backward[0].Directions[0] != Backward {
		t.Errorf("direction tags = %v / %v", forward[0].Directions, backward[0].Directions)
	}
}

func TestFindAllPaths_DefaultBoundWhenZero(t *testing.T) {
	g := graphOf([]string{"A", "B"}, directed("A", "B"))
	if paths := FindAllPaths(g, []string{"A"}, []string{"B"}, 0); len(paths) != 1 {
		t.Errorf("zero maxLength should fall back to the default bound")
	}
}

// --- collider tagging ---

func TestIsCollider_MeetingArrowheads(t *testing.T) {
	p := Path{
		Nodes:      []string{"A", "C", "B"},
		Directions: []Direction{Forward, Backward},
	}
	if !isCollider(p, 1) {
		t.Error("C should be a collider on A→C←B")
	}
	if isCollider(p, 0) || isCollider(p, 2) {
		t.Error("endpoints are never colliders")
	}
}

func TestIsCollider_ChainIsNot(t *testing.T) {
	p := Path{
		Nodes:      []string{"A", "B", "C"},
		Directions: []Direction{Forward, Forward},
	}
	if isCollider(p, 1) {
		t.Error("B on a chain is not a collider")
	}
}
