package causal

// adjacency is the indexed view of a graph's edges: outgoing and incoming
// neighbor lists per node, built in O(V+E). When directed is false, every
// edge populates both directions of both maps. Undirected and bidirected
// edges always do, regardless of mode. Edges whose endpoints are not in the
// node list are dropped silently — the documented leniency toward dangling
// references.
type adjacency struct {
	nodes    []string
	index    map[string]int
	outgoing map[string][]string
	incoming map[string][]string
}

// buildAdjacency indexes g. Neighbor lists preserve edge insertion order so
// traversals are deterministic.
func buildAdjacency(g *Graph, directed bool) *adjacency {
	a := &adjacency{
		nodes:    make([]string, 0, len(g.Nodes)),
		index:    make(map[string]int, len(g.Nodes)),
		outgoing: make(map[string][]string, len(g.Nodes)),
		incoming: make(map[string][]string, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		if _, dup := a.index[n.ID]; dup {
			continue
		}
		a.index[n.ID] = len(a.nodes)
		a.nodes = append(a.nodes, n.ID)
		a.outgoing[n.ID] = nil
		a.incoming[n.ID] = nil
	}

	for _, e := range g.Edges {
		if _, ok := a.index[e.From]; !ok {
			continue
		}
		if _, ok := a.index[e.To]; !ok {
			continue
		}
		symmetric := !directed || e.Kind() != EdgeDirected
		a.outgoing[e.From] = append(a.outgoing[e.From], e.To)
		a.incoming[e.To] = append(a.incoming[e.To], e.From)
		if symmetric {
			a.outgoing[e.To] = append(a.outgoing[e.To], e.From)
			a.incoming[e.From] = append(a.incoming[e.From], e.To)
		}
	}
	return a
}

// neighbors returns the undirected neighbor list of id. Only meaningful on
// an adjacency built with directed=false, where outgoing and incoming agree.
func (a *adjacency) neighbors(id string) []string {
	return a.outgoing[id]
}

// has reports whether id is a node of the indexed graph.
func (a *adjacency) has(id string) bool {
	_, ok := a.index[id]
	return ok
}

// descendants returns every node reachable from start by following directed
// edges forward. Bidirected and undirected edges are ignored. start itself
// is not included. The visited set guarantees termination on cyclic input.
func descendants(g *Graph, start string) map[string]bool {
	children := directedChildren(g)
	seen := map[string]bool{start: true}
	out := make(map[string]bool)
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range children[cur] {
			if seen[c] {
				continue
			}
			seen[c] = true
			out[c] = true
			stack = append(stack, c)
		}
	}
	return out
}

// ancestors returns every node that can reach target via directed edges.
func ancestors(g *Graph, target string) map[string]bool {
	parents := directedParents(g)
	seen := map[string]bool{target: true}
	out := make(map[string]bool)
	stack := []string{target}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range parents[cur] {
			if seen[p] {
				continue
			}
			seen[p] = true
			out[p] = true
			stack = append(stack, p)
		}
	}
	return out
}

// directedChildren maps each node to the targets of its outgoing directed
// edges. Dangling edges contribute nothing.
func directedChildren(g *Graph) map[string][]string {
	nodes := nodeSet(g)
	out := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		if e.Kind() != EdgeDirected {
			continue
		}
		if !nodes[e.From] || !nodes[e.To] {
			continue
		}
		out[e.From] = append(out[e.From], e.To)
	}
	return out
}

// directedParents maps each node to the sources of its incoming directed edges.
func directedParents(g *Graph) map[string][]string {
	nodes := nodeSet(g)
	out := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		if e.Kind() != EdgeDirected {
			continue
		}
		if !nodes[e.From] || !nodes[e.To] {
			continue
		}
		out[e.To] = append(out[e.To], e.From)
	}
	return out
}

func nodeSet(g *Graph) map[string]bool {
	set := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		set[n.ID] = true
	}
	return set
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
