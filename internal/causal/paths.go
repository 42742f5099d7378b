package causal

// hop is one traversable step: the neighbor reached and the direction of the
// traversal relative to the underlying edge's stored orientation. The tag is
// what lets the d-separation engine recognize colliders later.
type hop struct {
	to  string
	dir Direction
}

// hopLists builds the bidirectional traversal structure: every edge can be
// walked both ways, tagged forward (from→to) or backward (to→from). Dangling
// edges contribute nothing.
func hopLists(g *Graph) map[string][]hop {
	nodes := nodeSet(g)
	hops := make(map[string][]hop, len(g.Nodes))
	for _, e := range g.Edges {
		if !nodes[e.From] || !nodes[e.To] {
			continue
		}
		hops[e.From] = append(hops[e.From], hop{to: e.To, dir: Forward})
		hops[e.To] = append(hops[e.To], hop{to: e.From, dir: Backward})
	}
	return hops
}

// FindAllPaths enumerates every simple path (no repeated node) from any
// source to any target, walking edges in either direction and tagging each
// hop forward or backward. A path stops extending once it reaches a target.
// maxLength bounds the number of edges per path (DefaultConfig().MaxPathLength
// when <= 0); it is the only guard against the exponential worst case on
// dense graphs.
//
// The search uses an explicit stack rather than recursion so large graphs
// cannot exhaust the call stack.
func FindAllPaths(g *Graph, sources, targets []string, maxLength int) []Path {
	if maxLength <= 0 {
		maxLength = DefaultConfig().MaxPathLength
	}
	hops := hopLists(g)
	nodes := nodeSet(g)
	targetSet := toSet(targets)

	var paths []Path
	for _, s := range sources {
		if !nodes[s] || targetSet[s] {
			continue
		}
		paths = append(paths, pathsFrom(s, targetSet, hops, maxLength)...)
	}
	return paths
}

// frame is one level of the iterative depth-first search: a node and the
// index of the next hop to try from it.
type frame struct {
	node string
	next int
}

func pathsFrom(source string, targets map[string]bool, hops map[string][]hop, maxLength int) []Path {
	var found []Path

	stack := []frame{{node: source}}
	pathNodes := []string{source}
	var pathDirs []Direction
	onPath := map[string]bool{source: true}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		list := hops[top.node]

		if top.next >= len(list) {
			// Exhausted this node; backtrack.
			stack = stack[:len(stack)-1]
			onPath[top.node] = false
			pathNodes = pathNodes[:len(pathNodes)-1]
			if len(pathDirs) > 0 {
				pathDirs = pathDirs[:len(pathDirs)-1]
			}
			continue
		}

		h := list[top.next]
		top.next++

		if onPath[h.to] || len(pathDirs)+1 > maxLength {
			continue
		}

		if targets[h.to] {
			p := Path{
				Nodes:      make([]string, 0, len(pathNodes)+1),
				Directions: make([]Direction, 0, len(pathDirs)+1),
			}
			p.Nodes = append(append(p.Nodes, pathNodes...), h.to)
			p.Directions = append(append(p.Directions, pathDirs...), h.dir)
			found = append(found, p)
			continue
		}

		stack = append(stack, frame{node: h.to})
		pathNodes = append(pathNodes, h.to)
		pathDirs = append(pathDirs, h.dir)
		onPath[h.to] = true
	}

	return found
}
