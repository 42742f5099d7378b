package causal

import (
	"fmt"
	"strings"
)

// isCollider reports whether the interior node at position i of p has both
// arrowheads meeting at it: the incoming hop arrived forward and the
// outgoing hop departs backward.
func isCollider(p Path, i int) bool {
	if i <= 0 || i >= len(p.Nodes)-1 {
		return false
	}
	return p.Directions[i-1] == Forward && p.Directions[i] == Backward
}

// blockPath classifies p under conditioning set z, returning the path with
// Blocked and BlockReason filled in. A two-node path is blocked iff either
// endpoint is conditioned on. On longer paths an interior non-collider
// blocks when it is in z; an interior collider blocks when neither it nor
// any of its descendants is in z.
func blockPath(g *Graph, p Path, z map[string]bool) Path {
	if len(p.Nodes) == 2 {
		for _, id := range p.Nodes {
			if z[id] {
				p.Blocked = true
				p.BlockReason = fmt.Sprintf("endpoint %s is conditioned on", id)
				return p
			}
		}
		p.Blocked = false
		return p
	}

	for i := 1; i < len(p.Nodes)-1; i++ {
		node := p.Nodes[i]
		if isCollider(p, i) {
			if z[node] {
				continue
			}
			opened := false
			for d := range descendants(g, node) {
				if z[d] {
					opened = true
					break
				}
			}
			if !opened {
				p.Blocked = true
				p.BlockReason = fmt.Sprintf("collider %s is not conditioned on (nor any descendant)", node)
				return p
			}
		} else if z[node] {
			p.Blocked = true
			p.BlockReason = fmt.Sprintf("non-collider %s is conditioned on", node)
			return p
		}
	}
	p.Blocked = false
	return p
}

// DSeparationQuery names the node sets of a d-separation test.
type DSeparationQuery struct {
	X []string `json:"x"`
	Y []string `json:"y"`
	Z []string `json:"z"`
}

// DSeparationResult reports whether X and Y are d-separated given Z, with a
// human-readable explanation. OpenPaths and BlockedPaths are populated only
// when the check is run with includePaths.
type DSeparationResult struct {
	Separated    bool   `json:"separated"`
	Explanation  string `json:"explanation"`
	OpenPaths    []Path `json:"openPaths,omitempty"`
	BlockedPaths []Path `json:"blockedPaths,omitempty"`
}

// CheckDSeparation enumerates every simple path between X and Y (bounded by
// cfg.MaxPathLength), classifies each as open or blocked under Z, and
// declares separation iff no path remains open. includePaths attaches the
// classified path lists to the result.
func CheckDSeparation(g *Graph, q DSeparationQuery, cfg Config, includePaths bool) *DSeparationResult {
	zset := toSet(q.Z)
	paths := FindAllPaths(g, q.X, q.Y, cfg.MaxPathLength)

	open := 0
	var openPaths, blockedPaths []Path
	for _, p := range paths {
		p = blockPath(g, p, zset)
		if p.Blocked {
			blockedPaths = append(blockedPaths, p)
		} else {
			open++
			openPaths = append(openPaths, p)
		}
	}

	res := &DSeparationResult{Separated: open == 0}
	given := "the empty set"
	if len(q.Z) > 0 {
		given = "{" + strings.Join(q.Z, ", ") + "}"
	}
	switch {
	case len(paths) == 0:
		res.Explanation = fmt.Sprintf(
			"No paths connect {%s} and {%s}; they are d-separated given %s.",
			strings.Join(q.X, ", "), strings.Join(q.Y, ", "), given)
	case res.Separated:
		res.Explanation = fmt.Sprintf(
			"All %d paths between {%s} and {%s} are blocked given %s; they are d-separated.",
			len(paths), strings.Join(q.X, ", "), strings.Join(q.Y, ", "), given)
	default:
		res.Explanation = fmt.Sprintf(
			"%d of %d paths between {%s} and {%s} remain open given %s; they are not d-separated.",
			open, len(paths), strings.Join(q.X, ", "), strings.Join(q.Y, ", "), given)
	}
	if includePaths {
		res.OpenPaths = openPaths
		res.BlockedPaths = blockedPaths
	}
	return res
}

// FindMinimalSeparator searches conditioning sets of size 0..maxSetSize in
// ascending size and returns the first one that d-separates x from y. The
// result is minimal by cardinality, not unique. The second return is false
// when no separator exists within the bound.
func FindMinimalSeparator(g *Graph, x, y []string, maxSetSize int, cfg Config) ([]string, bool) {
	excluded := toSet(x)
	for _, id := range y {
		excluded[id] = true
	}
	var candidates []string
	for _, id := range g.NodeIDs() {
		if !excluded[id] {
			candidates = append(candidates, id)
		}
	}

	seq := newSubsetSeq(candidates, 0, maxSetSize)
	for z, ok := seq.next(); ok; z, ok = seq.next() {
		res := CheckDSeparation(g, DSeparationQuery{X: x, Y: y, Z: z}, cfg, false)
		if res.Separated {
			return z, true
		}
	}
	return nil, false
}

// VStructure is a collider triple: two unlinked parents converging on a
// common child.
type VStructure struct {
	Parent1  string `json:"parent1"`
	Collider string `json:"collider"`
	Parent2  string `json:"parent2"`
}

// FindVStructures returns every triple A→C←B where A and B have no edge of
// any kind between them.
func FindVStructures(g *Graph) []VStructure {
	parents := directedParents(g)
	linked := make(map[[2]string]bool)
	nodes := nodeSet(g)
	for _, e := range g.Edges {
		if !nodes[e.From] || !nodes[e.To] {
			continue
		}
		linked[[2]string{e.From, e.To}] = true
		linked[[2]string{e.To, e.From}] = true
	}

	var out []VStructure
	for _, id := range g.NodeIDs() {
		ps := parents[id]
		for i := 0; i < len(ps); i++ {
			for j := i + 1; j < len(ps); j++ {
				if ps[i] == ps[j] || linked[[2]string{ps[i], ps[j]}] {
					continue
				}
				out = append(out, VStructure{Parent1: ps[i], Collider: id, Parent2: ps[j]})
			}
		}
	}
	return out
}

// ComputeMarkovBlanket returns the node's parents, children, and co-parents
// (other parents of its children), considering directed edges only. The
// second return is false when the node is not in the graph.
func ComputeMarkovBlanket(g *Graph, node string) ([]string, bool) {
	if !g.HasNode(node) {
		return nil, false
	}
	parents := directedParents(g)
	children := directedChildren(g)

	inBlanket := make(map[string]bool)
	var blanket []string
	add := func(id string) {
		if id == node || inBlanket[id] {
			return
		}
		inBlanket[id] = true
		blanket = append(blanket, id)
	}

	for _, p := range parents[node] {
		add(p)
	}
	for _, c := range children[node] {
		add(c)
	}
	for _, c := range children[node] {
		for _, cp := range parents[c] {
			add(cp)
		}
	}
	return blanket, true
}

// ImpliedIndependence records one conditional independence the graph
// implies: X is d-separated from Y given the conditioning set.
type ImpliedIndependence struct {
	X     string   `json:"x"`
	Y     string   `json:"y"`
	Given []string `json:"given"`
}

// GetImpliedIndependencies tests every node pair against every conditioning
// subset of the remaining nodes up to maxConditioningSize and records the
// combinations that d-separate. Intentionally exponential; intended only for
// small diagnostic graphs.
func GetImpliedIndependencies(g *Graph, maxConditioningSize int, cfg Config) []ImpliedIndependence {
	ids := g.NodeIDs()
	var out []ImpliedIndependence
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			x, y := ids[i], ids[j]
			var rest []string
			for _, id := range ids {
				if id != x && id != y {
					rest = append(rest, id)
				}
			}
			seq := newSubsetSeq(rest, 0, maxConditioningSize)
			for z, ok := seq.next(); ok; z, ok = seq.next() {
				res := CheckDSeparation(g, DSeparationQuery{X: []string{x}, Y: []string{y}, Z: z}, cfg, false)
				if res.Separated {
					out = append(out, ImpliedIndependence{X: x, Y: y, Given: z})
				}
			}
		}
	}
	return out
}
