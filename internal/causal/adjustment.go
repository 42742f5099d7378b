package causal

import (
	"fmt"
	"strings"
)

// Mutilate returns a new graph with every edge removed whose target is an
// intervened variable — Pearl's overbar operator, the graph surgery behind
// do(X=x). The operation is idempotent and touches nothing else.
func Mutilate(g *Graph, interventions []Intervention) *Graph {
	targets := make(map[string]bool, len(interventions))
	for _, iv := range interventions {
		targets[iv.Target] = true
	}
	return removeEdgesInto(g, targets)
}

// MutilateAt is Mutilate for a plain list of intervened node ids.
func MutilateAt(g *Graph, nodes ...string) *Graph {
	return removeEdgesInto(g, toSet(nodes))
}

func removeEdgesInto(g *Graph, targets map[string]bool) *Graph {
	out := &Graph{ID: g.ID, Nodes: g.Nodes, IsDAG: g.IsDAG}
	for _, e := range g.Edges {
		if targets[e.To] {
			continue
		}
		out.Edges = append(out.Edges, e)
	}
	return out
}

// removeEdgesOutOf drops directed edges leaving any of the given nodes —
// Pearl's underbar operator, used by do-calculus Rule 2.
func removeEdgesOutOf(g *Graph, sources map[string]bool) *Graph {
	out := &Graph{ID: g.ID, Nodes: g.Nodes, IsDAG: g.IsDAG}
	for _, e := range g.Edges {
		if e.Kind() == EdgeDirected && sources[e.From] {
			continue
		}
		out.Edges = append(out.Edges, e)
	}
	return out
}

// Marginalize removes node v, bridging each of its directed parents to each
// of its directed children with a new directed edge when one is not already
// present (the latent-projection operator). Unknown v returns the graph
// unchanged.
func Marginalize(g *Graph, v string) *Graph {
	if !g.HasNode(v) {
		return g
	}
	out := &Graph{ID: g.ID, IsDAG: g.IsDAG}
	for _, n := range g.Nodes {
		if n.ID != v {
			out.Nodes = append(out.Nodes, n)
		}
	}

	existing := make(map[[2]string]bool)
	var parents, children []string
	for _, e := range g.Edges {
		if e.From == v || e.To == v {
			if e.Kind() == EdgeDirected {
				if e.To == v {
					parents = append(parents, e.From)
				} else {
					children = append(children, e.To)
				}
			}
			continue
		}
		out.Edges = append(out.Edges, e)
		if e.Kind() == EdgeDirected {
			existing[[2]string{e.From, e.To}] = true
		}
	}

	for _, p := range parents {
		for _, c := range children {
			if p == c || existing[[2]string{p, c}] {
				continue
			}
			existing[[2]string{p, c}] = true
			out.Edges = append(out.Edges, Edge{From: p, To: c, Type: EdgeDirected})
		}
	}
	return out
}

// backdoorPaths returns the paths from x to y whose first edge points into
// x.
func backdoorPaths(g *Graph, x, y string, cfg Config) []Path {
	var out []Path
	for _, p := range FindAllPaths(g, []string{x}, []string{y}, cfg.MaxPathLength) {
		if len(p.Directions) > 0 && p.Directions[0] == Backward {
			out = append(out, p)
		}
	}
	return out
}

// allBackdoorPathsBlocked reports whether z blocks every backdoor path from
// x to y.
func allBackdoorPathsBlocked(g *Graph, x, y string, z map[string]bool, cfg Config) bool {
	for _, p := range backdoorPaths(g, x, y, cfg) {
		if p = blockPath(g, p, z); !p.Blocked {
			return false
		}
	}
	return true
}

// IsValidBackdoorAdjustment checks Pearl's backdoor criterion: no member of
// z may be a descendant of x, and z must block every backdoor path from x
// to y.
func IsValidBackdoorAdjustment(g *Graph, x, y string, z []string, cfg Config) bool {
	desc := descendants(g, x)
	for _, id := range z {
		if desc[id] {
			return false
		}
	}
	return allBackdoorPathsBlocked(g, x, y, toSet(z), cfg)
}

// FindBackdoorAdjustmentSet returns the smallest valid backdoor adjustment
// set within cfg.MaxSetSize, or false when none exists. Candidates exclude
// x, y, and descendants of x.
func FindBackdoorAdjustmentSet(g *Graph, x, y string, cfg Config) ([]string, bool) {
	seq := backdoorCandidates(g, x, y, cfg)
	for z, ok := seq.next(); ok; z, ok = seq.next() {
		if IsValidBackdoorAdjustment(g, x, y, z, cfg) {
			return z, true
		}
	}
	return nil, false
}

// FindAllBackdoorSets returns every valid backdoor adjustment set up to
// cfg.MaxSetSize, in ascending size.
func FindAllBackdoorSets(g *Graph, x, y string, cfg Config) [][]string {
	var out [][]string
	seq := backdoorCandidates(g, x, y, cfg)
	for z, ok := seq.next(); ok; z, ok = seq.next() {
		if IsValidBackdoorAdjustment(g, x, y, z, cfg) {
			out = append(out, z)
		}
	}
	return out
}

// backdoorCandidates excludes x, y, descendants of x, and latent-typed
// nodes: adjustment requires measuring the set, so unobserved variables
// cannot serve.
func backdoorCandidates(g *Graph, x, y string, cfg Config) *subsetSeq {
	desc := descendants(g, x)
	latent := latentNodes(g)
	var candidates []string
	for _, id := range g.NodeIDs() {
		if id == x || id == y || desc[id] || latent[id] {
			continue
		}
		candidates = append(candidates, id)
	}
	return newSubsetSeq(candidates, 0, cfg.MaxSetSize)
}

func latentNodes(g *Graph) map[string]bool {
	out := make(map[string]bool)
	for _, n := range g.Nodes {
		if n.Type == NodeLatent {
			out[n.ID] = true
		}
	}
	return out
}

// GenerateBackdoorFormula renders the adjustment formula for P(y|do(x))
// given adjustment set z, in both LaTeX and plain text. An empty set renders
// the unadjusted conditional.
func GenerateBackdoorFormula(x, y string, z []string) AdjustmentFormula {
	f := AdjustmentFormula{Set: z, Method: MethodBackdoor, Valid: true}
	if len(z) == 0 {
		f.Plain = fmt.Sprintf("P(%s|do(%s)) = P(%s|%s)", y, x, y, x)
		f.Latex = fmt.Sprintf(`P(%s \mid do(%s)) = P(%s \mid %s)`, y, x, y, x)
		return f
	}
	zs := strings.Join(z, ",")
	f.Plain = fmt.Sprintf("P(%s|do(%s)) = Σ_%s P(%s|%s,%s)P(%s)", y, x, zs, y, x, zs, zs)
	f.Latex = fmt.Sprintf(`P(%s \mid do(%s)) = \sum_{%s} P(%s \mid %s, %s) P(%s)`, y, x, zs, y, x, zs, zs)
	return f
}

// GenerateFrontdoorFormula renders the two-stage frontdoor formula for
// mediator m.
func GenerateFrontdoorFormula(x, y, m string) AdjustmentFormula {
	return AdjustmentFormula{
		Set:    []string{m},
		Method: MethodFrontdoor,
		Valid:  true,
		Plain: fmt.Sprintf("P(%s|do(%s)) = Σ_%s P(%s|%s) Σ_%s' P(%s|%s,%s')P(%s')",
			y, x, m, m, x, x, y, m, x, x),
		Latex: fmt.Sprintf(`P(%s \mid do(%s)) = \sum_{%s} P(%s \mid %s) \sum_{%s'} P(%s \mid %s, %s') P(%s')`,
			y, x, m, m, x, x, y, m, x, x),
	}
}

// FrontdoorResult reports whether the frontdoor criterion holds and which
// mediators satisfy it.
type FrontdoorResult struct {
	Satisfied bool     `json:"satisfied"`
	Mediators []string `json:"mediators,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

// CheckFrontdoorCriterion looks for a mediator M between x and y such that
// (1) M lies on every directed path from x to y, (2) the x→M relationship is
// unconfounded (every backdoor path from x to M is blocked by the empty
// set), and (3) every backdoor path from M to y is blocked by conditioning
// on x. Candidates are descendants of x that are ancestors of y.
func CheckFrontdoorCriterion(g *Graph, x, y string, cfg Config) *FrontdoorResult {
	descX := descendants(g, x)
	ancY := ancestors(g, y)

	var mediators []string
	for _, id := range g.NodeIDs() {
		m := id
		if m == x || m == y || !descX[m] || !ancY[m] {
			continue
		}
		if !interceptsAllDirectedPaths(g, x, y, m, cfg) {
			continue
		}
		if !allBackdoorPathsBlocked(g, x, m, nil, cfg) {
			continue
		}
		if !allBackdoorPathsBlocked(g, m, y, map[string]bool{x: true}, cfg) {
			continue
		}
		mediators = append(mediators, m)
	}

	if len(mediators) == 0 {
		return &FrontdoorResult{Satisfied: false, Reason: "no mediator intercepts all directed paths with the required unconfoundedness"}
	}
	return &FrontdoorResult{Satisfied: true, Mediators: mediators}
}

// interceptsAllDirectedPaths reports whether every directed path from x to y
// passes through m. Only directed edges are followed, so mixed undirected or
// bidirected connections cannot masquerade as causal routes.
func interceptsAllDirectedPaths(g *Graph, x, y, m string, cfg Config) bool {
	for _, p := range directedPaths(g, x, y, cfg.MaxPathLength) {
		through := false
		for _, id := range p {
			if id == m {
				through = true
				break
			}
		}
		if !through {
			return false
		}
	}
	return true
}

// directedPaths enumerates simple paths from x to y following directed edges
// forward only, with an explicit stack.
func directedPaths(g *Graph, x, y string, maxLength int) [][]string {
	if maxLength <= 0 {
		maxLength = DefaultConfig().MaxPathLength
	}
	children := directedChildren(g)
	if !g.HasNode(x) || !g.HasNode(y) || x == y {
		return nil
	}

	var found [][]string
	stack := []frame{{node: x}}
	path := []string{x}
	onPath := map[string]bool{x: true}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		list := children[top.node]

		if top.next >= len(list) {
			stack = stack[:len(stack)-1]
			onPath[top.node] = false
			path = path[:len(path)-1]
			continue
		}

		next := list[top.next]
		top.next++

		if onPath[next] || len(path) > maxLength {
			continue
		}
		if next == y {
			p := make([]string, 0, len(path)+1)
			found = append(found, append(append(p, path...), y))
			continue
		}
		stack = append(stack, frame{node: next})
		path = append(path, next)
		onPath[next] = true
	}
	return found
}

// FindInstrumentalVariables returns every node z with a directed edge z→x,
// no direct edge z→y, and d-separation from y in the x-mutilated graph.
func FindInstrumentalVariables(g *Graph, x, y string, cfg Config) []string {
	hasDirected := make(map[[2]string]bool)
	for _, e := range g.Edges {
		if e.Kind() == EdgeDirected {
			hasDirected[[2]string{e.From, e.To}] = true
		}
	}

	mutilated := MutilateAt(g, x)
	latent := latentNodes(g)
	var out []string
	for _, z := range g.NodeIDs() {
		if z == x || z == y || latent[z] {
			continue
		}
		if !hasDirected[[2]string{z, x}] || hasDirected[[2]string{z, y}] {
			continue
		}
		res := CheckDSeparation(mutilated, DSeparationQuery{X: []string{z}, Y: []string{y}}, cfg, false)
		if res.Separated {
			out = append(out, z)
		}
	}
	return out
}
