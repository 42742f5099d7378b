package causal

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
)

// CentralityType names one of the supported centrality measures.
type CentralityType string

const (
	CentralityDegree      CentralityType = "degree"
	CentralityBetweenness CentralityType = "betweenness"
	CentralityCloseness   CentralityType = "closeness"
	CentralityPageRank    CentralityType = "pagerank"
	CentralityEigenvector CentralityType = "eigenvector"
	CentralityKatz        CentralityType = "katz"
)

// AllCentralityTypes returns every supported measure in canonical order.
func AllCentralityTypes() []CentralityType {
	return []CentralityType{
		CentralityDegree,
		CentralityBetweenness,
		CentralityCloseness,
		CentralityPageRank,
		CentralityEigenvector,
		CentralityKatz,
	}
}

// DegreeScore holds the raw (or normalized) in-, out-, and total degree of
// one node. Undirected and bidirected edges contribute to both the in- and
// out-degree of both endpoints.
type DegreeScore struct {
	In    float64 `json:"in"`
	Out   float64 `json:"out"`
	Total float64 `json:"total"`
}

// NodeScore pairs a node id with a measure value.
type NodeScore struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// CentralityResult is the output of ComputeAllCentrality: one score map per
// requested measure (Katz included as a declared entry like any other), the
// top five nodes per measure, and the wall-clock time spent.
type CentralityResult struct {
	Measures map[CentralityType]map[string]float64 `json:"measures"`
	Degrees  map[string]DegreeScore                `json:"degrees,omitempty"`
	Top      map[CentralityType][]NodeScore        `json:"top"`
	Elapsed  time.Duration                         `json:"elapsed"`
}

// DegreeCentrality computes in/out/total degree for every node. With
// normalize, each value is divided by n-1.
func DegreeCentrality(g *Graph, normalize bool) map[string]DegreeScore {
	a := buildAdjacency(g, true)
	out := make(map[string]DegreeScore, len(a.nodes))
	n := len(a.nodes)
	div := 1.0
	if normalize && n > 1 {
		div = float64(n - 1)
	}
	for _, id := range a.nodes {
		in := float64(len(a.incoming[id]))
		outd := float64(len(a.outgoing[id]))
		out[id] = DegreeScore{
			In:    in / div,
			Out:   outd / div,
			Total: (in + outd) / div,
		}
	}
	return out
}

// BetweennessCentrality runs Brandes' algorithm over the undirected view:
// one BFS per source accumulates shortest-path counts, then dependencies are
// back-propagated in reverse finishing order. O(V*E) overall. The normalized
// value is raw * 2 / ((n-1)(n-2)) for n > 2; the factor of two accounts for
// each undirected pair being counted from both endpoints.
func BetweennessCentrality(g *Graph, normalize bool) map[string]float64 {
	a := buildAdjacency(g, false)
	n := len(a.nodes)
	bc := make(map[string]float64, n)
	for _, id := range a.nodes {
		bc[id] = 0
	}

	for _, s := range a.nodes {
		// BFS from s.
		stack := make([]string, 0, n)
		preds := make(map[string][]string, n)
		sigma := map[string]float64{s: 1}
		dist := map[string]int{s: 0}
		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range a.neighbors(v) {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		// Back-propagate dependencies in reverse BFS order.
		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				bc[w] += delta[w]
			}
		}
	}

	// Each unordered pair was visited from both endpoints.
	for id := range bc {
		bc[id] /= 2
	}

	if normalize && n > 2 {
		scale := 2.0 / (float64(n-1) * float64(n-2))
		for id := range bc {
			bc[id] *= scale
		}
	}
	return bc
}

// ClosenessCentrality computes, per source, the ratio of reachable nodes to
// the sum of their BFS distances over the undirected view. Unreachable
// components simply do not contribute. With normalize the result is scaled
// by (n-1)/n.
func ClosenessCentrality(g *Graph, normalize bool) map[string]float64 {
	a := buildAdjacency(g, false)
	n := len(a.nodes)
	out := make(map[string]float64, n)
	for _, s := range a.nodes {
		dist := map[string]int{s: 0}
		queue := []string{s}
		sum := 0
		reached := 0
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range a.neighbors(v) {
				if _, seen := dist[w]; seen {
					continue
				}
				dist[w] = dist[v] + 1
				sum += dist[w]
				reached++
				queue = append(queue, w)
			}
		}
		score := 0.0
		if sum > 0 {
			score = float64(reached) / float64(sum)
		}
		if normalize && n > 0 {
			score *= float64(n-1) / float64(n)
		}
		out[s] = score
	}
	return out
}

// PageRank runs power iteration with the given damping factor. Nodes with no
// outgoing edges redistribute their rank uniformly over all nodes each
// iteration, so the scores keep summing to one. Iteration stops when the
// largest per-node change drops below tolerance or after maxIterations.
func PageRank(g *Graph, damping float64, maxIterations int, tolerance float64) map[string]float64 {
	a := buildAdjacency(g, true)
	n := len(a.nodes)
	out := make(map[string]float64, n)
	if n == 0 {
		return out
	}

	rank := make(map[string]float64, n)
	for _, id := range a.nodes {
		rank[id] = 1.0 / float64(n)
	}

	for iter := 0; iter < maxIterations; iter++ {
		dangling := 0.0
		for _, id := range a.nodes {
			if len(a.outgoing[id]) == 0 {
				dangling += rank[id]
			}
		}

		next := make(map[string]float64, n)
		maxDelta := 0.0
		for _, v := range a.nodes {
			sum := 0.0
			for _, u := range a.incoming[v] {
				sum += rank[u] / float64(len(a.outgoing[u]))
			}
			sum += dangling / float64(n)
			nv := (1-damping)/float64(n) + damping*sum
			next[v] = nv
			if d := math.Abs(nv - rank[v]); d > maxDelta {
				maxDelta = d
			}
		}
		rank = next
		if maxDelta < tolerance {
			break
		}
	}

	for _, id := range a.nodes {
		out[id] = rank[id]
	}
	return out
}

// EigenvectorCentrality runs power iteration over the undirected incoming
// structure, L2-normalizing the vector every step. Seeded at 1/sqrt(n).
func EigenvectorCentrality(g *Graph, maxIterations int, tolerance float64) map[string]float64 {
	a := buildAdjacency(g, false)
	n := len(a.nodes)
	out := make(map[string]float64, n)
	if n == 0 {
		return out
	}

	vec := make([]float64, n)
	seed := 1.0 / math.Sqrt(float64(n))
	for i := range vec {
		vec[i] = seed
	}

	next := make([]float64, n)
	for iter := 0; iter < maxIterations; iter++ {
		for i, id := range a.nodes {
			sum := 0.0
			for _, u := range a.incoming[id] {
				sum += vec[a.index[u]]
			}
			next[i] = sum
		}
		if norm := floats.Norm(next, 2); norm > 0 {
			floats.Scale(1/norm, next)
		}
		maxDelta := 0.0
		for i := range vec {
			if d := math.Abs(next[i] - vec[i]); d > maxDelta {
				maxDelta = d
			}
		}
		copy(vec, next)
		if maxDelta < tolerance {
			break
		}
	}

	for i, id := range a.nodes {
		out[id] = vec[i]
	}
	return out
}

// KatzCentrality iterates new[v] = beta + alpha * sum of incoming scores,
// then divides everything by the maximum value.
func KatzCentrality(g *Graph, alpha, beta float64, maxIterations int, tolerance float64) map[string]float64 {
	a := buildAdjacency(g, true)
	n := len(a.nodes)
	out := make(map[string]float64, n)
	if n == 0 {
		return out
	}

	vec := make([]float64, n)
	for i := range vec {
		vec[i] = beta
	}

	next := make([]float64, n)
	for iter := 0; iter < maxIterations; iter++ {
		maxDelta := 0.0
		for i, id := range a.nodes {
			sum := 0.0
			for _, u := range a.incoming[id] {
				sum += vec[a.index[u]]
			}
			next[i] = beta + alpha*sum
			if d := math.Abs(next[i] - vec[i]); d > maxDelta {
				maxDelta = d
			}
		}
		copy(vec, next)
		if maxDelta < tolerance {
			break
		}
	}

	if max := floats.Max(vec); max > 0 {
		floats.Scale(1/max, vec)
	}
	for i, id := range a.nodes {
		out[id] = vec[i]
	}
	return out
}

// Katz defaults from the measure's usual parameterization.
const (
	defaultKatzAlpha = 0.1
	defaultKatzBeta  = 1.0
)

// ComputeAllCentrality evaluates the measures requested in cfg.Measures
// (all of them when empty) and collects the top five nodes per measure.
// Every measure yields an entry for every node; an empty graph yields empty
// maps rather than an error.
func ComputeAllCentrality(g *Graph, cfg Config) *CentralityResult {
	start := time.Now()
	measures := cfg.Measures
	if len(measures) == 0 {
		measures = AllCentralityTypes()
	}

	res := &CentralityResult{
		Measures: make(map[CentralityType]map[string]float64, len(measures)),
		Top:      make(map[CentralityType][]NodeScore, len(measures)),
	}

	for _, m := range measures {
		var scores map[string]float64
		switch m {
		case CentralityDegree:
			deg := DegreeCentrality(g, cfg.Normalize)
			res.Degrees = deg
			scores = make(map[string]float64, len(deg))
			for id, d := range deg {
				scores[id] = d.Total
			}
		case CentralityBetweenness:
			scores = BetweennessCentrality(g, cfg.Normalize)
		case CentralityCloseness:
			scores = ClosenessCentrality(g, cfg.Normalize)
		case CentralityPageRank:
			scores = PageRank(g, cfg.DampingFactor, cfg.MaxIterations, cfg.Tolerance)
		case CentralityEigenvector:
			scores = EigenvectorCentrality(g, cfg.MaxIterations, cfg.Tolerance)
		case CentralityKatz:
			scores = KatzCentrality(g, defaultKatzAlpha, defaultKatzBeta, cfg.MaxIterations, cfg.Tolerance)
		default:
			continue
		}
		res.Measures[m] = scores
		res.Top[m] = topNodes(g, scores, 5)
	}

	res.Elapsed = time.Since(start)
	return res
}

// MostCentralNode returns the highest-scoring node for one measure, or nil
// on an empty graph. Ties resolve to the earliest-inserted node.
func MostCentralNode(g *Graph, measure CentralityType, cfg Config) *NodeScore {
	if len(g.Nodes) == 0 {
		return nil
	}
	sub := cfg
	sub.Measures = []CentralityType{measure}
	res := ComputeAllCentrality(g, sub)
	scores, ok := res.Measures[measure]
	if !ok {
		return nil
	}
	top := topNodes(g, scores, 1)
	if len(top) == 0 {
		return nil
	}
	return &top[0]
}

// topNodes ranks scores descending, breaking ties by node insertion order.
func topNodes(g *Graph, scores map[string]float64, limit int) []NodeScore {
	ranked := make([]NodeScore, 0, len(scores))
	for _, id := range g.NodeIDs() {
		if s, ok := scores[id]; ok {
			ranked = append(ranked, NodeScore{ID: id, Score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
