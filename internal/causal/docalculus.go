package causal

import (
	"fmt"
	"strings"
)

// RuleResult reports whether one of Pearl's do-calculus rules applies to the
// given expression, together with the expression before and after
// simplification.
type RuleResult struct {
	Applicable bool   `json:"applicable"`
	Original   string `json:"original"`
	Simplified string `json:"simplified"`
	Reason     string `json:"reason"`
}

// ApplyRule1 tests insertion/deletion of observations:
//
//	P(y | do(x), z, w) = P(y | do(x), w)
//
// applicable iff Y and Z are d-separated given X ∪ W in the graph with all
// edges into X removed.
func ApplyRule1(g *Graph, y, x, z, w []string, cfg Config) *RuleResult {
	gx := MutilateAt(g, x...)
	sep := CheckDSeparation(gx, DSeparationQuery{X: y, Y: z, Z: union(x, w)}, cfg, false)
	res := &RuleResult{
		Applicable: sep.Separated,
		Original:   probExpr(y, doTerms(x), z, w),
		Simplified: probExpr(y, doTerms(x), nil, w),
	}
	if sep.Separated {
		res.Reason = "Y and Z are d-separated given X and W after removing edges into X; the observation of Z can be dropped."
	} else {
		res.Reason = "Y and Z remain d-connected given X and W after removing edges into X."
	}
	return res
}

// ApplyRule2 tests action/observation exchange:
//
//	P(y | do(x), do(z), w) = P(y | do(x), z, w)
//
// applicable iff Y and Z are d-separated given X ∪ W in the graph with edges
// into X and edges out of Z removed.
func ApplyRule2(g *Graph, y, x, z, w []string, cfg Config) *RuleResult {
	pruned := removeEdgesOutOf(MutilateAt(g, x...), toSet(z))
	sep := CheckDSeparation(pruned, DSeparationQuery{X: y, Y: z, Z: union(x, w)}, cfg, false)
	res := &RuleResult{
		Applicable: sep.Separated,
		Original:   probExpr(y, append(doTerms(x), doTerms(z)...), nil, w),
		Simplified: probExpr(y, doTerms(x), z, w),
	}
	if sep.Separated {
		res.Reason = "With edges into X and out of Z removed, Y and Z are d-separated given X and W; do(Z) reduces to observing Z."
	} else {
		res.Reason = "Y and Z remain d-connected in the pruned graph; the intervention on Z cannot be exchanged for observation."
	}
	return res
}

// ApplyRule3 tests insertion/deletion of actions:
//
//	P(y | do(x), do(z), w) = P(y | do(x), w)
//
// applicable iff Y and Z are d-separated given X ∪ W in the graph with edges
// into X removed, and additionally edges into Z(W) removed, where Z(W) is
// the subset of Z that are not ancestors of any W node in the X-mutilated
// graph.
func ApplyRule3(g *Graph, y, x, z, w []string, cfg Config) *RuleResult {
	gx := MutilateAt(g, x...)

	ancW := make(map[string]bool)
	for _, id := range w {
		ancW[id] = true
		for a := range ancestors(gx, id) {
			ancW[a] = true
		}
	}
	var zw []string
	for _, id := range z {
		if !ancW[id] {
			zw = append(zw, id)
		}
	}

	pruned := MutilateAt(gx, zw...)
	sep := CheckDSeparation(pruned, DSeparationQuery{X: y, Y: z, Z: union(x, w)}, cfg, false)
	res := &RuleResult{
		Applicable: sep.Separated,
		Original:   probExpr(y, append(doTerms(x), doTerms(z)...), nil, w),
		Simplified: probExpr(y, doTerms(x), nil, w),
	}
	if sep.Separated {
		res.Reason = "Y and Z are d-separated given X and W in the doubly mutilated graph; the intervention on Z has no effect and can be deleted."
	} else {
		res.Reason = "Y and Z remain d-connected in the doubly mutilated graph; the intervention on Z cannot be deleted."
	}
	return res
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func doTerms(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = "do(" + id + ")"
	}
	return out
}

// probExpr renders P(y | conditions) with the condition groups in order:
// do-terms, observed terms, context terms. Empty groups are skipped.
func probExpr(y, doLike, observed, context []string) string {
	var conds []string
	conds = append(conds, doLike...)
	conds = append(conds, observed...)
	conds = append(conds, context...)
	if len(conds) == 0 {
		return fmt.Sprintf("P(%s)", strings.Join(y, ","))
	}
	return fmt.Sprintf("P(%s|%s)", strings.Join(y, ","), strings.Join(conds, ","))
}
