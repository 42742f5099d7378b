package causal

import "fmt"

// IdentifiabilityResult is the outcome of the identification ladder. "Not
// identifiable" is a successfully computed answer, never an error.
type IdentifiabilityResult struct {
	Identifiable bool               `json:"identifiable"`
	Method       AdjustmentMethod   `json:"method,omitempty"`
	Formula      *AdjustmentFormula `json:"formula,omitempty"`
	Reason       string             `json:"reason"`
}

// IsIdentifiable decides whether P(y|do(x)) is identifiable from
// observational data, trying the backdoor criterion, then frontdoor, then
// instrumental variables, then a simplified general rule: a graph without
// bidirected edges is always identifiable, while a bidirected-edge path
// between x and y means the effect is confounded beyond what these criteria
// can repair.
func IsIdentifiable(g *Graph, x, y string, cfg Config) *IdentifiabilityResult {
	if z, ok := FindBackdoorAdjustmentSet(g, x, y, cfg); ok {
		f := GenerateBackdoorFormula(x, y, z)
		return &IdentifiabilityResult{
			Identifiable: true,
			Method:       MethodBackdoor,
			Formula:      &f,
			Reason:       fmt.Sprintf("backdoor criterion holds with adjustment set %v", z),
		}
	}

	if fd := CheckFrontdoorCriterion(g, x, y, cfg); fd.Satisfied {
		f := GenerateFrontdoorFormula(x, y, fd.Mediators[0])
		return &IdentifiabilityResult{
			Identifiable: true,
			Method:       MethodFrontdoor,
			Formula:      &f,
			Reason:       fmt.Sprintf("frontdoor criterion holds with mediator %s", fd.Mediators[0]),
		}
	}

	if ivs := FindInstrumentalVariables(g, x, y, cfg); len(ivs) > 0 {
		f := AdjustmentFormula{
			Set:    []string{ivs[0]},
			Method: MethodInstrumental,
			Valid:  true,
			Plain:  fmt.Sprintf("effect of %s on %s identified via instrument %s", x, y, ivs[0]),
			Latex:  fmt.Sprintf(`P(%s \mid do(%s)) \text{ identified via instrument } %s`, y, x, ivs[0]),
		}
		return &IdentifiabilityResult{
			Identifiable: true,
			Method:       MethodInstrumental,
			Formula:      &f,
			Reason:       fmt.Sprintf("%s is a valid instrumental variable for %s → %s", ivs[0], x, y),
		}
	}

	if !hasBidirectedEdges(g) {
		// The rendered formula may only adjust for observed parents; a
		// latent parent cannot be conditioned on in an estimator.
		latent := latentNodes(g)
		var parents, hidden []string
		for _, p := range directedParents(g)[x] {
			if latent[p] {
				hidden = append(hidden, p)
			} else {
				parents = append(parents, p)
			}
		}
		f := GenerateBackdoorFormula(x, y, parents)
		f.Method = MethodGeneral
		reason := "the graph has no bidirected edges, so the effect is identifiable by adjusting for the observed parents of the treatment"
		if len(hidden) > 0 {
			reason += fmt.Sprintf("; latent parent(s) %v are omitted from the formula, which holds only insofar as their influence is captured by the observed parents", hidden)
		}
		return &IdentifiabilityResult{
			Identifiable: true,
			Method:       MethodGeneral,
			Formula:      &f,
			Reason:       reason,
		}
	}

	if bidirectedPathExists(g, x, y) {
		return &IdentifiabilityResult{
			Identifiable: false,
			Reason:       fmt.Sprintf("%s and %s are connected by a path of bidirected edges; the effect is confounded by latent common causes", x, y),
		}
	}

	return &IdentifiabilityResult{
		Identifiable: false,
		Reason:       "no backdoor set, frontdoor mediator, or instrumental variable was found within the configured bounds",
	}
}

func hasBidirectedEdges(g *Graph) bool {
	for _, e := range g.Edges {
		if e.Kind() == EdgeBidirected {
			return true
		}
	}
	return false
}

// bidirectedPathExists walks only bidirected edges, in either direction,
// from x toward y.
func bidirectedPathExists(g *Graph, x, y string) bool {
	nodes := nodeSet(g)
	adj := make(map[string][]string)
	for _, e := range g.Edges {
		if e.Kind() != EdgeBidirected || !nodes[e.From] || !nodes[e.To] {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}

	seen := map[string]bool{x: true}
	stack := []string{x}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range adj[cur] {
			if n == y {
				return true
			}
			if !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return false
}

// InterventionRequest asks whether the effect of an intervention on
// Treatment is identifiable with respect to Outcome.
type InterventionRequest struct {
	Treatment    string        `json:"treatment"`
	Outcome      string        `json:"outcome"`
	Intervention *Intervention `json:"intervention,omitempty"`
}

// InterventionAnalysis is the top-level answer: the identifiability verdict,
// the mutilated graph modelling the intervention, and a prose explanation.
type InterventionAnalysis struct {
	Request     InterventionRequest    `json:"request"`
	Result      *IdentifiabilityResult `json:"result"`
	Mutilated   *Graph                 `json:"mutilated"`
	Explanation string                 `json:"explanation"`
}

// AnalyzeIntervention resolves identifiability of P(Outcome|do(Treatment))
// and, when identifiable, carries the adjustment formula of whichever method
// succeeded.
func AnalyzeIntervention(g *Graph, req InterventionRequest, cfg Config) *InterventionAnalysis {
	iv := Intervention{Target: req.Treatment, Kind: InterventionAtomic}
	if req.Intervention != nil {
		iv = *req.Intervention
	}

	res := IsIdentifiable(g, req.Treatment, req.Outcome, cfg)
	analysis := &InterventionAnalysis{
		Request:   req,
		Result:    res,
		Mutilated: Mutilate(g, []Intervention{iv}),
	}

	if res.Identifiable {
		analysis.Explanation = fmt.Sprintf(
			"P(%s|do(%s)) is identifiable via the %s method: %s",
			req.Outcome, req.Treatment, res.Method, res.Reason)
	} else {
		analysis.Explanation = fmt.Sprintf(
			"P(%s|do(%s)) is not identifiable from observational data: %s",
			req.Outcome, req.Treatment, res.Reason)
	}
	return analysis
}
