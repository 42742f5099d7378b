// Package causal implements the causal-graph analysis engine.
//
// It answers two classes of questions about a causal diagram: structural
// importance of nodes (degree, betweenness, closeness, PageRank, eigenvector,
// Katz) and causal-inference queries (d-separation, adjustment-set discovery,
// identifiability of interventional effects via the backdoor, frontdoor, and
// instrumental-variable criteria and Pearl's do-calculus rules).
//
// Every exported operation is a pure function of its (Graph, parameters)
// input. The engine performs no I/O, keeps no state across calls, and never
// mutates an input graph — mutilation and marginalization return new Graph
// values. Degenerate inputs produce degenerate results, not errors: a 0-node
// graph yields empty maps, "no separator found" and "not identifiable" are
// answers. Edges referencing unknown node ids are dropped silently while
// building adjacency; validating them eagerly is the calling layer's job.
package causal

// NodeType classifies a variable in a causal diagram.
type NodeType string

const (
	NodeObserved     NodeType = "observed"
	NodeLatent       NodeType = "latent"
	NodeIntervention NodeType = "intervention"
	NodeOutcome      NodeType = "outcome"
)

// EdgeType distinguishes the three kinds of edges a causal diagram can carry.
type EdgeType string

const (
	EdgeDirected   EdgeType = "directed"
	EdgeBidirected EdgeType = "bidirected"
	EdgeUndirected EdgeType = "undirected"
)

// Node is a variable in the diagram.
type Node struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Type NodeType `json:"type,omitempty"`
}

// Edge connects two nodes. Type defaults to directed; Weight and Confidence
// are optional annotations carried through untouched by the engine.
type Edge struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Type       EdgeType `json:"type,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Kind returns the edge type, defaulting to directed when unset.
func (e Edge) Kind() EdgeType {
	if e.Type == "" {
		return EdgeDirected
	}
	return e.Type
}

// Graph is an immutable causal diagram. Node order is significant: iterative
// measures visit nodes in insertion order so results are reproducible.
// IsDAG is a caller-supplied hint and is never verified.
type Graph struct {
	ID    string `json:"id"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	IsDAG bool   `json:"isDag,omitempty"`
}

// HasNode reports whether id names a node of the graph.
func (g *Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// NodeIDs returns the node ids in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Direction records how a path traverses an edge relative to the edge's
// stored orientation: forward means from→to, backward means to→from.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Path is an ordered walk through the graph. Directions has one entry per
// hop (len(Nodes)-1). Blocked and BlockReason are filled in by the
// d-separation engine once a conditioning set is known.
type Path struct {
	Nodes       []string    `json:"nodes"`
	Directions  []Direction `json:"directions"`
	Blocked     bool        `json:"blocked"`
	BlockReason string      `json:"blockReason,omitempty"`
}

// InterventionKind distinguishes how an intervention fixes its target.
type InterventionKind string

const (
	InterventionAtomic      InterventionKind = "atomic"
	InterventionStochastic  InterventionKind = "stochastic"
	InterventionConditional InterventionKind = "conditional"
)

// Intervention describes a do() operation on one variable.
type Intervention struct {
	Target string           `json:"target"`
	Value  string           `json:"value,omitempty"`
	Kind   InterventionKind `json:"kind,omitempty"`
}

// AdjustmentMethod tags which identification strategy produced a formula.
type AdjustmentMethod string

const (
	MethodBackdoor     AdjustmentMethod = "backdoor"
	MethodFrontdoor    AdjustmentMethod = "frontdoor"
	MethodInstrumental AdjustmentMethod = "instrumental"
	MethodGeneral      AdjustmentMethod = "general"
)

// AdjustmentFormula is a symbolic identification result: the adjustment set,
// LaTeX and plain-text renderings, and the method that produced it.
type AdjustmentFormula struct {
	Set    []string         `json:"set"`
	Latex  string           `json:"latex"`
	Plain  string           `json:"plain"`
	Method AdjustmentMethod `json:"method"`
	Valid  bool             `json:"valid"`
}

// Config collects the tuning knobs shared across engine operations.
// Malformed values (negative counts, zero tolerances) are not validated
// here — the calling layer owns input validation.
type Config struct {
	Normalize           bool
	DampingFactor       float64
	MaxIterations       int
	Tolerance           float64
	MaxPathLength       int
	MaxSetSize          int
	MaxConditioningSize int
	Measures            []CentralityType
}

// DefaultConfig returns the engine defaults. Combinatorial bounds are
// conservative: exhaustive searches are exponential in them, and the engine
// has no internal timeout.
func DefaultConfig() Config {
	return Config{
		Normalize:           false,
		DampingFactor:       0.85,
		MaxIterations:       100,
		Tolerance:           1e-6,
		MaxPathLength:       10,
		MaxSetSize:          3,
		MaxConditioningSize: 2,
		Measures:            AllCentralityTypes(),
	}
}
