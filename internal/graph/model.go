package graph

import "encoding/json"

// SchemaID is the $schema identifier stamped on serialized graphs.
const SchemaID = "./schemas/graph.schema.json"

// Params is the initial parameter set the runtime starts from.
type Params struct {
	Valence  float64
	Arousal  float64
	Speaking bool
	Emotion  string

	// Extra carries runtime-specific parameters outside the core set.
	Extra map[string]any
}

// MarshalJSON flattens Extra into the params object alongside the core keys.
func (p Params) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 4+len(p.Extra))
	out["valence"] = p.Valence
	out["arousal"] = p.Arousal
	out["speaking"] = p.Speaking
	out["emotion"] = p.Emotion
	for key, value := range p.Extra {
		out[key] = value
	}
	return json.Marshal(out)
}

// SlotRequest asks a slot for a target value on exactly one axis.
type SlotRequest struct {
	Viseme  string `json:"viseme,omitempty"`
	Emotion string `json:"emotion,omitempty"`
	State   string `json:"state,omitempty"`
	Shape   string `json:"shape,omitempty"`
}

// Node is one facial state.
type Node struct {
	Slots map[string]SlotRequest `json:"slots"`
	// Duration, when set, is a [min,max] millisecond range the runtime
	// samples for how long the node holds.
	Duration []int `json:"duration,omitempty"`
}

// ConditionKind enumerates edge trigger semantics.
type ConditionKind string

const (
	// CondOnEnter fires immediately when the source node is entered.
	CondOnEnter ConditionKind = "onEnter"
	// CondRandom fires at a uniformly sampled time gated by a probability.
	CondRandom ConditionKind = "random"
	// CondWhile is active while a named boolean predicate holds. A leading
	// '!' negates the predicate.
	CondWhile ConditionKind = "while"
	// CondEvent fires on a named external signal, subject to a cooldown.
	CondEvent ConditionKind = "event"
	// CondTimer fires once a sampled interval elapses after node entry.
	CondTimer ConditionKind = "timer"
)

// Edge is a transition between two nodes. The condition kind is implied by
// which optional fields are present in the serialized form.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`

	Kind ConditionKind `json:"-"`

	OnEnter  bool    `json:"onEnter,omitempty"`
	After    []int   `json:"after,omitempty"`
	Prob     float64 `json:"prob,omitempty"`
	OnEvent  string  `json:"onEvent,omitempty"`
	While    string  `json:"while,omitempty"`
	Cooldown int     `json:"cooldown,omitempty"`
}

// Graph is a complete expression state machine description.
type Graph struct {
	Schema string          `json:"$schema"`
	Params Params          `json:"params"`
	Nodes  map[string]Node `json:"nodes"`
	Edges  []Edge          `json:"edges"`
}

// New returns an empty graph carrying the schema identifier.
func New(params Params) *Graph {
	return &Graph{
		Schema: SchemaID,
		Params: params,
		Nodes:  make(map[string]Node),
	}
}

// Marshal serializes the graph with two-space indentation.
func (g *Graph) Marshal() ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}
