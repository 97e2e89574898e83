package graph

import (
	"fmt"

	"avatarforge/internal/slots"
)

// AutoViseme is the sentinel requesting that an external lip-sync signal
// drive the mouth. It is always admitted because it names a runtime signal,
// not a member of the discovered vocabulary.
const AutoViseme = "AUTO"

// Preset names accepted by Build.
const (
	PresetIdleTalk    = "idle-talk"
	PresetFullEmotion = "full-emotion"
)

// Presets lists the available preset names in build order.
func Presets() []string {
	return []string{PresetIdleTalk, PresetFullEmotion}
}

// Builder synthesizes preset graphs constrained to a slot vocabulary.
type Builder struct {
	slots map[string]slots.Definition
}

// NewBuilder constructs a builder over the aggregated slot definitions.
func NewBuilder(defs map[string]slots.Definition) *Builder {
	return &Builder{slots: defs}
}

// Build returns the graph for the named preset.
func (b *Builder) Build(preset string) (*Graph, error) {
	switch preset {
	case PresetIdleTalk:
		return b.buildIdleTalk(), nil
	case PresetFullEmotion:
		return b.buildFullEmotion(), nil
	default:
		return nil, fmt.Errorf("unknown graph preset %q", preset)
	}
}

func (b *Builder) buildIdleTalk() *Graph {
	g := New(Params{Valence: 0.1, Arousal: 0.2, Speaking: false, Emotion: "neutral"})
	b.addIdleTalkNodes(g)
	g.Edges = append(g.Edges, idleTalkEdges()...)
	return g
}

func (b *Builder) buildFullEmotion() *Graph {
	g := New(Params{Valence: 0, Arousal: 0, Speaking: false, Emotion: "neutral"})
	b.addIdleTalkNodes(g)
	b.addEmotionNodes(g)
	g.Edges = append(g.Edges, idleTalkEdges()...)
	g.Edges = append(g.Edges, emotionEdges()...)
	return g
}

func (b *Builder) addIdleTalkNodes(g *Graph) {
	idle := b.idleSlots()
	g.Nodes["IdleNeutral"] = Node{Slots: idle}

	blink := copySlots(idle)
	b.request(blink, "EyeL", "state", "closed")
	b.request(blink, "EyeR", "state", "closed")
	g.Nodes["IdleBlink"] = Node{Slots: blink, Duration: []int{120, 180}}

	talk := copySlots(idle)
	b.request(talk, "Mouth", "viseme", AutoViseme)
	g.Nodes["TalkNeutral"] = Node{Slots: talk}
}

func (b *Builder) addEmotionNodes(g *Graph) {
	base := b.idleSlots()

	smile := copySlots(base)
	b.request(smile, "Mouth", "emotion", "smile")
	b.request(smile, "BrowL", "shape", "up")
	b.request(smile, "BrowR", "shape", "up")
	g.Nodes["Smile"] = Node{Slots: smile}

	sad := copySlots(base)
	b.request(sad, "Mouth", "emotion", "sad")
	b.request(sad, "EyeL", "state", "sad")
	b.request(sad, "EyeR", "state", "sad")
	g.Nodes["Sad"] = Node{Slots: sad}

	surprised := copySlots(base)
	b.request(surprised, "EyeL", "state", "open")
	b.request(surprised, "EyeR", "state", "open")
	b.request(surprised, "BrowL", "shape", "up")
	b.request(surprised, "BrowR", "shape", "up")
	g.Nodes["Surprised"] = Node{Slots: surprised}
}

// idleSlots is the shared neutral pose: mouth at rest, both eyes open.
func (b *Builder) idleSlots() map[string]SlotRequest {
	requests := make(map[string]SlotRequest)
	b.request(requests, "Mouth", "viseme", "REST")
	b.request(requests, "EyeL", "state", "open")
	b.request(requests, "EyeR", "state", "open")
	return requests
}

// request adds a single-axis target for the slot if the slot exists and the
// value belongs to its vocabulary. AutoViseme bypasses the membership check.
func (b *Builder) request(requests map[string]SlotRequest, slot, axis, value string) {
	def, ok := b.slots[slot]
	if !ok {
		return
	}
	if value != AutoViseme && !def.Contains(axis, value) {
		return
	}
	switch axis {
	case "viseme":
		requests[slot] = SlotRequest{Viseme: value}
	case "emotion":
		requests[slot] = SlotRequest{Emotion: value}
	case "state":
		requests[slot] = SlotRequest{State: value}
	case "shape":
		requests[slot] = SlotRequest{Shape: value}
	}
}

func copySlots(src map[string]SlotRequest) map[string]SlotRequest {
	out := make(map[string]SlotRequest, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func idleTalkEdges() []Edge {
	return []Edge{
		{From: "IdleNeutral", To: "IdleBlink", Kind: CondRandom, After: []int{2000, 6000}, Prob: 0.6},
		{From: "IdleBlink", To: "IdleNeutral", Kind: CondOnEnter, OnEnter: true},
		{From: "IdleNeutral", To: "TalkNeutral", Kind: CondWhile, While: "speaking"},
		{From: "TalkNeutral", To: "IdleNeutral", Kind: CondWhile, While: "!speaking"},
	}
}

func emotionEdges() []Edge {
	return []Edge{
		{From: "IdleNeutral", To: "Smile", Kind: CondEvent, OnEvent: "joke", Cooldown: 3000},
		{From: "Smile", To: "IdleNeutral", Kind: CondTimer, After: []int{2000, 4000}},
		{From: "IdleNeutral", To: "Sad", Kind: CondEvent, OnEvent: "sad", Cooldown: 5000},
		{From: "Sad", To: "IdleNeutral", Kind: CondTimer, After: []int{3000, 5000}},
		{From: "IdleNeutral", To: "Surprised", Kind: CondEvent, OnEvent: "surprise", Cooldown: 2000},
		{From: "Surprised", To: "IdleNeutral", Kind: CondTimer, After: []int{800, 1200}},
	}
}
