package graph

import (
	"encoding/json"
	"reflect"
	"testing"

	"avatarforge/internal/slots"
)

func fullVocabulary() map[string]slots.Definition {
	return map[string]slots.Definition{
		"Mouth": {Visemes: slots.DefaultVisemes(), Emotions: slots.DefaultEmotions()},
		"EyeL":  {States: slots.DefaultEyeStates()},
		"EyeR":  {States: slots.DefaultEyeStates()},
		"BrowL": {Shapes: slots.DefaultBrowShapes()},
		"BrowR": {Shapes: slots.DefaultBrowShapes()},
	}
}

func TestBuildIdleTalkShape(t *testing.T) {
	g, err := NewBuilder(fullVocabulary()).Build(PresetIdleTalk)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d: %v", len(g.Nodes), nodeNames(g))
	}
	for _, name := range []string{"IdleNeutral", "IdleBlink", "TalkNeutral"} {
		if _, ok := g.Nodes[name]; !ok {
			t.Fatalf("missing node %s", name)
		}
	}
	if len(g.Edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(g.Edges))
	}
	blink := g.Nodes["IdleBlink"]
	if !reflect.DeepEqual(blink.Duration, []int{120, 180}) {
		t.Fatalf("IdleBlink duration = %v", blink.Duration)
	}
}

func TestBuildIdleTalkSlotRequests(t *testing.T) {
	g, err := NewBuilder(fullVocabulary()).Build(PresetIdleTalk)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	idle := g.Nodes["IdleNeutral"].Slots
	if idle["Mouth"].Viseme != "REST" {
		t.Errorf("IdleNeutral mouth viseme = %q", idle["Mouth"].Viseme)
	}
	if idle["EyeL"].State != "open" || idle["EyeR"].State != "open" {
		t.Errorf("IdleNeutral eyes = %+v %+v", idle["EyeL"], idle["EyeR"])
	}
	blink := g.Nodes["IdleBlink"].Slots
	if blink["EyeL"].State != "closed" || blink["EyeR"].State != "closed" {
		t.Errorf("IdleBlink eyes = %+v %+v", blink["EyeL"], blink["EyeR"])
	}
	if blink["Mouth"].Viseme != "REST" {
		t.Errorf("IdleBlink mouth viseme = %q", blink["Mouth"].Viseme)
	}
	talk := g.Nodes["TalkNeutral"].Slots
	if talk["Mouth"].Viseme != AutoViseme {
		t.Errorf("TalkNeutral mouth viseme = %q", talk["Mouth"].Viseme)
	}
}

func TestBuildIdleTalkParams(t *testing.T) {
	g, err := NewBuilder(fullVocabulary()).Build(PresetIdleTalk)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Params.Valence != 0.1 || g.Params.Arousal != 0.2 {
		t.Errorf("params affect = %v/%v", g.Params.Valence, g.Params.Arousal)
	}
	if g.Params.Speaking || g.Params.Emotion != "neutral" {
		t.Errorf("params = %+v", g.Params)
	}
}

func TestBuildIdleTalkEdges(t *testing.T) {
	g, err := NewBuilder(fullVocabulary()).Build(PresetIdleTalk)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	byPair := make(map[string]Edge)
	for _, e := range g.Edges {
		byPair[e.From+">"+e.To] = e
	}
	blink := byPair["IdleNeutral>IdleBlink"]
	if blink.Kind != CondRandom || blink.Prob != 0.6 || !reflect.DeepEqual(blink.After, []int{2000, 6000}) {
		t.Errorf("blink edge = %+v", blink)
	}
	back := byPair["IdleBlink>IdleNeutral"]
	if back.Kind != CondOnEnter || !back.OnEnter {
		t.Errorf("return edge = %+v", back)
	}
	if byPair["IdleNeutral>TalkNeutral"].While != "speaking" {
		t.Errorf("talk edge = %+v", byPair["IdleNeutral>TalkNeutral"])
	}
	if byPair["TalkNeutral>IdleNeutral"].While != "!speaking" {
		t.Errorf("silence edge = %+v", byPair["TalkNeutral>IdleNeutral"])
	}
}

func TestBuildFullEmotion(t *testing.T) {
	g, err := NewBuilder(fullVocabulary()).Build(PresetFullEmotion)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d: %v", len(g.Nodes), nodeNames(g))
	}
	if len(g.Edges) != 10 {
		t.Fatalf("expected 10 edges, got %d", len(g.Edges))
	}
	if g.Params.Valence != 0 || g.Params.Arousal != 0 {
		t.Errorf("params affect = %v/%v", g.Params.Valence, g.Params.Arousal)
	}
	smile := g.Nodes["Smile"].Slots
	if smile["Mouth"].Emotion != "smile" || smile["BrowL"].Shape != "up" || smile["BrowR"].Shape != "up" {
		t.Errorf("Smile slots = %+v", smile)
	}
	sad := g.Nodes["Sad"].Slots
	if sad["Mouth"].Emotion != "sad" || sad["EyeL"].State != "sad" {
		t.Errorf("Sad slots = %+v", sad)
	}
	surprised := g.Nodes["Surprised"].Slots
	if surprised["EyeL"].State != "open" || surprised["BrowL"].Shape != "up" {
		t.Errorf("Surprised slots = %+v", surprised)
	}
}

func TestBuildFullEmotionEdgeTimings(t *testing.T) {
	g, err := NewBuilder(fullVocabulary()).Build(PresetFullEmotion)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	byPair := make(map[string]Edge)
	for _, e := range g.Edges {
		byPair[e.From+">"+e.To] = e
	}
	cases := []struct {
		to       string
		event    string
		cooldown int
		back     []int
	}{
		{"Smile", "joke", 3000, []int{2000, 4000}},
		{"Sad", "sad", 5000, []int{3000, 5000}},
		{"Surprised", "surprise", 2000, []int{800, 1200}},
	}
	for _, tc := range cases {
		in := byPair["IdleNeutral>"+tc.to]
		if in.Kind != CondEvent || in.OnEvent != tc.event || in.Cooldown != tc.cooldown {
			t.Errorf("%s entry edge = %+v", tc.to, in)
		}
		out := byPair[tc.to+">IdleNeutral"]
		if out.Kind != CondTimer || !reflect.DeepEqual(out.After, tc.back) {
			t.Errorf("%s return edge = %+v", tc.to, out)
		}
	}
}

func TestBuildOmitsRequestsOutsideVocabulary(t *testing.T) {
	defs := map[string]slots.Definition{
		"Mouth": {Visemes: []string{"AI", "O"}},
		"EyeL":  {States: []string{"open", "closed"}},
		"EyeR":  {States: []string{"open", "closed"}},
	}
	g, err := NewBuilder(defs).Build(PresetFullEmotion)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	idle := g.Nodes["IdleNeutral"].Slots
	if _, ok := idle["Mouth"]; ok {
		t.Errorf("REST is outside the mouth vocabulary yet requested: %+v", idle["Mouth"])
	}
	// AUTO skips the membership check so the talk node keeps its mouth.
	if g.Nodes["TalkNeutral"].Slots["Mouth"].Viseme != AutoViseme {
		t.Errorf("TalkNeutral mouth = %+v", g.Nodes["TalkNeutral"].Slots["Mouth"])
	}
	smile := g.Nodes["Smile"].Slots
	if _, ok := smile["Mouth"]; ok {
		t.Errorf("smile emotion not in vocabulary yet requested: %+v", smile["Mouth"])
	}
	if _, ok := smile["BrowL"]; ok {
		t.Errorf("absent BrowL slot requested: %+v", smile["BrowL"])
	}
	sad := g.Nodes["Sad"].Slots
	if _, ok := sad["EyeL"]; ok {
		t.Errorf("sad eye state not in vocabulary yet requested: %+v", sad["EyeL"])
	}
}

func TestBuildUnknownPreset(t *testing.T) {
	if _, err := NewBuilder(nil).Build("dance"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestGraphJSONShape(t *testing.T) {
	g, err := NewBuilder(fullVocabulary()).Build(PresetIdleTalk)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	raw, err := g.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(doc["$schema"]) != `"./schemas/graph.schema.json"` {
		t.Errorf("$schema = %s", doc["$schema"])
	}
	var edges []map[string]any
	if err := json.Unmarshal(doc["edges"], &edges); err != nil {
		t.Fatalf("edges: %v", err)
	}
	for _, edge := range edges {
		if _, ok := edge["kind"]; ok {
			t.Errorf("edge carries internal kind field: %v", edge)
		}
		switch edge["to"] {
		case "IdleBlink":
			if edge["prob"] != 0.6 {
				t.Errorf("blink edge json = %v", edge)
			}
			if _, ok := edge["while"]; ok {
				t.Errorf("random edge carries while: %v", edge)
			}
		case "TalkNeutral":
			if edge["while"] != "speaking" {
				t.Errorf("talk edge json = %v", edge)
			}
		}
	}
}

func nodeNames(g *Graph) []string {
	names := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		names = append(names, name)
	}
	return names
}
