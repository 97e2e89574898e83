package slots

import (
	"reflect"
	"testing"

	"avatarforge/internal/pcs"
)

func tagged(name string, tag *pcs.Tag) pcs.LayerRecord {
	return pcs.LayerRecord{Name: name, BaseName: name, Path: []string{name}, Tag: tag}
}

func TestAggregateEndToEndScenario(t *testing.T) {
	records := []pcs.LayerRecord{
		tagged("Face/Mouth AI", &pcs.Tag{Part: "Mouth", Viseme: "AI"}),
		tagged("Face/Mouth O", &pcs.Tag{Part: "Mouth", Viseme: "O"}),
		tagged("Face/EyeL open", &pcs.Tag{Part: "Eye", Side: "L", State: "open"}),
		tagged("Face/EyeL closed", &pcs.Tag{Part: "Eye", Side: "L", State: "closed"}),
	}

	result := Aggregate(records)

	mouth, ok := result.Slots["Mouth"]
	if !ok {
		t.Fatal("expected Mouth slot")
	}
	if !reflect.DeepEqual(mouth.Visemes, []string{"AI", "O"}) {
		t.Fatalf("unexpected mouth visemes %v", mouth.Visemes)
	}

	eye, ok := result.Slots["EyeL"]
	if !ok {
		t.Fatal("expected EyeL slot")
	}
	if !reflect.DeepEqual(eye.States, []string{"closed", "open"}) {
		t.Fatalf("unexpected eye states %v", eye.States)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	records := []pcs.LayerRecord{
		tagged("c", &pcs.Tag{Part: "Mouth", Viseme: "U"}),
		tagged("a", &pcs.Tag{Part: "Mouth", Viseme: "E"}),
		tagged("b", &pcs.Tag{Part: "Mouth", Viseme: "AI"}),
	}

	first := Aggregate(records)
	second := Aggregate(records)
	if !reflect.DeepEqual(first.Slots, second.Slots) {
		t.Fatalf("aggregation not deterministic: %v vs %v", first.Slots, second.Slots)
	}
	if !reflect.DeepEqual(first.Slots["Mouth"].Visemes, []string{"AI", "E", "U"}) {
		t.Fatalf("visemes not sorted: %v", first.Slots["Mouth"].Visemes)
	}
}

func TestMouthDefaultsInjectedOnlyWhenEmpty(t *testing.T) {
	empty := Aggregate([]pcs.LayerRecord{
		tagged("mouth smile", &pcs.Tag{Part: "Mouth", Emotion: "smile"}),
	})
	mouth := empty.Slots["Mouth"]
	if len(mouth.Visemes) != 10 {
		t.Fatalf("expected the 10-member canonical viseme set, got %v", mouth.Visemes)
	}
	if !reflect.DeepEqual(mouth.Visemes, DefaultVisemes()) {
		t.Fatalf("unexpected default visemes %v", mouth.Visemes)
	}
	if !reflect.DeepEqual(mouth.Emotions, []string{"smile"}) {
		t.Fatalf("discovered emotion axis must not be padded: %v", mouth.Emotions)
	}

	discovered := Aggregate([]pcs.LayerRecord{
		tagged("mouth ai", &pcs.Tag{Part: "Mouth", Viseme: "AI"}),
	})
	if got := discovered.Slots["Mouth"].Visemes; !reflect.DeepEqual(got, []string{"AI"}) {
		t.Fatalf("discovered viseme axis must not receive defaults: %v", got)
	}
}

func TestEyeAndBrowDefaults(t *testing.T) {
	result := Aggregate([]pcs.LayerRecord{
		tagged("eye", &pcs.Tag{Part: "Eye", Side: "R"}),
		tagged("brow", &pcs.Tag{Part: "Brow", Side: "L"}),
	})

	if !reflect.DeepEqual(result.Slots["EyeR"].States, DefaultEyeStates()) {
		t.Fatalf("expected default eye states, got %v", result.Slots["EyeR"].States)
	}
	if !reflect.DeepEqual(result.Slots["BrowL"].Shapes, DefaultBrowShapes()) {
		t.Fatalf("expected default brow shapes, got %v", result.Slots["BrowL"].Shapes)
	}
}

func TestUnknownSlotGetsNoDefaults(t *testing.T) {
	result := Aggregate([]pcs.LayerRecord{
		tagged("loose", &pcs.Tag{State: "open"}),
	})
	def, ok := result.Slots[pcs.UnknownSlot]
	if !ok {
		t.Fatal("expected Unknown slot")
	}
	if def.Visemes != nil || def.Emotions != nil || def.Shapes != nil {
		t.Fatalf("Unknown slot must not receive defaults: %+v", def)
	}
}

func TestUntaggedLayersSkipped(t *testing.T) {
	result := Aggregate([]pcs.LayerRecord{
		tagged("mystery", nil),
	})
	if len(result.Slots) != 0 {
		t.Fatalf("expected no slots, got %v", result.Slots)
	}
}

func TestKeyCanonicalizesLowercaseParts(t *testing.T) {
	tests := []struct {
		tag  *pcs.Tag
		want string
	}{
		{&pcs.Tag{Part: "eye", Side: "L"}, "EyeL"},
		{&pcs.Tag{Part: "Eye", Side: "L"}, "EyeL"},
		{&pcs.Tag{Part: "mouth"}, "Mouth"},
		{&pcs.Tag{Part: "BrowL"}, "BrowL"},
		{nil, pcs.UnknownSlot},
	}
	for _, tt := range tests {
		if got := Key(tt.tag); got != tt.want {
			t.Fatalf("Key(%+v) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestDefaultAnchors(t *testing.T) {
	result := Aggregate(nil)
	anchor, ok := result.Anchors["headPivot"]
	if !ok {
		t.Fatal("expected headPivot anchor")
	}
	if anchor.X != 256 || anchor.Y != 128 {
		t.Fatalf("unexpected anchor %+v", anchor)
	}
}

func TestDefinitionContains(t *testing.T) {
	def := Definition{States: []string{"open"}, Visemes: []string{"AI"}}
	if !def.Contains("state", "open") || !def.Contains("viseme", "AI") {
		t.Fatal("expected membership")
	}
	if def.Contains("state", "closed") || def.Contains("emotion", "smile") {
		t.Fatal("unexpected membership")
	}
}
