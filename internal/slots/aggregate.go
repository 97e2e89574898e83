package slots

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"avatarforge/internal/pcs"
)

// Definition is one slot's discovered (or default-injected) vocabulary.
// Axes the slot does not use stay nil.
type Definition struct {
	States   []string
	Visemes  []string
	Emotions []string
	Shapes   []string
}

// Anchor is a named 2-D reference point on the character.
type Anchor struct {
	X float64
	Y float64
}

// Result is the aggregation output: slot definitions plus the layers that
// back each slot, which downstream packing needs.
type Result struct {
	Slots   map[string]Definition
	Members map[string][]pcs.LayerRecord
	Anchors map[string]Anchor
}

var titleCaser = cases.Title(language.English)

// Key derives the slot key for a tag, canonicalizing all-lowercase part
// names so "eye" and "Eye" land in the same slot. Mixed-case parts are
// trusted as authored.
func Key(tag *pcs.Tag) string {
	if tag == nil || tag.Part == "" {
		return pcs.UnknownSlot
	}
	part := tag.Part
	if part == strings.ToLower(part) {
		part = titleCaser.String(part)
	}
	return part + tag.Side
}

// Aggregate groups tagged layers into slots and computes per-axis
// vocabularies. Untagged layers are skipped. The output is deterministic:
// each vocabulary is the sorted set of distinct values discovered among the
// slot's members, with canonical defaults injected only into empty axes of
// well-known slots.
func Aggregate(records []pcs.LayerRecord) *Result {
	result := &Result{
		Slots:   make(map[string]Definition),
		Members: make(map[string][]pcs.LayerRecord),
		Anchors: map[string]Anchor{"headPivot": {X: 256, Y: 128}},
	}

	for _, record := range records {
		if record.Tag == nil {
			continue
		}
		key := Key(record.Tag)
		result.Members[key] = append(result.Members[key], record)
	}

	for key, members := range result.Members {
		def := Definition{
			States:   collectAxis(members, func(t *pcs.Tag) string { return t.State }),
			Visemes:  collectAxis(members, func(t *pcs.Tag) string { return t.Viseme }),
			Emotions: collectAxis(members, func(t *pcs.Tag) string { return t.Emotion }),
			Shapes:   collectAxis(members, func(t *pcs.Tag) string { return t.Shape }),
		}
		if key != pcs.UnknownSlot {
			injectDefaults(key, &def)
		}
		result.Slots[key] = def
	}

	return result
}

// collectAxis gathers the sorted distinct non-empty values of one axis.
func collectAxis(members []pcs.LayerRecord, axis func(*pcs.Tag) string) []string {
	seen := make(map[string]struct{})
	for _, member := range members {
		if value := axis(member.Tag); value != "" {
			seen[value] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for value := range seen {
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

// injectDefaults fills empty axes of well-known slots with the canonical
// vocabularies. Axes the slot already uses are never padded.
func injectDefaults(key string, def *Definition) {
	switch {
	case strings.HasPrefix(key, "Eye"):
		if def.States == nil {
			def.States = DefaultEyeStates()
		}
	case strings.HasPrefix(key, "Brow"):
		if def.Shapes == nil {
			def.Shapes = DefaultBrowShapes()
		}
	case key == "Mouth":
		if def.Visemes == nil {
			def.Visemes = DefaultVisemes()
		}
		if def.Emotions == nil {
			def.Emotions = DefaultEmotions()
		}
	}
}

// Contains reports whether the definition's given axis includes value.
func (d Definition) Contains(axis, value string) bool {
	var list []string
	switch axis {
	case "state":
		list = d.States
	case "viseme":
		list = d.Visemes
	case "emotion":
		list = d.Emotions
	case "shape":
		list = d.Shapes
	}
	for _, candidate := range list {
		if candidate == value {
			return true
		}
	}
	return false
}
