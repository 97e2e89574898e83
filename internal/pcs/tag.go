package pcs

import (
	"regexp"
	"strings"
)

// Tag is the structured classification parsed from a layer name annotation.
// Axes are independent: a tag may carry a state and an emotion at once.
type Tag struct {
	Group   string
	Part    string
	Side    string
	State   string
	Viseme  string
	Emotion string
	Shape   string
	Variant string
	Layer   string
	Turn    string
	Blush   string

	// Extra holds key=value pairs whose key is not a known axis.
	Extra map[string]string
}

// tagPattern matches the first bracket-delimited annotation in a layer name.
var tagPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// ParseName splits a layer display name into its base name and an optional
// tag. Names without a bracket annotation are returned unchanged with a nil
// tag. Tokens inside the brackets that lack '=' are discarded silently.
func ParseName(name string) (string, *Tag) {
	match := tagPattern.FindString(name)
	if match == "" {
		return name, nil
	}
	base := strings.TrimSpace(strings.Replace(name, match, "", 1))
	tag := ParseTag(match)
	return base, tag
}

// ParseTag parses the interior of a bracket annotation. The surrounding
// brackets are optional. Parsing degrades to a partial or empty tag rather
// than failing.
func ParseTag(raw string) *Tag {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")

	tag := &Tag{}
	for _, token := range strings.Fields(raw) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		tag.assign(key, value)
	}
	return tag
}

// Apply returns a copy of the tag with the given key/value mapping applied.
// The receiver is never mutated; rule application stays order-independent.
func (t *Tag) Apply(mapping map[string]string) *Tag {
	out := t.Clone()
	for key, value := range mapping {
		out.assign(strings.ToLower(key), value)
	}
	return out
}

// Clone returns a deep copy of the tag. Cloning a nil tag yields an empty one.
func (t *Tag) Clone() *Tag {
	out := &Tag{}
	if t == nil {
		return out
	}
	*out = *t
	if t.Extra != nil {
		out.Extra = make(map[string]string, len(t.Extra))
		for k, v := range t.Extra {
			out.Extra[k] = v
		}
	} else {
		out.Extra = nil
	}
	return out
}

func (t *Tag) assign(key, value string) {
	switch key {
	case "group":
		t.Group = value
	case "part":
		t.Part = value
	case "side":
		t.Side = value
	case "state":
		t.State = value
	case "viseme":
		t.Viseme = value
	case "emotion":
		t.Emotion = value
	case "shape":
		t.Shape = value
	case "variant":
		t.Variant = value
	case "layer":
		t.Layer = value
	case "turn":
		t.Turn = value
	case "blush":
		t.Blush = value
	default:
		if t.Extra == nil {
			t.Extra = make(map[string]string, 1)
		}
		t.Extra[key] = value
	}
}

// IsZero reports whether no axis and no extra entry is set.
func (t *Tag) IsZero() bool {
	if t == nil {
		return true
	}
	if len(t.Extra) > 0 {
		return false
	}
	return t.Group == "" && t.Part == "" && t.Side == "" && t.State == "" &&
		t.Viseme == "" && t.Emotion == "" && t.Shape == "" && t.Variant == "" &&
		t.Layer == "" && t.Turn == "" && t.Blush == ""
}

// SlotKey derives the slot a tagged layer belongs to: the part concatenated
// with the side. Tags without a part map to the "Unknown" sentinel slot.
func (t *Tag) SlotKey() string {
	if t == nil || t.Part == "" {
		return UnknownSlot
	}
	return t.Part + t.Side
}

// UnknownSlot collects tagged layers whose tag carries no part.
const UnknownSlot = "Unknown"

// StateKey derives the axis/value suffix used in atlas slice keys. Axis
// precedence follows the convention order: viseme, emotion, state, shape.
func (t *Tag) StateKey() string {
	switch {
	case t == nil:
		return "default"
	case t.Viseme != "":
		return "viseme/" + t.Viseme
	case t.Emotion != "":
		return "emotion/" + t.Emotion
	case t.State != "":
		return "state/" + t.State
	case t.Shape != "":
		return "shape/" + t.Shape
	default:
		return "default"
	}
}
