// Package bundle assembles and serializes the avatar manifest that ties the
// packed atlas, slot vocabularies, and anchors into a single deliverable.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"

	"avatarforge/internal/atlas"
	"avatarforge/internal/slots"
)

// SchemaID is the relative schema reference stamped into every manifest.
const SchemaID = "./schemas/avatar.schema.json"

// AtlasFileName is the atlas image path recorded in the manifest. The image
// sits next to the manifest so the reference stays relative.
const AtlasFileName = "atlas.png"

// Meta identifies the avatar and the tool that produced it.
type Meta struct {
	Name      string `json:"name"`
	Source    string `json:"source"`
	Generator string `json:"generator"`
}

// Images points at the atlas and the per-layer slice rectangles within it.
type Images struct {
	Atlas  string                `json:"atlas"`
	Slices map[string]atlas.Rect `json:"slices"`
}

// SlotVocabulary is a slot's serialized vocabulary. Unused axes are omitted
// from the JSON entirely.
type SlotVocabulary struct {
	States   []string `json:"states,omitempty"`
	Visemes  []string `json:"visemes,omitempty"`
	Emotions []string `json:"emotions,omitempty"`
	Shapes   []string `json:"shapes,omitempty"`
}

// Anchor is a named reference point, in atlas pixel coordinates.
type Anchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Avatar is the complete manifest written to avatar.json.
type Avatar struct {
	Schema  string                    `json:"$schema"`
	Meta    Meta                      `json:"meta"`
	Images  Images                    `json:"images"`
	Slots   map[string]SlotVocabulary `json:"slots"`
	Anchors map[string]Anchor         `json:"anchors"`
}

// New assembles a manifest from the aggregation result and the packed layout.
func New(name, source, version string, agg *slots.Result, layout *atlas.Layout) *Avatar {
	av := &Avatar{
		Schema: SchemaID,
		Meta: Meta{
			Name:      name,
			Source:    source,
			Generator: fmt.Sprintf("avatarforge@%s", version),
		},
		Images: Images{
			Atlas:  AtlasFileName,
			Slices: map[string]atlas.Rect{},
		},
		Slots:   map[string]SlotVocabulary{},
		Anchors: map[string]Anchor{},
	}
	if layout != nil {
		for key, rect := range layout.Slices {
			av.Images.Slices[key] = rect
		}
	}
	if agg != nil {
		for slot, def := range agg.Slots {
			av.Slots[slot] = SlotVocabulary{
				States:   def.States,
				Visemes:  def.Visemes,
				Emotions: def.Emotions,
				Shapes:   def.Shapes,
			}
		}
		for name, anchor := range agg.Anchors {
			av.Anchors[name] = Anchor{X: anchor.X, Y: anchor.Y}
		}
	}
	return av
}

// Marshal renders the manifest as indented JSON.
func (a *Avatar) Marshal() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// Load reads an avatar manifest back from disk.
func Load(path string) (*Avatar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read avatar manifest: %w", err)
	}
	var av Avatar
	if err := json.Unmarshal(raw, &av); err != nil {
		return nil, fmt.Errorf("parse avatar manifest: %w", err)
	}
	return &av, nil
}

// SlotDefinitions converts the manifest's slot vocabularies back into the
// aggregation form used by graph synthesis.
func (a *Avatar) SlotDefinitions() map[string]slots.Definition {
	defs := make(map[string]slots.Definition, len(a.Slots))
	for name, vocab := range a.Slots {
		defs[name] = slots.Definition{
			States:   vocab.States,
			Visemes:  vocab.Visemes,
			Emotions: vocab.Emotions,
			Shapes:   vocab.Shapes,
		}
	}
	return defs
}

// WriteFile writes the manifest to path.
func (a *Avatar) WriteFile(path string) error {
	raw, err := a.Marshal()
	if err != nil {
		return fmt.Errorf("marshal avatar manifest: %w", err)
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write avatar manifest: %w", err)
	}
	return nil
}
