package pcs

import "strings"

// Box is a layer bounding box in document coordinates.
type Box struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal extent of the box.
func (b Box) Width() int { return b.Right - b.Left }

// Height returns the vertical extent of the box.
func (b Box) Height() int { return b.Bottom - b.Top }

// LayerRecord describes one scanned layer. Records are created once per scan
// pass; only the Tag field may be enriched afterwards, and only before
// aggregation begins.
type LayerRecord struct {
	// Name is the untouched display name from the source document.
	Name string
	// BaseName is the display name with the tag annotation removed.
	BaseName string
	// Path is the ancestry path from the root, ending with this layer.
	Path []string
	// Index is the scan order position.
	Index int
	// Visible mirrors the document's visibility flag.
	Visible bool
	// BlendMode is the document's blend mode identifier.
	BlendMode string
	// Bounds is the layer bounding box; zero-area when unavailable.
	Bounds Box
	// Tag is the parsed or rule-inferred classification; nil when the layer
	// could not be classified.
	Tag *Tag
}

// PathString joins the ancestry path with slashes for folder-rule matching
// and display.
func (r LayerRecord) PathString() string {
	return strings.Join(r.Path, "/")
}

// SliceKey derives the atlas slice key for a classified layer: group, part,
// side when present, then the axis/value pair, falling back to the layer name
// for layers with nothing else to say.
func (r LayerRecord) SliceKey() string {
	if r.Tag == nil {
		return UnknownSlot + "/" + r.Name
	}

	parts := make([]string, 0, 4)
	if r.Tag.Group != "" {
		parts = append(parts, r.Tag.Group)
	}
	if r.Tag.Part != "" {
		parts = append(parts, r.Tag.Part)
		if r.Tag.Side != "" {
			parts = append(parts, r.Tag.Side)
		}
	}
	if key := r.Tag.StateKey(); key != "default" {
		parts = append(parts, key)
	}
	if len(parts) == 0 {
		return r.Name
	}
	return strings.Join(parts, "/")
}
