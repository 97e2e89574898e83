package layertree

import (
	"errors"
	"image"

	"avatarforge/internal/pcs"
)

// ErrNoPixels is returned by Render for nodes that have no raster content,
// such as groups and empty layers.
var ErrNoPixels = errors.New("layertree: node has no pixel content")

// Node is one layer or group in the document tree.
type Node interface {
	// Name returns the authored display name.
	Name() string
	// Visible reports the authored visibility flag.
	Visible() bool
	// BlendMode returns the blend mode identifier, "normal" when unset.
	BlendMode() string
	// Bounds returns the layer bounding box; zero-area when unknown.
	Bounds() pcs.Box
	// Children returns child nodes in document order; nil for leaves.
	Children() []Node
	// Render produces the layer's pixels. Groups return ErrNoPixels.
	Render() (image.Image, error)
}

// Document is a loaded layered artwork.
type Document interface {
	// Name identifies the document, typically the source file stem.
	Name() string
	// Source identifies where the document came from.
	Source() string
	// Width and Height are the canvas dimensions in pixels.
	Width() int
	Height() int
	// Layers returns the top-level nodes in document order.
	Layers() []Node
}
