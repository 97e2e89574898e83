package layertree

import (
	"image"

	"avatarforge/internal/pcs"
)

// MemoryNode is a Node assembled in memory.
type MemoryNode struct {
	LayerName string
	Hidden    bool
	Blend     string
	Box       pcs.Box
	Kids      []*MemoryNode

	// Image is the rendered content for leaf layers. RenderErr, when set,
	// simulates a per-layer extraction failure.
	Image     image.Image
	RenderErr error
}

// Name implements Node.
func (n *MemoryNode) Name() string { return n.LayerName }

// Visible implements Node.
func (n *MemoryNode) Visible() bool { return !n.Hidden }

// BlendMode implements Node.
func (n *MemoryNode) BlendMode() string {
	if n.Blend == "" {
		return "normal"
	}
	return n.Blend
}

// Bounds implements Node.
func (n *MemoryNode) Bounds() pcs.Box {
	if n.Box == (pcs.Box{}) && n.Image != nil {
		b := n.Image.Bounds()
		return pcs.Box{Left: b.Min.X, Top: b.Min.Y, Right: b.Max.X, Bottom: b.Max.Y}
	}
	return n.Box
}

// Children implements Node.
func (n *MemoryNode) Children() []Node {
	if len(n.Kids) == 0 {
		return nil
	}
	out := make([]Node, len(n.Kids))
	for i, kid := range n.Kids {
		out[i] = kid
	}
	return out
}

// Render implements Node.
func (n *MemoryNode) Render() (image.Image, error) {
	if n.RenderErr != nil {
		return nil, n.RenderErr
	}
	if n.Image == nil {
		return nil, ErrNoPixels
	}
	return n.Image, nil
}

// MemoryDocument is a Document assembled in memory.
type MemoryDocument struct {
	DocName   string
	DocSource string
	W, H      int
	Roots     []*MemoryNode
}

// Name implements Document.
func (d *MemoryDocument) Name() string { return d.DocName }

// Source implements Document.
func (d *MemoryDocument) Source() string { return d.DocSource }

// Width implements Document.
func (d *MemoryDocument) Width() int { return d.W }

// Height implements Document.
func (d *MemoryDocument) Height() int { return d.H }

// Layers implements Document.
func (d *MemoryDocument) Layers() []Node {
	out := make([]Node, len(d.Roots))
	for i, root := range d.Roots {
		out[i] = root
	}
	return out
}
