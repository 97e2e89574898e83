package layertree

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"avatarforge/internal/pcs"
)

// manifestFile is the well-known name of the document descriptor inside an
// exported layer directory.
const manifestFile = "manifest.json"

type manifest struct {
	Name   string          `json:"name"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Layers []manifestLayer `json:"layers"`
}

type manifestLayer struct {
	Name      string          `json:"name"`
	Visible   *bool           `json:"visible,omitempty"`
	BlendMode string          `json:"blend_mode,omitempty"`
	Bounds    []int           `json:"bounds,omitempty"`
	Image     string          `json:"image,omitempty"`
	Layers    []manifestLayer `json:"layers,omitempty"`
}

// OpenDir loads a document from a directory containing manifest.json and the
// PNG files it references. Layer pixels are decoded lazily on Render.
func OpenDir(dir string) (Document, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	name := strings.TrimSpace(m.Name)
	if name == "" {
		name = filepath.Base(dir)
	}

	doc := &dirDocument{
		name:   name,
		source: dir,
		width:  m.Width,
		height: m.Height,
	}
	for i := range m.Layers {
		doc.roots = append(doc.roots, newDirNode(dir, m.Layers[i]))
	}
	return doc, nil
}

// IsDocumentDir reports whether dir looks like an exported layer directory.
func IsDocumentDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, manifestFile))
	return err == nil && !info.IsDir()
}

type dirDocument struct {
	name   string
	source string
	width  int
	height int
	roots  []Node
}

func (d *dirDocument) Name() string   { return d.name }
func (d *dirDocument) Source() string { return d.source }
func (d *dirDocument) Width() int     { return d.width }
func (d *dirDocument) Height() int    { return d.height }
func (d *dirDocument) Layers() []Node { return d.roots }

type dirNode struct {
	dir   string
	entry manifestLayer
	kids  []Node
}

func newDirNode(dir string, entry manifestLayer) *dirNode {
	node := &dirNode{dir: dir, entry: entry}
	for i := range entry.Layers {
		node.kids = append(node.kids, newDirNode(dir, entry.Layers[i]))
	}
	return node
}

func (n *dirNode) Name() string { return n.entry.Name }

func (n *dirNode) Visible() bool {
	if n.entry.Visible == nil {
		return true
	}
	return *n.entry.Visible
}

func (n *dirNode) BlendMode() string {
	if n.entry.BlendMode == "" {
		return "normal"
	}
	return n.entry.BlendMode
}

func (n *dirNode) Bounds() pcs.Box {
	if len(n.entry.Bounds) == 4 {
		return pcs.Box{
			Left:   n.entry.Bounds[0],
			Top:    n.entry.Bounds[1],
			Right:  n.entry.Bounds[2],
			Bottom: n.entry.Bounds[3],
		}
	}
	return pcs.Box{}
}

func (n *dirNode) Children() []Node { return n.kids }

func (n *dirNode) Render() (image.Image, error) {
	if n.entry.Image == "" {
		return nil, ErrNoPixels
	}
	path := filepath.Join(n.dir, filepath.FromSlash(n.entry.Image))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layer image: %w", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode layer image %s: %w", n.entry.Image, err)
	}
	return img, nil
}
