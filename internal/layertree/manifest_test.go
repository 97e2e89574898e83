package layertree

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestDocument(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	file, err := os.Create(filepath.Join(dir, "mouth.png"))
	if err != nil {
		t.Fatalf("create layer png: %v", err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode layer png: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close layer png: %v", err)
	}

	manifest := `{
  "name": "demo",
  "width": 512,
  "height": 512,
  "layers": [
    {
      "name": "Face",
      "layers": [
        {"name": "Mouth [part=Mouth viseme=AI]", "image": "mouth.png", "bounds": [10, 20, 14, 23]},
        {"name": "# guides", "visible": false}
      ]
    }
  ]
}`
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return dir
}

func TestOpenDir(t *testing.T) {
	dir := writeTestDocument(t)

	doc, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if doc.Name() != "demo" {
		t.Fatalf("expected document name demo, got %q", doc.Name())
	}
	if doc.Width() != 512 || doc.Height() != 512 {
		t.Fatalf("unexpected canvas size %dx%d", doc.Width(), doc.Height())
	}

	roots := doc.Layers()
	if len(roots) != 1 || roots[0].Name() != "Face" {
		t.Fatalf("unexpected root layers: %v", roots)
	}
	kids := roots[0].Children()
	if len(kids) != 2 {
		t.Fatalf("expected 2 children, got %d", len(kids))
	}

	mouth := kids[0]
	box := mouth.Bounds()
	if box.Width() != 4 || box.Height() != 3 {
		t.Fatalf("unexpected bounds %+v", box)
	}
	img, err := mouth.Render()
	if err != nil {
		t.Fatalf("render mouth layer: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("unexpected image size %v", img.Bounds())
	}

	guides := kids[1]
	if guides.Visible() {
		t.Fatal("expected guides layer to be hidden")
	}
	if _, err := guides.Render(); err != ErrNoPixels {
		t.Fatalf("expected ErrNoPixels for imageless layer, got %v", err)
	}
}

func TestOpenDirMissingManifest(t *testing.T) {
	if _, err := OpenDir(t.TempDir()); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestIsDocumentDir(t *testing.T) {
	dir := writeTestDocument(t)
	if !IsDocumentDir(dir) {
		t.Fatal("expected document dir to be recognized")
	}
	if IsDocumentDir(t.TempDir()) {
		t.Fatal("expected empty dir to be rejected")
	}
}

func TestMemoryNodeDefaults(t *testing.T) {
	node := &MemoryNode{LayerName: "Sketch"}
	if node.BlendMode() != "normal" {
		t.Fatalf("expected normal blend mode, got %q", node.BlendMode())
	}
	if !node.Visible() {
		t.Fatal("expected visible by default")
	}
	if _, err := node.Render(); err != ErrNoPixels {
		t.Fatalf("expected ErrNoPixels, got %v", err)
	}
}

func TestMemoryNodeBoundsFromImage(t *testing.T) {
	node := &MemoryNode{
		LayerName: "Eye",
		Image:     image.NewRGBA(image.Rect(0, 0, 8, 6)),
	}
	box := node.Bounds()
	if box.Width() != 8 || box.Height() != 6 {
		t.Fatalf("unexpected bounds %+v", box)
	}
}
