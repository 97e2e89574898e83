package testsupport

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WritePNG fills the target path with a solid-color image.
func WritePNG(t testing.TB, path string, w, h int, c color.Color) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// WriteDocument exports a minimal tagged layer directory under parent and
// returns its path. The document holds one face group with two mouth layers,
// enough to exercise the full scan-classify-pack path.
func WriteDocument(t testing.TB, parent, name string) string {
	t.Helper()

	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	WritePNG(t, filepath.Join(dir, "mouth_rest.png"), 32, 16, color.RGBA{R: 255, A: 255})
	WritePNG(t, filepath.Join(dir, "mouth_ai.png"), 32, 16, color.RGBA{G: 255, A: 255})

	manifest := fmt.Sprintf(`{
  "name": %q,
  "width": 256,
  "height": 256,
  "layers": [
    {"name": "Face", "layers": [
      {"name": "mouth rest [group=Face part=Mouth viseme=REST]", "image": "mouth_rest.png", "bounds": [8, 32, 40, 48]},
      {"name": "mouth AI [group=Face part=Mouth viseme=AI]", "image": "mouth_ai.png", "bounds": [8, 32, 40, 48]}
    ]}
  ]
}`, name)
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return dir
}
