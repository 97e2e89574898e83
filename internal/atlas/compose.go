package atlas

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
)

// Compose renders the layout into a single RGBA sheet. The canvas starts
// fully transparent; each entry is drawn over its placement rectangle.
func (l *Layout) Compose() *image.RGBA {
	sheet := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	for _, entry := range l.entries {
		rect, ok := l.Slices[entry.Key]
		if !ok {
			continue
		}
		target := image.Rect(rect.X, rect.Y, rect.X+rect.W, rect.Y+rect.H)
		draw.Draw(sheet, target, entry.Image, entry.Image.Bounds().Min, draw.Over)
	}
	return sheet
}

// WritePNG composes the sheet and writes it to path.
func (l *Layout) WritePNG(path string) error {
	sheet := l.Compose()
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create atlas file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, sheet); err != nil {
		return fmt.Errorf("encode atlas png: %w", err)
	}
	return nil
}
