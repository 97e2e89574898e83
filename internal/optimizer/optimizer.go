// Package optimizer produces delivery-sized copies of rendered images.
package optimizer

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Optimizer scales images into a target bounding box, preserving aspect ratio.
type Optimizer struct {
	targetWidth  int
	targetHeight int
}

// New builds an optimizer for the given target box.
func New(targetWidth, targetHeight int) (*Optimizer, error) {
	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, fmt.Errorf("target dimensions must be positive, got %dx%d", targetWidth, targetHeight)
	}
	return &Optimizer{targetWidth: targetWidth, targetHeight: targetHeight}, nil
}

// FitSize computes the scaled dimensions for a source image. Images already
// inside the box keep their size.
func (o *Optimizer) FitSize(srcWidth, srcHeight int) (int, int) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0
	}
	if srcWidth <= o.targetWidth && srcHeight <= o.targetHeight {
		return srcWidth, srcHeight
	}
	scaleW := float64(o.targetWidth) / float64(srcWidth)
	scaleH := float64(o.targetHeight) / float64(srcHeight)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	w := int(float64(srcWidth) * scale)
	h := int(float64(srcHeight) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Optimize scales the image into the target box using Catmull-Rom
// resampling. Images that already fit are returned untouched.
func (o *Optimizer) Optimize(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := o.FitSize(bounds.Dx(), bounds.Dy())
	if w == bounds.Dx() && h == bounds.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

// OptimizeFile reads a PNG, scales it, and writes the result to outPath.
func (o *Optimizer) OptimizeFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer in.Close()

	src, err := png.Decode(in)
	if err != nil {
		return fmt.Errorf("decode image %s: %w", inPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, o.Optimize(src)); err != nil {
		return fmt.Errorf("encode image %s: %w", outPath, err)
	}
	return nil
}
