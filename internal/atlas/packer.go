package atlas

import (
	"image"
	"math"
	"sort"
)

// Rect is a placement rectangle inside the packed sheet.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Entry is one image to pack, addressed by its slice key.
type Entry struct {
	Key   string
	Image image.Image
}

// Layout is the result of a packing pass.
type Layout struct {
	Width  int
	Height int
	Slices map[string]Rect
	// order preserves the packed entry sequence for composition.
	entries []Entry
}

// minCanvasSide is the floor for the initial canvas estimate.
const minCanvasSide = 512

// estimatePadding scales the square-root-of-area estimate to leave room for
// shelf waste.
const estimatePadding = 1.2

// Pack lays out the entries on a single sheet. Entries are sorted by
// descending pixel area with a stable sort, so ties keep input order and
// identical inputs always produce identical layouts. An empty input yields a
// 1x1 layout with no slices.
func Pack(entries []Entry) *Layout {
	if len(entries) == 0 {
		return &Layout{Width: 1, Height: 1, Slices: map[string]Rect{}}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return area(sorted[i].Image) > area(sorted[j].Image)
	})

	var totalArea int
	for _, entry := range sorted {
		totalArea += area(entry.Image)
	}
	side := int(math.Sqrt(float64(totalArea)) * estimatePadding)
	if side < minCanvasSide {
		side = minCanvasSide
	}

	canvasWidth := side
	canvasHeight := side
	slices := make(map[string]Rect, len(sorted))

	cursorX, cursorY, rowHeight := 0, 0, 0
	for _, entry := range sorted {
		bounds := entry.Image.Bounds()
		w, h := bounds.Dx(), bounds.Dy()

		if cursorX+w > canvasWidth {
			cursorX = 0
			cursorY += rowHeight
			rowHeight = 0
		}
		for cursorY+h > canvasHeight {
			canvasHeight *= 2
		}

		slices[entry.Key] = Rect{X: cursorX, Y: cursorY, W: w, H: h}
		cursorX += w
		if h > rowHeight {
			rowHeight = h
		}
	}

	// Trim to the tight bounding box of all placements.
	trimWidth, trimHeight := 0, 0
	for _, rect := range slices {
		if rect.X+rect.W > trimWidth {
			trimWidth = rect.X + rect.W
		}
		if rect.Y+rect.H > trimHeight {
			trimHeight = rect.Y + rect.H
		}
	}

	return &Layout{
		Width:   trimWidth,
		Height:  trimHeight,
		Slices:  slices,
		entries: sorted,
	}
}

func area(img image.Image) int {
	bounds := img.Bounds()
	return bounds.Dx() * bounds.Dy()
}
