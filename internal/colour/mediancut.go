package colour

import (
	"image"
	"sort"
)

// MedianCutExtractor implements colour extraction by median-cut quantisation.
// Unlike k-means it is fully deterministic: the same image and count always
// produce the same palette.
type MedianCutExtractor struct{}

// NewMedianCutExtractor creates a new MedianCutExtractor.
func NewMedianCutExtractor() *MedianCutExtractor {
	return &MedianCutExtractor{}
}

// Extract extracts colours from an image using median-cut quantisation.
// Colours are ordered by prominence (member pixel count) descending.
func (e *MedianCutExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if err := validateImage(img, count); err != nil {
		return nil, err
	}

	pixels := samplePixels(img)
	if len(pixels) == 0 {
		return nil, ErrInvalidImage
	}

	unique := uniqueColours(pixels)
	if len(unique) <= count {
		// Fewer distinct colours than requested: return them all, most
		// frequent first, no padding.
		return NewPalette(orderByFrequency(pixels, unique)), nil
	}

	boxes := []*colourBox{newColourBox(pixels)}
	for len(boxes) < count {
		idx := widestSplittableBox(boxes)
		if idx < 0 {
			break
		}
		lower, upper := boxes[idx].split()
		boxes[idx] = lower
		boxes = append(boxes, upper)
	}

	// Order boxes by member pixel count descending. This ordering is the
	// prominence contract the rest of the engine relies on.
	sort.SliceStable(boxes, func(i, j int) bool {
		return len(boxes[i].pixels) > len(boxes[j].pixels)
	})

	colors := make([]RGB, len(boxes))
	for i, box := range boxes {
		colors[i] = box.average()
	}

	return NewPalette(colors), nil
}

// orderByFrequency orders the distinct colours by their occurrence count in
// pixels, descending, preserving first-seen order between equal counts.
func orderByFrequency(pixels, unique []RGB) []RGB {
	counts := make(map[RGB]int, len(unique))
	for _, p := range pixels {
		counts[p]++
	}

	ordered := make([]RGB, len(unique))
	copy(ordered, unique)
	sort.SliceStable(ordered, func(i, j int) bool {
		return counts[ordered[i]] > counts[ordered[j]]
	})
	return ordered
}

// colourBox is a box of pixels in 3-D RGB space.
type colourBox struct {
	pixels           []RGB
	minR, minG, minB uint8
	maxR, maxG, maxB uint8
}

func newColourBox(pixels []RGB) *colourBox {
	box := &colourBox{pixels: pixels}
	box.shrink()
	return box
}

// shrink recomputes the bounding ranges from the member pixels.
func (b *colourBox) shrink() {
	if len(b.pixels) == 0 {
		return
	}
	b.minR, b.maxR = b.pixels[0].R, b.pixels[0].R
	b.minG, b.maxG = b.pixels[0].G, b.pixels[0].G
	b.minB, b.maxB = b.pixels[0].B, b.pixels[0].B
	for _, p := range b.pixels[1:] {
		b.minR = min(b.minR, p.R)
		b.maxR = max(b.maxR, p.R)
		b.minG = min(b.minG, p.G)
		b.maxG = max(b.maxG, p.G)
		b.minB = min(b.minB, p.B)
		b.maxB = max(b.maxB, p.B)
	}
}

// widestRange returns the largest channel range within the box.
func (b *colourBox) widestRange() int {
	return max(int(b.maxR)-int(b.minR), int(b.maxG)-int(b.minG), int(b.maxB)-int(b.minB))
}

// splittable reports whether the box can be partitioned further.
func (b *colourBox) splittable() bool {
	return len(b.pixels) >= 2 && b.widestRange() > 0
}

// split partitions the box at the median of its widest channel.
// Both halves are non-empty; the caller must have checked splittable().
func (b *colourBox) split() (lower, upper *colourBox) {
	rangeR := int(b.maxR) - int(b.minR)
	rangeG := int(b.maxG) - int(b.minG)
	rangeB := int(b.maxB) - int(b.minB)

	var channel func(RGB) uint8
	switch {
	case rangeR >= rangeG && rangeR >= rangeB:
		channel = func(p RGB) uint8 { return p.R }
	case rangeG >= rangeB:
		channel = func(p RGB) uint8 { return p.G }
	default:
		channel = func(p RGB) uint8 { return p.B }
	}

	sorted := make([]RGB, len(b.pixels))
	copy(sorted, b.pixels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return channel(sorted[i]) < channel(sorted[j])
	})

	mid := len(sorted) / 2
	// Nudge the cut off a run of equal values so both halves differ.
	for mid < len(sorted)-1 && channel(sorted[mid]) == channel(sorted[0]) {
		mid++
	}

	return newColourBox(sorted[:mid]), newColourBox(sorted[mid:])
}

// widestSplittableBox returns the index of the splittable box with the
// greatest channel range, or -1 when no box can be split further.
func widestSplittableBox(boxes []*colourBox) int {
	best := -1
	bestRange := -1
	for i, box := range boxes {
		if !box.splittable() {
			continue
		}
		if r := box.widestRange(); r > bestRange {
			best = i
			bestRange = r
		}
	}
	return best
}

// average returns the arithmetic mean of the member pixels' channels,
// rounded to the nearest integer and clamped to [0, 255].
func (b *colourBox) average() RGB {
	var sumR, sumG, sumB uint64
	for _, p := range b.pixels {
		sumR += uint64(p.R)
		sumG += uint64(p.G)
		sumB += uint64(p.B)
	}
	n := uint64(len(b.pixels))
	round := func(sum uint64) uint8 {
		v := (sum + n/2) / n
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return RGB{R: round(sumR), G: round(sumG), B: round(sumB)}
}
