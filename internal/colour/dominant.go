package colour

import (
	"image"

	"github.com/cenkalti/dominantcolor"
)

// DominantExtractor extracts the single most dominant colour from an image.
// The count parameter is ignored; the resulting palette always has one entry.
type DominantExtractor struct{}

// NewDominantExtractor creates a new DominantExtractor.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{}
}

// Extract returns a single-colour palette holding the dominant colour.
func (e *DominantExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if err := validateImage(img, count); err != nil {
		return nil, err
	}

	c := dominantcolor.Find(img)
	return NewPalette([]RGB{{R: c.R, G: c.G, B: c.B}}), nil
}
