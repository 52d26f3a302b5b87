package colour

import (
	"fmt"
	"image"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// KMeansExtractor implements colour extraction using k-means clustering.
// Cluster seeding is randomised, so palettes are representative but not
// bit-for-bit reproducible; use MedianCutExtractor where determinism matters.
type KMeansExtractor struct{}

// NewKMeansExtractor creates a new KMeansExtractor.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{}
}

// Extract extracts colours from an image using k-means clustering.
// Colours are ordered by cluster size descending.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if err := validateImage(img, count); err != nil {
		return nil, err
	}

	pixels := samplePixels(img)
	if len(pixels) == 0 {
		return nil, ErrInvalidImage
	}

	unique := uniqueColours(pixels)
	if len(unique) <= count {
		return NewPalette(orderByFrequency(pixels, unique)), nil
	}

	observations := make(clusters.Observations, len(pixels))
	for i, p := range pixels {
		observations[i] = clusters.Coordinates{
			float64(p.R),
			float64(p.G),
			float64(p.B),
		}
	}

	km := kmeans.New()
	result, err := km.Partition(observations, count)
	if err != nil {
		return nil, fmt.Errorf("k-means clustering failed: %w", err)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return len(result[i].Observations) > len(result[j].Observations)
	})

	colors := make([]RGB, 0, len(result))
	for _, cluster := range result {
		if len(cluster.Observations) == 0 {
			continue
		}
		colors = append(colors, RGB{
			R: clampChannel(cluster.Center[0]),
			G: clampChannel(cluster.Center[1]),
			B: clampChannel(cluster.Center[2]),
		})
	}

	return NewPalette(colors), nil
}

// clampChannel rounds a float channel value and clamps it to [0, 255].
func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
