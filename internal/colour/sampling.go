package colour

import (
	"image"
	"math"
)

// maxSamples bounds the number of pixels fed into an extraction algorithm.
// Subsampling is a performance policy, not a correctness one: the stride is
// derived from the image size alone, so results are stable for the same input.
const maxSamples = 10000

// samplePixels samples pixels from the image as RGB values.
// Small images are sampled exhaustively; large images use grid sampling with
// a uniform stride so at most maxSamples pixels are returned.
func samplePixels(img image.Image) []RGB {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	totalPixels := width * height

	if totalPixels <= maxSamples {
		pixels := make([]RGB, 0, totalPixels)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, ToRGB(img.At(x, y)))
			}
		}
		return pixels
	}

	// Calculate step size to get approximately maxSamples.
	step := max(int(math.Sqrt(float64(totalPixels)/float64(maxSamples))), 1)

	pixels := make([]RGB, 0, maxSamples)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, ToRGB(img.At(x, y)))
			if len(pixels) >= maxSamples {
				return pixels
			}
		}
	}

	return pixels
}

// uniqueColours returns the distinct colours in pixels, in first-seen order.
func uniqueColours(pixels []RGB) []RGB {
	seen := make(map[RGB]bool, len(pixels))
	unique := make([]RGB, 0, len(pixels))
	for _, p := range pixels {
		if !seen[p] {
			unique = append(unique, p)
			seen[p] = true
		}
	}
	return unique
}
