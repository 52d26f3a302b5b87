// Package image provides image loading and the pixel source boundary used by
// the colour engine.
package image

import (
	"errors"
	"fmt"
	"image"

	"github.com/tingelabs/tinge/internal/colour"
)

var (
	// ErrNotFound indicates the referenced image does not exist.
	ErrNotFound = errors.New("image not found")

	// ErrDecode indicates the image exists but could not be decoded.
	ErrDecode = errors.New("image could not be decoded")
)

// Source supplies decoded pixel data for a named image. Implementations hide
// where images live and what formats they use; the engine only ever sees a
// PixelBuffer.
type Source interface {
	// Pixels returns the decoded pixel data for the given image reference.
	// Fails with ErrNotFound or ErrDecode.
	Pixels(ref string) (*PixelBuffer, error)
}

// PixelBuffer holds decoded pixel data as a flat row-major RGB slice.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []colour.RGB
}

// Validate checks the buffer holds usable pixel data.
func (b *PixelBuffer) Validate() error {
	if b == nil || b.Width <= 0 || b.Height <= 0 || len(b.Pix) == 0 {
		return fmt.Errorf("pixel buffer is empty or has zero dimensions")
	}
	if len(b.Pix) != b.Width*b.Height {
		return fmt.Errorf("pixel buffer has %d pixels, want %d (%dx%d)", len(b.Pix), b.Width*b.Height, b.Width, b.Height)
	}
	return nil
}

// Image converts the buffer to an image.RGBA for algorithms that operate on
// the standard image interface.
func (b *PixelBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := b.Pix[y*b.Width+x]
			offset := img.PixOffset(x, y)
			img.Pix[offset] = p.R
			img.Pix[offset+1] = p.G
			img.Pix[offset+2] = p.B
			img.Pix[offset+3] = 255
		}
	}
	return img
}

// FromImage converts a decoded image to a PixelBuffer.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	buf := &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]colour.RGB, 0, width*height),
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buf.Pix = append(buf.Pix, colour.ToRGB(img.At(x, y)))
		}
	}
	return buf
}
