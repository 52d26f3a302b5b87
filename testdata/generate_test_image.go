// Scene image generator for exercising palette extraction by hand.
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	width := 400
	height := 400
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Vertical bands resembling a sunset scene, most prominent first.
	colors := []color.RGBA{
		{R: 244, G: 132, B: 66, A: 255},
		{R: 236, G: 96, B: 80, A: 255},
		{R: 191, G: 64, B: 100, A: 255},
		{R: 120, G: 52, B: 110, A: 255},
		{R: 58, G: 44, B: 112, A: 255},
	}

	bandHeight := height / len(colors)
	for y := 0; y < height; y++ {
		band := y / bandHeight
		if band >= len(colors) {
			band = len(colors) - 1
		}
		for x := 0; x < width; x++ {
			img.Set(x, y, colors[band])
		}
	}

	f, err := os.Create("sunset_test.png")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}
