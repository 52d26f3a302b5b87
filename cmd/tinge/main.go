// Tinge - paint your lights with the colours of an image
//
// Tinge extracts colour palettes from images and applies them to smart
// lights, as static scenes or as continuous colour animations.
package main

import (
	"os"

	"github.com/tingelabs/tinge/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
