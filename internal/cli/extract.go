package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tingelabs/tinge/internal/colour"
	"github.com/tingelabs/tinge/internal/image"
)

var (
	// Extract command flags
	extractColours     int
	extractAlgorithm   string
	extractSteps       int
	extractFormat      string
	extractOutput      string
	extractShowPreview bool
	extractGradient    bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract a colour palette from an image",
	Long: `Extract a colour palette from an image without touching any lights.

Useful for previewing what a scene will look like before applying or
animating it, or for exporting palettes to other tools.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 8 colours (default) from an image
  tinge extract sunset.jpg

  # Extract 4 colours with terminal previews
  tinge extract --preview --colours 4 sunset.jpg

  # Output as JSON
  tinge extract --format json sunset.jpg

  # Show the full animation gradient the palette expands into
  tinge extract --gradient --steps 10 --preview sunset.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntVarP(&extractColours, "colours", "c", 8, "number of colours to extract (1-256)")
	extractCmd.Flags().StringVarP(&extractAlgorithm, "algorithm", "a", "mediancut", "extraction algorithm (mediancut, kmeans, dominant)")
	extractCmd.Flags().IntVarP(&extractSteps, "steps", "s", 10, "interpolation steps per segment for --gradient")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour previews in terminal")
	extractCmd.Flags().BoolVar(&extractGradient, "gradient", false, "expand the palette into its animation gradient")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	if err := validateRef(imagePath); err != nil {
		return err
	}

	config := colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(extractAlgorithm),
		ColorCount: extractColours,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if globalVerbose {
		fmt.Fprintf(os.Stderr, "Loading image: %s\n", imagePath)
	}

	buf, err := image.NewCachingSource().Pixels(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	if globalVerbose {
		fmt.Fprintf(os.Stderr, "Image loaded: %dx%d\n", buf.Width, buf.Height)
		fmt.Fprintf(os.Stderr, "Extracting %d colours using %s algorithm...\n", extractColours, extractAlgorithm)
	}

	extractor, err := colour.NewExtractor(config.Algorithm)
	if err != nil {
		return err
	}

	palette, err := extractor.Extract(buf.Image(), extractColours)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}

	colors := palette.Colors
	if extractGradient {
		path, err := colour.BuildPath(palette, extractSteps)
		if err != nil {
			return fmt.Errorf("failed to build gradient: %w", err)
		}
		colors = path
		if globalVerbose {
			fmt.Fprintf(os.Stderr, "Gradient: %d frames\n", len(colors))
		}
	}

	output, err := formatColors(colors, extractFormat)
	if err != nil {
		return err
	}

	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if globalVerbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", extractOutput)
		}
		return nil
	}

	fmt.Print(output)
	return nil
}

// formatColors renders a colour list in the requested output format.
func formatColors(colors []colour.RGB, format string) (string, error) {
	var sb strings.Builder
	switch format {
	case "hex":
		for _, c := range colors {
			if extractShowPreview {
				sb.WriteString(colour.Preview(c, 4))
				sb.WriteString(" ")
			}
			sb.WriteString(c.Hex())
			sb.WriteString("\n")
		}
	case "rgb":
		for _, c := range colors {
			if extractShowPreview {
				sb.WriteString(colour.Preview(c, 4))
				sb.WriteString(" ")
			}
			sb.WriteString(c.String())
			sb.WriteString("\n")
		}
	case "json":
		palette := &colour.Palette{Colors: colors}
		data, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to encode palette: %w", err)
		}
		sb.Write(data)
		sb.WriteString("\n")
	default:
		return "", fmt.Errorf("invalid output format: %s (valid: hex, rgb, json)", format)
	}
	return sb.String(), nil
}
