package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tingelabs/tinge/internal/colour"
	"github.com/tingelabs/tinge/internal/engine"
	"github.com/tingelabs/tinge/internal/image"
)

var (
	// Apply command flags
	applyColours    int
	applyAlgorithm  string
	applyTransition int
)

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply <image>",
	Short: "Apply an image's palette to lights as a static scene",
	Long: `Extract a colour palette from an image and apply it to the target
lights once. Each light receives one palette colour; with more lights
than colours the palette wraps around.

A light that fails is reported but never blocks the others: the scene
counts as applied as long as at least one light accepted its colour.

Examples:
  # Apply to the configured lights
  tinge apply sunset.jpg

  # Apply to specific lights with a slow fade
  tinge apply --lights light.desk,light.shelf --transition 5 sunset.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().IntVarP(&applyColours, "colours", "c", 0, "number of colours to extract (default from config)")
	applyCmd.Flags().StringVarP(&applyAlgorithm, "algorithm", "a", "", "extraction algorithm (default from config)")
	applyCmd.Flags().IntVarP(&applyTransition, "transition", "t", 0, "fade time in seconds (default from config)")
}

// runApply executes the apply command.
func runApply(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	if err := validateRef(imagePath); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	targets, err := requireLights(cfg)
	if err != nil {
		return err
	}

	colours := cfg.Colors
	if applyColours > 0 {
		colours = applyColours
	}
	algorithm := cfg.Algorithm
	if applyAlgorithm != "" {
		algorithm = applyAlgorithm
	}
	transition := cfg.TransitionDuration()
	if applyTransition > 0 {
		transition = time.Duration(applyTransition) * time.Second
	}

	logger := newLogger()
	eng := newEngine(cfg, logger)

	fmt.Printf("Applying %q to %d lights\n", image.SceneName(imagePath), len(targets))
	started := time.Now()

	report, err := eng.ApplyStatic(context.Background(), imagePath, engine.ApplyOptions{
		Targets:    targets,
		Colors:     colours,
		Algorithm:  colour.Algorithm(algorithm),
		Transition: transition,
		Timeout:    cfg.Timeout(),
	})
	if err != nil {
		return err
	}

	printReport(report, time.Since(started))
	return report.Err()
}
