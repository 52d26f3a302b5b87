package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tingelabs/tinge/internal/colour"
	"github.com/tingelabs/tinge/internal/engine"
	"github.com/tingelabs/tinge/internal/image"
)

var (
	// Animate command flags
	animateColours   int
	animateAlgorithm string
	animateSteps     int
	animateSpeed     int
	animateSync      bool
	animateDuration  time.Duration
)

// animateCmd represents the animate command
var animateCmd = &cobra.Command{
	Use:   "animate <image>",
	Short: "Animate lights through an image's colour gradient",
	Long: `Extract a colour palette from an image, expand it into a smooth cyclic
gradient and walk the target lights through it until interrupted.

By default each light is offset along the gradient, producing a
travelling wave of colour across the group; --sync makes every light
show the same colour instead. The animation runs in the foreground;
press Ctrl-C to stop it and restore manual control.

Examples:
  # Animate the configured lights, one gradient step every 5 seconds
  tinge animate sunset.jpg

  # Faster animation with all lights in lockstep
  tinge animate --speed 2 --sync sunset.jpg

  # Run for two minutes, then stop
  tinge animate --for 2m sunset.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnimate,
}

func init() {
	animateCmd.Flags().IntVarP(&animateColours, "colours", "c", 0, "number of colours to extract (default from config)")
	animateCmd.Flags().StringVarP(&animateAlgorithm, "algorithm", "a", "", "extraction algorithm (default from config)")
	animateCmd.Flags().IntVarP(&animateSteps, "steps", "s", 0, "interpolation steps per palette segment (default from config)")
	animateCmd.Flags().IntVar(&animateSpeed, "speed", 0, "seconds between gradient steps, 1-60 (default from config)")
	animateCmd.Flags().BoolVar(&animateSync, "sync", false, "all lights show the same colour instead of a staggered wave")
	animateCmd.Flags().DurationVar(&animateDuration, "for", 0, "stop automatically after this duration (default: run until interrupted)")
}

// runAnimate executes the animate command.
func runAnimate(cmd *cobra.Command, args []string) error {
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
	if animateColours > 0 {
		colours = animateColours
	}
	algorithm := cfg.Algorithm
	if animateAlgorithm != "" {
		algorithm = animateAlgorithm
	}
	steps := cfg.Steps
	if animateSteps > 0 {
		steps = animateSteps
	}
	interval := cfg.Interval()
	if animateSpeed > 0 {
		if animateSpeed > 60 {
			return fmt.Errorf("speed must be between 1 and 60 seconds, got %d", animateSpeed)
		}
		interval = time.Duration(animateSpeed) * time.Second
	}
	if !cmd.Flags().Changed("sync") {
		animateSync = cfg.Sync
	}

	logger := newLogger()
	eng := newEngine(cfg, logger)

	err = eng.StartAnimation(imagePath, engine.AnimateOptions{
		Targets:   targets,
		Colors:    colours,
		Algorithm: colour.Algorithm(algorithm),
		Steps:     steps,
		Interval:  interval,
		Sync:      animateSync,
		Timeout:   cfg.Timeout(),
	})
	if err != nil {
		return err
	}

	mode := "staggered"
	if animateSync {
		mode = "sync"
	}
	fmt.Printf("Animating %q on %d lights (%s, one step every %s). Press Ctrl-C to stop.\n",
		image.SceneName(imagePath), len(targets), mode, interval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var expire <-chan time.Time
	if animateDuration > 0 {
		timer := time.NewTimer(animateDuration)
		defer timer.Stop()
		expire = timer.C
	}

	select {
	case <-sigCh:
		fmt.Println("\nStopping...")
	case <-expire:
		fmt.Println("Duration elapsed, stopping...")
	}

	eng.StopAll()

	status := eng.Status()
	if status.LastError != "" {
		fmt.Printf("Last tick: %s\n", status.LastError)
	}
	fmt.Println("Stopped.")
	return nil
}
