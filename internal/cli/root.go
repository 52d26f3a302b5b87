// Package cli provides the command-line interface for tinge.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/tingelabs/tinge/internal/config"
	"github.com/tingelabs/tinge/internal/engine"
	"github.com/tingelabs/tinge/internal/image"
	"github.com/tingelabs/tinge/internal/light"
	"github.com/tingelabs/tinge/internal/version"
)

var (
	// Global flags
	globalConfig   string
	globalVerbose  bool
	globalEndpoint string
	globalLights   []string
)

// NewRootCmd builds the root command with all subcommands attached.
// Called once from main.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tinge",
		Short: "Paint your lights with the colours of an image",
		Long: `Tinge extracts colour palettes from images and applies them to smart
lights, either as a static scene or as a continuous animation that
cycles smoothly through the palette.

Point it at a wallpaper, a photo, or a whole directory of scene images,
name the lights to drive, and tinge does the rest.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&globalConfig, "config", "", "config file (default: none, settings from flags and TINGE_* env)")
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&globalEndpoint, "endpoint", "e", "", "light bridge base URL (overrides config)")
	rootCmd.PersistentFlags().StringSliceVarP(&globalLights, "lights", "l", nil, "target light IDs (overrides config)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(animateCmd)
	rootCmd.AddCommand(scenesCmd)

	return rootCmd
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

// newLogger builds the process logger honouring the verbose flag.
func newLogger() hclog.Logger {
	level := hclog.Warn
	if globalVerbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tinge",
		Level:  level,
		Output: os.Stderr,
	})
}

// loadConfig loads settings and overlays the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(globalConfig)
	if err != nil {
		return nil, err
	}
	if globalEndpoint != "" {
		cfg.Endpoint = globalEndpoint
	}
	if len(globalLights) > 0 {
		cfg.Lights = globalLights
	}
	return cfg, nil
}

// newEngine assembles the engine from resolved configuration.
func newEngine(cfg *config.Config, logger hclog.Logger) *engine.Engine {
	actuator := light.NewHTTPActuator(cfg.Endpoint)
	actuator.Brightness = cfg.Brightness
	actuator.HTTPClient.Timeout = cfg.Timeout()
	return engine.New(image.NewCachingSource(), actuator, logger)
}

// validateRef checks an image reference: URLs pass through, local paths
// must exist with a supported extension.
func validateRef(ref string) error {
	if image.IsRemote(ref) {
		return nil
	}
	if err := image.ValidateImagePath(ref); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	return nil
}

// requireLights returns the resolved target group or an error when empty.
func requireLights(cfg *config.Config) ([]string, error) {
	if len(cfg.Lights) == 0 {
		return nil, fmt.Errorf("no target lights: use --lights, TINGE_LIGHTS or the config file")
	}
	return cfg.Lights, nil
}

// printReport writes a per-target summary of an apply report.
func printReport(report light.Report, elapsed time.Duration) {
	for target, c := range report.Succeeded {
		fmt.Printf("  %-24s %s\n", target, c.Hex())
	}
	for target, failure := range report.Failed {
		fmt.Printf("  %-24s FAILED: %s\n", target, failure.Error())
	}
	fmt.Printf("%s in %s\n", report.Summary(), elapsed.Round(time.Millisecond))
}
