package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tingelabs/tinge/internal/colour"
	"github.com/tingelabs/tinge/internal/image"
)

var (
	// Scenes command flags
	scenesDir         string
	scenesShowPreview bool
)

// scenesCmd represents the scenes command
var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List available scene images",
	Long: `List the scene images found in the scenes directory, with the scene
name each file maps to. With --preview, each scene's dominant colours
are shown as terminal swatches.

Examples:
  # List scenes from the configured directory
  tinge scenes

  # List scenes from another directory with colour previews
  tinge scenes --dir ~/wallpapers --preview`,
	Args: cobra.NoArgs,
	RunE: runScenes,
}

func init() {
	scenesCmd.Flags().StringVarP(&scenesDir, "dir", "d", "", "scenes directory (default from config)")
	scenesCmd.Flags().BoolVar(&scenesShowPreview, "preview", false, "show each scene's dominant colours")
}

// runScenes executes the scenes command.
func runScenes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.ScenesDir
	if scenesDir != "" {
		dir = scenesDir
	}

	paths, err := image.ScanDirectory(dir)
	if err != nil {
		return fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	if len(paths) == 0 {
		fmt.Printf("No scene images found in %s\n", dir)
		return nil
	}

	source := image.NewFileSource()
	for _, path := range paths {
		if !scenesShowPreview {
			fmt.Printf("%-24s %s\n", image.SceneName(path), path)
			continue
		}

		swatches, err := scenePreview(source, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", path, err)
			swatches = ""
		}
		fmt.Printf("%-24s %s  %s\n", image.SceneName(path), swatches, path)
	}
	return nil
}

// scenePreview renders a scene's dominant colours as terminal swatches.
func scenePreview(source *image.FileSource, path string) (string, error) {
	buf, err := source.Pixels(path)
	if err != nil {
		return "", err
	}

	extractor, err := colour.NewExtractor(colour.AlgorithmMedianCut)
	if err != nil {
		return "", err
	}
	palette, err := extractor.Extract(buf.Image(), 5)
	if err != nil {
		return "", err
	}

	var swatches string
	for _, c := range palette.Colors {
		swatches += colour.Preview(c, 3)
	}
	return swatches, nil
}
