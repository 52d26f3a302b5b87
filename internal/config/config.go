// Package config loads tinge settings from an optional config file and
// TINGE_* environment variables, with sane defaults for everything.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tingelabs/tinge/internal/colour"
)

// Defaults for every tunable.
const (
	DefaultEndpoint    = "http://localhost:8123"
	DefaultColors      = 8
	DefaultSteps       = 10
	DefaultSpeed       = 5
	DefaultTransition  = 2
	DefaultBrightness  = 100
	DefaultAlgorithm   = string(colour.AlgorithmMedianCut)
	DefaultScenesDir   = "scenes"
	DefaultHTTPTimeout = 5
)

// Config holds the resolved settings.
type Config struct {
	// Endpoint is the base URL of the light bridge.
	Endpoint string `mapstructure:"endpoint"`

	// Lights is the ordered default target group.
	Lights []string `mapstructure:"lights"`

	// Colors is the palette size to extract.
	Colors int `mapstructure:"colors"`

	// Algorithm names the palette extraction algorithm.
	Algorithm string `mapstructure:"algorithm"`

	// Steps is the number of interpolated frames per palette segment.
	Steps int `mapstructure:"steps"`

	// Speed is the animation tick interval in seconds.
	Speed int `mapstructure:"speed"`

	// Transition is the static-apply fade time in seconds.
	Transition int `mapstructure:"transition"`

	// Brightness is the brightness sent with every colour, 1 to 100.
	Brightness int `mapstructure:"brightness"`

	// ScenesDir is the directory scanned for scene images.
	ScenesDir string `mapstructure:"scenes_dir"`

	// HTTPTimeout bounds each bridge call, in seconds.
	HTTPTimeout int `mapstructure:"http_timeout"`

	// Sync makes all lights show the same animation frame.
	Sync bool `mapstructure:"sync"`
}

// Interval returns the animation tick interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Speed) * time.Second
}

// TransitionDuration returns the static fade time as a duration.
func (c *Config) TransitionDuration() time.Duration {
	return time.Duration(c.Transition) * time.Second
}

// Timeout returns the per-call HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// Load reads configuration from path (optional, empty means no file), then
// overlays TINGE_* environment variables, then validates.
func Load(path string) (*Config, error) {
	vp := viper.New()

	vp.SetDefault("endpoint", DefaultEndpoint)
	vp.SetDefault("lights", []string{})
	vp.SetDefault("colors", DefaultColors)
	vp.SetDefault("algorithm", DefaultAlgorithm)
	vp.SetDefault("steps", DefaultSteps)
	vp.SetDefault("speed", DefaultSpeed)
	vp.SetDefault("transition", DefaultTransition)
	vp.SetDefault("brightness", DefaultBrightness)
	vp.SetDefault("scenes_dir", DefaultScenesDir)
	vp.SetDefault("http_timeout", DefaultHTTPTimeout)
	vp.SetDefault("sync", false)

	vp.SetEnvPrefix("TINGE")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// TINGE_LIGHTS arrives as a comma-separated string; entries from any
	// source may carry stray whitespace.
	if len(cfg.Lights) > 0 {
		cfg.Lights = splitList(strings.Join(cfg.Lights, ","))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting against its allowed range.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.Colors < 1 || c.Colors > 256 {
		return fmt.Errorf("colors must be between 1 and 256, got %d", c.Colors)
	}
	if _, err := colour.NewExtractor(colour.Algorithm(c.Algorithm)); err != nil {
		return err
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", c.Steps)
	}
	if c.Speed < 1 || c.Speed > 60 {
		return fmt.Errorf("speed must be between 1 and 60 seconds, got %d", c.Speed)
	}
	if c.Transition < 0 {
		return fmt.Errorf("transition must not be negative, got %d", c.Transition)
	}
	if c.Brightness < 1 || c.Brightness > 100 {
		return fmt.Errorf("brightness must be between 1 and 100, got %d", c.Brightness)
	}
	if c.HTTPTimeout < 1 {
		return fmt.Errorf("http_timeout must be at least 1 second, got %d", c.HTTPTimeout)
	}
	return nil
}

// splitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
