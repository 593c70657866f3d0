package snowfall

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/caarlos0/env/v11"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidConfig is returned when the engine configuration cannot produce
// well formed flakes.
var ErrInvalidConfig = errors.New("invalid snowfall config")

// Config holds the static engine settings. Keys follow the snowflake config
// object exposed to pages embedding the effect.
type Config struct {
	Enabled         bool    `json:"enabled" env:"SNOWFALL_ENABLED" envDefault:"true"`
	FlakesNum       int     `json:"flakes_num" env:"SNOWFALL_FLAKES_NUM" envDefault:"25"`
	FallingSpeedMin float64 `json:"falling_speed_min" env:"SNOWFALL_FALLING_SPEED_MIN" envDefault:"1"`
	FallingSpeedMax float64 `json:"falling_speed_max" env:"SNOWFALL_FALLING_SPEED_MAX" envDefault:"3"`
	FlakeMinSize    float64 `json:"flake_min_size" env:"SNOWFALL_FLAKE_MIN_SIZE" envDefault:"10"`
	FlakeMaxSize    float64 `json:"flake_max_size" env:"SNOWFALL_FLAKE_MAX_SIZE" envDefault:"20"`
	// VerticalSize caps the band the initial pool is spread over. Zero means
	// the whole surface height.
	VerticalSize float64 `json:"vertical_size" env:"SNOWFALL_VERTICAL_SIZE" envDefault:"800"`
	FlakeColor   string  `json:"flake_color" env:"SNOWFALL_FLAKE_COLOR" envDefault:"#efefef"`
	FlakeZIndex  int     `json:"flake_zindex" env:"SNOWFALL_FLAKE_ZINDEX" envDefault:"100000"`
	FlakeType    string  `json:"flake_type" env:"SNOWFALL_FLAKE_TYPE" envDefault:"❄"`
	FadeAway     bool    `json:"fade_away" env:"SNOWFALL_FADE_AWAY" envDefault:"true"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		FlakesNum:       25,
		FallingSpeedMin: 1,
		FallingSpeedMax: 3,
		FlakeMinSize:    10,
		FlakeMaxSize:    20,
		VerticalSize:    800,
		FlakeColor:      "#efefef",
		FlakeZIndex:     100000,
		FlakeType:       "❄",
		FadeAway:        true,
	}
}

// ConfigFromEnv loads the configuration from the SNOWFALL_* environment
// variables, falling back to the defaults for unset ones.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the ranges used when generating flakes.
func (c Config) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"falling_speed_min", c.FallingSpeedMin},
		{"falling_speed_max", c.FallingSpeedMax},
		{"flake_min_size", c.FlakeMinSize},
		{"flake_max_size", c.FlakeMaxSize},
		{"vertical_size", c.VerticalSize},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, v.name, v.val)
		}
	}
	if c.FlakesNum <= 0 {
		return fmt.Errorf("%w: flakes_num must be positive, got %d", ErrInvalidConfig, c.FlakesNum)
	}
	if c.FallingSpeedMin < 0 || c.FallingSpeedMin > c.FallingSpeedMax {
		return fmt.Errorf("%w: falling speed range [%v, %v]", ErrInvalidConfig, c.FallingSpeedMin, c.FallingSpeedMax)
	}
	if c.FlakeMinSize < 0 || c.FlakeMinSize > c.FlakeMaxSize {
		return fmt.Errorf("%w: flake size range [%v, %v]", ErrInvalidConfig, c.FlakeMinSize, c.FlakeMaxSize)
	}
	if c.VerticalSize < 0 {
		return fmt.Errorf("%w: vertical_size must not be negative, got %v", ErrInvalidConfig, c.VerticalSize)
	}
	if c.FlakeType == "" {
		return fmt.Errorf("%w: empty flake_type", ErrInvalidConfig)
	}
	if _, err := colorful.Hex(c.FlakeColor); err != nil {
		return fmt.Errorf("%w: flake_color %q: %v", ErrInvalidConfig, c.FlakeColor, err)
	}
	return nil
}

// Color returns the parsed flake color. Invalid colors resolve to white,
// Validate reports them beforehand.
func (c Config) Color() colorful.Color {
	col, err := colorful.Hex(c.FlakeColor)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

// RGBA returns the flake color with the given opacity applied as alpha.
func (c Config) RGBA(opacity float64) color.NRGBA {
	r, g, b := c.Color().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(opacity)*255 + 0.5)}
}
