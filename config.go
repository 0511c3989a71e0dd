package stun

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunable timings of the interaction core. The defaults
// reproduce the theme's historical behaviour; change them deliberately.
type Config struct {
	// ZoomDuration is the length of the zoom-in transform animation.
	ZoomDuration time.Duration `env:"ZOOM_DURATION" envDefault:"300ms"`
	// MaskDuration is the length of the mask fade; its reversal ends a session.
	MaskDuration time.Duration `env:"MASK_DURATION" envDefault:"400ms"`
	// ScrollCloseDelay is the quiet period after scrolling before an open
	// zoom closes.
	ScrollCloseDelay time.Duration `env:"SCROLL_CLOSE_DELAY" envDefault:"200ms"`
	// JoinFallbackDelay delays resolution of images that were already
	// loaded when a join was created.
	JoinFallbackDelay time.Duration `env:"JOIN_FALLBACK_DELAY" envDefault:"500ms"`
	// JoinTimeout abandons image joins that take longer. Zero waits forever.
	JoinTimeout time.Duration `env:"JOIN_TIMEOUT" envDefault:"0s"`
	// AlertDelay is how long an alert stays up when PopAlert gets no delay.
	AlertDelay time.Duration `env:"ALERT_DELAY" envDefault:"5s"`
	// ScrollStep is the document scroll distance per mouse wheel notch.
	ScrollStep float64 `env:"SCROLL_STEP" envDefault:"40"`
	// MaskOpacity is the zoom overlay alpha once fully faded in.
	MaskOpacity float64 `env:"MASK_OPACITY" envDefault:"0.9"`
	// LoaderWorkers bounds how many images a Loader decodes at once.
	LoaderWorkers int `env:"LOADER_WORKERS" envDefault:"4"`
	// ScreenshotDir receives PNGs queued with Scene.Screenshot.
	ScreenshotDir string `env:"SCREENSHOT_DIR" envDefault:"screenshots"`
	// Debug turns on debug mode for scenes created with this config.
	Debug bool `env:"DEBUG" envDefault:"false"`
}

// DefaultConfig returns the historical timings.
func DefaultConfig() Config {
	return Config{
		ZoomDuration:      300 * time.Millisecond,
		MaskDuration:      DefaultAnimationDuration,
		ScrollCloseDelay:  200 * time.Millisecond,
		JoinFallbackDelay: DefaultFallbackDelay,
		AlertDelay:        5 * time.Second,
		ScrollStep:        40,
		MaskOpacity:       0.9,
		LoaderWorkers:     4,
		ScreenshotDir:     "screenshots",
	}
}

// LoadConfig reads a Config from STUN_-prefixed environment variables,
// falling back to the defaults, and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "STUN_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative durations and out-of-range values.
func (c Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"zoom duration", c.ZoomDuration},
		{"mask duration", c.MaskDuration},
		{"scroll close delay", c.ScrollCloseDelay},
		{"join fallback delay", c.JoinFallbackDelay},
		{"join timeout", c.JoinTimeout},
		{"alert delay", c.AlertDelay},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidConfig, d.name, d.d)
		}
	}
	if c.ScrollStep < 0 {
		return fmt.Errorf("%w: scroll step is negative (%v)", ErrInvalidConfig, c.ScrollStep)
	}
	if c.LoaderWorkers < 1 {
		return fmt.Errorf("%w: loader workers must be at least 1 (%d)", ErrInvalidConfig, c.LoaderWorkers)
	}
	if c.MaskOpacity < 0 || c.MaskOpacity > 1 {
		return fmt.Errorf("%w: mask opacity %v outside [0, 1]", ErrInvalidConfig, c.MaskOpacity)
	}
	return nil
}
