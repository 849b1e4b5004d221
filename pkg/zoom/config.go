package zoom

import (
	"math"

	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/scale"
)

// Defaults for [Config].
const (
	DefaultPixelsPerDecade  = scale.DefaultPixelsPerDecade
	DefaultRadius           = 150
	DefaultMinVisibleSize   = 10
	DefaultMaxVisibleSize   = 1500
	DefaultScrollTailFactor = 1
)

// Config holds the engine's tuning constants. All sizes are in pixels.
type Config struct {
	// PixelsPerDecade must match the value used to compose the static
	// layout, otherwise the sections drift out of sync with the zoom. It is
	// not read from TOML; the site configuration copies the layout value.
	PixelsPerDecade float64 `json:"pixels_per_decade" toml:"-"`

	// DefaultRadius is the on-screen radius the smallest body has at the
	// top of the page and the largest body has at the end of the animation.
	DefaultRadius float64 `json:"default_radius" toml:"default_radius"`

	// Bodies drawn smaller than MinVisibleSize or larger than
	// MaxVisibleSize are hidden.
	MinVisibleSize float64 `json:"min_visible_size" toml:"min_visible_size"`
	MaxVisibleSize float64 `json:"max_visible_size" toml:"max_visible_size"`

	// ScrollTailFactor is the extra scroll distance after the animation, as
	// a multiple of the viewport height.
	ScrollTailFactor float64 `json:"scroll_tail_factor" toml:"scroll_tail_factor"`

	// UnitScale converts kilometres to the internal zoom unit.
	UnitScale float64 `json:"unit_scale" toml:"unit_scale"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields with their defaults.
func (c *Config) SetDefaults() {
	if c.PixelsPerDecade == 0 {
		c.PixelsPerDecade = DefaultPixelsPerDecade
	}
	if c.DefaultRadius == 0 {
		c.DefaultRadius = DefaultRadius
	}
	if c.MinVisibleSize == 0 {
		c.MinVisibleSize = DefaultMinVisibleSize
	}
	if c.MaxVisibleSize == 0 {
		c.MaxVisibleSize = DefaultMaxVisibleSize
	}
	if c.ScrollTailFactor == 0 {
		c.ScrollTailFactor = DefaultScrollTailFactor
	}
	if c.UnitScale == 0 {
		c.UnitScale = scale.DefaultUnitScale
	}
}

// Validate reports the first field that is out of range.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"pixels per decade", c.PixelsPerDecade},
		{"default radius", c.DefaultRadius},
		{"min visible size", c.MinVisibleSize},
		{"max visible size", c.MaxVisibleSize},
		{"unit scale", c.UnitScale},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a positive number, got %g", f.name, f.v)
		}
	}
	if c.MinVisibleSize > c.MaxVisibleSize {
		return errors.New(errors.ErrCodeInvalidConfig, "min visible size %g exceeds max visible size %g", c.MinVisibleSize, c.MaxVisibleSize)
	}
	if c.ScrollTailFactor < 0 || math.IsNaN(c.ScrollTailFactor) {
		return errors.New(errors.ErrCodeInvalidConfig, "scroll tail factor must not be negative, got %g", c.ScrollTailFactor)
	}
	return nil
}
