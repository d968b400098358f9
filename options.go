package detviz

import (
	"go.uber.org/zap"

	"github.com/ironsheep/detviz/internal/imageio"
	"github.com/ironsheep/detviz/internal/palette"
	"github.com/ironsheep/detviz/internal/transform"
)

// DefaultAlpha is the overlay opacity used when WithAlpha is not given.
const DefaultAlpha = 0.8

// ColorScope controls how long category colors are remembered.
type ColorScope int

const (
	// ColorScopeVisualizer keeps one color assignment for the lifetime of
	// the Visualizer.
	ColorScopeVisualizer ColorScope = iota

	// ColorScopeCall starts a fresh color assignment on every Visualize call.
	ColorScopeCall
)

func (s ColorScope) String() string {
	switch s {
	case ColorScopeVisualizer:
		return "visualizer"
	case ColorScopeCall:
		return "call"
	}
	return "unknown"
}

// Option configures a Visualizer.
type Option func(*Visualizer)

// WithAlpha sets the opacity of every overlay, in [0, 1].
func WithAlpha(alpha float64) Option {
	return func(v *Visualizer) {
		v.alpha = alpha
		v.ramp = false
	}
}

// WithAlphaRange ramps the opacity across the annotations of a call: the
// i-th of n annotations is drawn with min + (max-min)*i/(n-1). A single
// annotation uses max.
func WithAlphaRange(min, max float64) Option {
	return func(v *Visualizer) {
		v.alphaMin = min
		v.alphaMax = max
		v.ramp = true
	}
}

// WithTransform applies t to the image and annotations before drawing.
func WithTransform(t transform.Transform) Option {
	return func(v *Visualizer) {
		v.transform = t
	}
}

// WithColorMapper uses m for category colors. A custom mapper is always
// shared between calls; the color scope, first color and overrides are
// ignored.
func WithColorMapper(m palette.Mapper) Option {
	return func(v *Visualizer) {
		v.mapper = m
		v.customMapper = true
	}
}

// WithColorScope sets how long category colors are remembered.
func WithColorScope(scope ColorScope) Option {
	return func(v *Visualizer) {
		v.scope = scope
	}
}

// WithFirstColor sets the color of the first category seen.
func WithFirstColor(c palette.Color) Option {
	return func(v *Visualizer) {
		v.firstColor = c
	}
}

// WithColorOverrides pins the colors of the given categories, matched
// case-insensitively. Pinned categories take part in the color sequence like
// any other.
func WithColorOverrides(overrides map[string]palette.Color) Option {
	return func(v *Visualizer) {
		v.overrides = make(map[string]palette.Color, len(overrides))
		for category, c := range overrides {
			v.overrides[category] = c
		}
	}
}

// WithLogger sets the logger. Visualizer only logs at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Visualizer) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithCache sets the image cache used by RenderFile and LoadMask.
func WithCache(cache *imageio.Cache) Option {
	return func(v *Visualizer) {
		if cache != nil {
			v.cache = cache
		}
	}
}
