package detviz

import (
	"image"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ironsheep/detviz/internal/annotation"
	"github.com/ironsheep/detviz/internal/config"
	"github.com/ironsheep/detviz/internal/imageio"
	"github.com/ironsheep/detviz/internal/logging"
	"github.com/ironsheep/detviz/internal/palette"
	"github.com/ironsheep/detviz/internal/render"
	"github.com/ironsheep/detviz/internal/transform"
)

// Visualizer draws annotations onto images.
type Visualizer struct {
	alpha    float64
	alphaMin float64
	alphaMax float64
	ramp     bool

	transform transform.Transform

	mapper       palette.Mapper
	customMapper bool
	scope        ColorScope
	firstColor   palette.Color
	overrides    map[string]palette.Color

	cache  *imageio.Cache
	logger *zap.Logger
}

// New returns a Visualizer configured by opts.
//
// Without options it draws at DefaultAlpha, applies no transform and colors
// categories starting from green, remembering colors across calls.
func New(opts ...Option) (*Visualizer, error) {
	v := &Visualizer{
		alpha:      DefaultAlpha,
		scope:      ColorScopeVisualizer,
		firstColor: palette.Green,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}

	if err := v.validate(); err != nil {
		return nil, err
	}

	if v.mapper == nil {
		v.mapper = v.newMapper()
	}
	if v.cache == nil {
		v.cache = imageio.NewCache()
	}
	return v, nil
}

// NewFromConfig returns a Visualizer configured by cfg. Options in opts are
// applied after the config and take precedence.
func NewFromConfig(cfg *Config, opts ...Option) (*Visualizer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Mode)
	if err != nil {
		return nil, err
	}

	base := []Option{WithLogger(logger)}

	if cfg.HasAlphaRange() {
		base = append(base, WithAlphaRange(cfg.AlphaMin, cfg.AlphaMax))
	} else {
		base = append(base, WithAlpha(cfg.Alpha))
	}

	t, err := transform.FromSpecs(cfg.Transforms)
	if err != nil {
		return nil, err
	}
	if t != nil {
		base = append(base, WithTransform(t))
	}

	if cfg.Colors.First != "" {
		first, err := palette.ParseHex(cfg.Colors.First)
		if err != nil {
			return nil, err
		}
		base = append(base, WithFirstColor(first))
	}
	if strings.EqualFold(cfg.Colors.Scope, config.ScopeCall) {
		base = append(base, WithColorScope(ColorScopeCall))
	}
	if len(cfg.Colors.Overrides) > 0 {
		overrides := make(map[string]palette.Color, len(cfg.Colors.Overrides))
		for category, hex := range cfg.Colors.Overrides {
			c, err := palette.ParseHex(hex)
			if err != nil {
				return nil, err
			}
			overrides[category] = c
		}
		base = append(base, WithColorOverrides(overrides))
	}

	return New(append(base, opts...)...)
}

// LoadConfig reads a config file. See NewFromConfig.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

func (v *Visualizer) validate() error {
	alphas := []float64{v.alpha}
	if v.ramp {
		alphas = []float64{v.alphaMin, v.alphaMax}
	}
	for _, a := range alphas {
		if a < 0 || a > 1 {
			return errors.Wrapf(render.ErrInvalidAlpha, "%v", a)
		}
	}
	if v.ramp && v.alphaMin > v.alphaMax {
		return errors.Errorf("alpha range min %v greater than max %v", v.alphaMin, v.alphaMax)
	}
	if v.scope != ColorScopeVisualizer && v.scope != ColorScopeCall {
		return errors.Errorf("unknown color scope %d", v.scope)
	}
	return nil
}

// newMapper returns an AutoMapper seeded with the first color and overrides.
// Overrides are inserted in category name order.
func (v *Visualizer) newMapper() *palette.AutoMapper {
	m := palette.NewAutoMapper(v.firstColor)

	categories := make([]string, 0, len(v.overrides))
	for category := range v.overrides {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		m.Set(category, v.overrides[category])
	}
	return m
}

// Mapper returns the mapper shared between calls. With ColorScopeCall and no
// custom mapper, it is never used for drawing.
func (v *Visualizer) Mapper() palette.Mapper {
	return v.mapper
}

// Transform returns the configured transform, or nil.
func (v *Visualizer) Transform() transform.Transform {
	return v.transform
}

// Visualize applies the transform, then draws every annotation in order
// with its category color. It returns a new image; img is not modified but
// the annotations' geometry is updated by the transform.
func (v *Visualizer) Visualize(img image.Image, anns []Annotation) (*image.NRGBA, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}

	mapper := v.mapper
	if v.scope == ColorScopeCall && !v.customMapper {
		mapper = v.newMapper()
	}

	v.logger.Debug("visualizing annotations",
		zap.Int("count", len(anns)),
		zap.Stringer("scope", v.scope),
		zap.Bool("transform", v.transform != nil),
	)

	var (
		out *image.NRGBA
		err error
	)
	if v.transform != nil {
		out, anns, err = v.transform.Apply(img, anns)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to apply %s", v.transform)
		}
		v.logger.Debug("transform applied",
			zap.String("transform", v.transform.String()),
			zap.Int("width", out.Bounds().Dx()),
			zap.Int("height", out.Bounds().Dy()),
		)
	} else {
		out = imaging.Clone(img)
	}

	for i, a := range anns {
		if a == nil {
			return nil, errors.Wrapf(annotation.ErrUnknownAnnotation, "annotation %d is nil", i)
		}

		c := mapper.Color(v.colorKey(a.Category()))
		alpha := v.alphaAt(i, len(anns))
		v.logger.Debug("drawing annotation",
			zap.Int("index", i),
			zap.String("category", a.Category()),
			zap.String("color", c.Hex()),
			zap.Float64("alpha", alpha),
		)

		out, err = annotation.Draw(out, a, c, alpha)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to draw annotation %d (%s)", i, a)
		}
	}
	return out, nil
}

// colorKey returns the override key matching category case-insensitively,
// or category itself. Config loading lowercases override keys.
func (v *Visualizer) colorKey(category string) string {
	if v.customMapper || len(v.overrides) == 0 {
		return category
	}
	if _, ok := v.overrides[category]; ok {
		return category
	}
	for key := range v.overrides {
		if strings.EqualFold(key, category) {
			return key
		}
	}
	return category
}

// alphaAt returns the opacity of the i-th of n annotations.
func (v *Visualizer) alphaAt(i, n int) float64 {
	if !v.ramp {
		return v.alpha
	}
	if n <= 1 {
		return v.alphaMax
	}
	return v.alphaMin + (v.alphaMax-v.alphaMin)*float64(i)/float64(n-1)
}

// RenderFile loads src, draws anns onto it and saves the result to dst in
// the format given by dst's extension.
func (v *Visualizer) RenderFile(src, dst string, anns []Annotation) error {
	img, err := v.cache.Load(src)
	if err != nil {
		return err
	}

	out, err := v.Visualize(img, anns)
	if err != nil {
		return err
	}

	v.logger.Debug("saving render", zap.String("src", src), zap.String("dst", dst))
	return imageio.Save(out, dst)
}

// LoadMask loads a mask image from path through the Visualizer's cache.
// Pixels with rank 0.3R + 0.6G + 0.1B >= 128 are foreground.
func (v *Visualizer) LoadMask(path string) (*image.Gray, error) {
	return imageio.LoadMask(v.cache, path)
}
