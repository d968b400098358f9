// Package config loads renderer settings from a file and the environment.
//
// Files may be YAML, JSON or TOML, chosen by extension. Every key can be
// overridden by an environment variable with the DETVIZ_ prefix, dots
// replaced by underscores (DETVIZ_LOG_MODE, DETVIZ_ALPHA).
package config

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/ironsheep/detviz/internal/logging"
	"github.com/ironsheep/detviz/internal/palette"
	"github.com/ironsheep/detviz/internal/transform"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "DETVIZ"

// Color scopes.
const (
	ScopeVisualizer = "visualizer"
	ScopeCall       = "call"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every renderer setting. Zero AlphaMin and AlphaMax mean a
// fixed Alpha for all annotations.
type Config struct {
	Alpha      float64          `mapstructure:"alpha"`
	AlphaMin   float64          `mapstructure:"alpha_min"`
	AlphaMax   float64          `mapstructure:"alpha_max"`
	Transforms []transform.Spec `mapstructure:"transforms"`
	Colors     ColorsConfig     `mapstructure:"colors"`
	Log        LogConfig        `mapstructure:"log"`
}

// ColorsConfig controls category colors. Overrides are keyed by category;
// keys are lowercased on load and matched case-insensitively when drawing.
type ColorsConfig struct {
	First     string            `mapstructure:"first"`
	Scope     string            `mapstructure:"scope"`
	Overrides map[string]string `mapstructure:"overrides"`
}

// LogConfig selects the logger; see logging.New for the modes.
type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// Load reads the config file at path, applying defaults and environment
// overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in settings: alpha 0.8, no transforms, green
// first color, per-visualizer color scope, no logging.
func Default() *Config {
	return &Config{
		Alpha: 0.8,
		Colors: ColorsConfig{
			First: palette.Green.Hex(),
			Scope: ScopeVisualizer,
		},
		Log: LogConfig{Mode: logging.ModeNop},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("alpha", d.Alpha)
	v.SetDefault("alpha_min", d.AlphaMin)
	v.SetDefault("alpha_max", d.AlphaMax)
	v.SetDefault("colors.first", d.Colors.First)
	v.SetDefault("colors.scope", d.Colors.Scope)
	v.SetDefault("log.mode", d.Log.Mode)
}

// HasAlphaRange reports whether a per-annotation alpha ramp is configured.
func (c *Config) HasAlphaRange() bool {
	return c.AlphaMin != 0 || c.AlphaMax != 0
}

// Validate checks every field, returning an error wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	for name, a := range map[string]float64{"alpha": c.Alpha, "alpha_min": c.AlphaMin, "alpha_max": c.AlphaMax} {
		if a < 0 || a > 1 {
			return errors.Wrapf(ErrInvalidConfig, "%s %v outside [0, 1]", name, a)
		}
	}
	if c.AlphaMin > c.AlphaMax {
		return errors.Wrapf(ErrInvalidConfig, "alpha_min %v greater than alpha_max %v", c.AlphaMin, c.AlphaMax)
	}

	if _, err := transform.FromSpecs(c.Transforms); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "transforms: %v", err)
	}

	if c.Colors.First != "" {
		if _, err := palette.ParseHex(c.Colors.First); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "colors.first: %v", err)
		}
	}
	switch strings.ToLower(c.Colors.Scope) {
	case "", ScopeVisualizer, ScopeCall:
	default:
		return errors.Wrapf(ErrInvalidConfig, "colors.scope %q", c.Colors.Scope)
	}
	for category, hex := range c.Colors.Overrides {
		if _, err := palette.ParseHex(hex); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "colors.overrides.%s: %v", category, err)
		}
	}

	if !logging.ValidMode(c.Log.Mode) {
		return errors.Wrapf(ErrInvalidConfig, "log.mode %q", c.Log.Mode)
	}
	return nil
}
