package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// GoldenRatioConjugate is (√5-1)/2, the hue step between generated colors
// expressed as a fraction of a full turn.
var GoldenRatioConjugate = (math.Sqrt(5) - 1) / 2

// Color represents an RGB color with 8-bit components.
type Color struct {
	R uint8 `json:"r" mapstructure:"r"` // Red component (0-255)
	G uint8 `json:"g" mapstructure:"g"` // Green component (0-255)
	B uint8 `json:"b" mapstructure:"b"` // Blue component (0-255)
}

// Green is the default first color handed out by an AutoMapper.
var Green = Color{R: 0, G: 255, B: 0}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// NRGBA returns the opaque color.NRGBA equivalent.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// FromColor converts any color.Color to a Color, dropping alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// Next returns the color whose hue follows prev's by the golden-ratio
// conjugate of a turn. Saturation and value are kept.
//
// Next is a pure function: the same input always yields the same output, so
// a sequence of colors is fully determined by its first element. Starting at
// (0,255,0) the sequence continues (255,0,74), (0,148,255), (222,255,0).
func Next(prev Color) Color {
	c := colorful.Color{
		R: float64(prev.R) / 255.0,
		G: float64(prev.G) / 255.0,
		B: float64(prev.B) / 255.0,
	}
	h, s, v := c.Hsv()

	h = math.Mod(h/360.0+GoldenRatioConjugate, 1.0) * 360.0

	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// ParseHex parses "#RRGGBB" or "RRGGBB". An 8-digit form with a trailing
// alpha byte is accepted and the alpha is ignored.
func ParseHex(hex string) (Color, error) {
	if len(hex) == 0 {
		return Color{}, errors.New("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid hex color %q", hex)
		}
		return Color{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val)}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid hex color %q", hex)
		}
		return Color{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8)}, nil
	default:
		return Color{}, errors.Errorf("invalid hex color length %d", len(hex))
	}
}
