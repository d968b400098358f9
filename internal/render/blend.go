package render

import (
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/fcolor"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ErrInvalidAlpha is returned for blend weights outside [0, 1].
var ErrInvalidAlpha = errors.New("alpha must be within [0, 1]")

// roundingBias turns the truncating float-to-byte conversion of the blend
// into round-half-up, so blending a pixel with itself returns it unchanged.
const roundingBias = 0.5 / 255.0

// AddWeighted returns alpha*fg + (1-alpha)*bg per channel.
//
// The result covers the overlap of the two images' sizes and is zero-origin.
func AddWeighted(bg, fg image.Image, alpha float64) *image.NRGBA {
	beta := 1 - alpha
	blended := blend.Blend(bg, fg, func(c0, c1 fcolor.RGBAF64) fcolor.RGBAF64 {
		return fcolor.RGBAF64{
			R: c1.R*alpha + c0.R*beta + roundingBias,
			G: c1.G*alpha + c0.G*beta + roundingBias,
			B: c1.B*alpha + c0.B*beta + roundingBias,
			A: c1.A*alpha + c0.A*beta + roundingBias,
		}
	})
	return imaging.Clone(blended)
}

func checkAlpha(alpha float64) error {
	if !(alpha >= 0 && alpha <= 1) {
		return errors.Wrapf(ErrInvalidAlpha, "got %v", alpha)
	}
	return nil
}
