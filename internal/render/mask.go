package render

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/detviz/internal/palette"
)

// ErrMaskSize is returned when a mask and its image differ in size.
var ErrMaskSize = errors.New("mask size does not match image size")

// DrawMask tints the pixels of img under the nonzero pixels of mask:
// alpha*c + (1-alpha)*pixel. Other pixels are copied unchanged.
func DrawMask(img image.Image, mask *image.Gray, c palette.Color, alpha float64) (*image.NRGBA, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}

	result := imaging.Clone(img)
	bounds := result.Bounds()
	if mask.Bounds().Size() != bounds.Size() {
		return nil, errors.Wrapf(ErrMaskSize, "mask %v, image %v", mask.Bounds().Size(), bounds.Size())
	}

	tinted := AddWeighted(result, imaging.New(bounds.Dx(), bounds.Dy(), c.NRGBA()), alpha)
	draw.DrawMask(result, bounds, tinted, image.Point{}, alphaMask(mask), image.Point{}, draw.Over)
	return result, nil
}

// alphaMask converts a foreground mask into a zero-origin opacity mask.
func alphaMask(mask *image.Gray) *image.Alpha {
	bounds := mask.Bounds()
	out := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := mask.Pix[mask.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dst := out.Pix[out.PixOffset(0, y):]
		for x := 0; x < bounds.Dx(); x++ {
			if src[x] != 0 {
				dst[x] = 0xff
			}
		}
	}
	return out
}
