package geometry

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyMask is returned when a box is derived from a mask without
	// foreground pixels.
	ErrEmptyMask = errors.New("mask has no foreground pixels")

	// ErrInvalidScale is returned for non-positive or non-finite factors.
	ErrInvalidScale = errors.New("invalid scale factor")
)

// maskThreshold is the rank at or above which an ingested mask pixel is
// foreground.
const maskThreshold = 128

// ScaleImage resizes img by factor using area averaging.
//
// The target size is round(width*factor) x round(height*factor), never less
// than one pixel per side.
func ScaleImage(img image.Image, factor float64) (*image.NRGBA, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, errors.Wrapf(ErrInvalidScale, "%v", factor)
	}

	bounds := img.Bounds()
	newWidth := max(1, int(math.Round(float64(bounds.Dx())*factor)))
	newHeight := max(1, int(math.Round(float64(bounds.Dy())*factor)))

	return imaging.Resize(img, newWidth, newHeight, imaging.Box), nil
}

// CropImage returns img[box.YMin:box.YMax, box.XMin:box.XMax] as a new
// zero-origin image.
//
// No padding is added: the caller clamps box to the image first. Boxes that
// reach outside the image are rejected.
func CropImage(img image.Image, box Box) (*image.NRGBA, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	r := box.Rect().Add(bounds.Min)
	if !r.In(bounds) {
		return nil, errors.Errorf("crop region %v outside image bounds %v", box, bounds)
	}

	return imaging.Crop(img, r), nil
}

// MaskBBox returns the tight box around the nonzero pixels of mask.
//
// Max edges are the coordinates of the last foreground pixel, so a single
// foreground pixel at (x, y) yields (x, y, x, y).
func MaskBBox(mask *image.Gray) (Box, error) {
	bounds := mask.Bounds()
	xmin, ymin := math.MaxInt, math.MaxInt
	xmax, ymax := -1, -1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := mask.Pix[mask.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			if row[x] == 0 {
				continue
			}
			xmin = min(xmin, x)
			xmax = max(xmax, x)
			ymin = min(ymin, y-bounds.Min.Y)
			ymax = max(ymax, y-bounds.Min.Y)
		}
	}

	if xmax < 0 {
		return Box{}, errors.WithStack(ErrEmptyMask)
	}
	return Box{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}, nil
}

// MaskFromImage binarizes img: pixels whose rank (0.3R + 0.6G + 0.1B) is at
// least 128 become 255, all others 0. Transparent pixels are background.
// The result is zero-origin.
func MaskFromImage(img image.Image) *image.Gray {
	bounds := img.Bounds()
	opaque := imaging.Overlay(imaging.New(bounds.Dx(), bounds.Dy(), color.Black), img, image.Point{}, 1.0)
	return segment.Threshold(opaque, maskThreshold)
}

// ScaleMask resizes mask exactly like ScaleImage resizes the image it
// belongs to. Any output pixel that received foreground weight stays
// foreground, so thin structures survive downscaling.
func ScaleMask(mask *image.Gray, factor float64) (*image.Gray, error) {
	scaled, err := ScaleImage(binarize(mask), factor)
	if err != nil {
		return nil, err
	}
	return nonzero(scaled), nil
}

// CropMask crops mask with the same slicing rules as CropImage.
func CropMask(mask *image.Gray, box Box) (*image.Gray, error) {
	cropped, err := CropImage(binarize(mask), box)
	if err != nil {
		return nil, err
	}
	return nonzero(cropped), nil
}

// binarize maps every nonzero pixel to 255 so that masks stored as 0/1 survive
// averaging.
func binarize(mask *image.Gray) *image.Gray {
	bounds := mask.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := mask.Pix[mask.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dst := out.Pix[out.PixOffset(0, y):]
		for x := 0; x < bounds.Dx(); x++ {
			if src[x] != 0 {
				dst[x] = 255
			}
		}
	}
	return out
}

// nonzero maps every pixel of an averaged mask with a nonzero red channel to
// 255. Averaged masks are gray, so red carries the value.
func nonzero(img *image.NRGBA) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dst := out.Pix[out.PixOffset(0, y):]
		for x := 0; x < bounds.Dx(); x++ {
			if src[x*4] != 0 {
				dst[x] = 255
			}
		}
	}
	return out
}
