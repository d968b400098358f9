package annotation

import (
	"fmt"
	"image"

	"github.com/ironsheep/detviz/internal/geometry"
	"github.com/ironsheep/detviz/internal/palette"
	"github.com/ironsheep/detviz/internal/render"
)

// BoundingBox is an annotation stored as box coordinates.
type BoundingBox struct {
	base
	box geometry.Box
}

// NewBoundingBox creates a box annotation. The box is validated.
func NewBoundingBox(label, category string, box geometry.Box, opts ...Option) (*BoundingBox, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &BoundingBox{
		base: base{
			label:      label,
			category:   category,
			attributes: o.attributes,
			confidence: o.confidence,
		},
		box: box,
	}, nil
}

// Box returns the stored coordinates.
func (b *BoundingBox) Box() (geometry.Box, error) {
	return b.box, nil
}

// Scale multiplies the coordinates by factor, rounding to whole pixels.
func (b *BoundingBox) Scale(factor float64) error {
	return apply(b.planScale(factor))
}

// Crop translates the coordinates by the crop origin and clamps them to the
// cropped frame.
func (b *BoundingBox) Crop(box geometry.Box) error {
	return apply(b.planCrop(box))
}

func (b *BoundingBox) planScale(factor float64) (func(), error) {
	scaled := b.box.Scale(factor)
	return func() { b.box = scaled }, nil
}

func (b *BoundingBox) planCrop(box geometry.Box) (func(), error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	moved := b.box.Translate(-box.XMin, -box.YMin).Clamp(box.Width(), box.Height())
	return func() { b.box = moved }, nil
}

// Visualize draws the box outline and label.
func (b *BoundingBox) Visualize(img image.Image, c palette.Color, alpha float64) (*image.NRGBA, error) {
	return render.DrawBoundingBox(img, b.box, b.Label(), c, alpha)
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("BoundingBox(label=%s, category=%s)", b.label, b.category)
}
