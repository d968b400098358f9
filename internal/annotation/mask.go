package annotation

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"github.com/ironsheep/detviz/internal/geometry"
	"github.com/ironsheep/detviz/internal/palette"
	"github.com/ironsheep/detviz/internal/render"
)

// Mask is a segmentation annotation stored as a per-pixel mask the size of
// its image.
type Mask struct {
	base
	mask *image.Gray
	box  *geometry.Box
}

// NewMask creates a mask annotation. Nonzero pixels of mask are foreground.
// The mask is copied; later changes to the argument do not affect the
// annotation.
func NewMask(label, category string, mask *image.Gray, opts ...Option) (*Mask, error) {
	if mask == nil {
		return nil, errors.New("mask is nil")
	}
	o := newOptions(opts)
	if o.box != nil {
		if err := o.box.Validate(); err != nil {
			return nil, err
		}
	}

	bounds := mask.Bounds()
	owned := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		copy(owned.Pix[owned.PixOffset(0, y):owned.PixOffset(0, y)+bounds.Dx()],
			mask.Pix[mask.PixOffset(bounds.Min.X, bounds.Min.Y+y):])
	}

	return &Mask{
		base: base{
			label:      label,
			category:   category,
			attributes: o.attributes,
			confidence: o.confidence,
		},
		mask: owned,
		box:  o.box,
	}, nil
}

// MaskImage returns the current mask. It must not be modified.
func (m *Mask) MaskImage() *image.Gray {
	return m.mask
}

// Box returns the explicit box if one was given, otherwise the extents of
// the foreground pixels. It fails with geometry.ErrEmptyMask for a mask
// without foreground and no explicit box.
func (m *Mask) Box() (geometry.Box, error) {
	if m.box != nil {
		return *m.box, nil
	}
	return geometry.MaskBBox(m.mask)
}

// Scale resizes the mask (and explicit box) by factor.
func (m *Mask) Scale(factor float64) error {
	return apply(m.planScale(factor))
}

// Crop cuts the mask to box and moves an explicit box into the new frame.
func (m *Mask) Crop(box geometry.Box) error {
	return apply(m.planCrop(box))
}

func (m *Mask) planScale(factor float64) (func(), error) {
	scaled, err := geometry.ScaleMask(m.mask, factor)
	if err != nil {
		return nil, err
	}
	box := m.box
	if box != nil {
		b := box.Scale(factor)
		box = &b
	}
	return func() { m.mask, m.box = scaled, box }, nil
}

func (m *Mask) planCrop(crop geometry.Box) (func(), error) {
	cropped, err := geometry.CropMask(m.mask, crop)
	if err != nil {
		return nil, err
	}
	box := m.box
	if box != nil {
		b := box.Translate(-crop.XMin, -crop.YMin).Clamp(crop.Width(), crop.Height())
		box = &b
	}
	return func() { m.mask, m.box = cropped, box }, nil
}

// Visualize fills the mask, then draws its box and label on top.
func (m *Mask) Visualize(img image.Image, c palette.Color, alpha float64) (*image.NRGBA, error) {
	box, err := m.Box()
	if err != nil {
		return nil, err
	}

	filled, err := render.DrawMask(img, m.mask, c, alpha)
	if err != nil {
		return nil, err
	}
	return render.DrawBoundingBox(filled, box, m.Label(), c, alpha)
}

func (m *Mask) String() string {
	return fmt.Sprintf("Mask(label=%s, category=%s)", m.label, m.category)
}
