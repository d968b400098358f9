package annotation

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"github.com/ironsheep/detviz/internal/geometry"
	"github.com/ironsheep/detviz/internal/palette"
)

// ErrUnknownAnnotation is returned when Draw receives a value that is not one
// of the annotation variants.
var ErrUnknownAnnotation = errors.New("unknown annotation variant")

// Annotation is a labeled region of interest on an image.
//
// The set of implementations is closed: *BoundingBox and *Mask.
type Annotation interface {
	// Label is the text drawn next to the region.
	Label() string
	// Category keys color assignment.
	Category() string
	// Attributes returns optional metadata, possibly nil.
	Attributes() map[string]any
	// Box returns the region's bounding box in image coordinates.
	Box() (geometry.Box, error)
	// Scale multiplies the geometry by factor.
	Scale(factor float64) error
	// Crop moves the geometry into the frame of an image cropped to box.
	Crop(box geometry.Box) error
	// Visualize draws the annotation onto a copy of img.
	Visualize(img image.Image, c palette.Color, alpha float64) (*image.NRGBA, error)

	fmt.Stringer

	// planScale and planCrop compute new geometry without applying it; the
	// returned commit applies it.
	planScale(factor float64) (commit func(), err error)
	planCrop(box geometry.Box) (commit func(), err error)
}

// Option configures optional annotation fields.
type Option func(*options)

type options struct {
	attributes map[string]any
	confidence *float64
	box        *geometry.Box
}

// WithAttributes attaches free-form metadata.
func WithAttributes(attrs map[string]any) Option {
	return func(o *options) {
		o.attributes = attrs
	}
}

// WithConfidence marks the annotation as a prediction; the drawn label
// becomes "<label> - <confidence>" with two decimals.
func WithConfidence(confidence float64) Option {
	return func(o *options) {
		o.confidence = &confidence
	}
}

// WithBox sets an explicit bounding box for a Mask instead of deriving it from
// the mask extents. It has no effect on a BoundingBox.
func WithBox(box geometry.Box) Option {
	return func(o *options) {
		o.box = &box
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// base holds the fields shared by every variant.
type base struct {
	label      string
	category   string
	attributes map[string]any
	confidence *float64
}

func (b *base) Label() string {
	if b.confidence != nil {
		return fmt.Sprintf("%s - %.2f", b.label, *b.confidence)
	}
	return b.label
}

func (b *base) Category() string           { return b.category }
func (b *base) Attributes() map[string]any { return b.attributes }

// Confidence returns the prediction confidence, if any.
func (b *base) Confidence() (float64, bool) {
	if b.confidence == nil {
		return 0, false
	}
	return *b.confidence, true
}

// Draw renders a onto img with color c.
func Draw(img image.Image, a Annotation, c palette.Color, alpha float64) (*image.NRGBA, error) {
	switch v := a.(type) {
	case *BoundingBox:
		if v == nil {
			break
		}
		return v.Visualize(img, c, alpha)
	case *Mask:
		if v == nil {
			break
		}
		return v.Visualize(img, c, alpha)
	}
	return nil, errors.Wrapf(ErrUnknownAnnotation, "%T", a)
}

// Boxes returns the bounding box of every annotation, in order.
func Boxes(anns []Annotation) ([]geometry.Box, error) {
	boxes := make([]geometry.Box, 0, len(anns))
	for i, a := range anns {
		if isNil(a) {
			return nil, errors.Wrapf(ErrUnknownAnnotation, "annotation %d is nil", i)
		}
		b, err := a.Box()
		if err != nil {
			return nil, errors.Wrapf(err, "annotation %d (%s)", i, a)
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}

// ScaleAll scales every annotation by factor. Either all annotations are
// scaled or, on error, none is changed.
func ScaleAll(anns []Annotation, factor float64) error {
	return applyAll(anns, func(a Annotation) (func(), error) {
		return a.planScale(factor)
	}, "scale")
}

// CropAll moves every annotation into the frame of an image cropped to box.
// Either all annotations are cropped or, on error, none is changed.
func CropAll(anns []Annotation, box geometry.Box) error {
	if err := box.Validate(); err != nil {
		return err
	}
	return applyAll(anns, func(a Annotation) (func(), error) {
		return a.planCrop(box)
	}, "crop")
}

func applyAll(anns []Annotation, plan func(Annotation) (func(), error), op string) error {
	commits := make([]func(), 0, len(anns))
	for i, a := range anns {
		if isNil(a) {
			return errors.Wrapf(ErrUnknownAnnotation, "annotation %d is nil", i)
		}
		commit, err := plan(a)
		if err != nil {
			return errors.Wrapf(err, "failed to %s annotation %d (%s)", op, i, a)
		}
		commits = append(commits, commit)
	}
	for _, commit := range commits {
		commit()
	}
	return nil
}

// isNil reports a nil interface or a nil variant pointer.
func isNil(a Annotation) bool {
	switch v := a.(type) {
	case *BoundingBox:
		return v == nil
	case *Mask:
		return v == nil
	}
	return a == nil
}

func apply(commit func(), err error) error {
	if err != nil {
		return err
	}
	commit()
	return nil
}
