package detviz

import (
	"image"

	"github.com/ironsheep/detviz/internal/annotation"
	"github.com/ironsheep/detviz/internal/config"
	"github.com/ironsheep/detviz/internal/geometry"
	"github.com/ironsheep/detviz/internal/palette"
	"github.com/ironsheep/detviz/internal/render"
	"github.com/ironsheep/detviz/internal/transform"
)

type (
	// Annotation is a BoundingBox or a Mask.
	Annotation       = annotation.Annotation
	BoundingBox      = annotation.BoundingBox
	Mask             = annotation.Mask
	// AnnotationOption configures NewBoundingBox and NewMask.
	AnnotationOption = annotation.Option

	Box = geometry.Box

	Color      = palette.Color
	Mapper     = palette.Mapper
	AutoMapper = palette.AutoMapper
	SyncMapper = palette.SyncMapper

	Transform     = transform.Transform
	Resize        = transform.Resize
	Crop          = transform.Crop
	Compose       = transform.Compose
	TransformSpec = transform.Spec

	Config = config.Config
)

var (
	ErrEmptyMask         = geometry.ErrEmptyMask
	ErrDegenerateBox     = geometry.ErrDegenerateBox
	ErrInvalidScale      = geometry.ErrInvalidScale
	ErrEmptyAnnotations  = transform.ErrEmptyAnnotations
	ErrUnknownTransform  = transform.ErrUnknownTransform
	ErrUnknownAnnotation = annotation.ErrUnknownAnnotation
	ErrInvalidAlpha      = render.ErrInvalidAlpha
	ErrMaskSize          = render.ErrMaskSize
	ErrInvalidConfig     = config.ErrInvalidConfig
)

// Green is the default first category color.
var Green = palette.Green

// NewBoundingBox returns a box annotation.
func NewBoundingBox(label, category string, box Box, opts ...AnnotationOption) (*BoundingBox, error) {
	return annotation.NewBoundingBox(label, category, box, opts...)
}

// NewMask returns a mask annotation. Nonzero pixels of mask are foreground.
func NewMask(label, category string, mask *image.Gray, opts ...AnnotationOption) (*Mask, error) {
	return annotation.NewMask(label, category, mask, opts...)
}

// WithAttributes attaches free-form attributes to an annotation.
func WithAttributes(attrs map[string]any) AnnotationOption {
	return annotation.WithAttributes(attrs)
}

// WithConfidence marks an annotation as a prediction; its label is shown as
// "<label> - 0.87".
func WithConfidence(confidence float64) AnnotationOption {
	return annotation.WithConfidence(confidence)
}

// WithBox gives a mask an explicit bounding box instead of its extents.
func WithBox(box Box) AnnotationOption {
	return annotation.WithBox(box)
}

// NewResize returns a transform that scales the image so its longer side is
// longestEdge pixels.
func NewResize(longestEdge int) *Resize { return transform.NewResize(longestEdge) }

// NewCrop returns a transform that crops to the union of the annotation
// boxes grown by padding pixels.
func NewCrop(padding int) *Crop { return transform.NewCrop(padding) }

// NewCompose returns a transform that applies transforms in order.
func NewCompose(transforms ...Transform) *Compose {
	return transform.NewCompose(transforms...)
}

// TransformFromSpecs builds a transform chain from configuration entries.
func TransformFromSpecs(specs []TransformSpec) (Transform, error) {
	return transform.FromSpecs(specs)
}

// NextColor returns the color that follows prev in the category sequence.
func NextColor(prev Color) Color { return palette.Next(prev) }

// ParseColor parses "#RRGGBB" or "RRGGBB".
func ParseColor(hex string) (Color, error) { return palette.ParseHex(hex) }

// NewAutoMapper returns a mapper that gives the first category seen the
// color first.
func NewAutoMapper(first Color) *AutoMapper { return palette.NewAutoMapper(first) }

// NewSyncMapper wraps m for use from several goroutines.
func NewSyncMapper(m Mapper) *SyncMapper { return palette.NewSyncMapper(m) }

// IoU returns the intersection over union of two boxes.
func IoU(a, b Box) float64 { return geometry.IoU(a, b) }

// MaskBBox returns the tight box around the nonzero pixels of mask.
func MaskBBox(mask *image.Gray) (Box, error) { return geometry.MaskBBox(mask) }

// MaskFromImage binarizes img into a mask: pixels with rank 0.3R + 0.6G + 0.1B
// of at least 128 are foreground, transparent pixels are background.
func MaskFromImage(img image.Image) *image.Gray { return geometry.MaskFromImage(img) }
