// Package transform applies geometric changes to an image and its
// annotations together, so the annotations keep pointing at the same pixels.
package transform

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/detviz/internal/annotation"
	"github.com/ironsheep/detviz/internal/geometry"
)

// ErrEmptyAnnotations is returned by Crop when there are no annotations to
// derive the crop region from.
var ErrEmptyAnnotations = errors.New("no annotations to crop around")

// Transform changes an image and its annotations consistently.
//
// Apply returns a new image and the same annotation slice, in the same order,
// with each annotation's geometry updated in place. Resize and Crop change
// either every annotation or, on error, none.
type Transform interface {
	Apply(img image.Image, anns []annotation.Annotation) (*image.NRGBA, []annotation.Annotation, error)
	String() string
}

// Resize scales the image so its longer side is LongestEdge pixels.
//
// Resize always resamples, including when the factor is exactly 1.
type Resize struct {
	LongestEdge int
}

// NewResize returns a Resize to longestEdge pixels.
func NewResize(longestEdge int) *Resize {
	return &Resize{LongestEdge: longestEdge}
}

// Apply implements Transform.
func (r *Resize) Apply(img image.Image, anns []annotation.Annotation) (*image.NRGBA, []annotation.Annotation, error) {
	if r.LongestEdge <= 0 {
		return nil, nil, errors.Wrapf(geometry.ErrInvalidScale, "longest edge %d", r.LongestEdge)
	}

	bounds := img.Bounds()
	factor := geometry.ScaleFactor(bounds.Dy(), bounds.Dx(), r.LongestEdge)

	scaled, err := geometry.ScaleImage(img, factor)
	if err != nil {
		return nil, nil, err
	}

	if err := annotation.ScaleAll(anns, factor); err != nil {
		return nil, nil, err
	}
	return scaled, anns, nil
}

func (r *Resize) String() string {
	return fmt.Sprintf("Resize(longest_edge=%d)", r.LongestEdge)
}

// Crop cuts the image down to the union of the annotation boxes, grown by
// Padding pixels on each side and clamped to the image.
type Crop struct {
	Padding int
}

// NewCrop returns a Crop with the given padding.
func NewCrop(padding int) *Crop {
	return &Crop{Padding: padding}
}

// Region returns the crop box Apply would use for an image of the given size.
func (c *Crop) Region(width, height int, anns []annotation.Annotation) (geometry.Box, error) {
	boxes, err := annotation.Boxes(anns)
	if err != nil {
		return geometry.Box{}, err
	}

	union, ok := geometry.Union(boxes)
	if !ok {
		return geometry.Box{}, errors.WithStack(ErrEmptyAnnotations)
	}

	region := union.Expand(c.Padding).Clamp(width-1, height-1)
	if err := region.Validate(); err != nil {
		return geometry.Box{}, err
	}
	return region, nil
}

// Apply implements Transform. It fails with ErrEmptyAnnotations when anns
// is empty.
func (c *Crop) Apply(img image.Image, anns []annotation.Annotation) (*image.NRGBA, []annotation.Annotation, error) {
	bounds := img.Bounds()
	region, err := c.Region(bounds.Dx(), bounds.Dy(), anns)
	if err != nil {
		return nil, nil, err
	}

	cropped, err := geometry.CropImage(img, region)
	if err != nil {
		return nil, nil, err
	}

	if err := annotation.CropAll(anns, region); err != nil {
		return nil, nil, err
	}
	return cropped, anns, nil
}

func (c *Crop) String() string {
	return fmt.Sprintf("Crop(padding=%d)", c.Padding)
}

// Compose applies Transforms in order, feeding each one the output of the
// previous one. When a step fails, the annotation changes made by the steps
// before it are kept.
type Compose struct {
	Transforms []Transform
}

// NewCompose returns a Compose of transforms.
func NewCompose(transforms ...Transform) *Compose {
	return &Compose{Transforms: transforms}
}

// Apply implements Transform. An empty Compose returns a copy of img.
func (c *Compose) Apply(img image.Image, anns []annotation.Annotation) (*image.NRGBA, []annotation.Annotation, error) {
	if len(c.Transforms) == 0 {
		return imaging.Clone(img), anns, nil
	}

	var out *image.NRGBA
	current := img
	for i, t := range c.Transforms {
		if t == nil {
			return nil, nil, errors.Wrapf(ErrUnknownTransform, "transform %d is nil", i)
		}
		var err error
		out, anns, err = t.Apply(current, anns)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "%s", t)
		}
		current = out
	}
	return out, anns, nil
}

func (c *Compose) String() string {
	parts := make([]string, len(c.Transforms))
	for i, t := range c.Transforms {
		if t == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = t.String()
	}
	return fmt.Sprintf("Compose(%s)", strings.Join(parts, ", "))
}
