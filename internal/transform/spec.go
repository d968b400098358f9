package transform

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownTransform is returned by FromSpecs for an unrecognized type and
// by Compose for a nil step.
var ErrUnknownTransform = errors.New("unknown transform type")

// Spec describes one transform in configuration.
type Spec struct {
	// Type is "resize" or "crop".
	Type string `mapstructure:"type" json:"type"`

	// LongestEdge is the target size of a resize.
	LongestEdge int `mapstructure:"longest_edge" json:"longest_edge,omitempty"`

	// Padding is the margin of a crop.
	Padding int `mapstructure:"padding" json:"padding,omitempty"`
}

// FromSpecs builds the transform chain described by specs. It returns nil
// for an empty list, a single transform for one spec, and a Compose otherwise.
func FromSpecs(specs []Spec) (Transform, error) {
	transforms := make([]Transform, 0, len(specs))
	for i, s := range specs {
		switch strings.ToLower(strings.TrimSpace(s.Type)) {
		case "resize":
			if s.LongestEdge <= 0 {
				return nil, errors.Errorf("transform %d: resize needs a positive longest_edge, got %d", i, s.LongestEdge)
			}
			transforms = append(transforms, NewResize(s.LongestEdge))
		case "crop":
			if s.Padding < 0 {
				return nil, errors.Errorf("transform %d: crop padding must not be negative, got %d", i, s.Padding)
			}
			transforms = append(transforms, NewCrop(s.Padding))
		default:
			return nil, errors.Wrapf(ErrUnknownTransform, "transform %d: %q", i, s.Type)
		}
	}

	switch len(transforms) {
	case 0:
		return nil, nil
	case 1:
		return transforms[0], nil
	default:
		return NewCompose(transforms...), nil
	}
}
