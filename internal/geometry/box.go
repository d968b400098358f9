package geometry

import (
	"fmt"
	"image"
	"math"

	"github.com/pkg/errors"
)

// ErrDegenerateBox is returned for boxes with XMax < XMin or YMax < YMin.
var ErrDegenerateBox = errors.New("degenerate box")

// Box is an axis-aligned box in integer pixel coordinates.
//
// Box is a value type; every operation returns a new Box.
type Box struct {
	XMin int `json:"xmin" mapstructure:"xmin"`
	YMin int `json:"ymin" mapstructure:"ymin"`
	XMax int `json:"xmax" mapstructure:"xmax"`
	YMax int `json:"ymax" mapstructure:"ymax"`
}

// NewBox returns a validated box.
func NewBox(xmin, ymin, xmax, ymax int) (Box, error) {
	b := Box{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}
	if err := b.Validate(); err != nil {
		return Box{}, err
	}
	return b, nil
}

// FromRect converts an image.Rectangle.
func FromRect(r image.Rectangle) Box {
	return Box{XMin: r.Min.X, YMin: r.Min.Y, XMax: r.Max.X, YMax: r.Max.Y}
}

// Validate reports ErrDegenerateBox when an edge pair is inverted.
// Zero-width or zero-height boxes are valid.
func (b Box) Validate() error {
	if b.XMax < b.XMin || b.YMax < b.YMin {
		return errors.Wrapf(ErrDegenerateBox, "%v", b)
	}
	return nil
}

// Width returns XMax - XMin.
func (b Box) Width() int { return b.XMax - b.XMin }

// Height returns YMax - YMin.
func (b Box) Height() int { return b.YMax - b.YMin }

// Area returns Width*Height, or 0 for degenerate boxes.
func (b Box) Area() int {
	if b.XMax < b.XMin || b.YMax < b.YMin {
		return 0
	}
	return b.Width() * b.Height()
}

// Rect returns the box as an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.XMin, b.YMin, b.XMax, b.YMax)
}

// Scale multiplies every coordinate by factor, rounding to the nearest pixel.
func (b Box) Scale(factor float64) Box {
	return Box{
		XMin: int(math.Round(float64(b.XMin) * factor)),
		YMin: int(math.Round(float64(b.YMin) * factor)),
		XMax: int(math.Round(float64(b.XMax) * factor)),
		YMax: int(math.Round(float64(b.YMax) * factor)),
	}
}

// Translate shifts the box by (dx, dy).
func (b Box) Translate(dx, dy int) Box {
	return Box{XMin: b.XMin + dx, YMin: b.YMin + dy, XMax: b.XMax + dx, YMax: b.YMax + dy}
}

// Expand grows the box by padding pixels on each side.
func (b Box) Expand(padding int) Box {
	return Box{
		XMin: b.XMin - padding,
		YMin: b.YMin - padding,
		XMax: b.XMax + padding,
		YMax: b.YMax + padding,
	}
}

// Clamp restricts every coordinate to [0, maxX] and [0, maxY].
func (b Box) Clamp(maxX, maxY int) Box {
	return Box{
		XMin: clamp(b.XMin, 0, maxX),
		YMin: clamp(b.YMin, 0, maxY),
		XMax: clamp(b.XMax, 0, maxX),
		YMax: clamp(b.YMax, 0, maxY),
	}
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", b.XMin, b.YMin, b.XMax, b.YMax)
}

// Union returns the smallest box containing all boxes.
// It returns false when boxes is empty.
func Union(boxes []Box) (Box, bool) {
	if len(boxes) == 0 {
		return Box{}, false
	}
	u := boxes[0]
	for _, b := range boxes[1:] {
		u.XMin = min(u.XMin, b.XMin)
		u.YMin = min(u.YMin, b.YMin)
		u.XMax = max(u.XMax, b.XMax)
		u.YMax = max(u.YMax, b.YMax)
	}
	return u, true
}

// IoU returns the intersection over union of a and b.
//
// Disjoint boxes, boxes that only touch, and pairs whose union has no area
// all return 0. IoU is symmetric.
func IoU(a, b Box) float64 {
	ix := min(a.XMax, b.XMax) - max(a.XMin, b.XMin)
	iy := min(a.YMax, b.YMax) - max(a.YMin, b.YMin)
	if ix <= 0 || iy <= 0 {
		return 0.0
	}

	inter := float64(ix * iy)
	union := float64(a.Area()+b.Area()) - inter
	if union <= 0 {
		return 0.0
	}
	return inter / union
}

// ScaleFactor returns the factor that brings the longer of height and width
// to longestEdge.
func ScaleFactor(height, width, longestEdge int) float64 {
	return float64(longestEdge) / float64(max(height, width))
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
