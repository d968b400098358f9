package render

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/ironsheep/detviz/internal/geometry"
	"github.com/ironsheep/detviz/internal/palette"
)

const (
	// thicknessRatio is the box outline thickness relative to the image
	// diagonal.
	thicknessRatio = 3e-3

	minLabelFraction = 0.25
	maxLabelFraction = 0.75
)

var labelBackground = palette.Color{}

// DrawBoundingBox draws box with its label onto a copy of img and blends the
// drawing with img by alpha.
//
// The outline is LineThickness pixels wide. The label sits on a black
// background anchored inside the box's top-left corner; its font size is
// chosen so the text spans LabelWidthFraction of the box width. Labels are
// skipped when empty or when the box has no width.
//
// Returns ErrInvalidAlpha for alpha outside [0, 1] and
// geometry.ErrDegenerateBox for inverted boxes.
func DrawBoundingBox(img image.Image, box geometry.Box, label string, c palette.Color, alpha float64) (*image.NRGBA, error) {
	if err := checkAlpha(alpha); err != nil {
		return nil, err
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}

	original := imaging.Clone(img)
	width := original.Bounds().Dx()
	height := original.Bounds().Dy()
	thickness := LineThickness(width, height)

	dc := gg.NewContextForImage(original)
	setColor(dc, c)
	dc.SetLineWidth(float64(thickness))
	dc.DrawRectangle(float64(box.XMin), float64(box.YMin), float64(box.Width()), float64(box.Height()))
	dc.Stroke()

	if label != "" && box.Width() > 0 {
		if err := drawLabel(dc, box, label, c, thickness, width); err != nil {
			return nil, err
		}
	}

	return AddWeighted(original, dc.Image(), alpha), nil
}

// drawLabel draws label on a filled background at the box's top-left corner.
func drawLabel(dc *gg.Context, box geometry.Box, label string, c palette.Color, thickness, imageWidth int) error {
	target := LabelWidthFraction(box.Width(), imageWidth) * float64(box.Width())
	size, err := fitFontSize(label, target)
	if err != nil {
		return err
	}
	if size == 0 {
		return nil
	}

	face, err := newFace(size)
	if err != nil {
		return err
	}
	defer face.Close()

	textWidth := font.MeasureString(face, label).Ceil()
	textHeight := face.Metrics().Ascent.Ceil()

	x := float64(box.XMin)
	y := float64(box.YMin)
	t := float64(thickness)

	setColor(dc, labelBackground)
	dc.DrawRectangle(x+t, y+t, float64(textWidth)+3*t, float64(textHeight)+3*t)
	dc.Fill()

	setColor(dc, c)
	dc.SetFontFace(face)
	dc.DrawString(label, x+2*t, y+2*t+float64(textHeight))
	return nil
}

// LineThickness returns the outline width for an image of the given size:
// 0.003 of the diagonal, rounded, at least one pixel.
func LineThickness(width, height int) int {
	diagonal := math.Hypot(float64(width), float64(height))
	return max(1, int(math.Round(thicknessRatio*diagonal)))
}

// LabelWidthFraction returns the share of the box width the label text
// should occupy. Boxes covering little of the image get the larger share.
func LabelWidthFraction(boxWidth, imageWidth int) float64 {
	if imageWidth <= 0 {
		return maxLabelFraction
	}
	f := 1 - float64(boxWidth)/float64(imageWidth)
	return math.Min(math.Max(f, minLabelFraction), maxLabelFraction)
}

func setColor(dc *gg.Context, c palette.Color) {
	dc.SetRGB255(int(c.R), int(c.G), int(c.B))
}
