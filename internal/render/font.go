package render

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	// referenceFontSize is the size at which a label is first measured
	// before its size is corrected to the target width.
	referenceFontSize = 64.0

	minFontSize = 1.0
)

var (
	labelFont     *opentype.Font
	labelFontOnce sync.Once
	labelFontErr  error
)

// loadLabelFont parses the embedded Go Regular font once.
func loadLabelFont() (*opentype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(goregular.TTF)
		if labelFontErr != nil {
			labelFontErr = errors.Wrap(labelFontErr, "failed to parse label font")
		}
	})
	return labelFont, labelFontErr
}

// newFace returns a label face of the given pixel size.
// Faces are not safe for concurrent use; callers close them when done.
func newFace(size float64) (font.Face, error) {
	f, err := loadLabelFont()
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %.2fpx face", size)
	}
	return face, nil
}

// fitFontSize returns the font size at which text is targetWidth pixels
// wide. Advance widths scale linearly with size, so one measurement at the
// reference size is enough. It returns 0 when text has no width.
func fitFontSize(text string, targetWidth float64) (float64, error) {
	face, err := newFace(referenceFontSize)
	if err != nil {
		return 0, err
	}
	defer face.Close()

	width := float64(font.MeasureString(face, text)) / 64.0
	if width <= 0 {
		return 0, nil
	}

	return max(minFontSize, referenceFontSize*targetWidth/width), nil
}
