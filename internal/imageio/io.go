package imageio

import (
	"bytes"
	"encoding/base64"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/detviz/internal/geometry"
)

// Info describes an image file.
type Info struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is derived from the file extension ("PNG", "JPEG", ...), or
	// "unknown".
	Format string `json:"format"`

	HasAlpha      bool  `json:"has_alpha"`
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Stat loads path through cache and reports its size and format.
func Stat(cache *Cache, path string) (*Info, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat file")
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = f.String()
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &Info{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: fi.Size(),
	}, nil
}

// LoadMask loads a mask image through cache and binarizes it with
// geometry.MaskFromImage.
func LoadMask(cache *Cache, path string) (*image.Gray, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return geometry.MaskFromImage(img), nil
}

// Save writes img to path in the format given by its extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "failed to save image %s", path)
	}
	return nil
}

// EncodeBase64PNG returns img as base64-encoded PNG.
func EncodeBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", errors.Wrap(err, "failed to encode PNG")
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
