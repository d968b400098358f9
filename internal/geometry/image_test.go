package geometry

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// createMask creates a mask with the given box (inclusive) set to fg.
func createMask(width, height int, box Box, fg uint8) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for y := box.YMin; y <= box.YMax; y++ {
		for x := box.XMin; x <= box.XMax; x++ {
			mask.SetGray(x, y, color.Gray{Y: fg})
		}
	}
	return mask
}

func TestScaleImage(t *testing.T) {
	img := createInMemoryImage(200, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name          string
		factor        float64
		wantW, wantH  int
	}{
		{"downscale", 0.5, 100, 50},
		{"upscale", 2.0, 400, 200},
		{"identity", 1.0, 200, 100},
		{"rounding", 0.333, 67, 33},
		{"tiny", 0.001, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScaleImage(img, tt.factor)
			if err != nil {
				t.Fatalf("ScaleImage failed: %v", err)
			}
			if result.Bounds().Dx() != tt.wantW || result.Bounds().Dy() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					result.Bounds().Dx(), result.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestScaleImage_InvalidFactor(t *testing.T) {
	img := createInMemoryImage(10, 10, color.Black)

	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := ScaleImage(img, f); !errors.Is(err, ErrInvalidScale) {
			t.Errorf("ScaleImage(%v): got %v, want ErrInvalidScale", f, err)
		}
	}
}

func TestScaleImage_AreaAveraging(t *testing.T) {
	// Alternating black and white columns average to mid gray.
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x%2 == 0 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}

	result, err := ScaleImage(img, 0.5)
	if err != nil {
		t.Fatalf("ScaleImage failed: %v", err)
	}

	r, _, _, _ := result.At(0, 0).RGBA()
	r8 := int(r >> 8)
	if r8 < 120 || r8 > 135 {
		t.Errorf("averaged value: got %d, want ~128", r8)
	}
}

func TestScaleImage_DoesNotModifyInput(t *testing.T) {
	img := createPatternImage(20, 20)
	before := append([]uint8(nil), img.Pix...)

	if _, err := ScaleImage(img, 0.5); err != nil {
		t.Fatalf("ScaleImage failed: %v", err)
	}
	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatal("input image was modified")
		}
	}
}

func TestCropImage(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := CropImage(img, Box{0, 0, 50, 50})
	if err != nil {
		t.Fatalf("CropImage failed: %v", err)
	}
	if result.Bounds().Dx() != 50 || result.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Bounds().Dx(), result.Bounds().Dy())
	}
	if result.Bounds().Min != (image.Point{}) {
		t.Errorf("result should be zero-origin, got %v", result.Bounds())
	}

	// Top-left quadrant is red.
	r, g, b, _ := result.At(25, 25).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("cropped color: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestCropImage_VerifyOffset(t *testing.T) {
	img := createPatternImage(100, 100)

	// Straddle the vertical split: x=50 is green in the source.
	result, err := CropImage(img, Box{40, 10, 60, 20})
	if err != nil {
		t.Fatalf("CropImage failed: %v", err)
	}

	r, g, _, _ := result.At(10, 0).RGBA()
	if uint8(r>>8) != 0 || uint8(g>>8) != 255 {
		t.Errorf("pixel (10,0) should be green, got r=%d g=%d", r>>8, g>>8)
	}
	r, g, _, _ = result.At(9, 0).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 {
		t.Errorf("pixel (9,0) should be red, got r=%d g=%d", r>>8, g>>8)
	}
}

func TestCropImage_Invalid(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		box  Box
		want error
	}{
		{"x inverted", Box{60, 0, 50, 50}, ErrDegenerateBox},
		{"y inverted", Box{0, 60, 50, 50}, ErrDegenerateBox},
		{"x negative", Box{-1, 0, 50, 50}, nil},
		{"x2 too large", Box{0, 0, 101, 50}, nil},
		{"y2 too large", Box{0, 0, 50, 101}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropImage(img, tt.box)
			if err == nil {
				t.Fatal("CropImage should fail")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMaskBBox(t *testing.T) {
	mask := createMask(50, 40, Box{5, 7, 20, 30}, 1)

	box, err := MaskBBox(mask)
	if err != nil {
		t.Fatalf("MaskBBox failed: %v", err)
	}
	if box != (Box{5, 7, 20, 30}) {
		t.Errorf("got %v, want (5,7,20,30)", box)
	}
}

func TestMaskBBox_SinglePixel(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 10, 10))
	mask.SetGray(3, 8, color.Gray{Y: 255})

	box, err := MaskBBox(mask)
	if err != nil {
		t.Fatalf("MaskBBox failed: %v", err)
	}
	if box != (Box{3, 8, 3, 8}) {
		t.Errorf("got %v, want (3,8,3,8)", box)
	}
}

func TestMaskBBox_Empty(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 10, 10))

	if _, err := MaskBBox(mask); !errors.Is(err, ErrEmptyMask) {
		t.Errorf("got %v, want ErrEmptyMask", err)
	}
}

func TestMaskBBox_SubImage(t *testing.T) {
	mask := createMask(50, 50, Box{20, 20, 25, 25}, 255)
	sub := mask.SubImage(image.Rect(10, 10, 40, 40)).(*image.Gray)

	box, err := MaskBBox(sub)
	if err != nil {
		t.Fatalf("MaskBBox failed: %v", err)
	}
	if box != (Box{10, 10, 15, 15}) {
		t.Errorf("got %v, want (10,10,15,15) relative to the sub-image", box)
	}
}

func TestMaskFromImage(t *testing.T) {
	img := createPatternImage(10, 10)
	mask := MaskFromImage(img)

	// Red has rank ~76, white 255.
	if mask.GrayAt(1, 1).Y != 0 {
		t.Errorf("red quadrant should be background, got %d", mask.GrayAt(1, 1).Y)
	}
	if mask.GrayAt(8, 8).Y != 255 {
		t.Errorf("white quadrant should be foreground, got %d", mask.GrayAt(8, 8).Y)
	}
}

func TestScaleMask(t *testing.T) {
	mask := createMask(100, 100, Box{20, 20, 59, 59}, 1)

	scaled, err := ScaleMask(mask, 0.5)
	if err != nil {
		t.Fatalf("ScaleMask failed: %v", err)
	}
	if scaled.Bounds().Dx() != 50 || scaled.Bounds().Dy() != 50 {
		t.Fatalf("dimensions: got %v, want 50x50", scaled.Bounds())
	}

	box, err := MaskBBox(scaled)
	if err != nil {
		t.Fatalf("MaskBBox failed: %v", err)
	}
	want := Box{10, 10, 29, 29}
	if abs(box.XMin-want.XMin) > 1 || abs(box.YMin-want.YMin) > 1 ||
		abs(box.XMax-want.XMax) > 1 || abs(box.YMax-want.YMax) > 1 {
		t.Errorf("scaled mask box: got %v, want ~%v", box, want)
	}
}

func TestMaskFromImage_Transparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{255, 255, 255, 255})
	img.Set(2, 2, color.NRGBA{255, 255, 255, 40})

	mask := MaskFromImage(img)

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0},   // fully transparent
		{1, 1, 255}, // opaque white
		{2, 2, 0},   // faint white over black
	}
	for _, tt := range tests {
		if got := mask.GrayAt(tt.x, tt.y).Y; got != tt.want {
			t.Errorf("(%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestScaleMask_ThinStripe(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		factor float64
	}{
		{"one pixel at quarter size", 1, 0.25},
		{"one pixel at tenth size", 1, 0.1},
		{"two pixels at quarter size", 2, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := createMask(400, 400, Box{200, 100, 200 + tt.width - 1, 299}, 255)

			scaled, err := ScaleMask(mask, tt.factor)
			if err != nil {
				t.Fatalf("ScaleMask failed: %v", err)
			}
			box, err := MaskBBox(scaled)
			if err != nil {
				t.Fatalf("stripe lost after scaling: %v", err)
			}
			wantX := int(200 * tt.factor)
			if abs(box.XMin-wantX) > 1 {
				t.Errorf("stripe x: got %d, want ~%d", box.XMin, wantX)
			}
			for y := 0; y < scaled.Bounds().Dy(); y++ {
				for x := 0; x < scaled.Bounds().Dx(); x++ {
					if v := scaled.GrayAt(x, y).Y; v != 0 && v != 255 {
						t.Fatalf("non-binary value %d at (%d,%d)", v, x, y)
					}
				}
			}
		})
	}
}

func TestCropMask(t *testing.T) {
	mask := createMask(100, 100, Box{20, 20, 50, 50}, 1)

	cropped, err := CropMask(mask, Box{10, 10, 100, 100})
	if err != nil {
		t.Fatalf("CropMask failed: %v", err)
	}

	box, err := MaskBBox(cropped)
	if err != nil {
		t.Fatalf("MaskBBox failed: %v", err)
	}
	if box != (Box{10, 10, 40, 40}) {
		t.Errorf("cropped mask box: got %v, want (10,10,40,40)", box)
	}
}
