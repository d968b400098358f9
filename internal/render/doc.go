// Package render draws annotations onto images.
//
// DrawBoundingBox strokes a box outline, a filled label background and the
// label text, then blends the result with the untouched input so the overlay
// is see-through. DrawMask tints the masked pixels toward a color. Both
// return new images and leave their inputs unchanged.
//
// Drawing is done with github.com/fogleman/gg, label text uses the Go Regular
// font through golang.org/x/image/font/opentype, and weighted blending uses
// github.com/anthonynsimon/bild/blend.
package render
