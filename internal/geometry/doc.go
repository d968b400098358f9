// Package geometry provides box arithmetic and the image operations that must
// stay in sync with it: scaling, cropping, mask extents and overlap.
//
// # Coordinate System
//
// Coordinates are 0-based pixels with the origin at the top-left corner,
// X increasing rightward and Y increasing downward. A Box is
// (XMin, YMin, XMax, YMax). When a box is used to slice an image the max
// edges are exclusive, matching image.Rectangle. Boxes derived from masks use
// the coordinates of the last foreground pixel as max edges.
//
// # Images and Masks
//
// Every operation returns a new zero-origin image; inputs are never modified.
// Masks are *image.Gray values where any nonzero pixel is foreground.
package geometry
