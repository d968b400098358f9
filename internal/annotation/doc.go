// Package annotation defines the labeled regions drawn onto images.
//
// An Annotation is either a *BoundingBox or a *Mask. Both carry a display
// label, a category used for color assignment and optional free-form
// attributes. Geometry changes (Scale, Crop) mutate the annotation in place so
// that a pipeline of transforms can thread the same values through; the
// caller owns the annotations for the duration of a call.
package annotation
