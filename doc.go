// Package detviz renders detection and segmentation annotations onto images.
//
// A Visualizer combines three pieces: a color mapper that gives every
// annotation category a stable color, an optional transform that resizes or
// crops the image together with its annotations, and the drawing routines
// for boxes and masks. Visualize runs them in that order and returns a new
// image; the input image is never modified.
//
// # Annotations
//
// Two annotation variants exist. A BoundingBox is drawn as an outline with a
// label on a black background in its top-left corner. A Mask tints its
// foreground pixels with the category color and then draws its bounding box
// and label on top. Annotation geometry is updated in place by transforms, so
// build a fresh set of annotations for every call.
//
// # Colors
//
// Categories are colored in the order they are first seen. The first
// category gets the first color (green unless changed with WithFirstColor);
// each new category after that steps the hue of the previous color by the
// golden-ratio conjugate of a full turn. By default the assignment lives as
// long as the Visualizer; WithColorScope(ColorScopeCall) restarts it on
// every call.
//
// # Example
//
//	vis, err := detviz.New(
//	    detviz.WithAlpha(0.8),
//	    detviz.WithTransform(detviz.NewResize(512)),
//	)
//	if err != nil {
//	    return err
//	}
//	cat, err := detviz.NewBoundingBox("cat", "cat", detviz.Box{XMin: 10, YMin: 10, XMax: 50, YMax: 50})
//	if err != nil {
//	    return err
//	}
//	out, err := vis.Visualize(img, []detviz.Annotation{cat})
//
// # Thread Safety
//
// A Visualizer with the default color scope shares one mapper between calls
// and must not be used from several goroutines at once, unless its mapper is
// wrapped with NewSyncMapper. With ColorScopeCall every call is independent.
package detviz
