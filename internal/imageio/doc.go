// Package imageio reads and writes the images and masks that the renderer
// works on.
//
// Decoding goes through a path-keyed Cache so repeated renders of the same
// source image touch the disk once. PNG, JPEG, GIF, BMP, TIFF and WebP are
// decoded; PNG, JPEG, GIF, BMP and TIFF are written, the format chosen by the
// destination extension.
//
// # Example
//
//	cache := imageio.NewCache()
//	img, err := cache.Load("street.jpg")
//	if err != nil {
//	    return err
//	}
//	mask, err := imageio.LoadMask(cache, "road-mask.png")
package imageio
