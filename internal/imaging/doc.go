// Package imaging provides the raster operations behind the cropper.
//
// This package decodes source images, extracts square regions, renders the
// selection overlay shown while the user moves the pointer, samples pixel
// colors for the status line, and encodes crops to disk. All operations work
// with standard Go image.Image types and use a coordinate system where (0,0)
// is at the top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Regions are image.Rectangle values: Min is inclusive, Max is exclusive
//
// # Formats
//
// Load decodes PNG, JPEG, GIF, BMP, TIFF and WebP. Save picks the encoder
// from the output file extension: .png, .jpg/.jpeg, .gif, .bmp, .tif/.tiff.
//
// # Error Handling
//
// Load failures are returned as *LoadError and write failures as *WriteError,
// both carrying the offending path. Crop rejects regions that are empty
// (ErrEmptyRegion) or that leave the image bounds.
//
// # Immutability
//
// No function in this package modifies its input image. Crop and Overlay.Frame
// return fresh buffers that do not alias the source.
package imaging
