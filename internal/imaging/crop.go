package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrEmptyRegion is returned when a crop region has no area.
var ErrEmptyRegion = errors.New("crop region is empty")

// Crop extracts region from img into a new buffer.
//
// The region is in the image's own coordinate space (img.Bounds()) and must
// lie entirely inside it. The returned image is independent of img and has
// its origin at (0,0).
func Crop(img image.Image, region image.Rectangle) (*image.NRGBA, error) {
	if region.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: %w", region, ErrEmptyRegion)
	}

	bounds := img.Bounds()
	if !region.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			region.Min.X, region.Min.Y, region.Max.X, region.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	return imaging.Crop(img, region), nil
}
