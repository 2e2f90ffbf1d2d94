package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// SampleHex returns the color at (x, y) as "#RRGGBB". Alpha is dropped; a
// fully transparent pixel reports as "#000000".
//
// Coordinates are in the image's own space, so for images whose bounds do not
// start at the origin the caller must offset by img.Bounds().Min.
func SampleHex(img image.Image, x, y int) (string, error) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return "", fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c, _ := colorful.MakeColor(img.At(x, y))
	return strings.ToUpper(c.Clamped().Hex()), nil
}
