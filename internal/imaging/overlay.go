package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/lucasb-eyer/go-colorful"
)

// OverlayStyle controls how a selection boundary is drawn.
type OverlayStyle struct {
	// Color of the boundary stroke.
	Color color.Color

	// Width of the boundary stroke in source pixels. The stroke is drawn
	// inside the selection so it never leaves the image.
	Width int

	// Shade darkens everything outside the selection by this fraction
	// (0 disables, 1 is black).
	Shade float64
}

// DefaultOverlayStyle is a 2px green stroke with no shading.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		Color: color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		Width: 2,
	}
}

// Overlay renders selection frames over a fixed source image.
//
// The shaded background is computed once; each Frame call costs one copy of
// the image plus the stroke.
type Overlay struct {
	src   image.Image
	base  *image.RGBA
	style OverlayStyle
}

// NewOverlay prepares frames for src. src is never modified.
func NewOverlay(src image.Image, style OverlayStyle) *Overlay {
	bounds := src.Bounds()
	base := image.NewRGBA(bounds)

	if style.Shade > 0 {
		shade := style.Shade
		if shade > 1 {
			shade = 1
		}
		// bild returns a zero-origin image regardless of src's origin.
		shaded := adjust.Brightness(src, -shade)
		draw.Draw(base, bounds, shaded, shaded.Bounds().Min, draw.Src)
	} else {
		draw.Draw(base, bounds, src, bounds.Min, draw.Src)
	}

	if style.Color == nil {
		style.Color = DefaultOverlayStyle().Color
	}

	return &Overlay{src: src, base: base, style: style}
}

// Frame returns a copy of the source with sel outlined. sel is clipped to the
// image bounds.
func (o *Overlay) Frame(sel image.Rectangle) *image.RGBA {
	bounds := o.base.Bounds()
	result := image.NewRGBA(bounds)
	copy(result.Pix, o.base.Pix)

	sel = sel.Intersect(bounds)
	if sel.Empty() {
		return result
	}

	if o.style.Shade > 0 {
		draw.Draw(result, sel, o.src, sel.Min, draw.Src)
	}

	w := o.style.Width
	if w <= 0 {
		return result
	}

	stroke := image.NewUniform(o.style.Color)
	edges := []image.Rectangle{
		image.Rect(sel.Min.X, sel.Min.Y, sel.Max.X, sel.Min.Y+w), // top
		image.Rect(sel.Min.X, sel.Max.Y-w, sel.Max.X, sel.Max.Y), // bottom
		image.Rect(sel.Min.X, sel.Min.Y, sel.Min.X+w, sel.Max.Y), // left
		image.Rect(sel.Max.X-w, sel.Min.Y, sel.Max.X, sel.Max.Y), // right
	}
	for _, edge := range edges {
		draw.Draw(result, edge.Intersect(sel), stroke, image.Point{}, draw.Over)
	}

	return result
}

// ParseColor parses "#RRGGBB" or "#RGB" into an opaque color.
func ParseColor(hex string) (color.NRGBA, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 7 && len(hex) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RGB", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
