package cropper

import "image"

// Bounds holds the allowed selection edge lengths.
type Bounds struct {
	MinSize int
	MaxSize int
}

// NewBounds derives size bounds for a width x height image. MaxSize is the
// shorter image side; MinSize is reduced to MaxSize for images smaller than
// minSize.
func NewBounds(width, height, minSize int) Bounds {
	maxSize := min(width, height)
	return Bounds{
		MinSize: max(1, min(minSize, maxSize)),
		MaxSize: maxSize,
	}
}

// Selection is a square region in source-image coordinates.
type Selection struct {
	X    int
	Y    int
	Size int
}

// Rect returns the selection as a zero-origin rectangle.
func (s Selection) Rect() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.Size, s.Y+s.Size)
}

// Center returns the selection's centre point.
func (s Selection) Center() image.Point {
	return image.Pt(s.X+s.Size/2, s.Y+s.Size/2)
}

// centeredOn returns the selection of the same size centred on (px, py),
// clamped to a width x height image.
func (s Selection) centeredOn(px, py, width, height int) Selection {
	return Selection{
		X:    clamp(px-s.Size/2, 0, width-s.Size),
		Y:    clamp(py-s.Size/2, 0, height-s.Size),
		Size: s.Size,
	}
}

// resized returns the selection with a new size, keeping the centre where the
// image allows it.
func (s Selection) resized(size, width, height int) Selection {
	center := s.Center()
	return Selection{Size: size}.centeredOn(center.X, center.Y, width, height)
}

// valid reports whether s satisfies the selection invariants.
func (s Selection) valid(b Bounds, width, height int) bool {
	return s.Size >= b.MinSize && s.Size <= b.MaxSize &&
		s.X >= 0 && s.X <= width-s.Size &&
		s.Y >= 0 && s.Y <= height-s.Size
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
