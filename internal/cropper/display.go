package cropper

import (
	"image"
	"time"
)

// Window names used with Display.
const (
	WindowMain    = "Image Cropper"
	WindowPreview = "Cropped Image"
)

// PointerFunc receives pointer positions in source-image pixel coordinates.
// Positions may lie outside the image.
type PointerFunc func(x, y int)

// Display is the windowing collaborator driven by the Controller.
type Display interface {
	// Show replaces the content of the named window.
	Show(window string, img image.Image)

	// OnPointerMove registers fn for pointer motion over window.
	OnPointerMove(window string, fn PointerFunc)

	// PollKey waits at most timeout for a key press. Pending pointer events
	// are dispatched to their handlers before it returns.
	PollKey(timeout time.Duration) (rune, bool)

	// Status sets the persistent status text (selection geometry).
	Status(text string)

	// Message reports the outcome of an action to the user.
	Message(text string)

	// Close releases display resources. It is safe to call more than once.
	Close()
}
