package cropper

import "errors"

var (
	// ErrNoPreview is returned by Save when no preview or crop has populated
	// the preview buffer yet.
	ErrNoPreview = errors.New("nothing to save: preview ('a') or crop ('c') first")

	// ErrEmptySelection is returned when the selection has no area.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrTerminated is returned by actions invoked after Quit.
	ErrTerminated = errors.New("cropper has quit")
)
