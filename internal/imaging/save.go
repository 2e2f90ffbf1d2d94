package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// WriteError reports a failure to encode or write an output image.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// SupportedOutput reports whether ext (with or without the leading dot) names
// an encodable output format.
func SupportedOutput(ext string) bool {
	_, err := imaging.FormatFromExtension(ext)
	return err == nil
}

// Save encodes img in the format implied by the extension of path and writes
// it there. An existing file at path is replaced.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
