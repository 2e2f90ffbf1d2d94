package cropper

// Key bindings.
const (
	KeyZoomIn  = 'f'
	KeyZoomOut = 'd'
	KeyPreview = 'a'
	KeySave    = 's'
	KeyCrop    = 'c'
	KeyQuit    = 'q'
)

// HelpText is the one-line summary of the key bindings.
const HelpText = "f zoom in | d zoom out | a preview | s save | c crop | q quit"

// HandleKey dispatches a key press to the matching action. Unbound keys are
// ignored.
func (c *Controller) HandleKey(key rune) error {
	switch key {
	case KeyZoomIn:
		c.ZoomIn()
	case KeyZoomOut:
		c.ZoomOut()
	case KeyPreview:
		return c.Preview()
	case KeySave:
		_, err := c.Save()
		return err
	case KeyCrop:
		_, err := c.Crop()
		return err
	case KeyQuit:
		c.Quit()
	default:
		c.logger.Debug("ignoring unbound key", "key", string(key))
	}
	return nil
}
