package cropper

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/image-cropper/internal/imaging"
)

// State is the controller lifecycle state.
type State int

const (
	// Running accepts pointer and key input.
	Running State = iota
	// Terminated is entered by Quit and never left.
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Settings configures a Controller.
type Settings struct {
	// Size is the initial selection edge length.
	Size int
	// MinSize is the smallest edge length zooming out may reach.
	MinSize int
	// Step is the edge length change per zoom key press.
	Step int

	// OutputDir receives written crops.
	OutputDir string
	// BaseName and Ext form "<BaseName>_<millis><Ext>".
	BaseName string
	Ext      string

	// Overlay styles the selection boundary.
	Overlay imaging.OverlayStyle

	// FrameInterval bounds how long one PollKey call may wait.
	FrameInterval time.Duration
}

// DefaultSettings returns the stock 512px selection, 50px minimum and 20px
// zoom step, writing cropped_image_<millis>.png to the working directory.
func DefaultSettings() Settings {
	return Settings{
		Size:          512,
		MinSize:       50,
		Step:          20,
		OutputDir:     ".",
		BaseName:      "cropped_image",
		Ext:           ".png",
		Overlay:       imaging.DefaultOverlayStyle(),
		FrameInterval: 10 * time.Millisecond,
	}
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithClock sets the time source used for output names.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the selection state for one source image.
type Controller struct {
	raster  image.Image
	origin  image.Point
	width   int
	height  int
	bounds  Bounds
	sel     Selection
	preview *image.NRGBA

	settings Settings
	display  Display
	overlay  *imaging.Overlay
	logger   *log.Logger
	now      func() time.Time

	state State
	dirty bool
	saved []string
}

// New creates a controller for raster. The initial selection sits at the
// origin with settings.Size clamped into the image's bounds.
func New(raster image.Image, display Display, settings Settings, opts ...Option) *Controller {
	rb := raster.Bounds()
	c := &Controller{
		raster:   raster,
		origin:   rb.Min,
		width:    rb.Dx(),
		height:   rb.Dy(),
		bounds:   NewBounds(rb.Dx(), rb.Dy(), settings.MinSize),
		settings: settings,
		display:  display,
		logger:   log.New(io.Discard),
		now:      time.Now,
		state:    Running,
		dirty:    true,
	}
	for _, opt := range opts {
		opt(c)
	}

	size := clamp(settings.Size, c.bounds.MinSize, c.bounds.MaxSize)
	c.sel = Selection{Size: size}.centeredOn(0, 0, c.width, c.height)
	c.overlay = imaging.NewOverlay(raster, settings.Overlay)

	c.logger.Debug("controller ready",
		"width", c.width, "height", c.height,
		"min_size", c.bounds.MinSize, "max_size", c.bounds.MaxSize,
		"size", size)
	return c
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection { return c.sel }

// Bounds returns the selection size bounds.
func (c *Controller) Bounds() Bounds { return c.bounds }

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// PreviewBuffer returns the last extracted region, or nil before the first
// preview or crop.
func (c *Controller) PreviewBuffer() *image.NRGBA { return c.preview }

// Saved returns the paths written this session, oldest first.
func (c *Controller) Saved() []string {
	out := make([]string, len(c.saved))
	copy(out, c.saved)
	return out
}

// PointerMove centres the selection on (px, py), clamped to the image.
func (c *Controller) PointerMove(px, py int) {
	if c.state != Running {
		return
	}

	c.sel = c.sel.centeredOn(px, py, c.width, c.height)
	c.dirty = true

	status := fmt.Sprintf("pointer %d,%d | selection %d,%d size %d", px, py, c.sel.X, c.sel.Y, c.sel.Size)
	if hex, err := imaging.SampleHex(c.raster, px+c.origin.X, py+c.origin.Y); err == nil {
		status += " | " + hex
	}
	c.display.Status(status)
}

// ZoomIn grows the selection by one step up to MaxSize.
func (c *Controller) ZoomIn() {
	c.zoom(min(c.sel.Size+c.settings.Step, c.bounds.MaxSize))
}

// ZoomOut shrinks the selection by one step down to MinSize.
func (c *Controller) ZoomOut() {
	c.zoom(max(c.sel.Size-c.settings.Step, c.bounds.MinSize))
}

func (c *Controller) zoom(size int) {
	if c.state != Running || size == c.sel.Size {
		return
	}

	c.sel = c.sel.resized(size, c.width, c.height)
	c.dirty = true
	c.logger.Debug("zoom", "size", c.sel.Size, "x", c.sel.X, "y", c.sel.Y)
	c.display.Status(fmt.Sprintf("selection %d,%d size %d", c.sel.X, c.sel.Y, c.sel.Size))
}

// Preview extracts the current selection into the preview buffer and shows
// it in the preview window.
func (c *Controller) Preview() error {
	if c.state != Running {
		return ErrTerminated
	}
	if !c.sel.valid(c.bounds, c.width, c.height) {
		return fmt.Errorf("%w: %+v", ErrEmptySelection, c.sel)
	}

	region, err := imaging.Crop(c.raster, c.sel.Rect().Add(c.origin))
	if err != nil {
		if errors.Is(err, imaging.ErrEmptyRegion) {
			return fmt.Errorf("%w: %v", ErrEmptySelection, err)
		}
		return err
	}

	c.preview = region
	c.display.Show(WindowPreview, region)
	c.logger.Debug("preview", "x", c.sel.X, "y", c.sel.Y, "size", c.sel.Size)
	return nil
}

// Save writes the preview buffer to a new file and returns its path.
func (c *Controller) Save() (string, error) {
	if c.state != Running {
		return "", ErrTerminated
	}
	if c.preview == nil {
		return "", ErrNoPreview
	}

	name := UniqueFilename(c.settings.BaseName, c.settings.Ext, c.now())
	path := filepath.Join(c.settings.OutputDir, name)
	if err := imaging.Save(c.preview, path); err != nil {
		return "", err
	}

	c.saved = append(c.saved, path)
	c.logger.Info("crop saved", "path", path, "size", c.preview.Bounds().Dx())
	c.display.Message("Cropped image saved as " + path)
	return path, nil
}

// Crop previews the current selection and saves it.
func (c *Controller) Crop() (string, error) {
	if err := c.Preview(); err != nil {
		return "", err
	}
	return c.Save()
}

// Quit stops the controller. Subsequent actions return ErrTerminated.
func (c *Controller) Quit() {
	if c.state == Terminated {
		return
	}
	c.state = Terminated
	c.logger.Debug("quit", "saved", len(c.saved))
}

// Render shows the source with the selection outlined if anything changed
// since the last render.
func (c *Controller) Render() {
	if !c.dirty || c.state != Running {
		return
	}
	c.display.Show(WindowMain, c.overlay.Frame(c.sel.Rect().Add(c.origin)))
	c.dirty = false
}

// Run drives the interactive loop until Quit or ctx is cancelled, then closes
// the display. Action failures are reported to the user and do not end the
// loop.
func (c *Controller) Run(ctx context.Context) error {
	defer c.display.Close()

	c.display.OnPointerMove(WindowMain, c.PointerMove)
	c.display.Message(HelpText)

	for c.state == Running {
		if err := ctx.Err(); err != nil {
			c.logger.Debug("context done", "err", err)
			c.Quit()
			break
		}

		c.Render()

		key, ok := c.display.PollKey(c.settings.FrameInterval)
		if !ok {
			continue
		}
		if err := c.HandleKey(key); err != nil {
			c.report(err)
		}
	}

	return nil
}

func (c *Controller) report(err error) {
	switch {
	case errors.Is(err, ErrNoPreview):
		c.logger.Warn("save without preview")
	default:
		c.logger.Error("action failed", "err", err)
	}
	c.display.Message("Error: " + err.Error())
}
