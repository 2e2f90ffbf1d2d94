package display

import (
	"image"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/gdamore/tcell/v2"

	"github.com/ironsheep/image-cropper/internal/cropper"
)

// upperHalf draws the top pixel of a cell in the foreground color and the
// bottom pixel in the background color.
const upperHalf = '▀'

// pollSlice is how long PollKey sleeps between checks for pending events.
const pollSlice = 2 * time.Millisecond

// pane is a window's placement on screen and its pixel mapping.
type pane struct {
	cells image.Rectangle // screen cells occupied by the rendered image
	scale float64         // source pixels per rendered pixel
}

// toSource maps a screen cell to the zero-based source pixel under its upper
// half.
func (p pane) toSource(x, y int) image.Point {
	sx := float64(x-p.cells.Min.X) * p.scale
	sy := float64((y-p.cells.Min.Y)*2) * p.scale
	return image.Pt(int(sx), int(sy))
}

// Terminal implements cropper.Display on a tcell screen.
//
// The main window fills the left side of the screen; every other window
// shares a side pane on the right. The two bottom rows hold the message and
// status lines. Images are drawn two pixels per cell using half-block runes,
// scaled to fit their pane.
type Terminal struct {
	screen tcell.Screen
	logger *log.Logger

	main     string
	images   map[string]image.Image
	order    []string
	handlers map[string]cropper.PointerFunc
	panes    map[string]pane

	status  string
	message string
	closed  bool
}

// NewTerminal opens the controlling terminal.
func NewTerminal(mainWindow string, logger *log.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, mainWindow, logger)
}

// NewTerminalWithScreen initializes screen and wraps it. Mouse motion
// reporting is enabled.
func NewTerminalWithScreen(screen tcell.Screen, mainWindow string, logger *log.Logger) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Terminal{
		screen:   screen,
		logger:   logger,
		main:     mainWindow,
		images:   make(map[string]image.Image),
		handlers: make(map[string]cropper.PointerFunc),
		panes:    make(map[string]pane),
	}, nil
}

// Show replaces the content of window and redraws the screen.
func (t *Terminal) Show(window string, img image.Image) {
	if t.closed {
		return
	}
	if _, ok := t.images[window]; !ok {
		t.order = append(t.order, window)
	}
	t.images[window] = img
	t.redraw()
}

// OnPointerMove registers fn for motion over window.
func (t *Terminal) OnPointerMove(window string, fn cropper.PointerFunc) {
	t.handlers[window] = fn
}

// PollKey drains pending events, dispatching mouse motion to the registered
// handlers, until a key arrives or timeout elapses. Ctrl-C and Escape are
// reported as the quit key.
func (t *Terminal) PollKey(timeout time.Duration) (rune, bool) {
	if t.closed {
		return 0, false
	}

	deadline := time.Now().Add(timeout)
	for {
		for t.screen.HasPendingEvent() {
			if key, ok := t.handleEvent(t.screen.PollEvent()); ok {
				return key, true
			}
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, false
		}
		time.Sleep(min(remaining, pollSlice))
	}
}

func (t *Terminal) handleEvent(ev tcell.Event) (rune, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyRune:
			return e.Rune(), true
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return cropper.KeyQuit, true
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		t.dispatchPointer(x, y)

	case *tcell.EventResize:
		t.screen.Sync()
		t.redraw()
	}
	return 0, false
}

func (t *Terminal) dispatchPointer(x, y int) {
	for window, fn := range t.handlers {
		p, ok := t.panes[window]
		if !ok || !image.Pt(x, y).In(p.cells) {
			continue
		}
		src := p.toSource(x, y)
		fn(src.X, src.Y)
	}
}

// Status sets the bottom line.
func (t *Terminal) Status(text string) {
	t.status = text
	t.drawText()
}

// Message sets the line above the status line.
func (t *Terminal) Message(text string) {
	t.message = text
	t.logger.Debug("message", "text", text)
	t.drawText()
}

// Close restores the terminal.
func (t *Terminal) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

// layout assigns screen areas to windows for a w x h screen.
func (t *Terminal) layout(w, h int) map[string]image.Rectangle {
	areas := make(map[string]image.Rectangle)
	rows := h - 2
	if rows <= 0 || w <= 0 {
		return areas
	}

	var side []string
	for _, name := range t.order {
		if name != t.main {
			side = append(side, name)
		}
	}

	mainWidth := w
	if len(side) > 0 {
		mainWidth = w * 2 / 3
	}
	areas[t.main] = image.Rect(0, 0, mainWidth, rows)

	if len(side) > 0 {
		each := rows / len(side)
		for i, name := range side {
			areas[name] = image.Rect(mainWidth+1, i*each, w, (i+1)*each)
		}
	}
	return areas
}

func (t *Terminal) redraw() {
	if t.closed {
		return
	}
	t.screen.Clear()

	w, h := t.screen.Size()
	for name, area := range t.layout(w, h) {
		img, ok := t.images[name]
		if !ok || area.Empty() {
			continue
		}
		t.panes[name] = t.drawImage(img, area)
	}

	t.drawText()
}

// drawImage scales img to fit area and paints it at the area's top-left.
func (t *Terminal) drawImage(img image.Image, area image.Rectangle) pane {
	b := img.Bounds()
	if b.Empty() {
		return pane{}
	}

	// Each cell row holds two pixel rows.
	pw, ph := area.Dx(), area.Dy()*2
	scale := max(float64(b.Dx())/float64(pw), float64(b.Dy())/float64(ph))
	dw := max(1, min(pw, int(float64(b.Dx())/scale)))
	dh := max(1, min(ph, int(float64(b.Dy())/scale)))

	scaled := imaging.Resize(img, dw, dh, imaging.Box)

	rows := (dh + 1) / 2
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < dw; cx++ {
			top := scaled.NRGBAAt(cx, cy*2)
			style := tcell.StyleDefault.Foreground(cellColor(top))
			if cy*2+1 < dh {
				style = style.Background(cellColor(scaled.NRGBAAt(cx, cy*2+1)))
			}
			t.screen.SetContent(area.Min.X+cx, area.Min.Y+cy, upperHalf, nil, style)
		}
	}

	return pane{
		cells: image.Rect(area.Min.X, area.Min.Y, area.Min.X+dw, area.Min.Y+rows),
		scale: scale,
	}
}

func (t *Terminal) drawText() {
	if t.closed {
		return
	}
	w, h := t.screen.Size()
	if h < 2 {
		t.screen.Show()
		return
	}
	t.drawLine(h-2, w, t.message, tcell.StyleDefault.Bold(true))
	t.drawLine(h-1, w, t.status, tcell.StyleDefault.Reverse(true))
	t.screen.Show()
}

func (t *Terminal) drawLine(y, w int, text string, style tcell.Style) {
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
}

func cellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
