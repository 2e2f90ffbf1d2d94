package cropper

import (
	"image"
	"time"
)

// fakeDisplay records everything the controller sends to it and replays
// scripted input from PollKey.
type fakeDisplay struct {
	shown    map[string][]image.Image
	handlers map[string]PointerFunc
	status   []string
	messages []string
	closed   int

	// script is consumed one step per PollKey call.
	script []inputStep
}

// inputStep is one PollKey call: pointer moves are dispatched first, then the
// key (if any) is returned.
type inputStep struct {
	moves []image.Point
	key   rune
}

func newFakeDisplay(script ...inputStep) *fakeDisplay {
	return &fakeDisplay{
		shown:    make(map[string][]image.Image),
		handlers: make(map[string]PointerFunc),
		script:   script,
	}
}

func (f *fakeDisplay) Show(window string, img image.Image) {
	f.shown[window] = append(f.shown[window], img)
}

func (f *fakeDisplay) OnPointerMove(window string, fn PointerFunc) {
	f.handlers[window] = fn
}

func (f *fakeDisplay) PollKey(time.Duration) (rune, bool) {
	if len(f.script) == 0 {
		// Quit once the script runs dry so Run always terminates.
		return KeyQuit, true
	}
	step := f.script[0]
	f.script = f.script[1:]

	if fn := f.handlers[WindowMain]; fn != nil {
		for _, p := range step.moves {
			fn(p.X, p.Y)
		}
	}
	if step.key == 0 {
		return 0, false
	}
	return step.key, true
}

func (f *fakeDisplay) Status(text string)  { f.status = append(f.status, text) }
func (f *fakeDisplay) Message(text string) { f.messages = append(f.messages, text) }
func (f *fakeDisplay) Close()              { f.closed++ }

func (f *fakeDisplay) last(window string) image.Image {
	imgs := f.shown[window]
	if len(imgs) == 0 {
		return nil
	}
	return imgs[len(imgs)-1]
}

func moveTo(x, y int) inputStep { return inputStep{moves: []image.Point{{X: x, Y: y}}} }

func press(key rune) inputStep { return inputStep{key: key} }
