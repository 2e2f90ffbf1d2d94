// Package cropper implements the interactive square-selection controller.
//
// A Controller owns the selection geometry for one source image and turns
// pointer and key input into selection changes, previews and written crops.
// Rendering and input delivery are delegated to a Display.
//
// # Selection Invariants
//
// After every operation the selection satisfies:
//   - MinSize <= Size <= MaxSize, where MaxSize = min(width, height)
//   - 0 <= X <= width-Size and 0 <= Y <= height-Size
//
// Out-of-range pointer positions are clamped, never rejected.
//
// # Threading
//
// A Controller is not safe for concurrent use. Display implementations must
// invoke pointer handlers synchronously from within PollKey, on the goroutine
// running Controller.Run.
//
// # Output Names
//
// Crops are written as "<base>_<unix-millis><ext>". Two writes within the same
// millisecond produce the same name and the second replaces the first.
package cropper
