// Package logging builds the cropper's leveled logger.
//
// While the terminal UI owns the screen nothing may be written to stdout or
// stderr, so logs go to a file when one is configured and are discarded
// otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Prefix tags every log line.
const Prefix = "image-cropper"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel converts a level name (debug, info, warn, error, fatal) into a
// log level. Matching is case-insensitive.
func ParseLevel(name string) (clog.Level, error) {
	lvl, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return clog.InfoLevel, fmt.Errorf("invalid log level %q", name)
	}
	return lvl, nil
}

// New returns a logger at level writing to path. An empty path discards
// output. The returned closer releases the log file.
func New(level, path string) (*clog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	return NewWriter(w, lvl), closer, nil
}

// NewWriter returns a logger at level writing to w.
func NewWriter(w io.Writer, level clog.Level) *clog.Logger {
	return clog.NewWithOptions(w, clog.Options{
		Level:           level,
		Prefix:          Prefix,
		ReportTimestamp: true,
		ReportCaller:    true,
	})
}
