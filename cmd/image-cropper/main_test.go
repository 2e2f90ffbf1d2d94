package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/ironsheep/image-cropper/internal/cropper"
	"github.com/ironsheep/image-cropper/internal/display"
	"github.com/ironsheep/image-cropper/internal/imaging"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// useSimulatedDisplay swaps the terminal for a simulation screen with keys
// already queued.
func useSimulatedDisplay(t *testing.T, keys ...rune) {
	t.Helper()
	prev := newDisplay
	t.Cleanup(func() { newDisplay = prev })

	newDisplay = func(logger *log.Logger) (cropper.Display, error) {
		sim := tcell.NewSimulationScreen("UTF-8")
		term, err := display.NewTerminalWithScreen(sim, cropper.WindowMain, logger)
		if err != nil {
			return nil, err
		}
		sim.SetSize(60, 20)
		for _, k := range keys {
			sim.InjectKey(tcell.KeyRune, k, tcell.ModNone)
		}
		return term, nil
	}
}

func writeImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "source.png")
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("write source image: %v", err)
	}
	return path
}

func TestRun_Help(t *testing.T) {
	for _, flag := range []string{"-h", "--help"} {
		code, _, stderr := runCLI(t, flag)
		if code != 1 {
			t.Errorf("%s: exit code = %d, want 1", flag, code)
		}
		for _, want := range []string{"Usage:", "image_path", "zoom in", "quit"} {
			if !strings.Contains(stderr, want) {
				t.Errorf("%s: usage missing %q; got:\n%s", flag, want, stderr)
			}
		}
	}
}

func TestRun_MissingArgument(t *testing.T) {
	code, _, stderr := runCLI(t)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("usage not printed; got:\n%s", stderr)
	}
}

func TestRun_UnloadableImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")

	code, stdout, stderr := runCLI(t, path)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	want := "Error: Could not load image at " + path
	if !strings.Contains(stderr, want) {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	path := writeImage(t, 10, 10)

	code, _, stderr := runCLI(t, "--step", "0", path)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "crop.step") {
		t.Errorf("stderr = %q, want mention of crop.step", stderr)
	}
}

func TestRun_TooManyArguments(t *testing.T) {
	code, _, stderr := runCLI(t, "a.png", "b.png")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "expected one image path") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, Version) {
		t.Errorf("stdout = %q, want version %q", stdout, Version)
	}
}

func TestRun_CropSession(t *testing.T) {
	src := writeImage(t, 100, 80)
	outDir := t.TempDir()
	useSimulatedDisplay(t, 'f', 'c', 'q')

	code, stdout, stderr := runCLI(t, "--out-dir", outDir, src)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("output files = %d, want 1", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "cropped_image_") || !strings.HasSuffix(name, ".png") {
		t.Errorf("output name = %q", name)
	}

	written := filepath.Join(outDir, name)
	if !strings.Contains(stdout, "Cropped image saved as "+written) {
		t.Errorf("stdout = %q, want report for %s", stdout, written)
	}

	img, err := imaging.Load(written)
	if err != nil {
		t.Fatalf("load crop: %v", err)
	}
	// 512 clamps to min(100, 80).
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 80 {
		t.Errorf("crop size = %dx%d, want 80x80", b.Dx(), b.Dy())
	}
}

func TestRun_SaveWithoutPreviewWritesNothing(t *testing.T) {
	src := writeImage(t, 60, 60)
	outDir := t.TempDir()
	useSimulatedDisplay(t, 's', 'q')

	code, stdout, stderr := runCLI(t, "--out-dir", outDir, src)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("output files = %d, want 0", len(entries))
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}
