package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-cropper/internal/config"
	"github.com/ironsheep/image-cropper/internal/cropper"
	"github.com/ironsheep/image-cropper/internal/display"
	"github.com/ironsheep/image-cropper/internal/imaging"
	"github.com/ironsheep/image-cropper/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const controlsText = `Controls:
  move pointer   center the selection on the pointer
  f              zoom in (grow the selection)
  d              zoom out (shrink the selection)
  a              preview the selection
  s              save the last preview
  c              crop (preview and save)
  q              quit
`

// errReported means the user has already been told what went wrong.
var errReported = errors.New("reported")

// newDisplay opens the interactive display. Tests replace it with a
// simulation screen.
var newDisplay = func(logger *log.Logger) (cropper.Display, error) {
	return display.NewTerminal(cropper.WindowMain, logger)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var helped bool
	cmd := newRootCmd(stdout, stderr, &helped)
	cmd.SetArgs(args)

	err := cmd.Execute()
	switch {
	case helped:
		return 1
	case errors.Is(err, errReported):
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd creates the root command. helped is set when usage was printed
// in response to -h/--help.
func newRootCmd(stdout, stderr io.Writer, helped *bool) *cobra.Command {
	var cfgFile string
	v := config.New()

	cmd := &cobra.Command{
		Use:   "image-cropper [flags] <image_path>",
		Short: "Interactively crop square regions out of an image.",
		Long: `image-cropper shows an image in the terminal with a square selection that
follows the mouse. Resize it with the keyboard, preview the region and save it
as cropped_image_<epoch_ms>.png.

Arguments:
  image_path   path to the image to crop (PNG, JPEG, GIF, BMP, TIFF or WebP)`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printUsage(cmd, stderr)
				return errReported
			}
			if len(args) > 1 {
				return fmt.Errorf("expected one image path, got %d arguments", len(args))
			}

			if err := config.ReadFile(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			settings, err := cfg.Settings()
			if err != nil {
				return err
			}

			logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer closer.Close()

			return crop(cmd, args[0], settings, logger, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		*helped = true
		printUsage(c, stderr)
	})

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.image-cropper.yaml or ./.image-cropper.yaml)")
	config.AddFlags(cmd.Flags())
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		panic(err)
	}

	return cmd
}

func printUsage(cmd *cobra.Command, w io.Writer) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprint(w, cmd.UsageString())
	fmt.Fprintln(w)
	fmt.Fprint(w, controlsText)
}

// crop runs one interactive session on the image at path and reports the
// files written once the display is released.
func crop(cmd *cobra.Command, path string, settings cropper.Settings, logger *log.Logger, stdout, stderr io.Writer) error {
	img, err := imaging.Load(path)
	if err != nil {
		logger.Error("load failed", "err", err)
		fmt.Fprintf(stderr, "Error: Could not load image at %s\n", path)
		return errReported
	}
	if info, err := imaging.Describe(path, img); err == nil {
		logger.Info("image loaded",
			"path", path, "format", info.Format,
			"width", info.Width, "height", info.Height)
	}

	disp, err := newDisplay(logger)
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := cropper.New(img, disp, settings, cropper.WithLogger(logger))
	if err := ctrl.Run(ctx); err != nil {
		return err
	}

	for _, saved := range ctrl.Saved() {
		fmt.Fprintf(stdout, "Cropped image saved as %s\n", saved)
	}
	logger.Info("session ended", "saved", len(ctrl.Saved()))
	return nil
}
