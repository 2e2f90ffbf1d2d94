// Package config layers the cropper's settings: built-in defaults, an
// optional YAML file, IMAGE_CROPPER_* environment variables and command-line
// flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-cropper/internal/cropper"
	"github.com/ironsheep/image-cropper/internal/imaging"
)

// EnvPrefix is prepended to every environment override, e.g.
// IMAGE_CROPPER_CROP_SIZE.
const EnvPrefix = "IMAGE_CROPPER"

// Config keys.
const (
	KeySize          = "crop.size"
	KeyMinSize       = "crop.min_size"
	KeyStep          = "crop.step"
	KeyOutputDir     = "output.dir"
	KeyBaseName      = "output.base"
	KeyExt           = "output.ext"
	KeyColor         = "overlay.color"
	KeyBorder        = "overlay.width"
	KeyShade         = "overlay.shade"
	KeyFrameInterval = "ui.frame_interval"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"size":           KeySize,
	"min-size":       KeyMinSize,
	"step":           KeyStep,
	"out-dir":        KeyOutputDir,
	"base-name":      KeyBaseName,
	"ext":            KeyExt,
	"color":          KeyColor,
	"border":         KeyBorder,
	"shade":          KeyShade,
	"frame-interval": KeyFrameInterval,
	"log-level":      KeyLogLevel,
	"log-file":       KeyLogFile,
}

// Config is the resolved configuration.
type Config struct {
	Size          int
	MinSize       int
	Step          int
	OutputDir     string
	BaseName      string
	Ext           string
	Color         string
	Border        int
	ShadePercent  int
	FrameInterval time.Duration
	LogLevel      string
	LogFile       string
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	d := cropper.DefaultSettings()
	v.SetDefault(KeySize, d.Size)
	v.SetDefault(KeyMinSize, d.MinSize)
	v.SetDefault(KeyStep, d.Step)
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeyBaseName, d.BaseName)
	v.SetDefault(KeyExt, d.Ext)
	v.SetDefault(KeyColor, "#00FF00")
	v.SetDefault(KeyBorder, d.Overlay.Width)
	v.SetDefault(KeyShade, 0)
	v.SetDefault(KeyFrameInterval, d.FrameInterval)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
}

// AddFlags defines the override flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	d := cropper.DefaultSettings()
	fs.Int("size", d.Size, "initial selection edge length in pixels")
	fs.Int("min-size", d.MinSize, "smallest selection edge length")
	fs.Int("step", d.Step, "pixels added or removed per zoom key press")
	fs.String("out-dir", d.OutputDir, "directory for saved crops")
	fs.String("base-name", d.BaseName, "file name prefix for saved crops")
	fs.String("ext", d.Ext, "output format extension (.png, .jpg, .gif, .bmp, .tif)")
	fs.String("color", "#00FF00", "selection outline color as #RRGGBB")
	fs.Int("border", d.Overlay.Width, "selection outline width in pixels")
	fs.Int("shade", 0, "percent to darken the image outside the selection")
	fs.Duration("frame-interval", d.FrameInterval, "maximum wait for input per frame")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-file", "", "write logs to this file (default: discard)")
}

// BindFlags binds every flag from AddFlags that exists on fs to its key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// ReadFile merges a YAML config file into v. With an empty path it searches
// the home directory and the working directory for .image-cropper.yaml and
// tolerates its absence.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".image-cropper")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && path == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load resolves the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Size:          v.GetInt(KeySize),
		MinSize:       v.GetInt(KeyMinSize),
		Step:          v.GetInt(KeyStep),
		OutputDir:     v.GetString(KeyOutputDir),
		BaseName:      v.GetString(KeyBaseName),
		Ext:           v.GetString(KeyExt),
		Color:         v.GetString(KeyColor),
		Border:        v.GetInt(KeyBorder),
		ShadePercent:  v.GetInt(KeyShade),
		FrameInterval: v.GetDuration(KeyFrameInterval),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFile:       v.GetString(KeyLogFile),
	}
	if cfg.Ext != "" && !strings.HasPrefix(cfg.Ext, ".") {
		cfg.Ext = "." + cfg.Ext
	}
	cfg.Ext = strings.ToLower(cfg.Ext)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("%s must be positive, got %d", KeySize, c.Size)
	case c.MinSize <= 0:
		return fmt.Errorf("%s must be positive, got %d", KeyMinSize, c.MinSize)
	case c.Step <= 0:
		return fmt.Errorf("%s must be positive, got %d", KeyStep, c.Step)
	case c.Border < 0:
		return fmt.Errorf("%s must not be negative, got %d", KeyBorder, c.Border)
	case c.ShadePercent < 0 || c.ShadePercent > 100:
		return fmt.Errorf("%s must be between 0 and 100, got %d", KeyShade, c.ShadePercent)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%s must be positive, got %s", KeyFrameInterval, c.FrameInterval)
	case c.BaseName == "":
		return fmt.Errorf("%s must not be empty", KeyBaseName)
	case !imaging.SupportedOutput(c.Ext):
		return fmt.Errorf("%s: unsupported output format %q", KeyExt, c.Ext)
	}
	if _, err := imaging.ParseColor(c.Color); err != nil {
		return fmt.Errorf("%s: %w", KeyColor, err)
	}
	return nil
}

// Settings converts c into controller settings.
func (c *Config) Settings() (cropper.Settings, error) {
	col, err := imaging.ParseColor(c.Color)
	if err != nil {
		return cropper.Settings{}, fmt.Errorf("%s: %w", KeyColor, err)
	}
	return cropper.Settings{
		Size:      c.Size,
		MinSize:   c.MinSize,
		Step:      c.Step,
		OutputDir: c.OutputDir,
		BaseName:  c.BaseName,
		Ext:       c.Ext,
		Overlay: imaging.OverlayStyle{
			Color: col,
			Width: c.Border,
			Shade: float64(c.ShadePercent) / 100,
		},
		FrameInterval: c.FrameInterval,
	}, nil
}
