// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/user/framescope/pkg/adapters/filesource"
	"github.com/user/framescope/pkg/adapters/procdetector"
	"github.com/user/framescope/pkg/filter"
	"github.com/user/framescope/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for framescope.
type Config struct {
	// Decoding
	Backend     string  `yaml:"backend"`
	FrameCount  string  `yaml:"frame_count"`
	FFmpegPath  string  `yaml:"ffmpeg_path"`
	FFprobePath string  `yaml:"ffprobe_path"`
	DefaultFPS  float64 `yaml:"default_fps"`

	// Filtering
	Filter   string         `yaml:"filter"`
	BoxColor string         `yaml:"box_color"`
	Detector DetectorConfig `yaml:"detector"`

	// Output
	Display     DisplayConfig `yaml:"display"`
	SnapshotDir string        `yaml:"snapshot_dir"`

	LogLevel string `yaml:"log_level"`
}

// DisplayConfig controls the preview written for the display sink.
type DisplayConfig struct {
	// Path of the preview image; empty disables the display.
	Path string `yaml:"path"`
	// Height scales frames to this many pixels; 0 keeps the video height.
	Height  int    `yaml:"height"`
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
}

// DetectorConfig describes the external object detector process.
type DetectorConfig struct {
	Command    string   `yaml:"command"`
	Args       []string `yaml:"args"`
	Env        []string `yaml:"env"`
	Confidence float64  `yaml:"confidence"`
	Protocol   string   `yaml:"protocol"`
	TimeoutMs  int      `yaml:"timeout_ms"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Decoding
		Backend:    string(filesource.BackendFFmpeg),
		FrameCount: string(ports.CountMetadata),
		DefaultFPS: 30.0,

		// Filtering
		Filter:   filter.None.String(),
		BoxColor: "#00ff00",
		Detector: DetectorConfig{
			Confidence: 0.5,
			Protocol:   string(procdetector.ProtocolJSON),
			TimeoutMs:  int(procdetector.DefaultTimeout / time.Millisecond),
		},

		// Output
		Display: DisplayConfig{
			Format:  "jpeg",
			Quality: 85,
		},
		SnapshotDir: ".",

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file over Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if _, ok := filesource.ParseBackend(c.Backend); !ok {
		errs = append(errs, fmt.Errorf("backend: unknown value %q (want ffmpeg or opencv)", c.Backend))
	}
	if _, ok := ports.ParseFrameCountMode(c.FrameCount); !ok {
		errs = append(errs, fmt.Errorf("frame_count: unknown value %q (want metadata or native)", c.FrameCount))
	}
	if c.DefaultFPS <= 0 {
		errs = append(errs, fmt.Errorf("default_fps: must be positive, got %v", c.DefaultFPS))
	}
	if _, ok := filter.ParseSelection(c.Filter); !ok {
		errs = append(errs, fmt.Errorf("filter: unknown value %q", c.Filter))
	}
	if c.BoxColor != "" {
		if _, ok := parseHex(c.BoxColor); !ok {
			errs = append(errs, fmt.Errorf("box_color: expected #rrggbb, got %q", c.BoxColor))
		}
	}
	if c.Detector.Confidence < 0 || c.Detector.Confidence > 1 {
		errs = append(errs, fmt.Errorf("detector.confidence: must be within [0, 1], got %v", c.Detector.Confidence))
	}
	if _, ok := procdetector.ParseProtocol(c.Detector.Protocol); !ok {
		errs = append(errs, fmt.Errorf("detector.protocol: unknown value %q (want json or msgpack)", c.Detector.Protocol))
	}
	if c.Detector.TimeoutMs < 0 {
		errs = append(errs, fmt.Errorf("detector.timeout_ms: must not be negative, got %d", c.Detector.TimeoutMs))
	}
	if c.Display.Height < 0 {
		errs = append(errs, fmt.Errorf("display.height: must not be negative, got %d", c.Display.Height))
	}
	if _, ok := ports.ParseImageFormat(c.Display.Format); !ok {
		errs = append(errs, fmt.Errorf("display.format: unknown value %q (want png or jpeg)", c.Display.Format))
	}
	if c.Display.Quality < 0 || c.Display.Quality > 100 {
		errs = append(errs, fmt.Errorf("display.quality: must be within [0, 100], got %d", c.Display.Quality))
	}
	if _, ok := ports.ParseLogLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level: unknown value %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

// Level returns the configured log level.
func (c Config) Level() ports.LogLevel {
	level, _ := ports.ParseLogLevel(c.LogLevel)
	return level
}

// Selection returns the initial filter.
func (c Config) Selection() filter.Selection {
	sel, _ := filter.ParseSelection(c.Filter)
	return sel
}

// DisplayFormat returns the encoding used for the display sink.
func (c Config) DisplayFormat() ports.ImageFormat {
	format, _ := ports.ParseImageFormat(c.Display.Format)
	return format
}

// ToSourceOptions converts Config to filesource.Options.
func (c Config) ToSourceOptions(logger ports.Logger) filesource.Options {
	backend, _ := filesource.ParseBackend(c.Backend)
	mode, _ := ports.ParseFrameCountMode(c.FrameCount)
	return filesource.Options{
		Backend:     backend,
		Mode:        mode,
		FFmpegPath:  c.FFmpegPath,
		FFprobePath: c.FFprobePath,
		Logger:      logger,
	}
}

// ToDetectorConfig converts Config to procdetector.Config.
func (c Config) ToDetectorConfig() procdetector.Config {
	protocol, _ := procdetector.ParseProtocol(c.Detector.Protocol)
	return procdetector.Config{
		Command:    c.Detector.Command,
		Args:       c.Detector.Args,
		Env:        c.Detector.Env,
		Confidence: c.Detector.Confidence,
		Protocol:   protocol,
		Timeout:    time.Duration(c.Detector.TimeoutMs) * time.Millisecond,
	}
}

// ParseColor parses a hex color string to color.Color. Invalid input
// yields black.
func ParseColor(hex string) color.Color {
	c, ok := parseHex(hex)
	if !ok {
		return color.Black
	}
	return c
}

func parseHex(hex string) (color.RGBA, bool) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}

	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexValue(hex[2*i])
		lo, ok2 := hexValue(hex[2*i+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, false
		}
		rgb[i] = hi<<4 | lo
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, true
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
