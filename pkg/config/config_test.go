package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/framescope/pkg/adapters/filesource"
	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/adapters/procdetector"
	"github.com/user/framescope/pkg/filter"
	"github.com/user/framescope/pkg/ports"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Selection() != filter.None {
		t.Errorf("expected no filter by default, got %v", cfg.Selection())
	}
	if cfg.Level() != ports.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.Level())
	}
	if cfg.DisplayFormat() != ports.FormatJPEG {
		t.Errorf("expected JPEG display, got %v", cfg.DisplayFormat())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framescope.yaml")
	content := `
backend: opencv
frame_count: native
default_fps: 24
filter: gray
display:
  path: /tmp/preview.png
  height: 480
  format: png
detector:
  command: python3
  args: [detect.py, --model, yolo.pt]
  protocol: msgpack
  timeout_ms: 2500
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	if cfg.Backend != "opencv" || cfg.FrameCount != "native" || cfg.DefaultFPS != 24 {
		t.Errorf("decoding settings not loaded: %+v", cfg)
	}
	if cfg.Selection() != filter.Grayscale {
		t.Errorf("expected gray filter, got %v", cfg.Selection())
	}
	if cfg.Display.Height != 480 || cfg.DisplayFormat() != ports.FormatPNG {
		t.Errorf("display not loaded: %+v", cfg.Display)
	}
	// Unset keys keep their defaults.
	if cfg.Display.Quality != 85 || cfg.Detector.Confidence != 0.5 || cfg.SnapshotDir != "." {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if len(cfg.Detector.Args) != 3 || cfg.Detector.Args[2] != "yolo.pt" {
		t.Errorf("detector args not loaded: %v", cfg.Detector.Args)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("backend: [unterminated"), 0644)
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"backend", func(c *Config) { c.Backend = "vlc" }, "backend"},
		{"frame count", func(c *Config) { c.FrameCount = "guess" }, "frame_count"},
		{"fps", func(c *Config) { c.DefaultFPS = 0 }, "default_fps"},
		{"filter", func(c *Config) { c.Filter = "sepia" }, "filter"},
		{"box color", func(c *Config) { c.BoxColor = "#12345" }, "box_color"},
		{"confidence", func(c *Config) { c.Detector.Confidence = 1.5 }, "detector.confidence"},
		{"protocol", func(c *Config) { c.Detector.Protocol = "grpc" }, "detector.protocol"},
		{"timeout", func(c *Config) { c.Detector.TimeoutMs = -1 }, "detector.timeout_ms"},
		{"height", func(c *Config) { c.Display.Height = -10 }, "display.height"},
		{"format", func(c *Config) { c.Display.Format = "gif" }, "display.format"},
		{"quality", func(c *Config) { c.Display.Quality = 101 }, "display.quality"},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Defaults()
	cfg.Backend = "vlc"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "backend") || !strings.Contains(err.Error(), "log_level") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestToSourceOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Backend = "opencv"
	cfg.FrameCount = "native"
	cfg.FFmpegPath = "/opt/ffmpeg"

	opts := cfg.ToSourceOptions(logger.NewNoop())
	if opts.Backend != filesource.BackendOpenCV || opts.Mode != ports.CountNative || opts.FFmpegPath != "/opt/ffmpeg" {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.Logger == nil {
		t.Error("logger not passed through")
	}
}

func TestToDetectorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Detector.Command = "detector"
	cfg.Detector.Protocol = "msgpack"
	cfg.Detector.TimeoutMs = 1500

	dc := cfg.ToDetectorConfig()
	if dc.Command != "detector" || dc.Protocol != procdetector.ProtocolMsgpack {
		t.Errorf("unexpected detector config: %+v", dc)
	}
	if dc.Timeout != 1500*time.Millisecond {
		t.Errorf("expected 1.5s timeout, got %v", dc.Timeout)
	}
	if dc.Confidence != 0.5 {
		t.Errorf("expected default confidence, got %v", dc.Confidence)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#00ff00", color.RGBA{G: 255, A: 255}},
		{"1A2b3C", color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
		{"", color.Black},
		{"#fff", color.Black},
		{"#gg0000", color.Black},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
