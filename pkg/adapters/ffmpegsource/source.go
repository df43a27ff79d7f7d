// Package ffmpegsource implements ports.FrameSource by asking ffmpeg for
// one frame at a time.
package ffmpegsource

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/user/framescope/pkg/adapters/ffbin"
	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/ports"
)

// Options configures a Source.
type Options struct {
	// FFmpegPath overrides the ffmpeg lookup.
	FFmpegPath string
	// Runner replaces process execution, mainly for tests.
	Runner ffbin.Runner
	Logger ports.Logger
}

// Source decodes frames of a single file on demand.
type Source struct {
	path   string
	bin    string
	meta   ports.VideoMetadata
	pos    int
	closed bool
	run    ffbin.Runner
	logger ports.Logger
}

// Open prepares a Source for path. meta comes from a prober; ffmpeg is
// only located here, no frame is decoded until ReadNext.
func Open(path string, meta ports.VideoMetadata, opts Options) (*Source, error) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoop()
	}
	run := opts.Runner
	bin := opts.FFmpegPath
	if run == nil {
		var err error
		bin, err = ffbin.Find(ffbin.FFmpeg, opts.FFmpegPath)
		if err != nil {
			return nil, err
		}
		run = ffbin.Exec
	}

	return &Source{
		path:   path,
		bin:    bin,
		meta:   meta,
		run:    run,
		logger: opts.Logger.WithComponent("ffmpeg"),
	}, nil
}

// Seek sets the raw cursor. Negative targets clamp to 0.
func (s *Source) Seek(index int) {
	if index < 0 {
		index = 0
	}
	s.pos = index
}

// ReadNext decodes the frame at the raw cursor and advances it on success.
func (s *Source) ReadNext() (image.Image, bool) {
	if s.closed {
		return nil, false
	}
	if s.meta.TotalFrames > 0 && s.pos >= s.meta.TotalFrames {
		return nil, false
	}

	s.logger.Debug("Decoding frame %d", s.pos)
	out, err := s.run(context.Background(), s.bin, s.args(s.pos)...)
	if err != nil {
		s.logger.Debug("Decode failed at frame %d: %s", s.pos, err.Error())
		return nil, false
	}
	if len(out) == 0 {
		return nil, false
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		s.logger.Debug("Decode failed at frame %d: %s", s.pos, err.Error())
		return nil, false
	}

	s.pos++
	return img, true
}

// Position returns the raw cursor.
func (s *Source) Position() int {
	return s.pos
}

// Metadata returns the metadata given at Open.
func (s *Source) Metadata() ports.VideoMetadata {
	return s.meta
}

// Close marks the source closed. No process outlives a ReadNext call.
func (s *Source) Close() error {
	s.closed = true
	return nil
}

func (s *Source) args(pos int) []string {
	args := []string{"-v", "error", "-nostdin"}
	if s.meta.FPS > 0 {
		args = append(args, "-ss", seekTimestamp(pos, s.meta.FPS), "-i", s.path)
	} else {
		args = append(args, "-i", s.path,
			"-vf", fmt.Sprintf(`select=eq(n\,%d)`, pos),
			"-vsync", "0",
		)
	}
	return append(args,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
}

// seekTimestamp returns an input timestamp half a frame before frame pos,
// so rounding in the decimal form never skips past the wanted frame.
func seekTimestamp(pos int, fps float64) string {
	ts := (float64(pos) - 0.5) / fps
	if ts < 0 {
		ts = 0
	}
	return fmt.Sprintf("%.6f", ts)
}

var _ ports.FrameSource = (*Source)(nil)
