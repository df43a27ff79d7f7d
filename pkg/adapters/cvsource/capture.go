//go:build opencv

package cvsource

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/ports"
)

// Available reports whether the OpenCV backend is compiled in.
func Available() bool {
	return true
}

// Source reads frames through gocv.VideoCapture, whose POS_FRAMES property
// already reports the post-read position.
type Source struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	meta    ports.VideoMetadata
	logger  ports.Logger
}

// Open opens path with OpenCV.
func Open(path string, opts Options) (ports.FrameSource, error) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoop()
	}

	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("open capture: %s", path)
	}

	native := ports.ContainerInfo{
		Codec:        capture.CodecString(),
		Width:        int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height:       int(capture.Get(gocv.VideoCaptureFrameHeight)),
		FPS:          capture.Get(gocv.VideoCaptureFPS),
		NativeFrames: int(capture.Get(gocv.VideoCaptureFrameCount)),
	}

	return &Source{
		capture: capture,
		mat:     gocv.NewMat(),
		meta:    metadataFrom(merge(opts.Container, native), opts.Mode),
		logger:  opts.Logger.WithComponent("opencv"),
	}, nil
}

// Seek sets POS_FRAMES. Negative targets clamp to 0.
func (s *Source) Seek(index int) {
	if index < 0 {
		index = 0
	}
	s.capture.Set(gocv.VideoCapturePosFrames, float64(index))
}

// ReadNext decodes the frame at POS_FRAMES.
func (s *Source) ReadNext() (image.Image, bool) {
	if !s.capture.Read(&s.mat) || s.mat.Empty() {
		return nil, false
	}
	img, err := s.mat.ToImage()
	if err != nil {
		s.logger.Debug("Decode failed at frame %d: %s", s.Position()-1, err.Error())
		return nil, false
	}
	return img, true
}

// Position returns POS_FRAMES.
func (s *Source) Position() int {
	return int(s.capture.Get(gocv.VideoCapturePosFrames))
}

// Metadata returns the metadata computed at Open.
func (s *Source) Metadata() ports.VideoMetadata {
	return s.meta
}

// Close releases the capture.
func (s *Source) Close() error {
	s.mat.Close()
	return s.capture.Close()
}

var _ ports.FrameSource = (*Source)(nil)
