// Package cvsource implements ports.FrameSource on OpenCV's VideoCapture.
// The real backend is compiled with the "opencv" build tag; without it
// Open reports ErrUnavailable.
package cvsource

import (
	"errors"

	"github.com/user/framescope/pkg/ports"
)

// ErrUnavailable is returned when the binary was built without OpenCV.
var ErrUnavailable = errors.New("cvsource: built without opencv support")

// Options configures a Source.
type Options struct {
	// Mode selects the authoritative frame count.
	Mode ports.FrameCountMode
	// Container carries probe results, if any. Its Duration drives
	// CountMetadata; zero values are filled from the capture.
	Container ports.ContainerInfo
	Logger    ports.Logger
}

// merge fills the probe result with the capture's own properties.
func merge(probe, capture ports.ContainerInfo) ports.ContainerInfo {
	out := probe
	if out.FPS <= 0 {
		out.FPS = capture.FPS
	}
	if out.Width == 0 || out.Height == 0 {
		out.Width, out.Height = capture.Width, capture.Height
	}
	if out.Codec == "" {
		out.Codec = capture.Codec
	}
	// The capture's count is what OpenCV itself will decode, so it wins
	// over any container-recorded count.
	out.NativeFrames = capture.NativeFrames
	return out
}

func metadataFrom(info ports.ContainerInfo, mode ports.FrameCountMode) ports.VideoMetadata {
	return ports.VideoMetadata{
		TotalFrames: info.TotalFrames(mode),
		FPS:         info.FPS,
		Width:       info.Width,
		Height:      info.Height,
		Codec:       info.Codec,
	}
}
