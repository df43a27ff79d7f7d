package ports

import "errors"

// Load-time and per-frame error taxonomy shared by every component.
var (
	// ErrUnsupportedFormat is returned when the file extension is not a
	// recognised video container. Fatal to the load.
	ErrUnsupportedFormat = errors.New("framescope: unsupported video format")

	// ErrIO is returned when the underlying stream cannot be opened or probed.
	ErrIO = errors.New("framescope: cannot open video stream")

	// ErrEndOfStream signals that no further frame could be read.
	// Playback pauses on it; single steps treat it as a no-op.
	ErrEndOfStream = errors.New("framescope: end of stream")

	// ErrSeekOutOfRange is informational: the requested index was clamped
	// into the valid range and the clamped frame was still produced.
	ErrSeekOutOfRange = errors.New("framescope: seek target out of range")

	// ErrDetectorFailure is recovered locally by skipping annotation.
	ErrDetectorFailure = errors.New("framescope: detector failed")
)
