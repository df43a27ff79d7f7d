// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"image"
	"math"
	"path/filepath"
	"strings"
)

// SupportedFormats lists the container extensions a FrameSource may be opened for.
var SupportedFormats = []string{".mp4", ".avi", ".mov", ".mkv"}

// IsSupportedFormat reports whether path has one of SupportedFormats as its extension.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range SupportedFormats {
		if ext == f {
			return true
		}
	}
	return false
}

// VideoMetadata describes a loaded stream. It is computed once when the
// source is opened and never changes afterwards.
type VideoMetadata struct {
	TotalFrames int
	FPS         float64 // 0 when unknown
	Width       int
	Height      int
	Codec       string
}

// Frame is a decoded image tied to the index it was read at.
type Frame struct {
	Image image.Image
	Index int
}

// FrameSource wraps a decodable video stream.
//
// Reading advances the raw cursor past the frame it returns: after
// Seek(i) the next ReadNext yields frame i and Position reports i+1.
type FrameSource interface {
	// Seek positions the stream so that the next ReadNext returns frame index.
	Seek(index int)

	// ReadNext decodes the frame at the raw cursor and advances it by one.
	// ok is false at end of stream or when the frame cannot be decoded;
	// the cursor does not move in that case.
	ReadNext() (img image.Image, ok bool)

	// Position returns the decoder's own reported read position.
	Position() int

	// Metadata returns the metadata computed at construction.
	Metadata() VideoMetadata

	// Close releases the underlying stream.
	Close() error
}

// FrameCountMode selects which frame count a source treats as authoritative.
type FrameCountMode string

const (
	// CountMetadata derives the total from the container duration and frame
	// rate, falling back to the decoder count when no duration is present.
	CountMetadata FrameCountMode = "metadata"
	// CountNative trusts the decoder's own frame-count property.
	CountNative FrameCountMode = "native"
)

// ParseFrameCountMode validates a mode name. The empty string selects CountMetadata.
func ParseFrameCountMode(s string) (FrameCountMode, bool) {
	switch FrameCountMode(strings.ToLower(strings.TrimSpace(s))) {
	case CountMetadata, "":
		return CountMetadata, true
	case CountNative:
		return CountNative, true
	default:
		return CountMetadata, false
	}
}

// ContainerInfo is what a Prober learns about a file without decoding it.
type ContainerInfo struct {
	Codec  string
	Width  int
	Height int
	FPS    float64 // 0 when unknown
	// NativeFrames is the stream's own frame count, 0 when not recorded.
	NativeFrames int
	// Duration is the container duration in seconds, 0 when not recorded.
	Duration float64
}

// DurationFrames returns round(Duration * FPS), or 0 when either is unknown.
func (c ContainerInfo) DurationFrames() int {
	if c.Duration <= 0 || c.FPS <= 0 {
		return 0
	}
	return int(math.Round(c.Duration * c.FPS))
}

// TotalFrames picks the authoritative frame count for mode.
// CountMetadata falls back to NativeFrames when no duration is available.
func (c ContainerInfo) TotalFrames(mode FrameCountMode) int {
	if mode == CountNative {
		return c.NativeFrames
	}
	if n := c.DurationFrames(); n > 0 {
		return n
	}
	return c.NativeFrames
}

// Prober reads container metadata for path.
type Prober interface {
	Probe(ctx context.Context, path string) (ContainerInfo, error)
}

// SourceOpener validates a path and opens a FrameSource for it. Errors
// wrap ErrUnsupportedFormat or ErrIO.
type SourceOpener interface {
	Open(ctx context.Context, path string) (FrameSource, error)
}
