// Package summarizer builds and formats video information reports.
package summarizer

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/user/framescope/pkg/ports"
)

// Summary contains everything known about one video file.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	File   FileInfo
	Stream StreamInfo
	Frames FrameInfo
}

// FileInfo describes the file on disk.
type FileInfo struct {
	Path   string
	Name   string
	Format string // extension without the dot
	Size   int64
}

// StreamInfo describes the video stream.
type StreamInfo struct {
	Backend string
	Codec   string
	Width   int
	Height  int
	FPS     float64
}

// FrameInfo lists both frame-count sources and the one in effect.
type FrameInfo struct {
	Mode ports.FrameCountMode
	// Total is the count the cursor treats as authoritative.
	Total int
	// ContainerFrames is round(duration x fps), 0 when the container has no duration.
	ContainerFrames int
	// DecoderFrames is the stream's own frame count, 0 when not recorded.
	DecoderFrames int
	DurationSec   float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithFile sets file information. Name and format are derived from path.
func (b *Builder) WithFile(path string, size int64) *Builder {
	b.summary.File = FileInfo{
		Path:   path,
		Name:   filepath.Base(path),
		Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		Size:   size,
	}
	return b
}

// WithBackend records the decoder backend.
func (b *Builder) WithBackend(backend string) *Builder {
	b.summary.Stream.Backend = backend
	return b
}

// WithContainer fills stream and frame information from a probe result.
func (b *Builder) WithContainer(info ports.ContainerInfo, mode ports.FrameCountMode) *Builder {
	b.summary.Stream.Codec = info.Codec
	b.summary.Stream.Width = info.Width
	b.summary.Stream.Height = info.Height
	b.summary.Stream.FPS = info.FPS
	b.summary.Frames = FrameInfo{
		Mode:            mode,
		Total:           info.TotalFrames(mode),
		ContainerFrames: info.DurationFrames(),
		DecoderFrames:   info.NativeFrames,
		DurationSec:     info.Duration,
	}
	return b
}

// WithTotal overrides the authoritative frame count, e.g. with the value
// an opened source reports.
func (b *Builder) WithTotal(total int) *Builder {
	b.summary.Frames.Total = total
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
