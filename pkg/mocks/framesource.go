// Package mocks provides hand-written test doubles for the ports interfaces.
package mocks

import (
	"image"
	"image/color"

	"github.com/user/framescope/pkg/ports"
)

// FrameSource is an in-memory ports.FrameSource with post-read cursor
// semantics: ReadNext returns the frame at the cursor and advances it.
type FrameSource struct {
	Frames []image.Image
	Meta   ports.VideoMetadata

	// Unreadable marks indices whose ReadNext fails without moving the cursor.
	Unreadable map[int]bool

	pos    int
	closed bool

	// Seeks records every Seek target in call order.
	Seeks []int
	// Reads counts ReadNext calls.
	Reads int

	SeekFunc     func(index int)
	ReadNextFunc func() (image.Image, bool)
	CloseFunc    func() error
}

// NewFrameSource creates a source of n solid-colour frames. Frame i has
// its index encoded in the red channel of every pixel, see FrameIndexOf.
func NewFrameSource(n int, fps float64) *FrameSource {
	frames := make([]image.Image, n)
	for i := range frames {
		frames[i] = IndexedImage(i, 4, 4)
	}
	return &FrameSource{
		Frames: frames,
		Meta: ports.VideoMetadata{
			TotalFrames: n,
			FPS:         fps,
			Width:       4,
			Height:      4,
			Codec:       "mock",
		},
	}
}

// IndexedImage returns a w x h image whose pixels encode index (mod 65536)
// in the red and green channels.
func IndexedImage(index, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := color.RGBA{R: uint8(index >> 8), G: uint8(index), B: 200, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// FrameIndexOf decodes the index written by IndexedImage.
func FrameIndexOf(img image.Image) int {
	if img == nil {
		return -1
	}
	b := img.Bounds()
	r, g, _, _ := img.At(b.Min.X, b.Min.Y).RGBA()
	return int(r>>8)<<8 | int(g>>8)
}

func (m *FrameSource) Seek(index int) {
	m.Seeks = append(m.Seeks, index)
	if m.SeekFunc != nil {
		m.SeekFunc(index)
		return
	}
	if index < 0 {
		index = 0
	}
	m.pos = index
}

func (m *FrameSource) ReadNext() (image.Image, bool) {
	m.Reads++
	if m.ReadNextFunc != nil {
		return m.ReadNextFunc()
	}
	if m.pos < 0 || m.pos >= len(m.Frames) || m.Unreadable[m.pos] {
		return nil, false
	}
	img := m.Frames[m.pos]
	m.pos++
	return img, true
}

func (m *FrameSource) Position() int {
	return m.pos
}

// SetPosition moves the raw cursor without recording a Seek, simulating
// an external seek that the cursor has to detect.
func (m *FrameSource) SetPosition(pos int) {
	m.pos = pos
}

func (m *FrameSource) Metadata() ports.VideoMetadata {
	return m.Meta
}

func (m *FrameSource) Close() error {
	m.closed = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Closed reports whether Close has been called.
func (m *FrameSource) Closed() bool {
	return m.closed
}

var _ ports.FrameSource = (*FrameSource)(nil)
