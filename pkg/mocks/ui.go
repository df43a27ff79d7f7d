package mocks

import (
	"fmt"
	"image"

	"github.com/user/framescope/pkg/ports"
)

// DisplaySink records every buffer shown.
type DisplaySink struct {
	Shown [][]byte
}

func (m *DisplaySink) Show(data []byte) {
	m.Shown = append(m.Shown, data)
}

var _ ports.DisplaySink = (*DisplaySink)(nil)

// FilePicker returns queued answers in order, then reports cancellation.
type FilePicker struct {
	Paths []string
}

func (m *FilePicker) PickFile() (string, bool) {
	if len(m.Paths) == 0 {
		return "", false
	}
	p := m.Paths[0]
	m.Paths = m.Paths[1:]
	return p, p != ""
}

var _ ports.FilePicker = (*FilePicker)(nil)

// SnapshotWriter records saved images and names them sequentially.
type SnapshotWriter struct {
	Saved []image.Image
	Err   error
}

func (m *SnapshotWriter) Save(img image.Image) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Saved = append(m.Saved, img)
	return fmt.Sprintf("frame_%d.png", len(m.Saved)), nil
}

var _ ports.SnapshotWriter = (*SnapshotWriter)(nil)
