// Package snapshot saves displayed frames as timestamped PNG files.
package snapshot

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/user/framescope/pkg/ports"
)

// TimeLayout names snapshots with microsecond resolution.
const TimeLayout = "20060102_150405.000000"

// Writer implements ports.SnapshotWriter.
type Writer struct {
	dir      string
	fs       ports.FileSystem
	renderer ports.Renderer
	now      func() time.Time
}

// New creates a Writer that saves into dir. An empty dir means the
// working directory.
func New(dir string, fs ports.FileSystem, renderer ports.Renderer) *Writer {
	return &Writer{
		dir:      dir,
		fs:       fs,
		renderer: renderer,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for file names.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// FileName returns the snapshot name for t.
func FileName(t time.Time) string {
	return "frame_" + t.Format(TimeLayout) + ".png"
}

// Save encodes img as PNG and writes it under a timestamped name. Two saves
// within the same microsecond get a numeric suffix instead of overwriting.
func (w *Writer) Save(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("snapshot: no frame to save")
	}

	data, err := w.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	if w.dir != "" {
		if err := w.fs.MkdirAll(w.dir); err != nil {
			return "", fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	path, err := w.uniquePath(w.now())
	if err != nil {
		return "", err
	}
	if err := w.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

func (w *Writer) uniquePath(t time.Time) (string, error) {
	name := FileName(t)
	path := filepath.Join(w.dir, name)
	for n := 1; ; n++ {
		exists, err := w.fs.Exists(path)
		if err != nil {
			return "", fmt.Errorf("check snapshot path: %w", err)
		}
		if !exists {
			return path, nil
		}
		path = filepath.Join(w.dir, fmt.Sprintf("%s_%d.png", name[:len(name)-len(".png")], n))
	}
}

var _ ports.SnapshotWriter = (*Writer)(nil)
