// Package previewsink shows frames by rewriting a single image file that
// an external viewer can watch.
package previewsink

import (
	"github.com/user/framescope/pkg/ports"
)

// Sink implements ports.DisplaySink. Each Show replaces the file at path
// via a temporary file and rename, so viewers never read a partial image.
type Sink struct {
	path   string
	fs     ports.FileSystem
	logger ports.Logger
	shown  int
}

// New creates a Sink writing to path.
func New(path string, fs ports.FileSystem, logger ports.Logger) *Sink {
	return &Sink{
		path:   path,
		fs:     fs,
		logger: logger.WithComponent("display"),
	}
}

// Enabled returns true as this sink writes output.
func (s *Sink) Enabled() bool {
	return true
}

// Path returns the preview file path.
func (s *Sink) Path() string {
	return s.path
}

// Shown returns the number of frames written successfully.
func (s *Sink) Shown() int {
	return s.shown
}

// Show writes data to the preview file. Failures are logged; the previous
// preview stays in place.
func (s *Sink) Show(data []byte) {
	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data); err != nil {
		s.logger.Warn("Display update failed: %s", err.Error())
		return
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		s.logger.Warn("Display update failed: %s", err.Error())
		return
	}
	s.shown++
}

var _ ports.DisplaySink = (*Sink)(nil)
