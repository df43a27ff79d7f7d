// Package nulldisplay provides a display sink that discards frames.
package nulldisplay

import "github.com/user/framescope/pkg/ports"

// Sink is a no-op implementation of ports.DisplaySink.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false so callers can skip encoding entirely.
func (s *Sink) Enabled() bool {
	return false
}

// Show does nothing.
func (s *Sink) Show(data []byte) {}

var _ ports.DisplaySink = (*Sink)(nil)
