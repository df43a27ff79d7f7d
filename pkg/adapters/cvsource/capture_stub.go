//go:build !opencv

package cvsource

import "github.com/user/framescope/pkg/ports"

// Available reports whether the OpenCV backend is compiled in.
func Available() bool {
	return false
}

// Open always fails without the opencv build tag.
func Open(path string, opts Options) (ports.FrameSource, error) {
	return nil, ErrUnavailable
}
