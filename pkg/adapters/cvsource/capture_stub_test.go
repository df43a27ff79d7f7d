//go:build !opencv

package cvsource

import (
	"errors"
	"testing"
)

func TestOpen_Unavailable(t *testing.T) {
	if Available() {
		t.Error("expected OpenCV backend to be unavailable")
	}
	if _, err := Open("clip.mp4", Options{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
