//go:build !opencv

package filesource

import (
	"context"
	"errors"
	"testing"

	"github.com/user/framescope/pkg/adapters/cvsource"
	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/mocks"
	"github.com/user/framescope/pkg/ports"
)

func TestOpen_OpenCVBackendUnavailable(t *testing.T) {
	o := NewWithProbers(Options{Backend: BackendOpenCV, Logger: logger.NewNoop()}, &mocks.Prober{}, nil)

	_, err := o.Open(context.Background(), touch(t, "clip.mp4"))
	if !errors.Is(err, ports.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
	if !errors.Is(err, cvsource.ErrUnavailable) {
		t.Errorf("expected cvsource.ErrUnavailable as the cause, got %v", err)
	}
}
