package mocks

import (
	"context"
	"image"

	"github.com/user/framescope/pkg/ports"
)

// Detector is a mock implementation of ports.Detector.
type Detector struct {
	Detections []ports.Detection
	Err        error
	Calls      int

	InferFunc func(ctx context.Context, img image.Image) ([]ports.Detection, error)
}

func (m *Detector) Infer(ctx context.Context, img image.Image) ([]ports.Detection, error) {
	m.Calls++
	if m.InferFunc != nil {
		return m.InferFunc(ctx, img)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Detections, nil
}

var _ ports.Detector = (*Detector)(nil)
