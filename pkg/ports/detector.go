package ports

import (
	"context"
	"image"
)

// Detection is one object reported by a Detector, in frame pixel coordinates.
type Detection struct {
	MinX       float64
	MinY       float64
	MaxX       float64
	MaxY       float64
	ClassName  string
	Confidence float64
}

// Detector is an opaque object classifier invoked once per frame.
type Detector interface {
	Infer(ctx context.Context, img image.Image) ([]Detection, error)
}
