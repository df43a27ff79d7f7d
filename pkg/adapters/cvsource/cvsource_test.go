package cvsource

import (
	"testing"

	"github.com/user/framescope/pkg/ports"
)

func TestMerge_PrefersProbeTimingAndCaptureCount(t *testing.T) {
	probe := ports.ContainerInfo{FPS: 25, Duration: 95, NativeFrames: 2380, Codec: "h264"}
	capture := ports.ContainerInfo{FPS: 24.9, Width: 640, Height: 360, NativeFrames: 2374, Codec: "avc1"}

	got := merge(probe, capture)

	if got.FPS != 25 || got.Codec != "h264" {
		t.Errorf("probe values should win, got %+v", got)
	}
	if got.Width != 640 || got.Height != 360 {
		t.Errorf("missing dimensions should come from the capture, got %dx%d", got.Width, got.Height)
	}
	if got.NativeFrames != 2374 {
		t.Errorf("native count should come from the capture, got %d", got.NativeFrames)
	}
}

func TestMetadataFrom_Modes(t *testing.T) {
	info := merge(ports.ContainerInfo{Duration: 95}, ports.ContainerInfo{FPS: 25, NativeFrames: 2374})

	if got := metadataFrom(info, ports.CountMetadata).TotalFrames; got != 2375 {
		t.Errorf("metadata mode: expected 2375, got %d", got)
	}
	if got := metadataFrom(info, ports.CountNative).TotalFrames; got != 2374 {
		t.Errorf("native mode: expected 2374, got %d", got)
	}
}

func TestMetadataFrom_NoDurationFallsBackToCapture(t *testing.T) {
	info := merge(ports.ContainerInfo{}, ports.ContainerInfo{FPS: 30, NativeFrames: 90})

	if got := metadataFrom(info, ports.CountMetadata).TotalFrames; got != 90 {
		t.Errorf("expected fallback to 90, got %d", got)
	}
}
