package summarizer

import (
	"testing"
	"time"

	"github.com/user/framescope/pkg/ports"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithFile(t *testing.T) {
	summary := NewBuilder().
		WithFile("/videos/Review.MOV", 2048).
		Build()

	if summary.File.Name != "Review.MOV" {
		t.Errorf("expected name 'Review.MOV', got '%s'", summary.File.Name)
	}
	if summary.File.Format != "mov" {
		t.Errorf("expected format 'mov', got '%s'", summary.File.Format)
	}
	if summary.File.Size != 2048 {
		t.Errorf("expected size 2048, got %d", summary.File.Size)
	}
}

func TestBuilder_WithContainer(t *testing.T) {
	info := ports.ContainerInfo{
		Codec:        "h264",
		Width:        1920,
		Height:       1080,
		FPS:          29.97,
		NativeFrames: 2374,
		Duration:     79.246,
	}

	tests := []struct {
		mode      ports.FrameCountMode
		wantTotal int
	}{
		{ports.CountMetadata, 2375},
		{ports.CountNative, 2374},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := NewBuilder().WithContainer(info, tt.mode).Build()

			if s.Frames.Total != tt.wantTotal {
				t.Errorf("expected total %d, got %d", tt.wantTotal, s.Frames.Total)
			}
			if s.Frames.ContainerFrames != 2375 || s.Frames.DecoderFrames != 2374 {
				t.Errorf("unexpected frame sources: %+v", s.Frames)
			}
			if s.Stream.Codec != "h264" || s.Stream.Width != 1920 || s.Stream.FPS != 29.97 {
				t.Errorf("unexpected stream: %+v", s.Stream)
			}
		})
	}
}

func TestBuilder_FullChain(t *testing.T) {
	summary := NewBuilder().
		WithFile("clip.mp4", 100).
		WithBackend("ffmpeg").
		WithContainer(ports.ContainerInfo{FPS: 25, NativeFrames: 50, Duration: 2}, ports.CountMetadata).
		WithTotal(49).
		Build()

	if summary.Stream.Backend != "ffmpeg" {
		t.Error("Stream.Backend not set correctly")
	}
	if summary.Frames.Total != 49 {
		t.Errorf("WithTotal should override, got %d", summary.Frames.Total)
	}
	if summary.Frames.DurationSec != 2 {
		t.Error("Frames.DurationSec not set correctly")
	}
}
