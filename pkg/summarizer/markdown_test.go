package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/framescope/pkg/ports"
)

func fullSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		File: FileInfo{
			Path:   "/videos/review.mp4",
			Name:   "review.mp4",
			Format: "mp4",
			Size:   1024 * 1024,
		},
		Stream: StreamInfo{
			Backend: "ffmpeg",
			Codec:   "h264",
			Width:   1920,
			Height:  1080,
			FPS:     29.97,
		},
		Frames: FrameInfo{
			Mode:            ports.CountMetadata,
			Total:           2375,
			ContainerFrames: 2375,
			DecoderFrames:   2374,
			DurationSec:     79.246,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(fullSummary())

	checks := []string{
		"# Video Summary",
		"review.mp4",
		"/videos/review.mp4",
		"1.00 MB",       // File size
		"ffmpeg",        // Backend
		"h264",          // Codec
		"1920x1080",     // Resolution
		"29.97 fps",     // Frame rate
		"metadata",      // Mode
		"| 2375 |",      // Total / container frames
		"| 2374 |",      // Decoder frames
		"00:01:19",      // Duration
		"disagree by: 1",
		"2024-01-15 10:30:00 UTC",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
	if strings.Contains(result, "N/A") {
		t.Error("complete summary should not contain N/A")
	}
}

func TestMarkdownFormatter_Format_MissingValues(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Now(),
		File:        FileInfo{Name: "clip.avi", Path: "clip.avi", Format: "avi"},
		Frames:      FrameInfo{Mode: ports.CountNative, DecoderFrames: 10, Total: 10},
	}

	result := formatter.Format(summary)

	for _, check := range []string{"| Codec | N/A |", "| Resolution | N/A |", "| Frame Rate | N/A |", "| Duration | N/A |", "| Container Frames | N/A |"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
	if strings.Contains(result, "disagree") {
		t.Error("single frame-count source should not be reported as disagreeing")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Video Summary": "動画サマリー",
			"File Name":     "ファイル名",
			"N/A":           "不明",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))

	summary := &Summary{
		GeneratedAt: time.Now(),
		File:        FileInfo{Name: "clip.mp4"},
	}

	result := formatter.Format(summary)

	if !strings.Contains(result, "動画サマリー") {
		t.Error("expected translated 'Video Summary'")
	}
	if !strings.Contains(result, "ファイル名") {
		t.Error("expected translated 'File Name'")
	}
	if !strings.Contains(result, "不明") {
		t.Error("expected translated 'N/A'")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithVersion("v1.2.0"))

	result := formatter.Format(fullSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
