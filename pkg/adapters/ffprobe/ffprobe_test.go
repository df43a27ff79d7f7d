package ffprobe

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

const sampleReport = `{
    "programs": [],
    "streams": [
        {
            "codec_name": "h264",
            "width": 1920,
            "height": 1080,
            "r_frame_rate": "30000/1001",
            "avg_frame_rate": "30000/1001",
            "nb_frames": "2997"
        }
    ],
    "format": {
        "duration": "100.000000"
    }
}`

func TestParse(t *testing.T) {
	info, err := Parse([]byte(sampleReport))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if info.Codec != "h264" {
		t.Errorf("expected h264, got %s", info.Codec)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", info.Width, info.Height)
	}
	if math.Abs(info.FPS-29.97) > 0.01 {
		t.Errorf("expected ~29.97 fps, got %f", info.FPS)
	}
	if info.NativeFrames != 2997 {
		t.Errorf("expected 2997 native frames, got %d", info.NativeFrames)
	}
	if info.Duration != 100 {
		t.Errorf("expected 100s, got %f", info.Duration)
	}
}

func TestParse_MatroskaWithoutFrameCount(t *testing.T) {
	report := `{"streams":[{"codec_name":"vp9","width":640,"height":360,"r_frame_rate":"25/1","avg_frame_rate":"0/0"}],"format":{"duration":"4.000000"}}`

	info, err := Parse([]byte(report))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if info.FPS != 25 {
		t.Errorf("expected r_frame_rate fallback of 25, got %f", info.FPS)
	}
	if info.NativeFrames != 0 {
		t.Errorf("expected no native count, got %d", info.NativeFrames)
	}
	if info.DurationFrames() != 100 {
		t.Errorf("expected 100 frames from duration, got %d", info.DurationFrames())
	}
}

func TestParse_NoVideoStream(t *testing.T) {
	if _, err := Parse([]byte(`{"streams":[],"format":{"duration":"3.0"}}`)); !errors.Is(err, ErrNoVideoStream) {
		t.Errorf("expected ErrNoVideoStream, got %v", err)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"25/1", 25},
		{"30", 30},
		{"0/0", 0},
		{"24/0", 0},
		{"", 0},
		{"abc", 0},
		{"-5/1", 0},
	}

	for _, tt := range tests {
		if got := ParseRate(tt.in); got != tt.want {
			t.Errorf("ParseRate(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestProbe_PassesArguments(t *testing.T) {
	var gotBin string
	var gotArgs []string
	p := NewWithRunner("/opt/ffprobe", func(ctx context.Context, bin string, args ...string) ([]byte, error) {
		gotBin = bin
		gotArgs = args
		return []byte(sampleReport), nil
	})

	info, err := p.Probe(context.Background(), "/videos/clip.mp4")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if gotBin != "/opt/ffprobe" {
		t.Errorf("expected /opt/ffprobe, got %s", gotBin)
	}
	if gotArgs[len(gotArgs)-1] != "/videos/clip.mp4" {
		t.Errorf("expected file as last argument, got %v", gotArgs)
	}
	if !strings.Contains(strings.Join(gotArgs, " "), "-of json") {
		t.Errorf("expected JSON output format, got %v", gotArgs)
	}
	if info.NativeFrames != 2997 {
		t.Errorf("expected 2997 frames, got %d", info.NativeFrames)
	}
}

func TestProbe_RunnerError(t *testing.T) {
	p := NewWithRunner("ffprobe", func(ctx context.Context, bin string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	})

	if _, err := p.Probe(context.Background(), "broken.mp4"); err == nil {
		t.Error("expected error")
	}
}
