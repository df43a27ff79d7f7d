// Package ffprobe reads container metadata by running the ffprobe tool.
package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/framescope/pkg/adapters/ffbin"
	"github.com/user/framescope/pkg/ports"
)

// ErrNoVideoStream is returned when the file has no video stream.
var ErrNoVideoStream = errors.New("ffprobe: no video stream")

// Prober implements ports.Prober using ffprobe.
type Prober struct {
	bin string
	run ffbin.Runner
}

// New locates ffprobe (customPath first, see ffbin.Find) and returns a Prober.
func New(customPath string) (*Prober, error) {
	bin, err := ffbin.Find(ffbin.FFprobe, customPath)
	if err != nil {
		return nil, err
	}
	return &Prober{bin: bin, run: ffbin.Exec}, nil
}

// NewWithRunner creates a Prober that executes bin through run.
func NewWithRunner(bin string, run ffbin.Runner) *Prober {
	return &Prober{bin: bin, run: run}
}

// Probe runs ffprobe on path and parses its JSON report.
func (p *Prober) Probe(ctx context.Context, path string) (ports.ContainerInfo, error) {
	out, err := p.run(ctx, p.bin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,avg_frame_rate,r_frame_rate,nb_frames:format=duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return ports.ContainerInfo{}, err
	}
	return Parse(out)
}

type report struct {
	Streams []struct {
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		NbFrames     string `json:"nb_frames"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Parse decodes ffprobe's JSON output.
func Parse(data []byte) (ports.ContainerInfo, error) {
	var r report
	if err := json.Unmarshal(data, &r); err != nil {
		return ports.ContainerInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(r.Streams) == 0 {
		return ports.ContainerInfo{}, ErrNoVideoStream
	}

	s := r.Streams[0]
	fps := ParseRate(s.AvgFrameRate)
	if fps == 0 {
		fps = ParseRate(s.RFrameRate)
	}
	frames, _ := strconv.Atoi(s.NbFrames)
	duration, _ := strconv.ParseFloat(r.Format.Duration, 64)

	return ports.ContainerInfo{
		Codec:        s.CodecName,
		Width:        s.Width,
		Height:       s.Height,
		FPS:          fps,
		NativeFrames: frames,
		Duration:     duration,
	}, nil
}

// ParseRate parses a rational such as "30000/1001" or a plain number.
// Malformed input and zero denominators yield 0.
func ParseRate(s string) float64 {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || n < 0 {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d <= 0 {
		return 0
	}
	return n / d
}

var _ ports.Prober = (*Prober)(nil)
