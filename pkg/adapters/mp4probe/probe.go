// Package mp4probe reads frame counts, timing and dimensions from MP4 and
// QuickTime containers without decoding any samples.
package mp4probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framescope/pkg/ports"
)

// ErrNoVideoTrack is returned when the container has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.Prober for .mp4 and .mov files.
type Prober struct{}

// New creates a Prober.
func New() *Prober {
	return &Prober{}
}

// Probe reads metadata from the file at path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.ContainerInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.ContainerInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader reads metadata from an MP4 stream.
func ProbeReader(reader io.ReadSeeker) (ports.ContainerInfo, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return ports.ContainerInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.ContainerInfo{}, fmt.Errorf("no moov box found")
	}

	trak := videoTrack(moov)
	if trak == nil {
		return ports.ContainerInfo{}, ErrNoVideoTrack
	}

	info := ports.ContainerInfo{
		Codec:  codecOf(trak),
		Width:  int(trak.Tkhd.Width >> 16),
		Height: int(trak.Tkhd.Height >> 16),
	}

	var timescale uint32 = 1000
	var mediaDuration uint64
	if trak.Mdia.Mdhd != nil {
		if trak.Mdia.Mdhd.Timescale > 0 {
			timescale = trak.Mdia.Mdhd.Timescale
		}
		mediaDuration = trak.Mdia.Mdhd.Duration
	}

	var count int
	var firstDelta uint32
	if mp4File.IsFragmented() {
		count, mediaDuration, firstDelta, err = fragmentedSamples(mp4File, moov, trak.Tkhd.TrackID)
		if err != nil {
			return ports.ContainerInfo{}, err
		}
	} else {
		count, firstDelta = progressiveSamples(trak)
	}

	info.NativeFrames = count
	if mediaDuration > 0 {
		info.Duration = float64(mediaDuration) / float64(timescale)
	}
	switch {
	case count > 0 && info.Duration > 0:
		info.FPS = float64(count) / info.Duration
	case firstDelta > 0:
		info.FPS = float64(timescale) / float64(firstDelta)
	}

	return info, nil
}

func videoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func codecOf(trak *mp4.TrakBox) string {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ""
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return "h264"
		case "hvc1", "hev1":
			return "hevc"
		case "av01":
			return "av1"
		case "vp09":
			return "vp9"
		case "mp4v":
			return "mpeg4"
		}
	}
	return ""
}

// progressiveSamples returns the sample count and first sample delta from
// the sample table.
func progressiveSamples(trak *mp4.TrakBox) (int, uint32) {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return 0, 0
	}
	stbl := trak.Mdia.Minf.Stbl

	var count int
	if stbl.Stsz != nil {
		count = int(stbl.Stsz.SampleNumber)
	}
	var delta uint32
	if stbl.Stts != nil && len(stbl.Stts.SampleTimeDelta) > 0 {
		delta = stbl.Stts.SampleTimeDelta[0]
	}
	return count, delta
}

// fragmentedSamples walks every fragment of trackID and sums sample counts
// and durations.
func fragmentedSamples(mp4File *mp4.File, moov *mp4.MoovBox, trackID uint32) (int, uint64, uint32, error) {
	var trex *mp4.TrexBox
	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var count int
	var duration uint64
	var firstDelta uint32
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if !hasTrack(frag, trackID) {
				continue
			}

			samples, err := frag.GetFullSamples(trex)
			if err != nil {
				return 0, 0, 0, fmt.Errorf("get samples: %w", err)
			}
			for _, s := range samples {
				if firstDelta == 0 {
					firstDelta = s.Dur
				}
				duration += uint64(s.Dur)
			}
			count += len(samples)
		}
	}
	return count, duration, firstDelta, nil
}

func hasTrack(frag *mp4.Fragment, trackID uint32) bool {
	if frag.Moof == nil {
		return false
	}
	for _, traf := range frag.Moof.Trafs {
		if traf.Tfhd != nil && traf.Tfhd.TrackID == trackID {
			return true
		}
	}
	return false
}

var _ ports.Prober = (*Prober)(nil)
