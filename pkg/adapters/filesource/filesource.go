// Package filesource opens video files as frame sources. It checks the
// container format, probes metadata, applies the frame-count mode and
// picks a decoding backend.
package filesource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/framescope/pkg/adapters/cvsource"
	"github.com/user/framescope/pkg/adapters/ffbin"
	"github.com/user/framescope/pkg/adapters/ffmpegsource"
	"github.com/user/framescope/pkg/adapters/ffprobe"
	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/adapters/mp4probe"
	"github.com/user/framescope/pkg/ports"
)

// Backend selects the decoder.
type Backend string

const (
	// BackendFFmpeg decodes frames with the ffmpeg executable.
	BackendFFmpeg Backend = "ffmpeg"
	// BackendOpenCV decodes frames with gocv (requires the opencv build tag).
	BackendOpenCV Backend = "opencv"
)

// ParseBackend validates a backend name. The empty string selects ffmpeg.
func ParseBackend(s string) (Backend, bool) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendFFmpeg, "":
		return BackendFFmpeg, true
	case BackendOpenCV:
		return BackendOpenCV, true
	default:
		return BackendFFmpeg, false
	}
}

// Options configures an Opener.
type Options struct {
	Backend     Backend
	Mode        ports.FrameCountMode
	FFmpegPath  string
	FFprobePath string
	// Runner replaces ffmpeg execution, mainly for tests.
	Runner ffbin.Runner
	Logger ports.Logger
}

// Opener implements ports.SourceOpener.
type Opener struct {
	opts Options
	// mp4 reads .mp4/.mov headers in-process.
	mp4 ports.Prober
	// generic handles every container; nil when ffprobe is not installed.
	generic ports.Prober
	logger  ports.Logger
}

// New creates an Opener with the built-in probers. A missing ffprobe is
// not an error: MP4 and QuickTime files can still be probed in-process.
func New(opts Options) *Opener {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoop()
	}

	var generic ports.Prober
	if p, err := ffprobe.New(opts.FFprobePath); err == nil {
		generic = p
	} else {
		opts.Logger.Debug("ffprobe unavailable: %s", err.Error())
	}

	return NewWithProbers(opts, mp4probe.New(), generic)
}

// NewWithProbers creates an Opener with explicit probers. Either may be nil.
func NewWithProbers(opts Options, mp4 ports.Prober, generic ports.Prober) *Opener {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoop()
	}
	if opts.Backend == "" {
		opts.Backend = BackendFFmpeg
	}
	if opts.Mode == "" {
		opts.Mode = ports.CountMetadata
	}
	return &Opener{
		opts:    opts,
		mp4:     mp4,
		generic: generic,
		logger:  opts.Logger.WithComponent("source"),
	}
}

// Open validates path, probes it and opens a FrameSource on the configured
// backend.
func (o *Opener) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	if !ports.IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ports.ErrUnsupportedFormat, filepath.Ext(path), strings.Join(ports.SupportedFormats, " "))
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrIO, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ports.ErrIO, path)
	}

	o.logger.Debug("Using %s backend for %s", string(o.opts.Backend), filepath.Base(path))

	switch o.opts.Backend {
	case BackendOpenCV:
		info, _ := o.probe(ctx, path)
		src, err := cvsource.Open(path, cvsource.Options{
			Mode:      o.opts.Mode,
			Container: info,
			Logger:    o.opts.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ports.ErrIO, err)
		}
		return src, nil

	default:
		info, err := o.probe(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ports.ErrIO, err)
		}
		src, err := ffmpegsource.Open(path, o.metadata(info), ffmpegsource.Options{
			FFmpegPath: o.opts.FFmpegPath,
			Runner:     o.opts.Runner,
			Logger:     o.opts.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ports.ErrIO, err)
		}
		return src, nil
	}
}

// Probe returns the container metadata of path without opening a source.
func (o *Opener) Probe(ctx context.Context, path string) (ports.ContainerInfo, error) {
	if !ports.IsSupportedFormat(path) {
		return ports.ContainerInfo{}, fmt.Errorf("%w: %q", ports.ErrUnsupportedFormat, filepath.Ext(path))
	}
	info, err := o.probe(ctx, path)
	if err != nil {
		return ports.ContainerInfo{}, fmt.Errorf("%w: %w", ports.ErrIO, err)
	}
	return info, nil
}

// Backend returns the configured decoder backend.
func (o *Opener) Backend() Backend {
	return o.opts.Backend
}

// Mode returns the configured frame-count mode.
func (o *Opener) Mode() ports.FrameCountMode {
	return o.opts.Mode
}

// probe tries the in-process MP4 reader for .mp4/.mov and ffprobe for
// everything else, or when the MP4 reader fails.
func (o *Opener) probe(ctx context.Context, path string) (ports.ContainerInfo, error) {
	var errs []string

	ext := strings.ToLower(filepath.Ext(path))
	if o.mp4 != nil && (ext == ".mp4" || ext == ".mov") {
		info, err := o.mp4.Probe(ctx, path)
		if err == nil {
			return info, nil
		}
		errs = append(errs, err.Error())
	}

	if o.generic != nil {
		info, err := o.generic.Probe(ctx, path)
		if err == nil {
			return info, nil
		}
		errs = append(errs, err.Error())
	}

	if len(errs) == 0 {
		return ports.ContainerInfo{}, fmt.Errorf("no prober available for %s", ext)
	}
	return ports.ContainerInfo{}, fmt.Errorf("probe %s: %s", filepath.Base(path), strings.Join(errs, "; "))
}

func (o *Opener) metadata(info ports.ContainerInfo) ports.VideoMetadata {
	if o.opts.Mode == ports.CountMetadata && info.DurationFrames() == 0 {
		o.logger.Debug("Container duration unavailable, using decoder frame count")
	}
	return ports.VideoMetadata{
		TotalFrames: info.TotalFrames(o.opts.Mode),
		FPS:         info.FPS,
		Width:       info.Width,
		Height:      info.Height,
		Codec:       info.Codec,
	}
}

var _ ports.SourceOpener = (*Opener)(nil)
