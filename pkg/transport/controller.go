// Package transport routes user intents to the playback cursor and filter
// pipeline and drives timed playback from a single goroutine.
package transport

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framescope/pkg/cursor"
	"github.com/user/framescope/pkg/filter"
	"github.com/user/framescope/pkg/ports"
	"github.com/user/framescope/pkg/timefmt"
)

// View is everything a front end needs to render the current state.
type View struct {
	Path        string
	Frame       image.Image
	Index       int
	TotalFrames int
	FPS         float64
	Elapsed     string
	Remaining   string
	Duration    string
	Playing     bool
	Filter      filter.Selection
	// Snapshot is the path written by the last Snapshot intent.
	Snapshot string
}

// Controller holds handles to the session collaborators and no playback
// state of its own beyond the last decoded frame.
type Controller struct {
	cursor    *cursor.Cursor
	filter    *filter.Pipeline
	opener    ports.SourceOpener
	snapshots ports.SnapshotWriter
	logger    ports.Logger

	path string
	// raw is the last decoded frame; filters are re-applied to it.
	raw image.Image
	// shown is raw after filtering, the frame on screen.
	shown    image.Image
	snapshot string
}

// NewController wires a controller. cur may be empty (no source loaded).
func NewController(cur *cursor.Cursor, pipeline *filter.Pipeline, opener ports.SourceOpener, snapshots ports.SnapshotWriter, logger ports.Logger) *Controller {
	return &Controller{
		cursor:    cur,
		filter:    pipeline,
		opener:    opener,
		snapshots: snapshots,
		logger:    logger.WithComponent("transport"),
	}
}

// Handle applies one intent and returns the resulting view. Informational
// errors (ports.ErrSeekOutOfRange, ports.ErrEndOfStream) come with a
// valid view.
func (c *Controller) Handle(ctx context.Context, in Intent) (View, error) {
	c.snapshot = ""

	switch in.Kind {
	case IntentOpen:
		return c.open(ctx, in.Path)
	case IntentPlay:
		c.cursor.Play()
	case IntentPause:
		c.cursor.Pause()
	case IntentTogglePlay:
		c.cursor.TogglePlay()
	case IntentNext:
		return c.step(ctx, c.cursor.Next)
	case IntentPrevious:
		return c.step(ctx, c.cursor.Previous)
	case IntentSeek:
		return c.step(ctx, func() (cursor.Result, error) { return c.cursor.Scrub(in.Index) })
	case IntentSetFilter:
		c.filter.SetSelection(in.Filter)
		if c.raw != nil {
			c.shown = c.filter.Apply(ctx, c.raw)
		}
	case IntentSnapshot:
		return c.saveSnapshot()
	default:
		return c.View(), fmt.Errorf("transport: unknown intent %d", in.Kind)
	}
	return c.View(), nil
}

// Tick advances playback by one frame. changed reports whether the view
// differs from before the call; it is false for idle ticks.
func (c *Controller) Tick(ctx context.Context) (view View, changed bool, err error) {
	if !c.cursor.IsPlaying() {
		return c.View(), false, nil
	}

	res, err := c.cursor.Tick()
	if res.OK {
		c.setFrame(ctx, res.Frame)
		return c.View(), true, err
	}
	if errors.Is(err, ports.ErrEndOfStream) {
		c.logger.Info("Playback paused at end of stream")
		return c.View(), true, err
	}
	return c.View(), false, err
}

// Playing reports whether timed playback is active.
func (c *Controller) Playing() bool {
	return c.cursor.IsPlaying()
}

// FPS returns the loaded stream's frame rate, 0 when unknown or unloaded.
func (c *Controller) FPS() float64 {
	return c.cursor.Metadata().FPS
}

// View snapshots the current state.
func (c *Controller) View() View {
	meta := c.cursor.Metadata()
	state := c.cursor.State()

	v := View{
		Path:        c.path,
		Frame:       c.shown,
		Index:       state.Index,
		TotalFrames: meta.TotalFrames,
		FPS:         meta.FPS,
		Playing:     state.Playing,
		Filter:      c.filter.Selection(),
		Snapshot:    c.snapshot,
		Elapsed:     timefmt.Zero,
		Remaining:   timefmt.Zero,
		Duration:    timefmt.Zero,
	}
	if c.cursor.Loaded() {
		v.Elapsed = timefmt.Elapsed(state.Index, meta.TotalFrames, meta.FPS)
		v.Remaining = timefmt.Remaining(state.Index, meta.TotalFrames, meta.FPS)
		v.Duration = timefmt.Duration(meta.TotalFrames, meta.FPS)
	}
	return v
}

// Close releases the loaded source.
func (c *Controller) Close() error {
	return c.cursor.Close()
}

func (c *Controller) open(ctx context.Context, path string) (View, error) {
	c.logger.Info("Loading video file: %s", path)

	src, err := c.opener.Open(ctx, path)
	if err != nil {
		c.logger.Error("Load failed, keeping current video: %s", err.Error())
		return c.View(), err
	}

	c.cursor.Reload(src)
	c.path = path
	c.raw, c.shown = nil, nil

	meta := c.cursor.Metadata()
	c.logger.Info("Loaded %s: %d frames at %.2f fps (%s)", filepath.Base(path), meta.TotalFrames, meta.FPS, meta.Codec)

	res, err := c.cursor.Next()
	if res.OK {
		c.setFrame(ctx, res.Frame)
	}
	return c.View(), err
}

func (c *Controller) step(ctx context.Context, op func() (cursor.Result, error)) (View, error) {
	res, err := op()
	if errors.Is(err, cursor.ErrNoVideo) {
		c.logger.Warn("No video loaded")
		return c.View(), err
	}
	if res.OK {
		c.setFrame(ctx, res.Frame)
	}
	return c.View(), err
}

func (c *Controller) setFrame(ctx context.Context, img image.Image) {
	c.raw = img
	c.shown = c.filter.Apply(ctx, img)
}

func (c *Controller) saveSnapshot() (View, error) {
	if c.shown == nil {
		c.logger.Warn("No video loaded")
		return c.View(), cursor.ErrNoVideo
	}

	path, err := c.snapshots.Save(c.shown)
	if err != nil {
		c.logger.Error("Snapshot failed: %s", err.Error())
		return c.View(), err
	}
	c.snapshot = path
	c.logger.Info("Snapshot saved to %s", path)
	return c.View(), nil
}
