// Package cursor implements the playback state machine that owns the
// authoritative "current frame" of a review session.
//
// A ports.FrameSource advances its raw cursor as a side effect of reading,
// so after frame i has been displayed the raw cursor sits at i+1. Every
// compensation for that offset lives in this package; callers only ever
// see the index of the frame that is on screen.
package cursor

import (
	"errors"
	"image"

	"github.com/user/framescope/pkg/ports"
)

// ErrNoVideo is returned by frame operations before any source is loaded.
var ErrNoVideo = errors.New("cursor: no video loaded")

// State is the externally visible playback state.
type State struct {
	// Index is the index of the displayed frame, 0 right after a load.
	Index   int
	Playing bool
}

// Result is the outcome of a frame-producing operation.
type Result struct {
	OK    bool
	Frame image.Image
	Index int
}

// session groups everything that belongs to one loaded source. Reload
// replaces it with a single assignment so metadata, source and index can
// never come from different files.
type session struct {
	src   ports.FrameSource
	meta  ports.VideoMetadata
	state State
	// shown is false until the first frame of the source has been read.
	shown bool
}

func newSession(src ports.FrameSource) *session {
	src.Seek(0)
	return &session{
		src:  src,
		meta: src.Metadata(),
	}
}

// expectedRaw is where the raw cursor must be for the next sequential read
// to return the frame after the displayed one.
func (s *session) expectedRaw() int {
	if !s.shown {
		return s.state.Index
	}
	return s.state.Index + 1
}

// Cursor is the playback state machine. It is not safe for concurrent use;
// a single control loop owns it.
type Cursor struct {
	s      *session
	logger ports.Logger
}

// New creates a cursor over src, paused at frame 0. src may be nil, in
// which case every frame operation returns ErrNoVideo until Reload.
func New(src ports.FrameSource, logger ports.Logger) *Cursor {
	c := &Cursor{logger: logger.WithComponent("cursor")}
	if src != nil {
		c.s = newSession(src)
	}
	return c
}

// Loaded reports whether a source is attached.
func (c *Cursor) Loaded() bool {
	return c.s != nil
}

// State returns the current index and play flag.
func (c *Cursor) State() State {
	if c.s == nil {
		return State{}
	}
	return c.s.state
}

// Index returns the index of the displayed frame.
func (c *Cursor) Index() int {
	return c.State().Index
}

// IsPlaying reports whether sequential ticks advance playback.
func (c *Cursor) IsPlaying() bool {
	return c.State().Playing
}

// Metadata returns the metadata of the loaded source.
func (c *Cursor) Metadata() ports.VideoMetadata {
	if c.s == nil {
		return ports.VideoMetadata{}
	}
	return c.s.meta
}

// TogglePlay flips between Paused and Playing and returns the new flag.
func (c *Cursor) TogglePlay() bool {
	if c.s == nil {
		return false
	}
	c.setPlaying(!c.s.state.Playing)
	return c.s.state.Playing
}

// Play switches to Playing.
func (c *Cursor) Play() {
	if c.s != nil {
		c.setPlaying(true)
	}
}

// Pause switches to Paused.
func (c *Cursor) Pause() {
	if c.s != nil {
		c.setPlaying(false)
	}
}

func (c *Cursor) setPlaying(playing bool) {
	if c.s.state.Playing == playing {
		return
	}
	c.s.state.Playing = playing
	if playing {
		c.logger.Debug("Playback started")
	} else {
		c.logger.Debug("Playback paused")
	}
}

// Next reads the frame after the displayed one. At the end of the stream
// the index is left unchanged and ports.ErrEndOfStream is returned.
func (c *Cursor) Next() (Result, error) {
	s := c.s
	if s == nil {
		return Result{}, ErrNoVideo
	}

	c.resync(s)
	if s.meta.TotalFrames > 0 && s.src.Position() >= s.meta.TotalFrames {
		c.logger.Debug("End of stream at frame %d", s.state.Index)
		return Result{Index: s.state.Index}, ports.ErrEndOfStream
	}
	return c.readCurrent(s)
}

// Previous steps one frame back. The raw cursor is one past the displayed
// frame, so the target is raw-2. At the first frame it clamps to frame 0
// and returns it without error.
func (c *Cursor) Previous() (Result, error) {
	s := c.s
	if s == nil {
		return Result{}, ErrNoVideo
	}

	c.resync(s)
	target := s.src.Position() - 2
	if target < 0 {
		target = 0
	}
	c.logger.Debug("Seek to frame %d", target)
	s.src.Seek(target)
	return c.readCurrent(s)
}

// Scrub jumps to target and displays exactly that frame. Targets outside
// [0, TotalFrames) are clamped; the clamped frame is still returned,
// together with ports.ErrSeekOutOfRange.
func (c *Cursor) Scrub(target int) (Result, error) {
	s := c.s
	if s == nil {
		return Result{}, ErrNoVideo
	}

	index := clamp(target, s.meta.TotalFrames)
	if index != target {
		c.logger.Debug("Seek target %d clamped to %d", target, index)
	}

	c.logger.Debug("Seek to frame %d", index)
	s.src.Seek(index)
	img, ok := s.src.ReadNext()
	if !ok {
		c.logger.Debug("End of stream at frame %d", index)
		return Result{Index: s.state.Index}, ports.ErrEndOfStream
	}
	s.state.Index = index
	s.shown = true

	res := Result{OK: true, Frame: img, Index: index}
	if index != target {
		return res, ports.ErrSeekOutOfRange
	}
	return res, nil
}

// Tick advances playback by one frame while playing. Paused ticks are
// no-ops. Reaching the end of the stream pauses playback.
func (c *Cursor) Tick() (Result, error) {
	s := c.s
	if s == nil || !s.state.Playing {
		return Result{Index: c.Index()}, nil
	}

	res, err := c.Next()
	if errors.Is(err, ports.ErrEndOfStream) {
		s.state.Playing = false
		c.logger.Debug("Playback paused at end of stream")
	}
	return res, err
}

// Reload replaces the source and resets to frame 0, paused. The previous
// source is closed.
func (c *Cursor) Reload(src ports.FrameSource) {
	old := c.s
	c.s = newSession(src)
	if old != nil {
		if err := old.src.Close(); err != nil {
			c.logger.Warn("Close failed: %s", err.Error())
		}
	}
}

// Close releases the loaded source.
func (c *Cursor) Close() error {
	if c.s == nil {
		return nil
	}
	s := c.s
	c.s = nil
	return s.src.Close()
}

// readCurrent reads at the raw cursor and derives the displayed index from
// the position the source reports afterwards.
func (c *Cursor) readCurrent(s *session) (Result, error) {
	img, ok := s.src.ReadNext()
	if !ok {
		c.logger.Debug("End of stream at frame %d", s.state.Index)
		return Result{Index: s.state.Index}, ports.ErrEndOfStream
	}
	index := s.src.Position() - 1
	if index < 0 {
		index = 0
	}
	s.state.Index = index
	s.shown = true
	return Result{OK: true, Frame: img, Index: index}, nil
}

// resync moves the raw cursor back in line with the displayed index when
// something else (a failed scrub, an external seek) has moved it.
func (c *Cursor) resync(s *session) {
	want := s.expectedRaw()
	if raw := s.src.Position(); raw != want {
		c.logger.Debug("Raw cursor at %d, expected %d; resyncing", raw, want)
		s.src.Seek(want)
	}
}

func clamp(index, total int) int {
	if total > 0 && index >= total {
		index = total - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}
