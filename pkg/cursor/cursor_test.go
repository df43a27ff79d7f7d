package cursor

import (
	"errors"
	"testing"

	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/mocks"
	"github.com/user/framescope/pkg/ports"
)

func newCursor(t *testing.T, frames int) (*Cursor, *mocks.FrameSource) {
	t.Helper()
	src := mocks.NewFrameSource(frames, 30)
	return New(src, logger.NewNoop()), src
}

func assertFrame(t *testing.T, res Result, err error, want int) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK {
		t.Fatalf("expected OK result for frame %d", want)
	}
	if res.Index != want {
		t.Errorf("expected index %d, got %d", want, res.Index)
	}
	if got := mocks.FrameIndexOf(res.Frame); got != want {
		t.Errorf("expected displayed frame %d, got %d", want, got)
	}
}

func TestNew_StartsPausedAtZero(t *testing.T) {
	c, src := newCursor(t, 10)

	state := c.State()
	if state.Index != 0 || state.Playing {
		t.Errorf("expected paused at 0, got %+v", state)
	}
	if src.Position() != 0 {
		t.Errorf("expected source at 0, got %d", src.Position())
	}
	if c.Metadata().TotalFrames != 10 {
		t.Errorf("expected 10 frames, got %d", c.Metadata().TotalFrames)
	}
}

func TestNoVideo(t *testing.T) {
	c := New(nil, logger.NewNoop())

	if c.Loaded() {
		t.Error("expected no source")
	}
	for name, op := range map[string]func() (Result, error){
		"next":     c.Next,
		"previous": c.Previous,
		"scrub":    func() (Result, error) { return c.Scrub(3) },
	} {
		if _, err := op(); !errors.Is(err, ErrNoVideo) {
			t.Errorf("%s: expected ErrNoVideo, got %v", name, err)
		}
	}
	if c.TogglePlay() {
		t.Error("toggle without video should stay paused")
	}
	if res, err := c.Tick(); err != nil || res.OK {
		t.Errorf("tick without video should be idle, got %+v %v", res, err)
	}
}

func TestNext_FromLoadShowsFirstFrame(t *testing.T) {
	c, _ := newCursor(t, 5)

	res, err := c.Next()
	assertFrame(t, res, err, 0)
}

func TestNext_Sequential(t *testing.T) {
	c, src := newCursor(t, 5)

	for want := 0; want < 5; want++ {
		res, err := c.Next()
		assertFrame(t, res, err, want)
		if src.Position() != want+1 {
			t.Errorf("raw cursor should be %d after showing %d, got %d", want+1, want, src.Position())
		}
	}
}

func TestNext_EndOfStream(t *testing.T) {
	c, _ := newCursor(t, 3)

	res, err := c.Scrub(2)
	assertFrame(t, res, err, 2)

	res, err = c.Next()
	if !errors.Is(err, ports.ErrEndOfStream) {
		t.Fatalf("expected ErrEndOfStream, got %v", err)
	}
	if res.OK {
		t.Error("expected failed result at end of stream")
	}
	if c.Index() != 2 {
		t.Errorf("index should stay at 2, got %d", c.Index())
	}
}

func TestNext_StopsAtAuthoritativeTotal(t *testing.T) {
	src := mocks.NewFrameSource(6, 30)
	src.Meta.TotalFrames = 4
	c := New(src, logger.NewNoop())

	if _, err := c.Scrub(3); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if _, err := c.Next(); !errors.Is(err, ports.ErrEndOfStream) {
		t.Errorf("expected ErrEndOfStream past metadata total, got %v", err)
	}
}

func TestNext_UnreadableFrameLeavesIndex(t *testing.T) {
	c, src := newCursor(t, 5)
	src.Unreadable = map[int]bool{3: true}

	if _, err := c.Scrub(2); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if _, err := c.Next(); !errors.Is(err, ports.ErrEndOfStream) {
		t.Fatalf("expected ErrEndOfStream for unreadable frame, got %v", err)
	}
	if c.Index() != 2 {
		t.Errorf("index should stay at 2, got %d", c.Index())
	}
}

func TestNext_ResyncsAfterExternalSeek(t *testing.T) {
	c, src := newCursor(t, 10)

	if _, err := c.Scrub(5); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	src.SetPosition(0)

	res, err := c.Next()
	assertFrame(t, res, err, 6)
}

func TestNext_ResyncsAfterFailedScrub(t *testing.T) {
	c, src := newCursor(t, 10)
	src.Unreadable = map[int]bool{7: true}

	if _, err := c.Scrub(4); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if _, err := c.Scrub(7); !errors.Is(err, ports.ErrEndOfStream) {
		t.Fatalf("expected failed scrub, got %v", err)
	}

	res, err := c.Next()
	assertFrame(t, res, err, 5)
}

func TestPrevious_StepsBackOneFrame(t *testing.T) {
	c, src := newCursor(t, 10)

	if _, err := c.Scrub(5); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	src.Seeks = nil

	res, err := c.Previous()
	assertFrame(t, res, err, 4)

	if len(src.Seeks) != 1 || src.Seeks[0] != 4 {
		t.Errorf("expected a single seek to raw-2 = 4, got %v", src.Seeks)
	}
	if src.Position() != 5 {
		t.Errorf("raw cursor should be one past the displayed frame, got %d", src.Position())
	}
}

func TestPrevious_RepeatedToStart(t *testing.T) {
	c, _ := newCursor(t, 10)

	if _, err := c.Scrub(3); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	for _, want := range []int{2, 1, 0, 0, 0} {
		res, err := c.Previous()
		assertFrame(t, res, err, want)
	}
}

func TestPrevious_AtFirstFrameNeverSeeksNegative(t *testing.T) {
	c, src := newCursor(t, 10)

	if _, err := c.Scrub(0); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}

	res, err := c.Previous()
	assertFrame(t, res, err, 0)

	for _, s := range src.Seeks {
		if s < 0 {
			t.Errorf("negative seek target %d", s)
		}
	}
}

func TestPrevious_BeforeAnyFrame(t *testing.T) {
	c, src := newCursor(t, 10)

	res, err := c.Previous()
	assertFrame(t, res, err, 0)

	for _, s := range src.Seeks {
		if s < 0 {
			t.Errorf("negative seek target %d", s)
		}
	}
}

func TestPrevious_EveryPosition(t *testing.T) {
	const total = 12
	c, _ := newCursor(t, total)

	for i := 0; i < total; i++ {
		if _, err := c.Scrub(i); err != nil {
			t.Fatalf("Scrub(%d) failed: %v", i, err)
		}
		want := i - 1
		if want < 0 {
			want = 0
		}
		res, err := c.Previous()
		assertFrame(t, res, err, want)
	}
}

func TestPrevious_ThenNextNeitherRepeatsNorSkips(t *testing.T) {
	c, _ := newCursor(t, 10)

	if _, err := c.Scrub(6); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	res, err := c.Previous()
	assertFrame(t, res, err, 5)

	res, err = c.Next()
	assertFrame(t, res, err, 6)

	res, err = c.Next()
	assertFrame(t, res, err, 7)
}

func TestPrevious_AtLastFrame(t *testing.T) {
	c, _ := newCursor(t, 5)

	if _, err := c.Scrub(4); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	res, err := c.Previous()
	assertFrame(t, res, err, 3)
}

func TestScrub_RoundTrip(t *testing.T) {
	const total = 40
	c, _ := newCursor(t, total)

	for i := 0; i < total; i++ {
		res, err := c.Scrub(i)
		assertFrame(t, res, err, i)
		if c.Index() != i {
			t.Errorf("Index() after Scrub(%d) = %d", i, c.Index())
		}
	}
}

func TestScrub_Idempotent(t *testing.T) {
	c, _ := newCursor(t, 20)

	first, err := c.Scrub(11)
	assertFrame(t, first, err, 11)

	second, err := c.Scrub(11)
	assertFrame(t, second, err, 11)
}

func TestScrub_ZeroOnLongStream(t *testing.T) {
	c, _ := newCursor(t, 2375)

	if c.Metadata().TotalFrames != 2375 {
		t.Fatalf("expected 2375 frames, got %d", c.Metadata().TotalFrames)
	}
	res, err := c.Scrub(0)
	assertFrame(t, res, err, 0)
	if c.Index() != 0 {
		t.Errorf("expected index 0 after Scrub(0), got %d", c.Index())
	}
}

func TestScrub_ClampsOutOfRange(t *testing.T) {
	tests := []struct {
		target int
		want   int
	}{
		{-5, 0},
		{-1, 0},
		{10, 9},
		{1000, 9},
	}

	for _, tt := range tests {
		c, _ := newCursor(t, 10)

		res, err := c.Scrub(tt.target)
		if !errors.Is(err, ports.ErrSeekOutOfRange) {
			t.Errorf("Scrub(%d): expected ErrSeekOutOfRange, got %v", tt.target, err)
		}
		if !res.OK || res.Index != tt.want || mocks.FrameIndexOf(res.Frame) != tt.want {
			t.Errorf("Scrub(%d): expected clamped frame %d, got %+v", tt.target, tt.want, res)
		}
	}
}

func TestScrub_DoesNotChangePlayFlag(t *testing.T) {
	c, _ := newCursor(t, 10)
	c.Play()

	if _, err := c.Scrub(4); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	if !c.IsPlaying() {
		t.Error("scrub should not pause playback")
	}
}

func TestTogglePlay(t *testing.T) {
	c, _ := newCursor(t, 10)
	if _, err := c.Scrub(3); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}

	if !c.TogglePlay() {
		t.Error("expected Playing after first toggle")
	}
	if c.TogglePlay() {
		t.Error("expected Paused after second toggle")
	}
	if c.Index() != 3 {
		t.Errorf("toggle should not move the index, got %d", c.Index())
	}

	c.Play()
	c.Play()
	if !c.IsPlaying() {
		t.Error("Play should be idempotent")
	}
	c.Pause()
	if c.IsPlaying() {
		t.Error("Pause should stop playback")
	}
}

func TestTick_PausedIsNoop(t *testing.T) {
	c, src := newCursor(t, 10)

	res, err := c.Tick()
	if err != nil || res.OK {
		t.Errorf("paused tick should be idle, got %+v %v", res, err)
	}
	if src.Reads != 0 {
		t.Errorf("paused tick should not read, got %d reads", src.Reads)
	}
}

func TestTick_AdvancesWhilePlaying(t *testing.T) {
	c, _ := newCursor(t, 10)
	if _, err := c.Scrub(2); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	c.Play()

	for want := 3; want < 6; want++ {
		res, err := c.Tick()
		assertFrame(t, res, err, want)
	}
}

func TestTick_EndOfStreamPauses(t *testing.T) {
	c, _ := newCursor(t, 3)
	c.Play()

	for want := 0; want < 3; want++ {
		res, err := c.Tick()
		assertFrame(t, res, err, want)
	}

	_, err := c.Tick()
	if !errors.Is(err, ports.ErrEndOfStream) {
		t.Fatalf("expected ErrEndOfStream, got %v", err)
	}
	if c.IsPlaying() {
		t.Error("playback should pause at end of stream")
	}
	if c.Index() != 2 {
		t.Errorf("index should stay on last frame, got %d", c.Index())
	}

	if _, err := c.Tick(); err != nil {
		t.Errorf("tick after auto-pause should be idle, got %v", err)
	}
}

func TestReload_ResetsStateAndClosesOldSource(t *testing.T) {
	c, oldSrc := newCursor(t, 10)
	if _, err := c.Scrub(7); err != nil {
		t.Fatalf("Scrub failed: %v", err)
	}
	c.Play()

	newSrc := mocks.NewFrameSource(4, 25)
	c.Reload(newSrc)

	if !oldSrc.Closed() {
		t.Error("old source should be closed")
	}
	state := c.State()
	if state.Index != 0 || state.Playing {
		t.Errorf("expected paused at 0 after reload, got %+v", state)
	}
	if c.Metadata().TotalFrames != 4 || c.Metadata().FPS != 25 {
		t.Errorf("metadata should come from the new source, got %+v", c.Metadata())
	}

	res, err := c.Next()
	assertFrame(t, res, err, 0)
	if oldSrc.Reads != 1 {
		t.Errorf("old source should not be read after reload, got %d reads", oldSrc.Reads)
	}
}

func TestReload_IntoEmptyCursor(t *testing.T) {
	c := New(nil, logger.NewNoop())
	c.Reload(mocks.NewFrameSource(3, 30))

	res, err := c.Scrub(1)
	assertFrame(t, res, err, 1)
}

func TestClose(t *testing.T) {
	c, src := newCursor(t, 3)

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !src.Closed() {
		t.Error("source should be closed")
	}
	if c.Loaded() {
		t.Error("cursor should be empty after Close")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}
