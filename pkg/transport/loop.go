package transport

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/user/framescope/pkg/cursor"
	"github.com/user/framescope/pkg/ports"
)

// DefaultFPS paces playback for streams that report no frame rate.
const DefaultFPS = 30.0

// Ticker is the subset of time.Ticker the loop uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker adapts time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Display describes how frames are pushed to the sink.
type Display struct {
	Sink     ports.DisplaySink
	Renderer ports.Renderer
	// Height scales frames to this height keeping the aspect ratio;
	// 0 shows frames at their native size.
	Height  int
	Format  ports.ImageFormat
	Quality int
}

// LoopOptions configures a Loop. Zero values select defaults.
type LoopOptions struct {
	DefaultFPS float64
	NewTicker  func(time.Duration) Ticker
	// OnView is called after every state change, from the loop goroutine.
	OnView func(View)
}

// Loop serialises intents and playback ticks onto one goroutine.
type Loop struct {
	ctrl    *Controller
	display Display
	opts    LoopOptions
	logger  ports.Logger

	ticker   Ticker
	tickC    <-chan time.Time
	interval time.Duration
}

// NewLoop creates a loop around ctrl.
func NewLoop(ctrl *Controller, display Display, opts LoopOptions, logger ports.Logger) *Loop {
	if opts.DefaultFPS <= 0 {
		opts.DefaultFPS = DefaultFPS
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	return &Loop{
		ctrl:    ctrl,
		display: display,
		opts:    opts,
		logger:  logger.WithComponent("loop"),
	}
}

// Interval returns the tick period for a stream at fps.
func Interval(fps, fallback float64) time.Duration {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		fps = fallback
	}
	return time.Duration(float64(time.Second) / fps)
}

// Run processes intents until ctx is cancelled or intents is closed. Each
// turn handles at most one intent and then at most one tick. The tick
// channel is only armed while playing.
func (l *Loop) Run(ctx context.Context, intents <-chan Intent) error {
	defer l.stopTicker()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case in, ok := <-intents:
			if !ok {
				return nil
			}
			view, err := l.ctrl.Handle(ctx, in)
			l.report(in.String(), err)
			l.present(view)

			select {
			case <-l.tickC:
				l.tick(ctx)
			default:
			}

		case <-l.tickC:
			l.tick(ctx)
		}

		l.syncTicker()
	}
}

func (l *Loop) tick(ctx context.Context) {
	view, changed, err := l.ctrl.Tick(ctx)
	l.report("tick", err)
	if changed {
		l.present(view)
	}
}

func (l *Loop) syncTicker() {
	if !l.ctrl.Playing() {
		l.stopTicker()
		return
	}

	interval := Interval(l.ctrl.FPS(), l.opts.DefaultFPS)
	if l.ticker != nil && interval == l.interval {
		return
	}
	l.stopTicker()
	l.logger.Debug("Tick interval %s", interval.String())
	l.ticker = l.opts.NewTicker(interval)
	l.tickC = l.ticker.C()
	l.interval = interval
}

func (l *Loop) stopTicker() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	l.ticker, l.tickC, l.interval = nil, nil, 0
}

func (l *Loop) report(what string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrEndOfStream), errors.Is(err, ports.ErrSeekOutOfRange), errors.Is(err, cursor.ErrNoVideo):
		l.logger.Debug("%s: %s", what, err.Error())
	default:
		l.logger.Warn("%s failed: %s", what, err.Error())
	}
}

// present pushes the view's frame to the display and notifies OnView.
func (l *Loop) present(view View) {
	if l.opts.OnView != nil {
		l.opts.OnView(view)
	}
	if view.Frame == nil || l.display.Sink == nil {
		return
	}
	if t, ok := l.display.Sink.(ports.Toggleable); ok && !t.Enabled() {
		return
	}

	img := view.Frame
	b := img.Bounds()
	if h := l.display.Height; h > 0 && h != b.Dy() && b.Dy() > 0 {
		w := int(math.Round(float64(b.Dx()) * float64(h) / float64(b.Dy())))
		if w < 1 {
			w = 1
		}
		img = l.display.Renderer.ResizeImage(img, w, h)
	}

	data, err := l.display.Renderer.EncodeImage(img, l.display.Format, l.display.Quality)
	if err != nil {
		l.logger.Warn("Display update failed: %s", err.Error())
		return
	}
	l.display.Sink.Show(data)
}
