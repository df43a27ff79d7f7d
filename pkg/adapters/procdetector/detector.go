// Package procdetector runs an object detection model as a child process
// and exchanges one request and one response per frame over its stdio.
package procdetector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/ports"
)

var (
	// ErrNoCommand is returned when no detector command is configured.
	ErrNoCommand = errors.New("procdetector: no command configured")
	// ErrTimeout is returned when the process does not answer in time.
	ErrTimeout = errors.New("procdetector: detector did not respond in time")
)

// DefaultTimeout bounds one request/response exchange.
const DefaultTimeout = 10 * time.Second

// Config configures a Detector.
type Config struct {
	Command string
	Args    []string
	// Env is appended to the current environment of the child.
	Env []string
	// Confidence drops detections scored below it.
	Confidence float64
	Protocol   Protocol
	Timeout    time.Duration
	// JPEGQuality is used to encode frames for transport.
	JPEGQuality int
}

// Detector implements ports.Detector. It is not safe for concurrent use;
// a single control loop owns it.
type Detector struct {
	cfg        Config
	renderer   ports.Renderer
	logger     ports.Logger
	instanceID string
	seq        uint64

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	exited chan struct{}
}

// New creates a Detector. The process is started on the first Infer.
func New(cfg Config, renderer ports.Renderer, log ports.Logger) (*Detector, error) {
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, ErrNoCommand
	}
	if cfg.Protocol == "" {
		cfg.Protocol = ProtocolJSON
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = 90
	}
	if log == nil {
		log = logger.NewNoop()
	}

	return &Detector{
		cfg:        cfg,
		renderer:   renderer,
		logger:     log.WithComponent("detector"),
		instanceID: uuid.NewString(),
	}, nil
}

// InstanceID identifies this detector in every request it sends.
func (d *Detector) InstanceID() string {
	return d.instanceID
}

// Infer sends img to the detector process and returns its detections.
// A timed-out or broken process is killed and restarted on the next call.
func (d *Detector) Infer(ctx context.Context, img image.Image) ([]ports.Detection, error) {
	if err := d.start(); err != nil {
		return nil, err
	}

	frame, err := d.renderer.EncodeImage(img, ports.FormatJPEG, d.cfg.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	d.seq++
	b := img.Bounds()
	req := Request{
		FrameData: frame,
		Width:     b.Dx(),
		Height:    b.Dy(),
		Seq:       d.seq,
		Meta: RequestMeta{
			InstanceID: d.instanceID,
			Confidence: d.cfg.Confidence,
		},
	}

	type result struct {
		resp Response
		err  error
	}
	done := make(chan result, 1)
	stdin, stdout := d.stdin, d.stdout
	go func() {
		var r result
		if r.err = WriteMessage(stdin, d.cfg.Protocol, req); r.err == nil {
			r.err = ReadMessage(stdout, d.cfg.Protocol, &r.resp)
		}
		done <- r
	}()

	timer := time.NewTimer(d.cfg.Timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			d.kill()
			return nil, fmt.Errorf("detector exchange: %w", r.err)
		}
		if r.resp.Error != "" {
			return nil, fmt.Errorf("detector: %s", r.resp.Error)
		}
		return d.convert(r.resp.Detections), nil
	case <-timer.C:
		d.kill()
		return nil, ErrTimeout
	case <-ctx.Done():
		d.kill()
		return nil, ctx.Err()
	}
}

func (d *Detector) convert(boxes []WireBox) []ports.Detection {
	out := make([]ports.Detection, 0, len(boxes))
	for _, b := range boxes {
		if b.Confidence < d.cfg.Confidence {
			continue
		}
		out = append(out, ports.Detection{
			MinX:       b.X1,
			MinY:       b.Y1,
			MaxX:       b.X2,
			MaxY:       b.Y2,
			ClassName:  b.ClassName,
			Confidence: b.Confidence,
		})
	}
	return out
}

func (d *Detector) start() error {
	if d.cmd != nil {
		select {
		case <-d.exited:
			d.reset()
		default:
			return nil
		}
	}

	d.logger.Debug("Starting detector: %s", d.cfg.Command)

	cmd := exec.Command(d.cfg.Command, d.cfg.Args...)
	if len(d.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), d.cfg.Env...)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detector: %w", err)
	}

	d.cmd = cmd
	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.exited = make(chan struct{})

	go d.logStderr(stderr)
	go func(cmd *exec.Cmd, exited chan struct{}) {
		cmd.Wait()
		close(exited)
	}(cmd, d.exited)

	return nil
}

func (d *Detector) logStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		d.logger.Debug("Detector stderr: %s", scanner.Text())
	}
}

func (d *Detector) kill() {
	if d.cmd == nil {
		return
	}
	if d.cmd.Process != nil {
		d.cmd.Process.Kill()
	}
	<-d.exited
	d.reset()
}

func (d *Detector) reset() {
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil
	d.exited = nil
}

// Close closes the process's stdin and waits briefly for it to exit
// before killing it.
func (d *Detector) Close() error {
	if d.cmd == nil {
		return nil
	}
	d.stdin.Close()

	select {
	case <-d.exited:
		d.reset()
	case <-time.After(2 * time.Second):
		d.kill()
	}
	return nil
}

var _ ports.Detector = (*Detector)(nil)
