// Package main provides the CLI entry point for framescope.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framescope/pkg/adapters/consoleui"
	"github.com/user/framescope/pkg/adapters/filesource"
	"github.com/user/framescope/pkg/adapters/ggrenderer"
	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/adapters/nulldisplay"
	"github.com/user/framescope/pkg/adapters/osfilesystem"
	"github.com/user/framescope/pkg/adapters/previewsink"
	"github.com/user/framescope/pkg/adapters/procdetector"
	"github.com/user/framescope/pkg/adapters/snapshot"
	"github.com/user/framescope/pkg/config"
	"github.com/user/framescope/pkg/cursor"
	"github.com/user/framescope/pkg/filter"
	"github.com/user/framescope/pkg/ports"
	"github.com/user/framescope/pkg/summarizer"
	"github.com/user/framescope/pkg/transport"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "framescope",
		Usage:   l10n.T("Review video files frame by frame"),
		Version: version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			infoCommand(),
			snapshotCommand(),
			reviewCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err.Error()))
		os.Exit(1)
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: l10n.T("Configuration")},
		&cli.StringFlag{Name: "backend", Usage: l10n.T("Decoder backend (ffmpeg, opencv)"), Category: l10n.T("Decoding")},
		&cli.StringFlag{Name: "frame-count", Usage: l10n.T("Frame count source (metadata, native)"), Category: l10n.T("Decoding")},
		&cli.StringFlag{Name: "ffmpeg-path", Usage: l10n.T("Path to ffmpeg (falls back to FFMPEG_PATH env, then PATH)"), Category: l10n.T("Decoding")},
		&cli.StringFlag{Name: "ffprobe-path", Usage: l10n.T("Path to ffprobe (falls back to FFPROBE_PATH env, then PATH)"), Category: l10n.T("Decoding")},
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)"), Category: l10n.T("Logging")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T("Logging")},
	}
}

// session bundles the collaborators shared by the subcommands.
type session struct {
	cfg      config.Config
	log      ports.Logger
	fs       *osfilesystem.FileSystem
	renderer *ggrenderer.Renderer
	opener   *filesource.Opener
}

// newSession loads configuration, applies flag overrides and builds the
// adapters every command needs.
func newSession(c *cli.Context) (*session, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	overrides := map[string]*string{
		"backend":      &cfg.Backend,
		"frame-count":  &cfg.FrameCount,
		"ffmpeg-path":  &cfg.FFmpegPath,
		"ffprobe-path": &cfg.FFprobePath,
		"log-level":    &cfg.LogLevel,
		"filter":       &cfg.Filter,
		"display":      &cfg.Display.Path,
		"snapshot-dir": &cfg.SnapshotDir,
		"detector":     &cfg.Detector.Command,
	}
	for name, dst := range overrides {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	if c.IsSet("display-height") {
		cfg.Display.Height = c.Int("display-height")
	}
	if c.IsSet("detector-protocol") {
		cfg.Detector.Protocol = c.String("detector-protocol")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(cfg.Level())
	}

	return &session{
		cfg:      cfg,
		log:      log,
		fs:       osfilesystem.New(),
		renderer: ggrenderer.New(),
		opener:   filesource.New(cfg.ToSourceOptions(log)),
	}, nil
}

// detector starts nothing yet; the process is spawned on first use.
// The returned close func is always safe to call.
func (s *session) detector() (ports.Detector, func(), error) {
	if s.cfg.Detector.Command == "" {
		return nil, func() {}, nil
	}
	det, err := procdetector.New(s.cfg.ToDetectorConfig(), s.renderer, s.log)
	if err != nil {
		return nil, func() {}, err
	}
	closeFn := func() {
		if err := det.Close(); err != nil {
			s.log.Warn("Close failed: %s", err.Error())
		}
	}
	return det, closeFn, nil
}

func (s *session) controller(det ports.Detector) *transport.Controller {
	pipeline := filter.New(det, s.renderer, s.log)
	pipeline.SetSelection(s.cfg.Selection())
	pipeline.SetBoxColor(config.ParseColor(s.cfg.BoxColor))

	return transport.NewController(
		cursor.New(nil, s.log),
		pipeline,
		s.opener,
		snapshot.New(s.cfg.SnapshotDir, s.fs, s.renderer),
		s.log,
	)
}

// signalContext cancels on SIGINT/SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     l10n.T("Show stream information for a video file"),
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "markdown", Aliases: []string{"m"}, Usage: l10n.T("Write the report as Markdown to this path")},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(l10n.T("info requires exactly one video file"), 2)
			}
			s, err := newSession(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(s.log)
			defer cancel()
			return runInfo(ctx, s, c.Args().First(), c.String("markdown"))
		},
	}
}

func runInfo(ctx context.Context, s *session, path, markdownPath string) error {
	info, err := s.opener.Probe(ctx, path)
	if err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrIO, err)
	}

	builder := summarizer.NewBuilder().
		WithFile(path, st.Size()).
		WithBackend(string(s.opener.Backend())).
		WithContainer(info, s.opener.Mode())

	// The decoder may know a better total than the probe (opencv backend).
	if src, err := s.opener.Open(ctx, path); err == nil {
		builder.WithTotal(src.Metadata().TotalFrames)
		src.Close()
	} else {
		s.log.Debug("Load failed, keeping current video: %s", err.Error())
	}

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	summary := builder.Build()

	if markdownPath == "" {
		fmt.Print(formatter.Format(summary))
		return nil
	}
	if err := summarizer.NewWriter(formatter, s.fs).Write(markdownPath, summary); err != nil {
		return err
	}
	s.log.Info("Report saved to %s", markdownPath)
	return nil
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     l10n.T("Save one frame of a video as PNG"),
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "frame", Aliases: []string{"f"}, Usage: l10n.T("Frame index to save")},
			&cli.StringFlag{Name: "filter", Usage: l10n.T("Filter to apply (none, gray, object_detection, detect_edges)")},
			&cli.StringFlag{Name: "snapshot-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for saved frames")},
			&cli.StringFlag{Name: "detector", Usage: l10n.T("Object detector command")},
			&cli.StringFlag{Name: "detector-protocol", Usage: l10n.T("Detector protocol (json, msgpack)")},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(l10n.T("snapshot requires exactly one video file"), 2)
			}
			s, err := newSession(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(s.log)
			defer cancel()

			det, closeDet, err := s.detector()
			if err != nil {
				return err
			}
			defer closeDet()

			path, err := runSnapshot(ctx, s.controller(det), c.Args().First(), c.Int("frame"))
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

// runSnapshot loads file, scrubs to frame and saves what is displayed there.
func runSnapshot(ctx context.Context, ctrl *transport.Controller, file string, frame int) (string, error) {
	defer ctrl.Close()

	if _, err := ctrl.Handle(ctx, transport.Open(file)); err != nil {
		return "", err
	}
	view, err := ctrl.Handle(ctx, transport.Seek(frame))
	if err != nil && view.Frame == nil {
		return "", err
	}
	view, err = ctrl.Handle(ctx, transport.Snapshot())
	if err != nil {
		return "", err
	}
	return view.Snapshot, nil
}

func reviewCommand() *cli.Command {
	return &cli.Command{
		Name:      "review",
		Usage:     l10n.T("Step through a video interactively"),
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Usage: l10n.T("Filter to apply (none, gray, object_detection, detect_edges)")},
			&cli.StringFlag{Name: "display", Aliases: []string{"d"}, Usage: l10n.T("Preview image updated with every displayed frame")},
			&cli.IntFlag{Name: "display-height", Usage: l10n.T("Preview height in pixels (0 = video height)")},
			&cli.StringFlag{Name: "snapshot-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for saved frames")},
			&cli.StringFlag{Name: "detector", Usage: l10n.T("Object detector command")},
			&cli.StringFlag{Name: "detector-protocol", Usage: l10n.T("Detector protocol (json, msgpack)")},
		},
		Action: func(c *cli.Context) error {
			s, err := newSession(c)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(s.log)
			defer cancel()

			det, closeDet, err := s.detector()
			if err != nil {
				return err
			}
			defer closeDet()

			return runReview(ctx, s, s.controller(det), consoleui.NewStdio(), c.Args().First())
		},
	}
}

func runReview(ctx context.Context, s *session, ctrl *transport.Controller, console *consoleui.Console, file string) error {
	defer ctrl.Close()

	var sink ports.DisplaySink = nulldisplay.New()
	if s.cfg.Display.Path != "" {
		sink = previewsink.New(s.cfg.Display.Path, s.fs, s.log)
	}

	loop := transport.NewLoop(ctrl, transport.Display{
		Sink:     sink,
		Renderer: s.renderer,
		Height:   s.cfg.Display.Height,
		Format:   s.cfg.DisplayFormat(),
		Quality:  s.cfg.Display.Quality,
	}, transport.LoopOptions{
		DefaultFPS: s.cfg.DefaultFPS,
		OnView:     console.Status,
	}, s.log)

	if file == "" {
		picked, ok := console.PickFile()
		if !ok {
			return nil
		}
		file = picked
	}

	console.Help()
	intents := make(chan transport.Intent)
	go func() {
		defer close(intents)
		select {
		case intents <- transport.Open(file):
		case <-ctx.Done():
			return
		}
		for in := range console.Intents(ctx) {
			select {
			case intents <- in:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := loop.Run(ctx, intents); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("framescope version %s", version))
			return nil
		},
	}
}
