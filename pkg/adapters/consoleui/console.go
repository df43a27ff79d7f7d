package consoleui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/framescope/pkg/ports"
	"github.com/user/framescope/pkg/transport"
)

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
)

// Console reads commands from in and prints prompts and status to out.
// Status may be called from another goroutine than the reader.
type Console struct {
	scanner *bufio.Scanner
	color   bool

	mu  sync.Mutex
	out io.Writer
}

// NewStdio creates a console on stdin/stdout, coloured when stdout is a terminal.
func NewStdio() *Console {
	c := New(os.Stdin, os.Stdout)
	fd := os.Stdout.Fd()
	c.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return c
}

// New creates an uncoloured console.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// PickFile prompts for a path. An empty answer or end of input cancels.
func (c *Console) PickFile() (string, bool) {
	c.printf("%s ", l10n.T("Video file:"))
	if !c.scanner.Scan() {
		return "", false
	}
	path := strings.TrimSpace(c.scanner.Text())
	return path, path != ""
}

// Intents reads commands until quit, end of input or ctx is done, and
// emits the matching intents. The channel is closed when reading stops.
func (c *Console) Intents(ctx context.Context) <-chan transport.Intent {
	ch := make(chan transport.Intent)
	go func() {
		defer close(ch)
		for {
			c.printf("> ")
			if !c.scanner.Scan() {
				return
			}
			in, ok, quit := c.interpret(c.scanner.Text())
			if quit {
				return
			}
			if !ok {
				continue
			}
			select {
			case ch <- in:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// interpret parses a line, handling help, pick and errors locally.
func (c *Console) interpret(line string) (in transport.Intent, ok bool, quit bool) {
	if strings.TrimSpace(line) == "" {
		return transport.Intent{}, false, false
	}

	in, err := ParseCommand(line)
	switch {
	case err == nil:
		return in, true, false
	case errors.Is(err, ErrQuit):
		return transport.Intent{}, false, true
	case errors.Is(err, ErrHelp):
		c.Help()
		return transport.Intent{}, false, false
	case errors.Is(err, ErrPick):
		path, picked := c.PickFile()
		if !picked {
			return transport.Intent{}, false, false
		}
		return transport.Open(path), true, false
	default:
		c.printf("%s\n", l10n.F("Error: %s", err.Error()))
		return transport.Intent{}, false, false
	}
}

// Help prints the command list.
func (c *Console) Help() {
	var b strings.Builder
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %-16s %s\n", cmd.usage, l10n.T(cmd.help))
	}
	c.printf("%s", b.String())
}

// Status prints a one-line summary of view. It is meant as the loop's
// OnView callback.
func (c *Console) Status(v transport.View) {
	c.printf("%s\n", c.formatStatus(v))
	if v.Snapshot != "" {
		c.printf("%s\n", l10n.F("Snapshot saved to %s", v.Snapshot))
	}
}

func (c *Console) formatStatus(v transport.View) string {
	if v.Path == "" {
		return l10n.T("No video loaded")
	}

	state := "||"
	if v.Playing {
		state = "|>"
	}
	line := fmt.Sprintf("[%s] %s / %s (-%s)  %s %d/%d  %s %s",
		state, v.Elapsed, v.Duration, v.Remaining,
		l10n.T("frame"), v.Index, lastIndex(v.TotalFrames),
		l10n.T("filter"), v.Filter)
	if c.color {
		colour := colorBold
		if v.Playing {
			colour = colorGreen
		}
		line = colour + line + colorReset
	}
	return line
}

func lastIndex(total int) int {
	if total <= 0 {
		return 0
	}
	return total - 1
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

var _ ports.FilePicker = (*Console)(nil)
