// Package consoleui drives the transport from a line-oriented terminal
// prompt and implements ports.FilePicker on top of it.
package consoleui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/framescope/pkg/filter"
	"github.com/user/framescope/pkg/transport"
)

var (
	// ErrQuit is returned by ParseCommand for quit/exit.
	ErrQuit = errors.New("consoleui: quit")
	// ErrHelp is returned by ParseCommand for help.
	ErrHelp = errors.New("consoleui: help")
	// ErrPick means open was given without a path and a picker is needed.
	ErrPick = errors.New("consoleui: pick file")
	// ErrUnknownCommand is returned for input no command matches.
	ErrUnknownCommand = errors.New("unknown command")
)

// commands lists every command with its aliases, in help order.
var commands = []struct {
	names []string
	usage string
	help  string
}{
	{[]string{"open", "o"}, "open [path]", "Load a video file"},
	{[]string{"toggle", "t", "space"}, "toggle", "Play or pause"},
	{[]string{"play"}, "play", "Start playback"},
	{[]string{"pause"}, "pause", "Pause playback"},
	{[]string{"next", "n"}, "next", "Show the next frame"},
	{[]string{"prev", "previous", "p"}, "prev", "Show the previous frame"},
	{[]string{"seek", "s"}, "seek <frame>", "Jump to a frame index"},
	{[]string{"filter", "f"}, "filter <name>", "Select none, gray, object_detection or detect_edges"},
	{[]string{"snapshot", "snap"}, "snapshot", "Save the displayed frame"},
	{[]string{"help", "h", "?"}, "help", "Show this help"},
	{[]string{"quit", "q", "exit"}, "quit", "Leave the review session"},
}

// ParseCommand maps one input line to an intent. Control commands come back
// as ErrQuit, ErrHelp and ErrPick.
func ParseCommand(line string) (transport.Intent, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return transport.Intent{}, ErrUnknownCommand
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch name {
	case "open", "o":
		if len(args) == 0 {
			return transport.Intent{}, ErrPick
		}
		// paths may contain spaces
		path := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		return transport.Open(path), nil
	case "toggle", "t", "space":
		return transport.TogglePlay(), nil
	case "play":
		return transport.Play(), nil
	case "pause":
		return transport.Pause(), nil
	case "next", "n":
		return transport.Next(), nil
	case "prev", "previous", "p":
		return transport.Previous(), nil
	case "seek", "s":
		if len(args) != 1 {
			return transport.Intent{}, fmt.Errorf("seek: expected a frame index")
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return transport.Intent{}, fmt.Errorf("seek: %w", err)
		}
		return transport.Seek(index), nil
	case "filter", "f":
		if len(args) != 1 {
			return transport.Intent{}, fmt.Errorf("filter: expected a filter name")
		}
		sel, ok := filter.ParseSelection(args[0])
		if !ok {
			return transport.Intent{}, fmt.Errorf("filter: unknown filter %q", args[0])
		}
		return transport.SetFilter(sel), nil
	case "snapshot", "snap":
		return transport.Snapshot(), nil
	case "help", "h", "?":
		return transport.Intent{}, ErrHelp
	case "quit", "q", "exit":
		return transport.Intent{}, ErrQuit
	default:
		return transport.Intent{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}
