package transport

import (
	"fmt"

	"github.com/user/framescope/pkg/filter"
)

// IntentKind enumerates the user actions the controller understands.
type IntentKind int

const (
	IntentOpen IntentKind = iota
	IntentPlay
	IntentPause
	IntentTogglePlay
	IntentNext
	IntentPrevious
	IntentSeek
	IntentSetFilter
	IntentSnapshot
)

var intentNames = map[IntentKind]string{
	IntentOpen:       "open",
	IntentPlay:       "play",
	IntentPause:      "pause",
	IntentTogglePlay: "toggle",
	IntentNext:       "next",
	IntentPrevious:   "previous",
	IntentSeek:       "seek",
	IntentSetFilter:  "filter",
	IntentSnapshot:   "snapshot",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent is one user action. Only the field matching Kind is meaningful.
type Intent struct {
	Kind   IntentKind
	Path   string
	Index  int
	Filter filter.Selection
}

func (i Intent) String() string {
	switch i.Kind {
	case IntentOpen:
		return fmt.Sprintf("open %s", i.Path)
	case IntentSeek:
		return fmt.Sprintf("seek %d", i.Index)
	case IntentSetFilter:
		return fmt.Sprintf("filter %s", i.Filter)
	default:
		return i.Kind.String()
	}
}

func Open(path string) Intent               { return Intent{Kind: IntentOpen, Path: path} }
func Play() Intent                          { return Intent{Kind: IntentPlay} }
func Pause() Intent                         { return Intent{Kind: IntentPause} }
func TogglePlay() Intent                    { return Intent{Kind: IntentTogglePlay} }
func Next() Intent                          { return Intent{Kind: IntentNext} }
func Previous() Intent                      { return Intent{Kind: IntentPrevious} }
func Seek(index int) Intent                 { return Intent{Kind: IntentSeek, Index: index} }
func SetFilter(sel filter.Selection) Intent { return Intent{Kind: IntentSetFilter, Filter: sel} }
func Snapshot() Intent                      { return Intent{Kind: IntentSnapshot} }
