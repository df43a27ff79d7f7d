package mocks

import (
	"context"
	"fmt"

	"github.com/user/framescope/pkg/ports"
)

// SourceOpener serves pre-built sources by path.
type SourceOpener struct {
	Sources map[string]ports.FrameSource
	Err     error
	Opened  []string
}

func (m *SourceOpener) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	m.Opened = append(m.Opened, path)
	if m.Err != nil {
		return nil, m.Err
	}
	src, ok := m.Sources[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrIO, path)
	}
	return src, nil
}

var _ ports.SourceOpener = (*SourceOpener)(nil)
