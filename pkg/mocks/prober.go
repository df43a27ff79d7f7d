package mocks

import (
	"context"

	"github.com/user/framescope/pkg/ports"
)

// Prober is a mock implementation of ports.Prober.
type Prober struct {
	Info  ports.ContainerInfo
	Err   error
	Paths []string

	ProbeFunc func(ctx context.Context, path string) (ports.ContainerInfo, error)
}

func (m *Prober) Probe(ctx context.Context, path string) (ports.ContainerInfo, error) {
	m.Paths = append(m.Paths, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	return m.Info, m.Err
}

var _ ports.Prober = (*Prober)(nil)
