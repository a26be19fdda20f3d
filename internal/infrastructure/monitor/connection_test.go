package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type sizer struct {
	size int
	err  error
}

func (s sizer) Size() (int, error) { return s.size, s.err }

func TestMonitor_Refresh(t *testing.T) {
	m := New(pinger{}, pinger{err: errors.New("down")}, sizer{size: 3}, 0, nil)
	m.Refresh()

	status := m.GetStatus()
	assert.True(t, status.Store)
	assert.False(t, status.Redis)
	assert.True(t, status.Buffer)
	assert.Equal(t, 3, status.BufferSize)
	assert.False(t, status.LastCheck.IsZero())
	assert.True(t, m.IsOnline())
	assert.False(t, m.RedisOnline())
	assert.True(t, status.Healthy())
}

func TestMonitor_MissingDependencies(t *testing.T) {
	m := New(pinger{err: errors.New("refused")}, nil, nil, 0, nil)
	m.Refresh()

	status := m.GetStatus()
	assert.False(t, status.Store)
	assert.False(t, status.Redis)
	assert.False(t, status.Buffer)
	assert.False(t, status.Healthy())
}

func TestMonitor_BufferError(t *testing.T) {
	m := New(pinger{}, pinger{}, sizer{err: errors.New("closed")}, 0, nil)
	m.Refresh()

	assert.False(t, m.GetStatus().Buffer)
	assert.True(t, m.RedisOnline())
}

func TestMonitor_StopTwice(t *testing.T) {
	m := New(pinger{}, nil, nil, 0, nil)
	m.Start()
	m.Stop()
	assert.NotPanics(t, m.Stop)
}
