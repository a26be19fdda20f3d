package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ShutdownReverseOrder(t *testing.T) {
	m := New(time.Second, nil)
	var order []string

	m.Register("store", func(context.Context) error {
		order = append(order, "store")
		return nil
	})
	m.RegisterStop("monitor", func() { order = append(order, "monitor") })
	m.Register("http_server", func(context.Context) error {
		order = append(order, "http_server")
		return nil
	})
	m.Register("ignored", nil)
	m.RegisterStop("ignored", nil)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"http_server", "monitor", "store"}, order)
}

func TestManager_ShutdownJoinsErrors(t *testing.T) {
	m := New(0, nil)
	errStore := errors.New("store close failed")
	errRelay := errors.New("relay stuck")
	ran := 0

	m.Register("store", func(context.Context) error { ran++; return errStore })
	m.Register("relay", func(context.Context) error { ran++; return errRelay })

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, errStore)
	assert.ErrorIs(t, err, errRelay)
	assert.Equal(t, 2, ran)
}

func TestManager_ShutdownDeadline(t *testing.T) {
	m := New(50*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
