package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/infrastructure/buffer"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.TaskEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event domain.TaskEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Ping(context.Context) error { return p.err }

func (p *fakePublisher) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *fakePublisher) taskIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.events))
	for _, e := range p.events {
		ids = append(ids, e.TaskID)
	}
	return ids
}

type fakeHealth struct{ online bool }

func (h *fakeHealth) RedisOnline() bool { return h.online }

type relayFixture struct {
	publisher *fakePublisher
	health    *fakeHealth
	relay     *EventRelay
	sink      *EventBridge
}

func newRelayFixture(t *testing.T) *relayFixture {
	t.Helper()
	store, err := buffer.Open(filepath.Join(t.TempDir(), "events.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	f := &relayFixture{publisher: &fakePublisher{}, health: &fakeHealth{online: true}}
	f.relay = NewEventRelay(store, f.health, f.publisher, nil, RelayConfig{Interval: time.Hour, MaxRetries: 2})
	f.sink = NewEventBridge(f.relay)
	return f
}

func event(taskID string, at time.Time) domain.TaskEvent {
	return domain.NewTaskEvent(domain.TaskUpdated, domain.Task{ID: taskID, UserID: "alice"}, at)
}

func TestEventRelay_DeliversImmediately(t *testing.T) {
	f := newRelayFixture(t)

	require.NoError(t, f.sink.PublishTaskEvent(context.Background(), event("t1", time.Now())))

	assert.Equal(t, []string{"t1"}, f.publisher.taskIDs())
	assert.Zero(t, f.relay.Size())
}

func TestEventRelay_BuffersWhileOffline(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()
	base := time.Now()

	f.health.online = false
	require.NoError(t, f.sink.PublishTaskEvent(ctx, event("t1", base)))

	f.health.online = true
	f.publisher.fail(errors.New("connection reset"))
	require.NoError(t, f.sink.PublishTaskEvent(ctx, event("t2", base.Add(time.Millisecond))))

	assert.Empty(t, f.publisher.taskIDs())
	assert.Equal(t, 2, f.relay.Size())

	f.publisher.fail(nil)
	require.NoError(t, f.relay.Drain(ctx))

	assert.Equal(t, []string{"t1", "t2"}, f.publisher.taskIDs())
	assert.Zero(t, f.relay.Size())
}

func TestEventRelay_QueuesBehindBacklog(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()
	base := time.Now()

	f.health.online = false
	require.NoError(t, f.sink.PublishTaskEvent(ctx, event("t1", base)))

	f.health.online = true
	require.NoError(t, f.sink.PublishTaskEvent(ctx, event("t2", base.Add(time.Millisecond))))

	assert.Empty(t, f.publisher.taskIDs())
	assert.Equal(t, 2, f.relay.Size())

	require.NoError(t, f.relay.Drain(ctx))
	assert.Equal(t, []string{"t1", "t2"}, f.publisher.taskIDs())

	require.NoError(t, f.sink.PublishTaskEvent(ctx, event("t3", base.Add(2*time.Millisecond))))
	assert.Equal(t, []string{"t1", "t2", "t3"}, f.publisher.taskIDs())
	assert.Zero(t, f.relay.Size())
}

func TestEventRelay_DrainSkipsWhileOffline(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()

	f.health.online = false
	require.NoError(t, f.sink.PublishTaskEvent(ctx, event("t1", time.Now())))
	require.NoError(t, f.relay.Drain(ctx))

	assert.Empty(t, f.publisher.taskIDs())
	assert.Equal(t, 1, f.relay.Size())
}

func TestEventRelay_DrainRetriesThenDrops(t *testing.T) {
	f := newRelayFixture(t)
	ctx := context.Background()
	base := time.Now()

	f.health.online = false
	require.NoError(t, f.sink.PublishTaskEvent(ctx, event("t1", base)))
	require.NoError(t, f.sink.PublishTaskEvent(ctx, event("t2", base.Add(time.Millisecond))))
	f.health.online = true
	f.publisher.fail(errors.New("READONLY"))

	// first failure stops the batch and keeps both events
	require.NoError(t, f.relay.Drain(ctx))
	assert.Equal(t, 2, f.relay.Size())

	// second failure of t1 reaches MaxRetries and drops it, t2 then fails once
	require.NoError(t, f.relay.Drain(ctx))
	assert.Equal(t, 1, f.relay.Size())

	f.publisher.fail(nil)
	require.NoError(t, f.relay.Drain(ctx))
	assert.Equal(t, []string{"t2"}, f.publisher.taskIDs())
	assert.Zero(t, f.relay.Size())
}

func TestEventBridge_RejectsAnonymousEvent(t *testing.T) {
	f := newRelayFixture(t)

	err := f.sink.PublishTaskEvent(context.Background(), domain.TaskEvent{TaskID: "t1"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Zero(t, f.relay.Size())

	err = NewEventBridge(nil).PublishTaskEvent(context.Background(), event("t1", time.Now()))
	assert.Error(t, err)
}

func TestEventRelay_StartStop(t *testing.T) {
	f := newRelayFixture(t)
	f.relay.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	f.relay.Stop(ctx)

	var nilRelay *EventRelay
	assert.NotPanics(t, func() {
		nilRelay.Start()
		nilRelay.Stop(ctx)
	})
	assert.Zero(t, nilRelay.Size())
}
