package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
)

func TestEventPublisher_Publish(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, Channel("board:", "alice"))
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := NewEventPublisher(client, "board:")
	require.NoError(t, pub.Ping(ctx))

	event := domain.TaskEvent{
		ID:         "evt-1",
		Type:       domain.TaskUpdated,
		TaskID:     "task-1",
		UserID:     "alice",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, pub.Publish(ctx, event))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "board:alice", msg.Channel)

	var got domain.TaskEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, event, got)
}

func TestEventPublisher_RejectsAnonymousEvent(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	err := NewEventPublisher(client, "").Publish(context.Background(), domain.TaskEvent{TaskID: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}
