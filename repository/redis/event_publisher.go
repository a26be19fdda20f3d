package redis

import (
	"context"
	"encoding/json"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type eventPublisher struct {
	client *redislib.Client
	prefix string
}

// NewEventPublisher creates a Redis pub/sub publisher. Events for a user go to
// the channel "<prefix><user_id>".
func NewEventPublisher(client *redislib.Client, prefix string) repository.EventPublisher {
	if prefix == "" {
		prefix = "tasks:"
	}
	return &eventPublisher{
		client: client,
		prefix: prefix,
	}
}

func (p *eventPublisher) Publish(ctx context.Context, event domain.TaskEvent) error {
	if event.UserID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel(event.UserID), payload).Err()
}

func (p *eventPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *eventPublisher) channel(userID string) string {
	return fmt.Sprintf("%s%s", p.prefix, userID)
}

// Channel returns the channel a subscriber should listen on for userID.
func Channel(prefix, userID string) string {
	if prefix == "" {
		prefix = "tasks:"
	}
	return prefix + userID
}
