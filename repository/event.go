package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// EventPublisher fans task events out to subscribed sessions.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.TaskEvent) error
	Ping(ctx context.Context) error
}
