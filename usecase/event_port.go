package usecase

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// EventSink abstracts event delivery so use cases stay transport-agnostic.
// Implementations must not block a mutation on delivery failures.
type EventSink interface {
	PublishTaskEvent(ctx context.Context, event domain.TaskEvent) error
}
