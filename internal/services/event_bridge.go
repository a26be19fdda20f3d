package services

import (
	"context"
	"encoding/json"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/infrastructure/buffer"
	"github.com/fastygo/taskboard/usecase"
)

// EventBridge adapts the relay to the use case's event sink.
type EventBridge struct {
	relay *EventRelay
}

func NewEventBridge(relay *EventRelay) *EventBridge {
	return &EventBridge{relay: relay}
}

func (b *EventBridge) PublishTaskEvent(ctx context.Context, event domain.TaskEvent) error {
	if b.relay == nil || event.UserID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        event.ID,
		UserID:    event.UserID,
		Entity:    buffer.EntityTaskEvent,
		Operation: buffer.OperationPublish,
		Data:      payload,
		Timestamp: event.OccurredAt,
	}
	return b.relay.Deliver(ctx, item)
}

var _ usecase.EventSink = (*EventBridge)(nil)
