package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskEventType names a persisted task mutation.
type TaskEventType string

const (
	TaskCreated TaskEventType = "task.created"
	TaskUpdated TaskEventType = "task.updated"
	TaskDeleted TaskEventType = "task.deleted"
)

// TaskEvent notifies other sessions of the owner that their task set changed.
// It carries no task payload; subscribers re-issue a list query.
type TaskEvent struct {
	ID             string        `json:"id"`
	Type           TaskEventType `json:"type"`
	TaskID         string        `json:"task_id"`
	UserID         string        `json:"user_id"`
	OrganizationID *string       `json:"organization_id,omitempty"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

// NewTaskEvent builds an event describing a mutation of task.
func NewTaskEvent(kind TaskEventType, task Task, at time.Time) TaskEvent {
	return TaskEvent{
		ID:             uuid.NewString(),
		Type:           kind,
		TaskID:         task.ID,
		UserID:         task.UserID,
		OrganizationID: task.OrganizationID,
		OccurredAt:     at,
	}
}
