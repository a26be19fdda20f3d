package repository

import (
	"context"
	"time"

	"github.com/fastygo/taskboard/domain"
)

// TaskFilter narrows a task listing. OwnerID is mandatory; every other field
// is optional and combined with AND.
type TaskFilter struct {
	OwnerID        string
	OrganizationID domain.Field[string]
	Completed      *bool
	Priority       *domain.Priority
	Search         string
}

// TaskRepository is the task store. Get, Update and Delete locate rows by id
// and owner together, so a task owned by someone else is indistinguishable from
// a missing one.
type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Get(ctx context.Context, id, ownerID string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch, now time.Time) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
	Ping(ctx context.Context) error
}
