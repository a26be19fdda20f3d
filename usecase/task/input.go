package task

import (
	"time"

	"github.com/fastygo/taskboard/domain"
)

// ListFilter holds the optional list filters. OrganizationID is tri-state:
// absent applies no scope, null selects personal tasks, a value selects one organization.
type ListFilter struct {
	OrganizationID domain.Field[string]
	Completed      *bool
	Priority       *string
	Search         string
}

// CreateInput describes a new task.
type CreateInput struct {
	Title          string     `json:"title" validate:"required,max=255"`
	Description    *string    `json:"description"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate        *time.Time `json:"due_date"`
	OrganizationID *string    `json:"organization_id" validate:"omitempty,uuid"`
}

// UpdateInput is a partial update of task ID. Absent fields stay untouched;
// explicit nulls clear description, due date and organization.
type UpdateInput struct {
	ID             string
	Title          domain.Field[string]
	Description    domain.Field[string]
	Completed      domain.Field[bool]
	Priority       domain.Field[string]
	DueDate        domain.Field[time.Time]
	OrganizationID domain.Field[string]
}

// PatchInput builds an UpdateInput from a domain patch.
func PatchInput(id string, patch domain.TaskPatch) UpdateInput {
	priority := domain.Field[string]{Present: patch.Priority.Present, Null: patch.Priority.Null, Value: string(patch.Priority.Value)}
	return UpdateInput{
		ID:             id,
		Title:          patch.Title,
		Description:    patch.Description,
		Completed:      patch.Completed,
		Priority:       priority,
		DueDate:        patch.DueDate,
		OrganizationID: patch.OrganizationID,
	}
}

// patch assumes the input has been validated.
func (in UpdateInput) patch() domain.TaskPatch {
	priority := domain.Field[domain.Priority]{Present: in.Priority.Present, Null: in.Priority.Null, Value: domain.Priority(in.Priority.Value)}
	return domain.TaskPatch{
		Title:          in.Title,
		Description:    in.Description,
		Completed:      in.Completed,
		Priority:       priority,
		DueDate:        in.DueDate,
		OrganizationID: in.OrganizationID,
	}
}
