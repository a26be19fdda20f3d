package transport

import (
	"time"

	"github.com/fastygo/taskboard/domain"
)

type CreateTaskRequest struct {
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	OrganizationID *string    `json:"organization_id"`
}

// UpdateTaskRequest keeps absent and null apart for every field.
type UpdateTaskRequest struct {
	Title          domain.Field[string]    `json:"title"`
	Description    domain.Field[string]    `json:"description"`
	Completed      domain.Field[bool]      `json:"completed"`
	Priority       domain.Field[string]    `json:"priority"`
	DueDate        domain.Field[time.Time] `json:"due_date"`
	OrganizationID domain.Field[string]    `json:"organization_id"`
}

type DropRequest struct {
	TaskID string `json:"task_id"`
	OverID string `json:"over_id"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

type DropResponse struct {
	Changed bool        `json:"changed"`
	Board   interface{} `json:"board"`
}
