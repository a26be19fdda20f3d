package domain

import "time"

// MaxTitleLength is the title limit in code points.
const MaxTitleLength = 255

// Task represents a to-do item owned by a user, optionally scoped to an organization.
type Task struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	OrganizationID *string    `json:"organization_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Completed      bool       `json:"completed"`
	Priority       Priority   `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsOverdue reports whether the task is past due at the reference time.
func (t *Task) IsOverdue(now time.Time) bool {
	if t == nil || t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

// TaskView is the read model returned to callers.
type TaskView struct {
	Task
	IsOverdue bool `json:"is_overdue"`
}

// NewTaskView derives the view for a task at the reference time.
func NewTaskView(task Task, now time.Time) TaskView {
	return TaskView{Task: task, IsOverdue: task.IsOverdue(now)}
}

// TaskPatch carries a partial task update. Absent fields are left untouched.
type TaskPatch struct {
	Title          Field[string]    `json:"title"`
	Description    Field[string]    `json:"description"`
	Completed      Field[bool]      `json:"completed"`
	Priority       Field[Priority]  `json:"priority"`
	DueDate        Field[time.Time] `json:"due_date"`
	OrganizationID Field[string]    `json:"organization_id"`
}

// Apply writes every present field onto the task and refreshes UpdatedAt.
// Callers validate the patch first; nulls on non-nullable fields are ignored here.
func (p TaskPatch) Apply(task *Task, now time.Time) {
	if task == nil {
		return
	}
	if v, ok := p.Title.Get(); ok {
		task.Title = v
	}
	if p.Description.Present {
		task.Description = p.Description.Ptr()
	}
	if v, ok := p.Completed.Get(); ok {
		task.Completed = v
	}
	if v, ok := p.Priority.Get(); ok {
		task.Priority = v
	}
	if p.DueDate.Present {
		task.DueDate = p.DueDate.Ptr()
	}
	if p.OrganizationID.Present {
		task.OrganizationID = p.OrganizationID.Ptr()
	}
	task.UpdatedAt = now
}
