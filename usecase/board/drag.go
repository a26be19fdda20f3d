package board

import (
	"context"
	"errors"

	"github.com/fastygo/taskboard/domain"
)

// State is the phase of a drag gesture.
type State int

const (
	Idle State = iota
	Dragging
	Resolving
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resolving:
		return "resolving"
	}
	return "unknown"
}

var (
	ErrAlreadyDragging = errors.New("a drag is already in progress")
	ErrNotDragging     = errors.New("no drag in progress")
)

// Mutator issues task updates on behalf of the board.
type Mutator interface {
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) error
}

// MutatorFunc adapts a function to Mutator.
type MutatorFunc func(ctx context.Context, id string, patch domain.TaskPatch) error

func (f MutatorFunc) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) error {
	return f(ctx, id, patch)
}

// Drag tracks one drag gesture at a time. It is not safe for concurrent use.
type Drag struct {
	state    State
	activeID string
	overID   string
}

func (d *Drag) State() State     { return d.state }
func (d *Drag) ActiveID() string { return d.activeID }
func (d *Drag) OverID() string   { return d.overID }

// PickUp starts dragging the task with the given id.
func (d *Drag) PickUp(taskID string) error {
	if d.state != Idle {
		return ErrAlreadyDragging
	}
	d.state = Dragging
	d.activeID = taskID
	d.overID = ""
	return nil
}

// Hover records the current candidate drop target. An empty id means the
// pointer is outside every droppable region.
func (d *Drag) Hover(targetID string) {
	if d.state != Dragging {
		return
	}
	d.overID = targetID
}

// Cancel abandons the gesture without a mutation.
func (d *Drag) Cancel() {
	d.reset()
}

// Release drops the dragged task on targetID. It issues exactly one priority
// update when the resolved priority differs from the task's current one and
// reports whether it did. The gesture always ends Idle.
func (d *Drag) Release(ctx context.Context, b Board, targetID string, m Mutator) (bool, error) {
	if d.state != Dragging {
		return false, ErrNotDragging
	}
	d.state = Resolving
	activeID := d.activeID
	defer d.reset()

	target, ok := b.Resolve(targetID)
	if !ok {
		return false, nil
	}
	task, ok := b.Task(activeID)
	if !ok || task.Priority == target {
		return false, nil
	}

	if err := m.UpdateTask(ctx, activeID, domain.TaskPatch{Priority: domain.Set(target)}); err != nil {
		return false, err
	}
	return true, nil
}

// Highlighted returns the column that should be highlighted for the current
// hover target. The dragged task's own column is never highlighted.
func (d *Drag) Highlighted(b Board) (domain.Priority, bool) {
	if d.state != Dragging {
		return "", false
	}
	target, ok := b.Resolve(d.overID)
	if !ok {
		return "", false
	}
	if task, ok := b.Task(d.activeID); ok && task.Priority == target {
		return "", false
	}
	return target, true
}

func (d *Drag) reset() {
	d.state = Idle
	d.activeID = ""
	d.overID = ""
}

// ToggleComplete flips the completion state of task with a single update.
func ToggleComplete(ctx context.Context, task domain.TaskView, m Mutator) error {
	return m.UpdateTask(ctx, task.ID, domain.TaskPatch{Completed: domain.Set(!task.Completed)})
}
