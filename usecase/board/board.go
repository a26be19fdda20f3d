// Package board models the Kanban presentation of a task list: one column per
// priority, and the drag gesture that moves a task between columns.
package board

import (
	"github.com/fastygo/taskboard/domain"
)

var columnTitles = map[domain.Priority]string{
	domain.PriorityLow:    "Low Priority",
	domain.PriorityMedium: "Medium Priority",
	domain.PriorityHigh:   "High Priority",
	domain.PriorityUrgent: "Urgent Priority",
}

// Column is the bucket of tasks sharing one priority.
type Column struct {
	ID        domain.Priority   `json:"id"`
	Title     string            `json:"title"`
	Tasks     []domain.TaskView `json:"tasks"`
	Completed int               `json:"completed"`
	Total     int               `json:"total"`
}

// Board holds the four priority columns in display order.
type Board struct {
	Columns []Column `json:"columns"`
}

// Build buckets tasks by priority, keeping their relative order.
func Build(tasks []domain.TaskView) Board {
	columns := make([]Column, len(domain.Priorities))
	index := make(map[domain.Priority]int, len(domain.Priorities))
	for i, p := range domain.Priorities {
		columns[i] = Column{ID: p, Title: columnTitles[p], Tasks: []domain.TaskView{}}
		index[p] = i
	}

	for _, t := range tasks {
		i, ok := index[t.Priority]
		if !ok {
			continue
		}
		col := &columns[i]
		col.Tasks = append(col.Tasks, t)
		col.Total++
		if t.Completed {
			col.Completed++
		}
	}
	return Board{Columns: columns}
}

// Task finds a card by task id.
func (b Board) Task(id string) (domain.TaskView, bool) {
	for _, col := range b.Columns {
		for _, t := range col.Tasks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return domain.TaskView{}, false
}

// Column returns the column with the given priority.
func (b Board) Column(p domain.Priority) (Column, bool) {
	for _, col := range b.Columns {
		if col.ID == p {
			return col, true
		}
	}
	return Column{}, false
}

// Resolve maps a drop target to a priority. A column id resolves to itself and
// a card id resolves to that card's priority; anything else is not droppable.
func (b Board) Resolve(targetID string) (domain.Priority, bool) {
	if targetID == "" {
		return "", false
	}
	if col, ok := b.Column(domain.Priority(targetID)); ok {
		return col.ID, true
	}
	if t, ok := b.Task(targetID); ok {
		return t.Priority, true
	}
	return "", false
}
