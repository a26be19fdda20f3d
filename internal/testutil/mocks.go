// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

// MockClock is a test double for task.Clock.
type MockClock struct {
	NowTime time.Time
}

func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockTaskRepository is an in-memory repository.TaskRepository.
// Set an Err field to make the matching call fail.
type MockTaskRepository struct {
	mu    sync.Mutex
	Tasks map[string]domain.Task

	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
	PingErr   error

	Calls []string
}

// NewMockTaskRepository creates an empty repository.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{Tasks: make(map[string]domain.Task)}
}

// Put stores a task as-is, bypassing Create.
func (m *MockTaskRepository) Put(task domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks[task.ID] = task
}

func (m *MockTaskRepository) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "List")
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := []domain.Task{}
	for _, t := range m.Tasks {
		if t.UserID != filter.OwnerID {
			continue
		}
		if filter.OrganizationID.Present {
			org, ok := filter.OrganizationID.Get()
			if !ok && t.OrganizationID != nil {
				continue
			}
			if ok && (t.OrganizationID == nil || *t.OrganizationID != org) {
				continue
			}
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if search != "" {
			desc := ""
			if t.Description != nil {
				desc = *t.Description
			}
			if !strings.Contains(strings.ToLower(t.Title), search) && !strings.Contains(strings.ToLower(desc), search) {
				continue
			}
		}
		out = append(out, t)
	}
	domain.SortTasks(out)
	return out, nil
}

func (m *MockTaskRepository) Get(_ context.Context, id, ownerID string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "Get")
	t, ok := m.Tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (m *MockTaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "Create")
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	m.Tasks[task.ID] = *task
	out := *task
	return &out, nil
}

func (m *MockTaskRepository) Update(_ context.Context, id, ownerID string, patch domain.TaskPatch, now time.Time) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "Update")
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	t, ok := m.Tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	patch.Apply(&t, now)
	m.Tasks[id] = t
	return &t, nil
}

func (m *MockTaskRepository) Delete(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "Delete")
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	t, ok := m.Tasks[id]
	if !ok || t.UserID != ownerID {
		return domain.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

func (m *MockTaskRepository) Ping(context.Context) error {
	return m.PingErr
}

// MockEventSink records published events.
type MockEventSink struct {
	mu     sync.Mutex
	Events []domain.TaskEvent
	Err    error
}

func (m *MockEventSink) PublishTaskEvent(_ context.Context, event domain.TaskEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, event)
	return nil
}

// Published returns a copy of the recorded events.
func (m *MockEventSink) Published() []domain.TaskEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TaskEvent(nil), m.Events...)
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}
