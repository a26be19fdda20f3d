package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/usecase/task"
)

// Seeder creates fixture tasks through the regular mutation path, so every
// seeded task passes the same validation as API input.
type Seeder struct {
	tasks  *task.UseCase
	due    *DueParser
	now    func() time.Time
	logger *zap.Logger
}

func NewSeeder(tasks *task.UseCase, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		tasks:  tasks,
		due:    NewDueParser(),
		now:    time.Now,
		logger: logger,
	}
}

// Seed creates every task in fx and returns how many were created. It stops
// at the first failure.
func (s *Seeder) Seed(ctx context.Context, fx *Fixture) (int, error) {
	base := s.now()
	created := 0
	for i, ft := range fx.Tasks {
		due, err := s.due.Parse(ft.Due, base)
		if err != nil {
			return created, fmt.Errorf("task %d: %w", i, err)
		}

		view, err := s.tasks.Create(ctx, ft.UserID, task.CreateInput{
			Title:          ft.Title,
			Description:    ft.Description,
			Priority:       ft.Priority,
			DueDate:        due,
			OrganizationID: ft.OrganizationID,
		})
		if err != nil {
			return created, fmt.Errorf("task %d (%q): %w", i, ft.Title, err)
		}
		created++

		if ft.Completed {
			patch := domain.TaskPatch{Completed: domain.Set(true)}
			if _, err := s.tasks.Update(ctx, ft.UserID, task.PatchInput(view.ID, patch)); err != nil {
				return created, fmt.Errorf("complete task %d: %w", i, err)
			}
		}
	}

	s.logger.Info("seeded tasks", zap.Int("count", created))
	return created, nil
}
