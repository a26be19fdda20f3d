package task

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/pkg/metrics"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/usecase"
)

// Clock supplies the reference time for timestamps and the overdue flag.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type Option func(*UseCase)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(uc *UseCase) {
		if clock != nil {
			uc.clock = clock
		}
	}
}

type UseCase struct {
	tasks    repository.TaskRepository
	events   usecase.EventSink
	clock    Clock
	validate *validator.Validate
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, events usecase.EventSink, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		tasks:    tasks,
		events:   events,
		clock:    systemClock{},
		validate: newValidator(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// List returns the requester's tasks matching filter, most urgent first.
func (uc *UseCase) List(ctx context.Context, requesterID string, filter ListFilter) (views []domain.TaskView, err error) {
	defer uc.observe("list", time.Now(), &err)

	if requesterID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.validateFilter(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.TaskFilter{
		OwnerID:        requesterID,
		OrganizationID: filter.OrganizationID,
		Completed:      filter.Completed,
		Search:         filter.Search,
	}
	if filter.Priority != nil {
		p := domain.Priority(*filter.Priority)
		repoFilter.Priority = &p
	}

	tasks, err := uc.tasks.List(ctx, repoFilter)
	if err != nil {
		logger.WithRequestID(ctx, uc.logger).Error("failed to list tasks", zap.String("user_id", requesterID), zap.Error(err))
		return nil, err
	}

	now := uc.clock.Now()
	views = make([]domain.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, domain.NewTaskView(t, now))
	}
	return views, nil
}

// Create stores a new task owned by the requester.
func (uc *UseCase) Create(ctx context.Context, requesterID string, in CreateInput) (view *domain.TaskView, err error) {
	defer uc.observe("create", time.Now(), &err)

	if requesterID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.validateCreate(in); err != nil {
		return nil, err
	}

	priority := domain.DefaultPriority
	if in.Priority != "" {
		priority = domain.Priority(in.Priority)
	}

	now := uc.clock.Now().UTC()
	task := &domain.Task{
		ID:             uuid.NewString(),
		UserID:         requesterID,
		OrganizationID: in.OrganizationID,
		Title:          in.Title,
		Description:    in.Description,
		Completed:      false,
		Priority:       priority,
		DueDate:        in.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		logger.WithRequestID(ctx, uc.logger).Error("failed to create task", zap.String("user_id", requesterID), zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, domain.NewTaskEvent(domain.TaskCreated, *created, now))
	v := domain.NewTaskView(*created, uc.clock.Now())
	return &v, nil
}

// Update applies a partial update to a task owned by the requester.
// Tasks owned by anyone else are reported as not found.
func (uc *UseCase) Update(ctx context.Context, requesterID string, in UpdateInput) (view *domain.TaskView, err error) {
	defer uc.observe("update", time.Now(), &err)

	if requesterID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.validateUpdate(in); err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	updated, err := uc.tasks.Update(ctx, in.ID, requesterID, in.patch(), now)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			logger.WithRequestID(ctx, uc.logger).Error("failed to update task", zap.String("task_id", in.ID), zap.Error(err))
		}
		return nil, err
	}

	uc.publish(ctx, domain.NewTaskEvent(domain.TaskUpdated, *updated, now))
	v := domain.NewTaskView(*updated, uc.clock.Now())
	return &v, nil
}

// Delete permanently removes a task owned by the requester.
func (uc *UseCase) Delete(ctx context.Context, requesterID, id string) (err error) {
	defer uc.observe("delete", time.Now(), &err)

	if requesterID == "" {
		return domain.ErrUnauthorized
	}
	if err := uc.validateID(id); err != nil {
		return err
	}

	if err := uc.tasks.Delete(ctx, id, requesterID); err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			logger.WithRequestID(ctx, uc.logger).Error("failed to delete task", zap.String("task_id", id), zap.Error(err))
		}
		return err
	}

	now := uc.clock.Now().UTC()
	uc.publish(ctx, domain.NewTaskEvent(domain.TaskDeleted, domain.Task{ID: id, UserID: requesterID}, now))
	return nil
}

func (uc *UseCase) publish(ctx context.Context, event domain.TaskEvent) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishTaskEvent(ctx, event); err != nil {
		logger.WithRequestID(ctx, uc.logger).Warn("task event not delivered",
			zap.String("type", string(event.Type)),
			zap.String("task_id", event.TaskID),
			zap.Error(err))
	}
}

func (uc *UseCase) observe(operation string, start time.Time, err *error) {
	metrics.ObserveTaskOperation(operation, outcome(*err), time.Since(start))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return "invalid"
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return "not_found"
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
