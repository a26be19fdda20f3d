package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

const taskColumns = `id, user_id, organization_id, title, description, completed, priority, due_date, created_at, updated_at`

const priorityOrder = `
	ORDER BY CASE priority
		WHEN 'urgent' THEN 1
		WHEN 'high' THEN 2
		WHEN 'medium' THEN 3
		WHEN 'low' THEN 4
	END ASC, created_at DESC`

type taskRepository struct {
	db *DB
}

// NewTaskRepository returns a SQLite-backed implementation of TaskRepository.
func NewTaskRepository(db *DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if filter.OwnerID == "" {
		return nil, domain.ErrUnauthorized
	}

	conds := []string{"user_id = ?"}
	args := []interface{}{filter.OwnerID}

	if filter.OrganizationID.Present {
		if org, ok := filter.OrganizationID.Get(); ok {
			conds = append(conds, "organization_id = ?")
			args = append(args, org)
		} else {
			conds = append(conds, "organization_id IS NULL")
		}
	}
	if filter.Completed != nil {
		conds = append(conds, "completed = ?")
		args = append(args, *filter.Completed)
	}
	if filter.Priority != nil {
		conds = append(conds, "priority = ?")
		args = append(args, string(*filter.Priority))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		// instr keeps LIKE wildcards literal.
		conds = append(conds, "(instr(casefold(title), casefold(?)) > 0 OR instr(casefold(COALESCE(description, '')), casefold(?)) > 0)")
		args = append(args, search, search)
	}

	query := "SELECT " + taskColumns + " FROM tasks WHERE " + strings.Join(conds, " AND ") + priorityOrder
	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Get(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`
	return scanTask(r.db.conn.QueryRowContext(ctx, query, id, ownerID))
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	const query = `
	INSERT INTO tasks (id, user_id, organization_id, title, description, completed, priority, due_date, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.conn.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		nullString(task.OrganizationID),
		task.Title,
		nullString(task.Description),
		task.Completed,
		string(task.Priority),
		nullUnix(task.DueDate),
		task.CreatedAt.UnixNano(),
		task.UpdatedAt.UnixNano(),
	); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch, now time.Time) (*domain.Task, error) {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const selectQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`
	task, err := scanTask(tx.QueryRowContext(ctx, selectQuery, id, ownerID))
	if err != nil {
		return nil, err
	}

	patch.Apply(task, now)

	const updateQuery = `
	UPDATE tasks
	SET organization_id = ?, title = ?, description = ?, completed = ?, priority = ?, due_date = ?, updated_at = ?
	WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, updateQuery,
		nullString(task.OrganizationID),
		task.Title,
		nullString(task.Description),
		task.Completed,
		string(task.Priority),
		nullUnix(task.DueDate),
		task.UpdatedAt.UnixNano(),
		task.ID,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var (
		task                 domain.Task
		org, description     sql.NullString
		priority             string
		due                  sql.NullInt64
		createdAt, updatedAt int64
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&org,
		&task.Title,
		&description,
		&task.Completed,
		&priority,
		&due,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	parsed, err := domain.ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	task.Priority = parsed
	if org.Valid {
		task.OrganizationID = &org.String
	}
	if description.Valid {
		task.Description = &description.String
	}
	if due.Valid {
		t := time.Unix(0, due.Int64).UTC()
		task.DueDate = &t
	}
	task.CreatedAt = time.Unix(0, createdAt).UTC()
	task.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &task, nil
}

func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullUnix(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UnixNano()
}
