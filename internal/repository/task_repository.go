package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/pkg/database"
)

const taskColumns = `id, owner_id, title, description, completed, created_at, updated_at`

// taskRepository implements TaskRepository interface
type taskRepository struct {
	db *database.Postgres
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.Postgres) TaskRepository {
	return &taskRepository{db: db}
}

// ListByOwner retrieves all tasks of the owner, optionally filtered by completion
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return []*domain.Task{}, nil
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1`
	args := []any{owner}
	if filter.Completed != nil {
		query += ` AND completed = $2`
		args = append(args, *filter.Completed)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// GetByIDAndOwner retrieves a task only when both id and owner match
func (r *taskRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	taskID, okID := parseID(id)
	owner, okOwner := parseID(ownerID)
	if !okID || !okOwner {
		return nil, fmt.Errorf("task %s not found: %w", id, ErrNotFound)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND owner_id = $2`

	task, err := scanTask(r.db.DB.QueryRowContext(ctx, query, taskID, owner))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// Create inserts a task. The owner must already be set.
func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, owner_id, title, description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	owner, ok := parseID(task.OwnerID)
	if !ok {
		return fmt.Errorf("invalid task owner %q", task.OwnerID)
	}

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	taskID, ok := parseID(task.ID)
	if !ok {
		return fmt.Errorf("invalid task id %q", task.ID)
	}
	task.ID = taskID
	task.OwnerID = owner

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// ReplaceIfOwned overwrites the content of an owned task in a single statement.
// The row is only rewritten when the new content differs from the stored one.
func (r *taskRepository) ReplaceIfOwned(ctx context.Context, id, ownerID string, content domain.TaskContent) (domain.UpdateOutcome, error) {
	query := `
		WITH target AS (
			SELECT id FROM tasks WHERE id = $1 AND owner_id = $2
		), changed AS (
			UPDATE tasks
			SET title = $3, description = $4, completed = $5, updated_at = $6
			WHERE id = $1 AND owner_id = $2
			  AND (title, description, completed) IS DISTINCT FROM ($3, $4, $5)
			RETURNING id
		)
		SELECT EXISTS (SELECT 1 FROM target), EXISTS (SELECT 1 FROM changed)
	`

	taskID, okID := parseID(id)
	owner, okOwner := parseID(ownerID)
	if !okID || !okOwner {
		return domain.UpdateOutcome{}, nil
	}

	var outcome domain.UpdateOutcome
	err := r.db.DB.QueryRowContext(ctx, query,
		taskID,
		owner,
		content.Title,
		content.Description,
		content.Completed,
		time.Now().UTC(),
	).Scan(&outcome.Found, &outcome.Updated)
	if err != nil {
		return domain.UpdateOutcome{}, fmt.Errorf("failed to replace task: %w", err)
	}

	return outcome, nil
}

// DeleteIfOwned deletes an owned task and reports whether one was removed
func (r *taskRepository) DeleteIfOwned(ctx context.Context, id, ownerID string) (bool, error) {
	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	taskID, okID := parseID(id)
	owner, okOwner := parseID(ownerID)
	if !okID || !okOwner {
		return false, nil
	}

	result, err := r.db.DB.ExecContext(ctx, query, taskID, owner)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	var description sql.NullString

	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}

	return task, nil
}
