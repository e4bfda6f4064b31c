package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

// TaskRepository persists due-dated tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs the repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO tasks (id, user_id, course_name, type, due_date, completed, created_at)
VALUES (:id, :user_id, :course_name, :type, :due_date, :completed, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListPendingByUser returns the user's incomplete tasks. The reminder policy
// itself drops anything already past, so no due-date filter here.
func (r *TaskRepository) ListPendingByUser(ctx context.Context, userID string) ([]models.Task, error) {
	const query = `SELECT id, user_id, course_name, type, due_date, completed, created_at
FROM tasks WHERE user_id = $1 AND completed = FALSE ORDER BY due_date`
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("list pending tasks for %s: %w", userID, err)
	}
	return tasks, nil
}

// MarkCompleted flags a task done.
func (r *TaskRepository) MarkCompleted(ctx context.Context, userID, taskID string) error {
	const query = `UPDATE tasks SET completed = TRUE WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("complete task %s: %w", taskID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}
	return nil
}
