package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusmate/reminder-api/internal/models"
)

// ExceptionRepository persists per-date schedule exceptions.
type ExceptionRepository struct {
	db *sqlx.DB
}

// NewExceptionRepository constructs the repository.
func NewExceptionRepository(db *sqlx.DB) *ExceptionRepository {
	return &ExceptionRepository{db: db}
}

// Create inserts an exception.
func (r *ExceptionRepository) Create(ctx context.Context, ex *models.ScheduleException) error {
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO schedule_exceptions (id, user_id, date, course_code, kind, course_name, start_time, end_time, room, created_at)
VALUES (:id, :user_id, :date, :course_code, :kind, :course_name, :start_time, :end_time, :room, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, ex); err != nil {
		return fmt.Errorf("create schedule exception: %w", err)
	}
	return nil
}

// ListByUserAndDate returns the exceptions scoped to one user and one
// calendar date.
func (r *ExceptionRepository) ListByUserAndDate(ctx context.Context, userID, date string) ([]models.ScheduleException, error) {
	const query = `SELECT id, user_id, date, course_code, kind, course_name, start_time, end_time, room, created_at
FROM schedule_exceptions WHERE user_id = $1 AND date = $2 ORDER BY created_at`
	var exceptions []models.ScheduleException
	if err := r.db.SelectContext(ctx, &exceptions, query, userID, date); err != nil {
		return nil, fmt.Errorf("list schedule exceptions for %s on %s: %w", userID, date, err)
	}
	return exceptions, nil
}
