package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

// UserRepository reads user profiles for the scheduler.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID fetches one user with their timetable and delivery token.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, name, delivery_token, weekly_timetable, created_at, updated_at
FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}

// List returns every user. The scheduler iterates the full set each run.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT id, name, delivery_token, weekly_timetable, created_at, updated_at
FROM users ORDER BY id`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateTimetable replaces the weekly timetable wholesale.
func (r *UserRepository) UpdateTimetable(ctx context.Context, userID string, timetable models.WeeklyTimetable) error {
	const query = `UPDATE users SET weekly_timetable = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, timetable)
	if err != nil {
		return fmt.Errorf("update timetable for %s: %w", userID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return nil
}
