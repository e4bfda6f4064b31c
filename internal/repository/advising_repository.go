package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusmate/reminder-api/internal/models"
)

// AdvisingRepository persists one advising slot per user per semester.
type AdvisingRepository struct {
	db *sqlx.DB
}

// NewAdvisingRepository constructs the repository.
func NewAdvisingRepository(db *sqlx.DB) *AdvisingRepository {
	return &AdvisingRepository{db: db}
}

// Upsert stores the slot and reports whether its value actually changed.
// Re-assigning an identical slot returns false so callers can suppress the
// notification path.
func (r *AdvisingRepository) Upsert(ctx context.Context, slot *models.AdvisingSlot) (bool, error) {
	const lookup = `SELECT id, user_id, semester_key, date, start_time, updated_at
FROM advising_slots WHERE user_id = $1 AND semester_key = $2`
	var existing models.AdvisingSlot
	err := r.db.GetContext(ctx, &existing, lookup, slot.UserID, slot.SemesterKey)
	switch {
	case err == nil:
		if existing.Date == slot.Date && existing.StartTime == slot.StartTime {
			slot.ID = existing.ID
			return false, nil
		}
		slot.ID = existing.ID
	case errors.Is(err, sql.ErrNoRows):
		slot.ID = uuid.NewString()
	default:
		return false, fmt.Errorf("lookup advising slot: %w", err)
	}

	slot.UpdatedAt = time.Now().UTC()
	const upsert = `INSERT INTO advising_slots (id, user_id, semester_key, date, start_time, updated_at)
VALUES (:id, :user_id, :semester_key, :date, :start_time, :updated_at)
ON CONFLICT (user_id, semester_key)
DO UPDATE SET date = EXCLUDED.date, start_time = EXCLUDED.start_time, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, upsert, slot); err != nil {
		return false, fmt.Errorf("upsert advising slot: %w", err)
	}
	return true, nil
}

// GetByUser returns the slot for a semester, or nil when unassigned.
func (r *AdvisingRepository) GetByUser(ctx context.Context, userID, semesterKey string) (*models.AdvisingSlot, error) {
	const query = `SELECT id, user_id, semester_key, date, start_time, updated_at
FROM advising_slots WHERE user_id = $1 AND semester_key = $2`
	var slot models.AdvisingSlot
	if err := r.db.GetContext(ctx, &slot, query, userID, semesterKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get advising slot: %w", err)
	}
	return &slot, nil
}
