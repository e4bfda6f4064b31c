package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// NotificationRepository is the append-only per-user notification history.
// The scheduler only ever writes here.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Append records a sent or attempted notification.
func (r *NotificationRepository) Append(ctx context.Context, userID, title, body, kind string) error {
	const query = `INSERT INTO notifications (id, user_id, title, body, type, read, created_at)
VALUES ($1, $2, $3, $4, $5, FALSE, $6)`
	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, title, body, kind, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append notification for %s: %w", userID, err)
	}
	return nil
}
