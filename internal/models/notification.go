package models

import "time"

// Notification types recorded in the per-user history log.
const (
	NotificationTypeReminder = "reminder"
	NotificationTypeAdvising = "advising"
)

// Notification is one entry in the append-only per-user history. The
// scheduler only writes this log; it is read by the client app.
type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Type      string    `db:"type" json:"type"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ReminderRequest is the unit handed to the deferred delivery queue. Key is
// the idempotency key: a deterministic function of the reminder category,
// user, subject, date and offset, so re-runs never enqueue duplicates.
type ReminderRequest struct {
	Key           string    `json:"key"`
	UserID        string    `json:"user_id"`
	DeliveryToken string    `json:"delivery_token"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	FireAt        time.Time `json:"fire_at"`
}
