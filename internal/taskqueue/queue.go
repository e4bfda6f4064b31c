package taskqueue

import (
	"context"
	"time"
)

// Payload is what a deferred task carries until it fires.
type Payload struct {
	UserID        string `json:"userId"`
	DeliveryToken string `json:"deliveryToken"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}

// Task is a named deferred delivery entry.
type Task struct {
	Name    string
	FireAt  time.Time
	Payload Payload
}

// Queue is the deferred delivery queue contract. CreateTask is at-most-once
// per name: submitting an existing name returns pkg/errors.ErrTaskExists and
// leaves the original entry untouched. That single property is what makes
// scheduler re-runs safe.
type Queue interface {
	CreateTask(ctx context.Context, name string, fireAt time.Time, payload Payload) error
	Due(ctx context.Context, now time.Time) ([]Task, error)
	Ack(ctx context.Context, name string) error
	PurgeAll(ctx context.Context) error
}
