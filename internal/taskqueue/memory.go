package taskqueue

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

// MemoryQueue is an in-process Queue with the same at-most-once-per-name
// semantics as the Redis implementation. Used in tests and local development
// without a Redis instance.
type MemoryQueue struct {
	mu    sync.Mutex
	tasks map[string]Task
}

// NewMemoryQueue constructs an empty in-memory queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{tasks: make(map[string]Task)}
}

// CreateTask submits a named task, returning ErrTaskExists on duplicates.
func (q *MemoryQueue) CreateTask(ctx context.Context, name string, fireAt time.Time, payload Payload) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.tasks[name]; ok {
		return appErrors.Clone(appErrors.ErrTaskExists, "task "+name+" already scheduled")
	}
	q.tasks[name] = Task{Name: name, FireAt: fireAt, Payload: payload}
	return nil
}

// Due returns tasks whose fire time is at or before now.
func (q *MemoryQueue) Due(ctx context.Context, now time.Time) ([]Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var due []Task
	for _, t := range q.tasks {
		if !t.FireAt.After(now) {
			due = append(due, t)
		}
	}
	return due, nil
}

// Ack removes a task.
func (q *MemoryQueue) Ack(ctx context.Context, name string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.tasks, name)
	return nil
}

// PurgeAll drops every pending task.
func (q *MemoryQueue) PurgeAll(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = make(map[string]Task)
	return nil
}

// Len reports the number of pending tasks.
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Snapshot returns a copy of every pending task, for inspection in tests.
func (q *MemoryQueue) Snapshot() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Task, 0, len(q.tasks))
	for _, t := range q.tasks {
		out = append(out, t)
	}
	return out
}
