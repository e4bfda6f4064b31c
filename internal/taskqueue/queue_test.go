package taskqueue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

func TestMemoryQueueCreateTaskIsAtMostOncePerName(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()
	fireAt := time.Now().Add(time.Hour)

	require.NoError(t, queue.CreateTask(ctx, "cls-u1-CSE110-2026-03-10-30m", fireAt, Payload{UserID: "u1"}))

	err := queue.CreateTask(ctx, "cls-u1-CSE110-2026-03-10-30m", fireAt.Add(time.Minute), Payload{UserID: "u1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTaskExists.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 1, queue.Len())

	// The original fire time survives the duplicate submission.
	tasks := queue.Snapshot()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].FireAt.Equal(fireAt))
}

func TestMemoryQueueDueRespectsFireTime(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, queue.CreateTask(ctx, "past", now.Add(-time.Minute), Payload{}))
	require.NoError(t, queue.CreateTask(ctx, "exact", now, Payload{}))
	require.NoError(t, queue.CreateTask(ctx, "future", now.Add(time.Hour), Payload{}))

	due, err := queue.Due(ctx, now)
	require.NoError(t, err)
	names := make(map[string]struct{}, len(due))
	for _, task := range due {
		names[task.Name] = struct{}{}
	}
	assert.Contains(t, names, "past")
	assert.Contains(t, names, "exact")
	assert.NotContains(t, names, "future")
}

func TestMemoryQueueAckAndPurge(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	require.NoError(t, queue.CreateTask(ctx, "a", time.Now(), Payload{}))
	require.NoError(t, queue.CreateTask(ctx, "b", time.Now(), Payload{}))

	require.NoError(t, queue.Ack(ctx, "a"))
	assert.Equal(t, 1, queue.Len())

	// Acked names can be scheduled again.
	require.NoError(t, queue.CreateTask(ctx, "a", time.Now(), Payload{}))

	require.NoError(t, queue.PurgeAll(ctx))
	assert.Zero(t, queue.Len())
}
