package taskqueue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type senderRecorder struct {
	mu    sync.Mutex
	sends []string
	err   error
}

func (s *senderRecorder) Send(ctx context.Context, token, title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sends = append(s.sends, token+"|"+title+"|"+body)
	return s.err
}

type historyRecorder struct {
	mu      sync.Mutex
	entries []string
}

func (h *historyRecorder) Append(ctx context.Context, userID, title, body, kind string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, userID+"|"+title)
	return nil
}

func TestDispatcherTickDeliversDueTasks(t *testing.T) {
	queue := NewMemoryQueue()
	sender := &senderRecorder{}
	history := &historyRecorder{}
	dispatcher := NewDispatcher(queue, sender, history, DispatcherConfig{})

	ctx := context.Background()
	now := time.Now()
	require.NoError(t, queue.CreateTask(ctx, "due", now.Add(-time.Minute), Payload{
		UserID: "u1", DeliveryToken: "tok", Title: "Class Reminder", Body: "soon",
	}))
	require.NoError(t, queue.CreateTask(ctx, "later", now.Add(time.Hour), Payload{UserID: "u1"}))

	dispatcher.Tick(ctx, now)

	require.Len(t, sender.sends, 1)
	assert.Equal(t, "tok|Class Reminder|soon", sender.sends[0])
	require.Len(t, history.entries, 1)
	assert.Equal(t, "u1|Class Reminder", history.entries[0])
	assert.Equal(t, 1, queue.Len(), "due task acked, future task kept")
}

func TestDispatcherAcksEvenWhenDeliveryFails(t *testing.T) {
	queue := NewMemoryQueue()
	sender := &senderRecorder{err: errors.New("downstream down")}
	history := &historyRecorder{}
	dispatcher := NewDispatcher(queue, sender, history, DispatcherConfig{})

	ctx := context.Background()
	now := time.Now()
	require.NoError(t, queue.CreateTask(ctx, "due", now.Add(-time.Minute), Payload{
		UserID: "u1", DeliveryToken: "tok", Title: "t", Body: "b",
	}))

	dispatcher.Tick(ctx, now)
	assert.Zero(t, queue.Len(), "failed delivery must still be acked")

	// A second tick must not attempt redelivery.
	dispatcher.Tick(ctx, now)
	assert.Len(t, sender.sends, 1)
}

func TestDispatcherStartStop(t *testing.T) {
	queue := NewMemoryQueue()
	dispatcher := NewDispatcher(queue, &senderRecorder{}, &historyRecorder{}, DispatcherConfig{
		PollInterval: 10 * time.Millisecond,
	})

	dispatcher.Start(context.Background())
	dispatcher.Start(context.Background()) // second call is a no-op
	time.Sleep(30 * time.Millisecond)
	dispatcher.Stop()
	dispatcher.Stop() // idempotent
}
