package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

// RedisQueue stores deferred tasks in Redis: payloads in a hash keyed by
// task name, fire times in a sorted set scored by unix time. HSETNX gives
// the exists-check semantics the idempotency contract requires; concurrent
// submissions of the same name race harmlessly because only one HSETNX wins.
type RedisQueue struct {
	client *redis.Client
	name   string
}

// NewRedisQueue constructs a queue under the given name.
func NewRedisQueue(client *redis.Client, name string) *RedisQueue {
	if name == "" {
		name = "notification-queue"
	}
	return &RedisQueue{client: client, name: name}
}

func (q *RedisQueue) payloadKey() string  { return q.name + ":tasks" }
func (q *RedisQueue) scheduleKey() string { return q.name + ":schedule" }

// CreateTask submits a named deferred task. Returns ErrTaskExists when the
// name is already present.
func (q *RedisQueue) CreateTask(ctx context.Context, name string, fireAt time.Time, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrQueueSubmission.Code, appErrors.ErrQueueSubmission.Status, "encode task payload")
	}

	added, err := q.client.HSetNX(ctx, q.payloadKey(), name, raw).Result()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrQueueSubmission.Code, appErrors.ErrQueueSubmission.Status, "submit task "+name)
	}
	if !added {
		return appErrors.Clone(appErrors.ErrTaskExists, fmt.Sprintf("task %s already scheduled", name))
	}

	err = q.client.ZAdd(ctx, q.scheduleKey(), redis.Z{Score: float64(fireAt.Unix()), Member: name}).Err()
	if err != nil {
		// Roll back the payload so a retry is not swallowed as a duplicate.
		_ = q.client.HDel(ctx, q.payloadKey(), name).Err()
		return appErrors.Wrap(err, appErrors.ErrQueueSubmission.Code, appErrors.ErrQueueSubmission.Status, "schedule task "+name)
	}
	return nil
}

// Due returns every task whose fire time is at or before now.
func (q *RedisQueue) Due(ctx context.Context, now time.Time) ([]Task, error) {
	names, err := q.client.ZRangeByScore(ctx, q.scheduleKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now.Unix()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	tasks := make([]Task, 0, len(names))
	for _, name := range names {
		raw, err := q.client.HGet(ctx, q.payloadKey(), name).Result()
		if err == redis.Nil {
			// Orphaned schedule entry; drop it.
			_ = q.client.ZRem(ctx, q.scheduleKey(), name).Err()
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load task %s: %w", name, err)
		}
		var payload Payload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			_ = q.Ack(ctx, name)
			continue
		}
		tasks = append(tasks, Task{Name: name, Payload: payload})
	}
	return tasks, nil
}

// Ack removes a fired task from both structures.
func (q *RedisQueue) Ack(ctx context.Context, name string) error {
	pipe := q.client.TxPipeline()
	pipe.ZRem(ctx, q.scheduleKey(), name)
	pipe.HDel(ctx, q.payloadKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("ack task %s: %w", name, err)
	}
	return nil
}

// PurgeAll drops every pending task. Used only by the full reset.
func (q *RedisQueue) PurgeAll(ctx context.Context) error {
	if err := q.client.Del(ctx, q.payloadKey(), q.scheduleKey()).Err(); err != nil {
		return fmt.Errorf("purge queue %s: %w", q.name, err)
	}
	return nil
}
