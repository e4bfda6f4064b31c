package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campusmate/reminder-api/internal/models"
	"github.com/campusmate/reminder-api/internal/taskqueue"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

// ScheduleOutcome classifies a queue submission.
type ScheduleOutcome int

const (
	// OutcomeScheduled means a new deferred task was created.
	OutcomeScheduled ScheduleOutcome = iota
	// OutcomeDuplicate means the idempotency key was already present.
	// Duplicates are success, not failure.
	OutcomeDuplicate
)

// DispatchService converts reminder requests into uniquely named deferred
// tasks. Failure of one submission never affects siblings; the caller counts
// errors and keeps going.
type DispatchService struct {
	queue  taskqueue.Queue
	logger *zap.Logger
}

// NewDispatchService constructs the service.
func NewDispatchService(queue taskqueue.Queue, logger *zap.Logger) *DispatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DispatchService{queue: queue, logger: logger}
}

// Schedule submits one reminder. An already-existing key is reported as
// OutcomeDuplicate with a nil error.
func (s *DispatchService) Schedule(ctx context.Context, req models.ReminderRequest) (ScheduleOutcome, error) {
	err := s.queue.CreateTask(ctx, req.Key, req.FireAt, taskqueue.Payload{
		UserID:        req.UserID,
		DeliveryToken: req.DeliveryToken,
		Title:         req.Title,
		Body:          req.Body,
	})
	if err == nil {
		return OutcomeScheduled, nil
	}
	if appErrors.Is(err, appErrors.ErrTaskExists) {
		s.logger.Sugar().Debugw("task already scheduled", "task", req.Key)
		return OutcomeDuplicate, nil
	}

	s.logger.Sugar().Errorw("failed to schedule task", "task", req.Key, "user", req.UserID, "error", err)
	return 0, err
}
