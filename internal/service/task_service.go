package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusmate/reminder-api/internal/dto"
	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

type taskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	MarkCompleted(ctx context.Context, userID, taskID string) error
}

type userGetter interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TaskService creates tasks and schedules their reminders on creation.
type TaskService struct {
	repo      taskRepository
	users     userGetter
	dispatch  reminderScheduler
	policy    ReminderPolicy
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTaskService constructs the service.
func NewTaskService(repo taskRepository, users userGetter, dispatch reminderScheduler, policy ReminderPolicy, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		repo:      repo,
		users:     users,
		dispatch:  dispatch,
		policy:    policy,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// Create stores the task and schedules its evening-before and morning-of
// reminders. A user without a delivery token still gets the task; the
// reminders are silently skipped.
func (s *TaskService) Create(ctx context.Context, userID string, req dto.CreateTaskRequest) (*models.Task, int, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}

	task := &models.Task{
		UserID:     userID,
		CourseName: req.CourseName,
		Type:       req.Type,
		DueDate:    req.DueDate,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create task")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "user not found")
	}
	if !user.Reachable() {
		return task, 0, nil
	}

	scheduled := 0
	for _, reminder := range s.policy.TaskReminders(userID, *user.DeliveryToken, *task, s.now()) {
		outcome, err := s.dispatch.Schedule(ctx, reminder)
		if err != nil {
			s.logger.Sugar().Errorw("failed to schedule task reminder", "task", task.ID, "user", userID, "error", err)
			continue
		}
		if outcome == OutcomeScheduled {
			scheduled++
		}
	}
	return task, scheduled, nil
}

// Complete marks a task done so resets stop rescheduling it.
func (s *TaskService) Complete(ctx context.Context, userID, taskID string) error {
	if err := s.repo.MarkCompleted(ctx, userID, taskID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "complete task")
	}
	return nil
}
