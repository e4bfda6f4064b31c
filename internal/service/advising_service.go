package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusmate/reminder-api/internal/dto"
	"github.com/campusmate/reminder-api/internal/models"
	"github.com/campusmate/reminder-api/internal/taskqueue"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

type advisingRepository interface {
	Upsert(ctx context.Context, slot *models.AdvisingSlot) (bool, error)
	GetByUser(ctx context.Context, userID, semesterKey string) (*models.AdvisingSlot, error)
}

type historyAppender interface {
	Append(ctx context.Context, userID, title, body, kind string) error
}

// AdvisingService handles advising slot assignment: an immediate
// notification plus one deferred reminder ahead of the slot.
type AdvisingService struct {
	repo      advisingRepository
	users     userGetter
	history   historyAppender
	sender    taskqueue.Sender
	dispatch  reminderScheduler
	policy    ReminderPolicy
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAdvisingService constructs the service.
func NewAdvisingService(
	repo advisingRepository,
	users userGetter,
	history historyAppender,
	sender taskqueue.Sender,
	dispatch reminderScheduler,
	policy ReminderPolicy,
	validate *validator.Validate,
	logger *zap.Logger,
) *AdvisingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisingService{
		repo:      repo,
		users:     users,
		history:   history,
		sender:    sender,
		dispatch:  dispatch,
		policy:    policy,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (s *AdvisingService) WithClock(now func() time.Time) *AdvisingService {
	s.now = now
	return s
}

// AssignResult reports what the assignment triggered.
type AssignResult struct {
	Changed           bool `json:"changed"`
	ImmediateSent     bool `json:"immediate_sent"`
	ReminderScheduled bool `json:"reminder_scheduled"`
}

// Assign stores the slot for the semester. If the slot value actually
// changed it sends the assignment notification right away and schedules the
// deferred reminder; re-assigning the same slot is a no-op.
func (s *AdvisingService) Assign(ctx context.Context, userID, semesterKey string, req dto.AssignAdvisingSlotRequest) (*AssignResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid advising payload")
	}

	slot := &models.AdvisingSlot{
		UserID:      userID,
		SemesterKey: semesterKey,
		Date:        req.Date,
		StartTime:   req.StartTime,
	}
	if _, err := s.policy.ParseAdvisingSlotTime(*slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unparseable advising slot time")
	}

	changed, err := s.repo.Upsert(ctx, slot)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store advising slot")
	}
	if !changed {
		return &AssignResult{}, nil
	}

	result := &AssignResult{Changed: true}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "user not found")
	}
	if !user.Reachable() {
		return result, nil
	}
	token := *user.DeliveryToken

	title := "Advising Slot Assigned"
	body := fmt.Sprintf("Your advising time for %s is %s at %s.", semesterKey, slot.Date, slot.StartTime)

	if err := s.history.Append(ctx, userID, title, body, models.NotificationTypeAdvising); err != nil {
		s.logger.Sugar().Errorw("failed to record advising notification", "user", userID, "error", err)
	}

	// The assignment notification goes out immediately regardless of slot timing.
	if err := s.sender.Send(ctx, token, title, body); err != nil {
		s.logger.Sugar().Errorw("failed to send advising notification", "user", userID, "error", err)
	} else {
		result.ImmediateSent = true
	}

	reminder, err := s.policy.AdvisingReminder(userID, token, *slot, s.now())
	if err != nil {
		return result, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "compute advising reminder")
	}
	if reminder == nil {
		return result, nil
	}

	if _, err := s.dispatch.Schedule(ctx, *reminder); err != nil {
		s.logger.Sugar().Errorw("failed to schedule advising reminder", "user", userID, "error", err)
		return result, nil
	}
	result.ReminderScheduled = true
	s.logger.Sugar().Infow("advising reminder scheduled", "user", userID, "fire_at", reminder.FireAt)

	return result, nil
}

// Get returns the assigned slot for a semester.
func (s *AdvisingService) Get(ctx context.Context, userID, semesterKey string) (*models.AdvisingSlot, error) {
	slot, err := s.repo.GetByUser(ctx, userID, semesterKey)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "get advising slot")
	}
	if slot == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no advising slot assigned")
	}
	return slot, nil
}
