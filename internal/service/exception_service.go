package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusmate/reminder-api/internal/dto"
	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

type exceptionRepository interface {
	Create(ctx context.Context, ex *models.ScheduleException) error
}

// ExceptionService records per-date schedule exceptions. Kinds are
// normalised to the closed cancellation/makeup set at this boundary.
type ExceptionService struct {
	repo      exceptionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExceptionService constructs the service.
func NewExceptionService(repo exceptionRepository, validate *validator.Validate, logger *zap.Logger) *ExceptionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExceptionService{repo: repo, validator: validate, logger: logger}
}

// Create validates, normalises and stores an exception.
func (s *ExceptionService) Create(ctx context.Context, userID string, req dto.CreateExceptionRequest) (*models.ScheduleException, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exception payload")
	}

	kind, err := models.ParseExceptionKind(req.Kind)
	if err != nil {
		return nil, err
	}

	ex := &models.ScheduleException{
		UserID:     userID,
		Date:       req.Date,
		CourseCode: req.CourseCode,
		Kind:       kind,
		CourseName: req.CourseName,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Room:       req.Room,
	}

	if kind == models.ExceptionMakeup {
		if _, err := ParseClockMinutes(ex.StartTime); err != nil {
			return nil, err
		}
		if _, err := ParseClockMinutes(ex.EndTime); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, ex); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create schedule exception")
	}
	return ex, nil
}
