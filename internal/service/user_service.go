package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

type timetableWriter interface {
	UpdateTimetable(ctx context.Context, userID string, timetable models.WeeklyTimetable) error
}

// UserService covers the profile operations the scheduler cares about,
// currently just wholesale timetable replacement.
type UserService struct {
	repo   timetableWriter
	logger *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(repo timetableWriter, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger}
}

// ReplaceTimetable swaps the user's weekly timetable. Every session's time
// range must parse; a timetable with a bad entry is rejected wholesale rather
// than stored and skipped on every future run.
func (s *UserService) ReplaceTimetable(ctx context.Context, userID string, timetable models.WeeklyTimetable) error {
	for weekday, sessions := range timetable {
		for _, session := range sessions {
			if _, err := ParseClockMinutes(session.StartTime); err != nil {
				return appErrors.Clone(appErrors.ErrMalformedSchedule, "bad start time for "+session.CourseCode+" on "+weekday)
			}
			if _, err := ParseClockMinutes(session.EndTime); err != nil {
				return appErrors.Clone(appErrors.ErrMalformedSchedule, "bad end time for "+session.CourseCode+" on "+weekday)
			}
		}
	}

	if err := s.repo.UpdateTimetable(ctx, userID, timetable); err != nil {
		return appErrors.FromError(err)
	}
	s.logger.Sugar().Infow("timetable replaced", "user", userID)
	return nil
}
