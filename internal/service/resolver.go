package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

// ResolvedClass is a class session pinned to one concrete calendar date,
// after exceptions have been applied. Start and end are minutes since local
// midnight.
type ResolvedClass struct {
	Title      string
	CourseCode string
	Room       string
	StartMins  int
	EndMins    int
}

// DisplayTitle falls back to the course code when no title is set.
func (c ResolvedClass) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.CourseCode
}

// DisplayRoom falls back to "Room TBA".
func (c ResolvedClass) DisplayRoom() string {
	if c.Room != "" {
		return c.Room
	}
	return "Room TBA"
}

// Resolver expands a weekly timetable into the concrete class list for one
// date, applying cancellation and makeup exceptions. In the default lenient
// mode a malformed time string skips that single class and the rest of the
// day survives; strict mode aborts the whole date instead.
type Resolver struct {
	strict bool
	logger *zap.Logger
}

// NewResolver constructs a resolver.
func NewResolver(strict bool, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{strict: strict, logger: logger}
}

// ResolveClassesForDate returns the date's classes sorted by start time,
// plus the number of entries skipped for malformed times.
func (r *Resolver) ResolveClassesForDate(timetable models.WeeklyTimetable, exceptions []models.ScheduleException, date time.Time) ([]ResolvedClass, int, error) {
	weekday := date.Weekday().String()
	base := timetable.ClassesOn(weekday)

	cancelled := make(map[string]struct{})
	var makeups []models.ScheduleException
	for _, ex := range exceptions {
		switch ex.Kind {
		case models.ExceptionCancellation:
			cancelled[models.NormalizedCourseCode(ex.CourseCode)] = struct{}{}
		case models.ExceptionMakeup:
			makeups = append(makeups, ex)
		}
	}

	resolved := make([]ResolvedClass, 0, len(base)+len(makeups))
	failures := 0

	for _, session := range base {
		if _, gone := cancelled[models.NormalizedCourseCode(session.CourseCode)]; gone {
			continue
		}
		cls, err := r.buildClass(session.Title, session.CourseCode, session.Room, session.StartTime, session.EndTime)
		if err != nil {
			if r.strict {
				return nil, failures + 1, err
			}
			failures++
			r.logger.Sugar().Warnw("skipping malformed class session",
				"course", session.CourseCode, "start", session.StartTime, "end", session.EndTime, "error", err)
			continue
		}
		resolved = append(resolved, cls)
	}

	for _, m := range makeups {
		title := m.CourseName
		if title == "" {
			title = m.CourseCode
		}
		room := m.Room
		if room == "" {
			room = "TBA"
		}
		cls, err := r.buildClass(title, m.CourseCode, room, m.StartTime, m.EndTime)
		if err != nil {
			if r.strict {
				return nil, failures + 1, err
			}
			failures++
			r.logger.Sugar().Warnw("skipping malformed makeup exception",
				"course", m.CourseCode, "date", m.Date, "error", err)
			continue
		}
		resolved = append(resolved, cls)
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].StartMins < resolved[j].StartMins
	})

	return resolved, failures, nil
}

func (r *Resolver) buildClass(title, code, room, start, end string) (ResolvedClass, error) {
	startMins, err := ParseClockMinutes(start)
	if err != nil {
		return ResolvedClass{}, err
	}
	endMins, err := ParseClockMinutes(end)
	if err != nil {
		return ResolvedClass{}, err
	}
	return ResolvedClass{
		Title:      title,
		CourseCode: code,
		Room:       room,
		StartMins:  startMins,
		EndMins:    endMins,
	}, nil
}

// ParseClockMinutes converts a 12-hour wall-clock string ("09:30 AM") to
// minutes since midnight. 12 AM maps to 0, 12 PM stays 12.
func ParseClockMinutes(raw string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) != 2 {
		return 0, appErrors.Clone(appErrors.ErrMalformedSchedule, fmt.Sprintf("invalid time %q", raw))
	}

	meridiem := strings.ToUpper(fields[1])
	if meridiem != "AM" && meridiem != "PM" {
		return 0, appErrors.Clone(appErrors.ErrMalformedSchedule, fmt.Sprintf("invalid meridiem in %q", raw))
	}

	parts := strings.Split(fields[0], ":")
	if len(parts) != 2 {
		return 0, appErrors.Clone(appErrors.ErrMalformedSchedule, fmt.Sprintf("invalid time %q", raw))
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, appErrors.Clone(appErrors.ErrMalformedSchedule, fmt.Sprintf("invalid hour in %q", raw))
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, appErrors.Clone(appErrors.ErrMalformedSchedule, fmt.Sprintf("invalid minute in %q", raw))
	}

	if meridiem == "PM" && hour < 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}

	return hour*60 + minute, nil
}
