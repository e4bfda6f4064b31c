package models

import (
	"strings"
	"time"

	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

// ExceptionKind is the closed set of per-date schedule overrides.
type ExceptionKind string

const (
	ExceptionCancellation ExceptionKind = "cancellation"
	ExceptionMakeup       ExceptionKind = "makeup"
)

// ParseExceptionKind normalises raw kind strings at the store boundary.
// Legacy writers used "cancel" interchangeably with "cancellation"; anything
// else is rejected rather than silently ignored.
func ParseExceptionKind(raw string) (ExceptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cancel", "cancellation":
		return ExceptionCancellation, nil
	case "makeup":
		return ExceptionMakeup, nil
	default:
		return "", appErrors.Clone(appErrors.ErrUnknownExceptionKind, "unrecognized schedule exception kind: "+raw)
	}
}

// ScheduleException overrides one user's timetable on one calendar date.
// A cancellation removes base classes by course code; a makeup adds a class
// with its own time range and room.
type ScheduleException struct {
	ID         string        `db:"id" json:"id"`
	UserID     string        `db:"user_id" json:"user_id"`
	Date       string        `db:"date" json:"date"`
	CourseCode string        `db:"course_code" json:"course_code"`
	Kind       ExceptionKind `db:"kind" json:"kind"`
	CourseName string        `db:"course_name" json:"course_name,omitempty"`
	StartTime  string        `db:"start_time" json:"start_time,omitempty"`
	EndTime    string        `db:"end_time" json:"end_time,omitempty"`
	Room       string        `db:"room" json:"room,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// NormalizedCourseCode strips whitespace and upper-cases a course code so
// "cse 110" and "CSE110" compare equal.
func NormalizedCourseCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}
