package dto

import "github.com/campusmate/reminder-api/internal/models"

// ReplaceTimetableRequest swaps the user's weekly timetable wholesale. The
// companion app regenerates the whole map whenever the course plan changes.
type ReplaceTimetableRequest struct {
	WeeklyTimetable models.WeeklyTimetable `json:"weekly_timetable" validate:"required"`
}
