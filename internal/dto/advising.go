package dto

// AssignAdvisingSlotRequest assigns or moves the advising slot for one
// semester. Date and start time are wall-clock strings in the operational
// timezone, e.g. "03 December 2025" and "09:00 AM".
type AssignAdvisingSlotRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
}
