package dto

// CreateExceptionRequest records a one-date schedule override. Kind accepts
// the legacy "cancel" spelling; anything outside the closed set is rejected.
// Start/end/room only apply to makeups.
type CreateExceptionRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	CourseCode string `json:"course_code" validate:"required"`
	Kind       string `json:"kind" validate:"required"`
	CourseName string `json:"course_name" validate:"omitempty,max=120"`
	StartTime  string `json:"start_time" validate:"required_if=Kind makeup"`
	EndTime    string `json:"end_time" validate:"required_if=Kind makeup"`
	Room       string `json:"room"`
}
