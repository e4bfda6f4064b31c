package dto

// RunScheduleRequest is the admin trigger payload. Target defaults to today.
type RunScheduleRequest struct {
	Secret string `json:"secret" validate:"required"`
	Target string `json:"target" validate:"omitempty,oneof=today tomorrow"`
}

// ResetScheduleRequest triggers the destructive purge-and-reschedule path.
type ResetScheduleRequest struct {
	Secret string `json:"secret" validate:"required"`
}
