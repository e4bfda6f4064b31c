package dto

import "time"

// CreateTaskRequest creates a due-dated task and triggers its reminders.
type CreateTaskRequest struct {
	CourseName string    `json:"course_name" validate:"required"`
	Type       string    `json:"type" validate:"omitempty,max=40"`
	DueDate    time.Time `json:"due_date" validate:"required"`
}

// CreateTaskResponse reports the stored task and how many reminders were
// newly scheduled for it.
type CreateTaskResponse struct {
	ID                 string    `json:"id"`
	CourseName         string    `json:"course_name"`
	Type               string    `json:"type"`
	DueDate            time.Time `json:"due_date"`
	RemindersScheduled int       `json:"reminders_scheduled"`
}
