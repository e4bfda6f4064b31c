package models

import "time"

// Task is a due-dated piece of coursework (assignment, quiz, lab report).
// Creating one triggers reminder scheduling.
type Task struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	CourseName string    `db:"course_name" json:"course_name"`
	Type       string    `db:"type" json:"type"`
	DueDate    time.Time `db:"due_date" json:"due_date"`
	Completed  bool      `db:"completed" json:"completed"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
