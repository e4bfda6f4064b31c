package models

import "time"

// AdvisingSlot is a per-semester advising appointment. Date and start time
// are wall-clock strings ("03 December 2025", "09:00 AM") in the operational
// timezone. Assignment or change of a slot triggers an immediate
// notification plus one deferred reminder.
type AdvisingSlot struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	SemesterKey string    `db:"semester_key" json:"semester_key"`
	Date        string    `db:"date" json:"date"`
	StartTime   string    `db:"start_time" json:"start_time"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
