package models

import "time"

// User is a student profile as the scheduler sees it: identity, the weekly
// timetable, and the push delivery token. Users without a token are
// unreachable and skipped by every scheduling path.
type User struct {
	ID              string          `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	DeliveryToken   *string         `db:"delivery_token" json:"delivery_token,omitempty"`
	WeeklyTimetable WeeklyTimetable `db:"weekly_timetable" json:"weekly_timetable"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Reachable reports whether reminders can be delivered to the user.
func (u *User) Reachable() bool {
	return u.DeliveryToken != nil && *u.DeliveryToken != ""
}
