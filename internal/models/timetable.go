package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ClassSession is one recurring entry in the weekly timetable. Times are
// local wall-clock strings in 12-hour format ("09:30 AM"), interpreted in
// the operational timezone.
type ClassSession struct {
	Title      string `json:"title"`
	CourseCode string `json:"courseCode"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Room       string `json:"room"`
}

// WeeklyTimetable maps a weekday name ("Saturday" .. "Friday") to that day's
// class sessions. It is replaced wholesale whenever the schedule is
// regenerated, and stored as a JSONB column.
type WeeklyTimetable map[string][]ClassSession

// Value implements driver.Valuer for JSONB storage.
func (t WeeklyTimetable) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB storage.
func (t *WeeklyTimetable) Scan(src interface{}) error {
	if src == nil {
		*t = WeeklyTimetable{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported timetable column type %T", src)
	}
	return json.Unmarshal(raw, t)
}

// ClassesOn returns the base sessions for a weekday name.
func (t WeeklyTimetable) ClassesOn(weekday string) []ClassSession {
	if t == nil {
		return nil
	}
	return t[weekday]
}
