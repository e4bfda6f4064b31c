package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyTimetableScan(t *testing.T) {
	raw := []byte(`{"Tuesday":[{"title":"Intro to Programming","courseCode":"CSE110","startTime":"09:30 AM","endTime":"10:50 AM","room":"UB201"}]}`)

	var timetable WeeklyTimetable
	require.NoError(t, timetable.Scan(raw))
	require.Len(t, timetable.ClassesOn("Tuesday"), 1)
	assert.Equal(t, "CSE110", timetable.ClassesOn("Tuesday")[0].CourseCode)
	assert.Empty(t, timetable.ClassesOn("Wednesday"))
}

func TestWeeklyTimetableScanNull(t *testing.T) {
	var timetable WeeklyTimetable
	require.NoError(t, timetable.Scan(nil))
	assert.NotNil(t, timetable)
	assert.Empty(t, timetable.ClassesOn("Tuesday"))
}

func TestWeeklyTimetableValueNil(t *testing.T) {
	var timetable WeeklyTimetable
	value, err := timetable.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), value)
}

func TestUserReachable(t *testing.T) {
	token := "tok"
	empty := ""
	assert.True(t, (&User{DeliveryToken: &token}).Reachable())
	assert.False(t, (&User{DeliveryToken: &empty}).Reachable())
	assert.False(t, (&User{}).Reachable())
}
