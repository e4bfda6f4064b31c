package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

// Tuesday in the test calendar.
var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func testTimetable() models.WeeklyTimetable {
	return models.WeeklyTimetable{
		"Tuesday": {
			{Title: "Structured Programming", CourseCode: "CSE110", StartTime: "09:30 AM", EndTime: "10:50 AM", Room: "UB-402"},
			{Title: "Calculus II", CourseCode: "MAT120", StartTime: "11:00 AM", EndTime: "12:20 PM", Room: "UB-301"},
		},
	}
}

func TestParseClockMinutes(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"09:30 AM", 570},
		{"9:30 AM", 570},
		{"12:00 AM", 0},
		{"12:00 PM", 720},
		{"12:30 PM", 750},
		{"01:05 PM", 785},
		{"11:59 PM", 1439},
	}
	for _, tc := range cases {
		got, err := ParseClockMinutes(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestParseClockMinutesMalformed(t *testing.T) {
	for _, raw := range []string{"", "09:30", "09:30 XM", "25:00 AM", "09:60 AM", "nine AM", "09 30 AM"} {
		_, err := ParseClockMinutes(raw)
		require.Error(t, err, raw)
		assert.Equal(t, appErrors.ErrMalformedSchedule.Code, appErrors.FromError(err).Code, raw)
	}
}

func TestResolveClassesForDateBase(t *testing.T) {
	resolver := NewResolver(false, nil)

	classes, failures, err := resolver.ResolveClassesForDate(testTimetable(), nil, testDate)
	require.NoError(t, err)
	assert.Zero(t, failures)
	require.Len(t, classes, 2)
	assert.Equal(t, "CSE110", classes[0].CourseCode)
	assert.Equal(t, 570, classes[0].StartMins)
	assert.Equal(t, 650, classes[0].EndMins)
	assert.Equal(t, "MAT120", classes[1].CourseCode)
}

func TestResolveClassesForDateEmptyWeekday(t *testing.T) {
	resolver := NewResolver(false, nil)
	// Wednesday has no entry in the timetable.
	classes, failures, err := resolver.ResolveClassesForDate(testTimetable(), nil, testDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, failures)
	assert.Empty(t, classes)
}

func TestResolveClassesCancellationMatchesNormalizedCode(t *testing.T) {
	resolver := NewResolver(false, nil)
	exceptions := []models.ScheduleException{
		{Date: "2026-03-10", CourseCode: "cse 110", Kind: models.ExceptionCancellation},
	}

	classes, _, err := resolver.ResolveClassesForDate(testTimetable(), exceptions, testDate)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "MAT120", classes[0].CourseCode)
}

func TestResolveClassesMakeupAlwaysAdds(t *testing.T) {
	resolver := NewResolver(false, nil)
	exceptions := []models.ScheduleException{
		{Date: "2026-03-10", CourseCode: "PHY111", Kind: models.ExceptionMakeup, StartTime: "08:00 AM", EndTime: "09:20 AM"},
	}

	classes, _, err := resolver.ResolveClassesForDate(testTimetable(), exceptions, testDate)
	require.NoError(t, err)
	require.Len(t, classes, 3)
	// Makeup starts earliest so it sorts first; no course name falls back to
	// the code and no room becomes TBA.
	assert.Equal(t, "PHY111", classes[0].Title)
	assert.Equal(t, "TBA", classes[0].Room)
	assert.Equal(t, 480, classes[0].StartMins)
}

func TestResolveClassesSortedByStart(t *testing.T) {
	timetable := models.WeeklyTimetable{
		"Tuesday": {
			{CourseCode: "LATE", StartTime: "02:00 PM", EndTime: "03:20 PM"},
			{CourseCode: "EARLY", StartTime: "08:00 AM", EndTime: "09:20 AM"},
			{CourseCode: "MID", StartTime: "11:00 AM", EndTime: "12:20 PM"},
		},
	}
	resolver := NewResolver(false, nil)

	classes, _, err := resolver.ResolveClassesForDate(timetable, nil, testDate)
	require.NoError(t, err)
	require.Len(t, classes, 3)
	assert.Equal(t, []string{"EARLY", "MID", "LATE"}, []string{classes[0].CourseCode, classes[1].CourseCode, classes[2].CourseCode})
}

func TestResolveClassesMalformedEntrySkipped(t *testing.T) {
	timetable := models.WeeklyTimetable{
		"Tuesday": {
			{CourseCode: "A1", StartTime: "08:00 AM", EndTime: "09:20 AM"},
			{CourseCode: "A2", StartTime: "09:30 AM", EndTime: "10:50 AM"},
			{CourseCode: "BAD", StartTime: "half past nine", EndTime: "10:50 AM"},
			{CourseCode: "A3", StartTime: "11:00 AM", EndTime: "12:20 PM"},
			{CourseCode: "A4", StartTime: "01:00 PM", EndTime: "02:20 PM"},
		},
	}
	resolver := NewResolver(false, nil)

	classes, failures, err := resolver.ResolveClassesForDate(timetable, nil, testDate)
	require.NoError(t, err)
	assert.Equal(t, 1, failures)
	assert.Len(t, classes, 4)
}

func TestResolveClassesStrictModeAborts(t *testing.T) {
	timetable := models.WeeklyTimetable{
		"Tuesday": {
			{CourseCode: "BAD", StartTime: "nope", EndTime: "10:50 AM"},
		},
	}
	resolver := NewResolver(true, nil)

	_, _, err := resolver.ResolveClassesForDate(timetable, nil, testDate)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedSchedule.Code, appErrors.FromError(err).Code)
}
