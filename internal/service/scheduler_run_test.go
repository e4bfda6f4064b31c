package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmate/reminder-api/internal/models"
	"github.com/campusmate/reminder-api/internal/taskqueue"
	"github.com/campusmate/reminder-api/pkg/config"
)

type userListerStub struct {
	users []models.User
	err   error
}

func (s userListerStub) List(ctx context.Context) ([]models.User, error) {
	return s.users, s.err
}

type exceptionReaderStub struct {
	byUser map[string][]models.ScheduleException
	err    error
}

func (s exceptionReaderStub) ListByUserAndDate(ctx context.Context, userID, date string) ([]models.ScheduleException, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byUser[userID], nil
}

type pendingTaskListerStub struct {
	byUser map[string][]models.Task
}

func (s pendingTaskListerStub) ListPendingByUser(ctx context.Context, userID string) ([]models.Task, error) {
	return s.byUser[userID], nil
}

// failingScheduler fails submissions for the configured keys and delegates
// the rest.
type failingScheduler struct {
	mu       sync.Mutex
	inner    reminderScheduler
	failKeys map[string]struct{}
	failures int
}

func (s *failingScheduler) Schedule(ctx context.Context, req models.ReminderRequest) (ScheduleOutcome, error) {
	s.mu.Lock()
	_, fail := s.failKeys[req.Key]
	if fail {
		s.failures++
	}
	s.mu.Unlock()
	if fail {
		return 0, errors.New("queue unavailable")
	}
	return s.inner.Schedule(ctx, req)
}

func stringPtr(v string) *string { return &v }

func runServiceFixture(users []models.User, exceptions map[string][]models.ScheduleException, tasks map[string][]models.Task, queue taskqueue.Queue, now time.Time) *SchedulerRunService {
	policy := NewReminderPolicy(config.SchedulerConfig{}, dhaka)
	return NewSchedulerRunService(
		userListerStub{users: users},
		exceptionReaderStub{byUser: exceptions},
		pendingTaskListerStub{byUser: tasks},
		NewDispatchService(queue, nil),
		queue,
		NewResolver(false, nil),
		policy,
		4,
		nil,
		nil,
	).WithClock(func() time.Time { return now })
}

func tuesdayUser(id string) models.User {
	return models.User{
		ID:            id,
		DeliveryToken: stringPtr("token-" + id),
		WeeklyTimetable: models.WeeklyTimetable{
			"Tuesday": {
				{Title: "Structured Programming", CourseCode: "CSE110", StartTime: "09:30 AM", EndTime: "10:50 AM", Room: "UB-402"},
				{Title: "Calculus II", CourseCode: "MAT120", StartTime: "11:00 AM", EndTime: "12:20 PM", Room: "UB-301"},
			},
		},
	}
}

func TestRunForAllUsersSchedulesClassReminders(t *testing.T) {
	queue := taskqueue.NewMemoryQueue()
	now := localTime(2026, 3, 10, 6, 0) // Tuesday, before classes
	svc := runServiceFixture([]models.User{tuesdayUser("u1")}, nil, nil, queue, now)

	summary, err := svc.RunForAllUsers(context.Background(), RunTargetToday)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.UsersProcessed)
	// First class full set (3), second class gap 10m -> short set (2).
	assert.Equal(t, 5, summary.RemindersScheduled)
	assert.Zero(t, summary.Duplicates)
	assert.Equal(t, 5, queue.Len())
}

func TestRunForAllUsersIsIdempotent(t *testing.T) {
	queue := taskqueue.NewMemoryQueue()
	now := localTime(2026, 3, 10, 6, 0)
	svc := runServiceFixture([]models.User{tuesdayUser("u1")}, nil, nil, queue, now)

	first, err := svc.RunForAllUsers(context.Background(), RunTargetToday)
	require.NoError(t, err)
	second, err := svc.RunForAllUsers(context.Background(), RunTargetToday)
	require.NoError(t, err)

	assert.Equal(t, first.RemindersScheduled, second.Duplicates)
	assert.Zero(t, second.RemindersScheduled)
	assert.Equal(t, 5, queue.Len(), "re-run must not add queue entries")
}

func TestRunForAllUsersTomorrowTarget(t *testing.T) {
	queue := taskqueue.NewMemoryQueue()
	// Monday evening; tomorrow is Tuesday.
	now := localTime(2026, 3, 9, 20, 0)
	svc := runServiceFixture([]models.User{tuesdayUser("u1")}, nil, nil, queue, now)

	summary, err := svc.RunForAllUsers(context.Background(), RunTargetTomorrow)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.RemindersScheduled)
	for _, task := range queue.Snapshot() {
		assert.Contains(t, task.Name, "2026-03-10")
	}
}

func TestRunForAllUsersSkipsUnreachableUsers(t *testing.T) {
	queue := taskqueue.NewMemoryQueue()
	now := localTime(2026, 3, 10, 6, 0)
	noToken := tuesdayUser("u2")
	noToken.DeliveryToken = nil
	svc := runServiceFixture([]models.User{tuesdayUser("u1"), noToken}, nil, nil, queue, now)

	summary, err := svc.RunForAllUsers(context.Background(), RunTargetToday)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.UsersProcessed)
	assert.Equal(t, 1, summary.SkippedUsers)
	assert.Zero(t, summary.Errors)
}

func TestRunForAllUsersAppliesExceptions(t *testing.T) {
	queue := taskqueue.NewMemoryQueue()
	now := localTime(2026, 3, 10, 6, 0)
	exceptions := map[string][]models.ScheduleException{
		"u1": {
			{Date: "2026-03-10", CourseCode: "CSE110", Kind: models.ExceptionCancellation},
		},
	}
	svc := runServiceFixture([]models.User{tuesdayUser("u1")}, exceptions, nil, queue, now)

	summary, err := svc.RunForAllUsers(context.Background(), RunTargetToday)
	require.NoError(t, err)
	// Only MAT120 remains and with CSE110 gone it is first class of the day.
	assert.Equal(t, 3, summary.RemindersScheduled)
	for _, task := range queue.Snapshot() {
		assert.Contains(t, task.Name, "MAT120")
	}
}

func TestRunForAllUsersIsolatesSubmissionFailures(t *testing.T) {
	queue := taskqueue.NewMemoryQueue()
	now := localTime(2026, 3, 10, 6, 0)
	svc := runServiceFixture([]models.User{tuesdayUser("u1")}, nil, nil, queue, now)
	svc.dispatch = &failingScheduler{
		inner:    NewDispatchService(queue, nil),
		failKeys: map[string]struct{}{"cls-u1-CSE110-2026-03-10-30m": {}},
	}

	summary, err := svc.RunForAllUsers(context.Background(), RunTargetToday)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 4, summary.RemindersScheduled)
}

func TestRunForAllUsersCountsParseFailures(t *testing.T) {
	queue := taskqueue.NewMemoryQueue()
	now := localTime(2026, 3, 10, 6, 0)
	user := tuesdayUser("u1")
	user.WeeklyTimetable["Tuesday"] = append(user.WeeklyTimetable["Tuesday"],
		models.ClassSession{CourseCode: "BAD", StartTime: "garbled", EndTime: "10:00 AM"})
	svc := runServiceFixture([]models.User{user}, nil, nil, queue, now)

	summary, err := svc.RunForAllUsers(context.Background(), RunTargetToday)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ParseFailures)
	assert.Equal(t, 5, summary.RemindersScheduled)
}

func TestFullResetPurgesAndReschedules(t *testing.T) {
	queue := taskqueue.NewMemoryQueue()
	// Seed a stale task that the purge must remove.
	require.NoError(t, queue.CreateTask(context.Background(), "stale-task", time.Now().Add(time.Hour), taskqueue.Payload{}))

	now := localTime(2026, 3, 10, 6, 0) // Tuesday; tomorrow Wednesday is empty
	tasks := map[string][]models.Task{
		"u1": {
			{ID: "t1", UserID: "u1", CourseName: "CSE110", Type: "assignment", DueDate: localTime(2026, 3, 12, 9, 0)},
		},
	}
	svc := runServiceFixture([]models.User{tuesdayUser("u1")}, nil, tasks, queue, now)

	summary, err := svc.FullReset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TasksRescheduled)
	// 5 class reminders for today + 2 task reminders; nothing for Wednesday.
	assert.Equal(t, 7, summary.RemindersScheduled)
	for _, task := range queue.Snapshot() {
		assert.NotEqual(t, "stale-task", task.Name)
	}
}

func TestParseRunTarget(t *testing.T) {
	target, err := ParseRunTarget("")
	require.NoError(t, err)
	assert.Equal(t, RunTargetToday, target)

	target, err = ParseRunTarget("tomorrow")
	require.NoError(t, err)
	assert.Equal(t, RunTargetTomorrow, target)

	_, err = ParseRunTarget("yesterday")
	require.Error(t, err)
}
