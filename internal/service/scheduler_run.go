package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campusmate/reminder-api/internal/models"
	appErrors "github.com/campusmate/reminder-api/pkg/errors"
)

// RunTarget selects which day a scheduler run covers.
type RunTarget string

const (
	RunTargetToday    RunTarget = "today"
	RunTargetTomorrow RunTarget = "tomorrow"
)

// ParseRunTarget normalises a raw target string; empty defaults to today.
func ParseRunTarget(raw string) (RunTarget, error) {
	switch raw {
	case "", string(RunTargetToday):
		return RunTargetToday, nil
	case string(RunTargetTomorrow):
		return RunTargetTomorrow, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid run target %q", raw))
	}
}

// RunSummary aggregates a run's outcome. Per-user failures are absorbed into
// Errors; the run as a whole only fails when the user listing itself does.
type RunSummary struct {
	UsersProcessed     int `json:"users_processed"`
	SkippedUsers       int `json:"skipped_users"`
	RemindersScheduled int `json:"reminders_scheduled"`
	Duplicates         int `json:"duplicates"`
	ParseFailures      int `json:"parse_failures"`
	Errors             int `json:"errors"`
	TasksRescheduled   int `json:"tasks_rescheduled"`
}

func (s *RunSummary) add(other RunSummary) {
	s.UsersProcessed += other.UsersProcessed
	s.SkippedUsers += other.SkippedUsers
	s.RemindersScheduled += other.RemindersScheduled
	s.Duplicates += other.Duplicates
	s.ParseFailures += other.ParseFailures
	s.Errors += other.Errors
	s.TasksRescheduled += other.TasksRescheduled
}

type userLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type exceptionReader interface {
	ListByUserAndDate(ctx context.Context, userID, date string) ([]models.ScheduleException, error)
}

type pendingTaskLister interface {
	ListPendingByUser(ctx context.Context, userID string) ([]models.Task, error)
}

type reminderScheduler interface {
	Schedule(ctx context.Context, req models.ReminderRequest) (ScheduleOutcome, error)
}

type queuePurger interface {
	PurgeAll(ctx context.Context) error
}

// SchedulerRunService orchestrates a full scheduling run: enumerate users,
// resolve each one's classes for the target date, compute reminders, and
// submit them. Users are processed concurrently; each user's class list is
// walked sequentially because the gap policy depends on the previous class.
type SchedulerRunService struct {
	users       userLister
	exceptions  exceptionReader
	tasks       pendingTaskLister
	dispatch    reminderScheduler
	purger      queuePurger
	resolver    *Resolver
	policy      ReminderPolicy
	concurrency int
	logger      *zap.Logger
	metrics     *MetricsService
	now         func() time.Time
}

// NewSchedulerRunService constructs the orchestrator. metrics may be nil.
func NewSchedulerRunService(
	users userLister,
	exceptions exceptionReader,
	tasks pendingTaskLister,
	dispatch reminderScheduler,
	purger queuePurger,
	resolver *Resolver,
	policy ReminderPolicy,
	concurrency int,
	logger *zap.Logger,
	metrics *MetricsService,
) *SchedulerRunService {
	if concurrency <= 0 {
		concurrency = 8
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchedulerRunService{
		users:       users,
		exceptions:  exceptions,
		tasks:       tasks,
		dispatch:    dispatch,
		purger:      purger,
		resolver:    resolver,
		policy:      policy,
		concurrency: concurrency,
		logger:      logger,
		metrics:     metrics,
		now:         time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (s *SchedulerRunService) WithClock(now func() time.Time) *SchedulerRunService {
	s.now = now
	return s
}

// RunForAllUsers schedules class reminders for every user for the target
// day. The nightly cron passes tomorrow; the admin trigger defaults to
// today but may pass either.
func (s *SchedulerRunService) RunForAllUsers(ctx context.Context, target RunTarget) (RunSummary, error) {
	now := s.now().In(s.policy.Location)
	date := now
	if target == RunTargetTomorrow {
		date = date.AddDate(0, 0, 1)
	}

	s.logger.Sugar().Infow("scheduler run starting",
		"target", target, "date", date.Format("2006-01-02"), "weekday", date.Weekday().String())

	users, err := s.users.List(ctx)
	if err != nil {
		return RunSummary{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list users")
	}

	var (
		mu      sync.Mutex
		summary RunSummary
		wg      sync.WaitGroup
		sem     = make(chan struct{}, s.concurrency)
	)

	for _, user := range users {
		user := user
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			userSummary := s.processUser(ctx, user, date, now)

			mu.Lock()
			summary.add(userSummary)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if s.metrics != nil {
		s.metrics.RecordRun(string(target), summary)
	}
	s.logger.Sugar().Infow("scheduler run finished",
		"target", target,
		"users", summary.UsersProcessed,
		"scheduled", summary.RemindersScheduled,
		"duplicates", summary.Duplicates,
		"skipped_users", summary.SkippedUsers,
		"errors", summary.Errors)

	return summary, nil
}

func (s *SchedulerRunService) processUser(ctx context.Context, user models.User, date, now time.Time) RunSummary {
	var summary RunSummary

	if !user.Reachable() {
		summary.SkippedUsers++
		return summary
	}
	summary.UsersProcessed++

	dateStr := date.Format("2006-01-02")
	exceptions, err := s.exceptions.ListByUserAndDate(ctx, user.ID, dateStr)
	if err != nil {
		s.logger.Sugar().Errorw("failed to load schedule exceptions", "user", user.ID, "date", dateStr, "error", err)
		summary.Errors++
		return summary
	}

	classes, parseFailures, err := s.resolver.ResolveClassesForDate(user.WeeklyTimetable, exceptions, date)
	summary.ParseFailures += parseFailures
	if err != nil {
		s.logger.Sugar().Errorw("failed to resolve classes", "user", user.ID, "date", dateStr, "error", err)
		summary.Errors++
		return summary
	}

	reminders := s.policy.ClassReminders(user.ID, *user.DeliveryToken, classes, date, now)
	for _, req := range reminders {
		outcome, err := s.dispatch.Schedule(ctx, req)
		if err != nil {
			summary.Errors++
			continue
		}
		switch outcome {
		case OutcomeScheduled:
			summary.RemindersScheduled++
		case OutcomeDuplicate:
			summary.Duplicates++
		}
	}

	return summary
}

// FullReset purges the entire deferred queue, reschedules class reminders
// for today and tomorrow, and re-submits reminders for every user's pending
// tasks. Destructive, admin-only.
func (s *SchedulerRunService) FullReset(ctx context.Context) (RunSummary, error) {
	if err := s.purger.PurgeAll(ctx); err != nil {
		return RunSummary{}, appErrors.Wrap(err, appErrors.ErrQueueSubmission.Code, appErrors.ErrQueueSubmission.Status, "purge queue")
	}
	s.logger.Sugar().Infow("queue purged for full reset")

	var total RunSummary
	for _, target := range []RunTarget{RunTargetToday, RunTargetTomorrow} {
		summary, err := s.RunForAllUsers(ctx, target)
		if err != nil {
			return total, err
		}
		total.add(summary)
	}

	taskSummary, err := s.rescheduleAllTasks(ctx)
	if err != nil {
		return total, err
	}
	total.add(taskSummary)

	return total, nil
}

func (s *SchedulerRunService) rescheduleAllTasks(ctx context.Context) (RunSummary, error) {
	now := s.now().In(s.policy.Location)

	users, err := s.users.List(ctx)
	if err != nil {
		return RunSummary{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list users")
	}

	var summary RunSummary
	for _, user := range users {
		if !user.Reachable() {
			summary.SkippedUsers++
			continue
		}

		tasks, err := s.tasks.ListPendingByUser(ctx, user.ID)
		if err != nil {
			s.logger.Sugar().Errorw("failed to list pending tasks", "user", user.ID, "error", err)
			summary.Errors++
			continue
		}

		for _, task := range tasks {
			rescheduled := false
			for _, req := range s.policy.TaskReminders(user.ID, *user.DeliveryToken, task, now) {
				outcome, err := s.dispatch.Schedule(ctx, req)
				if err != nil {
					summary.Errors++
					continue
				}
				rescheduled = true
				switch outcome {
				case OutcomeScheduled:
					summary.RemindersScheduled++
				case OutcomeDuplicate:
					summary.Duplicates++
				}
			}
			if rescheduled {
				summary.TasksRescheduled++
			}
		}
	}

	return summary, nil
}
