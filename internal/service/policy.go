package service

import (
	"fmt"
	"time"

	"github.com/campusmate/reminder-api/internal/models"
	"github.com/campusmate/reminder-api/pkg/config"
)

// advisingSlotLayout matches the wall-clock format advising slots are stored
// in, e.g. "03 December 2025 09:00 AM".
const advisingSlotLayout = "02 January 2006 03:04 PM"

// ReminderPolicy decides how many reminders each event gets and when they
// fire. All wall-clock arithmetic happens in Location, the single
// operational timezone.
type ReminderPolicy struct {
	GapThresholdMins int
	FullOffsets      []int
	ShortOffsets     []int
	TaskEveningHour  int
	TaskMorningHour  int
	AdvisingLead     time.Duration
	Location         *time.Location
}

// NewReminderPolicy builds a policy from config, falling back to the
// defaults for anything unset.
func NewReminderPolicy(cfg config.SchedulerConfig, loc *time.Location) ReminderPolicy {
	p := ReminderPolicy{
		GapThresholdMins: cfg.GapThresholdMins,
		FullOffsets:      cfg.FullOffsets,
		ShortOffsets:     cfg.ShortOffsets,
		TaskEveningHour:  cfg.TaskEveningHour,
		TaskMorningHour:  cfg.TaskMorningHour,
		AdvisingLead:     cfg.AdvisingLead,
		Location:         loc,
	}
	if p.GapThresholdMins <= 0 {
		p.GapThresholdMins = 30
	}
	if len(p.FullOffsets) == 0 {
		p.FullOffsets = []int{30, 10, 5}
	}
	if len(p.ShortOffsets) == 0 {
		p.ShortOffsets = []int{10, 5}
	}
	if p.TaskEveningHour <= 0 {
		p.TaskEveningHour = 20
	}
	if p.TaskMorningHour <= 0 {
		p.TaskMorningHour = 8
	}
	if p.AdvisingLead <= 0 {
		p.AdvisingLead = 90 * time.Minute
	}
	if p.Location == nil {
		p.Location = time.UTC
	}
	return p
}

// ClassReminders walks the day's sorted class list and emits one reminder
// per offset. A class preceded by a gap larger than the threshold (or the
// first class of the day) gets the full offset set; back-to-back classes get
// the short set. Reminders already in the past are discarded, but the
// previous-class end time still advances so the gap logic stays correct.
func (p ReminderPolicy) ClassReminders(userID, token string, classes []ResolvedClass, date, now time.Time) []models.ReminderRequest {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, p.Location)
	dateStr := date.Format("2006-01-02")

	var out []models.ReminderRequest
	lastEnd := -1
	for _, cls := range classes {
		full := lastEnd < 0 || cls.StartMins-lastEnd > p.GapThresholdMins
		offsets := p.ShortOffsets
		if full {
			offsets = p.FullOffsets
		}

		for _, offset := range offsets {
			fireAt := dayStart.Add(time.Duration(cls.StartMins-offset) * time.Minute)
			if !fireAt.After(now) {
				continue
			}
			out = append(out, models.ReminderRequest{
				Key:           classReminderKey(userID, cls.CourseCode, dateStr, offset),
				UserID:        userID,
				DeliveryToken: token,
				Title:         "Class Reminder",
				Body:          fmt.Sprintf("Your %s class starts in %d minutes at %s.", cls.DisplayTitle(), offset, cls.DisplayRoom()),
				FireAt:        fireAt,
			})
		}

		lastEnd = cls.EndMins
	}
	return out
}

// TaskReminders emits up to two reminders for a due-dated task: one the
// evening before and one the morning of the due date, both in local
// wall-clock time and both dropped when already past.
func (p ReminderPolicy) TaskReminders(userID, token string, task models.Task, now time.Time) []models.ReminderRequest {
	due := task.DueDate.In(p.Location)

	courseName := task.CourseName
	if courseName == "" {
		courseName = "your course"
	}
	taskType := task.Type
	if taskType == "" {
		taskType = "task"
	}
	title := fmt.Sprintf("Upcoming %s", taskType)

	prevEvening := time.Date(due.Year(), due.Month(), due.Day(), p.TaskEveningHour, 0, 0, 0, p.Location).AddDate(0, 0, -1)
	dueMorning := time.Date(due.Year(), due.Month(), due.Day(), p.TaskMorningHour, 0, 0, 0, p.Location)

	var out []models.ReminderRequest
	if prevEvening.After(now) {
		out = append(out, models.ReminderRequest{
			Key:           fmt.Sprintf("task-prev-%s-%s", userID, task.ID),
			UserID:        userID,
			DeliveryToken: token,
			Title:         title,
			Body:          fmt.Sprintf("%s for %s is due tomorrow.", taskType, courseName),
			FireAt:        prevEvening,
		})
	}
	if dueMorning.After(now) {
		out = append(out, models.ReminderRequest{
			Key:           fmt.Sprintf("task-morn-%s-%s", userID, task.ID),
			UserID:        userID,
			DeliveryToken: token,
			Title:         title,
			Body:          fmt.Sprintf("%s for %s is due today!", taskType, courseName),
			FireAt:        dueMorning,
		})
	}
	return out
}

// AdvisingReminder computes the single deferred reminder for an advising
// slot, or nil when the reminder time has already passed. The key embeds the
// fire time so a rescheduled slot gets a fresh queue entry while an
// unchanged one stays a duplicate.
func (p ReminderPolicy) AdvisingReminder(userID, token string, slot models.AdvisingSlot, now time.Time) (*models.ReminderRequest, error) {
	slotTime, err := p.ParseAdvisingSlotTime(slot)
	if err != nil {
		return nil, err
	}

	fireAt := slotTime.Add(-p.AdvisingLead)
	if !fireAt.After(now) {
		return nil, nil
	}

	return &models.ReminderRequest{
		Key:           fmt.Sprintf("adv-rem-%s-%s-%d", userID, slot.SemesterKey, fireAt.UnixMilli()),
		UserID:        userID,
		DeliveryToken: token,
		Title:         "Advising Reminder",
		Body:          fmt.Sprintf("Your advising slot starts in %s!", formatLead(p.AdvisingLead)),
		FireAt:        fireAt,
	}, nil
}

// ParseAdvisingSlotTime converts the slot's wall-clock strings into an
// absolute instant in the operational timezone.
func (p ReminderPolicy) ParseAdvisingSlotTime(slot models.AdvisingSlot) (time.Time, error) {
	parsed, err := time.ParseInLocation(advisingSlotLayout, slot.Date+" "+slot.StartTime, p.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse advising slot time %q %q: %w", slot.Date, slot.StartTime, err)
	}
	return parsed, nil
}

func classReminderKey(userID, courseCode, dateStr string, offset int) string {
	return fmt.Sprintf("cls-%s-%s-%s-%dm", userID, models.NormalizedCourseCode(courseCode), dateStr, offset)
}

func formatLead(d time.Duration) string {
	mins := int(d.Minutes())
	h, m := mins/60, mins%60
	hourWord := "hours"
	if h == 1 {
		hourWord = "hour"
	}
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d %s %d minutes", h, hourWord, m)
	case h > 0:
		return fmt.Sprintf("%d %s", h, hourWord)
	default:
		return fmt.Sprintf("%d minutes", m)
	}
}
