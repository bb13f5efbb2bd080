package scheduler

import (
	"fmt"
	"time"

	"minderd/internal/model"
	"minderd/internal/timeutil"
)

const (
	// PreWarningLead is how long before a task's start the pre-warning fires.
	PreWarningLead = 5 * time.Minute
	// NudgeDelay is how long after a task's scheduled end the completion
	// nudge fires.
	NudgeDelay = 3 * time.Minute
)

// BuildEvents computes the reminder batch for a day's tasks: pre-warning,
// start and completion nudge per task, keeping only candidates strictly in
// the future. Past candidates are discarded; there is no catch-up firing.
// A malformed task is skipped with an error without aborting the rest of
// the batch.
func BuildEvents(tasks []model.Task, now time.Time, loc *time.Location) ([]ReminderEvent, []error) {
	events := make([]ReminderEvent, 0, len(tasks)*3)
	var errs []error

	for _, task := range tasks {
		if task.Completed {
			continue
		}
		start, err := timeutil.AbsoluteStart(task, loc)
		if err != nil {
			errs = append(errs, fmt.Errorf("task %s: %w", task.ID, err))
			continue
		}
		end, err := timeutil.AbsoluteEnd(task, loc)
		if err != nil {
			errs = append(errs, fmt.Errorf("task %s: %w", task.ID, err))
			continue
		}

		candidates := []struct {
			kind model.ReminderKind
			at   time.Time
		}{
			{model.ReminderKindPreWarning, start.Add(-PreWarningLead)},
			{model.ReminderKindStart, start},
			{model.ReminderKindNudge, end.Add(NudgeDelay)},
		}
		for _, c := range candidates {
			if !c.at.After(now) {
				continue
			}
			events = append(events, ReminderEvent{
				ID:        c.kind.RecordID(task.ID),
				TaskID:    task.ID,
				Kind:      c.kind,
				Title:     c.kind.Title(task),
				Body:      c.kind.Body(),
				Emoji:     task.Emoji,
				Tag:       c.kind.Tag(task.ID),
				TriggerAt: c.at,
			})
		}
	}
	return events, errs
}

// CurrentOrNext picks the task active at now, or failing that the next
// upcoming one. Completed and malformed tasks are ignored.
func CurrentOrNext(tasks []model.Task, now time.Time, loc *time.Location) (model.Task, bool) {
	var next model.Task
	var nextStart time.Time
	found := false

	for _, task := range tasks {
		if task.Completed {
			continue
		}
		start, err := timeutil.AbsoluteStart(task, loc)
		if err != nil {
			continue
		}
		end, err := timeutil.AbsoluteEnd(task, loc)
		if err != nil {
			continue
		}
		if !now.Before(start) && now.Before(end) {
			return task, true
		}
		if start.After(now) && (!found || start.Before(nextStart)) {
			next = task
			nextStart = start
			found = true
		}
	}
	return next, found
}

// Arm rebuilds the engine's armed set from the day's task list. Previously
// armed reminders are always cancelled first, so re-arming replaces rather
// than accumulates.
func Arm(engine *Engine, tasks []model.Task, now time.Time, loc *time.Location) (int, []error) {
	events, errs := BuildEvents(tasks, now, loc)
	if err := engine.Replace(events); err != nil {
		return 0, append(errs, err)
	}
	return len(events), errs
}
