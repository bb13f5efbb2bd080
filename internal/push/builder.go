// Package push implements the server-relayed reminder channel: building a
// day's notification schedule, syncing it to the relay, and the relay-side
// dispatcher that delivers due records to the browser's push service.
package push

import (
	"fmt"
	"time"

	"minderd/internal/model"
	"minderd/internal/scheduler"
	"minderd/internal/timeutil"
)

// Icon is the notification icon path delivered in every push payload.
const Icon = "/icon.png"

// BuildSchedule converts a day's task list into the serializable schedule
// the relay delivers while the app is closed. Record ids are deterministic
// per (task, kind), so rebuilding an unchanged plan yields identical ids and
// the relay's sent set keeps deduplicating. Records whose time is not
// strictly in the future are dropped; malformed tasks are reported without
// aborting the rest.
func BuildSchedule(tasks []model.Task, now time.Time, loc *time.Location) ([]model.NotificationRecord, []error) {
	records := make([]model.NotificationRecord, 0, len(tasks)*3)
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
			{model.ReminderKindPreWarning, start.Add(-scheduler.PreWarningLead)},
			{model.ReminderKindStart, start},
			{model.ReminderKindNudge, end.Add(scheduler.NudgeDelay)},
		}
		for _, c := range candidates {
			if !c.at.After(now) {
				continue
			}
			records = append(records, model.NotificationRecord{
				ID:    c.kind.RecordID(task.ID),
				Time:  c.at.UTC().Format(time.RFC3339),
				Title: c.kind.Title(task),
				Body:  c.kind.Body(),
				Emoji: task.Emoji,
				Tag:   c.kind.Tag(task.ID),
			})
		}
	}
	return records, errs
}

// Payload composes the wire payload for a record, prefixing the title with
// the task's emoji.
func Payload(record model.NotificationRecord) model.PushPayload {
	title := record.Title
	if record.Emoji != "" {
		title = record.Emoji + " " + record.Title
	}
	return model.PushPayload{
		Title: title,
		Body:  record.Body,
		Tag:   record.Tag,
		Icon:  Icon,
	}
}
