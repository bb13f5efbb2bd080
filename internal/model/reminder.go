package model

import (
	"errors"
	"fmt"
)

var ErrInvalidReminderKind = errors.New("model: invalid reminder kind")

// ReminderKind identifies one of the three reminders armed per task.
type ReminderKind string

const (
	// ReminderKindPreWarning fires 5 minutes before the task starts.
	ReminderKindPreWarning ReminderKind = "pre"
	// ReminderKindStart fires at the task's scheduled start.
	ReminderKindStart ReminderKind = "start"
	// ReminderKindNudge fires 3 minutes after the task's scheduled end,
	// prompting the user to confirm completion.
	ReminderKindNudge ReminderKind = "nudge"
)

func (k ReminderKind) IsValid() bool {
	switch k {
	case ReminderKindPreWarning, ReminderKindStart, ReminderKindNudge:
		return true
	default:
		return false
	}
}

// Title returns the notification title for this kind of reminder, without
// the emoji prefix applied at delivery.
func (k ReminderKind) Title(task Task) string {
	switch k {
	case ReminderKindPreWarning:
		return fmt.Sprintf("In 5 minutes: %s", task.Title)
	case ReminderKindNudge:
		return fmt.Sprintf("Have you finished %q?", task.Title)
	default:
		return task.Title
	}
}

// Body returns the notification body for this kind of reminder.
func (k ReminderKind) Body() string {
	switch k {
	case ReminderKindPreWarning:
		return "Get ready for the next task!"
	case ReminderKindNudge:
		return "Remember to mark the task as done!"
	default:
		return "It is time to start!"
	}
}

// Tag returns the notification tag, used by the OS to collapse duplicates.
func (k ReminderKind) Tag(taskID string) string {
	return fmt.Sprintf("task-%s-%s", taskID, k)
}

// RecordID derives the deduplication id for a task+kind pair. Repeated
// builds of an unchanged plan produce identical ids.
func (k ReminderKind) RecordID(taskID string) string {
	return fmt.Sprintf("%s-%s", taskID, k)
}
