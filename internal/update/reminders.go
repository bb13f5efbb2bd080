package update

import (
	"fmt"

	"minderd/internal/model"
	"minderd/internal/scheduler"
)

// applyReminder surfaces a fired reminder in the status bar and as a
// desktop notification. The nudge fires regardless of completion state at
// fire time; completion only changes the next armed batch.
func (m *Model) applyReminder(ev scheduler.ReminderEvent) {
	switch ev.Kind {
	case model.ReminderKindPreWarning:
		m.Status = StatusBar{Text: fmt.Sprintf("starting soon: %s", ev.Title), IsError: false}
	case model.ReminderKindStart:
		m.Status = StatusBar{Text: fmt.Sprintf("time to start: %s", ev.Title), IsError: false}
	case model.ReminderKindNudge:
		m.Status = StatusBar{Text: fmt.Sprintf("nudge: %s", ev.Title), IsError: false}
	default:
		m.Status = StatusBar{Text: fmt.Sprintf("reminder fired: %s", ev.ID), IsError: false}
	}

	title := ev.Title
	if ev.Emoji != "" {
		title = ev.Emoji + " " + ev.Title
	}
	m.notify(title, ev.Body, "info")
}
