package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"minderd/internal/model"
	"minderd/internal/push"
)

// syncScheduleCmd builds the day's notification schedule and replaces the
// relay's stored copy. An unreachable relay is reported, not fatal: local
// reminders keep working offline.
func syncScheduleCmd(relay *push.Client, tasks []model.Task, loc *time.Location) tea.Cmd {
	return func() tea.Msg {
		records, errs := push.BuildSchedule(tasks, time.Now(), loc)
		if len(errs) > 0 {
			return SyncDoneMsg{Err: errs[0]}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := relay.SyncSchedule(ctx, records); err != nil {
			return SyncDoneMsg{Err: err}
		}
		return SyncDoneMsg{Count: len(records)}
	}
}
