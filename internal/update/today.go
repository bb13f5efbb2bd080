package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"minderd/internal/model"
	"minderd/internal/timeutil"
	"minderd/internal/views"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Today.Cursor > 0 {
			m.Today.Cursor--
		}
	case "down", "j":
		if m.Today.Cursor < len(m.Tasks)-1 {
			m.Today.Cursor++
		}
	case "enter":
		m.toggleTaskCompletion()
	case "f":
		m.CurrentView = ViewFocus
		m.bootstrapFocusTask()
	}
	return m
}

// toggleTaskCompletion flips the selected task's done flag, persists it and
// re-arms the reminder batch so completed tasks stop producing reminders.
func (m *Model) toggleTaskCompletion() {
	task, ok := m.currentTodayTask()
	if !ok {
		return
	}
	for i := range m.Tasks {
		if m.Tasks[i].ID == task.ID {
			m.Tasks[i].Completed = !m.Tasks[i].Completed
		}
	}
	if err := m.persistCompletedTaskState(); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("persist completion state failed: %v", err), IsError: true}
		return
	}
	m.armReminders(time.Now())
	m.Status = StatusBar{Text: fmt.Sprintf("reminders re-armed (%d)", m.ArmedCount), IsError: false}
}

func (m *Model) syncSelectedTaskToTodayCursor() {
	if m.Today.Cursor >= len(m.Tasks) {
		m.Today.Cursor = len(m.Tasks) - 1
	}
	if m.Today.Cursor < 0 {
		m.Today.Cursor = 0
	}
}

func (m Model) currentTodayTask() (model.Task, bool) {
	if len(m.Tasks) == 0 {
		return model.Task{}, false
	}
	if m.Today.Cursor < 0 || m.Today.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Today.Cursor], true
}

func (m Model) renderTodayView() string {
	items := make([]views.TodayItemData, 0, len(m.Tasks))
	selectedID := ""
	if task, ok := m.currentTodayTask(); ok {
		selectedID = task.ID
	}
	for _, task := range m.Tasks {
		endTime := ""
		if end, err := timeutil.AbsoluteEnd(task, m.loc); err == nil {
			endTime = end.Format("15:04")
		}
		items = append(items, views.TodayItemData{
			ID:        task.ID,
			Emoji:     task.Emoji,
			Title:     task.Title,
			StartTime: task.StartTime,
			EndTime:   endTime,
			Duration:  timeutil.FormatDuration(task.DurationMinutes),
			Completed: task.Completed,
		})
	}
	return views.RenderTodayPanel(views.TodayPanelData{
		Date:       m.Date,
		Items:      items,
		SelectedID: selectedID,
		ArmedCount: m.ArmedCount,
	})
}
