package views

import (
	"fmt"
	"strings"
)

type TodayItemData struct {
	ID        string
	Emoji     string
	Title     string
	StartTime string
	EndTime   string
	Duration  string
	Completed bool
}

type TodayPanelData struct {
	Date       string
	Items      []TodayItemData
	SelectedID string
	ArmedCount int
}

type FocusPanelData struct {
	TaskTitle     string
	TaskEmoji     string
	Phase         string
	Timer         string
	ProgressView  string
	OverallPct    int
	Pomodoros     int
	WorkedMinutes int
	TotalMinutes  int
	BreakChoice   bool
	ShowStart     bool
	ShowSkip      bool
	Plain         bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today: %s\n", data.Date))
	b.WriteString("actions: [j/k]move [enter]done/undone [f]focus [S]sync\n")
	if len(data.Items) == 0 {
		b.WriteString("(no tasks planned)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s %s %s–%s %s (%s)", cursor, mark, item.Emoji, item.StartTime, item.EndTime, item.Title, item.Duration)
		if item.Completed {
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\nreminders armed: %d", data.ArmedCount))
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s %s\n", data.TaskEmoji, data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("session: %s\n", data.ProgressView))
	if !data.Plain {
		b.WriteString(fmt.Sprintf("overall: %d%% (%d/%d min, %d pomodoros)\n", data.OverallPct, data.WorkedMinutes, data.TotalMinutes, data.Pomodoros))
	}
	switch {
	case data.BreakChoice:
		b.WriteString("nice work! choose a break: [3] 3 min  [5] 5 min\n")
	case data.ShowStart:
		b.WriteString("ready for the next round? [space] start\n")
	case data.ShowSkip:
		b.WriteString("breathe out... [n] skip break\n")
	default:
		b.WriteString("actions: [space]start/pause [r]reset\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(RenderMarkdown(fmt.Sprintf("## help: %s view", data.CurrentView)))
	b.WriteString("\n")
	for _, binding := range data.Bindings {
		b.WriteString(binding + "\n")
	}
	if data.HelpView != "" {
		b.WriteString(data.HelpView)
	}
	return strings.TrimSpace(b.String())
}

func RenderNotification(level, body string) string {
	prefix := "info"
	if level == "error" {
		prefix = "error"
	}
	return fmt.Sprintf("[%s] %s", prefix, body)
}
