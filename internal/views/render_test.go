package views

import (
	"strings"
	"testing"
)

func TestRenderAppIncludesSections(t *testing.T) {
	out := RenderApp(AppData{
		Header:       "minderd | view: Today | 2026-08-29",
		LeftPane:     "today panel",
		StatusLine:   "status: reminders re-armed (3)",
		Notification: "[info] It is time to start!",
		Footer:       "keys: 1 today",
	})
	for _, want := range []string{"view: Today", "today panel", "re-armed (3)", "It is time to start!", "keys: 1 today"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in frame: %q", want, out)
		}
	}
}

func TestRenderAppOmitsEmptySections(t *testing.T) {
	full := RenderApp(AppData{Header: "h", LeftPane: "left", RightPane: "right", Footer: "f"})
	bare := RenderApp(AppData{Header: "h", LeftPane: "left"})
	if !strings.Contains(full, "right") {
		t.Fatalf("expected right pane in frame: %q", full)
	}
	if strings.Count(bare, "\n") >= strings.Count(full, "\n") {
		t.Fatal("expected fewer lines without right pane and footer")
	}
}

func TestRenderTodayPanelMarksSelectionAndCompletion(t *testing.T) {
	out := RenderTodayPanel(TodayPanelData{
		Date: "2026-08-29",
		Items: []TodayItemData{
			{ID: "a", Emoji: "☀️", Title: "Early", StartTime: "08:00", EndTime: "08:30", Duration: "30 min"},
			{ID: "b", Emoji: "🌙", Title: "Late", StartTime: "18:00", EndTime: "18:30", Duration: "30 min", Completed: true},
		},
		SelectedID: "a",
		ArmedCount: 3,
	})
	if !strings.Contains(out, "> [ ]") {
		t.Fatalf("expected selected unfinished marker: %q", out)
	}
	if !strings.Contains(out, "[x]") {
		t.Fatalf("expected completion marker: %q", out)
	}
	if !strings.Contains(out, "reminders armed: 3") {
		t.Fatalf("expected armed count: %q", out)
	}
}

func TestRenderNotificationLevels(t *testing.T) {
	if got := RenderNotification("error", "boom"); got != "[error] boom" {
		t.Fatalf("unexpected error rendering: %q", got)
	}
	if got := RenderNotification("info", "hi"); got != "[info] hi" {
		t.Fatalf("unexpected info rendering: %q", got)
	}
}
