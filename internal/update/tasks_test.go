package update

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTasksForFiltersAndSortsDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	payload := `[
		{"id":"b","title":"Late","emoji":"🌙","startTime":"18:00","durationMinutes":30,"date":"2026-08-29"},
		{"id":"a","title":"Early","emoji":"☀️","startTime":"08:00","durationMinutes":30,"date":"2026-08-29"},
		{"id":"c","title":"Tomorrow","emoji":"📆","startTime":"09:00","durationMinutes":30,"date":"2026-08-30"}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write tasks file: %v", err)
	}

	tasks, err := LoadTasksFor(path, "2026-08-29")
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks for the day, got %d", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[1].ID != "b" {
		t.Fatalf("tasks not sorted by start time: %v, %v", tasks[0].ID, tasks[1].ID)
	}
}

func TestLoadTasksForEmptyPathYieldsEmptyDay(t *testing.T) {
	tasks, err := LoadTasksFor("", "2026-08-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty day, got %d tasks", len(tasks))
	}
}

func TestLoadTasksForRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write tasks file: %v", err)
	}
	if _, err := LoadTasksFor(path, "2026-08-29"); err == nil {
		t.Fatal("expected decode error")
	}
}
