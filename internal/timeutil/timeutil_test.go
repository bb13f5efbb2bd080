package timeutil

import (
	"errors"
	"testing"
	"time"

	"minderd/internal/model"
)

func TestAbsoluteStartResolvesInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	task := model.Task{ID: "t1", Title: "Write report", StartTime: "14:30", DurationMinutes: 60, Date: "2026-08-29"}

	start, err := AbsoluteStart(task, loc)
	if err != nil {
		t.Fatalf("absolute start: %v", err)
	}
	want := time.Date(2026, time.August, 29, 14, 30, 0, 0, loc)
	if !start.Equal(want) {
		t.Fatalf("unexpected start: got=%v want=%v", start, want)
	}
}

func TestAbsoluteEndIsStartPlusDuration(t *testing.T) {
	loc := time.UTC
	task := model.Task{ID: "t1", Title: "Write report", StartTime: "23:50", DurationMinutes: 25, Date: "2026-08-29"}

	start, err := AbsoluteStart(task, loc)
	if err != nil {
		t.Fatalf("absolute start: %v", err)
	}
	end, err := AbsoluteEnd(task, loc)
	if err != nil {
		t.Fatalf("absolute end: %v", err)
	}
	if got, want := end.Sub(start), 25*time.Minute; got != want {
		t.Fatalf("unexpected gap: got=%v want=%v", got, want)
	}
	// 23:50 + 25 min rolls over midnight into the next calendar day.
	if end.Day() != 30 {
		t.Fatalf("expected end on the 30th, got %v", end)
	}
}

func TestAbsoluteStartFailsFast(t *testing.T) {
	task := model.Task{ID: "t1", Title: "Bad clock", StartTime: "25:00", DurationMinutes: 30, Date: "2026-08-29"}
	if _, err := AbsoluteStart(task, time.UTC); !errors.Is(err, model.ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got %v", err)
	}

	task = model.Task{ID: "t1", Title: "Bad date", StartTime: "09:00", DurationMinutes: 30, Date: "someday"}
	if _, err := AbsoluteStart(task, time.UTC); !errors.Is(err, model.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestAbsoluteEndRejectsNonPositiveDuration(t *testing.T) {
	task := model.Task{ID: "t1", Title: "Zero", StartTime: "09:00", DurationMinutes: 0, Date: "2026-08-29"}
	if _, err := AbsoluteEnd(task, time.UTC); !errors.Is(err, model.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2026, time.August, 29, 23, 59, 59, 0, time.UTC)
	if got := Today(now); got != "2026-08-29" {
		t.Fatalf("unexpected day: %q", got)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{65, "01:05"},
		{1500, "25:00"},
		{-10, "00:00"},
	}
	for _, c := range cases {
		if got := FormatSeconds(c.in); got != c.want {
			t.Fatalf("FormatSeconds(%d): got=%q want=%q", c.in, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{45, "45 min"},
		{60, "1h"},
		{90, "1h 30min"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Fatalf("FormatDuration(%d): got=%q want=%q", c.in, got, c.want)
		}
	}
}
