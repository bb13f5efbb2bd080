// Package timeutil maps a task's "YYYY-MM-DD" date and "HH:mm" start time to
// absolute instants. All arithmetic resolves in one explicit location; mixing
// local construction with ISO-string parsing is what this package exists to
// avoid.
package timeutil

import (
	"fmt"
	"time"

	"minderd/internal/model"
)

// AbsoluteStart resolves the task's scheduled start in loc.
func AbsoluteStart(task model.Task, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	hour, minute, err := model.ParseClock(task.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day, err := model.ParseDate(task.Date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc), nil
}

// AbsoluteEnd is AbsoluteStart plus the task's duration.
func AbsoluteEnd(task model.Task, loc *time.Location) (time.Time, error) {
	start, err := AbsoluteStart(task, loc)
	if err != nil {
		return time.Time{}, err
	}
	if task.DurationMinutes <= 0 {
		return time.Time{}, fmt.Errorf("%w: %d", model.ErrInvalidDuration, task.DurationMinutes)
	}
	return start.Add(time.Duration(task.DurationMinutes) * time.Minute), nil
}

// Today formats now's calendar day as "YYYY-MM-DD".
func Today(now time.Time) string {
	return now.Format("2006-01-02")
}

// FormatSeconds renders a second count as a zero-padded "MM:SS" clock.
func FormatSeconds(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}

// FormatDuration renders a minute count the way the day view shows it.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
