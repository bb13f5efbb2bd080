package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidStartTime = errors.New("model: invalid task start time")
	ErrInvalidDuration  = errors.New("model: invalid task duration")
	ErrInvalidDate      = errors.New("model: invalid task date")
)

// Task is the read-only shape handed to the scheduling core by the task
// store. StartTime is a 24h "HH:mm" clock and Date a "YYYY-MM-DD" day.
type Task struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Emoji           string `json:"emoji"`
	Color           string `json:"color"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Date            string `json:"date"`
	Completed       bool   `json:"completed"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if _, _, err := ParseClock(t.StartTime); err != nil {
		return err
	}
	if t.DurationMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, t.DurationMinutes)
	}
	if _, _, _, err := ParseDate(t.Date); err != nil {
		return err
	}
	return nil
}

// ParseClock parses a 24h "HH:mm" string. Malformed input fails with
// ErrInvalidStartTime instead of producing a zero clock silently.
func ParseClock(raw string) (hour, minute int, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, raw)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, raw)
	}
	return hour, minute, nil
}

// ParseDate parses a "YYYY-MM-DD" string into its components.
func ParseDate(raw string) (year, month, day int, err error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	day, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return year, month, day, nil
}
