package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"minderd/internal/config"
	"minderd/internal/model"
	"minderd/internal/push"
	"minderd/internal/scheduler"
	"minderd/internal/timer"
)

type View string

const (
	ViewToday View = "Today"
	ViewFocus View = "Focus"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today string
	Focus string
	Help  string
	Quit  string
}

// FocusMode selects which state machine runs the focus view: tasks of at
// least one pomodoro use the session machine, shorter ones a plain
// countdown.
type FocusMode string

const (
	FocusModePomodoro  FocusMode = "pomodoro"
	FocusModeCountdown FocusMode = "countdown"
)

type FocusState struct {
	TaskID    string
	TaskTitle string
	TaskEmoji string
	Mode      FocusMode
	Session   timer.Session
	Countdown timer.Countdown
	// Encouraged dedups the every-10-minutes encouragement per
	// (pomodoro, interval) pair.
	Encouraged map[string]bool
	Active     bool
}

type TodayState struct {
	Cursor int
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	CurrentView    View
	Date           string
	Tasks          []model.Task
	Today          TodayState
	Focus          FocusState
	Scheduler      *scheduler.Engine
	ReminderLog    []scheduler.ReminderEvent
	ArmedCount     int
	Status         StatusBar
	Keys           GlobalKeyMap
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	relay          *push.Client
	Quitting       bool
	LastError      error

	focusProgress progress.Model
	syncSpinner   spinner.Model
	helpModel     help.Model
	spinnerActive bool
	stateFilePath string
	loc           *time.Location
	focusTickGen  int
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// FocusTickMsg carries the tick generation it was armed under. A pause,
// resume, reset or close bumps the generation, so a tick armed before the
// change is dropped instead of stacking a second tick stream.
type FocusTickMsg struct {
	Gen int
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

type SyncDoneMsg struct {
	Count int
	Err   error
}

func NewModel() Model {
	m := Model{
		CurrentView: ViewToday,
		Keys: GlobalKeyMap{
			Today: "1",
			Focus: "2",
			Help:  "?",
			Quit:  "q",
		},
		notifier: NoopDesktopNotifier{},
		loc:      time.Local,
	}
	m.focusProgress = progress.New(progress.WithDefaultGradient())
	m.syncSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.helpModel = help.New()
	return m
}

// NewModelWithConfig builds the model for a day's tasks, owning the
// scheduler engine's armed set: arming happens here and on every
// completion change, replacing any previous batch.
func NewModelWithConfig(engine *scheduler.Engine, tasks []model.Task, date string, notifier DesktopNotifier, cfg config.RuntimeConfig, now time.Time) Model {
	m := NewModel()
	m.Scheduler = engine
	m.Date = date
	m.Tasks = tasks
	m.DesktopEnabled = cfg.DesktopNotifications
	m.stateFilePath = strings.TrimSpace(cfg.CompletionStatePath)
	if notifier != nil {
		m.notifier = notifier
	}
	if cfg.RelayURL != "" {
		m.relay = push.NewClient(cfg.RelayURL)
	}
	if m.stateFilePath != "" {
		if completed, err := loadCompletedTaskState(m.stateFilePath); err == nil {
			for i := range m.Tasks {
				if completed[m.Tasks[i].ID] {
					m.Tasks[i].Completed = true
				}
			}
		}
	}
	m.armReminders(now)
	m.syncSelectedTaskToTodayCursor()
	return m
}

func (m *Model) armReminders(now time.Time) {
	if m.Scheduler == nil {
		return
	}
	count, errs := scheduler.Arm(m.Scheduler, m.Tasks, now, m.loc)
	m.ArmedCount = count
	for _, err := range errs {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
	}
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
