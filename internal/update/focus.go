package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"minderd/internal/scheduler"
	"minderd/internal/timer"
	"minderd/internal/timeutil"
	"minderd/internal/views"
)

var encouragements = []struct {
	Emoji string
	Text  string
}{
	{"💪", "You are doing great!"},
	{"🌟", "Wonderful focus!"},
	{"🔥", "You are in the zone!"},
	{"🧠", "Your brain is working hard!"},
}

// bootstrapFocusTask opens the timer for the selected task, falling back to
// the currently active or next upcoming one. Tasks of at least one pomodoro
// run the session machine; shorter ones a plain countdown.
func (m *Model) bootstrapFocusTask() {
	if m.Focus.Active {
		return
	}
	task, ok := m.currentTodayTask()
	if !ok || task.Completed {
		task, ok = scheduler.CurrentOrNext(m.Tasks, time.Now(), m.loc)
	}
	if !ok {
		return
	}
	totalWorkS := task.DurationMinutes * 60
	m.Focus = FocusState{
		TaskID:     task.ID,
		TaskTitle:  task.Title,
		TaskEmoji:  task.Emoji,
		Encouraged: make(map[string]bool),
		Active:     true,
	}
	if totalWorkS >= timer.PomodoroSeconds {
		m.Focus.Mode = FocusModePomodoro
		m.Focus.Session = timer.NewSession(totalWorkS)
	} else {
		m.Focus.Mode = FocusModeCountdown
		m.Focus.Countdown = timer.NewCountdown(totalWorkS)
	}
}

// closeFocus releases the timer; reopening re-derives everything from zero
// worked time, there is no persistence across views.
func (m *Model) closeFocus() {
	m.Focus = FocusState{}
	m.focusTickGen++
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.Focus.Active {
		return m, nil
	}
	if m.Focus.Mode == FocusModeCountdown {
		return m.handleCountdownKey(msg)
	}
	return m.handlePomodoroKey(msg)
}

func (m Model) handleCountdownKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Focus.Countdown.Running {
			m.Focus.Countdown = m.Focus.Countdown.Pause()
			m.focusTickGen++
			m.Status = StatusBar{Text: "timer paused", IsError: false}
			return m, nil
		}
		m.Focus.Countdown = m.Focus.Countdown.Start()
		if m.Focus.Countdown.Running {
			m.focusTickGen++
			m.Status = StatusBar{Text: "timer running", IsError: false}
			return m, focusTickCmd(m.focusTickGen)
		}
		return m, nil
	case "r":
		m.Focus.Countdown = m.Focus.Countdown.Reset()
		m.focusTickGen++
		m.Status = StatusBar{Text: "timer reset", IsError: false}
		return m, nil
	case "esc":
		m.closeFocus()
		m.CurrentView = ViewToday
		return m, nil
	}
	return m, nil
}

func (m Model) handlePomodoroKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev := m.Focus.Session
	switch msg.String() {
	case " ":
		if prev.Phase == timer.PhaseReady {
			m.Focus.Session = prev.Apply(timer.StartNext{})
		} else {
			m.Focus.Session = prev.Apply(timer.ToggleRunning{})
		}
	case "3":
		m.Focus.Session = prev.Apply(timer.ChooseBreak{Minutes: 3})
	case "5":
		m.Focus.Session = prev.Apply(timer.ChooseBreak{Minutes: 5})
	case "n":
		m.Focus.Session = prev.Apply(timer.SkipBreak{})
	case "esc":
		m.closeFocus()
		m.CurrentView = ViewToday
		return m, nil
	default:
		return m, nil
	}

	m.applyPhaseEffects(prev, m.Focus.Session)
	if m.Focus.Session.Running != prev.Running {
		m.focusTickGen++
	}
	if m.Focus.Session.Running && !prev.Running {
		return m, focusTickCmd(m.focusTickGen)
	}
	return m, nil
}

// onFocusTick applies one elapsed second. A tick from a superseded arm is
// dropped without re-arming, so at most one tick stream is ever live and a
// pause/resume inside the same second cannot double the clock.
func (m Model) onFocusTick(msg FocusTickMsg) (tea.Model, tea.Cmd) {
	if !m.Focus.Active || msg.Gen != m.focusTickGen {
		return m, nil
	}
	if m.Focus.Mode == FocusModeCountdown {
		if !m.Focus.Countdown.Running {
			return m, nil
		}
		m.Focus.Countdown = m.Focus.Countdown.Tick()
		if m.Focus.Countdown.Finished() {
			m.Status = StatusBar{Text: "time is up", IsError: false}
			m.notify("Timer", fmt.Sprintf("%s %s: time is up", m.Focus.TaskEmoji, m.Focus.TaskTitle), "info")
			return m, nil
		}
		return m, focusTickCmd(m.focusTickGen)
	}

	prev := m.Focus.Session
	if !prev.Running {
		return m, nil
	}
	m.Focus.Session = prev.Apply(timer.Tick{})
	m.applyPhaseEffects(prev, m.Focus.Session)
	m.applyEncouragement()
	if m.Focus.Session.Running {
		return m, focusTickCmd(m.focusTickGen)
	}
	return m, nil
}

// applyPhaseEffects fires the sound/notification side effects on phase
// entry, at most once per entered phase instance.
func (m *Model) applyPhaseEffects(prev, next timer.Session) {
	if prev.Phase == next.Phase {
		return
	}
	switch next.Phase {
	case timer.PhaseBreakChoice:
		m.Status = StatusBar{Text: "work session complete; choose a break", IsError: false}
		m.notify("Pomodoro", "Great focus! Pick a break length", "info")
	case timer.PhaseReady:
		m.Status = StatusBar{Text: "break over; ready for the next round", IsError: false}
		m.notify("Pomodoro", "Ready for the next round?", "info")
	case timer.PhaseDone:
		m.Status = StatusBar{Text: "task complete", IsError: false}
		m.notify(
			fmt.Sprintf("%s %s finished!", m.Focus.TaskEmoji, m.Focus.TaskTitle),
			fmt.Sprintf("%d 🍅 in the bank!", next.PomodoroCount),
			"info",
		)
	}
}

func (m *Model) applyEncouragement() {
	idx := m.Focus.Session.EncouragementIndex()
	if idx <= 0 {
		return
	}
	key := fmt.Sprintf("%d-%d", m.Focus.Session.PomodoroCount, idx)
	if m.Focus.Encouraged[key] {
		return
	}
	m.Focus.Encouraged[key] = true
	enc := encouragements[idx%len(encouragements)]
	m.notify(fmt.Sprintf("%s %s", enc.Emoji, enc.Text), "Keep up the good work!", "info")
}

func (m Model) renderFocusView() string {
	if !m.Focus.Active {
		return "focus:\ntask: (none selected)\npress f on a task in the today view"
	}
	if m.Focus.Mode == FocusModeCountdown {
		c := m.Focus.Countdown
		return views.RenderFocusPanel(views.FocusPanelData{
			TaskTitle:    m.Focus.TaskTitle,
			TaskEmoji:    m.Focus.TaskEmoji,
			Phase:        phaseLabelCountdown(c),
			Timer:        timeutil.FormatSeconds(c.RemainingSeconds),
			ProgressView: m.focusProgress.ViewAs(c.Progress()),
			Plain:        true,
		})
	}

	s := m.Focus.Session
	return views.RenderFocusPanel(views.FocusPanelData{
		TaskTitle:     m.Focus.TaskTitle,
		TaskEmoji:     m.Focus.TaskEmoji,
		Phase:         string(s.Phase),
		Timer:         timeutil.FormatSeconds(s.SecondsLeft),
		ProgressView:  m.focusProgress.ViewAs(s.SessionProgress()),
		OverallPct:    int(s.OverallProgress() * 100),
		Pomodoros:     s.PomodoroCount,
		WorkedMinutes: (s.WorkedS + s.ElapsedWorkS()) / 60,
		TotalMinutes:  s.TotalWorkS / 60,
		BreakChoice:   s.Phase == timer.PhaseBreakChoice,
		ShowStart:     s.Phase == timer.PhaseReady,
		ShowSkip:      s.Phase == timer.PhaseBreak,
	})
}

func phaseLabelCountdown(c timer.Countdown) string {
	if c.Finished() {
		return "done"
	}
	if c.Running {
		return "work"
	}
	return "paused"
}
