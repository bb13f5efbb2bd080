package timer

// PomodoroSeconds is the standard work-session length. Tasks shorter than
// this get a single session covering the whole duration.
const PomodoroSeconds = 25 * 60

// Phase is the pomodoro session's current state.
type Phase string

const (
	PhaseWork        Phase = "work"
	PhaseBreakChoice Phase = "break-choice"
	PhaseBreak       Phase = "break"
	PhaseReady       Phase = "ready"
	PhaseDone        Phase = "done"
)

// Action drives the session state machine. Tick is the only clock input;
// the rest are user actions.
type Action interface{ isAction() }

type Tick struct{}

type ToggleRunning struct{}

// ChooseBreak picks the break length after a finished work session.
// Minutes outside {3, 5} are ignored.
type ChooseBreak struct{ Minutes int }

type StartNext struct{}

type SkipBreak struct{}

func (Tick) isAction()          {}
func (ToggleRunning) isAction() {}
func (ChooseBreak) isAction()   {}
func (StartNext) isAction()     {}
func (SkipBreak) isAction()     {}

// Session is the pomodoro state machine for one task. It accumulates worked
// time across repeated work/break cycles; Done is terminal and PomodoroCount
// never decreases. The struct is a value: Apply returns the successor state
// and performs no I/O, so side effects belong to the caller on phase entry.
type Session struct {
	Phase            Phase
	SecondsLeft      int
	Running          bool
	SessionDurationS int
	WorkedS          int
	PomodoroCount    int
	BreakDurationS   int
	TotalWorkS       int
}

// NewSession starts a session in the work phase, paused, with the first
// work interval capped at one pomodoro.
func NewSession(totalWorkS int) Session {
	first := totalWorkS
	if first > PomodoroSeconds {
		first = PomodoroSeconds
	}
	return Session{
		Phase:            PhaseWork,
		SecondsLeft:      first,
		SessionDurationS: first,
		BreakDurationS:   3 * 60,
		TotalWorkS:       totalWorkS,
	}
}

// Apply is the pure transition function.
func (s Session) Apply(a Action) Session {
	switch act := a.(type) {
	case Tick:
		return s.tick()
	case ToggleRunning:
		if s.Phase != PhaseWork {
			return s
		}
		s.Running = !s.Running
		return s
	case ChooseBreak:
		if s.Phase != PhaseBreakChoice {
			return s
		}
		if act.Minutes != 3 && act.Minutes != 5 {
			return s
		}
		s.Phase = PhaseBreak
		s.BreakDurationS = act.Minutes * 60
		s.SecondsLeft = s.BreakDurationS
		s.Running = true
		return s
	case StartNext:
		if s.Phase != PhaseReady {
			return s
		}
		next := s.nextSessionSeconds()
		s.Phase = PhaseWork
		s.SessionDurationS = next
		s.SecondsLeft = next
		s.Running = true
		return s
	case SkipBreak:
		if s.Phase != PhaseBreak {
			return s
		}
		next := s.nextSessionSeconds()
		s.Phase = PhaseReady
		s.SessionDurationS = next
		s.SecondsLeft = next
		s.Running = false
		return s
	default:
		return s
	}
}

func (s Session) tick() Session {
	if !s.Running || s.SecondsLeft <= 0 {
		return s
	}
	s.SecondsLeft--
	if s.SecondsLeft > 0 {
		return s
	}
	s.Running = false
	switch s.Phase {
	case PhaseWork:
		s.WorkedS += s.SessionDurationS
		s.PomodoroCount++
		if s.WorkedS >= s.TotalWorkS {
			s.Phase = PhaseDone
		} else {
			s.Phase = PhaseBreakChoice
		}
	case PhaseBreak:
		s.Phase = PhaseReady
	}
	return s
}

func (s Session) nextSessionSeconds() int {
	next := s.TotalWorkS - s.WorkedS
	if next > PomodoroSeconds {
		next = PomodoroSeconds
	}
	if next < 0 {
		next = 0
	}
	return next
}

// ElapsedWorkS is the progress into the current work session, zero in any
// other phase.
func (s Session) ElapsedWorkS() int {
	if s.Phase != PhaseWork {
		return 0
	}
	return s.SessionDurationS - s.SecondsLeft
}

// OverallProgress is worked time including the in-flight work session over
// the task total, clamped to 1.
func (s Session) OverallProgress() float64 {
	if s.TotalWorkS <= 0 {
		return 0
	}
	p := float64(s.WorkedS+s.ElapsedWorkS()) / float64(s.TotalWorkS)
	if p > 1 {
		return 1
	}
	return p
}

// SessionProgress is the elapsed fraction of the current work session or
// break.
func (s Session) SessionProgress() float64 {
	total := s.SessionDurationS
	if s.Phase == PhaseBreak {
		total = s.BreakDurationS
	}
	if total <= 0 {
		return 0
	}
	p := 1 - float64(s.SecondsLeft)/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// EncouragementIndex is the 10-minute interval reached within the current
// work session, 0 when none is due. The caller deduplicates per
// (PomodoroCount, index) pair so an encouragement fires at most once.
func (s Session) EncouragementIndex() int {
	if s.Phase != PhaseWork || !s.Running || s.SecondsLeft == 0 {
		return 0
	}
	return s.ElapsedWorkS() / (10 * 60)
}
