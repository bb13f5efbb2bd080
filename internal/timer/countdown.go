// Package timer holds the focus-session state machines. Both the plain
// countdown and the pomodoro session are pure: the host owns the clock and
// feeds in one Tick per elapsed second, so no two ticks can be in flight for
// the same instance.
package timer

// Countdown is a single-session second-granularity countdown. Reaching zero
// stops the timer and is terminal until Reset.
type Countdown struct {
	TotalSeconds     int
	RemainingSeconds int
	Running          bool
}

func NewCountdown(totalSeconds int) Countdown {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return Countdown{TotalSeconds: totalSeconds, RemainingSeconds: totalSeconds}
}

// Start resumes ticking. A countdown that has hit zero stays stopped.
func (c Countdown) Start() Countdown {
	if c.RemainingSeconds <= 0 {
		return c
	}
	c.Running = true
	return c
}

// Pause halts ticking without touching the remaining time.
func (c Countdown) Pause() Countdown {
	c.Running = false
	return c
}

// Reset restores the full duration and stops the timer.
func (c Countdown) Reset() Countdown {
	c.RemainingSeconds = c.TotalSeconds
	c.Running = false
	return c
}

// Tick applies one elapsed second. It is a no-op unless running.
func (c Countdown) Tick() Countdown {
	if !c.Running || c.RemainingSeconds <= 0 {
		return c
	}
	c.RemainingSeconds--
	if c.RemainingSeconds == 0 {
		c.Running = false
	}
	return c
}

// Finished reports whether the countdown has run to zero.
func (c Countdown) Finished() bool {
	return c.RemainingSeconds == 0 && c.TotalSeconds > 0
}

// Progress is the elapsed fraction, clamped to [0,1].
func (c Countdown) Progress() float64 {
	if c.TotalSeconds <= 0 {
		return 0
	}
	p := 1 - float64(c.RemainingSeconds)/float64(c.TotalSeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
