package pomodoro

import (
	"fmt"
	"time"
)

// Phase is the state the timer is in.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseWork       Phase = "working"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Options configures a timer. Zero values fall back to the classic defaults.
type Options struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	// LongBreakEvery inserts a long break after every Nth completed work
	// phase.
	LongBreakEvery int
}

func (o Options) withDefaults() Options {
	if o.WorkDuration <= 0 {
		o.WorkDuration = 25 * time.Minute
	}
	if o.ShortBreakDuration <= 0 {
		o.ShortBreakDuration = 5 * time.Minute
	}
	if o.LongBreakDuration <= 0 {
		o.LongBreakDuration = 15 * time.Minute
	}
	if o.LongBreakEvery <= 0 {
		o.LongBreakEvery = 4
	}
	return o
}

// Timer is a pomodoro countdown state machine. It holds no goroutines and
// does no timekeeping of its own: the caller drives it by calling Tick with
// the current instant, typically from a ticker loop. All transitions are
// functions of (state, now), so the machine tolerates coarse or irregular
// tick intervals.
type Timer struct {
	opts Options

	phase     Phase
	phaseEnds time.Time
	pausedAt  time.Time
	paused    bool
	completed int
}

func NewTimer(opts Options) *Timer {
	return &Timer{
		opts:  opts.withDefaults(),
		phase: PhaseIdle,
	}
}

// Phase returns the current phase.
func (t *Timer) Phase() Phase { return t.phase }

// Paused reports whether the countdown is suspended.
func (t *Timer) Paused() bool { return t.paused }

// CompletedWorkPhases returns how many work phases have finished since Start.
func (t *Timer) CompletedWorkPhases() int { return t.completed }

// Remaining returns how much of the current phase is left as of now.
// Zero when idle.
func (t *Timer) Remaining(now time.Time) time.Duration {
	if t.phase == PhaseIdle {
		return 0
	}
	ref := now
	if t.paused {
		ref = t.pausedAt
	}
	left := t.phaseEnds.Sub(ref)
	if left < 0 {
		return 0
	}
	return left
}

// Start begins the first work phase. Starting a running timer is an error.
func (t *Timer) Start(now time.Time) error {
	if t.phase != PhaseIdle {
		return fmt.Errorf("timer already running (%s)", t.phase)
	}
	t.completed = 0
	t.enterPhase(PhaseWork, now)
	return nil
}

// Stop abandons the current session and returns to idle. The completed
// work-phase count survives until the next Start.
func (t *Timer) Stop() {
	t.phase = PhaseIdle
	t.paused = false
	t.phaseEnds = time.Time{}
}

// Pause freezes the countdown. Pausing an idle or already paused timer is a
// no-op.
func (t *Timer) Pause(now time.Time) {
	if t.phase == PhaseIdle || t.paused {
		return
	}
	t.paused = true
	t.pausedAt = now
}

// Resume continues a paused countdown, extending the phase deadline by the
// time spent paused.
func (t *Timer) Resume(now time.Time) {
	if !t.paused {
		return
	}
	t.phaseEnds = t.phaseEnds.Add(now.Sub(t.pausedAt))
	t.paused = false
}

// Skip ends the current phase immediately and transitions to the next one.
func (t *Timer) Skip(now time.Time) {
	if t.phase == PhaseIdle {
		return
	}
	t.paused = false
	t.advance(now)
}

// Tick advances the machine to now, performing at most one phase transition.
// It returns the phase in effect after the tick. A paused or idle timer
// never transitions.
func (t *Timer) Tick(now time.Time) Phase {
	if t.phase == PhaseIdle || t.paused {
		return t.phase
	}
	if now.Before(t.phaseEnds) {
		return t.phase
	}
	t.advance(t.phaseEnds)
	return t.phase
}

// advance moves to the phase that follows the current one, anchored at now.
func (t *Timer) advance(now time.Time) {
	switch t.phase {
	case PhaseWork:
		t.completed++
		if t.completed%t.opts.LongBreakEvery == 0 {
			t.enterPhase(PhaseLongBreak, now)
		} else {
			t.enterPhase(PhaseShortBreak, now)
		}
	case PhaseShortBreak, PhaseLongBreak:
		t.enterPhase(PhaseWork, now)
	}
}

func (t *Timer) enterPhase(phase Phase, now time.Time) {
	t.phase = phase
	t.paused = false
	switch phase {
	case PhaseWork:
		t.phaseEnds = now.Add(t.opts.WorkDuration)
	case PhaseShortBreak:
		t.phaseEnds = now.Add(t.opts.ShortBreakDuration)
	case PhaseLongBreak:
		t.phaseEnds = now.Add(t.opts.LongBreakDuration)
	}
}
