package pomodoro

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func TestStartAndRemaining(t *testing.T) {
	timer := NewTimer(Options{})

	if timer.Phase() != PhaseIdle {
		t.Fatalf("new timer should be idle, got %s", timer.Phase())
	}
	if got := timer.Remaining(t0); got != 0 {
		t.Errorf("idle timer should have 0 remaining, got %v", got)
	}

	if err := timer.Start(t0); err != nil {
		t.Fatal(err)
	}
	if timer.Phase() != PhaseWork {
		t.Errorf("expected working phase, got %s", timer.Phase())
	}
	if got := timer.Remaining(t0); got != 25*time.Minute {
		t.Errorf("expected 25m remaining, got %v", got)
	}
	if got := timer.Remaining(t0.Add(10 * time.Minute)); got != 15*time.Minute {
		t.Errorf("expected 15m remaining, got %v", got)
	}

	if err := timer.Start(t0); err == nil {
		t.Error("starting a running timer should fail")
	}
}

func TestWorkToShortBreak(t *testing.T) {
	timer := NewTimer(Options{})
	if err := timer.Start(t0); err != nil {
		t.Fatal(err)
	}

	// Mid-phase ticks do nothing.
	if phase := timer.Tick(t0.Add(10 * time.Minute)); phase != PhaseWork {
		t.Errorf("expected working, got %s", phase)
	}

	// Crossing the deadline transitions to a short break.
	if phase := timer.Tick(t0.Add(26 * time.Minute)); phase != PhaseShortBreak {
		t.Errorf("expected short break, got %s", phase)
	}
	if timer.CompletedWorkPhases() != 1 {
		t.Errorf("expected 1 completed work phase, got %d", timer.CompletedWorkPhases())
	}

	// The break is anchored at the work deadline, not the late tick. The
	// break started at t0+25m, so it ends at t0+30m.
	if got := timer.Remaining(t0.Add(26 * time.Minute)); got != 4*time.Minute {
		t.Errorf("expected 4m of break remaining, got %v", got)
	}
}

func TestLongBreakEveryFourth(t *testing.T) {
	timer := NewTimer(Options{
		WorkDuration:       time.Minute,
		ShortBreakDuration: time.Minute,
		LongBreakDuration:  time.Minute,
		LongBreakEvery:     4,
	})
	if err := timer.Start(t0); err != nil {
		t.Fatal(err)
	}

	now := t0
	var phases []Phase
	for i := 0; i < 8; i++ {
		now = now.Add(time.Minute)
		phases = append(phases, timer.Tick(now))
	}

	want := []Phase{
		PhaseShortBreak, PhaseWork,
		PhaseShortBreak, PhaseWork,
		PhaseShortBreak, PhaseWork,
		PhaseLongBreak, PhaseWork,
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("transition %d: expected %s, got %s (all: %v)", i, want[i], phases[i], phases)
		}
	}
	if timer.CompletedWorkPhases() != 4 {
		t.Errorf("expected 4 completed work phases, got %d", timer.CompletedWorkPhases())
	}
}

func TestPauseAndResume(t *testing.T) {
	timer := NewTimer(Options{})
	if err := timer.Start(t0); err != nil {
		t.Fatal(err)
	}

	timer.Pause(t0.Add(10 * time.Minute))
	if !timer.Paused() {
		t.Fatal("expected paused")
	}

	// Remaining is frozen while paused.
	if got := timer.Remaining(t0.Add(20 * time.Minute)); got != 15*time.Minute {
		t.Errorf("expected frozen 15m remaining, got %v", got)
	}

	// Ticks do not transition a paused timer, even past the deadline.
	if phase := timer.Tick(t0.Add(time.Hour)); phase != PhaseWork {
		t.Errorf("paused timer transitioned to %s", phase)
	}

	// Resuming after 20 paused minutes pushes the deadline out by 20m.
	timer.Resume(t0.Add(30 * time.Minute))
	if got := timer.Remaining(t0.Add(30 * time.Minute)); got != 15*time.Minute {
		t.Errorf("expected 15m remaining after resume, got %v", got)
	}

	// Resume on a running timer is a no-op.
	timer.Resume(t0.Add(31 * time.Minute))
	if got := timer.Remaining(t0.Add(31 * time.Minute)); got != 14*time.Minute {
		t.Errorf("expected 14m remaining, got %v", got)
	}
}

func TestSkip(t *testing.T) {
	timer := NewTimer(Options{})
	if err := timer.Start(t0); err != nil {
		t.Fatal(err)
	}

	timer.Skip(t0.Add(time.Minute))
	if timer.Phase() != PhaseShortBreak {
		t.Errorf("expected short break after skip, got %s", timer.Phase())
	}
	if timer.CompletedWorkPhases() != 1 {
		t.Errorf("skip should count the work phase, got %d", timer.CompletedWorkPhases())
	}

	timer.Skip(t0.Add(2 * time.Minute))
	if timer.Phase() != PhaseWork {
		t.Errorf("expected work after skipping break, got %s", timer.Phase())
	}

	// Skip while idle is a no-op.
	timer.Stop()
	timer.Skip(t0.Add(3 * time.Minute))
	if timer.Phase() != PhaseIdle {
		t.Errorf("skip on idle timer transitioned to %s", timer.Phase())
	}
}

func TestStopReturnsToIdle(t *testing.T) {
	timer := NewTimer(Options{})
	if err := timer.Start(t0); err != nil {
		t.Fatal(err)
	}
	timer.Pause(t0.Add(time.Minute))
	timer.Stop()

	if timer.Phase() != PhaseIdle {
		t.Errorf("expected idle after stop, got %s", timer.Phase())
	}
	if timer.Paused() {
		t.Error("stop should clear the paused flag")
	}

	// A stopped timer can be started again.
	if err := timer.Start(t0.Add(time.Hour)); err != nil {
		t.Errorf("restart after stop failed: %v", err)
	}
	if timer.CompletedWorkPhases() != 0 {
		t.Errorf("restart should reset the completed count, got %d", timer.CompletedWorkPhases())
	}
}
