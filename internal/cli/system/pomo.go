package system

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/notifier"
	"github.com/daybook-app/daybook/internal/pomodoro"
)

type PomoCmd struct {
	Work       int  `help:"Work phase length in minutes." default:"25"`
	ShortBreak int  `help:"Short break length in minutes." default:"5"`
	LongBreak  int  `help:"Long break length in minutes." default:"15"`
	Every      int  `help:"Long break after every Nth work phase." default:"4"`
	Sessions   int  `help:"Stop after this many completed work phases (0 = until interrupted)." default:"0"`
	Notify     bool `help:"Announce phase changes through the tray app."`
}

func (c *PomoCmd) Run(ctx *cli.Context) error {
	timer := pomodoro.NewTimer(pomodoro.Options{
		WorkDuration:       time.Duration(c.Work) * time.Minute,
		ShortBreakDuration: time.Duration(c.ShortBreak) * time.Minute,
		LongBreakDuration:  time.Duration(c.LongBreak) * time.Minute,
		LongBreakEvery:     c.Every,
	})

	now := time.Now()
	if err := timer.Start(now); err != nil {
		return err
	}
	fmt.Printf("Pomodoro started: %dm work, Ctrl-C to stop\n", c.Work)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	phase := timer.Phase()
	for {
		select {
		case <-runCtx.Done():
			timer.Stop()
			fmt.Printf("\nStopped after %d completed work phase(s)\n", timer.CompletedWorkPhases())
			return nil
		case tick := <-ticker.C:
			next := timer.Tick(tick)
			if next != phase {
				phase = next
				c.announce(phase, timer.CompletedWorkPhases())
			}
			if c.Sessions > 0 && timer.CompletedWorkPhases() >= c.Sessions {
				timer.Stop()
				fmt.Printf("\nDone: %d work phase(s) completed\n", c.Sessions)
				return nil
			}
			fmt.Printf("\r%-12s %s  ", phase, formatRemaining(timer.Remaining(tick)))
		}
	}
}

func (c *PomoCmd) announce(phase pomodoro.Phase, completed int) {
	var text string
	switch phase {
	case pomodoro.PhaseWork:
		text = "Back to work"
	case pomodoro.PhaseShortBreak:
		text = "Take a short break"
	case pomodoro.PhaseLongBreak:
		text = fmt.Sprintf("Long break, %d work phases done", completed)
	default:
		return
	}

	fmt.Printf("\n%s\n", text)
	if c.Notify {
		if err := notifier.New().Notify(text); err != nil {
			logger.Debug("pomodoro notification failed", "error", err)
		}
	}
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
