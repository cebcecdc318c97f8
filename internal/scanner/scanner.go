package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recurrence"
)

// ActivitySource is the slice of the store the scanner reads from.
type ActivitySource interface {
	GetAllActivities() ([]models.MasterActivity, error)
}

// Deliverer carries a reminder to the user. The tray notifier is the default
// implementation; a log deliverer stands in when the tray app is not running.
type Deliverer interface {
	Notify(text string) error
}

// Options tunes a scanner. Zero values fall back to the application defaults.
type Options struct {
	LeadMinutes int
	HorizonDays int
	Interval    time.Duration
	Location    *time.Location
}

type dedupKey struct {
	masterID string
	dateKey  string
	kind     constants.ReminderKind
}

// Scanner periodically expands upcoming occurrences and fires reminders.
// A reminder fires at most once per (activity, occurrence date, kind) per
// calendar day; the dedup set is cleared on day rollover so a scan invoked
// across a stale day boundary cannot double-fire.
type Scanner struct {
	source    ActivitySource
	deliverer Deliverer
	opts      Options
	log       *log.Logger

	mu       sync.Mutex
	fired    map[dedupKey]struct{}
	firedDay string
}

func New(source ActivitySource, deliverer Deliverer, opts Options) *Scanner {
	if opts.LeadMinutes <= 0 {
		opts.LeadMinutes = constants.DefaultReminderLeadMin
	}
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = constants.DefaultReminderHorizon
	}
	if opts.Interval <= 0 {
		opts.Interval = constants.DefaultScanInterval
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Scanner{
		source:    source,
		deliverer: deliverer,
		opts:      opts,
		log:       logger.Named("scanner"),
		fired:     make(map[dedupKey]struct{}),
	}
}

// Run scans on the configured interval until ctx is cancelled. The first
// scan happens immediately rather than one interval in.
func (s *Scanner) Run(ctx context.Context) error {
	s.ScanOnce(time.Now().In(s.opts.Location))

	c := cron.New(cron.WithLocation(s.opts.Location))
	spec := fmt.Sprintf("@every %ds", int(s.opts.Interval.Seconds()))
	if _, err := c.AddFunc(spec, func() {
		s.ScanOnce(time.Now().In(s.opts.Location))
	}); err != nil {
		return errors.Wrap(err, "failed to schedule scan")
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

// ScanOnce performs a single forward-looking scan as of now.
func (s *Scanner) ScanOnce(now time.Time) {
	activities, err := s.source.GetAllActivities()
	if err != nil {
		s.log.Warn("reminder scan failed to load activities", "error", err)
		return
	}

	today := startOfDay(now)
	windowEnd := today.AddDate(0, 0, s.opts.HorizonDays).Add(-time.Nanosecond)

	s.rollover(recurrence.DateKey(today))

	for _, master := range activities {
		if master.DeletedAt != nil {
			continue
		}
		for _, occ := range recurrence.Expand(master, today, windowEnd) {
			if occ.Completed {
				continue
			}
			kind, text, ok := s.classify(occ, now, today)
			if !ok {
				continue
			}
			s.fire(occ, kind, text)
		}
	}
}

// classify decides which reminder, if any, the occurrence warrants right now.
func (s *Scanner) classify(occ recurrence.Occurrence, now, today time.Time) (constants.ReminderKind, string, bool) {
	occDay := startOfDay(occ.InstanceDate)
	daysOut := daysBetween(today, occDay)

	switch {
	case daysOut == 0:
		if occ.Time == "" {
			return "", "", false
		}
		at, err := time.ParseInLocation(constants.TimeFormat, occ.Time, now.Location())
		if err != nil {
			return "", "", false
		}
		start := time.Date(today.Year(), today.Month(), today.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
		until := start.Sub(now)
		if until < 0 || until > time.Duration(s.opts.LeadMinutes)*time.Minute {
			return "", "", false
		}
		return constants.ReminderStartingSoon,
			fmt.Sprintf("%s starts at %s", occ.Title, occ.Time), true
	case daysOut == 1:
		return constants.ReminderTomorrow,
			fmt.Sprintf("%s is tomorrow", occ.Title), true
	default:
		return constants.ReminderUpcoming,
			fmt.Sprintf("%s is in %d days", occ.Title, daysOut), true
	}
}

func (s *Scanner) fire(occ recurrence.Occurrence, kind constants.ReminderKind, text string) {
	key := dedupKey{
		masterID: occ.MasterID,
		dateKey:  recurrence.DateKey(occ.InstanceDate),
		kind:     kind,
	}

	s.mu.Lock()
	if _, seen := s.fired[key]; seen {
		s.mu.Unlock()
		return
	}
	s.fired[key] = struct{}{}
	s.mu.Unlock()

	if err := s.deliverer.Notify(text); err != nil {
		s.log.Warn("reminder delivery failed", "activity", occ.MasterID, "kind", kind, "error", err)
		// Allow a retry on the next scan
		s.mu.Lock()
		delete(s.fired, key)
		s.mu.Unlock()
	}
}

// rollover clears the dedup set when the scan day changes.
func (s *Scanner) rollover(day string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.firedDay != day {
		s.fired = make(map[dedupKey]struct{})
		s.firedDay = day
	}
}

// daysBetween counts calendar days from one midnight to another. Stepping by
// calendar day keeps the count stable across DST transitions.
func daysBetween(from, to time.Time) int {
	days := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
