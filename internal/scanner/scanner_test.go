package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
)

type stubSource struct {
	activities []models.MasterActivity
	err        error
}

func (s *stubSource) GetAllActivities() ([]models.MasterActivity, error) {
	return s.activities, s.err
}

type recordingDeliverer struct {
	mu       sync.Mutex
	messages []string
	fail     bool
}

func (d *recordingDeliverer) Notify(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return errors.New("delivery down")
	}
	d.messages = append(d.messages, text)
	return nil
}

func (d *recordingDeliverer) all() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.messages...)
}

func newTestScanner(activities []models.MasterActivity, d Deliverer) *Scanner {
	return New(&stubSource{activities: activities}, d, Options{
		LeadMinutes: 30,
		HorizonDays: 8,
		Location:    time.UTC,
	})
}

func dailyActivity(id, title, at string, createdAt time.Time) models.MasterActivity {
	return models.MasterActivity{
		ID:         id,
		Title:      title,
		Time:       at,
		CreatedAt:  createdAt.UnixMilli(),
		Recurrence: models.Recurrence{Type: constants.RecurrenceDaily},
	}
}

func TestScanStartingSoon(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 10, 8, 45, 0, 0, time.UTC)

	d := &recordingDeliverer{}
	s := newTestScanner([]models.MasterActivity{
		dailyActivity("standup", "Standup", "09:00", created),
	}, d)

	s.ScanOnce(now)

	found := false
	for _, msg := range d.all() {
		if msg == "Standup starts at 09:00" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected starting-soon reminder, got %v", d.all())
	}
}

func TestScanOutsideLeadWindow(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	d := &recordingDeliverer{}
	s := newTestScanner([]models.MasterActivity{
		dailyActivity("standup", "Standup", "14:00", created),
	}, d)

	// 14:00 is far beyond the 30 minute lead at 08:00.
	s.ScanOnce(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))

	for _, msg := range d.all() {
		if msg == "Standup starts at 14:00" {
			t.Errorf("reminder fired outside lead window: %v", d.all())
		}
	}

	// Already started: 14:05 must not remind either.
	s.ScanOnce(time.Date(2024, 6, 10, 14, 5, 0, 0, time.UTC))
	for _, msg := range d.all() {
		if msg == "Standup starts at 14:00" {
			t.Errorf("reminder fired after start time: %v", d.all())
		}
	}
}

func TestScanTomorrowAndUpcoming(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC).UnixMilli()

	tomorrow := models.MasterActivity{
		ID:        "review",
		Title:     "Review",
		CreatedAt: time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC).UnixMilli(),
	}
	upcoming := models.MasterActivity{
		ID:        "report",
		Title:     "Report",
		CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC).UnixMilli(),
		Recurrence: models.Recurrence{
			Type:       constants.RecurrenceWeekly,
			DaysOfWeek: []time.Weekday{time.Thursday}, // June 13
			EndDate:    &endDate,
		},
	}

	d := &recordingDeliverer{}
	s := newTestScanner([]models.MasterActivity{tomorrow, upcoming}, d)
	s.ScanOnce(now)

	got := d.all()
	wantTomorrow := "Review is tomorrow"
	wantUpcoming := "Report is in 3 days"
	foundTomorrow, foundUpcoming := false, false
	for _, msg := range got {
		if msg == wantTomorrow {
			foundTomorrow = true
		}
		if msg == wantUpcoming {
			foundUpcoming = true
		}
	}
	if !foundTomorrow {
		t.Errorf("expected %q in %v", wantTomorrow, got)
	}
	if !foundUpcoming {
		t.Errorf("expected %q in %v", wantUpcoming, got)
	}
}

func TestScanDedupWithinDay(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	activity := models.MasterActivity{
		ID:        "review",
		Title:     "Review",
		CreatedAt: time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC).UnixMilli(),
	}

	d := &recordingDeliverer{}
	s := newTestScanner([]models.MasterActivity{activity}, d)

	s.ScanOnce(now)
	s.ScanOnce(now.Add(5 * time.Minute))
	s.ScanOnce(now.Add(10 * time.Minute))

	if len(d.all()) != 1 {
		t.Errorf("expected exactly one reminder, got %v", d.all())
	}
}

func TestScanDedupClearsOnRollover(t *testing.T) {
	activity := models.MasterActivity{
		ID:         "workout",
		Title:      "Workout",
		CreatedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC).UnixMilli(),
		Recurrence: models.Recurrence{Type: constants.RecurrenceDaily},
	}

	d := &recordingDeliverer{}
	s := newTestScanner([]models.MasterActivity{activity}, d)

	s.ScanOnce(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
	first := len(d.all())
	if first == 0 {
		t.Fatal("expected reminders on the first day")
	}

	// Same day again: nothing new.
	s.ScanOnce(time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC))
	if len(d.all()) != first {
		t.Errorf("same-day rescan fired again: %v", d.all())
	}

	// Next day: the dedup set resets and tomorrow's reminder fires anew.
	s.ScanOnce(time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC))
	if len(d.all()) <= first {
		t.Errorf("expected new reminders after day rollover, got %v", d.all())
	}
}

func TestScanSkipsCompletedAndDeleted(t *testing.T) {
	deleted := "2024-06-01T00:00:00Z"
	activities := []models.MasterActivity{
		{
			ID:         "done",
			Title:      "Done thing",
			CreatedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC).UnixMilli(),
			Recurrence: models.Recurrence{Type: constants.RecurrenceDaily},
			CompletedOccurrences: map[string]bool{
				"2024-06-11": true,
			},
		},
		{
			ID:         "gone",
			Title:      "Gone thing",
			CreatedAt:  time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC).UnixMilli(),
			DeletedAt:  &deleted,
			Recurrence: models.Recurrence{Type: constants.RecurrenceNone},
		},
	}

	d := &recordingDeliverer{}
	s := newTestScanner(activities, d)
	s.ScanOnce(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))

	for _, msg := range d.all() {
		if msg == "Done thing is tomorrow" || msg == "Gone thing is tomorrow" {
			t.Errorf("reminder fired for completed or deleted activity: %v", d.all())
		}
	}
}

func TestScanRetriesAfterDeliveryFailure(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	activity := models.MasterActivity{
		ID:        "review",
		Title:     "Review",
		CreatedAt: time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC).UnixMilli(),
	}

	d := &recordingDeliverer{fail: true}
	s := newTestScanner([]models.MasterActivity{activity}, d)

	s.ScanOnce(now)
	if len(d.all()) != 0 {
		t.Fatalf("failed delivery recorded messages: %v", d.all())
	}

	d.mu.Lock()
	d.fail = false
	d.mu.Unlock()

	s.ScanOnce(now.Add(5 * time.Minute))
	if len(d.all()) != 1 {
		t.Errorf("expected redelivery after failure, got %v", d.all())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	d := &recordingDeliverer{}
	s := New(&stubSource{}, d, Options{
		Interval: time.Hour,
		Location: time.UTC,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scanner did not stop after cancellation")
	}
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if got := daysBetween(from, from); got != 0 {
		t.Errorf("same day: got %d", got)
	}
	if got := daysBetween(from, from.AddDate(0, 0, 3)); got != 3 {
		t.Errorf("three days out: got %d", got)
	}
}
