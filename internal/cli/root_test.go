package cli

import (
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	wds, err := ParseWeekdays("mon, Wednesday,5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(wds) != len(want) {
		t.Fatalf("got %v, want %v", wds, want)
	}
	for i := range want {
		if wds[i] != want[i] {
			t.Errorf("got %v, want %v", wds, want)
		}
	}

	if _, err := ParseWeekdays("mon,someday"); err == nil {
		t.Error("expected error for invalid weekday")
	}
	if _, err := ParseWeekdays("7"); err == nil {
		t.Error("expected error for out-of-range weekday number")
	}
}

func TestFormatRecurrence(t *testing.T) {
	tests := []struct {
		name string
		rec  models.Recurrence
		want string
	}{
		{"none", models.Recurrence{}, "one-off"},
		{"daily", models.Recurrence{Type: constants.RecurrenceDaily}, "daily"},
		{
			"weekly",
			models.Recurrence{Type: constants.RecurrenceWeekly, DaysOfWeek: []time.Weekday{time.Monday, time.Friday}},
			"weekly on Mon,Fri",
		},
		{
			"monthly",
			models.Recurrence{Type: constants.RecurrenceMonthly, DayOfMonth: 15},
			"monthly on day 15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRecurrence(tt.rec); got != tt.want {
				t.Errorf("FormatRecurrence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	got, err := ParseDate("", time.UTC, now)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(now) {
		t.Errorf("empty input should return now, got %v", got)
	}

	got, err = ParseDate("2024-01-31", time.UTC, now)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseDate("31/01/2024", time.UTC, now); err == nil {
		t.Error("expected error for wrong date format")
	}
}
