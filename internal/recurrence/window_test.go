package recurrence

import (
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/constants"
)

func TestResolveWindow_Day(t *testing.T) {
	ref := time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)

	start, end, err := ResolveWindow(ViewDay, ref, time.Monday)
	if err != nil {
		t.Fatalf("ResolveWindow returned error: %v", err)
	}
	if got := start.Format(constants.DateFormat); got != "2024-06-10" {
		t.Errorf("Day window start = %s, want 2024-06-10", got)
	}
	if got := end.Format(constants.DateFormat); got != "2024-06-10" {
		t.Errorf("Day window end = %s, want 2024-06-10", got)
	}
	if !end.After(start) {
		t.Error("Day window end should be after its start")
	}
}

func TestResolveWindow_WeekStartMonday(t *testing.T) {
	// 2024-06-12 is a Wednesday
	ref := time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC)

	start, end, err := ResolveWindow(ViewWeek, ref, time.Monday)
	if err != nil {
		t.Fatalf("ResolveWindow returned error: %v", err)
	}
	if got := start.Format(constants.DateFormat); got != "2024-06-10" {
		t.Errorf("Week start = %s, want Monday 2024-06-10", got)
	}
	if got := end.Format(constants.DateFormat); got != "2024-06-16" {
		t.Errorf("Week end = %s, want Sunday 2024-06-16", got)
	}
}

func TestResolveWindow_WeekStartSunday(t *testing.T) {
	ref := time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC)

	start, end, err := ResolveWindow(ViewWeek, ref, time.Sunday)
	if err != nil {
		t.Fatalf("ResolveWindow returned error: %v", err)
	}
	if got := start.Format(constants.DateFormat); got != "2024-06-09" {
		t.Errorf("Week start = %s, want Sunday 2024-06-09", got)
	}
	if got := end.Format(constants.DateFormat); got != "2024-06-15" {
		t.Errorf("Week end = %s, want Saturday 2024-06-15", got)
	}
}

func TestResolveWindow_WeekReferenceOnWeekStart(t *testing.T) {
	// Reference day is itself the configured week start
	ref := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC) // Monday

	start, _, err := ResolveWindow(ViewWeek, ref, time.Monday)
	if err != nil {
		t.Fatalf("ResolveWindow returned error: %v", err)
	}
	if got := start.Format(constants.DateFormat); got != "2024-06-10" {
		t.Errorf("Week start = %s, want the reference day itself", got)
	}
}

func TestResolveWindow_Month(t *testing.T) {
	ref := time.Date(2024, time.February, 14, 12, 0, 0, 0, time.UTC)

	start, end, err := ResolveWindow(ViewMonth, ref, time.Monday)
	if err != nil {
		t.Fatalf("ResolveWindow returned error: %v", err)
	}
	if got := start.Format(constants.DateFormat); got != "2024-02-01" {
		t.Errorf("Month start = %s, want 2024-02-01", got)
	}
	if got := end.Format(constants.DateFormat); got != "2024-02-29" {
		t.Errorf("Month end = %s, want leap-year 2024-02-29", got)
	}
}

func TestResolveWindow_UnknownMode(t *testing.T) {
	_, _, err := ResolveWindow(ViewMode("fortnight"), time.Now(), time.Monday)
	if err == nil {
		t.Error("Expected error for unknown view mode")
	}
}
