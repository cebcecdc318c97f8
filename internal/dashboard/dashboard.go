package dashboard

import (
	"sort"
	"time"

	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/recurrence"
)

// CategoryStats holds the occurrence tallies for a single category across a
// reporting window.
type CategoryStats struct {
	CategoryID string
	Occurred   int
	Completed  int
}

// Completion returns the completed fraction in [0, 1], or 0 when the
// category had no occurrences.
func (c CategoryStats) Completion() float64 {
	if c.Occurred == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Occurred)
}

// Report is the aggregated view of a set of activities over a window.
type Report struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Occurred    int
	Completed   int
	Categories  []CategoryStats
}

// Completion returns the overall completed fraction in [0, 1].
func (r Report) Completion() float64 {
	if r.Occurred == 0 {
		return 0
	}
	return float64(r.Completed) / float64(r.Occurred)
}

// Aggregate expands every master over [windowStart, windowEnd] and tallies
// occurrences and completions overall and per category. Soft-deleted masters
// are skipped. Categories are ordered by ID for stable rendering.
func Aggregate(activities []models.MasterActivity, windowStart, windowEnd time.Time) Report {
	report := Report{WindowStart: windowStart, WindowEnd: windowEnd}
	byCategory := make(map[string]*CategoryStats)

	for _, master := range activities {
		if master.DeletedAt != nil {
			continue
		}
		for _, occ := range recurrence.Expand(master, windowStart, windowEnd) {
			stats, ok := byCategory[occ.CategoryID]
			if !ok {
				stats = &CategoryStats{CategoryID: occ.CategoryID}
				byCategory[occ.CategoryID] = stats
			}
			report.Occurred++
			stats.Occurred++
			if occ.Completed {
				report.Completed++
				stats.Completed++
			}
		}
	}

	report.Categories = make([]CategoryStats, 0, len(byCategory))
	for _, stats := range byCategory {
		report.Categories = append(report.Categories, *stats)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].CategoryID < report.Categories[j].CategoryID
	})

	return report
}
