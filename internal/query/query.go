// Package query provides read-only derived views over the ferment
// collection. Every view is recomputed from a store snapshot on each call;
// nothing here mutates state.
package query

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/domain"
)

// Bucket classifies a reminder date relative to a reference time.
type Bucket string

// Reminder date buckets. "Today" wins over "Overdue": the comparison is by
// calendar day, not by instant.
const (
	BucketOverdue  Bucket = "overdue"
	BucketToday    Bucket = "today"
	BucketUpcoming Bucket = "upcoming"
)

// FermentReminder is a reminder flattened out of its ferment, annotated
// with its owner and date bucket for list views.
type FermentReminder struct {
	domain.Reminder
	FermentID   uuid.UUID `json:"ferment_id"`
	FermentName string    `json:"ferment_name"`
	Bucket      Bucket    `json:"bucket"`
}

// Stats holds the dashboard aggregate counts.
type Stats struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	Planned       int `json:"planned"`
	OpenReminders int `json:"open_reminders"`
}

// FilterByStatus returns the ferments with exactly the given status. An
// empty status means no filter.
func FilterByStatus(ferments []*domain.Ferment, status domain.FermentStatus) []*domain.Ferment {
	if status == "" {
		return ferments
	}
	filtered := make([]*domain.Ferment, 0, len(ferments))
	for _, ferment := range ferments {
		if ferment.Status == status {
			filtered = append(filtered, ferment)
		}
	}
	return filtered
}

// Recent returns up to limit ferments ordered by start date descending.
// A non-positive limit returns the full sorted slice.
func Recent(ferments []*domain.Ferment, limit int) []*domain.Ferment {
	sorted := make([]*domain.Ferment, len(ferments))
	copy(sorted, ferments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// AllReminders flattens every reminder across the collection, annotates it
// with its owning ferment and date bucket, and sorts by date ascending.
func AllReminders(ferments []*domain.Ferment, now time.Time) []FermentReminder {
	var all []FermentReminder
	for _, ferment := range ferments {
		for _, reminder := range ferment.Reminders {
			all = append(all, FermentReminder{
				Reminder:    reminder,
				FermentID:   ferment.ID,
				FermentName: ferment.Name,
				Bucket:      Classify(reminder.Date, now),
			})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})
	return all
}

// Upcoming returns up to limit incomplete reminders, soonest first.
func Upcoming(ferments []*domain.Ferment, now time.Time, limit int) []FermentReminder {
	all := AllReminders(ferments, now)
	open := make([]FermentReminder, 0, len(all))
	for _, reminder := range all {
		if !reminder.Completed {
			open = append(open, reminder)
		}
	}
	if limit > 0 && limit < len(open) {
		open = open[:limit]
	}
	return open
}

// Classify buckets a reminder date against the reference time. Whether a
// date is "today" is a calendar-day comparison in the reference time's
// location; past and future fall out of plain ordering.
func Classify(date, now time.Time) Bucket {
	y1, m1, d1 := date.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return BucketToday
	}
	if date.Before(now) {
		return BucketOverdue
	}
	return BucketUpcoming
}

// Aggregate computes the dashboard counts: total ferments, ferments in an
// active status, planned ferments, and incomplete reminders across the
// whole collection.
func Aggregate(ferments []*domain.Ferment) Stats {
	stats := Stats{Total: len(ferments)}
	for _, ferment := range ferments {
		if ferment.Status.IsActive() {
			stats.Active++
		}
		if ferment.Status == domain.StatusPlanned {
			stats.Planned++
		}
		for _, reminder := range ferment.Reminders {
			if !reminder.Completed {
				stats.OpenReminders++
			}
		}
	}
	return stats
}
