// Package schedule derives reminder drafts from a ferment's type. The rule
// tables are data, not control flow: each type maps to an ordered list of
// (offset, title, text) entries applied to a single reference time.
package schedule

import (
	"time"

	"github.com/MonksterFX/fermentation-station/internal/domain"
)

// Service defines the interface for reminder schedule generation.
type Service interface {
	// DraftsFor computes the proposed reminders for a ferment based on its
	// type. The reference time is taken once at invocation; the call never
	// fails, and unrecognized types degrade to the generic schedule.
	DraftsFor(ferment *domain.Ferment) []domain.ReminderDraft
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	timeFunc func() time.Time // Injectable for testing
}

// NewService creates a scheduler that uses the wall clock as its reference
// time source.
func NewService() Service {
	return &defaultService{timeFunc: time.Now}
}

// NewServiceWithClock creates a scheduler with an injected clock. Tests use
// this to freeze the reference time.
func NewServiceWithClock(timeFunc func() time.Time) Service {
	return &defaultService{timeFunc: timeFunc}
}

// DraftsFor implements the Service interface.
func (s *defaultService) DraftsFor(ferment *domain.Ferment) []domain.ReminderDraft {
	var fermentType domain.FermentType
	if ferment != nil {
		fermentType = ferment.Type
	}
	return DraftsAt(fermentType, s.timeFunc())
}

// DraftsAt is the pure core of the scheduler: it maps a ferment type and a
// reference time to reminder drafts. Deterministic for a fixed input pair;
// the draft order follows the rule table order.
func DraftsAt(fermentType domain.FermentType, ref time.Time) []domain.ReminderDraft {
	rules := RulesFor(fermentType)

	drafts := make([]domain.ReminderDraft, 0, len(rules))
	for _, rule := range rules {
		drafts = append(drafts, domain.ReminderDraft{
			Title: rule.Title,
			Text:  rule.Text,
			Date:  rule.After.From(ref),
		})
	}
	return drafts
}
