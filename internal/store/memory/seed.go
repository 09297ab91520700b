package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/domain"
)

// SeedFerments returns a small demo collection used when the server runs
// without a persistence source. Dates are anchored to the current time so
// the dashboard always has something upcoming.
func SeedFerments() []*domain.Ferment {
	now := time.Now().UTC()
	temp := func(v float64) *float64 { return &v }

	kefirEnd := now.AddDate(0, 0, -30)

	return []*domain.Ferment{
		{
			ID:          uuid.New(),
			Name:        "Kombucha Batch #1",
			Type:        domain.TypeKombucha,
			StartDate:   now.AddDate(0, 0, -3),
			Notes:       "My first kombucha batch, using black tea.",
			Status:      domain.StatusPlanned,
			Temperature: temp(78),
			PH:          temp(3.2),
			Ingredients: []string{"black tea", "sugar", "SCOBY"},
			Images:      []string{},
			Reminders:   []domain.Reminder{},
			LogEntries:  []domain.LogEntry{},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New(),
			Name:        "Spicy Kimchi",
			Type:        domain.TypeKimchi,
			StartDate:   now.AddDate(0, 0, -10),
			Notes:       "Extra spicy batch made with Napa cabbage, Korean chili flakes, garlic, and ginger.",
			Status:      domain.StatusUnstable,
			Temperature: temp(70),
			Ingredients: []string{"napa cabbage", "gochugaru", "garlic", "ginger"},
			Images:      []string{},
			Reminders: []domain.Reminder{
				{
					ID:        uuid.New(),
					Text:      "Taste test and refrigerate if ready",
					Date:      now.AddDate(0, 0, 2),
					Completed: false,
				},
			},
			LogEntries: []domain.LogEntry{},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:          uuid.New(),
			Name:        "Milk Kefir",
			Type:        domain.TypeKefir,
			StartDate:   now.AddDate(0, 0, -32),
			EndDate:     &kefirEnd,
			Notes:       "Turned too sour",
			Status:      domain.StatusBad,
			Temperature: temp(72),
			PH:          temp(4.0),
			Ingredients: []string{"milk", "kefir grains"},
			Images:      []string{},
			Reminders:   []domain.Reminder{},
			LogEntries:  []domain.LogEntry{},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New(),
			Name:        "Sourdough Pizza Crust",
			Type:        domain.TypeSourdough,
			StartDate:   now.AddDate(0, 0, 7),
			Notes:       "For weekend pizza night",
			Status:      domain.StatusPlanned,
			Ingredients: []string{"flour", "water", "starter"},
			Images:      []string{},
			Reminders: []domain.Reminder{
				{
					ID:        uuid.New(),
					Text:      "Feed starter",
					Date:      now.AddDate(0, 0, 6),
					Completed: false,
				},
			},
			LogEntries: []domain.LogEntry{},
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}
