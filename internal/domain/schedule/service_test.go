package schedule

import (
	"testing"
	"time"

	"github.com/MonksterFX/fermentation-station/internal/domain"
)

func TestDraftsAtKombucha(t *testing.T) {
	t.Parallel()
	ref := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	drafts := DraftsAt(domain.TypeKombucha, ref)

	expected := []struct {
		title string
		date  time.Time
	}{
		{"Check Kombucha", ref.AddDate(0, 0, 5)},
		{"Bottle Kombucha", ref.AddDate(0, 0, 7)},
		{"Kombucha Second Fermentation", ref.AddDate(0, 0, 10)},
	}

	if len(drafts) != len(expected) {
		t.Fatalf("Expected %d drafts, got %d", len(expected), len(drafts))
	}

	for i, want := range expected {
		if drafts[i].Title != want.title {
			t.Errorf("draft %d: expected title %q, got %q", i, want.title, drafts[i].Title)
		}
		if !drafts[i].Date.Equal(want.date) {
			t.Errorf("draft %d: expected date %v, got %v", i, want.date, drafts[i].Date)
		}
		if drafts[i].Text == "" {
			t.Errorf("draft %d: expected non-empty text", i)
		}
	}
}

func TestDraftsAtSubDayOffsets(t *testing.T) {
	t.Parallel()
	ref := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	drafts := DraftsAt(domain.TypeKefir, ref)
	if len(drafts) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(drafts))
	}
	if !drafts[0].Date.Equal(ref.Add(24 * time.Hour)) {
		t.Errorf("Expected +24h, got %v", drafts[0].Date)
	}
	if !drafts[1].Date.Equal(ref.Add(36 * time.Hour)) {
		t.Errorf("Expected +36h, got %v", drafts[1].Date)
	}

	drafts = DraftsAt(domain.TypeYogurt, ref)
	if !drafts[0].Date.Equal(ref.Add(8*time.Hour)) || !drafts[1].Date.Equal(ref.Add(10*time.Hour)) {
		t.Errorf("Expected +8h/+10h yogurt schedule, got %v and %v", drafts[0].Date, drafts[1].Date)
	}
}

func TestDraftsAtMonthOffsets(t *testing.T) {
	t.Parallel()
	// Crossing a month boundary must use calendar addition, not a fixed
	// number of hours.
	ref := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	drafts := DraftsAt(domain.TypeMiso, ref)
	if len(drafts) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(drafts))
	}

	if want := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC); !drafts[0].Date.Equal(want) {
		t.Errorf("Expected %v, got %v", want, drafts[0].Date)
	}
	if want := time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC); !drafts[1].Date.Equal(want) {
		t.Errorf("Expected %v, got %v", want, drafts[1].Date)
	}
}

func TestDraftsAtFallback(t *testing.T) {
	t.Parallel()
	ref := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		name        string
		fermentType domain.FermentType
	}{
		{"other type", domain.TypeOther},
		{"absent type", domain.FermentType("")},
		{"unrecognized type", domain.FermentType("Tempeh")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			drafts := DraftsAt(tc.fermentType, ref)
			if len(drafts) != 2 {
				t.Fatalf("Expected the 2-step generic schedule, got %d drafts", len(drafts))
			}
			if drafts[0].Title != "Check Fermentation" || !drafts[0].Date.Equal(ref.AddDate(0, 0, 5)) {
				t.Errorf("Unexpected first generic draft: %+v", drafts[0])
			}
			if drafts[1].Title != "Fermentation Complete" || !drafts[1].Date.Equal(ref.AddDate(0, 0, 14)) {
				t.Errorf("Unexpected second generic draft: %+v", drafts[1])
			}
		})
	}
}

func TestDraftsAtDeterminism(t *testing.T) {
	t.Parallel()
	ref := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	for _, fermentType := range domain.AllTypes() {
		first := DraftsAt(fermentType, ref)
		second := DraftsAt(fermentType, ref)

		if len(first) != len(second) {
			t.Fatalf("%s: draft count changed between calls", fermentType)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("%s: draft %d differs between calls: %+v vs %+v",
					fermentType, i, first[i], second[i])
			}
		}
	}
}

func TestServiceTakesReferenceTimeOnce(t *testing.T) {
	t.Parallel()

	// A clock that advances on every read. If the scheduler resampled "now"
	// per reminder, the drafts would drift apart.
	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	calls := 0
	svc := NewServiceWithClock(func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Hour)
	})

	ferment, err := domain.NewFerment("Batch X", domain.TypeKombucha, base)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	drafts := svc.DraftsFor(ferment)
	if calls != 1 {
		t.Fatalf("Expected the clock to be read exactly once, got %d reads", calls)
	}

	ref := base.Add(time.Hour)
	if !drafts[0].Date.Equal(ref.AddDate(0, 0, 5)) {
		t.Errorf("Expected all offsets from one reference time, got %v", drafts[0].Date)
	}
}

func TestServiceNilFerment(t *testing.T) {
	t.Parallel()

	svc := NewServiceWithClock(func() time.Time {
		return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	})

	drafts := svc.DraftsFor(nil)
	if len(drafts) != 2 {
		t.Fatalf("Expected the generic schedule for a nil ferment, got %d drafts", len(drafts))
	}
}

func TestRulesForCoversAllTypes(t *testing.T) {
	t.Parallel()

	for _, fermentType := range domain.AllTypes() {
		rules := RulesFor(fermentType)
		if len(rules) == 0 {
			t.Errorf("%s: expected at least one rule", fermentType)
		}
		for i, rule := range rules {
			if rule.Title == "" || rule.Text == "" {
				t.Errorf("%s rule %d: expected title and text", fermentType, i)
			}
			if (rule.After == Offset{}) {
				t.Errorf("%s rule %d: expected a non-zero offset", fermentType, i)
			}
		}
	}
}
