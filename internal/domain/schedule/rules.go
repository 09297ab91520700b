package schedule

import (
	"time"

	"github.com/MonksterFX/fermentation-station/internal/domain"
)

// Offset is a calendar-aware duration added to the reference time. Months
// and days are applied with time.AddDate so they cross month and DST
// boundaries correctly; hours and minutes are fixed durations, which is
// safe below a day.
type Offset struct {
	Months  int
	Days    int
	Hours   int
	Minutes int
}

// From returns the offset applied to the given reference time.
func (o Offset) From(ref time.Time) time.Time {
	t := ref
	if o.Months != 0 || o.Days != 0 {
		t = t.AddDate(0, o.Months, o.Days)
	}
	if o.Hours != 0 || o.Minutes != 0 {
		t = t.Add(time.Duration(o.Hours)*time.Hour + time.Duration(o.Minutes)*time.Minute)
	}
	return t
}

// Rule describes one proposed reminder: when it should fire relative to the
// reference time, and what it should say.
type Rule struct {
	After Offset
	Title string
	Text  string
}

// rulesByType maps each ferment type to its ordered reminder rules. Adding
// a type means adding a table entry, not a new branch.
var rulesByType = map[domain.FermentType][]Rule{
	domain.TypeKombucha: {
		{After: Offset{Days: 5}, Title: "Check Kombucha", Text: "Taste your kombucha and see if it's reached desired sourness"},
		{After: Offset{Days: 7}, Title: "Bottle Kombucha", Text: "Time to bottle your kombucha for second fermentation"},
		{After: Offset{Days: 10}, Title: "Kombucha Second Fermentation", Text: "Check carbonation and refrigerate if at desired level"},
	},
	domain.TypeSauerkraut: {
		{After: Offset{Days: 3}, Title: "Check Sauerkraut", Text: "Check fermentation progress and release excess gas if needed"},
		{After: Offset{Days: 10}, Title: "Sauerkraut Ready", Text: "Your sauerkraut should be ready. Refrigerate to slow fermentation."},
	},
	domain.TypeKimchi: {
		{After: Offset{Days: 2}, Title: "Check Kimchi", Text: "Check fermentation progress and release excess gas if needed"},
		{After: Offset{Days: 7}, Title: "Kimchi Ready", Text: "Your kimchi should be ready. Refrigerate to slow fermentation."},
	},
	domain.TypeSourdough: {
		{After: Offset{Days: 1}, Title: "Feed Sourdough Starter", Text: "Time to feed your sourdough starter"},
		{After: Offset{Days: 4}, Title: "Sourdough Peak", Text: "Your sourdough starter should be at peak activity"},
	},
	domain.TypeKefir: {
		{After: Offset{Hours: 24}, Title: "Check Kefir", Text: "Check if your kefir has reached desired consistency"},
		{After: Offset{Hours: 36}, Title: "Kefir Secondary Fermentation", Text: "Strain kefir grains and start secondary fermentation if desired"},
	},
	domain.TypeYogurt: {
		{After: Offset{Hours: 8}, Title: "Check Yogurt", Text: "Check if your yogurt has reached desired consistency"},
		{After: Offset{Hours: 10}, Title: "Refrigerate Yogurt", Text: "Refrigerate your yogurt to stop fermentation"},
	},
	domain.TypePickles: {
		{After: Offset{Days: 3}, Title: "Check Pickles", Text: "Check fermentation progress and taste a pickle"},
		{After: Offset{Days: 10}, Title: "Pickles Ready", Text: "Your pickles should be ready. Refrigerate to slow fermentation."},
	},
	domain.TypeMiso: {
		{After: Offset{Months: 1}, Title: "Check Miso", Text: "Check on your miso fermentation after 1 month"},
		{After: Offset{Months: 3}, Title: "Miso 3-Month Check", Text: "Check your miso fermentation at 3 months"},
	},
}

// defaultRules is the generic schedule used for types without an explicit
// table entry, including absent or unrecognized types.
var defaultRules = []Rule{
	{After: Offset{Days: 5}, Title: "Check Fermentation", Text: "Check on your fermentation progress"},
	{After: Offset{Days: 14}, Title: "Fermentation Complete", Text: "Your fermentation should be complete. Check results."},
}

// RulesFor returns the ordered rule list for a ferment type, falling back
// to the generic schedule for unknown types. The returned slice must not be
// mutated.
func RulesFor(fermentType domain.FermentType) []Rule {
	if rules, ok := rulesByType[fermentType]; ok {
		return rules
	}
	return defaultRules
}
