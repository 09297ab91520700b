package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ferment-specific validation errors
var (
	// ErrFermentIDEmpty is returned when a ferment ID is empty or nil.
	ErrFermentIDEmpty = errors.New("ferment ID cannot be empty")

	// ErrFermentNameEmpty is returned when a ferment's name is empty.
	ErrFermentNameEmpty = fmt.Errorf("%w: ferment name cannot be empty", ErrValidation)

	// ErrFermentStartDateZero is returned when a ferment has no start date.
	ErrFermentStartDateZero = fmt.Errorf("%w: ferment start date is required", ErrValidation)
)

// Ferment represents a tracked fermentation project. Reminders and log
// entries are owned exclusively by their ferment: they have no independent
// lifecycle and are deleted with it.
type Ferment struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Type        FermentType   `json:"type"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	Ingredients []string      `json:"ingredients"`
	Notes       string        `json:"notes"`
	Status      FermentStatus `json:"status"`
	Temperature *float64      `json:"temperature,omitempty"`
	PH          *float64      `json:"ph,omitempty"`
	Images      []string      `json:"images"`
	Reminders   []Reminder    `json:"reminders"`
	LogEntries  []LogEntry    `json:"log_entries"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewFerment creates a new Ferment with the given name, type, and start
// date. It generates a new UUID, starts the lifecycle at Planned with no
// reminders and no end date, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewFerment(name string, fermentType FermentType, startDate time.Time) (*Ferment, error) {
	now := time.Now().UTC()
	ferment := &Ferment{
		ID:          uuid.New(),
		Name:        name,
		Type:        fermentType,
		StartDate:   startDate,
		Ingredients: []string{},
		Status:      StatusPlanned,
		Images:      []string{},
		Reminders:   []Reminder{},
		LogEntries:  []LogEntry{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ferment.Validate(); err != nil {
		return nil, err
	}

	return ferment, nil
}

// Validate checks if the Ferment has valid data.
// Returns an error if any field fails validation.
func (f *Ferment) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFermentIDEmpty
	}

	if f.Name == "" {
		return ErrFermentNameEmpty
	}

	if f.StartDate.IsZero() {
		return ErrFermentStartDateZero
	}

	if !f.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}

	// Type may be absent (the scheduler falls back to a generic schedule),
	// but a present value must come from the closed set.
	if f.Type != "" && !f.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, f.Type)
	}

	return nil
}

// Clone returns a deep copy of the ferment. The store hands out clones so
// callers can never alias its internal state.
func (f *Ferment) Clone() *Ferment {
	clone := *f

	if f.EndDate != nil {
		end := *f.EndDate
		clone.EndDate = &end
	}
	if f.Temperature != nil {
		temp := *f.Temperature
		clone.Temperature = &temp
	}
	if f.PH != nil {
		ph := *f.PH
		clone.PH = &ph
	}

	clone.Ingredients = append([]string(nil), f.Ingredients...)
	clone.Images = append([]string(nil), f.Images...)

	clone.Reminders = make([]Reminder, len(f.Reminders))
	for i, r := range f.Reminders {
		clone.Reminders[i] = *r.Clone()
	}

	clone.LogEntries = make([]LogEntry, len(f.LogEntries))
	copy(clone.LogEntries, f.LogEntries)

	return &clone
}
