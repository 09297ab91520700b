package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reminder-specific validation errors
var (
	// ErrReminderIDEmpty is returned when a reminder ID is empty or nil.
	ErrReminderIDEmpty = errors.New("reminder ID cannot be empty")

	// ErrReminderTextEmpty is returned when a reminder's text is empty.
	ErrReminderTextEmpty = fmt.Errorf("%w: reminder text cannot be empty", ErrValidation)

	// ErrReminderDateZero is returned when a reminder has no target date.
	ErrReminderDateZero = fmt.Errorf("%w: reminder date is required", ErrValidation)
)

// Reminder is a dated, completable note attached to exactly one ferment.
// Completed is the only field that changes after creation, and only via the
// store's toggle operation.
type Reminder struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// ReminderDraft is a reminder payload without an assigned ID. The scheduler
// produces drafts and the store assigns IDs when they are attached to a
// ferment.
type ReminderDraft struct {
	Title string    `json:"title,omitempty"`
	Text  string    `json:"text"`
	Date  time.Time `json:"date"`
}

// Validate checks if the draft has valid data.
func (d ReminderDraft) Validate() error {
	if d.Text == "" {
		return ErrReminderTextEmpty
	}
	if d.Date.IsZero() {
		return ErrReminderDateZero
	}
	return nil
}

// NewReminder materializes a draft into a Reminder with a fresh UUID and
// Completed set to false. Returns an error if the draft fails validation.
func NewReminder(draft ReminderDraft) (*Reminder, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	return &Reminder{
		ID:        uuid.New(),
		Title:     draft.Title,
		Text:      draft.Text,
		Date:      draft.Date,
		Completed: false,
	}, nil
}

// Validate checks if the Reminder has valid data.
func (r *Reminder) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReminderIDEmpty
	}
	if r.Text == "" {
		return ErrReminderTextEmpty
	}
	if r.Date.IsZero() {
		return ErrReminderDateZero
	}
	return nil
}

// Clone returns a copy of the reminder.
func (r *Reminder) Clone() *Reminder {
	clone := *r
	return &clone
}
