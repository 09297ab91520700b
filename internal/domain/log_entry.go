package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrLogEntryNoteEmpty is returned when a log entry's note is empty.
var ErrLogEntryNoteEmpty = fmt.Errorf("%w: log entry note cannot be empty", ErrValidation)

// LogEntry is a dated observation recorded against a ferment: a free-text
// note with optional temperature, pH, and image readings.
type LogEntry struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Note        string    `json:"note"`
	Temperature *float64  `json:"temperature,omitempty"`
	PH          *float64  `json:"ph,omitempty"`
	Image       string    `json:"image,omitempty"`
}

// LogEntryDraft is a log entry payload without an assigned ID.
type LogEntryDraft struct {
	Date        time.Time `json:"date"`
	Note        string    `json:"note"`
	Temperature *float64  `json:"temperature,omitempty"`
	PH          *float64  `json:"ph,omitempty"`
	Image       string    `json:"image,omitempty"`
}

// Validate checks if the draft has valid data.
func (d LogEntryDraft) Validate() error {
	if d.Note == "" {
		return ErrLogEntryNoteEmpty
	}
	return nil
}

// NewLogEntry materializes a draft into a LogEntry with a fresh UUID. An
// absent date defaults to the current time.
func NewLogEntry(draft LogEntryDraft) (*LogEntry, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	date := draft.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	return &LogEntry{
		ID:          uuid.New(),
		Date:        date,
		Note:        draft.Note,
		Temperature: draft.Temperature,
		PH:          draft.PH,
		Image:       draft.Image,
	}, nil
}
