package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/domain"
)

// FermentDraft is the payload for creating a ferment: a Ferment without an
// assigned ID. Zero-valued optional fields are treated as absent.
type FermentDraft struct {
	Name        string
	Type        domain.FermentType
	StartDate   time.Time
	EndDate     *time.Time
	Ingredients []string
	Notes       string
	Status      domain.FermentStatus // defaults to Planned when empty
	Temperature *float64
	PH          *float64
	Images      []string
}

// FermentUpdate is a partial update: only non-nil fields are merged into
// the existing ferment. The ID, reminders, and log entries can never be
// changed through an update.
type FermentUpdate struct {
	Name        *string
	Type        *domain.FermentType
	StartDate   *time.Time
	EndDate     *time.Time
	Ingredients *[]string
	Notes       *string
	Status      *domain.FermentStatus
	Temperature *float64
	PH          *float64
	Images      *[]string
}

// ChangeKind identifies what kind of mutation a change event describes.
type ChangeKind string

// Change kinds emitted by the store.
const (
	ChangeFermentCreated  ChangeKind = "ferment.created"
	ChangeFermentUpdated  ChangeKind = "ferment.updated"
	ChangeFermentDeleted  ChangeKind = "ferment.deleted"
	ChangeReminderAdded   ChangeKind = "reminder.added"
	ChangeReminderToggled ChangeKind = "reminder.toggled"
	ChangeLogEntryAdded   ChangeKind = "log_entry.added"
)

// ChangeEvent notifies watchers that the collection changed. Watchers
// re-read the collection rather than diffing event payloads.
type ChangeEvent struct {
	Kind      ChangeKind
	FermentID uuid.UUID
}

// Watcher receives collection-changed notifications. Implementations must
// not call back into the store's mutation operations from Notify.
type Watcher interface {
	Notify(event ChangeEvent)
}

// WatcherFunc adapts a function to the Watcher interface.
type WatcherFunc func(event ChangeEvent)

// Notify implements Watcher.
func (f WatcherFunc) Notify(event ChangeEvent) { f(event) }

// FermentStore owns the authoritative ferment collection. Mutations are
// serialized and fail fast: on error the collection is left unmodified, and
// no partially-applied state is ever observable. Every reminder belongs to
// exactly one live ferment; deleting a ferment removes its reminders in the
// same step.
type FermentStore interface {
	// Create assigns a fresh non-colliding ID to the draft, initializes the
	// reminder list, and appends the ferment to the collection.
	// Returns the persisted entity.
	Create(ctx context.Context, draft FermentDraft) (*domain.Ferment, error)

	// Update merges the non-nil fields of the partial into the existing
	// ferment (last write wins per field). Returns ErrFermentNotFound if no
	// ferment has that ID.
	Update(ctx context.Context, id uuid.UUID, update FermentUpdate) error

	// Delete removes the ferment and all its reminders and log entries in
	// one atomic step. Returns ErrFermentNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddReminder assigns a fresh ID to the draft and appends it to the
	// ferment's reminder list, preserving insertion order. Completed
	// defaults to false. Returns ErrFermentNotFound if the ferment does not
	// exist.
	AddReminder(ctx context.Context, fermentID uuid.UUID, draft domain.ReminderDraft) (*domain.Reminder, error)

	// ToggleReminder flips the reminder's completed flag in place. Returns
	// ErrFermentNotFound or ErrReminderNotFound. Toggling twice restores
	// the original value.
	ToggleReminder(ctx context.Context, fermentID, reminderID uuid.UUID) error

	// AddLogEntry assigns a fresh ID to the draft and appends it to the
	// ferment's log. Returns ErrFermentNotFound if the ferment does not
	// exist.
	AddLogEntry(ctx context.Context, fermentID uuid.UUID, draft domain.LogEntryDraft) (*domain.LogEntry, error)

	// GetByID is a pure lookup: it never fails, reporting absence through
	// the second return value instead.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ferment, bool)

	// List returns a snapshot of the collection in insertion order.
	List(ctx context.Context) []*domain.Ferment

	// Watch registers a watcher for collection-changed notifications.
	Watch(watcher Watcher)
}
