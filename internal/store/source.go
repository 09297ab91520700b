package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/domain"
)

// Source is a persistence collaborator for the in-memory collection: it
// provides the initial ferments at process start and receives write-through
// copies after each completed mutation. Durability is best-effort; the
// in-memory collection remains authoritative.
type Source interface {
	// Load returns the initial ferment collection, in insertion order.
	Load(ctx context.Context) ([]*domain.Ferment, error)

	// SaveFerment persists the current state of one ferment, creating or
	// replacing it together with its reminders and log entries.
	SaveFerment(ctx context.Context, ferment *domain.Ferment) error

	// DeleteFerment removes a ferment and its owned records.
	DeleteFerment(ctx context.Context, id uuid.UUID) error
}
