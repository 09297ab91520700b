// Package memory implements the authoritative ferment collection as an
// in-process store. Mutations are serialized behind a mutex; readers get
// deep copies, so no caller can observe or produce a partial mutation.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

// FermentStore is the in-memory implementation of store.FermentStore.
// The map holds the entities; order preserves insertion order for List.
type FermentStore struct {
	mu       sync.RWMutex
	ferments map[uuid.UUID]*domain.Ferment
	order    []uuid.UUID

	watcherMu sync.RWMutex
	watchers  []store.Watcher

	source store.Source // optional write-through persistence
	logger *slog.Logger
}

// Ensure FermentStore implements the store.FermentStore interface.
var _ store.FermentStore = (*FermentStore)(nil)

// Option configures a FermentStore.
type Option func(*FermentStore)

// WithSource attaches a persistence source. Mutations are written through
// after they commit; write failures are logged, not surfaced, because the
// in-memory collection stays authoritative.
func WithSource(source store.Source) Option {
	return func(s *FermentStore) { s.source = source }
}

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *FermentStore) { s.logger = logger }
}

// NewFermentStore creates an empty store.
func NewFermentStore(opts ...Option) *FermentStore {
	s := &FermentStore{
		ferments: make(map[uuid.UUID]*domain.Ferment),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "ferment_store"))
	return s
}

// Seed replaces the collection with the given ferments, preserving their
// IDs and order. Used at bootstrap, before any watcher is registered.
// Ferments that fail validation or repeat an ID are skipped with a warning.
func (s *FermentStore) Seed(ferments []*domain.Ferment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ferments = make(map[uuid.UUID]*domain.Ferment, len(ferments))
	s.order = s.order[:0]

	for _, ferment := range ferments {
		if err := ferment.Validate(); err != nil {
			s.logger.Warn("skipping invalid ferment during seed",
				slog.String("ferment_id", ferment.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if _, exists := s.ferments[ferment.ID]; exists {
			s.logger.Warn("skipping duplicate ferment ID during seed",
				slog.String("ferment_id", ferment.ID.String()))
			continue
		}
		s.ferments[ferment.ID] = ferment.Clone()
		s.order = append(s.order, ferment.ID)
	}
}

// Create implements store.FermentStore.Create.
func (s *FermentStore) Create(ctx context.Context, draft store.FermentDraft) (*domain.Ferment, error) {
	now := time.Now().UTC()

	status := draft.Status
	if status == "" {
		status = domain.StatusPlanned
	}

	ferment := &domain.Ferment{
		Name:        draft.Name,
		Type:        draft.Type,
		StartDate:   draft.StartDate,
		EndDate:     draft.EndDate,
		Ingredients: append([]string{}, draft.Ingredients...),
		Notes:       draft.Notes,
		Status:      status,
		Temperature: draft.Temperature,
		PH:          draft.PH,
		Images:      append([]string{}, draft.Images...),
		Reminders:   []domain.Reminder{},
		LogEntries:  []domain.LogEntry{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	ferment.ID = s.freshIDLocked()
	if err := ferment.Validate(); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	s.ferments[ferment.ID] = ferment
	s.order = append(s.order, ferment.ID)
	result := ferment.Clone()
	s.mu.Unlock()

	s.persist(ctx, result)
	s.notify(store.ChangeEvent{Kind: store.ChangeFermentCreated, FermentID: result.ID})

	return result, nil
}

// Update implements store.FermentStore.Update. The merge is validated
// against a clone first, so a failing update leaves the entity untouched.
func (s *FermentStore) Update(ctx context.Context, id uuid.UUID, update store.FermentUpdate) error {
	s.mu.Lock()
	current, ok := s.ferments[id]
	if !ok {
		s.mu.Unlock()
		return store.ErrFermentNotFound
	}

	merged := current.Clone()
	applyUpdate(merged, update)
	merged.UpdatedAt = time.Now().UTC()

	if err := merged.Validate(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.ferments[id] = merged
	result := merged.Clone()
	s.mu.Unlock()

	s.persist(ctx, result)
	s.notify(store.ChangeEvent{Kind: store.ChangeFermentUpdated, FermentID: id})

	return nil
}

// Delete implements store.FermentStore.Delete. The ferment and everything
// it owns disappear in one step: there is no intermediate state where the
// ferment is gone but its reminders remain observable.
func (s *FermentStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.ferments[id]; !ok {
		s.mu.Unlock()
		return store.ErrFermentNotFound
	}

	delete(s.ferments, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if s.source != nil {
		if err := s.source.DeleteFerment(ctx, id); err != nil {
			s.logger.Error("failed to delete ferment from source",
				slog.String("ferment_id", id.String()),
				slog.String("error", err.Error()))
		}
	}
	s.notify(store.ChangeEvent{Kind: store.ChangeFermentDeleted, FermentID: id})

	return nil
}

// AddReminder implements store.FermentStore.AddReminder.
func (s *FermentStore) AddReminder(ctx context.Context, fermentID uuid.UUID, draft domain.ReminderDraft) (*domain.Reminder, error) {
	reminder, err := domain.NewReminder(draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	ferment, ok := s.ferments[fermentID]
	if !ok {
		s.mu.Unlock()
		return nil, store.ErrFermentNotFound
	}

	ferment.Reminders = append(ferment.Reminders, *reminder)
	ferment.UpdatedAt = time.Now().UTC()
	result := ferment.Clone()
	s.mu.Unlock()

	s.persist(ctx, result)
	s.notify(store.ChangeEvent{Kind: store.ChangeReminderAdded, FermentID: fermentID})

	return reminder.Clone(), nil
}

// ToggleReminder implements store.FermentStore.ToggleReminder.
func (s *FermentStore) ToggleReminder(ctx context.Context, fermentID, reminderID uuid.UUID) error {
	s.mu.Lock()
	ferment, ok := s.ferments[fermentID]
	if !ok {
		s.mu.Unlock()
		return store.ErrFermentNotFound
	}

	found := false
	for i := range ferment.Reminders {
		if ferment.Reminders[i].ID == reminderID {
			ferment.Reminders[i].Completed = !ferment.Reminders[i].Completed
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return store.ErrReminderNotFound
	}

	ferment.UpdatedAt = time.Now().UTC()
	result := ferment.Clone()
	s.mu.Unlock()

	s.persist(ctx, result)
	s.notify(store.ChangeEvent{Kind: store.ChangeReminderToggled, FermentID: fermentID})

	return nil
}

// AddLogEntry implements store.FermentStore.AddLogEntry.
func (s *FermentStore) AddLogEntry(ctx context.Context, fermentID uuid.UUID, draft domain.LogEntryDraft) (*domain.LogEntry, error) {
	entry, err := domain.NewLogEntry(draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	ferment, ok := s.ferments[fermentID]
	if !ok {
		s.mu.Unlock()
		return nil, store.ErrFermentNotFound
	}

	ferment.LogEntries = append(ferment.LogEntries, *entry)
	ferment.UpdatedAt = time.Now().UTC()
	result := ferment.Clone()
	s.mu.Unlock()

	s.persist(ctx, result)
	s.notify(store.ChangeEvent{Kind: store.ChangeLogEntryAdded, FermentID: fermentID})

	return entry, nil
}

// GetByID implements store.FermentStore.GetByID.
func (s *FermentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ferment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ferment, ok := s.ferments[id]
	if !ok {
		return nil, false
	}
	return ferment.Clone(), true
}

// List implements store.FermentStore.List.
func (s *FermentStore) List(ctx context.Context) []*domain.Ferment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ferments := make([]*domain.Ferment, 0, len(s.order))
	for _, id := range s.order {
		ferments = append(ferments, s.ferments[id].Clone())
	}
	return ferments
}

// Watch implements store.FermentStore.Watch.
func (s *FermentStore) Watch(watcher store.Watcher) {
	s.watcherMu.Lock()
	defer s.watcherMu.Unlock()
	s.watchers = append(s.watchers, watcher)
}

// freshIDLocked returns a UUID that does not collide with any held ferment.
// Collisions are vanishingly rare; the loop keeps the guarantee explicit.
func (s *FermentStore) freshIDLocked() uuid.UUID {
	for {
		id := uuid.New()
		if _, exists := s.ferments[id]; !exists {
			return id
		}
	}
}

// notify fans the event out to all watchers. Called after the mutation has
// committed and the lock is released, so watchers can re-read the store.
func (s *FermentStore) notify(event store.ChangeEvent) {
	s.watcherMu.RLock()
	watchers := make([]store.Watcher, len(s.watchers))
	copy(watchers, s.watchers)
	s.watcherMu.RUnlock()

	for _, watcher := range watchers {
		watcher.Notify(event)
	}
}

// persist writes the committed state through to the source, if any.
func (s *FermentStore) persist(ctx context.Context, ferment *domain.Ferment) {
	if s.source == nil {
		return
	}
	if err := s.source.SaveFerment(ctx, ferment); err != nil {
		s.logger.Error("failed to persist ferment",
			slog.String("ferment_id", ferment.ID.String()),
			slog.String("error", err.Error()))
	}
}

// applyUpdate merges the non-nil fields of the partial into the ferment.
// The ID, reminders, and log entries are never touched.
func applyUpdate(ferment *domain.Ferment, update store.FermentUpdate) {
	if update.Name != nil {
		ferment.Name = *update.Name
	}
	if update.Type != nil {
		ferment.Type = *update.Type
	}
	if update.StartDate != nil {
		ferment.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		end := *update.EndDate
		ferment.EndDate = &end
	}
	if update.Ingredients != nil {
		ferment.Ingredients = append([]string{}, (*update.Ingredients)...)
	}
	if update.Notes != nil {
		ferment.Notes = *update.Notes
	}
	if update.Status != nil {
		ferment.Status = *update.Status
	}
	if update.Temperature != nil {
		temp := *update.Temperature
		ferment.Temperature = &temp
	}
	if update.PH != nil {
		ph := *update.PH
		ferment.PH = &ph
	}
	if update.Images != nil {
		ferment.Images = append([]string{}, (*update.Images)...)
	}
}
