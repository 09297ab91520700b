package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/domain/schedule"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

// FermentService provides ferment lifecycle operations on top of the store.
// It owns the one piece of orchestration the store deliberately does not:
// when a ferment moves from planned into an active status, the type-specific
// reminder schedule is generated and attached.
type FermentService interface {
	// CreateFerment adds a new ferment to the collection.
	CreateFerment(ctx context.Context, draft store.FermentDraft) (*domain.Ferment, error)

	// GetFerment retrieves a ferment by ID. Returns store.ErrFermentNotFound
	// if absent.
	GetFerment(ctx context.Context, id uuid.UUID) (*domain.Ferment, error)

	// ListFerments returns a snapshot of the collection in insertion order.
	ListFerments(ctx context.Context) []*domain.Ferment

	// UpdateFerment merges the partial update into the ferment. A status
	// transition from planned to an active status additionally schedules
	// the type-specific reminders. Returns the updated ferment.
	UpdateFerment(ctx context.Context, id uuid.UUID, update store.FermentUpdate) (*domain.Ferment, error)

	// DeleteFerment removes the ferment together with its reminders and
	// log entries.
	DeleteFerment(ctx context.Context, id uuid.UUID) error

	// AddReminder appends a manually created reminder to the ferment.
	AddReminder(ctx context.Context, fermentID uuid.UUID, draft domain.ReminderDraft) (*domain.Reminder, error)

	// ToggleReminder flips a reminder's completed flag.
	ToggleReminder(ctx context.Context, fermentID, reminderID uuid.UUID) error

	// AddLogEntry appends an observation to the ferment's log.
	AddLogEntry(ctx context.Context, fermentID uuid.UUID, draft domain.LogEntryDraft) (*domain.LogEntry, error)

	// AttachImage records a stored image key on the ferment.
	AttachImage(ctx context.Context, fermentID uuid.UUID, key string) error
}

// FermentServiceImpl implements the FermentService interface.
type FermentServiceImpl struct {
	ferments  store.FermentStore
	scheduler schedule.Service
	logger    *slog.Logger
}

var _ FermentService = (*FermentServiceImpl)(nil)

// NewFermentService creates a new FermentService.
func NewFermentService(
	ferments store.FermentStore,
	scheduler schedule.Service,
	logger *slog.Logger,
) *FermentServiceImpl {
	return &FermentServiceImpl{
		ferments:  ferments,
		scheduler: scheduler,
		logger:    logger.With("component", "ferment_service"),
	}
}

// CreateFerment adds a new ferment to the collection.
func (s *FermentServiceImpl) CreateFerment(
	ctx context.Context,
	draft store.FermentDraft,
) (*domain.Ferment, error) {
	ferment, err := s.ferments.Create(ctx, draft)
	if err != nil {
		s.logger.Error("failed to create ferment",
			"error", err,
			"name", draft.Name,
			"type", draft.Type)
		return nil, fmt.Errorf("failed to create ferment: %w", err)
	}

	s.logger.Info("ferment created",
		"ferment_id", ferment.ID,
		"name", ferment.Name,
		"type", ferment.Type,
		"status", ferment.Status)

	return ferment, nil
}

// GetFerment retrieves a ferment by ID.
func (s *FermentServiceImpl) GetFerment(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Ferment, error) {
	ferment, ok := s.ferments.GetByID(ctx, id)
	if !ok {
		return nil, fmt.Errorf("failed to retrieve ferment: %w", store.ErrFermentNotFound)
	}
	return ferment, nil
}

// ListFerments returns a snapshot of the collection in insertion order.
func (s *FermentServiceImpl) ListFerments(ctx context.Context) []*domain.Ferment {
	return s.ferments.List(ctx)
}

// UpdateFerment merges the partial update into the ferment and schedules
// type-specific reminders when the ferment is activated.
func (s *FermentServiceImpl) UpdateFerment(
	ctx context.Context,
	id uuid.UUID,
	update store.FermentUpdate,
) (*domain.Ferment, error) {
	before, ok := s.ferments.GetByID(ctx, id)
	if !ok {
		return nil, fmt.Errorf("failed to retrieve ferment for update: %w", store.ErrFermentNotFound)
	}

	if err := s.ferments.Update(ctx, id, update); err != nil {
		s.logger.Error("failed to update ferment",
			"error", err,
			"ferment_id", id)
		return nil, fmt.Errorf("failed to update ferment: %w", err)
	}

	ferment, ok := s.ferments.GetByID(ctx, id)
	if !ok {
		// Deleted between the update and the re-read.
		return nil, fmt.Errorf("failed to retrieve ferment after update: %w", store.ErrFermentNotFound)
	}

	if activated(before.Status, ferment.Status) {
		if err := s.scheduleReminders(ctx, ferment); err != nil {
			return nil, err
		}
		if refreshed, ok := s.ferments.GetByID(ctx, id); ok {
			ferment = refreshed
		}
	}

	s.logger.Info("ferment updated",
		"ferment_id", ferment.ID,
		"status", ferment.Status)

	return ferment, nil
}

// DeleteFerment removes the ferment together with its reminders and log
// entries.
func (s *FermentServiceImpl) DeleteFerment(ctx context.Context, id uuid.UUID) error {
	if err := s.ferments.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete ferment",
			"error", err,
			"ferment_id", id)
		return fmt.Errorf("failed to delete ferment: %w", err)
	}

	s.logger.Info("ferment deleted", "ferment_id", id)
	return nil
}

// AddReminder appends a manually created reminder to the ferment.
func (s *FermentServiceImpl) AddReminder(
	ctx context.Context,
	fermentID uuid.UUID,
	draft domain.ReminderDraft,
) (*domain.Reminder, error) {
	reminder, err := s.ferments.AddReminder(ctx, fermentID, draft)
	if err != nil {
		s.logger.Error("failed to add reminder",
			"error", err,
			"ferment_id", fermentID)
		return nil, fmt.Errorf("failed to add reminder: %w", err)
	}

	s.logger.Info("reminder added",
		"ferment_id", fermentID,
		"reminder_id", reminder.ID,
		"due", reminder.Date)

	return reminder, nil
}

// ToggleReminder flips a reminder's completed flag.
func (s *FermentServiceImpl) ToggleReminder(
	ctx context.Context,
	fermentID, reminderID uuid.UUID,
) error {
	if err := s.ferments.ToggleReminder(ctx, fermentID, reminderID); err != nil {
		s.logger.Error("failed to toggle reminder",
			"error", err,
			"ferment_id", fermentID,
			"reminder_id", reminderID)
		return fmt.Errorf("failed to toggle reminder: %w", err)
	}
	return nil
}

// AddLogEntry appends an observation to the ferment's log.
func (s *FermentServiceImpl) AddLogEntry(
	ctx context.Context,
	fermentID uuid.UUID,
	draft domain.LogEntryDraft,
) (*domain.LogEntry, error) {
	entry, err := s.ferments.AddLogEntry(ctx, fermentID, draft)
	if err != nil {
		s.logger.Error("failed to add log entry",
			"error", err,
			"ferment_id", fermentID)
		return nil, fmt.Errorf("failed to add log entry: %w", err)
	}

	s.logger.Info("log entry added",
		"ferment_id", fermentID,
		"log_entry_id", entry.ID)

	return entry, nil
}

// AttachImage records a stored image key on the ferment.
func (s *FermentServiceImpl) AttachImage(
	ctx context.Context,
	fermentID uuid.UUID,
	key string,
) error {
	ferment, ok := s.ferments.GetByID(ctx, fermentID)
	if !ok {
		return fmt.Errorf("failed to retrieve ferment for image: %w", store.ErrFermentNotFound)
	}

	images := append(append([]string{}, ferment.Images...), key)
	if err := s.ferments.Update(ctx, fermentID, store.FermentUpdate{Images: &images}); err != nil {
		return fmt.Errorf("failed to attach image: %w", err)
	}

	s.logger.Info("image attached",
		"ferment_id", fermentID,
		"image_key", key)

	return nil
}

// scheduleReminders generates the type-specific reminder drafts for a
// freshly activated ferment and appends them one by one.
func (s *FermentServiceImpl) scheduleReminders(
	ctx context.Context,
	ferment *domain.Ferment,
) error {
	drafts := s.scheduler.DraftsFor(ferment)
	for _, draft := range drafts {
		if _, err := s.ferments.AddReminder(ctx, ferment.ID, draft); err != nil {
			s.logger.Error("failed to schedule reminder",
				"error", err,
				"ferment_id", ferment.ID,
				"title", draft.Title)
			return fmt.Errorf("failed to schedule reminder: %w", err)
		}
	}

	s.logger.Info("reminders scheduled",
		"ferment_id", ferment.ID,
		"type", ferment.Type,
		"count", len(drafts))

	return nil
}

// activated reports whether the status change moves the ferment from
// planned into an active fermentation phase.
func activated(before, after domain.FermentStatus) bool {
	return before == domain.StatusPlanned && after.IsActive()
}
