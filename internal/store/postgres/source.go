package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/platform/logger"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

// Source implements store.Source against PostgreSQL. Each ferment is
// persisted as a full snapshot: the scalar row plus a delete-and-reinsert
// of its reminders and log entries in one transaction.
type Source struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.Source = (*Source)(nil)

// NewSource creates a PostgreSQL-backed source. If logger is nil, the
// process default is used.
func NewSource(db *sql.DB, log *slog.Logger) *Source {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Source{
		db:     db,
		logger: log.With(slog.String("component", "postgres_source")),
	}
}

// Load implements store.Source.Load. Ferments come back in their original
// insertion order.
func (s *Source) Load(ctx context.Context) ([]*domain.Ferment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, start_date, end_date, ingredients, notes,
		       status, temperature, ph, images, created_at, updated_at
		FROM ferments
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load ferments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ferments []*domain.Ferment
	byID := make(map[uuid.UUID]*domain.Ferment)

	for rows.Next() {
		var f domain.Ferment
		var ingredients, images []byte
		err := rows.Scan(
			&f.ID, &f.Name, &f.Type, &f.StartDate, &f.EndDate,
			&ingredients, &f.Notes, &f.Status, &f.Temperature, &f.PH,
			&images, &f.CreatedAt, &f.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ferment: %w", err)
		}
		if err := json.Unmarshal(ingredients, &f.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to decode ingredients: %w", err)
		}
		if err := json.Unmarshal(images, &f.Images); err != nil {
			return nil, fmt.Errorf("failed to decode images: %w", err)
		}
		f.Reminders = []domain.Reminder{}
		f.LogEntries = []domain.LogEntry{}
		ferments = append(ferments, &f)
		byID[f.ID] = &f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ferments: %w", err)
	}

	if err := s.loadReminders(ctx, byID); err != nil {
		return nil, err
	}
	if err := s.loadLogEntries(ctx, byID); err != nil {
		return nil, err
	}

	log.Info("loaded ferment collection from database",
		slog.Int("count", len(ferments)))

	return ferments, nil
}

func (s *Source) loadReminders(ctx context.Context, byID map[uuid.UUID]*domain.Ferment) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ferment_id, id, title, body, due_at, completed
		FROM reminders
		ORDER BY ferment_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var fermentID uuid.UUID
		var r domain.Reminder
		if err := rows.Scan(&fermentID, &r.ID, &r.Title, &r.Text, &r.Date, &r.Completed); err != nil {
			return fmt.Errorf("failed to scan reminder: %w", err)
		}
		if f, ok := byID[fermentID]; ok {
			f.Reminders = append(f.Reminders, r)
		}
	}
	return rows.Err()
}

func (s *Source) loadLogEntries(ctx context.Context, byID map[uuid.UUID]*domain.Ferment) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ferment_id, id, logged_at, note, temperature, ph, image
		FROM log_entries
		ORDER BY ferment_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to load log entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var fermentID uuid.UUID
		var e domain.LogEntry
		if err := rows.Scan(&fermentID, &e.ID, &e.Date, &e.Note, &e.Temperature, &e.PH, &e.Image); err != nil {
			return fmt.Errorf("failed to scan log entry: %w", err)
		}
		if f, ok := byID[fermentID]; ok {
			f.LogEntries = append(f.LogEntries, e)
		}
	}
	return rows.Err()
}

// SaveFerment implements store.Source.SaveFerment.
func (s *Source) SaveFerment(ctx context.Context, ferment *domain.Ferment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ingredients, err := json.Marshal(sliceOrEmpty(ferment.Ingredients))
	if err != nil {
		return fmt.Errorf("failed to encode ingredients: %w", err)
	}
	images, err := json.Marshal(sliceOrEmpty(ferment.Images))
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ferments (id, name, type, start_date, end_date, ingredients,
		                      notes, status, temperature, ph, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			ingredients = EXCLUDED.ingredients,
			notes = EXCLUDED.notes,
			status = EXCLUDED.status,
			temperature = EXCLUDED.temperature,
			ph = EXCLUDED.ph,
			images = EXCLUDED.images,
			updated_at = EXCLUDED.updated_at
	`,
		ferment.ID, ferment.Name, ferment.Type, ferment.StartDate, ferment.EndDate,
		ingredients, ferment.Notes, ferment.Status, ferment.Temperature, ferment.PH,
		images, ferment.CreatedAt, ferment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ferment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reminders WHERE ferment_id = $1`, ferment.ID); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}
	for i, r := range ferment.Reminders {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reminders (id, ferment_id, position, title, body, due_at, completed)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.ID, ferment.ID, i, r.Title, r.Text, r.Date, r.Completed)
		if err != nil {
			return fmt.Errorf("failed to insert reminder: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM log_entries WHERE ferment_id = $1`, ferment.ID); err != nil {
		return fmt.Errorf("failed to clear log entries: %w", err)
	}
	for i, e := range ferment.LogEntries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO log_entries (id, ferment_id, position, logged_at, note, temperature, ph, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, e.ID, ferment.ID, i, e.Date, e.Note, e.Temperature, e.PH, e.Image)
		if err != nil {
			return fmt.Errorf("failed to insert log entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	log.Debug("ferment snapshot persisted",
		slog.String("ferment_id", ferment.ID.String()),
		slog.Int("reminders", len(ferment.Reminders)),
		slog.Int("log_entries", len(ferment.LogEntries)))

	return nil
}

// DeleteFerment implements store.Source.DeleteFerment. Owned reminders and
// log entries go with the ferment via the cascade.
func (s *Source) DeleteFerment(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM ferments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete ferment: %w", err)
	}

	log.Debug("ferment snapshot removed", slog.String("ferment_id", id.String()))
	return nil
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
