package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fightcard/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type EventRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewEventRepository(sqlDB *sql.DB, logger zerolog.Logger) *EventRepository {
	return &EventRepository{db: sqlDB, logger: logger}
}

func (r *EventRepository) Create(ctx context.Context, name string) (*domain.Event, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event id: %w", err)
	}

	now := time.Now()
	event := &domain.Event{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO events (id, name, is_started, is_live, created_at, updated_at)
		 VALUES (?, ?, 0, 0, ?, ?)`,
		event.ID, event.Name, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	r.logger.Info().Str("event_id", event.ID).Str("name", name).Msg("event created")
	return event, nil
}

func (r *EventRepository) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, is_started, is_live, created_at, updated_at
		 FROM events WHERE id = ?`, eventID)

	var e domain.Event
	err := row.Scan(&e.ID, &e.Name, &e.IsStarted, &e.IsLive, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) SetLiveState(ctx context.Context, eventID string, started, live bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET is_started = ?, is_live = ?, updated_at = ? WHERE id = ?`,
		started, live, time.Now(), eventID)
	if err != nil {
		return fmt.Errorf("failed to update event live state: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
	}

	r.logger.Debug().
		Str("event_id", eventID).
		Bool("started", started).
		Bool("live", live).
		Msg("event live state updated")
	return nil
}
