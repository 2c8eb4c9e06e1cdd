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

type FighterRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewFighterRepository(sqlDB *sql.DB, logger zerolog.Logger) *FighterRepository {
	return &FighterRepository{db: sqlDB, logger: logger}
}

func (r *FighterRepository) Create(ctx context.Context, name, record string) (*domain.Fighter, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate fighter id: %w", err)
	}
	if record == "" {
		record = domain.Record{}.String()
	}

	now := time.Now()
	fighter := &domain.Fighter{
		ID:        id,
		Name:      name,
		Record:    record,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO fighters (id, name, record, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		fighter.ID, fighter.Name, fighter.Record, fighter.CreatedAt, fighter.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert fighter: %w", err)
	}

	r.logger.Info().Str("fighter_id", fighter.ID).Str("name", name).Msg("fighter created")
	return fighter, nil
}

func (r *FighterRepository) Get(ctx context.Context, fighterID string) (*domain.Fighter, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, record, created_at, updated_at FROM fighters WHERE id = ?`,
		fighterID)

	var f domain.Fighter
	err := row.Scan(&f.ID, &f.Name, &f.Record, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("fighter %s: %w", fighterID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FighterRepository) GetRecord(ctx context.Context, fighterID string) (string, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT record FROM fighters WHERE id = ?`, fighterID)

	var record string
	err := row.Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("fighter %s: %w", fighterID, domain.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return record, nil
}

func (r *FighterRepository) SetRecord(ctx context.Context, fighterID, record string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fighters SET record = ?, updated_at = ? WHERE id = ?`,
		record, time.Now(), fighterID)
	if err != nil {
		return fmt.Errorf("failed to update fighter record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("fighter %s: %w", fighterID, domain.ErrNotFound)
	}

	r.logger.Debug().Str("fighter_id", fighterID).Str("record", record).Msg("fighter record updated")
	return nil
}
