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

type BoutRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewBoutRepository(sqlDB *sql.DB, logger zerolog.Logger) *BoutRepository {
	return &BoutRepository{db: sqlDB, logger: logger}
}

const boutColumns = `id, event_id, card_type, order_index, sequence_number, red_fighter_id, blue_fighter_id, red_name, blue_name, winner_side, method, round, time, is_live, created_at, updated_at`

func scanBout(row interface{ Scan(...any) error }) (*domain.Bout, error) {
	var b domain.Bout
	var seq sql.NullInt64
	var redID, blueID sql.NullString
	var winner string

	err := row.Scan(&b.ID, &b.EventID, &b.CardType, &b.OrderIndex, &seq,
		&redID, &blueID, &b.RedName, &b.BlueName,
		&winner, &b.Method, &b.Round, &b.Time, &b.IsLive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if seq.Valid {
		n := int(seq.Int64)
		b.SequenceNumber = &n
	}
	if redID.Valid {
		b.RedFighterID = &redID.String
	}
	if blueID.Valid {
		b.BlueFighterID = &blueID.String
	}
	b.WinnerSide = domain.WinnerSide(winner)
	return &b, nil
}

func (r *BoutRepository) Create(ctx context.Context, bout *domain.Bout) (*domain.Bout, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bout id: %w", err)
	}

	now := time.Now()
	bout.ID = id
	bout.CreatedAt = now
	bout.UpdatedAt = now

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO bouts (id, event_id, card_type, order_index, sequence_number,
			red_fighter_id, blue_fighter_id, red_name, blue_name,
			winner_side, method, round, time, is_live, created_at, updated_at)
		 VALUES (?, ?, ?, ?, NULL, ?, ?, ?, ?, '', '', 0, '', 0, ?, ?)`,
		bout.ID, bout.EventID, bout.CardType, bout.OrderIndex,
		bout.RedFighterID, bout.BlueFighterID, bout.RedName, bout.BlueName,
		bout.CreatedAt, bout.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bout: %w", err)
	}

	r.logger.Info().
		Str("bout_id", bout.ID).
		Str("event_id", bout.EventID).
		Str("card_type", string(bout.CardType)).
		Msg("bout created")
	return bout, nil
}

func (r *BoutRepository) Get(ctx context.Context, boutID string) (*domain.Bout, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+boutColumns+` FROM bouts WHERE id = ?`, boutID)

	b, err := scanBout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bout %s: %w", boutID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BoutRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Bout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+boutColumns+` FROM bouts WHERE event_id = ? ORDER BY card_type, order_index`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bouts []domain.Bout
	for rows.Next() {
		b, err := scanBout(rows)
		if err != nil {
			return nil, err
		}
		bouts = append(bouts, *b)
	}
	return bouts, rows.Err()
}

// ListCompletedForFighter returns every bout with a result where the fighter
// occupied a corner. Used by the full-history record recompute.
func (r *BoutRepository) ListCompletedForFighter(ctx context.Context, fighterID string) ([]domain.Bout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+boutColumns+` FROM bouts
		 WHERE (red_fighter_id = ? OR blue_fighter_id = ?) AND winner_side != ''`,
		fighterID, fighterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bouts []domain.Bout
	for rows.Next() {
		b, err := scanBout(rows)
		if err != nil {
			return nil, err
		}
		bouts = append(bouts, *b)
	}
	return bouts, rows.Err()
}

// UpdateSequences persists the assigner's update batch in one transaction.
func (r *BoutRepository) UpdateSequences(ctx context.Context, updates []domain.SequenceUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, u := range updates {
		_, err := tx.ExecContext(ctx,
			`UPDATE bouts SET sequence_number = ?, updated_at = ? WHERE id = ?`,
			u.SequenceNumber, time.Now(), u.BoutID)
		if err != nil {
			return fmt.Errorf("failed to update sequence for bout %s: %w", u.BoutID, err)
		}
	}

	r.logger.Debug().Int("updates", len(updates)).Msg("bout sequences updated")
	return tx.Commit()
}

// SetLive makes the target bout the event's only live bout. The clear and the
// set run in a single transaction so no reader ever observes two live bouts.
func (r *BoutRepository) SetLive(ctx context.Context, eventID, boutID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.ExecContext(ctx,
		`UPDATE bouts SET is_live = 0, updated_at = ? WHERE event_id = ? AND is_live = 1`,
		now, eventID); err != nil {
		return fmt.Errorf("failed to clear live bouts: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE bouts SET is_live = 1, updated_at = ? WHERE id = ? AND event_id = ?`,
		now, boutID, eventID)
	if err != nil {
		return fmt.Errorf("failed to set bout live: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("bout %s: %w", boutID, domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Info().Str("event_id", eventID).Str("bout_id", boutID).Msg("bout set live")
	return nil
}

func (r *BoutRepository) ClearLive(ctx context.Context, boutID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bouts SET is_live = 0, updated_at = ? WHERE id = ?`,
		time.Now(), boutID)
	if err != nil {
		return fmt.Errorf("failed to clear bout live flag: %w", err)
	}
	r.logger.Debug().Str("bout_id", boutID).Msg("bout live flag cleared")
	return nil
}

func (r *BoutRepository) ClearLiveForEvent(ctx context.Context, eventID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bouts SET is_live = 0, updated_at = ? WHERE event_id = ? AND is_live = 1`,
		time.Now(), eventID)
	if err != nil {
		return fmt.Errorf("failed to clear live bouts for event: %w", err)
	}
	r.logger.Debug().Str("event_id", eventID).Msg("all live bouts cleared")
	return nil
}

func (r *BoutRepository) SetResult(ctx context.Context, boutID string, result domain.BoutResult) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bouts SET winner_side = ?, method = ?, round = ?, time = ?, updated_at = ?
		 WHERE id = ?`,
		string(result.Winner), result.Method, result.Round, result.Time, time.Now(), boutID)
	if err != nil {
		return fmt.Errorf("failed to persist bout result: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("bout %s: %w", boutID, domain.ErrNotFound)
	}

	r.logger.Info().
		Str("bout_id", boutID).
		Str("winner", string(result.Winner)).
		Str("method", result.Method).
		Msg("bout result persisted")
	return nil
}

// Reorder moves a bout to a new display position within its card.
func (r *BoutRepository) Reorder(ctx context.Context, boutID string, orderIndex int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bouts SET order_index = ?, updated_at = ? WHERE id = ?`,
		orderIndex, time.Now(), boutID)
	if err != nil {
		return fmt.Errorf("failed to reorder bout: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("bout %s: %w", boutID, domain.ErrNotFound)
	}
	return nil
}
