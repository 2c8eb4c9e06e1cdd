package service

import (
	"context"
	"fmt"
	"sync"

	"fightcard/internal/constants"
	"fightcard/internal/domain"
	"fightcard/internal/notify"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ResultService records bout outcomes and keeps both fighters' aggregate
// records consistent with them. Record updates are incremental deltas derived
// from the winner transition, so repeated saves and corrections converge.
type ResultService struct {
	boutStore    BoutStore
	fighterStore FighterStore
	notifier     notify.Notifier
	logger       zerolog.Logger
}

func NewResultService(boutStore BoutStore, fighterStore FighterStore, notifier notify.Notifier, logger zerolog.Logger) *ResultService {
	return &ResultService{boutStore: boutStore, fighterStore: fighterStore, notifier: notifier, logger: logger}
}

// SetBoutResult persists the result and reconciles both fighter records.
// The result write is fatal on failure; the two record writes are independent
// and partial failure is reported via *domain.PartialReconciliationError with
// the result already committed.
func (s *ResultService) SetBoutResult(ctx context.Context, boutID string, result domain.BoutResult) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if !result.Winner.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidWinner, result.Winner)
	}

	bout, err := s.boutStore.Get(ctx, boutID)
	if err != nil {
		return err
	}
	oldWinner := bout.WinnerSide

	if err := s.boutStore.SetResult(ctx, boutID, result); err != nil {
		return err
	}

	if oldWinner == result.Winner {
		// method/round/time may have changed, but the aggregate did not
		s.logger.Debug().Str("bout_id", boutID).Msg("winner unchanged, skipping record reconciliation")
		return nil
	}

	failures := s.reconcileCorners(ctx, bout, oldWinner, result.Winner)

	if result.Winner.Decisive() {
		s.notifier.NotifyBoutResult(ctx, bout.EventID, bout.ID, result.Winner,
			s.winnerName(ctx, bout, result.Winner), result.Method, result.Round, result.Time)
	}

	if len(failures) > 0 {
		return &domain.PartialReconciliationError{BoutID: boutID, Failures: failures}
	}
	return nil
}

// reconcileCorners applies the winner transition to each linked fighter's
// record. The two writes touch disjoint rows and run concurrently; one
// failing does not stop the other.
func (s *ResultService) reconcileCorners(ctx context.Context, bout *domain.Bout, oldWinner, newWinner domain.WinnerSide) []domain.RecordUpdateFailure {
	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures []domain.RecordUpdateFailure
	)

	for _, corner := range []domain.Corner{domain.CornerRed, domain.CornerBlue} {
		fighterID := bout.FighterID(corner)
		if fighterID == nil {
			continue
		}
		corner := corner
		id := *fighterID
		g.Go(func() error {
			if err := s.applyTransition(ctx, id, oldWinner, newWinner, corner); err != nil {
				s.logger.Error().
					Err(err).
					Str("bout_id", bout.ID).
					Str("fighter_id", id).
					Str("corner", string(corner)).
					Msg("fighter record update failed")
				mu.Lock()
				failures = append(failures, domain.RecordUpdateFailure{FighterID: id, Corner: corner, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()
	return failures
}

func (s *ResultService) applyTransition(ctx context.Context, fighterID string, oldWinner, newWinner domain.WinnerSide, corner domain.Corner) error {
	delta := domain.DiffForCorner(oldWinner, newWinner, corner)
	if delta.IsZero() {
		return nil
	}

	current, err := s.fighterStore.GetRecord(ctx, fighterID)
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}

	updated, clamped := domain.ApplyRecordDelta(current, delta)
	if clamped {
		// a component would have gone negative: the stored record drifted
		// from bout history, likely a lost or duplicated update
		s.logger.Warn().
			Str("fighter_id", fighterID).
			Str("stored_record", current).
			Msg("record clamped at zero, stored record has drifted")
	}

	if err := s.fighterStore.SetRecord(ctx, fighterID, updated); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	s.logger.Info().
		Str("fighter_id", fighterID).
		Str("record", updated).
		Str("previous", current).
		Msg("fighter record reconciled")
	return nil
}

// winnerName resolves the display name carried by the result notification:
// linked fighter name when there is one, free-text corner name otherwise,
// empty for a draw.
func (s *ResultService) winnerName(ctx context.Context, bout *domain.Bout, winner domain.WinnerSide) string {
	var corner domain.Corner
	switch winner {
	case domain.WinnerRed:
		corner = domain.CornerRed
	case domain.WinnerBlue:
		corner = domain.CornerBlue
	default:
		return ""
	}

	if id := bout.FighterID(corner); id != nil {
		fighter, err := s.fighterStore.Get(ctx, *id)
		if err == nil {
			return fighter.Name
		}
		s.logger.Warn().Err(err).Str("fighter_id", *id).Msg("failed to resolve winner name")
	}
	return bout.CornerName(corner)
}
