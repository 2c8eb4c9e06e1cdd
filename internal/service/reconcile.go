package service

import (
	"context"
	"fmt"

	"fightcard/internal/constants"
	"fightcard/internal/domain"

	"github.com/rs/zerolog"
)

// ReconcileService is the drift-recovery path for fighter records. The delta
// updates in ResultService are the interactive fast path; this service can
// recount a record from full bout history, or accept an operator-supplied
// total as new ground truth.
type ReconcileService struct {
	boutStore    BoutStore
	fighterStore FighterStore
	logger       zerolog.Logger
}

func NewReconcileService(boutStore BoutStore, fighterStore FighterStore, logger zerolog.Logger) *ReconcileService {
	return &ReconcileService{boutStore: boutStore, fighterStore: fighterStore, logger: logger}
}

// ReconcileRecord rewrites a fighter's stored record. With an explicit total
// the string is normalized and stored as-is (operator override); without one
// the record is recounted from the fighter's completed bouts. Returns the
// stored record string.
func (s *ReconcileService) ReconcileRecord(ctx context.Context, fighterID string, explicitTotal *string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if _, err := s.fighterStore.Get(ctx, fighterID); err != nil {
		return "", err
	}

	var record string
	if explicitTotal != nil {
		record = domain.ParseRecord(*explicitTotal).String()
		s.logger.Info().
			Str("fighter_id", fighterID).
			Str("supplied", *explicitTotal).
			Str("record", record).
			Msg("record overridden by explicit total")
	} else {
		bouts, err := s.boutStore.ListCompletedForFighter(ctx, fighterID)
		if err != nil {
			return "", fmt.Errorf("failed to load bout history: %w", err)
		}
		record = domain.RecordFromBouts(fighterID, bouts).String()
		s.logger.Info().
			Str("fighter_id", fighterID).
			Int("bouts", len(bouts)).
			Str("record", record).
			Msg("record recomputed from bout history")
	}

	if err := s.fighterStore.SetRecord(ctx, fighterID, record); err != nil {
		return "", fmt.Errorf("failed to store reconciled record: %w", err)
	}
	return record, nil
}
