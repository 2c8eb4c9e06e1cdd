package service

import (
	"context"
	"fmt"

	"fightcard/internal/domain"

	"github.com/rs/zerolog"
)

// SequenceService recomputes the canonical fight order for an event and
// persists only the bouts whose stored number changed. It runs after every
// bout add or reorder and is harmless to run redundantly.
type SequenceService struct {
	boutStore BoutStore
	logger    zerolog.Logger
}

func NewSequenceService(boutStore BoutStore, logger zerolog.Logger) *SequenceService {
	return &SequenceService{boutStore: boutStore, logger: logger}
}

func (s *SequenceService) Resequence(ctx context.Context, eventID string) ([]domain.SequenceUpdate, error) {
	bouts, err := s.boutStore.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bouts: %w", err)
	}

	updates := domain.AssignSequence(bouts)
	if len(updates) == 0 {
		s.logger.Debug().Str("event_id", eventID).Msg("fight sequence already canonical")
		return updates, nil
	}

	if err := s.boutStore.UpdateSequences(ctx, updates); err != nil {
		return nil, fmt.Errorf("failed to persist sequence updates: %w", err)
	}

	s.logger.Info().
		Str("event_id", eventID).
		Int("bouts", len(bouts)).
		Int("updated", len(updates)).
		Msg("fight sequence recomputed")
	return updates, nil
}
