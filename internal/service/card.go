package service

import (
	"context"
	"fmt"

	"fightcard/internal/constants"
	"fightcard/internal/domain"

	"github.com/rs/zerolog"
)

// CardService is the thin CRUD surface around the engine: events, bouts and
// fighters. Every mutation of a card re-runs the sequence assigner so the
// fight order stays canonical.
type CardService struct {
	eventStore   EventStore
	boutStore    BoutStore
	fighterStore FighterStore
	sequences    *SequenceService
	logger       zerolog.Logger
}

func NewCardService(eventStore EventStore, boutStore BoutStore, fighterStore FighterStore, sequences *SequenceService, logger zerolog.Logger) *CardService {
	return &CardService{
		eventStore:   eventStore,
		boutStore:    boutStore,
		fighterStore: fighterStore,
		sequences:    sequences,
		logger:       logger,
	}
}

func (s *CardService) CreateEvent(ctx context.Context, name string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.eventStore.Create(ctx, name)
}

func (s *CardService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.eventStore.Get(ctx, eventID)
}

func (s *CardService) AddBout(ctx context.Context, bout *domain.Bout) (*domain.Bout, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if bout.CardType != domain.CardMain && bout.CardType != domain.CardUndercard {
		return nil, fmt.Errorf("invalid card type %q", bout.CardType)
	}
	if _, err := s.eventStore.Get(ctx, bout.EventID); err != nil {
		return nil, err
	}

	created, err := s.boutStore.Create(ctx, bout)
	if err != nil {
		return nil, err
	}
	if _, err := s.sequences.Resequence(ctx, bout.EventID); err != nil {
		return nil, fmt.Errorf("bout created but resequencing failed: %w", err)
	}
	return s.boutStore.Get(ctx, created.ID)
}

func (s *CardService) ReorderBout(ctx context.Context, boutID string, orderIndex int) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	bout, err := s.boutStore.Get(ctx, boutID)
	if err != nil {
		return err
	}
	if err := s.boutStore.Reorder(ctx, boutID, orderIndex); err != nil {
		return err
	}
	if _, err := s.sequences.Resequence(ctx, bout.EventID); err != nil {
		return fmt.Errorf("bout reordered but resequencing failed: %w", err)
	}
	return nil
}

// ListBouts resequences first so callers always see canonical numbering.
// The assigner is idempotent, so this is a no-op write on a settled card.
func (s *CardService) ListBouts(ctx context.Context, eventID string) ([]domain.Bout, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if _, err := s.eventStore.Get(ctx, eventID); err != nil {
		return nil, err
	}
	if _, err := s.sequences.Resequence(ctx, eventID); err != nil {
		return nil, err
	}
	return s.boutStore.ListByEvent(ctx, eventID)
}

func (s *CardService) CreateFighter(ctx context.Context, name, record string) (*domain.Fighter, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.fighterStore.Create(ctx, name, record)
}

func (s *CardService) GetFighter(ctx context.Context, fighterID string) (*domain.Fighter, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.fighterStore.Get(ctx, fighterID)
}
