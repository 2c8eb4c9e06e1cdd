package service

import (
	"context"
	"fmt"

	"fightcard/internal/constants"
	"fightcard/internal/domain"
	"fightcard/internal/notify"

	"github.com/rs/zerolog"
)

// LiveService owns the per-event live state machine: the started/live flags
// and the guarantee that at most one bout of an event is in progress.
type LiveService struct {
	eventStore EventStore
	boutStore  BoutStore
	notifier   notify.Notifier
	logger     zerolog.Logger
}

func NewLiveService(eventStore EventStore, boutStore BoutStore, notifier notify.Notifier, logger zerolog.Logger) *LiveService {
	return &LiveService{eventStore: eventStore, boutStore: boutStore, notifier: notifier, logger: logger}
}

// StartEvent opens the event with the first bout of the fight sequence.
// Requires bouts to exist and the sequence to be computed.
func (s *LiveService) StartEvent(ctx context.Context, eventID string) (*domain.Bout, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if _, err := s.eventStore.Get(ctx, eventID); err != nil {
		return nil, err
	}

	bouts, err := s.boutStore.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bouts: %w", err)
	}
	if len(bouts) == 0 {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNoBouts)
	}

	opener := findBySequence(bouts, 1)
	if opener == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrSequenceNotComputed)
	}

	if err := s.boutStore.SetLive(ctx, eventID, opener.ID); err != nil {
		return nil, fmt.Errorf("failed to set opening bout live: %w", err)
	}
	if err := s.eventStore.SetLiveState(ctx, eventID, true, true); err != nil {
		return nil, fmt.Errorf("failed to mark event live: %w", err)
	}

	s.logger.Info().Str("event_id", eventID).Str("bout_id", opener.ID).Msg("event started")
	s.notifier.NotifyEventLive(ctx, eventID)
	s.notifier.NotifyBoutStarted(ctx, eventID, opener.ID)
	return opener, nil
}

// SetBoutLive toggles a single bout's live flag. Making a bout live clears
// every other bout of the event in the same store transaction, and
// auto-starts the event if it had not started yet. Clearing a bout's flag
// never transitions the event.
func (s *LiveService) SetBoutLive(ctx context.Context, eventID, boutID string, live bool) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if !live {
		if err := s.boutStore.ClearLive(ctx, boutID); err != nil {
			return fmt.Errorf("failed to clear bout live flag: %w", err)
		}
		s.logger.Info().Str("event_id", eventID).Str("bout_id", boutID).Msg("bout taken off live")
		return nil
	}

	event, err := s.eventStore.Get(ctx, eventID)
	if err != nil {
		return err
	}

	if err := s.boutStore.SetLive(ctx, eventID, boutID); err != nil {
		return fmt.Errorf("failed to set bout live: %w", err)
	}

	if !event.IsStarted || !event.IsLive {
		if err := s.eventStore.SetLiveState(ctx, eventID, true, true); err != nil {
			return fmt.Errorf("failed to mark event live: %w", err)
		}
	}
	if !event.IsStarted {
		s.logger.Info().Str("event_id", eventID).Msg("event auto-started by bout going live")
		s.notifier.NotifyEventLive(ctx, eventID)
	}
	s.notifier.NotifyBoutStarted(ctx, eventID, boutID)
	return nil
}

// AdvanceToNextFight moves the live flag from the current bout to the bout
// with the next sequence number. Refused on the last bout of the night.
func (s *LiveService) AdvanceToNextFight(ctx context.Context, eventID string) (*domain.Bout, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	bouts, err := s.boutStore.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bouts: %w", err)
	}

	current := findLive(bouts)
	if current == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNoLiveBout)
	}
	if current.SequenceNumber == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrSequenceNotComputed)
	}

	next := findBySequence(bouts, *current.SequenceNumber+1)
	if next == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNoNextBout)
	}

	// the clear-then-set pair is one store transaction
	if err := s.boutStore.SetLive(ctx, eventID, next.ID); err != nil {
		return nil, fmt.Errorf("failed to advance live bout: %w", err)
	}

	s.logger.Info().
		Str("event_id", eventID).
		Str("from_bout", current.ID).
		Str("to_bout", next.ID).
		Int("sequence", *current.SequenceNumber+1).
		Msg("advanced to next fight")
	s.notifier.NotifyBoutStarted(ctx, eventID, next.ID)
	return next, nil
}

// EndLiveEvent takes the event and all its bouts off live. A started event
// stays started after it ends.
func (s *LiveService) EndLiveEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	event, err := s.eventStore.Get(ctx, eventID)
	if err != nil {
		return err
	}

	if err := s.boutStore.ClearLiveForEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to clear live bouts: %w", err)
	}
	if err := s.eventStore.SetLiveState(ctx, eventID, event.IsStarted, false); err != nil {
		return fmt.Errorf("failed to clear event live flag: %w", err)
	}

	s.logger.Info().Str("event_id", eventID).Msg("event ended")
	return nil
}

func findLive(bouts []domain.Bout) *domain.Bout {
	for i := range bouts {
		if bouts[i].IsLive {
			return &bouts[i]
		}
	}
	return nil
}

func findBySequence(bouts []domain.Bout, seq int) *domain.Bout {
	for i := range bouts {
		if bouts[i].SequenceNumber != nil && *bouts[i].SequenceNumber == seq {
			return &bouts[i]
		}
	}
	return nil
}
