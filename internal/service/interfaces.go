package service

import (
	"context"

	"fightcard/internal/domain"
)

// EventStore is the slice of the bout store the engine needs for event state.
type EventStore interface {
	Create(ctx context.Context, name string) (*domain.Event, error)
	Get(ctx context.Context, eventID string) (*domain.Event, error)
	SetLiveState(ctx context.Context, eventID string, started, live bool) error
}

type BoutStore interface {
	Create(ctx context.Context, bout *domain.Bout) (*domain.Bout, error)
	Get(ctx context.Context, boutID string) (*domain.Bout, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Bout, error)
	ListCompletedForFighter(ctx context.Context, fighterID string) ([]domain.Bout, error)
	UpdateSequences(ctx context.Context, updates []domain.SequenceUpdate) error

	// SetLive must atomically clear every other live bout of the event
	// before setting the target, so the one-live-bout invariant holds for
	// concurrent readers.
	SetLive(ctx context.Context, eventID, boutID string) error
	ClearLive(ctx context.Context, boutID string) error
	ClearLiveForEvent(ctx context.Context, eventID string) error

	SetResult(ctx context.Context, boutID string, result domain.BoutResult) error
	Reorder(ctx context.Context, boutID string, orderIndex int) error
}

type FighterStore interface {
	Create(ctx context.Context, name, record string) (*domain.Fighter, error)
	Get(ctx context.Context, fighterID string) (*domain.Fighter, error)
	GetRecord(ctx context.Context, fighterID string) (string, error)
	SetRecord(ctx context.Context, fighterID, record string) error
}
