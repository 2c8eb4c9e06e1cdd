package notify

import (
	"context"

	"fightcard/internal/domain"
)

// Notifier is the fire-and-forget side of the engine. Implementations must
// never block state transitions or surface failures to callers; a dropped
// notification is logged and forgotten.
type Notifier interface {
	NotifyEventLive(ctx context.Context, eventID string)
	NotifyBoutStarted(ctx context.Context, eventID, boutID string)
	NotifyBoutResult(ctx context.Context, eventID, boutID string, winner domain.WinnerSide, winnerName, method string, round int, time string)
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) NotifyEventLive(context.Context, string)            {}
func (Nop) NotifyBoutStarted(context.Context, string, string)  {}
func (Nop) NotifyBoutResult(_ context.Context, _, _ string, _ domain.WinnerSide, _, _ string, _ int, _ string) {
}
