package service

import (
	"context"
	"testing"

	"fightcard/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLiveService(store *fakeStore, notifier *fakeNotifier) *LiveService {
	return NewLiveService(store, boutStoreAdapter{store}, notifier, zerolog.Nop())
}

func liveBoutIDs(t *testing.T, store *fakeStore, eventID string) []string {
	t.Helper()
	bouts, err := store.ListByEvent(context.Background(), eventID)
	require.NoError(t, err)
	var live []string
	for _, b := range bouts {
		if b.IsLive {
			live = append(live, b.ID)
		}
	}
	return live
}

func TestStartEvent(t *testing.T) {
	t.Run("no bouts", func(t *testing.T) {
		store := newFakeStore()
		store.addEvent("ev", false, false)

		_, err := newLiveService(store, &fakeNotifier{}).StartEvent(context.Background(), "ev")
		require.ErrorIs(t, err, domain.ErrNoBouts)
	})

	t.Run("sequence not computed", func(t *testing.T) {
		store := newFakeStore()
		store.addEvent("ev", false, false)
		store.addBout(domain.Bout{ID: "b1", EventID: "ev", CardType: domain.CardMain})

		_, err := newLiveService(store, &fakeNotifier{}).StartEvent(context.Background(), "ev")
		require.ErrorIs(t, err, domain.ErrSequenceNotComputed)
	})

	t.Run("opens the first bout of the sequence", func(t *testing.T) {
		store := newFakeStore()
		store.addEvent("ev", false, false)
		store.addBout(domain.Bout{ID: "opener", EventID: "ev", CardType: domain.CardUndercard, SequenceNumber: seqp(1)})
		store.addBout(domain.Bout{ID: "closer", EventID: "ev", CardType: domain.CardMain, SequenceNumber: seqp(2)})
		notifier := &fakeNotifier{}

		opened, err := newLiveService(store, notifier).StartEvent(context.Background(), "ev")
		require.NoError(t, err)
		assert.Equal(t, "opener", opened.ID)

		event, _ := store.Get(context.Background(), "ev")
		assert.True(t, event.IsStarted)
		assert.True(t, event.IsLive)
		assert.Equal(t, []string{"opener"}, liveBoutIDs(t, store, "ev"))
		assert.Equal(t, []string{"ev"}, notifier.eventLive)
		assert.Equal(t, []string{"opener"}, notifier.boutStarted)
	})
}

func TestSetBoutLive(t *testing.T) {
	t.Run("at most one bout live after any sequence of calls", func(t *testing.T) {
		store := newFakeStore()
		store.addEvent("ev", true, true)
		store.addBout(domain.Bout{ID: "b1", EventID: "ev", SequenceNumber: seqp(1)})
		store.addBout(domain.Bout{ID: "b2", EventID: "ev", SequenceNumber: seqp(2)})
		store.addBout(domain.Bout{ID: "b3", EventID: "ev", SequenceNumber: seqp(3)})
		svc := newLiveService(store, &fakeNotifier{})

		ctx := context.Background()
		require.NoError(t, svc.SetBoutLive(ctx, "ev", "b1", true))
		require.NoError(t, svc.SetBoutLive(ctx, "ev", "b3", true))
		require.NoError(t, svc.SetBoutLive(ctx, "ev", "b2", true))

		assert.Equal(t, []string{"b2"}, liveBoutIDs(t, store, "ev"))
	})

	t.Run("auto-starts a not-started event with one event live notification", func(t *testing.T) {
		store := newFakeStore()
		store.addEvent("ev", false, false)
		store.addBout(domain.Bout{ID: "b1", EventID: "ev", SequenceNumber: seqp(1)})
		notifier := &fakeNotifier{}
		svc := newLiveService(store, notifier)

		require.NoError(t, svc.SetBoutLive(context.Background(), "ev", "b1", true))

		event, _ := store.Get(context.Background(), "ev")
		assert.True(t, event.IsStarted)
		assert.True(t, event.IsLive)
		require.Len(t, notifier.eventLive, 1)
	})

	t.Run("no second event live notification once started", func(t *testing.T) {
		store := newFakeStore()
		store.addEvent("ev", true, true)
		store.addBout(domain.Bout{ID: "b1", EventID: "ev"})
		notifier := &fakeNotifier{}

		require.NoError(t, newLiveService(store, notifier).SetBoutLive(context.Background(), "ev", "b1", true))
		assert.Empty(t, notifier.eventLive)
	})

	t.Run("clearing a bout does not end the event", func(t *testing.T) {
		store := newFakeStore()
		store.addEvent("ev", true, true)
		store.addBout(domain.Bout{ID: "b1", EventID: "ev", IsLive: true})

		require.NoError(t, newLiveService(store, &fakeNotifier{}).SetBoutLive(context.Background(), "ev", "b1", false))

		assert.Empty(t, liveBoutIDs(t, store, "ev"))
		event, _ := store.Get(context.Background(), "ev")
		assert.True(t, event.IsLive, "event stays live until ended explicitly")
	})
}

func TestAdvanceToNextFight(t *testing.T) {
	setup := func() (*fakeStore, *fakeNotifier, *LiveService) {
		store := newFakeStore()
		store.addEvent("ev", true, true)
		store.addBout(domain.Bout{ID: "b1", EventID: "ev", SequenceNumber: seqp(1), IsLive: true})
		store.addBout(domain.Bout{ID: "b2", EventID: "ev", SequenceNumber: seqp(2)})
		store.addBout(domain.Bout{ID: "b3", EventID: "ev", SequenceNumber: seqp(3)})
		notifier := &fakeNotifier{}
		return store, notifier, newLiveService(store, notifier)
	}

	t.Run("moves live flag to the next sequence number", func(t *testing.T) {
		store, notifier, svc := setup()

		next, err := svc.AdvanceToNextFight(context.Background(), "ev")
		require.NoError(t, err)
		assert.Equal(t, "b2", next.ID)
		assert.Equal(t, []string{"b2"}, liveBoutIDs(t, store, "ev"))
		assert.Equal(t, []string{"b2"}, notifier.boutStarted)
	})

	t.Run("no live bout", func(t *testing.T) {
		store, _, svc := setup()
		require.NoError(t, store.ClearLiveForEvent(context.Background(), "ev"))

		_, err := svc.AdvanceToNextFight(context.Background(), "ev")
		require.ErrorIs(t, err, domain.ErrNoLiveBout)
	})

	t.Run("refused on the last fight, state unchanged", func(t *testing.T) {
		store, notifier, svc := setup()
		require.NoError(t, store.SetLive(context.Background(), "ev", "b3"))

		_, err := svc.AdvanceToNextFight(context.Background(), "ev")
		require.ErrorIs(t, err, domain.ErrNoNextBout)
		assert.Equal(t, []string{"b3"}, liveBoutIDs(t, store, "ev"))
		assert.Empty(t, notifier.boutStarted)
	})
}

func TestEndLiveEvent(t *testing.T) {
	store := newFakeStore()
	store.addEvent("ev", true, true)
	store.addBout(domain.Bout{ID: "b1", EventID: "ev", IsLive: true})
	store.addBout(domain.Bout{ID: "b2", EventID: "ev"})

	require.NoError(t, newLiveService(store, &fakeNotifier{}).EndLiveEvent(context.Background(), "ev"))

	assert.Empty(t, liveBoutIDs(t, store, "ev"))
	event, _ := store.Get(context.Background(), "ev")
	assert.False(t, event.IsLive)
	assert.True(t, event.IsStarted, "an event that started stays started")
}
