package service

import (
	"context"
	"testing"

	"fightcard/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReconcileService(store *fakeStore) *ReconcileService {
	return NewReconcileService(boutStoreAdapter{store}, fighterStoreAdapter{store}, zerolog.Nop())
}

func TestReconcileRecord(t *testing.T) {
	t.Run("explicit total is normalized and stored as ground truth", func(t *testing.T) {
		store := newFakeStore()
		store.addFighter("f1", "Ana Silva", "3-1-0")

		record, err := newReconcileService(store).ReconcileRecord(
			context.Background(), "f1", strp("12 - 3 - 1 (2 NC)"))
		require.NoError(t, err)
		assert.Equal(t, "12-3-1", record)

		fighter, _ := store.GetFighter(context.Background(), "f1")
		assert.Equal(t, "12-3-1", fighter.Record)
	})

	t.Run("recomputes from bout history when no total given", func(t *testing.T) {
		store := newFakeStore()
		store.addFighter("f1", "Ana Silva", "99-99-99") // drifted
		store.addBout(domain.Bout{ID: "b1", RedFighterID: strp("f1"), WinnerSide: domain.WinnerRed})
		store.addBout(domain.Bout{ID: "b2", BlueFighterID: strp("f1"), WinnerSide: domain.WinnerRed})
		store.addBout(domain.Bout{ID: "b3", RedFighterID: strp("f1"), WinnerSide: domain.WinnerDraw})
		store.addBout(domain.Bout{ID: "b4", RedFighterID: strp("f1"), WinnerSide: domain.WinnerNoContest})

		record, err := newReconcileService(store).ReconcileRecord(context.Background(), "f1", nil)
		require.NoError(t, err)
		assert.Equal(t, "1-1-1", record)

		fighter, _ := store.GetFighter(context.Background(), "f1")
		assert.Equal(t, "1-1-1", fighter.Record)
	})

	t.Run("unknown fighter", func(t *testing.T) {
		store := newFakeStore()
		_, err := newReconcileService(store).ReconcileRecord(context.Background(), "ghost", nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestResequence(t *testing.T) {
	store := newFakeStore()
	store.addEvent("ev", false, false)
	store.addBout(domain.Bout{ID: "m0", EventID: "ev", CardType: domain.CardMain, OrderIndex: 0})
	store.addBout(domain.Bout{ID: "u0", EventID: "ev", CardType: domain.CardUndercard, OrderIndex: 0})
	store.addBout(domain.Bout{ID: "u1", EventID: "ev", CardType: domain.CardUndercard, OrderIndex: 1})
	svc := NewSequenceService(boutStoreAdapter{store}, zerolog.Nop())

	updates, err := svc.Resequence(context.Background(), "ev")
	require.NoError(t, err)
	assert.Len(t, updates, 3)

	// idempotent: a second run writes nothing
	updates, err = svc.Resequence(context.Background(), "ev")
	require.NoError(t, err)
	assert.Empty(t, updates)
	assert.Equal(t, 1, store.seqUpdateRuns)

	bouts, _ := store.ListByEvent(context.Background(), "ev")
	bySeq := map[int]string{}
	for _, b := range bouts {
		require.NotNil(t, b.SequenceNumber)
		bySeq[*b.SequenceNumber] = b.ID
	}
	assert.Equal(t, map[int]string{1: "u1", 2: "u0", 3: "m0"}, bySeq)
}
