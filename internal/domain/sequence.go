package domain

import (
	"sort"
)

// AssignSequence computes the canonical fight order for an event's bouts and
// returns updates for the bouts whose stored sequence number disagrees.
//
// Cards are displayed main-card-first, top-to-bottom, but fought in the
// opposite direction: the bottom of the undercard opens the night and the top
// of the main card closes it. So each card is walked bottom-up (descending
// order index), undercard before main card, and sequence numbers 1..N are
// dealt along the way.
//
// Running it on already-sequenced bouts yields an empty batch, so it is safe
// to call on every load or reorder.
func AssignSequence(bouts []Bout) []SequenceUpdate {
	var undercard, main []Bout
	for _, b := range bouts {
		if b.CardType == CardMain {
			main = append(main, b)
		} else {
			undercard = append(undercard, b)
		}
	}

	byDescendingOrder := func(list []Bout) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].OrderIndex > list[j].OrderIndex
		})
	}
	byDescendingOrder(undercard)
	byDescendingOrder(main)

	fought := append(undercard, main...)

	updates := make([]SequenceUpdate, 0)
	for i, b := range fought {
		seq := i + 1
		if b.SequenceNumber != nil && *b.SequenceNumber == seq {
			continue
		}
		updates = append(updates, SequenceUpdate{BoutID: b.ID, SequenceNumber: seq})
	}
	return updates
}
