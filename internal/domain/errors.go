package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoBouts means an event cannot start because it has no bouts.
	ErrNoBouts = errors.New("event has no bouts")

	// ErrSequenceNotComputed means no bout carries sequence number 1; the
	// assigner has to run before live progression can work.
	ErrSequenceNotComputed = errors.New("fight sequence not computed")

	// ErrNoLiveBout means a progression operation found no bout in progress.
	ErrNoLiveBout = errors.New("no live bout")

	// ErrNoNextBout means the live bout is the last of the card. Advancement
	// is refused but nothing is broken.
	ErrNoNextBout = errors.New("no next bout in sequence")

	ErrNotFound = errors.New("not found")

	ErrInvalidWinner = errors.New("invalid winner side")
)

// RecordUpdateFailure is one fighter-record write that failed during result
// reconciliation.
type RecordUpdateFailure struct {
	FighterID string
	Corner    Corner
	Err       error
}

// PartialReconciliationError reports that the bout result itself was saved
// but one or both fighter-record updates failed. The caller can retry record
// reconciliation independently.
type PartialReconciliationError struct {
	BoutID   string
	Failures []RecordUpdateFailure
}

func (e *PartialReconciliationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "bout %s: result saved but %d record update(s) failed:", e.BoutID, len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&sb, " [%s corner, fighter %s: %v]", f.Corner, f.FighterID, f.Err)
	}
	return sb.String()
}
