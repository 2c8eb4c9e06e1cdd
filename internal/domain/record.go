package domain

import (
	"fmt"
	"regexp"
)

// Record is a fighter's cumulative wins-losses-draws aggregate. It is stored
// as a formatted "W-L-D" string on the fighter profile and only ever updated
// incrementally from bout result transitions.
type Record struct {
	Wins   int
	Losses int
	Draws  int
}

// RecordDelta is the signed change a winner transition causes for one corner.
type RecordDelta struct {
	Wins   int
	Losses int
	Draws  int
}

func (d RecordDelta) IsZero() bool {
	return d.Wins == 0 && d.Losses == 0 && d.Draws == 0
}

var recordDigits = regexp.MustCompile(`\d+`)

// ParseRecord extracts up to three integer runs from s, in order. Missing
// components default to 0, so decorated strings like "12 - 3 - 1 (2 NC)"
// parse as 12-3-1 and garbage parses as 0-0-0.
func ParseRecord(s string) Record {
	runs := recordDigits.FindAllString(s, 3)
	var parts [3]int
	for i, run := range runs {
		parts[i] = atoiSaturating(run)
	}
	return Record{Wins: parts[0], Losses: parts[1], Draws: parts[2]}
}

// atoiSaturating parses a digit run, capping absurdly long runs instead of
// overflowing.
func atoiSaturating(s string) int {
	const max = 1 << 30
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
		if n > max {
			return max
		}
	}
	return n
}

// String formats the record as "W-L-D", each component clamped to >= 0.
func (r Record) String() string {
	return fmt.Sprintf("%d-%d-%d", clampZero(r.Wins), clampZero(r.Losses), clampZero(r.Draws))
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// DiffForCorner computes the record change for the fighter in the given
// corner when a bout's winner transitions from oldWinner to newWinner: undo
// the old outcome, then apply the new one. Components are independent, so the
// subtract and add commute and repeated corrections compose correctly.
func DiffForCorner(oldWinner, newWinner WinnerSide, corner Corner) RecordDelta {
	var d RecordDelta
	applyOutcome(&d, oldWinner, corner, -1)
	applyOutcome(&d, newWinner, corner, +1)
	return d
}

func applyOutcome(d *RecordDelta, winner WinnerSide, corner Corner, sign int) {
	switch winner {
	case WinnerNone, WinnerNoContest:
		// no effect on the aggregate
	case WinnerDraw:
		d.Draws += sign
	default:
		if string(winner) == string(corner) {
			d.Wins += sign
		} else {
			d.Losses += sign
		}
	}
}

// ApplyRecordDelta parses the stored record, adds the delta component-wise
// and reformats. Components are clamped at zero rather than erroring; clamped
// reports whether any component would have gone negative, which indicates the
// stored record had drifted.
func ApplyRecordDelta(current string, delta RecordDelta) (updated string, clamped bool) {
	r := ParseRecord(current)
	r.Wins += delta.Wins
	r.Losses += delta.Losses
	r.Draws += delta.Draws
	clamped = r.Wins < 0 || r.Losses < 0 || r.Draws < 0
	return r.String(), clamped
}

// RecordFromBouts recounts a fighter's record from scratch over completed
// bouts. Used by the drift-recovery reconciliation path.
func RecordFromBouts(fighterID string, bouts []Bout) Record {
	var r Record
	var d RecordDelta
	for _, b := range bouts {
		corner, ok := cornerOf(fighterID, &b)
		if !ok {
			continue
		}
		applyOutcome(&d, b.WinnerSide, corner, +1)
	}
	r.Wins, r.Losses, r.Draws = d.Wins, d.Losses, d.Draws
	return r
}

func cornerOf(fighterID string, b *Bout) (Corner, bool) {
	if b.RedFighterID != nil && *b.RedFighterID == fighterID {
		return CornerRed, true
	}
	if b.BlueFighterID != nil && *b.BlueFighterID == fighterID {
		return CornerBlue, true
	}
	return "", false
}
