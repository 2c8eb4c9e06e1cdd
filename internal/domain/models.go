package domain

import (
	"time"
)

type CardType string

const (
	CardMain      CardType = "main"
	CardUndercard CardType = "undercard"
)

// Corner is the side of the cage a fighter occupies in a bout.
type Corner string

const (
	CornerRed  Corner = "red"
	CornerBlue Corner = "blue"
)

// WinnerSide is the recorded outcome of a bout. The zero value means the
// bout has no result yet.
type WinnerSide string

const (
	WinnerNone      WinnerSide = ""
	WinnerRed       WinnerSide = "red"
	WinnerBlue      WinnerSide = "blue"
	WinnerDraw      WinnerSide = "draw"
	WinnerNoContest WinnerSide = "no_contest"
)

// Decisive reports whether the outcome counts as a real result worth
// announcing. No-contest and missing results are not decisive.
func (w WinnerSide) Decisive() bool {
	return w == WinnerRed || w == WinnerBlue || w == WinnerDraw
}

func (w WinnerSide) Valid() bool {
	switch w {
	case WinnerNone, WinnerRed, WinnerBlue, WinnerDraw, WinnerNoContest:
		return true
	}
	return false
}

type Event struct {
	ID        string
	Name      string
	IsStarted bool
	IsLive    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Bout struct {
	ID      string
	EventID string

	CardType   CardType
	OrderIndex int
	// SequenceNumber is the fought order (1 = fights first), nil until the
	// assigner has run for the event.
	SequenceNumber *int

	// A corner may hold a linked fighter profile or just a free-text name.
	RedFighterID  *string
	BlueFighterID *string
	RedName       string
	BlueName      string

	WinnerSide WinnerSide
	Method     string
	Round      int
	Time       string

	IsLive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FighterID returns the linked fighter id for the given corner, nil when the
// corner is free-text only.
func (b *Bout) FighterID(c Corner) *string {
	if c == CornerRed {
		return b.RedFighterID
	}
	return b.BlueFighterID
}

// CornerName returns the display name for the given corner.
func (b *Bout) CornerName(c Corner) string {
	if c == CornerRed {
		return b.RedName
	}
	return b.BlueName
}

type Fighter struct {
	ID        string
	Name      string
	Record    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SequenceUpdate is one bout whose stored sequence number disagrees with the
// computed fight order.
type SequenceUpdate struct {
	BoutID         string
	SequenceNumber int
}

type BoutResult struct {
	Winner WinnerSide
	Method string
	Round  int
	Time   string
}
