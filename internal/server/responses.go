package server

import (
	"time"

	"fightcard/internal/domain"
)

type eventResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsStarted bool      `json:"is_started"`
	IsLive    bool      `json:"is_live"`
	CreatedAt time.Time `json:"created_at"`
}

type boutResponse struct {
	ID             string  `json:"id"`
	EventID        string  `json:"event_id"`
	CardType       string  `json:"card_type"`
	OrderIndex     int     `json:"order_index"`
	SequenceNumber *int    `json:"sequence_number"`
	RedFighterID   *string `json:"red_fighter_id"`
	BlueFighterID  *string `json:"blue_fighter_id"`
	RedName        string  `json:"red_name"`
	BlueName       string  `json:"blue_name"`
	Winner         string  `json:"winner"`
	Method         string  `json:"method"`
	Round          int     `json:"round"`
	Time           string  `json:"time"`
	IsLive         bool    `json:"is_live"`
}

type fighterResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Record string `json:"record"`
}

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		Name:      e.Name,
		IsStarted: e.IsStarted,
		IsLive:    e.IsLive,
		CreatedAt: e.CreatedAt,
	}
}

func toBoutResponse(b *domain.Bout) boutResponse {
	return boutResponse{
		ID:             b.ID,
		EventID:        b.EventID,
		CardType:       string(b.CardType),
		OrderIndex:     b.OrderIndex,
		SequenceNumber: b.SequenceNumber,
		RedFighterID:   b.RedFighterID,
		BlueFighterID:  b.BlueFighterID,
		RedName:        b.RedName,
		BlueName:       b.BlueName,
		Winner:         string(b.WinnerSide),
		Method:         b.Method,
		Round:          b.Round,
		Time:           b.Time,
		IsLive:         b.IsLive,
	}
}

func toFighterResponse(f *domain.Fighter) fighterResponse {
	return fighterResponse{ID: f.ID, Name: f.Name, Record: f.Record}
}
