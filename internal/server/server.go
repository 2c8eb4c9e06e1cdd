package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"fightcard/internal/domain"
	"fightcard/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Server is the HTTP surface over the lifecycle engine.
type Server struct {
	cards     *service.CardService
	live      *service.LiveService
	results   *service.ResultService
	reconcile *service.ReconcileService
	logger    zerolog.Logger
}

func New(cards *service.CardService, live *service.LiveService, results *service.ResultService, reconcile *service.ReconcileService, logger zerolog.Logger) *Server {
	return &Server{cards: cards, live: live, results: results, reconcile: reconcile, logger: logger}
}

func (s *Server) Routes(r *mux.Router) {
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/events", s.handleCreateEvent).Methods(http.MethodPost)
	v1.HandleFunc("/events/{id}", s.handleGetEvent).Methods(http.MethodGet)
	v1.HandleFunc("/events/{id}/bouts", s.handleListBouts).Methods(http.MethodGet)
	v1.HandleFunc("/events/{id}/bouts", s.handleAddBout).Methods(http.MethodPost)
	v1.HandleFunc("/events/{id}/start", s.handleStartEvent).Methods(http.MethodPost)
	v1.HandleFunc("/events/{id}/advance", s.handleAdvance).Methods(http.MethodPost)
	v1.HandleFunc("/events/{id}/end", s.handleEndEvent).Methods(http.MethodPost)

	v1.HandleFunc("/bouts/{id}/reorder", s.handleReorderBout).Methods(http.MethodPost)
	v1.HandleFunc("/bouts/{id}/live", s.handleSetBoutLive).Methods(http.MethodPost)
	v1.HandleFunc("/bouts/{id}/result", s.handleSetBoutResult).Methods(http.MethodPost)

	v1.HandleFunc("/fighters", s.handleCreateFighter).Methods(http.MethodPost)
	v1.HandleFunc("/fighters/{id}", s.handleGetFighter).Methods(http.MethodGet)
	v1.HandleFunc("/fighters/{id}/reconcile", s.handleReconcileRecord).Methods(http.MethodPost)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	event, err := s.cards.CreateEvent(r.Context(), req.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.cards.GetEvent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

func (s *Server) handleListBouts(w http.ResponseWriter, r *http.Request) {
	bouts, err := s.cards.ListBouts(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := struct {
		Bouts []boutResponse `json:"bouts"`
	}{Bouts: make([]boutResponse, 0, len(bouts))}
	for i := range bouts {
		resp.Bouts = append(resp.Bouts, toBoutResponse(&bouts[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddBout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CardType      string  `json:"card_type"`
		OrderIndex    int     `json:"order_index"`
		RedFighterID  *string `json:"red_fighter_id"`
		BlueFighterID *string `json:"blue_fighter_id"`
		RedName       string  `json:"red_name"`
		BlueName      string  `json:"blue_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bout, err := s.cards.AddBout(r.Context(), &domain.Bout{
		EventID:       mux.Vars(r)["id"],
		CardType:      domain.CardType(req.CardType),
		OrderIndex:    req.OrderIndex,
		RedFighterID:  req.RedFighterID,
		BlueFighterID: req.BlueFighterID,
		RedName:       req.RedName,
		BlueName:      req.BlueName,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBoutResponse(bout))
}

func (s *Server) handleReorderBout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderIndex int `json:"order_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.cards.ReorderBout(r.Context(), mux.Vars(r)["id"], req.OrderIndex); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleStartEvent(w http.ResponseWriter, r *http.Request) {
	bout, err := s.live.StartEvent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBoutResponse(bout))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	bout, err := s.live.AdvanceToNextFight(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBoutResponse(bout))
}

func (s *Server) handleEndEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.live.EndLiveEvent(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSetBoutLive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventID string `json:"event_id"`
		Live    bool   `json:"live"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EventID == "" {
		writeError(w, http.StatusBadRequest, "event_id is required")
		return
	}

	if err := s.live.SetBoutLive(r.Context(), req.EventID, mux.Vars(r)["id"], req.Live); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSetBoutResult(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Winner string `json:"winner"`
		Method string `json:"method"`
		Round  int    `json:"round"`
		Time   string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.results.SetBoutResult(r.Context(), mux.Vars(r)["id"], domain.BoutResult{
		Winner: domain.WinnerSide(req.Winner),
		Method: req.Method,
		Round:  req.Round,
		Time:   req.Time,
	})

	var partial *domain.PartialReconciliationError
	if errors.As(err, &partial) {
		// the result itself committed; report which record writes failed
		resp := struct {
			OK       bool     `json:"ok"`
			Failures []string `json:"failures"`
		}{OK: true}
		for _, f := range partial.Failures {
			resp.Failures = append(resp.Failures, f.Err.Error())
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCreateFighter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Record string `json:"record"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	fighter, err := s.cards.CreateFighter(r.Context(), req.Name, req.Record)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFighterResponse(fighter))
}

func (s *Server) handleGetFighter(w http.ResponseWriter, r *http.Request) {
	fighter, err := s.cards.GetFighter(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFighterResponse(fighter))
}

func (s *Server) handleReconcileRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Record *string `json:"record"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := s.reconcile.ReconcileRecord(r.Context(), mux.Vars(r)["id"], req.Record)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"record": record})
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoBouts),
		errors.Is(err, domain.ErrSequenceNotComputed),
		errors.Is(err, domain.ErrNoLiveBout),
		errors.Is(err, domain.ErrNoNextBout):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidWinner):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
