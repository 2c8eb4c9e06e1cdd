package notify

import (
	"context"
	"encoding/json"
	"time"

	"fightcard/internal/config"
	"fightcard/internal/constants"
	"fightcard/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// WebhookNotifier posts lifecycle announcements to a configured webhook.
// Deliveries run on their own goroutine; failures are logged and swallowed so
// a dead webhook can never roll back or delay a state transition.
type WebhookNotifier struct {
	webhookURL string
	client     *fasthttp.Client
	enabled    bool
	logger     zerolog.Logger
}

func NewWebhookNotifier(cfg *config.Config, logger zerolog.Logger) *WebhookNotifier {
	enabled := cfg.NotifyWebhookURL != ""
	if enabled {
		logger.Info().Msg("webhook notifier enabled")
	} else {
		logger.Info().Msg("webhook notifier disabled (no NOTIFY_WEBHOOK_URL)")
	}

	return &WebhookNotifier{
		webhookURL: cfg.NotifyWebhookURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.NotifyTimeout,
			WriteTimeout:        constants.NotifyTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		enabled: enabled,
		logger:  logger,
	}
}

type webhookPayload struct {
	Type    string `json:"type"`
	EventID string `json:"event_id"`
	BoutID  string `json:"bout_id,omitempty"`

	Winner     string `json:"winner,omitempty"`
	WinnerName string `json:"winner_name,omitempty"`
	Method     string `json:"method,omitempty"`
	Round      int    `json:"round,omitempty"`
	Time       string `json:"time,omitempty"`

	SentAt time.Time `json:"sent_at"`
}

func (n *WebhookNotifier) NotifyEventLive(_ context.Context, eventID string) {
	n.send(webhookPayload{Type: "event_live", EventID: eventID})
}

func (n *WebhookNotifier) NotifyBoutStarted(_ context.Context, eventID, boutID string) {
	n.send(webhookPayload{Type: "bout_started", EventID: eventID, BoutID: boutID})
}

func (n *WebhookNotifier) NotifyBoutResult(_ context.Context, eventID, boutID string, winner domain.WinnerSide, winnerName, method string, round int, boutTime string) {
	n.send(webhookPayload{
		Type:       "bout_result",
		EventID:    eventID,
		BoutID:     boutID,
		Winner:     string(winner),
		WinnerName: winnerName,
		Method:     method,
		Round:      round,
		Time:       boutTime,
	})
}

func (n *WebhookNotifier) send(payload webhookPayload) {
	if !n.enabled {
		return
	}
	payload.SentAt = time.Now()

	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			n.logger.Error().Err(err).Str("type", payload.Type).Msg("failed to marshal notification")
			return
		}

		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(n.webhookURL)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.SetBody(body)

		if err := n.client.DoTimeout(req, resp, constants.NotifyTimeout); err != nil {
			n.logger.Warn().Err(err).Str("type", payload.Type).Msg("notification delivery failed")
			return
		}
		if resp.StatusCode() >= 300 {
			n.logger.Warn().
				Int("status", resp.StatusCode()).
				Str("type", payload.Type).
				Msg("notification rejected by webhook")
			return
		}

		n.logger.Debug().
			Str("type", payload.Type).
			Str("event_id", payload.EventID).
			Str("bout_id", payload.BoutID).
			Msg("notification delivered")
	}()
}
