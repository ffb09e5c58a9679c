// Package payherohook принимает callback-события платёжного шлюза.
package payherohook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/preocrypto/trading-backend/internal/http/response"
	"github.com/preocrypto/trading-backend/internal/lib/sl"
	"github.com/preocrypto/trading-backend/internal/metrics"
	paymentservice "github.com/preocrypto/trading-backend/internal/services/payment"
)

// Service описывает обработку событий шлюза.
type Service interface {
	ProcessWebhook(ctx context.Context, event paymentservice.WebhookEvent) error
}

// Handler обрабатывает входящие webhook-запросы.
type Handler struct {
	log      *slog.Logger
	payments Service
}

// New создаёт Handler.
func New(log *slog.Logger, payments Service) *Handler {
	return &Handler{log: log, payments: payments}
}

// ServeHTTP godoc
// @Summary Webhook платёжного шлюза
// @Description Принимает событие платежа и применяет его к балансу и журналу операций. Отвечает success даже на неизвестные события.
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} response.OK
// @Router /webhook/payhero [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.payherohook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var event paymentservice.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Warn("failed to decode webhook body, treating as empty", sl.Err(err))
	}

	eventType := event.EventType
	if eventType == "" {
		eventType = "unknown"
	}
	metrics.WebhookEvents.WithLabelValues(eventType).Inc()

	if err := h.payments.ProcessWebhook(r.Context(), event); err != nil {
		log.Error("failed to process webhook event", sl.Err(err))
		render.JSON(w, r, response.Err("Webhook processing failed"))
		return
	}

	render.JSON(w, r, response.Success())
}
