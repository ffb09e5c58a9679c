// Package mpesastk реализует инициацию M-PESA STK-push через платёжный шлюз.
// Формат ответа в точности повторяет легаси-поверхность: исход передаётся
// полями success и error при статусе 200.
package mpesastk

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/preocrypto/trading-backend/internal/lib/sl"
	"github.com/preocrypto/trading-backend/internal/metrics"
	"github.com/preocrypto/trading-backend/internal/paymentprovider"
	paymentservice "github.com/preocrypto/trading-backend/internal/services/payment"
)

// Request — параметры депозита через M-PESA.
type Request struct {
	Phone    string         `json:"phone" validate:"required"`
	Amount   float64        `json:"amount" validate:"required"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"metadata"`
	Customer map[string]any `json:"customer"`
}

// Response — единый формат ответа: успех с телом ответа шлюза либо
// ошибка с подробностями.
type Response struct {
	Success bool           `json:"success"`
	Result  map[string]any `json:"result,omitempty"`
	Status  int            `json:"status,omitempty"`
	Error   string         `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Service описывает интерфейс инициации платежа.
type Service interface {
	InitiateSTK(ctx context.Context, req paymentservice.STKRequest) (*paymentprovider.CreatePaymentResult, error)
}

// Handler обрабатывает запросы инициации STK-push.
type Handler struct {
	log      *slog.Logger
	payments Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, payments Service) *Handler {
	return &Handler{
		log:      log,
		payments: payments,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Инициация M-PESA STK-push
// @Description Нормализует телефон, собирает платёж и передаёт его платёжному шлюзу. Зачисление на баланс выполняет webhook шлюза.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body Request true "Параметры депозита"
// @Success 200 {object} Response "Ответ шлюза либо описание ошибки"
// @Router /api/payment/mpesa-stk [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.mpesastk"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body, treating as empty", sl.Err(err))
	}

	if err := h.validate.Struct(req); err != nil {
		metrics.PaymentsInitiated.WithLabelValues("validation_error").Inc()
		render.JSON(w, r, Response{Success: false, Error: "Phone and amount are required"})
		return
	}

	result, err := h.payments.InitiateSTK(r.Context(), paymentservice.STKRequest{
		Phone:    req.Phone,
		Amount:   req.Amount,
		Email:    req.Email,
		Metadata: req.Metadata,
		Customer: req.Customer,
	})

	var gatewayErr *paymentprovider.GatewayError
	switch {
	case errors.Is(err, paymentservice.ErrMissingPhoneOrAmount):
		metrics.PaymentsInitiated.WithLabelValues("validation_error").Inc()
		render.JSON(w, r, Response{Success: false, Error: "Phone and amount are required"})
	case errors.As(err, &gatewayErr):
		metrics.PaymentsInitiated.WithLabelValues("gateway_error").Inc()
		log.Error("gateway rejected payment", sl.Err(err))
		render.JSON(w, r, Response{
			Success: false,
			Error:   gatewayErr.Error(),
			Details: gatewayErr.Details,
		})
	case err != nil:
		metrics.PaymentsInitiated.WithLabelValues("network_error").Inc()
		log.Error("failed to reach gateway", sl.Err(err))
		render.JSON(w, r, Response{Success: false, Error: err.Error()})
	default:
		metrics.PaymentsInitiated.WithLabelValues("ok").Inc()
		log.Info("stk push initiated", slog.Int("gateway_status", result.Status))
		render.JSON(w, r, Response{
			Success: true,
			Result:  result.Body,
			Status:  result.Status,
		})
	}
}
