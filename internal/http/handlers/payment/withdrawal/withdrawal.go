// Package withdrawal реализует заявки на вывод средств.
package withdrawal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/preocrypto/trading-backend/internal/http/middlewarectx"
	"github.com/preocrypto/trading-backend/internal/http/response"
	"github.com/preocrypto/trading-backend/internal/lib/sl"
	paymentservice "github.com/preocrypto/trading-backend/internal/services/payment"
)

// Request — параметры заявки на вывод. Details передаётся шлюзу как есть
// (реквизиты кошелька или счёта).
type Request struct {
	Amount  float64         `json:"amount" validate:"required,gt=0"`
	Method  string          `json:"method"`
	Details json.RawMessage `json:"details"`
	Account string          `json:"account"`
}

// Response — подтверждение приёма заявки.
type Response struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	NewBalance float64 `json:"newBalance"`
	Status     string  `json:"status"`
}

// Service описывает интерфейс бухгалтерии выводов.
type Service interface {
	Withdraw(ctx context.Context, username string, req paymentservice.WithdrawRequest) (*paymentservice.WithdrawResult, error)
}

// Handler обрабатывает заявки на вывод.
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
// @Summary Заявка на вывод средств
// @Description Списывает сумму с баланса и регистрирует заявку в статусе pending.
// @Tags Payments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body Request true "Сумма, метод и реквизиты"
// @Success 200 {object} Response
// @Router /api/payment/withdrawal [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.withdrawal"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := middlewarectx.Username(r.Context())
	if !ok {
		render.JSON(w, r, response.Err("No token provided"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body, treating as empty", sl.Err(err))
	}

	if err := h.validate.Struct(req); err != nil {
		render.JSON(w, r, response.Err("Amount is required"))
		return
	}

	result, err := h.payments.Withdraw(r.Context(), username, paymentservice.WithdrawRequest{
		Amount:  req.Amount,
		Method:  req.Method,
		Details: req.Details,
		Account: req.Account,
	})
	if err != nil {
		var minErr *paymentservice.BelowMinimumError
		switch {
		case errors.As(err, &minErr):
			render.JSON(w, r, response.Err("Minimum withdrawal is $30"))
		case errors.Is(err, paymentservice.ErrInsufficientBalance):
			render.JSON(w, r, response.Err("Insufficient balance"))
		default:
			log.Error("failed to register withdrawal", sl.Err(err))
			render.JSON(w, r, response.Err("Withdrawal failed"))
		}
		return
	}

	log.Info("withdrawal requested",
		slog.String("username", username),
		slog.Float64("amount", req.Amount),
	)

	render.JSON(w, r, Response{
		Success:    true,
		Message:    "Withdrawal request submitted",
		NewBalance: result.NewBalance,
		Status:     result.Status,
	})
}
