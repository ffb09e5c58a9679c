// Package deposit реализует учётное пополнение баланса пользователя.
package deposit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

// Request — параметры пополнения.
type Request struct {
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Method  string  `json:"method"`
	Account string  `json:"account"`
}

// Response содержит итоговый статус транзакции и новый баланс.
type Response struct {
	Success    bool    `json:"success"`
	Status     string  `json:"status"`
	NewBalance float64 `json:"newBalance"`
}

// Service описывает интерфейс бухгалтерии депозитов.
type Service interface {
	Deposit(ctx context.Context, username string, req paymentservice.DepositRequest) (*paymentservice.DepositResult, error)
}

// Handler обрабатывает запросы пополнения.
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
// @Summary Пополнение баланса
// @Description Регистрирует депозит; mpesa и криптометоды остаются в статусе pending до подтверждения, остальные зачисляются сразу.
// @Tags Payments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body Request true "Сумма и метод"
// @Success 200 {object} Response
// @Router /api/payment/deposit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.deposit"

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

	result, err := h.payments.Deposit(r.Context(), username, paymentservice.DepositRequest{
		Amount:  req.Amount,
		Method:  req.Method,
		Account: req.Account,
	})
	if err != nil {
		var minErr *paymentservice.BelowMinimumError
		if errors.As(err, &minErr) {
			render.JSON(w, r, response.Err(fmt.Sprintf("Minimum deposit is $%v", minErr.Min)))
			return
		}
		log.Error("failed to register deposit", sl.Err(err))
		render.JSON(w, r, response.Err("Deposit failed"))
		return
	}

	log.Info("deposit registered",
		slog.String("username", username),
		slog.String("status", result.Status),
	)

	render.JSON(w, r, Response{Success: true, Status: result.Status, NewBalance: result.NewBalance})
}
