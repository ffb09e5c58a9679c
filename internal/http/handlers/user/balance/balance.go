// Package balance реализует чтение баланса счёта пользователя.
package balance

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/preocrypto/trading-backend/internal/http/response"
	"github.com/preocrypto/trading-backend/internal/lib/sl"
	authservice "github.com/preocrypto/trading-backend/internal/services/auth"
)

// Response — баланс запрошенного счёта.
type Response struct {
	Balance float64 `json:"balance"`
}

// Service описывает интерфейс чтения баланса.
type Service interface {
	Balance(ctx context.Context, username, account string) (float64, error)
}

// Handler обрабатывает запросы баланса.
type Handler struct {
	log  *slog.Logger
	auth Service
}

// New создаёт Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{log: log, auth: auth}
}

// ServeHTTP godoc
// @Summary Баланс счёта пользователя
// @Tags User
// @Produce json
// @Param username path string true "Имя пользователя"
// @Param account query string false "Счёт: demo (по умолчанию) или real"
// @Success 200 {object} Response "Баланс"
// @Router /api/user/{username}/balance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.balance"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	account := r.URL.Query().Get("account")

	balance, err := h.auth.Balance(r.Context(), username, account)
	if err != nil {
		if !errors.Is(err, authservice.ErrUserNotFound) {
			log.Error("failed to read balance", sl.Err(err))
		}
		render.JSON(w, r, response.Err("User not found"))
		return
	}

	render.JSON(w, r, Response{Balance: balance})
}
