// Package reset реализует смену пароля по коду восстановления.
package reset

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/preocrypto/trading-backend/internal/http/response"
	"github.com/preocrypto/trading-backend/internal/lib/sl"
	authservice "github.com/preocrypto/trading-backend/internal/services/auth"
)

// Request — идентификатор, код восстановления и новый пароль.
type Request struct {
	Identifier  string `json:"identifier" validate:"required"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Service описывает интерфейс смены пароля по коду.
type Service interface {
	ResetPassword(ctx context.Context, identifier, code, newPassword string) error
}

// Handler обрабатывает запросы смены пароля.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена пароля по коду восстановления
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Идентификатор, код и новый пароль"
// @Success 200 {object} response.OK "Пароль заменён"
// @Router /api/auth/reset [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.reset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body, treating as empty", sl.Err(err))
	}
	req.Identifier = strings.TrimSpace(req.Identifier)

	if err := h.validate.Struct(req); err != nil {
		render.JSON(w, r, response.Err("Identifier, code and newPassword required"))
		return
	}

	err := h.auth.ResetPassword(r.Context(), req.Identifier, req.Code, req.NewPassword)
	switch {
	case errors.Is(err, authservice.ErrUserNotFound):
		render.JSON(w, r, response.Err("User not found"))
	case errors.Is(err, authservice.ErrNoResetRequest):
		render.JSON(w, r, response.Err("No reset request found"))
	case errors.Is(err, authservice.ErrInvalidResetCode):
		render.JSON(w, r, response.Err("Invalid code"))
	case errors.Is(err, authservice.ErrResetCodeExpired):
		render.JSON(w, r, response.Err("Code expired"))
	case err != nil:
		log.Error("failed to reset password", sl.Err(err))
		render.JSON(w, r, response.Err("Reset failed"))
	default:
		render.JSON(w, r, response.Success())
	}
}
