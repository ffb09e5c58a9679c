// Package forgot реализует запрос кода восстановления пароля. Код
// возвращается прямо в ответе: площадка демонстрационная, почтовой
// рассылки у неё нет.
package forgot

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/preocrypto/trading-backend/internal/http/response"
	"github.com/preocrypto/trading-backend/internal/lib/sl"
	"github.com/preocrypto/trading-backend/internal/models"
	authservice "github.com/preocrypto/trading-backend/internal/services/auth"
)

// Request — идентификатор учётной записи (имя пользователя или email).
type Request struct {
	Identifier string `json:"identifier" validate:"required"`
}

// Response — выданный код восстановления.
type Response struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service описывает интерфейс выпуска кодов восстановления.
type Service interface {
	CreateResetCode(ctx context.Context, identifier string) (*models.ResetCode, error)
}

// Handler обрабатывает запросы кода восстановления.
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
// @Summary Запрос кода восстановления пароля
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Имя пользователя или email"
// @Success 200 {object} Response "Код выдан"
// @Router /api/auth/forgot [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgot"

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
		render.JSON(w, r, response.Err("Identifier required"))
		return
	}

	code, err := h.auth.CreateResetCode(r.Context(), req.Identifier)
	if err != nil {
		if !errors.Is(err, authservice.ErrUserNotFound) {
			log.Error("failed to create reset code", sl.Err(err))
		}
		render.JSON(w, r, response.Err("User not found"))
		return
	}

	render.JSON(w, r, Response{
		Success:   true,
		Message:   "Reset code generated",
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
	})
}
