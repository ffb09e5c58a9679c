// Package login реализует HTTP-обработчик входа пользователей. Идентификатором
// может быть имя пользователя или email; встроенные демо-аккаунты доступны
// без регистрации.
package login

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
	"github.com/preocrypto/trading-backend/internal/models"
	authservice "github.com/preocrypto/trading-backend/internal/services/auth"
)

// Request — учётные данные для входа.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response — успешный ответ с токеном и карточкой пользователя.
type Response struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

// UserView — карточка пользователя в ответе входа.
type UserView struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, identifier, password string) (string, *models.User, error)
}

// Handler обрабатывает запросы входа.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New создаёт Handler с указанными логгером и сервисом учётных записей.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Аутентифицирует по имени пользователя или email и возвращает сессионный токен. Запись о выдаче токена добавляется в журнал.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учётные данные"
// @Success 200 {object} Response "Успешный вход"
// @Router /api/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body, treating as empty", sl.Err(err))
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.JSON(w, r, response.Err("username and password required"))
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Error("login failed", sl.Err(err))
		}
		render.JSON(w, r, response.Err("Invalid credentials"))
		return
	}

	log.Info("login success", slog.String("username", user.Username))
	render.JSON(w, r, Response{
		Success: true,
		Token:   token,
		User: UserView{
			Username: user.Username,
			Name:     user.Name,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
		},
	})
}
