// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Тело запроса декодируется из JSON; нечитаемое тело трактуется как пустой
// объект, после чего срабатывает проверка обязательных полей — так вела себя
// старая площадка. Исход операции передаётся в теле ответа, статус всегда 200.
package register

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

// Request — входные данные регистрации.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Country  string `json:"country"`
}

// Response — успешный ответ с токеном и краткой карточкой пользователя.
type Response struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

// UserView — карточка пользователя в ответе регистрации.
type UserView struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, p authservice.RegisterParams) (string, *models.User, error)
}

// Handler обрабатывает запросы регистрации.
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
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись с демо-балансом 10000 и возвращает сессионный токен.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные новой учётной записи"
// @Success 200 {object} Response "Успешная регистрация"
// @Router /api/auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body, treating as empty", sl.Err(err))
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.JSON(w, r, response.Err("Username, password, name and email are required"))
		return
	}

	token, user, err := h.auth.Register(r.Context(), authservice.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Country:  req.Country,
	})
	switch {
	case errors.Is(err, authservice.ErrUserExists):
		log.Info("username taken", slog.String("username", req.Username))
		render.JSON(w, r, response.Err("User already exists"))
		return
	case errors.Is(err, authservice.ErrEmailTaken):
		log.Info("email taken", slog.String("email", req.Email))
		render.JSON(w, r, response.Err("Email already registered"))
		return
	case err != nil:
		log.Error("registration failed", sl.Err(err))
		render.JSON(w, r, response.Err("Registration failed"))
		return
	}

	render.JSON(w, r, Response{
		Success: true,
		Token:   token,
		User: UserView{
			Username: user.Username,
			Name:     user.Name,
		},
	})
}
