// Package profile реализует чтение и обновление профиля аутентифицированного
// пользователя.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/preocrypto/trading-backend/internal/http/middlewarectx"
	"github.com/preocrypto/trading-backend/internal/http/response"
	"github.com/preocrypto/trading-backend/internal/lib/sl"
	"github.com/preocrypto/trading-backend/internal/models"
	authservice "github.com/preocrypto/trading-backend/internal/services/auth"
)

// View — профиль пользователя без пароля и балансов.
type View struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	IsAdmin   bool      `json:"isAdmin"`
}

// UpdateRequest — необязательные поля обновления профиля.
type UpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateResponse — подтверждение обновления с актуальным профилем.
type UpdateResponse struct {
	Success bool `json:"success"`
	User    View `json:"user"`
}

// Service описывает интерфейс работы с профилем.
type Service interface {
	Profile(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, username string, upd authservice.ProfileUpdate) (*models.User, error)
}

// Handler обрабатывает запросы профиля.
type Handler struct {
	log  *slog.Logger
	auth Service
}

// New создаёт Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{log: log, auth: auth}
}

// Get godoc
// @Summary Профиль текущего пользователя
// @Tags User
// @Produce json
// @Success 200 {object} View "Профиль"
// @Router /api/user/profile [get]
// @Security BearerAuth
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := middlewarectx.Username(r.Context())
	if !ok {
		log.Error("username not found in context")
		render.JSON(w, r, response.Err("User not found"))
		return
	}

	user, err := h.auth.Profile(r.Context(), username)
	if err != nil {
		if !errors.Is(err, authservice.ErrUserNotFound) {
			log.Error("failed to load profile", sl.Err(err))
		}
		render.JSON(w, r, response.Err("User not found"))
		return
	}

	render.JSON(w, r, view(user))
}

// Update godoc
// @Summary Обновление профиля текущего пользователя
// @Tags User
// @Accept json
// @Produce json
// @Param request body UpdateRequest true "Изменяемые поля"
// @Success 200 {object} UpdateResponse "Обновлённый профиль"
// @Router /api/user/profile [put]
// @Security BearerAuth
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := middlewarectx.Username(r.Context())
	if !ok {
		log.Error("username not found in context")
		render.JSON(w, r, response.Err("User not found"))
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request body, treating as empty", sl.Err(err))
	}

	user, err := h.auth.UpdateProfile(r.Context(), username, authservice.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		render.JSON(w, r, response.Err("Update failed"))
		return
	}

	render.JSON(w, r, UpdateResponse{Success: true, User: view(user)})
}

func view(u *models.User) View {
	return View{
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		IsAdmin:   u.IsAdmin,
	}
}
