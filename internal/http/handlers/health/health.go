// Package health отдаёт состояние сервиса.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// Response — ответ проверки состояния.
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// New godoc
// @Summary Проверка состояния сервиса
// @Tags Service
// @Produce json
// @Success 200 {object} Response
// @Router /api/health [get]
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, Response{Status: "ok", Timestamp: time.Now().UTC()})
	}
}
