// Package tradingbackend предоставляет маршруты приложения.
package tradingbackend

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/preocrypto/trading-backend/internal/http/handlers/auth/forgot"
	"github.com/preocrypto/trading-backend/internal/http/handlers/auth/login"
	"github.com/preocrypto/trading-backend/internal/http/handlers/auth/register"
	"github.com/preocrypto/trading-backend/internal/http/handlers/auth/reset"
	"github.com/preocrypto/trading-backend/internal/http/handlers/health"
	"github.com/preocrypto/trading-backend/internal/http/handlers/payment/deposit"
	"github.com/preocrypto/trading-backend/internal/http/handlers/payment/mpesastk"
	"github.com/preocrypto/trading-backend/internal/http/handlers/payment/payherohook"
	"github.com/preocrypto/trading-backend/internal/http/handlers/payment/withdrawal"
	"github.com/preocrypto/trading-backend/internal/http/handlers/user/balance"
	"github.com/preocrypto/trading-backend/internal/http/handlers/user/profile"
	"github.com/preocrypto/trading-backend/internal/http/middlewarectx"
	"github.com/preocrypto/trading-backend/internal/http/response"
	authservice "github.com/preocrypto/trading-backend/internal/services/auth"
	paymentservice "github.com/preocrypto/trading-backend/internal/services/payment"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.Service, paymentService *paymentservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.CORS,
	)

	stkHandler := mpesastk.New(logger, paymentService)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/forgot", forgot.New(logger, authService).ServeHTTP)
		r.Post("/auth/reset", reset.New(logger, authService).ServeHTTP)
		r.Post("/payment/mpesa-stk", stkHandler.ServeHTTP)
		r.Get("/user/{username}/balance", balance.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New())

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWT(authService, logger))
			profileHandler := profile.New(logger, authService)
			r.Get("/user/profile", profileHandler.Get)
			r.Put("/user/profile", profileHandler.Update)
			r.Post("/payment/deposit", deposit.New(logger, paymentService).ServeHTTP)
			r.Post("/payment/withdrawal", withdrawal.New(logger, paymentService).ServeHTTP)
		})
	})

	// Алиас прежнего фронтенда, указывавшего на serverless-функцию
	r.Post("/.netlify/functions/create-payment", stkHandler.ServeHTTP)

	// Webhook endpoint (без аутентификации)
	r.Post("/webhook/payhero", payherohook.New(logger, paymentService).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Неизвестные пути отвечают статусом 200 с полем error, как и вся
	// легаси-поверхность API.
	notFound := func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, response.Err("Not found"))
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
}
