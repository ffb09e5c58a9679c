// Package tradingbackend собирает HTTP-приложение: хранилище, сервисы и
// маршруты, плюс жизненный цикл сервера.
package tradingbackend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/preocrypto/trading-backend/internal/config"
	"github.com/preocrypto/trading-backend/internal/lib/jwt"
	"github.com/preocrypto/trading-backend/internal/paymentprovider"
	authservice "github.com/preocrypto/trading-backend/internal/services/auth"
	paymentservice "github.com/preocrypto/trading-backend/internal/services/payment"
	"github.com/preocrypto/trading-backend/internal/storage/jsonfile"
)

type App struct {
	server *http.Server
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *App {
	store := jsonfile.New(cfg.StoragePath)

	tokens := jwt.NewMaker(cfg.JWTToken.Secret, cfg.JWTToken.TokenTTL)
	authService := authservice.New(store, tokens, logger)

	providerClient := paymentprovider.New(
		cfg.PayHero.APIURL,
		cfg.PayHero.BasicAuth,
		cfg.PayHero.SecretKey,
		cfg.PayHero.AccountID,
		cfg.PayHero.Timeout,
	)
	if !providerClient.Configured() {
		logger.Warn("payment gateway credentials are not set, stk push will fail")
	}
	paymentService := paymentservice.New(store, providerClient, cfg.PayHero.CallbackURL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, paymentService)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
