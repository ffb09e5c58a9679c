// Package main PreoCrypto Trading Backend API
//
// @title           PreoCrypto Trading Backend API
// @version         1.0
// @description     API демо-площадки торговли криптовалютой: регистрация, сессии, депозиты через M-PESA

// @contact.name   API Support
// @contact.email  support@preocrypto.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tradingbackend "github.com/preocrypto/trading-backend/internal/app/tradingbackend"
	"github.com/preocrypto/trading-backend/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting trading-backend", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := tradingbackend.New(cfg, logger)

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("trading-backend stopped gracefully")
}
