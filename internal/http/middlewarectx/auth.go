package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/preocrypto/trading-backend/internal/http/response"
	"github.com/preocrypto/trading-backend/internal/lib/sl"
)

type ctxKey string

// userKey — ключ контекста с именем аутентифицированного пользователя.
const userKey ctxKey = "username"

// TokenValidator описывает проверку сессионного токена.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// JWT возвращает middleware, проверяющее Bearer-токен в заголовке
// Authorization и кладущее имя пользователя в контекст запроса.
func JWT(validator TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWT"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				log.Error("missing bearer token")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Err("No token provided"))
				return
			}

			username, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Err("Invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
		})
	}
}

// WithUsername кладёт имя аутентифицированного пользователя в контекст.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// Username извлекает имя аутентифицированного пользователя из контекста.
func Username(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(userKey).(string)
	return username, ok && username != ""
}
