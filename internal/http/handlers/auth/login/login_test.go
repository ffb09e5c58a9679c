package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/preocrypto/trading-backend/internal/models"
	authservice "github.com/preocrypto/trading-backend/internal/services/auth"
)

// Мок сервиса учётных записей
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	args := m.Called(ctx, identifier, password)
	var user *models.User
	if args.Get(1) != nil {
		user = args.Get(1).(*models.User)
	}
	return args.String(0), user, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	handler := New(newNoopLogger(), authMock)

	tests := []struct {
		name        string
		requestBody interface{}
		mockToken   string
		mockUser    *models.User
		mockErr     error
		withMock    bool
		wantError   string
	}{
		{
			name:        "valid login",
			requestBody: Request{Username: "alice", Password: "pw123"},
			mockToken:   "tok123",
			mockUser:    &models.User{Username: "alice", Name: "Alice", Email: "alice@example.com", IsAdmin: true},
			withMock:    true,
		},
		{
			name:        "missing password",
			requestBody: Request{Username: "alice"},
			wantError:   "username and password required",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantError:   "username and password required",
		},
		{
			name:        "wrong credentials",
			requestBody: Request{Username: "alice", Password: "wrong"},
			mockErr:     authservice.ErrInvalidCredentials,
			withMock:    true,
			wantError:   "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			if tt.withMock {
				authMock.On("Login", mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockToken, tt.mockUser, tt.mockErr).Once()
			}

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, true, got["success"])
				assert.Equal(t, "tok123", got["token"])
				user, ok := got["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "alice", user["username"])
				assert.Equal(t, "alice@example.com", user["email"])
				assert.Equal(t, true, user["isAdmin"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
