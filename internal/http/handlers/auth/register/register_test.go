package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

func (m *AuthServiceMock) Register(ctx context.Context, p authservice.RegisterParams) (string, *models.User, error) {
	args := m.Called(ctx, p)
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

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, authMock)

	validRequest := Request{
		Username: "alice",
		Password: "pw123",
		Name:     "Alice A",
		Email:    "alice@example.com",
	}

	tests := []struct {
		name        string
		requestBody interface{}
		mockToken   string
		mockUser    *models.User
		mockErr     error
		withMock    bool
		wantSuccess bool
		wantError   string
	}{
		{
			name:        "valid registration",
			requestBody: validRequest,
			mockToken:   "tok123",
			mockUser:    &models.User{Username: "alice", Name: "Alice A"},
			withMock:    true,
			wantSuccess: true,
		},
		{
			name:        "invalid json body falls through to validation",
			requestBody: "not a json",
			wantError:   "Username, password, name and email are required",
		},
		{
			name:        "missing name",
			requestBody: Request{Username: "alice", Password: "pw", Email: "a@b.c"},
			wantError:   "Username, password, name and email are required",
		},
		{
			name:        "username taken",
			requestBody: validRequest,
			mockErr:     authservice.ErrUserExists,
			withMock:    true,
			wantError:   "User already exists",
		},
		{
			name:        "email taken",
			requestBody: validRequest,
			mockErr:     authservice.ErrEmailTaken,
			withMock:    true,
			wantError:   "Email already registered",
		},
		{
			name:        "storage failure",
			requestBody: validRequest,
			mockErr:     errors.New("disk full"),
			withMock:    true,
			wantError:   "Registration failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			if tt.withMock {
				authMock.On("Register", mock.Anything, mock.Anything).
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

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			// исход всегда приходит со статусом 200
			assert.Equal(t, http.StatusOK, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
				assert.Nil(t, got["success"])
			} else {
				assert.Equal(t, true, got["success"])
				assert.Equal(t, "tok123", got["token"])
				user, ok := got["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "alice", user["username"])
				assert.Equal(t, "Alice A", user["name"])
			}

			authMock.AssertExpectations(t)
		})
	}
}

func TestRegisterHandler_TrimsWhitespace(t *testing.T) {
	authMock := new(AuthServiceMock)
	handler := New(newNoopLogger(), authMock)

	authMock.On("Register", mock.Anything, mock.MatchedBy(func(p authservice.RegisterParams) bool {
		return p.Username == "alice" && p.Name == "Alice" && p.Email == "alice@example.com"
	})).Return("tok", &models.User{Username: "alice", Name: "Alice"}, nil).Once()

	body := []byte(`{"username":" alice ","password":"pw","name":" Alice ","email":" alice@example.com "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	authMock.AssertExpectations(t)
}
