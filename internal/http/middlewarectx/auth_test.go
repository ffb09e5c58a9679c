package middlewarectx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок проверки токена
type ValidatorMock struct {
	mock.Mock
}

func (m *ValidatorMock) ValidateToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWT(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		mockUser   string
		mockErr    error
		withMock   bool
		wantStatus int
		wantError  string
		wantNext   bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer tok123",
			mockUser:   "alice",
			withMock:   true,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantError:  "No token provided",
		},
		{
			name:       "not a bearer scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantError:  "No token provided",
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantError:  "No token provided",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer garbage",
			mockErr:    assert.AnError,
			withMock:   true,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validatorMock := new(ValidatorMock)
			if tt.withMock {
				validatorMock.On("ValidateToken", mock.Anything, mock.Anything).
					Return(tt.mockUser, tt.mockErr).Once()
			}

			nextCalled := false
			var gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUser, _ = Username(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			JWT(validatorMock, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				assert.Equal(t, tt.mockUser, gotUser)
			}
			if tt.wantError != "" {
				var got map[string]any
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantError, got["error"])
			}

			validatorMock.AssertExpectations(t)
		})
	}
}

func TestUsername_MissingFromContext(t *testing.T) {
	_, ok := Username(context.Background())
	assert.False(t, ok)
}
