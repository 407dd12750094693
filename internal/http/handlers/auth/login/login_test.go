package login

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clawcat502/library/internal/models"
	authservice "github.com/clawcat502/library/internal/services/auth"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	args := m.Called(ctx, username, password)
	var user *models.User
	if u := args.Get(1); u != nil {
		user = u.(*models.User)
	}
	return args.String(0), user, args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(m *mockService)
		wantStatus int
		wantError  string
	}{
		{
			name: "успешная авторизация",
			body: `{"username": "nik", "password": "password123"}`,
			mockSetup: func(m *mockService) {
				m.On("Login", mock.Anything, "nik", "password123").
					Return("token123", &models.User{FullName: "Николай Смирнов", Grade: "9А"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "неверные учетные данные",
			body: `{"username": "nik", "password": "wrongpass"}`,
			mockSetup: func(m *mockService) {
				m.On("Login", mock.Anything, "nik", "wrongpass").
					Return("", nil, authservice.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid username or password",
		},
		{
			name:       "некорректный JSON",
			body:       `{not json`,
			mockSetup:  func(_ *mockService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "короткий пароль не проходит валидацию",
			body:       `{"username": "nik", "password": "123"}`,
			mockSetup:  func(_ *mockService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.mockSetup(svc)

			log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
			handler := New(log, svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			}
			if tt.wantStatus == http.StatusOK {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "token123", data["token"])
				assert.Equal(t, "Николай Смирнов", data["full_name"])
				assert.Equal(t, "9А", data["grade"])
			}

			svc.AssertExpectations(t)
		})
	}
}
