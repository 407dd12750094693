package register

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

	authservice "github.com/clawcat502/library/internal/services/auth"
	"github.com/clawcat502/library/internal/storage/userstore"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Register(ctx context.Context, req authservice.RegisterRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func validBody() map[string]string {
	return map[string]string{
		"username":         "nik",
		"email":            "nik@school.ru",
		"password":         "password123",
		"confirm_password": "password123",
		"full_name":        "Николай Смирнов",
		"grade":            "9А",
	}
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       func() map[string]string
		mockSetup  func(m *mockService)
		wantStatus int
		wantError  string
	}{
		{
			name: "успешная регистрация",
			body: validBody,
			mockSetup: func(m *mockService) {
				m.On("Register", mock.Anything, mock.MatchedBy(func(req authservice.RegisterRequest) bool {
					return req.Username == "nik" && req.Email == "nik@school.ru"
				})).Return("token123", nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "несовпадающие пароли",
			body: func() map[string]string {
				b := validBody()
				b["confirm_password"] = "different"
				return b
			},
			mockSetup:  func(_ *mockService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "passwords do not match",
		},
		{
			name: "занятое имя пользователя",
			body: validBody,
			mockSetup: func(m *mockService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return("", userstore.ErrUsernameTaken)
			},
			wantStatus: http.StatusConflict,
			wantError:  "username already taken",
		},
		{
			name: "занятый email",
			body: validBody,
			mockSetup: func(m *mockService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return("", userstore.ErrEmailTaken)
			},
			wantStatus: http.StatusConflict,
			wantError:  "email already taken",
		},
		{
			name: "некорректный email не проходит валидацию",
			body: func() map[string]string {
				b := validBody()
				b["email"] = "not-an-email"
				return b
			},
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

			body, err := json.Marshal(tt.body())
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/register", bytes.NewBuffer(body))
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
				assert.Equal(t, "nik", data["username"])
			}

			svc.AssertExpectations(t)
		})
	}
}
