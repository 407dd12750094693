package update

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clawcat502/library/internal/http/middlewarectx"
	"github.com/clawcat502/library/internal/storage/userstore"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateProfile(ctx context.Context, username, fullName, email string) error {
	args := m.Called(ctx, username, fullName, email)
	return args.Error(0)
}

func TestUpdateProfileHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		username   string
		mockSetup  func(m *mockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:     "успешное обновление",
			body:     `{"full_name": "Николай Петров", "email": "petrov@school.ru"}`,
			username: "nik",
			mockSetup: func(m *mockService) {
				m.On("UpdateProfile", mock.Anything, "nik", "Николай Петров", "petrov@school.ru").
					Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "profile updated",
		},
		{
			name:     "занятый email",
			body:     `{"email": "other@school.ru"}`,
			username: "nik",
			mockSetup: func(m *mockService) {
				m.On("UpdateProfile", mock.Anything, "nik", "", "other@school.ru").
					Return(userstore.ErrEmailTaken)
			},
			wantStatus: http.StatusConflict,
			wantBody:   "already used by another user",
		},
		{
			name:       "некорректный email не проходит валидацию",
			body:       `{"email": "not-an-email"}`,
			username:   "nik",
			mockSetup:  func(_ *mockService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "без сессии",
			body:       `{"full_name": "Николай Петров"}`,
			username:   "",
			mockSetup:  func(_ *mockService) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.mockSetup(svc)

			log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
			handler := New(log, svc)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", bytes.NewBufferString(tt.body))
			if tt.username != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, tt.username))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}

			svc.AssertExpectations(t)
		})
	}
}
