package clearhistory

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
	libservice "github.com/clawcat502/library/internal/services/library"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ClearHistory(ctx context.Context, username, confirmation string) error {
	args := m.Called(ctx, username, confirmation)
	return args.Error(0)
}

func TestClearHistoryHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		username   string
		mockSetup  func(m *mockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:     "дословная фраза очищает историю",
			body:     `{"confirmation": "ОЧИСТИТЬ ИСТОРИЮ"}`,
			username: "nik",
			mockSetup: func(m *mockService) {
				m.On("ClearHistory", mock.Anything, "nik", "ОЧИСТИТЬ ИСТОРИЮ").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "reading history cleared",
		},
		{
			name:     "неверная фраза",
			body:     `{"confirmation": "очистить историю"}`,
			username: "nik",
			mockSetup: func(m *mockService) {
				m.On("ClearHistory", mock.Anything, "nik", "очистить историю").
					Return(libservice.ErrInvalidConfirmation)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "history was not cleared",
		},
		{
			name:       "пустая фраза не проходит валидацию",
			body:       `{"confirmation": ""}`,
			username:   "nik",
			mockSetup:  func(_ *mockService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "без сессии",
			body:       `{"confirmation": "ОЧИСТИТЬ ИСТОРИЮ"}`,
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

			req := httptest.NewRequest(http.MethodPost, "/api/v1/library/history/clear",
				bytes.NewBufferString(tt.body))
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
