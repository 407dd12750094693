package togglereading

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clawcat502/library/internal/catalog"
	"github.com/clawcat502/library/internal/http/middlewarectx"
	"github.com/clawcat502/library/internal/models"
	libservice "github.com/clawcat502/library/internal/services/library"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ToggleReading(ctx context.Context, username string, bookID int) (libservice.ReadingEvent, models.Book, error) {
	args := m.Called(ctx, username, bookID)
	return args.Get(0).(libservice.ReadingEvent), args.Get(1).(models.Book), args.Error(2)
}

func newRequest(t *testing.T, id, username string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/library/reading/"+id, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if username != "" {
		ctx = context.WithValue(ctx, middlewarectx.User, username)
	}
	return req.WithContext(ctx)
}

func TestToggleReadingHandler(t *testing.T) {
	book := models.Book{ID: 5, Title: "Капитанская дочка", Author: "Александр Пушкин", Available: true}

	tests := []struct {
		name       string
		id         string
		username   string
		mockSetup  func(m *mockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:     "начало чтения",
			id:       "5",
			username: "nik",
			mockSetup: func(m *mockService) {
				m.On("ToggleReading", mock.Anything, "nik", 5).
					Return(libservice.ReadingStarted, book, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"reading"`,
		},
		{
			name:     "завершение чтения",
			id:       "5",
			username: "nik",
			mockSetup: func(m *mockService) {
				m.On("ToggleReading", mock.Anything, "nik", 5).
					Return(libservice.ReadingFinished, book, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"finished"`,
		},
		{
			name:     "книга не найдена",
			id:       "999",
			username: "nik",
			mockSetup: func(m *mockService) {
				m.On("ToggleReading", mock.Anything, "nik", 999).
					Return(libservice.ReadingEvent(0), models.Book{}, catalog.ErrBookNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "некорректный идентификатор",
			id:         "abc",
			username:   "nik",
			mockSetup:  func(_ *mockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "без сессии",
			id:         "5",
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

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, newRequest(t, tt.id, tt.username))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
			if tt.wantStatus == http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				data := resp["data"].(map[string]any)
				gotBook := data["book"].(map[string]any)
				assert.Equal(t, "Капитанская дочка", gotBook["title"])
			}

			svc.AssertExpectations(t)
		})
	}
}
