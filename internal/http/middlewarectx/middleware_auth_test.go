package middlewarectx

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtlib "github.com/clawcat502/library/internal/lib/jwt"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwtlib.NewJWTMaker("test-secret", time.Hour)

	var gotUsername, gotFullName, gotGrade string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername, _ = r.Context().Value(User).(string)
		gotFullName, _ = r.Context().Value(FullName).(string)
		gotGrade, _ = r.Context().Value(Grade).(string)
		w.WriteHeader(http.StatusOK)
	})
	handler := JWTMiddleware(maker, newTestLogger())(next)

	t.Run("без заголовка Authorization", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("с невалидным токеном", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("с валидным токеном данные сессии попадают в контекст", func(t *testing.T) {
		token, err := maker.GenerateToken("nik", "Николай Смирнов", "9А")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "nik", gotUsername)
		assert.Equal(t, "Николай Смирнов", gotFullName)
		assert.Equal(t, "9А", gotGrade)
	})
}

func TestAdminOnlyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	maker := jwtlib.NewJWTMaker("test-secret", time.Hour)
	handler := JWTMiddleware(maker, newTestLogger())(
		AdminOnlyMiddleware("admin", newTestLogger())(next))

	t.Run("обычный пользователь получает 403", func(t *testing.T) {
		token, err := maker.GenerateToken("nik", "Николай Смирнов", "9А")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/books/5/status", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("администратор проходит", func(t *testing.T) {
		token, err := maker.GenerateToken("admin", "Администратор", "11")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/books/5/status", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
