package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawcat502/library/internal/lib/jwt"
	"github.com/clawcat502/library/internal/storage/userstore"
)

func newTestAuthService(t *testing.T) (*AuthService, *userstore.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	users, err := userstore.New(filepath.Join(t.TempDir(), "users.json"), log)
	require.NoError(t, err)

	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	return NewAuthService(users, maker, log), users
}

func testRequest() RegisterRequest {
	return RegisterRequest{
		Username: "nik",
		Email:    "nik@school.ru",
		Password: "password123",
		FullName: "Николай Смирнов",
		Grade:    "9А",
	}
}

func TestRegister(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, testRequest())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Токен сразу пригоден для открытия сессии.
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "nik", claims.Username)
	assert.Equal(t, "Николай Смирнов", claims.FullName)
	assert.Equal(t, "9А", claims.Grade)

	// Пароль хранится только в виде хэша.
	user, err := users.Get(ctx, "nik")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, user.UUID)
	assert.Empty(t, user.ReadingBooks)
	assert.Empty(t, user.Favorites)
}

func TestRegister_Conflicts(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, testRequest())
	require.NoError(t, err)

	t.Run("занятый username", func(t *testing.T) {
		req := testRequest()
		req.Email = "another@school.ru"
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, userstore.ErrUsernameTaken)
	})

	t.Run("занятый email", func(t *testing.T) {
		req := testRequest()
		req.Username = "another"
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, userstore.ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, testRequest())
	require.NoError(t, err)

	t.Run("успешный вход", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "nik", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "nik@school.ru", user.Email)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nik", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("несуществующий пользователь", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken_Invalid(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
