// Package services содержит логику регистрации, входа и проверки сессии.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clawcat502/library/internal/lib/jwt"
	"github.com/clawcat502/library/internal/lib/password"
	"github.com/clawcat502/library/internal/models"
	"github.com/clawcat502/library/internal/storage/userstore"
)

// ErrInvalidCredentials — неверное имя пользователя или пароль.
// Одинаков для обоих случаев, чтобы не раскрывать, какое поле неверно.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// Get возвращает пользователя по username.
	Get(ctx context.Context, username string) (*models.User, error)
	// Update выполняет мутацию документа пользователей под блокировкой.
	Update(ctx context.Context, fn func(users userstore.Users) error) error
}

// RegisterRequest — данные кандидата на регистрацию.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	FullName string
	Grade    string
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с пустыми коллекциями и
// bcrypt-хэшем пароля, затем открывает сессию. Возвращает токен сессии.
//
// Занятые username и email отклоняются ошибками userstore.ErrUsernameTaken
// и userstore.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}

	err = s.users.Update(ctx, func(users userstore.Users) error {
		if _, ok := users[req.Username]; ok {
			return userstore.ErrUsernameTaken
		}
		for _, other := range users {
			if other.Email == req.Email {
				return userstore.ErrEmailTaken
			}
		}
		user := models.NewUser(req.Email, hashed, req.FullName, req.Grade, time.Now())
		user.UUID = uuid.NewString()
		users[req.Username] = user
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info("registered new user", slog.String("username", req.Username))
	return s.jwtMaker.GenerateToken(req.Username, req.FullName, req.Grade)
}

// Login проверяет пароль пользователя и открывает сессию.
// Возвращает токен и запись пользователя.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(username, user.FullName, user.Grade)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает данные сессии.
func (s *AuthService) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(tokenStr)
}

// ParseToken реализует интерфейс middlewarectx.TokenParser поверх ValidateToken.
func (s *AuthService) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	return s.ValidateToken(tokenStr)
}
