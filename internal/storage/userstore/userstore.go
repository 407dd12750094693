// Package userstore реализует хранилище пользователей поверх одного
// JSON-документа вида username → запись пользователя.
//
// Проверки уникальности и сама мутация выполняются внутри одного
// вызова Update, поэтому между проверкой и записью никто не успевает
// изменить документ.
package userstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clawcat502/library/internal/models"
	"github.com/clawcat502/library/internal/storage/jsonstore"
)

// Ошибки хранилища пользователей, ожидаемые бизнес-логикой.
var (
	// ErrUserNotFound — пользователь с таким username не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken — username уже занят другим пользователем.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken — email уже занят другим пользователем.
	ErrEmailTaken = errors.New("email already taken")
)

// Users — документ хранилища: отображение username → пользователь.
type Users = map[string]*models.User

// Store — хранилище пользователей, привязанное к одному файлу.
type Store struct {
	docs *jsonstore.Store[Users]
	log  *slog.Logger
}

// New создает хранилище и гарантирует существование файла документа.
func New(path string, log *slog.Logger) (*Store, error) {
	const op = "userstore.New"
	docs := jsonstore.New[Users](path, log)
	if err := docs.Ensure(Users{}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{docs: docs, log: log}, nil
}

// Get возвращает пользователя по username или ErrUserNotFound.
func (s *Store) Get(_ context.Context, username string) (*models.User, error) {
	users := s.docs.Load(Users{})
	user, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	user.EnsureDefaults()
	return user, nil
}

// All возвращает все записи пользователей.
func (s *Store) All(_ context.Context) (Users, error) {
	users := s.docs.Load(Users{})
	for _, u := range users {
		u.EnsureDefaults()
	}
	return users, nil
}

// Update выполняет мутацию всего документа под блокировкой хранилища.
// fn получает актуальное отображение пользователей и меняет его на месте;
// ошибка из fn отменяет запись.
func (s *Store) Update(_ context.Context, fn func(users Users) error) error {
	return s.docs.Update(Users{}, func(users Users) (Users, error) {
		for _, u := range users {
			u.EnsureDefaults()
		}
		if err := fn(users); err != nil {
			return users, err
		}
		return users, nil
	})
}

// SeedAdmin создает учётную запись администратора, если документ пуст.
// Вызывается один раз при старте приложения.
func (s *Store) SeedAdmin(ctx context.Context, username, passwordHash, email, fullName, grade string) error {
	const op = "userstore.SeedAdmin"
	err := s.Update(ctx, func(users Users) error {
		if len(users) > 0 {
			return nil
		}
		users[username] = models.NewUser(email, passwordHash, fullName, grade, time.Now())
		s.log.Info("seeded default admin account", slog.String("username", username))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
