// Package services содержит бизнес-логику читательского кабинета:
// избранное, статус чтения, историю, профиль и настройки уведомлений.
//
// Каждая операция перечитывает документ пользователей из хранилища,
// меняет запись одного пользователя и записывает документ обратно
// под блокировкой хранилища.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/clawcat502/library/internal/catalog"
	"github.com/clawcat502/library/internal/models"
	"github.com/clawcat502/library/internal/storage/userstore"
)

// Фразы подтверждения разрушительных операций. Пользователь должен
// ввести фразу дословно.
const (
	// ClearHistoryConfirmation подтверждает очистку истории чтения.
	ClearHistoryConfirmation = "ОЧИСТИТЬ ИСТОРИЮ"
	// DeleteAccountConfirmation подтверждает удаление аккаунта.
	DeleteAccountConfirmation = "УДАЛИТЬ АККАУНТ"
)

// ErrInvalidConfirmation — фраза подтверждения не совпала; мутация не выполнена.
var ErrInvalidConfirmation = errors.New("invalid confirmation phrase")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// Get возвращает пользователя по username.
	Get(ctx context.Context, username string) (*models.User, error)
	// Update выполняет мутацию документа пользователей под блокировкой.
	Update(ctx context.Context, fn func(users userstore.Users) error) error
}

// Catalog описывает доступ к каталогу книг, нужный кабинету.
type Catalog interface {
	// FindByID возвращает книгу по идентификатору.
	FindByID(id int) (models.Book, bool)
}

// LibraryService реализует операции читательского кабинета.
type LibraryService struct {
	users   UserRepository
	catalog Catalog
	log     *slog.Logger
	now     func() time.Time
}

// NewLibraryService создает новый экземпляр LibraryService.
func NewLibraryService(users UserRepository, catalog Catalog, log *slog.Logger) *LibraryService {
	return &LibraryService{
		users:   users,
		catalog: catalog,
		log:     log,
		now:     time.Now,
	}
}

// AddFavorite добавляет книгу в избранное. Возвращает false, если книга
// уже была в избранном (запись не меняется).
func (s *LibraryService) AddFavorite(ctx context.Context, username string, bookID int) (bool, error) {
	added := false
	err := s.users.Update(ctx, func(users userstore.Users) error {
		u, ok := users[username]
		if !ok {
			return userstore.ErrUserNotFound
		}
		if containsInt(u.Favorites, bookID) {
			return nil
		}
		u.Favorites = append(u.Favorites, bookID)
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if added {
		s.log.Info("added book to favorites",
			slog.String("username", username), slog.Int("book_id", bookID))
	}
	return added, nil
}

// RemoveFavorite удаляет книгу из избранного. Возвращает false, если
// книги в избранном не было.
func (s *LibraryService) RemoveFavorite(ctx context.Context, username string, bookID int) (bool, error) {
	removed := false
	err := s.users.Update(ctx, func(users userstore.Users) error {
		u, ok := users[username]
		if !ok {
			return userstore.ErrUserNotFound
		}
		if !containsInt(u.Favorites, bookID) {
			return nil
		}
		u.Favorites = removeInt(u.Favorites, bookID)
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// ToggleReading переключает статус чтения книги. Книга должна
// существовать в каталоге. Возвращает событие перехода и запись книги.
func (s *LibraryService) ToggleReading(ctx context.Context, username string, bookID int) (ReadingEvent, models.Book, error) {
	book, ok := s.catalog.FindByID(bookID)
	if !ok {
		return 0, models.Book{}, catalog.ErrBookNotFound
	}

	var event ReadingEvent
	err := s.users.Update(ctx, func(users userstore.Users) error {
		u, ok := users[username]
		if !ok {
			return userstore.ErrUserNotFound
		}
		event = applyReadingToggle(u, bookID, s.now())
		return nil
	})
	if err != nil {
		return 0, models.Book{}, err
	}

	s.log.Info("toggled reading status",
		slog.String("username", username),
		slog.Int("book_id", bookID),
		slog.Bool("finished", event == ReadingFinished))
	return event, book, nil
}

// ClearHistory очищает историю чтения после дословного подтверждения.
func (s *LibraryService) ClearHistory(ctx context.Context, username, confirmation string) error {
	if confirmation != ClearHistoryConfirmation {
		return ErrInvalidConfirmation
	}
	return s.users.Update(ctx, func(users userstore.Users) error {
		u, ok := users[username]
		if !ok {
			return userstore.ErrUserNotFound
		}
		u.ReadingHistory = []int{}
		u.HistoryDates = map[string]string{}
		return nil
	})
}

// UpdateProfile обновляет полное имя и email. Непустое имя применяется
// безусловно; email — только если он не занят другим пользователем.
func (s *LibraryService) UpdateProfile(ctx context.Context, username, fullName, email string) error {
	return s.users.Update(ctx, func(users userstore.Users) error {
		u, ok := users[username]
		if !ok {
			return userstore.ErrUserNotFound
		}
		if email != "" && email != u.Email {
			for name, other := range users {
				if name != username && other.Email == email {
					return userstore.ErrEmailTaken
				}
			}
		}
		if fullName != "" {
			u.FullName = fullName
		}
		if email != "" {
			u.Email = email
		}
		return nil
	})
}

// UpdateNotifications заменяет настройки уведомлений целиком.
func (s *LibraryService) UpdateNotifications(ctx context.Context, username string, n models.Notifications) error {
	return s.users.Update(ctx, func(users userstore.Users) error {
		u, ok := users[username]
		if !ok {
			return userstore.ErrUserNotFound
		}
		u.Notifications = n
		return nil
	})
}

// DeleteAccount удаляет запись пользователя целиком после дословного
// подтверждения. Инвалидация сессии — забота границы идентичности.
func (s *LibraryService) DeleteAccount(ctx context.Context, username, confirmation string) error {
	if confirmation != DeleteAccountConfirmation {
		return ErrInvalidConfirmation
	}
	err := s.users.Update(ctx, func(users userstore.Users) error {
		if _, ok := users[username]; !ok {
			return userstore.ErrUserNotFound
		}
		delete(users, username)
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("deleted user account", slog.String("username", username))
	return nil
}

// Profile собирает проекцию личного кабинета. Книги, отсутствующие в
// каталоге, пропускаются; для записей истории без даты подставляется
// дата регистрации.
func (s *LibraryService) Profile(ctx context.Context, username string) (*models.Profile, error) {
	u, err := s.users.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	reading := []models.Book{}
	for _, id := range u.ReadingBooks {
		if book, ok := s.catalog.FindByID(id); ok {
			reading = append(reading, book)
		}
	}

	history := []models.HistoryEntry{}
	for _, id := range u.ReadingHistory {
		book, ok := s.catalog.FindByID(id)
		if !ok {
			continue
		}
		date, ok := u.HistoryDates[strconv.Itoa(id)]
		if !ok {
			date = u.RegisteredAt
		}
		history = append(history, models.HistoryEntry{Book: book, Date: date})
	}

	favorites := []models.Book{}
	for _, id := range u.Favorites {
		if book, ok := s.catalog.FindByID(id); ok {
			favorites = append(favorites, book)
		}
	}

	return &models.Profile{
		Email:         u.Email,
		FullName:      u.FullName,
		Grade:         u.Grade,
		RegisteredAt:  u.RegisteredAt,
		Notifications: u.Notifications,
		Reading:       reading,
		ReadingDates:  u.ReadingDates,
		History:       history,
		Favorites:     favorites,
	}, nil
}
