package models

import "time"

// TimeLayout — формат временных меток в документах хранилища.
// Совпадает с форматом, в котором файлы писались исторически,
// поэтому старые users.json читаются без миграции.
const TimeLayout = "2006-01-02 15:04:05"

// Notifications хранит три независимых флага почтовых уведомлений.
// Семантика чекбоксов: отсутствующий флаг в запросе означает false.
type Notifications struct {
	NewBooks        bool `json:"new_books"`        // Уведомлять о новых книгах
	ReturnReminders bool `json:"return_reminders"` // Напоминать о возврате
	Recommendations bool `json:"recommendations"`  // Присылать рекомендации
}

// DefaultNotifications возвращает настройки уведомлений нового пользователя.
func DefaultNotifications() Notifications {
	return Notifications{
		NewBooks:        true,
		ReturnReminders: true,
		Recommendations: false,
	}
}

// User представляет зарегистрированного читателя библиотеки.
//
// Ключом записи в документе пользователей служит username, поэтому
// самого поля username в структуре нет. Ключи reading_dates и
// history_dates — строковые идентификаторы книг.
type User struct {
	UUID           string            `json:"uuid,omitempty"`  // Уникальный идентификатор пользователя
	Email          string            `json:"email"`           // Электронная почта (уникальная)
	PasswordHash   string            `json:"password"`        // bcrypt-хэш пароля
	FullName       string            `json:"full_name"`       // Полное имя
	Grade          string            `json:"grade"`           // Класс ученика
	RegisteredAt   string            `json:"registered_at"`   // Дата регистрации
	ReadingBooks   []int             `json:"reading_books"`   // Книги, читаемые сейчас
	ReadingDates   map[string]string `json:"reading_dates"`   // Дата начала чтения по книге
	ReadingHistory []int             `json:"reading_history"` // Прочитанные книги
	HistoryDates   map[string]string `json:"history_dates"`   // Дата завершения чтения по книге
	Favorites      []int             `json:"favorites"`       // Избранные книги
	Notifications  Notifications     `json:"notifications"`   // Настройки уведомлений
}

// NewUser создает пользователя с пустыми коллекциями и настройками
// уведомлений по умолчанию.
func NewUser(email, passwordHash, fullName, grade string, now time.Time) *User {
	return &User{
		Email:          email,
		PasswordHash:   passwordHash,
		FullName:       fullName,
		Grade:          grade,
		RegisteredAt:   now.Format(TimeLayout),
		ReadingBooks:   []int{},
		ReadingDates:   map[string]string{},
		ReadingHistory: []int{},
		HistoryDates:   map[string]string{},
		Favorites:      []int{},
		Notifications:  DefaultNotifications(),
	}
}

// EnsureDefaults дозаполняет коллекции, отсутствующие в старых записях.
// Записи, созданные ранними версиями приложения, могли не иметь части полей.
func (u *User) EnsureDefaults() {
	if u.ReadingBooks == nil {
		u.ReadingBooks = []int{}
	}
	if u.ReadingDates == nil {
		u.ReadingDates = map[string]string{}
	}
	if u.ReadingHistory == nil {
		u.ReadingHistory = []int{}
	}
	if u.HistoryDates == nil {
		u.HistoryDates = map[string]string{}
	}
	if u.Favorites == nil {
		u.Favorites = []int{}
	}
}
