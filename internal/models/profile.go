package models

// HistoryEntry — прочитанная книга вместе с датой завершения чтения.
// Для старых записей без даты подставляется дата регистрации пользователя.
type HistoryEntry struct {
	Book Book   `json:"book"`
	Date string `json:"date"`
}

// Profile — проекция личного кабинета: данные учётной записи и
// читательские коллекции, развернутые в записи каталога. Книги,
// отсутствующие в каталоге, в проекцию не попадают.
type Profile struct {
	Email         string            `json:"email"`
	FullName      string            `json:"full_name"`
	Grade         string            `json:"grade"`
	RegisteredAt  string            `json:"registered_at"`
	Notifications Notifications     `json:"notifications"`
	Reading       []Book            `json:"reading"`
	ReadingDates  map[string]string `json:"reading_dates"`
	History       []HistoryEntry    `json:"history"`
	Favorites     []Book            `json:"favorites"`
}

// SearchResult — элемент ответа быстрого поиска для подсказок ввода.
type SearchResult struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available bool   `json:"available"`
}
