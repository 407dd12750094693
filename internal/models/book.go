// Package models содержит доменные модели библиотеки: книгу каталога
// и зарегистрированного пользователя с его читательскими коллекциями.
// Структуры сериализуются напрямую в JSON-документы хранилища.
package models

// Book представляет книгу из каталога библиотеки.
//
// Каталог загружается один раз при старте процесса; запись меняется
// только переключением доступности администратором.
type Book struct {
	ID        int      `json:"id"`        // Уникальный числовой идентификатор
	Title     string   `json:"title"`     // Название книги
	Author    string   `json:"author"`    // Автор книги
	Theme     []string `json:"theme"`     // Темы (жанровые метки)
	Available bool     `json:"available"` // Доступна ли книга для чтения
}
