package services

import (
	"strconv"
	"time"

	"github.com/clawcat502/library/internal/models"
)

// ReadingEvent — результат переключения статуса чтения книги.
type ReadingEvent int

const (
	// ReadingStarted — книга добавлена в читаемые.
	ReadingStarted ReadingEvent = iota
	// ReadingFinished — чтение завершено, книга перенесена в историю.
	ReadingFinished
)

// applyReadingToggle переводит пару (пользователь, книга) между
// состояниями "не читает" и "читает".
//
// Завершение чтения ставит дату завершения, добавляет книгу в историю
// не более одного раза и удаляет дату начала. Начало чтения добавляет
// книгу в читаемые и ставит дату начала. Функция меняет только
// коллекции пользователя, без обращений к хранилищу.
func applyReadingToggle(u *models.User, bookID int, now time.Time) ReadingEvent {
	key := strconv.Itoa(bookID)

	if containsInt(u.ReadingBooks, bookID) {
		u.ReadingBooks = removeInt(u.ReadingBooks, bookID)
		u.HistoryDates[key] = now.Format(models.TimeLayout)
		if !containsInt(u.ReadingHistory, bookID) {
			u.ReadingHistory = append(u.ReadingHistory, bookID)
		}
		delete(u.ReadingDates, key)
		return ReadingFinished
	}

	u.ReadingBooks = append(u.ReadingBooks, bookID)
	u.ReadingDates[key] = now.Format(models.TimeLayout)
	return ReadingStarted
}

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeInt(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
